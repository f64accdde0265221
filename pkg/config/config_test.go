package config

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cec-go/cec-go/pkg/ignore"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("cec-follower", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "follower.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDevicePath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"0", "/dev/cec0"},
		{"12", "/dev/cec12"},
		{"123", "/dev/cec123"},
		{"1234", "1234"},
		{"/dev/cec1", "/dev/cec1"},
		{"cec1", "cec1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DevicePath(tt.in), "DevicePath(%q)", tt.in)
	}
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(newFlagSet(), nil)
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Device)
	assert.Equal(t, DefaultDevice, cfg.DevicePathOrDefault())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Trace)
	assert.Empty(t, cfg.Ignore)
	assert.Equal(t, time.Duration(0), cfg.TogglePowerInterval())
	assert.NoError(t, cfg.Validate())
}

func TestParseFlags(t *testing.T) {
	args := []string{
		"-d", "2",
		"-T",
		"-standby",
		"-service-by-dig-id",
		"-toggle-power-status", "30",
		"-i", "3,0x46",
		"-ignore", "5,all",
		"-log-level", "debug",
		"-protocol-log", "trace.clog",
		"-protocol-log-max-size", "4",
	}
	cfg, err := Parse(newFlagSet(), args)
	require.NoError(t, err)

	assert.Equal(t, "/dev/cec2", cfg.Device)
	assert.True(t, cfg.Trace)
	assert.True(t, cfg.Standby)
	assert.True(t, cfg.ServiceByDigID)
	assert.Equal(t, 30*time.Second, cfg.TogglePowerInterval())
	assert.Equal(t, []string{"3,0x46", "5,all"}, cfg.Ignore)
	assert.Equal(t, "trace.clog", cfg.ProtocolLog)
	assert.Equal(t, 4, cfg.ProtocolLogMaxSizeMB)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestParseVerboseImplies(t *testing.T) {
	cfg, err := Parse(newFlagSet(), []string{"-w"})
	require.NoError(t, err)

	assert.True(t, cfg.WallClock)
	assert.True(t, cfg.Verbose)
	assert.True(t, cfg.ShowMsgs)
	assert.True(t, cfg.ShowState)
}

func TestParseRejectsPositionalArgs(t *testing.T) {
	_, err := Parse(newFlagSet(), []string{"-d", "1", "bogus", "extra"})
	require.ErrorIs(t, err, ErrUnknownArgs)
	assert.Contains(t, err.Error(), "bogus extra")

	_, err = Parse(newFlagSet(), []string{"-d", "1", "--", "-T"})
	assert.ErrorIs(t, err, ErrUnknownArgs)
}

func TestParseConfigFile(t *testing.T) {
	path := writeFile(t, `
device: "1"
trace: true
toggleProwerStatusTypo: 1
`)
	_, err := Parse(newFlagSet(), []string{"-config", path})
	require.Error(t, err, "unknown keys must be rejected")

	path = writeFile(t, `
device: "1"
trace: true
showMsgs: true
ignore:
  - "3,0x46"
logLevel: warn
logFile:
  path: /tmp/follower.log
  maxBackups: 7
`)
	cfg, err := Parse(newFlagSet(), []string{"-config=" + path, "-i", "4,0x8f", "-log-level", "error"})
	require.NoError(t, err)

	assert.Equal(t, "/dev/cec1", cfg.Device)
	assert.True(t, cfg.Trace)
	assert.True(t, cfg.ShowMsgs)
	assert.Equal(t, []string{"3,0x46", "4,0x8f"}, cfg.Ignore)
	assert.Equal(t, "error", cfg.LogLevel, "flags override the file")
	assert.Equal(t, "/tmp/follower.log", cfg.LogFile.Path)
	assert.Equal(t, 7, cfg.LogFile.MaxBackups)
	assert.Equal(t, 28, cfg.LogFile.MaxAgeDays, "defaults survive a partial file")
}

func TestParseMissingConfigFile(t *testing.T) {
	_, err := Parse(newFlagSet(), []string{"-config", filepath.Join(t.TempDir(), "nope.yaml")})
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadFileEmpty(t *testing.T) {
	cfg := Default()
	require.NoError(t, LoadFile(writeFile(t, ""), &cfg))
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "follower.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
device = "/dev/cec2"
standby = true
togglePowerStatus = 15
ignore = ["all,0x36"]

[logFile]
path = "/var/log/cec-follower.log"
compress = true
`), 0o644))

	cfg := Default()
	require.NoError(t, LoadFile(path, &cfg))

	assert.Equal(t, "/dev/cec2", cfg.Device)
	assert.True(t, cfg.Standby)
	assert.Equal(t, 15*time.Second, cfg.TogglePowerInterval())
	assert.Equal(t, []string{"all,0x36"}, cfg.Ignore)
	assert.Equal(t, "/var/log/cec-follower.log", cfg.LogFile.Path)
	assert.True(t, cfg.LogFile.Compress)
	assert.Equal(t, 3, cfg.LogFile.MaxBackups)
}

func TestLoadFileTOMLUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "follower.toml")
	require.NoError(t, os.WriteFile(path, []byte("devcie = \"1\"\n"), 0o644))

	cfg := Default()
	err := LoadFile(path, &cfg)
	assert.ErrorIs(t, err, ErrUnknownKey)
	assert.Contains(t, err.Error(), "devcie")
}

func TestParseUnknownFlag(t *testing.T) {
	_, err := Parse(newFlagSet(), []string{"-bogus"})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"default", func(*Config) {}, nil},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, ErrInvalidLogLevel},
		{"all,all", func(c *Config) { c.Ignore = []string{"all,all"} }, ignore.ErrAllAll},
		{"la out of range", func(c *Config) { c.Ignore = []string{"16,1"} }, ignore.ErrInvalidLA},
		{"opcode out of range", func(c *Config) { c.Ignore = []string{"1,256"} }, ignore.ErrInvalidOpcode},
		{"negative backups", func(c *Config) { c.LogFile.MaxBackups = -1 }, ErrInvalidLogFile},
		{"negative trace size", func(c *Config) { c.ProtocolLogMaxSizeMB = -5 }, ErrInvalidLogFile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestIgnoreTable(t *testing.T) {
	cfg := Default()
	cfg.Ignore = []string{"3,0x46", "all,0x8f"}

	tbl, err := cfg.IgnoreTable()
	require.NoError(t, err)
	assert.True(t, tbl.Ignored(3, 0x46))
	assert.False(t, tbl.Ignored(4, 0x46))
	assert.True(t, tbl.Ignored(9, 0x8f))
}

func TestNeedsLookup(t *testing.T) {
	cfg := Default()
	assert.False(t, cfg.NeedsLookup())

	cfg.Driver = "vivid"
	assert.True(t, cfg.NeedsLookup())

	cfg.Device = "/dev/cec0"
	assert.False(t, cfg.NeedsLookup(), "an explicit device wins")
}

func TestLogWriter(t *testing.T) {
	var console bytes.Buffer

	cfg := Default()
	w, closer := cfg.LogWriter(&console)
	_, _ = io.WriteString(w, "hello\n")
	require.NoError(t, closer.Close())
	assert.Equal(t, "hello\n", console.String())

	console.Reset()
	cfg.LogFile.Path = filepath.Join(t.TempDir(), "follower.log")
	w, closer = cfg.LogWriter(&console)
	_, _ = io.WriteString(w, "rotated\n")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(cfg.LogFile.Path)
	require.NoError(t, err)
	assert.Equal(t, "rotated\n", string(data))
	assert.Equal(t, "rotated\n", console.String())
}

func TestFindConfigPath(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{nil, ""},
		{[]string{"-config", "a.yaml"}, "a.yaml"},
		{[]string{"--config=b.yaml"}, "b.yaml"},
		{[]string{"-T", "-config", "c.yaml", "-v"}, "c.yaml"},
		{[]string{"--", "-config", "d.yaml"}, ""},
		{[]string{"-config"}, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, findConfigPath(tt.args), "args %v", tt.args)
	}
}
