package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/natefinch/lumberjack.v2"
	"gopkg.in/yaml.v3"

	"github.com/cec-go/cec-go/pkg/ignore"
)

// DefaultDevice is used when neither a device nor a driver/adapter name is
// given.
const DefaultDevice = "/dev/cec0"

// Configuration errors.
var (
	ErrInvalidLogLevel = errors.New("invalid log level")
	ErrInvalidLogFile  = errors.New("invalid log file settings")
	ErrUnknownArgs     = errors.New("unknown arguments")
)

// LogFileConfig configures the rotating operational log file.
type LogFileConfig struct {
	Path       string `yaml:"path" toml:"path"`
	MaxSizeMB  int    `yaml:"maxSizeMB" toml:"maxSizeMB"`
	MaxAgeDays int    `yaml:"maxAgeDays" toml:"maxAgeDays"`
	MaxBackups int    `yaml:"maxBackups" toml:"maxBackups"`
	Compress   bool   `yaml:"compress" toml:"compress"`
}

// Config is the follower's startup configuration.
type Config struct {
	Device  string `yaml:"device" toml:"device"`
	Driver  string `yaml:"driver" toml:"driver"`
	Adapter string `yaml:"adapter" toml:"adapter"`

	Trace      bool `yaml:"trace" toml:"trace"`
	Verbose    bool `yaml:"verbose" toml:"verbose"`
	ShowMsgs   bool `yaml:"showMsgs" toml:"showMsgs"`
	ShowState  bool `yaml:"showState" toml:"showState"`
	WallClock  bool `yaml:"wallClock" toml:"wallClock"`
	NoWarnings bool `yaml:"noWarnings" toml:"noWarnings"`

	Standby        bool `yaml:"standby" toml:"standby"`
	ServiceByDigID bool `yaml:"serviceByDigID" toml:"serviceByDigID"`

	// TogglePowerStatus is the power toggle interval in seconds; 0 is off.
	TogglePowerStatus uint `yaml:"togglePowerStatus" toml:"togglePowerStatus"`

	// Ignore holds "<la>,<opcode>" rules.
	Ignore []string `yaml:"ignore" toml:"ignore"`

	// ProtocolLog is the path of a CBOR trace capture; empty disables it.
	ProtocolLog string `yaml:"protocolLog" toml:"protocolLog"`

	// ProtocolLogMaxSizeMB rotates the trace capture at this size; 0 never
	// rotates. Rotated captures share LogFile.MaxBackups.
	ProtocolLogMaxSizeMB int `yaml:"protocolLogMaxSizeMB" toml:"protocolLogMaxSizeMB"`

	LogLevel string        `yaml:"logLevel" toml:"logLevel"`
	LogFile  LogFileConfig `yaml:"logFile" toml:"logFile"`

	Interactive bool `yaml:"interactive" toml:"interactive"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: "info",
		LogFile: LogFileConfig{
			MaxSizeMB:  10,
			MaxAgeDays: 28,
			MaxBackups: 3,
		},
	}
}

// ErrUnknownKey reports a config file key that maps to no setting.
var ErrUnknownKey = errors.New("unknown config key")

// LoadFile decodes a YAML or, for a .toml extension, TOML file over cfg.
// Keys absent from the file keep their current value.
func LoadFile(path string, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return loadTOML(path, cfg)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func loadTOML(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("parse %s: %w: %s", path, ErrUnknownKey, undecoded[0])
	}
	return nil
}

// DevicePath expands the device argument: a number of up to three digits N
// means /dev/cecN, anything else is used as given.
func DevicePath(dev string) string {
	if dev != "" && len(dev) <= 3 && dev[0] >= '0' && dev[0] <= '9' {
		return "/dev/cec" + dev
	}
	return dev
}

// Normalize applies derived settings: device path expansion and the flags
// implied by -verbose and -wall-clock.
func (c *Config) Normalize() {
	c.Device = DevicePath(c.Device)
	if c.WallClock {
		c.Verbose = true
	}
	if c.Verbose {
		c.ShowMsgs = true
		c.ShowState = true
	}
}

// Validate checks settings that cannot be checked while parsing.
func (c *Config) Validate() error {
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if _, err := c.IgnoreTable(); err != nil {
		return err
	}
	lf := c.LogFile
	if lf.MaxSizeMB < 0 || lf.MaxAgeDays < 0 || lf.MaxBackups < 0 || c.ProtocolLogMaxSizeMB < 0 {
		return fmt.Errorf("%w: negative limit", ErrInvalidLogFile)
	}
	return nil
}

// NeedsLookup reports whether the device must be found by driver or adapter
// name.
func (c *Config) NeedsLookup() bool {
	return c.Device == "" && (c.Driver != "" || c.Adapter != "")
}

// DevicePathOrDefault returns the configured device, or DefaultDevice.
func (c *Config) DevicePathOrDefault() string {
	if c.Device == "" {
		return DefaultDevice
	}
	return c.Device
}

// TogglePowerInterval returns TogglePowerStatus as a duration.
func (c *Config) TogglePowerInterval() time.Duration {
	return time.Duration(c.TogglePowerStatus) * time.Second
}

// IgnoreTable parses the ignore rules into a table.
func (c *Config) IgnoreTable() (*ignore.Table, error) {
	t := &ignore.Table{}
	if err := t.ApplyAll(c.Ignore); err != nil {
		return nil, err
	}
	return t, nil
}

// SlogLevel maps LogLevel to a slog level.
func (c *Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
}

// LogWriter returns the destination of operational logs: console, plus the
// rotating log file when one is configured. The returned closer releases
// the file.
func (c *Config) LogWriter(console io.Writer) (io.Writer, io.Closer) {
	if c.LogFile.Path == "" {
		return console, nopCloser{}
	}
	rotator := &lumberjack.Logger{
		Filename:   c.LogFile.Path,
		MaxSize:    c.LogFile.MaxSizeMB,
		MaxAge:     c.LogFile.MaxAgeDays,
		MaxBackups: c.LogFile.MaxBackups,
		Compress:   c.LogFile.Compress,
	}
	return io.MultiWriter(console, rotator), rotator
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
