package config

import (
	"flag"
	"fmt"
	"strings"
)

// stringList is a repeatable string flag.
type stringList struct {
	list *[]string
}

func (s stringList) String() string {
	if s.list == nil {
		return ""
	}
	return strings.Join(*s.list, " ")
}

func (s stringList) Set(v string) error {
	*s.list = append(*s.list, v)
	return nil
}

// Register binds the configuration flags to cfg on fs. Flag defaults are
// the values cfg holds when Register is called. configPath receives the
// -config flag.
func Register(fs *flag.FlagSet, cfg *Config, configPath *string) {
	fs.StringVar(configPath, "config", "", "configuration file (YAML, or TOML with a .toml extension)")

	fs.StringVar(&cfg.Device, "device", cfg.Device, "Use device `dev` instead of "+DefaultDevice+"; a number N means /dev/cecN")
	fs.StringVar(&cfg.Device, "d", cfg.Device, "Shorthand for -device")
	fs.StringVar(&cfg.Driver, "driver", cfg.Driver, "Use a CEC device with this driver name")
	fs.StringVar(&cfg.Driver, "D", cfg.Driver, "Shorthand for -driver")
	fs.StringVar(&cfg.Adapter, "adapter", cfg.Adapter, "Use a CEC device with this adapter name")
	fs.StringVar(&cfg.Adapter, "a", cfg.Adapter, "Shorthand for -adapter")

	fs.BoolVar(&cfg.NoWarnings, "no-warnings", cfg.NoWarnings, "Turn off warning messages")
	fs.BoolVar(&cfg.NoWarnings, "n", cfg.NoWarnings, "Shorthand for -no-warnings")
	fs.BoolVar(&cfg.Trace, "trace", cfg.Trace, "Trace all called ioctls")
	fs.BoolVar(&cfg.Trace, "T", cfg.Trace, "Shorthand for -trace")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Turn on verbose reporting")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Shorthand for -verbose")
	fs.BoolVar(&cfg.WallClock, "wall-clock", cfg.WallClock, "Show timestamps as wall-clock time (implies -verbose)")
	fs.BoolVar(&cfg.WallClock, "w", cfg.WallClock, "Shorthand for -wall-clock")
	fs.BoolVar(&cfg.ShowMsgs, "show-msgs", cfg.ShowMsgs, "Show received messages")
	fs.BoolVar(&cfg.ShowMsgs, "m", cfg.ShowMsgs, "Shorthand for -show-msgs")
	fs.BoolVar(&cfg.ShowState, "show-state", cfg.ShowState, "Show state changes from the emulated device")
	fs.BoolVar(&cfg.ShowState, "s", cfg.ShowState, "Shorthand for -show-state")

	fs.BoolVar(&cfg.ServiceByDigID, "service-by-dig-id", cfg.ServiceByDigID, "Report digital services by digital ID instead of by channel")
	fs.BoolVar(&cfg.Standby, "standby", cfg.Standby, "Start in Standby state")
	fs.UintVar(&cfg.TogglePowerStatus, "toggle-power-status", cfg.TogglePowerStatus, "Toggle the power status every `secs` seconds")

	ignoreUsage := "Ignore messages from logical address `la,opcode`; 'all' matches all LAs or opcodes (repeatable)"
	fs.Var(stringList{&cfg.Ignore}, "ignore", ignoreUsage)
	fs.Var(stringList{&cfg.Ignore}, "i", "Shorthand for -ignore")

	fs.StringVar(&cfg.ProtocolLog, "protocol-log", cfg.ProtocolLog, "Write a CBOR protocol trace to `file`")
	fs.IntVar(&cfg.ProtocolLogMaxSizeMB, "protocol-log-max-size", cfg.ProtocolLogMaxSizeMB, "Rotate the protocol trace every `MB` megabytes (0: never)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&cfg.LogFile.Path, "log-file", cfg.LogFile.Path, "Also write logs to a rotating `file`")
	fs.BoolVar(&cfg.Interactive, "interactive", cfg.Interactive, "Start an interactive shell")
}

// Parse builds the configuration from defaults, the config file named by
// -config (if any) and args. Ignore rules from the file come before rules
// from the command line.
func Parse(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := Default()

	if path := findConfigPath(args); path != "" {
		if err := LoadFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	var configPath string
	Register(fs, &cfg, &configPath)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownArgs, strings.Join(fs.Args(), " "))
	}

	cfg.Normalize()
	return &cfg, nil
}

// findConfigPath scans args for -config ahead of flag parsing so the file
// can supply flag defaults.
func findConfigPath(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			break
		}
		name, value, hasValue := strings.Cut(strings.TrimLeft(a, "-"), "=")
		if !strings.HasPrefix(a, "-") || name != "config" {
			continue
		}
		if hasValue {
			return value
		}
		if i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}
