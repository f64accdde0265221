// Command cec-follower emulates a CEC follower on a kernel CEC adapter.
//
// It queries the adapter's capabilities and addressing, prints a summary,
// refuses to run while the adapter lacks a physical or logical address, and
// then receives messages until interrupted, applying ignore rules and the
// periodic power toggle.
//
// Usage:
//
//	cec-follower [flags]
//
// Flags (see -help for the full list):
//
//	-d, -device dev          Use device dev instead of /dev/cec0
//	-i, -ignore la,opcode    Ignore messages (repeatable; 'all' for any)
//	-T, -trace               Trace all called ioctls
//	-v, -verbose             Show messages and state changes
//	-toggle-power-status n   Toggle the power status every n seconds
//	-protocol-log file       Write a CBOR trace for cec-log
//	-interactive             Start an interactive shell
//	-config file             YAML or TOML configuration file
//
// Examples:
//
//	# Follow on /dev/cec1, ignoring everything the TV says
//	cec-follower -d 1 -i 0,all
//
//	# Trace ioctls and capture a trace file
//	cec-follower -T -protocol-log follower.clog
//
//	# Start in standby and toggle power every 30 seconds
//	cec-follower -standby -toggle-power-status 30 -v
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cec-go/cec-go/cmd/cec-follower/interactive"
	"github.com/cec-go/cec-go/pkg/adapter"
	"github.com/cec-go/cec-go/pkg/config"
	"github.com/cec-go/cec-go/pkg/follower"
	plog "github.com/cec-go/cec-go/pkg/log"
	"github.com/cec-go/cec-go/pkg/state"
	"github.com/cec-go/cec-go/pkg/version"
)

const progName = "cec-follower"

func main() {
	fs := flag.NewFlagSet(progName, flag.ExitOnError)
	showVersion := fs.Bool("version", false, "Print the version and exit")

	cfg, err := config.Parse(fs, os.Args[1:])
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if *showVersion {
		fmt.Println(version.String(progName))
		fmt.Println(version.SHA(progName))
		return
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	os.Exit(run(cfg))
}

func run(cfg *config.Config) int {
	// In interactive mode all output goes through readline so the prompt
	// survives asynchronous message lines.
	var shell *interactive.Shell
	stdout, stderr := io.Writer(os.Stdout), io.Writer(os.Stderr)
	if cfg.Interactive {
		var err error
		shell, err = interactive.New()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to start interactive shell: %v\n", err)
			return 1
		}
		stdout, stderr = shell.Stdout(), shell.Stderr()
	}

	logWriter, logCloser := cfg.LogWriter(stderr)
	defer logCloser.Close()
	setupLogging(logWriter, cfg.LogLevel)

	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{Level: level}))
	// -trace lines are not subject to -log-level.
	traceLogger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{Level: slog.LevelInfo}))

	protocolLogger, closeTrace, err := setupProtocolLog(cfg, logger, level)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	defer closeTrace()

	if cfg.NeedsLookup() {
		dev, err := adapter.Find(cfg.Driver, cfg.Adapter)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return 1
		}
		cfg.Device = dev
	}

	path := cfg.DevicePathOrDefault()
	drv, err := adapter.Open(path)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to open %s: %v\n", path, err)
		return 1
	}

	adap := adapter.New(drv, adapter.Config{
		Device:         path,
		Trace:          cfg.Trace,
		Logger:         logger,
		TraceLogger:    traceLogger,
		ProtocolLogger: protocolLogger,
	})
	defer adap.Close()

	ignoreTable, err := cfg.IgnoreTable()
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}

	node := follower.New(adap, follower.Config{
		State: state.Options{
			Standby:           cfg.Standby,
			ServiceByDigID:    cfg.ServiceByDigID,
			TogglePowerStatus: cfg.TogglePowerInterval(),
		},
		Ignore:         ignoreTable,
		ShowMsgs:       cfg.ShowMsgs,
		ShowState:      cfg.ShowState,
		WallClock:      cfg.WallClock,
		NoWarnings:     cfg.NoWarnings,
		Out:            stdout,
		ProtocolLogger: protocolLogger,
		Logger:         logger,
	})

	fmt.Fprintf(stdout, "%-35s: %s\n", progName+" SHA", version.GitSHA)

	snap, err := node.Discover()
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}

	follower.WriteSummary(stdout, snap)
	fmt.Fprintln(stdout)

	if err := follower.CheckAddressing(snap); err != nil {
		for _, line := range follower.AddressingFailures(err) {
			fmt.Fprintln(stderr, line)
		}
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- node.Run(ctx, &follower.Monitor{})
	}()

	if shell != nil {
		shell.Attach(node)
		go shell.Run(ctx, cancel)
	}

	if err := <-done; err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	logger.Debug("follower stopped", "stats", fmt.Sprintf("%+v", node.Stats()))
	return 0
}

// setupProtocolLog builds the protocol event sink: a CBOR capture file when
// -protocol-log is set, plus console events at debug level.
func setupProtocolLog(cfg *config.Config, logger *slog.Logger, level slog.Level) (plog.Logger, func(), error) {
	var loggers []plog.Logger
	closeFn := func() {}

	if cfg.ProtocolLog != "" {
		var fileLogger *plog.FileLogger
		if cfg.ProtocolLogMaxSizeMB > 0 {
			fileLogger = plog.NewRotatingFileLogger(cfg.ProtocolLog, cfg.ProtocolLogMaxSizeMB, cfg.LogFile.MaxBackups)
		} else {
			var err error
			fileLogger, err = plog.NewFileLogger(cfg.ProtocolLog)
			if err != nil {
				return nil, closeFn, fmt.Errorf("failed to create protocol log: %w", err)
			}
		}
		loggers = append(loggers, fileLogger)
		closeFn = func() {
			if err := fileLogger.Close(); err != nil {
				log.Printf("Error closing protocol log: %v", err)
			}
			written, dropped := fileLogger.Counts()
			logger.Debug("protocol log closed", "path", cfg.ProtocolLog, "events", written, "dropped", dropped)
		}
	}
	if level <= slog.LevelDebug {
		loggers = append(loggers, plog.NewSlogAdapter(logger))
	}

	return plog.Tee(loggers...), closeFn, nil
}

func setupLogging(w io.Writer, level string) {
	log.SetOutput(w)
	log.SetFlags(log.Ltime | log.Lmicroseconds)

	switch level {
	case "debug":
		log.SetFlags(log.Ltime | log.Lmicroseconds | log.Lshortfile)
	case "warn", "error":
		log.SetFlags(log.Ltime)
	}
}
