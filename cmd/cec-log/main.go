// Command cec-log views and analyzes CEC follower trace captures.
//
// Captures are written by cec-follower when it runs with -protocol-log.
// Every command accepts "-" to read a capture from stdin, and the same
// selection flags (-layer, -initiator, -opcode, -request, ...).
//
// Examples:
//
//	# Messages the TV sent, in human-readable form
//	cec-log view -layer message -initiator 0 follower.clog
//
//	# Every GIVE_OSD_NAME as cec-ctl style bytes
//	cec-log export -format msgs -opcode give_osd_name follower.clog
//
//	# Keep one session
//	cec-log filter -session 1b4e28ba -o session.clog follower.clog
//
//	# Statistics of the adapter calls only
//	cec-log stats -layer driver follower.clog
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/cec-go/cec-go/cmd/cec-log/commands"
)

type command struct {
	summary string
	// setup registers command flags and returns the action to run on the
	// trace path once flags are parsed.
	setup func(fs *flag.FlagSet, sel *commands.Selection) func(path string) error
}

var commandTable = map[string]command{
	"view": {
		summary: "View trace in human-readable format",
		setup: func(fs *flag.FlagSet, sel *commands.Selection) func(string) error {
			return func(path string) error {
				return commands.RunView(path, *sel, os.Stdout, os.Stderr)
			}
		},
	},
	"export": {
		summary: "Export trace as JSONL, CSV or message bytes",
		setup: func(fs *flag.FlagSet, sel *commands.Selection) func(string) error {
			format := fs.String("format", commands.FormatJSONL, "Output format (jsonl, csv, msgs)")
			output := fs.String("o", "", "Output file (default: stdout)")
			return func(path string) error {
				return commands.RunExport(path, *sel, *format, *output, os.Stderr)
			}
		},
	},
	"filter": {
		summary: "Write the selected events to a new trace",
		setup: func(fs *flag.FlagSet, sel *commands.Selection) func(string) error {
			output := fs.String("o", "", "Output trace file (required)")
			return func(path string) error {
				if *output == "" {
					return fmt.Errorf("output file (-o) required")
				}
				res, err := commands.RunFilter(path, *sel, *output, os.Stderr)
				if err != nil {
					return err
				}
				fmt.Printf("Filtered %d events to %s (%d skipped)\n", res.Kept, *output, res.Skipped)
				return nil
			}
		},
	},
	"stats": {
		summary: "Show statistics about the trace",
		setup: func(fs *flag.FlagSet, sel *commands.Selection) func(string) error {
			return func(path string) error {
				return commands.RunStats(path, *sel, os.Stdout, os.Stderr)
			}
		},
	},
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, "cec-log - CEC Follower Trace Analyzer\n\nUsage:\n  cec-log <command> [flags] <file.clog|->\n\nCommands:\n")
	names := make([]string, 0, len(commandTable))
	for name := range commandTable {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-8s %s\n", name, commandTable[name].summary)
	}
	fmt.Fprint(w, "\nUse \"cec-log <command> -help\" for more information about a command.\n")
}

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	name := os.Args[1]
	switch name {
	case "-h", "-help", "--help", "help":
		printUsage(os.Stdout)
		return
	}
	cmd, ok := commandTable[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", name)
		printUsage(os.Stderr)
		os.Exit(1)
	}
	os.Exit(run(name, cmd, os.Args[2:]))
}

func run(name string, cmd command, args []string) int {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "cec-log %s - %s\n\nUsage:\n  cec-log %s [flags] <file.clog|->\n\nFlags:\n",
			name, cmd.summary, name)
		fs.PrintDefaults()
	}

	var sel commands.Selection
	sel.Register(fs)
	action := cmd.setup(fs, &sel)

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: trace file path required")
		fs.Usage()
		return 1
	}

	if err := action(fs.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
