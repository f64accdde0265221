// Package interactive provides the interactive command-line interface
// for cec-follower.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/cec-go/cec-go/pkg/cec"
	"github.com/cec-go/cec-go/pkg/follower"
	"github.com/cec-go/cec-go/pkg/ignore"
)

// Shell handles interactive mode for cec-follower.
type Shell struct {
	node *follower.Node
	rl   *readline.Instance
	out  io.Writer
	now  func() time.Time
}

// New creates the readline instance. Attach a node before calling Run.
func New() (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "follower> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	s := newShell(nil, rl.Stdout())
	s.rl = rl
	return s, nil
}

func newShell(n *follower.Node, out io.Writer) *Shell {
	return &Shell{node: n, out: out, now: time.Now}
}

// Attach binds the shell to the follower node it controls.
func (s *Shell) Attach(n *follower.Node) {
	s.node = n
}

// Stdout returns a writer that properly coordinates with the readline input.
// Use this for follower output to avoid interfering with the command prompt.
func (s *Shell) Stdout() io.Writer {
	return s.rl.Stdout()
}

// Stderr returns a writer that properly coordinates with the readline input.
func (s *Shell) Stderr() io.Writer {
	return s.rl.Stderr()
}

// Run starts the interactive command loop. It cancels ctx on quit or EOF.
func (s *Shell) Run(ctx context.Context, cancel context.CancelFunc) {
	defer s.rl.Close()

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			cancel()
			return
		}

		if !s.Exec(line) {
			cancel()
			return
		}
	}
}

// Exec runs one command line. It returns false when the shell should exit.
func (s *Shell) Exec(line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return true
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp()

	case "status", "st":
		s.cmdStatus()

	case "info":
		follower.WriteSummary(s.out, s.node.Snapshot())

	case "peers", "p":
		s.cmdPeers()

	case "ignore", "ig":
		s.cmdIgnore(args)

	case "standby":
		s.cmdPower(cec.PowerStatusStandby)

	case "on":
		s.cmdPower(cec.PowerStatusOn)

	case "toggle":
		next := s.node.TogglePower(s.now(), "shell")
		fmt.Fprintf(s.out, "Power status: %s\n", next)

	case "stats":
		s.cmdStats()

	case "quit", "exit", "q":
		fmt.Fprintln(s.out, "Exiting...")
		return false

	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return true
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `
CEC Follower Commands:
  Inspection:
    status             - Show the emulated device state
    info               - Show adapter capabilities and addressing
    peers              - Show the last transaction time per logical address
    stats              - Show message counters

  Ignore Rules:
    ignore             - List ignore rules
    ignore <la,opcode> - Add an ignore rule ('all' matches any LA or opcode)

  Power:
    standby            - Enter standby
    on                 - Power on
    toggle             - Toggle between on and standby

  quit                 - Exit`)
}

func (s *Shell) cmdStatus() {
	st := s.node.State()

	fmt.Fprintf(s.out, "Follower:           %s\n", s.node.NodeState())
	if mode, err := s.node.Adapter().Mode(); err != nil {
		fmt.Fprintf(s.out, "Adapter mode:       unavailable (%v)\n", err)
	} else {
		fmt.Fprintf(s.out, "Adapter mode:       %s\n", cec.ModeString(mode))
	}
	fmt.Fprintf(s.out, "Power status:       %s\n", st.PowerStatus)
	if !st.PowerStatusChangedTime.IsZero() {
		fmt.Fprintf(s.out, "  changed from %s at %s\n",
			st.OldPowerStatus, st.PowerStatusChangedTime.Format("15:04:05"))
	}
	if st.TogglePowerStatus > 0 {
		fmt.Fprintf(s.out, "  toggles every %s\n", st.TogglePowerStatus)
	}
	fmt.Fprintf(s.out, "Menu language:      %s\n", st.MenuLanguage)
	fmt.Fprintf(s.out, "Video latency:      %d ms (low latency mode: %s)\n", st.VideoLatency, onOff(st.LowLatencyMode))
	fmt.Fprintf(s.out, "Audio out delay:    %d ms (compensated: %d)\n", st.AudioOutDelay, st.AudioOutCompensated)
	fmt.Fprintf(s.out, "Volume:             %d (mute: %s)\n", st.Volume, onOff(st.Mute))
	fmt.Fprintf(s.out, "ARC:                %s\n", onOff(st.ARCActive))
	fmt.Fprintf(s.out, "System audio:       %s\n", onOff(st.SACActive))
	fmt.Fprintf(s.out, "Service by dig ID:  %s\n", onOff(st.ServiceByDigID))
}

func (s *Shell) cmdPeers() {
	found := false
	for la := cec.LogicalAddress(0); la < cec.NumLogicalAddresses; la++ {
		age, ok := s.node.PeerAge(la)
		if !ok {
			continue
		}
		found = true
		fmt.Fprintf(s.out, "  %2d %-20s %s ago\n", la, la, age.Round(time.Millisecond))
	}
	if !found {
		fmt.Fprintln(s.out, "No transactions yet")
	}
}

func (s *Shell) cmdIgnore(args []string) {
	tbl := s.node.Ignore()
	if len(args) == 0 {
		rules := listRules(tbl)
		if len(rules) == 0 {
			fmt.Fprintln(s.out, "No ignore rules")
			return
		}
		for _, r := range rules {
			fmt.Fprintf(s.out, "  %s\n", r)
		}
		return
	}

	for _, arg := range args {
		if err := tbl.Apply(arg); err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			continue
		}
		fmt.Fprintf(s.out, "Ignoring %s\n", arg)
	}
}

// listRules renders the table contents as rules, most general first.
func listRules(tbl *ignore.Table) []string {
	var rules []string
	for la := cec.LogicalAddress(0); la < cec.NumLogicalAddresses; la++ {
		if tbl.IgnoresAll(la) {
			rules = append(rules, fmt.Sprintf("%d,all", la))
		}
	}
	for op := 0; op < 256; op++ {
		mask := tbl.OpcodeMask(uint8(op))
		if mask == 0 {
			continue
		}
		name := strings.ToLower(cec.OpcodeString(uint8(op)))
		if mask == ignore.AllLogicalAddresses {
			rules = append(rules, "all,"+name)
			continue
		}
		for la := cec.LogicalAddress(0); la < cec.NumLogicalAddresses; la++ {
			if mask&(1<<la) != 0 && !tbl.IgnoresAll(la) {
				rules = append(rules, fmt.Sprintf("%d,%s", la, name))
			}
		}
	}
	return rules
}

func (s *Shell) cmdPower(ps cec.PowerStatus) {
	if !s.node.SetPowerStatus(ps, "shell") {
		fmt.Fprintf(s.out, "Power status already %s\n", ps)
		return
	}
	fmt.Fprintf(s.out, "Power status: %s\n", ps)
}

func (s *Shell) cmdStats() {
	st := s.node.Stats()
	fmt.Fprintf(s.out, "Received: %d\n", st.Received)
	fmt.Fprintf(s.out, "Ignored:  %d\n", st.Ignored)
	fmt.Fprintf(s.out, "Warnings: %d\n", st.Warnings)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
