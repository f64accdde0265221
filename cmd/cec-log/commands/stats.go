package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/cec-go/cec-go/pkg/cec"
	"github.com/cec-go/cec-go/pkg/log"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents       int
	EventsByLayer     map[log.Layer]int
	EventsByCategory  map[log.Category]int
	EventsByDirection map[log.Direction]int
	Sessions          map[string]*SessionStats

	// FailedIoctls counts ioctl results by request name, excluding the
	// receive timeouts a polling follower produces.
	FailedIoctls map[string]int

	// MessagesByInitiator counts received messages per initiator.
	MessagesByInitiator map[uint8]int

	// MessagesByOpcode counts messages per opcode name; polls count as POLL.
	MessagesByOpcode map[string]int

	Errors    int
	TimeRange struct {
		Start time.Time
		End   time.Time
	}
}

// SessionStats holds statistics for a single follower run.
type SessionStats struct {
	FirstSeen    time.Time
	LastSeen     time.Time
	Events       int
	Device       string
	StateChanges int
}

func newStats() *Stats {
	return &Stats{
		EventsByLayer:       make(map[log.Layer]int),
		EventsByCategory:    make(map[log.Category]int),
		EventsByDirection:   make(map[log.Direction]int),
		Sessions:            make(map[string]*SessionStats),
		FailedIoctls:        make(map[string]int),
		MessagesByInitiator: make(map[uint8]int),
		MessagesByOpcode:    make(map[string]int),
	}
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsByLayer[event.Layer]++
	s.EventsByCategory[event.Category]++
	s.EventsByDirection[event.Direction]++

	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	sess, ok := s.Sessions[event.SessionID]
	if !ok {
		sess = &SessionStats{
			FirstSeen: event.Timestamp,
			LastSeen:  event.Timestamp,
		}
		s.Sessions[event.SessionID] = sess
	}
	sess.Events++
	if event.Timestamp.After(sess.LastSeen) {
		sess.LastSeen = event.Timestamp
	}
	if event.Device != "" && sess.Device == "" {
		sess.Device = event.Device
	}

	switch {
	case event.Ioctl != nil:
		if event.Ioctl.Result != 0 && !event.IsIdleReceive() {
			s.FailedIoctls[event.Ioctl.Request]++
		}
	case event.Message != nil:
		if event.Direction == log.DirectionIn {
			s.MessagesByInitiator[event.Message.Initiator]++
		}
		s.MessagesByOpcode[messageLabel(event.Message)]++
	case event.StateChange != nil:
		sess.StateChanges++
	case event.Error != nil:
		s.Errors++
	}
}

// RunStats prints aggregate statistics over the selected events of the
// trace at path.
func RunStats(path string, sel Selection, w, warn io.Writer) error {
	reader, err := openTrace(path, sel)
	if err != nil {
		return err
	}
	defer reader.Close()

	stats := newStats()
	if err := each(reader, warn, func(event log.Event) error {
		stats.add(event)
		return nil
	}); err != nil {
		return err
	}

	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== CEC Follower Trace Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Layer:")
	for _, layer := range []log.Layer{log.LayerDriver, log.LayerMessage, log.LayerFollower} {
		if count := stats.EventsByLayer[layer]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", layer.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryIoctl, log.CategoryMessage, log.CategoryState, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Direction:")
	for _, dir := range []log.Direction{log.DirectionIn, log.DirectionOut} {
		if count := stats.EventsByDirection[dir]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", dir.String()+":", count)
		}
	}

	if len(stats.MessagesByInitiator) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Received by Initiator:")
		for la := uint8(0); la < cec.NumLogicalAddresses; la++ {
			if count := stats.MessagesByInitiator[la]; count > 0 {
				fmt.Fprintf(w, "  %2d %-20s %d\n", la, cec.LogicalAddress(la).String()+":", count)
			}
		}
	}

	if len(stats.MessagesByOpcode) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Messages by Opcode:")
		for _, name := range sortedKeys(stats.MessagesByOpcode) {
			fmt.Fprintf(w, "  %-32s %d\n", name+":", stats.MessagesByOpcode[name])
		}
	}

	if len(stats.FailedIoctls) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Failed Requests:")
		for _, name := range sortedKeys(stats.FailedIoctls) {
			fmt.Fprintf(w, "  %-28s %d\n", name+":", stats.FailedIoctls[name])
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Sessions: %d\n", len(stats.Sessions))
	if len(stats.Sessions) > 0 {
		type sessionInfo struct {
			id    string
			stats *SessionStats
		}
		sessions := make([]sessionInfo, 0, len(stats.Sessions))
		for id, ss := range stats.Sessions {
			sessions = append(sessions, sessionInfo{id, ss})
		}
		sort.Slice(sessions, func(i, j int) bool {
			return sessions[i].stats.FirstSeen.Before(sessions[j].stats.FirstSeen)
		})

		fmt.Fprintln(w)
		for _, s := range sessions {
			duration := s.stats.LastSeen.Sub(s.stats.FirstSeen).Round(time.Millisecond)
			fmt.Fprintf(w, "  [%s] %d events, duration %s\n", shortenSessionID(s.id), s.stats.Events, duration)
			if s.stats.Device != "" {
				fmt.Fprintf(w, "           Device: %s\n", s.stats.Device)
			}
			if s.stats.StateChanges > 0 {
				fmt.Fprintf(w, "           State changes: %d\n", s.stats.StateChanges)
			}
		}
	}

	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
