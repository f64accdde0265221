package follower

import (
	"fmt"
	"strings"
	"time"

	"github.com/cec-go/cec-go/pkg/cec"
	"github.com/cec-go/cec-go/pkg/sad"
)

// TimestampFormatter renders a kernel monotonic timestamp (ns).
type TimestampFormatter func(ts uint64) string

// Monotonic renders a timestamp as seconds on the monotonic clock.
func Monotonic(ts uint64) string {
	return fmt.Sprintf("%d.%09ds", ts/1e9, ts%1e9)
}

// WallClock returns a formatter that maps monotonic timestamps to wall-clock
// time, given the two clocks read at the same instant.
func WallClock(now time.Time, monoNow uint64) TimestampFormatter {
	return func(ts uint64) string {
		offset := time.Duration(int64(monoNow) - int64(ts))
		return now.Add(-offset).Format("15:04:05.000000")
	}
}

// FormatReceived renders a received message for display, e.g.
//
//	Received from TV to Playback Device 1 (0 to 4): GIVE_OSD_NAME (0x46)
//		Sequence: 3 Rx Timestamp: 153.001027650s
func FormatReceived(msg *cec.Msg, ts TimestampFormatter) string {
	var b strings.Builder

	from, dest := msg.Initiator(), msg.Destination()
	to := dest.String()
	if msg.IsBroadcast() {
		to = "all"
	}

	fmt.Fprintf(&b, "Received from %s to %s (%d to %d): ", from, to, from, dest)
	if op, ok := msg.Opcode(); ok {
		fmt.Fprintf(&b, "%s (0x%02x)", cec.OpcodeName(msg), op)
		if payload := msg.Payload(); len(payload) > 0 {
			fmt.Fprintf(&b, ":")
			for _, p := range payload {
				fmt.Fprintf(&b, " 0x%02x", p)
			}
		}
	} else {
		b.WriteString("POLL")
	}
	b.WriteString("\n")
	writeAudioDescriptors(&b, msg)
	fmt.Fprintf(&b, "\tSequence: %d Rx Timestamp: %s\n", msg.Sequence, ts(msg.RxTimestamp))

	return b.String()
}

// writeAudioDescriptors decodes the operands of the short audio descriptor
// messages, one line per descriptor or requested format.
func writeAudioDescriptors(b *strings.Builder, msg *cec.Msg) {
	op, ok := msg.Opcode()
	if !ok {
		return
	}
	payload := msg.Payload()
	switch op {
	case cec.MsgReportShortAudioDescriptor:
		for i := 0; i+3 <= len(payload); i += 3 {
			v := uint32(payload[i])<<16 | uint32(payload[i+1])<<8 | uint32(payload[i+2])
			fmt.Fprintf(b, "\tShort Audio Descriptor: %s\n", sad.Decode(v))
		}
	case cec.MsgRequestShortAudioDescriptor:
		for _, p := range payload {
			fmt.Fprintf(b, "\tAudio Format: %s\n", sad.FormatIDName(p>>6, p&0x3f))
		}
	}
}
