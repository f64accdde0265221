// Package commands implements the cec-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/cec-go/cec-go/pkg/cec"
	"github.com/cec-go/cec-go/pkg/log"
)

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [session:id] DIRECTION LAYER Type
	ts := timestamp(event)
	session := shortenSessionID(event.SessionID)

	var typeLabel string
	switch {
	case event.Ioctl != nil:
		typeLabel = event.Ioctl.Request
	case event.Message != nil:
		typeLabel = messageLabel(event.Message)
	case event.StateChange != nil:
		typeLabel = "State"
	case event.Error != nil:
		typeLabel = "Error"
	default:
		typeLabel = "Unknown"
	}

	fmt.Fprintf(w, "%s [session:%s] %-3s %s %s\n", ts, session, event.Direction, event.Layer, typeLabel)

	switch {
	case event.Ioctl != nil:
		formatIoctlDetails(w, event.Ioctl)
	case event.Message != nil:
		formatMessageDetails(w, event.Message)
	case event.StateChange != nil:
		formatStateChangeDetails(w, event.StateChange)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w)
}

// shortenSessionID returns the first 8 characters of the session ID.
func shortenSessionID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func messageLabel(msg *log.MessageEvent) string {
	if msg.Opcode == nil {
		return "POLL"
	}
	if msg.OpcodeName != "" {
		return msg.OpcodeName
	}
	return cec.OpcodeString(*msg.Opcode)
}

func formatIoctlDetails(w io.Writer, ev *log.IoctlEvent) {
	fmt.Fprintf(w, "  Result: %d (%s)\n", ev.Result, ev.Reason)
}

func formatMessageDetails(w io.Writer, msg *log.MessageEvent) {
	from, to := cec.LogicalAddress(msg.Initiator), cec.LogicalAddress(msg.Destination)
	fmt.Fprintf(w, "  From: %s (%d) To: %s (%d)\n", from, from, destinationName(to), to)
	if msg.Opcode != nil {
		fmt.Fprintf(w, "  Opcode: 0x%02x\n", *msg.Opcode)
	}
	if len(msg.Data) > 0 {
		fmt.Fprintf(w, "  Data: % x\n", msg.Data)
	}
	if msg.Sequence != 0 {
		fmt.Fprintf(w, "  Sequence: %d\n", msg.Sequence)
	}
	if msg.TxStatus != 0 {
		fmt.Fprintf(w, "  Tx Status: 0x%02x (%s)\n", msg.TxStatus, txStatusString(msg.TxStatus))
	}
	if msg.RxStatus != 0 {
		fmt.Fprintf(w, "  Rx Status: 0x%02x (%s)\n", msg.RxStatus, rxStatusString(msg.RxStatus))
	}
	if msg.TxTimestamp != 0 {
		fmt.Fprintf(w, "  Tx Timestamp: %s\n", monotonic(msg.TxTimestamp))
	}
	if msg.RxTimestamp != 0 {
		fmt.Fprintf(w, "  Rx Timestamp: %s\n", monotonic(msg.RxTimestamp))
	}
}

func monotonic(ts uint64) string {
	return fmt.Sprintf("%d.%09ds", ts/1e9, ts%1e9)
}

var txStatusNames = []struct {
	bit  uint8
	name string
}{
	{cec.TxStatusOK, "OK"},
	{cec.TxStatusArbLost, "Arbitration Lost"},
	{cec.TxStatusNack, "Not Acknowledged"},
	{cec.TxStatusLowDrive, "Low Drive"},
	{cec.TxStatusError, "Error"},
	{cec.TxStatusMaxRetries, "Max Retries"},
	{cec.TxStatusAborted, "Aborted"},
	{cec.TxStatusTimeout, "Timeout"},
}

var rxStatusNames = []struct {
	bit  uint8
	name string
}{
	{cec.RxStatusOK, "OK"},
	{cec.RxStatusTimeout, "Timeout"},
	{cec.RxStatusFeatureAbort, "Feature Abort"},
	{cec.RxStatusAborted, "Aborted"},
}

func txStatusString(s uint8) string {
	var names []string
	for _, n := range txStatusNames {
		if s&n.bit != 0 {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, ", ")
}

func rxStatusString(s uint8) string {
	var names []string
	for _, n := range rxStatusNames {
		if s&n.bit != 0 {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, ", ")
}

// formatStateChangeDetails writes state change details.
func formatStateChangeDetails(w io.Writer, sc *log.StateChangeEvent) {
	fmt.Fprintf(w, "  Entity: %s\n", sc.Entity.String())
	if sc.OldState != "" {
		fmt.Fprintf(w, "  %s -> %s\n", sc.OldState, sc.NewState)
	} else {
		fmt.Fprintf(w, "  -> %s\n", sc.NewState)
	}
	if sc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
	}
}

// formatErrorDetails writes error details.
func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Layer: %s\n", err.Layer.String())
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
	if err.Code != nil {
		fmt.Fprintf(w, "  Code: %d\n", *err.Code)
	}
	if err.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", err.Context)
	}
}

// RunView prints the selected events of the trace at path to out, one
// block per event. Warnings about the capture go to warn.
func RunView(path string, sel Selection, out, warn io.Writer) error {
	reader, err := openTrace(path, sel)
	if err != nil {
		return err
	}
	defer reader.Close()

	return each(reader, warn, func(event log.Event) error {
		formatEvent(out, event)
		return nil
	})
}
