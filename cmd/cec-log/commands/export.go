package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cec-go/cec-go/pkg/cec"
	"github.com/cec-go/cec-go/pkg/log"
)

// Export formats.
const (
	FormatJSONL = "jsonl"
	FormatCSV   = "csv"
	// FormatMsgs writes one line per CEC message with its bytes in the
	// colon separated hex notation cec-ctl accepts.
	FormatMsgs = "msgs"
)

// RunExport converts the selected events of the trace at path. An empty
// output writes to stdout.
func RunExport(path string, sel Selection, format, output string, warn io.Writer) error {
	write, ok := exporters[format]
	if !ok {
		return fmt.Errorf("unknown format: %s (supported: %s, %s, %s)", format, FormatJSONL, FormatCSV, FormatMsgs)
	}

	reader, err := openTrace(path, sel)
	if err != nil {
		return err
	}
	defer reader.Close()

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	return write(reader, w, warn)
}

var exporters = map[string]func(*log.Reader, io.Writer, io.Writer) error{
	FormatJSONL: exportJSONL,
	FormatCSV:   exportCSV,
	FormatMsgs:  exportMsgs,
}

// jsonEvent is the JSONL form of a trace event. Enumerations are spelled
// out so the output can be read without this package.
type jsonEvent struct {
	Time      string `json:"time"`
	Session   string `json:"session,omitempty"`
	Device    string `json:"device,omitempty"`
	Direction string `json:"direction"`
	Layer     string `json:"layer"`
	Category  string `json:"category"`

	Ioctl   *log.IoctlEvent `json:"ioctl,omitempty"`
	Message *jsonMessage    `json:"message,omitempty"`
	State   *jsonState      `json:"state,omitempty"`
	Error   *jsonError      `json:"error,omitempty"`
}

type jsonMessage struct {
	From     uint8  `json:"from"`
	To       uint8  `json:"to"`
	Opcode   string `json:"opcode"`
	Bytes    string `json:"bytes"`
	Sequence uint32 `json:"sequence,omitempty"`
	TxStatus string `json:"txStatus,omitempty"`
	RxStatus string `json:"rxStatus,omitempty"`
}

type jsonState struct {
	Entity string `json:"entity"`
	From   string `json:"from,omitempty"`
	To     string `json:"to"`
	Reason string `json:"reason,omitempty"`
}

type jsonError struct {
	Layer   string `json:"layer"`
	Message string `json:"message"`
	Code    *int   `json:"code,omitempty"`
}

func toJSON(event log.Event) jsonEvent {
	je := jsonEvent{
		Time:      timestamp(event),
		Session:   event.SessionID,
		Device:    event.Device,
		Direction: event.Direction.String(),
		Layer:     event.Layer.String(),
		Category:  event.Category.String(),
		Ioctl:     event.Ioctl,
	}
	if m := event.Message; m != nil {
		je.Message = &jsonMessage{
			From:     m.Initiator,
			To:       m.Destination,
			Opcode:   messageLabel(m),
			Bytes:    colonHex(m.Data),
			Sequence: m.Sequence,
			TxStatus: txStatusString(m.TxStatus),
			RxStatus: rxStatusString(m.RxStatus),
		}
	}
	if sc := event.StateChange; sc != nil {
		je.State = &jsonState{Entity: sc.Entity.String(), From: sc.OldState, To: sc.NewState, Reason: sc.Reason}
	}
	if e := event.Error; e != nil {
		je.Error = &jsonError{Layer: e.Layer.String(), Message: e.Message, Code: e.Code}
	}
	return je
}

func exportJSONL(reader *log.Reader, w, warn io.Writer) error {
	enc := json.NewEncoder(w)
	return each(reader, warn, func(event log.Event) error {
		if err := enc.Encode(toJSON(event)); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
		return nil
	})
}

var csvHeader = []string{
	"timestamp", "session_id", "direction", "layer", "category", "device",
	"type", "result", "initiator", "destination", "data",
}

func exportCSV(reader *log.Reader, w, warn io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	err := each(reader, warn, func(event log.Event) error {
		return cw.Write(csvRow(event))
	})
	cw.Flush()
	if err == nil {
		err = cw.Error()
	}
	return err
}

func csvRow(event log.Event) []string {
	kind := "unknown"
	var result, initiator, destination, data string
	switch {
	case event.Ioctl != nil:
		kind = event.Ioctl.Request
		result = strconv.Itoa(event.Ioctl.Result)
	case event.Message != nil:
		kind = messageLabel(event.Message)
		initiator = strconv.Itoa(int(event.Message.Initiator))
		destination = strconv.Itoa(int(event.Message.Destination))
		data = fmt.Sprintf("%x", event.Message.Data)
	case event.StateChange != nil:
		kind = "state"
		result = event.StateChange.NewState
	case event.Error != nil:
		kind = "error"
		result = event.Error.Message
	}
	return []string{
		timestamp(event), event.SessionID,
		event.Direction.String(), event.Layer.String(), event.Category.String(),
		event.Device, kind, result, initiator, destination, data,
	}
}

// exportMsgs writes "<time> <IN|OUT> <bytes> # <label>" for every message
// event; other events are skipped.
func exportMsgs(reader *log.Reader, w, warn io.Writer) error {
	return each(reader, warn, func(event log.Event) error {
		m := event.Message
		if m == nil {
			return nil
		}
		_, err := fmt.Fprintf(w, "%s %-3s %s # %s to %s\n", timestamp(event), event.Direction,
			colonHex(m.Data), messageLabel(m), destinationName(cec.LogicalAddress(m.Destination)))
		return err
	})
}

func timestamp(event log.Event) string {
	return event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
}

// colonHex renders message bytes as e.g. 40:46.
func colonHex(data []byte) string {
	parts := make([]string, len(data))
	for i, b := range data {
		parts[i] = fmt.Sprintf("%02x", b)
	}
	return strings.Join(parts, ":")
}

func destinationName(la cec.LogicalAddress) string {
	if la == cec.LogAddrBroadcast {
		return "all"
	}
	return la.String()
}
