package log

import (
	"context"
	"fmt"
	"log/slog"
)

// SlogAdapter writes trace events to an slog.Logger at Debug level, one
// record per event named after its category. Idle receives are left out so
// a quiet bus does not flood the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a SlogAdapter writing to logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event unless it is an idle receive.
func (a *SlogAdapter) Log(event Event) {
	if event.IsIdleReceive() {
		return
	}

	attrs := make([]slog.Attr, 0, 10)
	attrs = append(attrs,
		slog.String("session", event.SessionID),
		slog.String("direction", event.Direction.String()),
		slog.String("layer", event.Layer.String()),
	)
	if event.Device != "" {
		attrs = append(attrs, slog.String("device", event.Device))
	}

	msg := "cec " + lowerName(event.Category)
	switch {
	case event.Ioctl != nil:
		attrs = event.Ioctl.appendAttrs(attrs)
	case event.Message != nil:
		attrs = event.Message.appendAttrs(attrs)
	case event.StateChange != nil:
		attrs = event.StateChange.appendAttrs(attrs)
	case event.Error != nil:
		attrs = event.Error.appendAttrs(attrs)
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, msg, attrs...)
}

func lowerName(c Category) string {
	switch c {
	case CategoryIoctl:
		return "ioctl"
	case CategoryMessage:
		return "message"
	case CategoryState:
		return "state"
	case CategoryError:
		return "error"
	}
	return "event"
}

func (e *IoctlEvent) appendAttrs(attrs []slog.Attr) []slog.Attr {
	return append(attrs,
		slog.String("request", e.Request),
		slog.Int("result", e.Result),
		slog.String("reason", e.Reason),
	)
}

func (m *MessageEvent) appendAttrs(attrs []slog.Attr) []slog.Attr {
	attrs = append(attrs,
		slog.Int("initiator", int(m.Initiator)),
		slog.Int("destination", int(m.Destination)),
		slog.String("data", fmt.Sprintf("% x", m.Data)),
	)
	if m.Opcode == nil {
		attrs = append(attrs, slog.String("opcode", "POLL"))
	} else if m.OpcodeName != "" {
		attrs = append(attrs, slog.String("opcode", m.OpcodeName))
	}
	if m.Sequence != 0 {
		attrs = append(attrs, slog.Uint64("sequence", uint64(m.Sequence)))
	}
	if m.TxStatus != 0 {
		attrs = append(attrs, slog.String("tx_status", fmt.Sprintf("0x%02x", m.TxStatus)))
	}
	if m.RxStatus != 0 {
		attrs = append(attrs, slog.String("rx_status", fmt.Sprintf("0x%02x", m.RxStatus)))
	}
	return attrs
}

func (s *StateChangeEvent) appendAttrs(attrs []slog.Attr) []slog.Attr {
	attrs = append(attrs,
		slog.String("entity", s.Entity.String()),
		slog.String("old_state", s.OldState),
		slog.String("new_state", s.NewState),
	)
	if s.Reason != "" {
		attrs = append(attrs, slog.String("reason", s.Reason))
	}
	return attrs
}

func (e *ErrorEventData) appendAttrs(attrs []slog.Attr) []slog.Attr {
	attrs = append(attrs,
		slog.String("error_layer", e.Layer.String()),
		slog.String("error_msg", e.Message),
	)
	if e.Context != "" {
		attrs = append(attrs, slog.String("error_context", e.Context))
	}
	if e.Code != nil {
		attrs = append(attrs, slog.Int("error_code", *e.Code))
	}
	return attrs
}

var _ Logger = (*SlogAdapter)(nil)
