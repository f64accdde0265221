package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/cec-go/cec-go/pkg/cec"
	"github.com/cec-go/cec-go/pkg/log"
)

// Selection holds the event selection flags shared by every command, as
// typed on the command line. Filter parses them.
type Selection struct {
	Session   string
	Device    string
	Layer     string
	Direction string
	Category  string

	Initiator   string
	Destination string
	Opcode      string
	Request     string

	Since string
	Until string
}

// Register adds the selection flags to fs.
func (s *Selection) Register(fs *flag.FlagSet) {
	fs.StringVar(&s.Session, "session", "", "Only events of this session ID")
	fs.StringVar(&s.Device, "device", "", "Only events of this adapter, e.g. /dev/cec0")
	fs.StringVar(&s.Layer, "layer", "", "Only this layer (driver, message, follower)")
	fs.StringVar(&s.Direction, "direction", "", "Only this direction (in, out)")
	fs.StringVar(&s.Category, "category", "", "Only this category (ioctl, message, state, error)")
	fs.StringVar(&s.Initiator, "initiator", "", "Only messages from this logical address (0-15)")
	fs.StringVar(&s.Destination, "destination", "", "Only messages to this logical address (0-15)")
	fs.StringVar(&s.Opcode, "opcode", "", "Only messages with this opcode (name or number)")
	fs.StringVar(&s.Request, "request", "", "Only adapter calls of this request, e.g. CEC_TRANSMIT")
	fs.StringVar(&s.Since, "time-start", "", "Only events at or after this time (RFC3339)")
	fs.StringVar(&s.Until, "time-end", "", "Only events before this time (RFC3339)")
}

// Filter parses the selection into a trace filter. All invalid flags are
// reported together.
func (s Selection) Filter() (log.Filter, error) {
	f := log.Filter{
		SessionID: s.Session,
		Device:    s.Device,
		Request:   strings.ToUpper(s.Request),
	}
	var errs []error
	check := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	f.Layer = optional(s.Layer, parseLayer, check)
	f.Direction = optional(s.Direction, parseDirection, check)
	f.Category = optional(s.Category, parseCategory, check)
	f.Initiator = optional(s.Initiator, func(v string) (uint8, error) {
		return parseAddress("initiator", v)
	}, check)
	f.Destination = optional(s.Destination, func(v string) (uint8, error) {
		return parseAddress("destination", v)
	}, check)
	f.Opcode = optional(s.Opcode, parseOpcode, check)
	f.TimeStart = optional(s.Since, func(v string) (time.Time, error) {
		return parseTime("time-start", v)
	}, check)
	f.TimeEnd = optional(s.Until, func(v string) (time.Time, error) {
		return parseTime("time-end", v)
	}, check)

	return f, errors.Join(errs...)
}

// optional parses a non-empty flag value; an empty value selects everything.
func optional[T any](v string, parse func(string) (T, error), check func(error)) *T {
	if v == "" {
		return nil
	}
	parsed, err := parse(v)
	if err != nil {
		check(err)
		return nil
	}
	return &parsed
}

func parseLayer(s string) (log.Layer, error) {
	switch strings.ToLower(s) {
	case "driver":
		return log.LayerDriver, nil
	case "message":
		return log.LayerMessage, nil
	case "follower":
		return log.LayerFollower, nil
	}
	return 0, fmt.Errorf("invalid layer: %s (must be driver, message, or follower)", s)
}

func parseDirection(s string) (log.Direction, error) {
	switch strings.ToLower(s) {
	case "in":
		return log.DirectionIn, nil
	case "out":
		return log.DirectionOut, nil
	}
	return 0, fmt.Errorf("invalid direction: %s (must be in or out)", s)
}

func parseCategory(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "ioctl":
		return log.CategoryIoctl, nil
	case "message":
		return log.CategoryMessage, nil
	case "state":
		return log.CategoryState, nil
	case "error":
		return log.CategoryError, nil
	}
	return 0, fmt.Errorf("invalid category: %s (must be ioctl, message, state, or error)", s)
}

func parseAddress(what, s string) (uint8, error) {
	la, err := strconv.ParseUint(s, 10, 8)
	if err != nil || la >= cec.NumLogicalAddresses {
		return 0, fmt.Errorf("invalid %s: %s (must be a logical address 0-15)", what, s)
	}
	return uint8(la), nil
}

// parseOpcode accepts an opcode name such as GIVE_OSD_NAME or a number in
// Go literal syntax (70, 0x46).
func parseOpcode(s string) (uint8, error) {
	if op, ok := cec.LookupOpcode(s); ok {
		return op, nil
	}
	op, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid opcode: %s (must be an opcode name or 0-255)", s)
	}
	return uint8(op), nil
}

func parseTime(what, s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s format: %w", what, err)
	}
	return t, nil
}

// openTrace opens path, or stdin for "-", with the selection applied.
func openTrace(path string, sel Selection) (*log.Reader, error) {
	filter, err := sel.Filter()
	if err != nil {
		return nil, err
	}
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace: %w", err)
	}
	return reader, nil
}

// each calls fn for every selected event. A capture cut off inside its last
// event is reported on warn and otherwise treated as complete.
func each(reader *log.Reader, warn io.Writer, fn func(log.Event) error) error {
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := fn(event); err != nil {
			return err
		}
	}
	if reader.Truncated() && warn != nil {
		fmt.Fprintln(warn, "warning: trace ends inside an event; the last event was dropped")
	}
	return nil
}
