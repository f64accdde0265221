package follower

import (
	"io"
	"log/slog"
	"time"

	"github.com/cec-go/cec-go/pkg/cec"
	"github.com/cec-go/cec-go/pkg/ignore"
	"github.com/cec-go/cec-go/pkg/log"
	"github.com/cec-go/cec-go/pkg/state"
)

// NodeState is the lifecycle state of a Node.
type NodeState uint8

const (
	// StateIdle - created, adapter not yet queried.
	StateIdle NodeState = iota

	// StateDiscovered - capabilities and addressing are known.
	StateDiscovered

	// StateRunning - a processor owns the adapter.
	StateRunning

	// StateStopped - the processor returned.
	StateStopped
)

// String returns the state name.
func (s NodeState) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateDiscovered:
		return "DISCOVERED"
	case StateRunning:
		return "RUNNING"
	case StateStopped:
		return "STOPPED"
	default:
		return "UNKNOWN"
	}
}

// Config configures a Node.
type Config struct {
	// State are the startup options of the emulated device.
	State state.Options

	// Ignore holds the ignore rules. Nil ignores nothing.
	Ignore *ignore.Table

	// ShowMsgs prints every received, non-ignored message to Out.
	ShowMsgs bool

	// ShowState prints emulated state changes to Out.
	ShowState bool

	// WallClock prints message timestamps as wall-clock time.
	WallClock bool

	// NoWarnings suppresses warning lines on Out.
	NoWarnings bool

	// Out receives user-facing output. Defaults to io.Discard.
	Out io.Writer

	// ProtocolLogger receives state change events. Nil disables capture.
	ProtocolLogger log.Logger

	// Logger is the optional logger for debug output.
	// If nil, logging is disabled.
	Logger *slog.Logger
}

// DefaultConfig returns a Config with no output and no ignore rules.
func DefaultConfig() Config {
	return Config{
		Out: io.Discard,
	}
}

// Snapshot is what discovery learned about the adapter.
type Snapshot struct {
	Device   string
	Caps     cec.Caps
	PhysAddr cec.PhysicalAddress
	LogAddrs cec.LogAddrs

	// ConnectorInfo is valid when HasConnectorInfo is set.
	ConnectorInfo    cec.ConnectorInfo
	HasConnectorInfo bool

	// Features are derived from the first logical address on CEC 2.0.
	Features state.DeviceFeatures
}

// HasCap reports whether the adapter has capability bit c.
func (s *Snapshot) HasCap(c uint32) bool {
	return s.Caps.Capabilities&c != 0
}

// EventType identifies node events.
type EventType uint8

const (
	// EventMessageReceived - a message passed the ignore rules.
	EventMessageReceived EventType = iota

	// EventMessageIgnored - a message matched an ignore rule.
	EventMessageIgnored

	// EventPowerStatusChanged - the emulated power status changed.
	EventPowerStatusChanged
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventMessageReceived:
		return "MESSAGE_RECEIVED"
	case EventMessageIgnored:
		return "MESSAGE_IGNORED"
	case EventPowerStatusChanged:
		return "POWER_STATUS_CHANGED"
	default:
		return "UNKNOWN"
	}
}

// Event is emitted by a Node.
type Event struct {
	Type EventType
	Time time.Time

	// Msg is set for message events.
	Msg cec.Msg

	// OldPower and NewPower are set for EventPowerStatusChanged.
	OldPower cec.PowerStatus
	NewPower cec.PowerStatus
}

// EventHandler receives node events.
type EventHandler func(Event)

// Stats counts messages seen by the node.
type Stats struct {
	Received uint64
	Ignored  uint64
	Warnings uint64
}
