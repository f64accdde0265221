package log

import (
	"time"

	"github.com/cec-go/cec-go/pkg/cec"
)

// Event represents a protocol trace event captured at any layer.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event was recorded (wall clock).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies one follower run (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Direction indicates data flow relative to the follower.
	Direction Direction `cbor:"3,keyasint"`

	// Layer where the event was captured.
	Layer Layer `cbor:"4,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// Device is the adapter device node, e.g. /dev/cec0.
	Device string `cbor:"6,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Ioctl       *IoctlEvent       `cbor:"10,keyasint,omitempty"` // Driver layer
	Message     *MessageEvent     `cbor:"11,keyasint,omitempty"` // Message layer
	StateChange *StateChangeEvent `cbor:"12,keyasint,omitempty"` // Follower state
	Error       *ErrorEventData   `cbor:"13,keyasint,omitempty"` // Errors at any layer
}

// Direction indicates the direction of data flow.
type Direction uint8

const (
	// DirectionIn indicates data flowing from the adapter to the follower.
	DirectionIn Direction = 0
	// DirectionOut indicates data flowing from the follower to the adapter.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Layer indicates where the event was captured.
type Layer uint8

const (
	// LayerDriver is the ioctl boundary to the kernel adapter.
	LayerDriver Layer = 0
	// LayerMessage is the CEC message layer.
	LayerMessage Layer = 1
	// LayerFollower is the emulated device.
	LayerFollower Layer = 2
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerDriver:
		return "DRIVER"
	case LayerMessage:
		return "MESSAGE"
	case LayerFollower:
		return "FOLLOWER"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryIoctl indicates an adapter call.
	CategoryIoctl Category = 0
	// CategoryMessage indicates a transmitted or received CEC message.
	CategoryMessage Category = 1
	// CategoryState indicates a state change.
	CategoryState Category = 2
	// CategoryError indicates an error event.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryIoctl:
		return "IOCTL"
	case CategoryMessage:
		return "MESSAGE"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// IoctlEvent captures one call through the adapter boundary.
type IoctlEvent struct {
	// Request is the kernel request name, e.g. CEC_TRANSMIT.
	Request string `cbor:"1,keyasint"`

	// Result is 0 on success, otherwise the errno.
	Result int `cbor:"2,keyasint"`

	// Reason is the human-readable result ("Success" or the errno text).
	Reason string `cbor:"3,keyasint"`
}

// MessageEvent captures a CEC message as seen by the adapter.
type MessageEvent struct {
	Initiator   uint8 `cbor:"1,keyasint"`
	Destination uint8 `cbor:"2,keyasint"`

	// Opcode is nil for a poll (header-only) message.
	Opcode *uint8 `cbor:"3,keyasint,omitempty"`

	// OpcodeName is the display name of the opcode.
	OpcodeName string `cbor:"4,keyasint,omitempty"`

	// Data is the full message including the header byte.
	Data []byte `cbor:"5,keyasint"`

	Sequence    uint32 `cbor:"6,keyasint,omitempty"`
	Timeout     uint32 `cbor:"7,keyasint,omitempty"`
	TxStatus    uint8  `cbor:"8,keyasint,omitempty"`
	RxStatus    uint8  `cbor:"9,keyasint,omitempty"`
	TxTimestamp uint64 `cbor:"10,keyasint,omitempty"`
	RxTimestamp uint64 `cbor:"11,keyasint,omitempty"`
}

// NewMessageEvent builds a MessageEvent from an adapter message block.
func NewMessageEvent(msg *cec.Msg) *MessageEvent {
	ev := &MessageEvent{
		Initiator:   uint8(msg.Initiator()),
		Destination: uint8(msg.Destination()),
		Data:        append([]byte(nil), msg.Bytes()...),
		Sequence:    msg.Sequence,
		Timeout:     msg.Timeout,
		TxStatus:    msg.TxStatus,
		RxStatus:    msg.RxStatus,
		TxTimestamp: msg.TxTimestamp,
		RxTimestamp: msg.RxTimestamp,
	}
	if op, ok := msg.Opcode(); ok {
		ev.Opcode = &op
		ev.OpcodeName = cec.OpcodeName(msg)
	}
	return ev
}

// StateChangeEvent captures follower state transitions.
type StateChangeEvent struct {
	// Entity being changed.
	Entity StateEntity `cbor:"1,keyasint"`

	// OldState is the previous state (may be empty).
	OldState string `cbor:"2,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"3,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"4,keyasint,omitempty"`
}

// StateEntity indicates what entity changed state.
type StateEntity uint8

const (
	// StateEntityPower indicates a power status change of the emulated device.
	StateEntityPower StateEntity = 0
	// StateEntityAdapter indicates an adapter configuration change.
	StateEntityAdapter StateEntity = 1
	// StateEntityFollower indicates a follower lifecycle change.
	StateEntityFollower StateEntity = 2
)

// String returns the state entity name.
func (s StateEntity) String() string {
	switch s {
	case StateEntityPower:
		return "POWER"
	case StateEntityAdapter:
		return "ADAPTER"
	case StateEntityFollower:
		return "FOLLOWER"
	default:
		return "UNKNOWN"
	}
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Code is the error code (if applicable).
	Code *int `cbor:"3,keyasint,omitempty"`

	// Context describes what operation was being performed.
	Context string `cbor:"4,keyasint,omitempty"`
}

// now is the clock for events stamped without a timestamp.
var now = time.Now

// errnoTimedOut is ETIMEDOUT on Linux, where captures are recorded.
const errnoTimedOut = 110

// IsIdleReceive reports a CEC_RECEIVE that timed out on a quiet bus. A
// polling follower produces one per poll interval; they are not failures.
func (e Event) IsIdleReceive() bool {
	return e.Ioctl != nil && e.Ioctl.Request == "CEC_RECEIVE" && e.Ioctl.Result == errnoTimedOut
}
