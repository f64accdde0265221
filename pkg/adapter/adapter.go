package adapter

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"syscall"

	"github.com/google/uuid"

	"github.com/cec-go/cec-go/pkg/cec"
	"github.com/cec-go/cec-go/pkg/log"
	"github.com/cec-go/cec-go/pkg/peer"
)

// ErrUnsupportedArg is returned by drivers when arg does not match the
// parameter block of the request.
var ErrUnsupportedArg = errors.New("unsupported argument for request")

// Driver is the privileged request/response boundary to an adapter.
// arg is a pointer to the parameter block for req (*cec.Caps,
// *cec.PhysicalAddress, *cec.LogAddrs, *cec.Msg, *uint32 or
// *cec.ConnectorInfo). A failed call returns the errno as an error.
type Driver interface {
	Ioctl(req Request, arg any) error
}

// Config configures an Adapter.
type Config struct {
	// Device is the device node, used in diagnostics only.
	Device string

	// Trace emits one line per call through TraceLogger.
	Trace bool

	// Logger for debug output. Nil disables it.
	Logger *slog.Logger

	// TraceLogger receives the trace lines at Info level, independent of
	// the level Logger filters at. Defaults to Logger.
	TraceLogger *slog.Logger

	// ProtocolLogger receives an IoctlEvent per call, and a MessageEvent
	// for every successful transmit or receive. Nil disables capture.
	ProtocolLogger log.Logger

	// SessionID is stamped on protocol events. Generated if empty.
	SessionID string

	// Tracker records peer transaction times. Created if nil.
	Tracker *peer.Tracker
}

// Adapter serialises calls to a Driver and keeps the peer tracker current.
type Adapter struct {
	mu sync.Mutex

	drv     Driver
	device  string
	trace   bool
	logger  *slog.Logger
	tracer  *slog.Logger
	plog    log.Logger
	session string
	tracker *peer.Tracker
}

// New creates an Adapter around drv.
func New(drv Driver, cfg Config) *Adapter {
	a := &Adapter{
		drv:     drv,
		device:  cfg.Device,
		trace:   cfg.Trace,
		logger:  cfg.Logger,
		tracer:  cfg.TraceLogger,
		session: cfg.SessionID,
		tracker: cfg.Tracker,
	}
	if a.session == "" {
		a.session = uuid.New().String()
	}
	if a.tracker == nil {
		a.tracker = peer.NewTracker()
	}
	if a.tracer == nil {
		a.tracer = a.logger
	}
	a.plog = log.Stamp(cfg.ProtocolLogger, a.session, a.device)
	return a
}

// Device returns the device node the adapter was opened on.
func (a *Adapter) Device() string { return a.device }

// SessionID returns the identifier stamped on protocol events.
func (a *Adapter) SessionID() string { return a.session }

// Tracker returns the peer timestamp tracker updated by Call.
func (a *Adapter) Tracker() *peer.Tracker { return a.tracker }

// Close releases the driver if it holds resources.
func (a *Adapter) Close() error {
	if c, ok := a.drv.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Call forwards req to the driver exactly once. It returns nil on success
// and the driver's error (normally a syscall.Errno) otherwise. A successful
// transmit or receive updates the peer tracker.
func (a *Adapter) Call(req Request, arg any) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	err := a.drv.Ioctl(req, arg)
	status := Status(err)

	if a.trace && a.tracer != nil {
		a.tracer.Info(fmt.Sprintf("%s returned %d (%s)", req, status, reason(err)))
	}

	a.plog.Log(log.Event{
		Direction: log.DirectionOut,
		Layer:     log.LayerDriver,
		Category:  log.CategoryIoctl,
		Ioctl: &log.IoctlEvent{
			Request: req.String(),
			Result:  status,
			Reason:  reason(err),
		},
	})

	if err != nil {
		return err
	}

	if msg, ok := arg.(*cec.Msg); ok {
		a.onMessage(req, msg)
	}
	return nil
}

func (a *Adapter) onMessage(req Request, msg *cec.Msg) {
	var dir peer.Direction
	var evDir log.Direction
	switch req {
	case Transmit:
		dir, evDir = peer.Transmit, log.DirectionOut
	case Receive:
		dir, evDir = peer.Receive, log.DirectionIn
	default:
		return
	}

	if la, ok := a.tracker.Update(dir, msg); ok {
		a.debugLog("peer timestamp updated", "la", la, "request", req.String())
	}

	a.plog.Log(log.Event{
		Direction: evDir,
		Layer:     log.LayerMessage,
		Category:  log.CategoryMessage,
		Message:   log.NewMessageEvent(msg),
	})
}

func (a *Adapter) debugLog(msg string, args ...any) {
	if a.logger != nil {
		a.logger.Debug(msg, args...)
	}
}

// Status converts a Call result into the numeric view: 0 for success,
// the errno for a syscall error and EIO for any other error.
func Status(err error) int {
	if err == nil {
		return 0
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return int(errno)
	}
	return int(syscall.EIO)
}

func reason(err error) string {
	if err == nil {
		return "Success"
	}
	return err.Error()
}

// Caps queries the adapter capabilities.
func (a *Adapter) Caps() (cec.Caps, error) {
	var caps cec.Caps
	err := a.Call(GetCaps, &caps)
	return caps, err
}

// PhysAddr queries the adapter's physical address.
func (a *Adapter) PhysAddr() (cec.PhysicalAddress, error) {
	pa := cec.PhysAddrInvalid
	err := a.Call(GetPhysAddr, &pa)
	return pa, err
}

// LogAddrs queries the claimed logical addresses.
func (a *Adapter) LogAddrs() (cec.LogAddrs, error) {
	var laddrs cec.LogAddrs
	err := a.Call(GetLogAddrs, &laddrs)
	return laddrs, err
}

// ConnectorInfo queries the connector the adapter is associated with.
func (a *Adapter) ConnectorInfo() (cec.ConnectorInfo, error) {
	var info cec.ConnectorInfo
	err := a.Call(GetConnectorInfo, &info)
	return info, err
}

// Mode queries the initiator and follower mode of this file handle.
func (a *Adapter) Mode() (uint32, error) {
	var mode uint32
	err := a.Call(GetMode, &mode)
	return mode, err
}

// SetMode sets the initiator and follower mode of this file handle.
func (a *Adapter) SetMode(mode uint32) error {
	return a.Call(SetMode, &mode)
}

// Transmit sends msg. On return msg carries the transmit result and, when
// msg.Timeout is set, the reply.
func (a *Adapter) Transmit(msg *cec.Msg) error {
	return a.Call(Transmit, msg)
}

// Receive dequeues the next received message into msg. msg.Timeout bounds
// the wait in milliseconds; 0 blocks until a message arrives.
func (a *Adapter) Receive(msg *cec.Msg) error {
	return a.Call(Receive, msg)
}
