package follower

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"syscall"
	"time"

	"github.com/cec-go/cec-go/pkg/adapter"
	"github.com/cec-go/cec-go/pkg/cec"
	"github.com/cec-go/cec-go/pkg/ignore"
	"github.com/cec-go/cec-go/pkg/log"
	"github.com/cec-go/cec-go/pkg/peer"
	"github.com/cec-go/cec-go/pkg/state"
)

// Processor answers messages once the node is ready. It owns the receive
// side of the adapter until ctx is cancelled or it returns.
type Processor interface {
	Process(ctx context.Context, n *Node) error
}

// Node is a CEC follower bound to one adapter.
type Node struct {
	adap   *adapter.Adapter
	config Config
	ignore *ignore.Table
	plog   log.Logger

	mu            sync.RWMutex
	nodeState     NodeState
	snap          Snapshot
	state         *state.DeviceState
	stats         Stats
	eventHandlers []EventHandler

	outMu sync.Mutex

	// Clocks, replaceable in tests.
	now       func() time.Time
	monotonic func() uint64
}

// New creates a node. The device state is initialised from
// config.State immediately.
func New(a *adapter.Adapter, config Config) *Node {
	if config.Out == nil {
		config.Out = io.Discard
	}
	n := &Node{
		adap:      a,
		config:    config,
		ignore:    config.Ignore,
		plog:      log.Stamp(config.ProtocolLogger, a.SessionID(), a.Device()),
		state:     state.Init(config.State),
		now:       time.Now,
		monotonic: adapter.MonotonicNow,
	}
	if n.ignore == nil {
		n.ignore = &ignore.Table{}
	}
	return n
}

// Adapter returns the adapter the node drives.
func (n *Node) Adapter() *adapter.Adapter { return n.adap }

// Ignore returns the node's ignore table.
func (n *Node) Ignore() *ignore.Table { return n.ignore }

// Tracker returns the peer timestamp tracker.
func (n *Node) Tracker() *peer.Tracker { return n.adap.Tracker() }

// NodeState returns the lifecycle state.
func (n *Node) NodeState() NodeState {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.nodeState
}

// Snapshot returns the result of the last successful Discover.
func (n *Node) Snapshot() Snapshot {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.snap
}

// State returns a copy of the emulated device state.
func (n *Node) State() state.DeviceState {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return *n.state
}

// Stats returns the message counters.
func (n *Node) Stats() Stats {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.stats
}

// OnEvent registers a handler for node events.
func (n *Node) OnEvent(handler EventHandler) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.eventHandlers = append(n.eventHandlers, handler)
}

// Discover queries capabilities, physical address, logical addresses and
// connector info. Connector info is optional; the other queries must
// succeed. Device features are extracted when the adapter runs CEC 2.0 or
// later.
func (n *Node) Discover() (Snapshot, error) {
	snap := Snapshot{Device: n.adap.Device()}

	caps, err := n.adap.Caps()
	if err != nil {
		return Snapshot{}, n.discoveryFailed("capabilities", err)
	}
	snap.Caps = caps

	pa, err := n.adap.PhysAddr()
	if err != nil {
		return Snapshot{}, n.discoveryFailed("physical address", err)
	}
	snap.PhysAddr = pa

	laddrs, err := n.adap.LogAddrs()
	if err != nil {
		return Snapshot{}, n.discoveryFailed("logical addresses", err)
	}
	snap.LogAddrs = laddrs

	if snap.HasCap(cec.CapConnectorInfo) {
		info, err := n.adap.ConnectorInfo()
		if err != nil {
			n.warn("could not query connector info: %v", err)
		} else {
			snap.ConnectorInfo = info
			snap.HasConnectorInfo = true
		}
	}

	snap.Features = state.FeaturesFor(&snap.LogAddrs)

	if snap.PhysAddr == cec.PhysAddrInvalid && snap.HasCap(cec.CapConnectorInfo) {
		n.warn("no physical address yet, waiting for the connector to report one")
	}

	n.mu.Lock()
	n.snap = snap
	n.nodeState = StateDiscovered
	n.mu.Unlock()

	n.debugLog("adapter discovered",
		"device", snap.Device,
		"driver", snap.Caps.DriverName(),
		"physAddr", snap.PhysAddr.String(),
		"numLogAddrs", snap.LogAddrs.NumLogAddrs,
		"cecVersion", cec.VersionName(snap.LogAddrs.CECVersion))

	return snap, nil
}

// CheckAddressing reports the addressing the adapter still lacks. A
// physical address is required when the adapter sets it itself and has no
// connector to learn it from; a logical address is required when the
// adapter manages them. Both problems are reported together.
func CheckAddressing(snap Snapshot) error {
	var errs []error
	if snap.PhysAddr == cec.PhysAddrInvalid &&
		snap.HasCap(cec.CapPhysAddr) && !snap.HasCap(cec.CapConnectorInfo) {
		errs = append(errs, ErrMissingPhysAddr)
	}
	if snap.LogAddrs.NumLogAddrs == 0 && snap.HasCap(cec.CapLogAddrs) {
		errs = append(errs, ErrMissingLogAddr)
	}
	return errors.Join(errs...)
}

// Run hands the adapter to proc and blocks until it returns. When the
// device state has a power toggle interval, the toggle runs alongside.
func (n *Node) Run(ctx context.Context, proc Processor) error {
	n.mu.Lock()
	if n.nodeState != StateDiscovered {
		n.mu.Unlock()
		return ErrNotDiscovered
	}
	n.nodeState = StateRunning
	interval := n.state.TogglePowerStatus
	n.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	if interval > 0 {
		toggler := &state.PowerToggler{
			Interval: interval,
			Toggle:   func(now time.Time) { n.TogglePower(now, "toggle-power-status") },
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = toggler.Run(ctx)
		}()
	}

	n.logStateChange(log.StateEntityFollower, StateDiscovered.String(), StateRunning.String(), "")
	err := proc.Process(ctx, n)

	cancel()
	wg.Wait()

	n.mu.Lock()
	n.nodeState = StateStopped
	n.mu.Unlock()
	n.logStateChange(log.StateEntityFollower, StateRunning.String(), StateStopped.String(), "")

	if errors.Is(err, context.Canceled) {
		return nil
	}
	if err != nil {
		n.logError(log.LayerFollower, "run", err)
	}
	return err
}

// TogglePower flips the emulated power status between On and Standby.
func (n *Node) TogglePower(now time.Time, reason string) cec.PowerStatus {
	n.mu.Lock()
	old := n.state.PowerStatus
	next := n.state.TogglePower(now)
	n.mu.Unlock()

	n.powerChanged(old, next, now, reason)
	return next
}

// SetPowerStatus sets the emulated power status. It returns false if the
// status was already ps.
func (n *Node) SetPowerStatus(ps cec.PowerStatus, reason string) bool {
	now := n.now()

	n.mu.Lock()
	old := n.state.PowerStatus
	changed := n.state.SetPowerStatus(ps, now)
	n.mu.Unlock()

	if changed {
		n.powerChanged(old, ps, now, reason)
	}
	return changed
}

func (n *Node) powerChanged(old, next cec.PowerStatus, now time.Time, reason string) {
	if n.config.ShowState {
		n.printf("Power status changed from %s to %s\n", old, next)
	}
	n.logStateChange(log.StateEntityPower, old.String(), next.String(), reason)
	n.emit(Event{Type: EventPowerStatusChanged, Time: now, OldPower: old, NewPower: next})
}

// HandleReceived applies the ignore rules to a received message, prints it
// when message display is on and emits the matching event. It returns
// false for an ignored message.
func (n *Node) HandleReceived(msg *cec.Msg) bool {
	now := n.now()

	if n.ignore.IgnoredMsg(msg) {
		n.mu.Lock()
		n.stats.Ignored++
		n.mu.Unlock()
		n.debugLog("message ignored",
			"initiator", msg.Initiator(),
			"opcode", cec.OpcodeName(msg))
		n.emit(Event{Type: EventMessageIgnored, Time: now, Msg: *msg})
		return false
	}

	n.mu.Lock()
	n.stats.Received++
	n.mu.Unlock()

	if n.config.ShowMsgs {
		n.printf("%s", FormatReceived(msg, n.timestampFormatter()))
	}
	n.emit(Event{Type: EventMessageReceived, Time: now, Msg: *msg})
	return true
}

// PeerAge returns how long ago the last transaction with la completed.
func (n *Node) PeerAge(la cec.LogicalAddress) (time.Duration, bool) {
	return n.Tracker().Since(la, n.monotonic())
}

func (n *Node) timestampFormatter() TimestampFormatter {
	if n.config.WallClock {
		return WallClock(n.now(), n.monotonic())
	}
	return Monotonic
}

func (n *Node) emit(event Event) {
	n.mu.RLock()
	handlers := append([]EventHandler(nil), n.eventHandlers...)
	n.mu.RUnlock()

	for _, handler := range handlers {
		go handler(event)
	}
}

func (n *Node) logStateChange(entity log.StateEntity, oldState, newState, reason string) {
	n.plog.Log(log.Event{
		Timestamp: n.now(),
		Layer:     log.LayerFollower,
		Category:  log.CategoryState,
		StateChange: &log.StateChangeEvent{
			Entity:   entity,
			OldState: oldState,
			NewState: newState,
			Reason:   reason,
		},
	})
}

func (n *Node) discoveryFailed(what string, err error) error {
	n.logError(log.LayerDriver, "discover "+what, err)
	return fmt.Errorf("%w: %s: %w", ErrDiscovery, what, err)
}

// logError records err as an error event; an errno becomes the event code.
func (n *Node) logError(layer log.Layer, op string, err error) {
	data := &log.ErrorEventData{Layer: layer, Message: err.Error(), Context: op}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		code := int(errno)
		data.Code = &code
	}
	n.plog.Log(log.Event{
		Timestamp: n.now(),
		Layer:     layer,
		Category:  log.CategoryError,
		Error:     data,
	})
}

func (n *Node) warn(format string, args ...any) {
	n.mu.Lock()
	n.stats.Warnings++
	n.mu.Unlock()

	if !n.config.NoWarnings {
		n.printf("Warning: "+format+"\n", args...)
	}
}

func (n *Node) printf(format string, args ...any) {
	n.outMu.Lock()
	defer n.outMu.Unlock()
	fmt.Fprintf(n.config.Out, format, args...)
}

// debugLog logs a debug message if logging is enabled.
func (n *Node) debugLog(msg string, args ...any) {
	if n.config.Logger != nil {
		n.config.Logger.Debug(msg, args...)
	}
}
