package peer

import (
	"sync"
	"time"

	"github.com/cec-go/cec-go/pkg/cec"
)

// Direction distinguishes the two adapter calls that carry a transaction.
type Direction uint8

const (
	// Transmit is an outbound message, optionally waiting for a reply.
	Transmit Direction = iota
	// Receive is an inbound message dequeued from the adapter.
	Receive
)

// Tracker holds the last transaction time per logical address. The zero
// value is ready to use.
type Tracker struct {
	mu sync.RWMutex
	ts [cec.NumLogicalAddresses]uint64
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Update applies the result of a successful transmit or receive.
// Returns the logical address whose slot was written, if any.
//
// Transmit: only for a non-broadcast message with an OK transmit status. With
// a reply timeout the initiator of the reply is stamped with the reply's
// receive time, provided the reply was OK or a feature abort. Without one the
// destination is stamped with the transmit time.
//
// Receive: only for an OK message whose initiator is not unregistered.
func (t *Tracker) Update(dir Direction, msg *cec.Msg) (cec.LogicalAddress, bool) {
	la, ts, ok := slotFor(dir, msg)
	if !ok {
		return 0, false
	}

	t.mu.Lock()
	t.ts[la] = ts
	t.mu.Unlock()
	return la, true
}

func slotFor(dir Direction, msg *cec.Msg) (cec.LogicalAddress, uint64, bool) {
	switch dir {
	case Transmit:
		if !msg.TxOK() || msg.IsBroadcast() {
			return 0, 0, false
		}
		if msg.Timeout != 0 {
			if msg.RxStatus&(cec.RxStatusOK|cec.RxStatusFeatureAbort) == 0 {
				return 0, 0, false
			}
			return msg.Initiator(), msg.RxTimestamp, true
		}
		return msg.Destination(), msg.TxTimestamp, true
	case Receive:
		if msg.Initiator() == cec.LogAddrUnregistered || !msg.RxOK() {
			return 0, 0, false
		}
		return msg.Initiator(), msg.RxTimestamp, true
	}
	return 0, 0, false
}

// LastSeen returns the last transaction timestamp (kernel monotonic ns) for
// la, and false if none has been recorded.
func (t *Tracker) LastSeen(la cec.LogicalAddress) (uint64, bool) {
	if !la.Valid() {
		return 0, false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	ts := t.ts[la]
	return ts, ts != 0
}

// Since returns the time elapsed between the last transaction with la and
// now, both on the kernel monotonic clock.
func (t *Tracker) Since(la cec.LogicalAddress, now uint64) (time.Duration, bool) {
	ts, ok := t.LastSeen(la)
	if !ok || now < ts {
		return 0, false
	}
	return time.Duration(now - ts), true
}

// Snapshot returns a copy of all slots.
func (t *Tracker) Snapshot() [cec.NumLogicalAddresses]uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.ts
}
