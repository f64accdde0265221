// Package peer tracks when the follower last completed a transaction with
// each logical address on the bus.
//
// The Tracker holds one timestamp per logical address. It is written only by
// the adapter call wrapper after a successful transmit or receive, using the
// kernel's monotonic timestamps carried in the message, so protocol logic
// can tell whether a peer is still responding without re-deriving it from
// raw transaction history.
package peer
