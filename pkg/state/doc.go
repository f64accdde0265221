// Package state holds the emulated device state of the follower and the
// device feature flags derived from the adapter's logical address setup.
//
// Init builds the startup state from a small set of options. The state is
// plain data: the follower node owns it and serialises access.
package state
