package follower

import "errors"

var (
	// ErrDiscovery is returned when a required adapter query fails.
	ErrDiscovery = errors.New("adapter discovery failed")

	// ErrMissingPhysAddr reports an adapter that needs a physical address
	// but has none.
	ErrMissingPhysAddr = errors.New("missing physical address, use cec-ctl to configure this")

	// ErrMissingLogAddr reports an adapter without any claimed logical
	// address.
	ErrMissingLogAddr = errors.New("missing logical address(es), use cec-ctl to configure this")

	// ErrNotDiscovered is returned by Run before Discover succeeded.
	ErrNotDiscovered = errors.New("adapter not discovered")
)
