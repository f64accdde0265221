// Package follower ties the adapter, device state and ignore rules into a
// CEC follower node.
//
// A Node discovers the adapter's capabilities and addressing, checks that
// the adapter is ready to take part in the bus, and then hands control to a
// Processor that answers messages:
//
//	a := adapter.New(drv, adapter.Config{Device: path})
//	n := follower.New(a, follower.DefaultConfig())
//
//	snap, err := n.Discover()
//	if err != nil {
//	    return err
//	}
//	follower.WriteSummary(os.Stdout, snap)
//	if err := follower.CheckAddressing(snap); err != nil {
//	    return err
//	}
//	return n.Run(ctx, &follower.Monitor{})
//
// # Events
//
// Nodes emit events for received and ignored messages and power status
// changes. Handlers registered with OnEvent run on their own goroutine.
//
// # Monitor
//
// Monitor is a minimal Processor: it receives messages, drops those matched
// by the ignore rules and optionally prints the rest. It does not reply.
package follower
