// Package adapter wraps the privileged calls made against a CEC adapter.
//
// Every request goes through Adapter.Call, which forwards it to a Driver
// exactly once, records peer transaction times on success and optionally
// traces the call:
//
//	drv, err := adapter.Open("/dev/cec0")
//	if err != nil {
//	    return err
//	}
//	a := adapter.New(drv, adapter.Config{Device: "/dev/cec0", Trace: true})
//	defer a.Close()
//
//	caps, err := a.Caps()
//
// The Linux driver talks to the kernel CEC framework through ioctls on the
// device node. Tests substitute their own Driver.
package adapter
