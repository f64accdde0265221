package adapter

import (
	"errors"
	"fmt"
)

var (
	// ErrNoDevice is returned when the device node cannot be opened.
	ErrNoDevice = errors.New("cannot open CEC device")

	// ErrEnumerationUnsupported is returned when a device is requested by
	// driver or adapter name instead of by path.
	ErrEnumerationUnsupported = errors.New("finding a CEC device by driver or adapter name is not supported")
)

// Find resolves a device by driver and adapter name. Enumeration is not
// implemented; callers must pass a device path.
func Find(driver, adapterName string) (string, error) {
	return "", fmt.Errorf("%w (driver %q, adapter %q)", ErrEnumerationUnsupported, driver, adapterName)
}
