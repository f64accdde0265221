//go:build !linux

package adapter

import (
	"fmt"
	"runtime"
	"time"
)

var processStart = time.Now()

// Open reports that no CEC driver exists for this platform.
func Open(path string) (Driver, error) {
	return nil, fmt.Errorf("%w: %s: no CEC support on %s", ErrNoDevice, path, runtime.GOOS)
}

// MonotonicNow returns the time since process start in nanoseconds.
func MonotonicNow() uint64 {
	return uint64(time.Since(processStart))
}
