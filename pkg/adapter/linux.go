//go:build linux

package adapter

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/cec-go/cec-go/pkg/cec"
)

// Compile-time checks that the Go layouts match the kernel ABI.
var (
	_ [0]struct{} = [unsafe.Sizeof(cec.Caps{}) - sizeCaps]struct{}{}
	_ [0]struct{} = [sizeCaps - unsafe.Sizeof(cec.Caps{})]struct{}{}
	_ [0]struct{} = [unsafe.Sizeof(cec.LogAddrs{}) - sizeLogAddrs]struct{}{}
	_ [0]struct{} = [sizeLogAddrs - unsafe.Sizeof(cec.LogAddrs{})]struct{}{}
	_ [0]struct{} = [unsafe.Sizeof(cec.Msg{}) - sizeMsg]struct{}{}
	_ [0]struct{} = [sizeMsg - unsafe.Sizeof(cec.Msg{})]struct{}{}
	_ [0]struct{} = [unsafe.Sizeof(cec.ConnectorInfo{}) - sizeConnectorInfo]struct{}{}
	_ [0]struct{} = [sizeConnectorInfo - unsafe.Sizeof(cec.ConnectorInfo{})]struct{}{}
)

// LinuxDriver issues ioctls on an open /dev/cecN file descriptor.
type LinuxDriver struct {
	fd   int
	path string
}

// Open opens a CEC device node for reading and writing.
func Open(path string) (*LinuxDriver, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNoDevice, path, err)
	}
	return &LinuxDriver{fd: fd, path: path}, nil
}

// Path returns the device node.
func (d *LinuxDriver) Path() string { return d.path }

// Close closes the file descriptor.
func (d *LinuxDriver) Close() error {
	if d.fd < 0 {
		return nil
	}
	err := unix.Close(d.fd)
	d.fd = -1
	return err
}

// Ioctl implements Driver.
func (d *LinuxDriver) Ioctl(req Request, arg any) error {
	ptr, err := argPointer(req, arg)
	if err != nil {
		return err
	}
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(d.fd), uintptr(req.Number()), uintptr(ptr))
	if errno != 0 {
		return errno
	}
	return nil
}

// argPointer checks that arg is the parameter block req expects.
func argPointer(req Request, arg any) (unsafe.Pointer, error) {
	var ptr unsafe.Pointer
	switch req {
	case GetCaps:
		if p, ok := arg.(*cec.Caps); ok {
			ptr = unsafe.Pointer(p)
		}
	case GetPhysAddr:
		if p, ok := arg.(*cec.PhysicalAddress); ok {
			ptr = unsafe.Pointer(p)
		}
	case GetLogAddrs:
		if p, ok := arg.(*cec.LogAddrs); ok {
			ptr = unsafe.Pointer(p)
		}
	case Transmit, Receive:
		if p, ok := arg.(*cec.Msg); ok {
			ptr = unsafe.Pointer(p)
		}
	case GetMode, SetMode:
		if p, ok := arg.(*uint32); ok {
			ptr = unsafe.Pointer(p)
		}
	case GetConnectorInfo:
		if p, ok := arg.(*cec.ConnectorInfo); ok {
			ptr = unsafe.Pointer(p)
		}
	}
	if ptr == nil {
		return nil, fmt.Errorf("%w: %s with %T", ErrUnsupportedArg, req, arg)
	}
	return ptr, nil
}

// MonotonicNow returns CLOCK_MONOTONIC in nanoseconds, the clock of the
// kernel's message timestamps.
func MonotonicNow() uint64 {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return 0
	}
	return uint64(ts.Nano())
}

var _ Driver = (*LinuxDriver)(nil)
