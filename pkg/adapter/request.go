package adapter

import "fmt"

// Request identifies a call across the driver boundary.
type Request uint8

const (
	GetCaps Request = iota
	GetPhysAddr
	GetLogAddrs
	Transmit
	Receive
	GetMode
	SetMode
	GetConnectorInfo
)

var requestNames = [...]string{
	GetCaps:          "CEC_ADAP_G_CAPS",
	GetPhysAddr:      "CEC_ADAP_G_PHYS_ADDR",
	GetLogAddrs:      "CEC_ADAP_G_LOG_ADDRS",
	Transmit:         "CEC_TRANSMIT",
	Receive:          "CEC_RECEIVE",
	GetMode:          "CEC_G_MODE",
	SetMode:          "CEC_S_MODE",
	GetConnectorInfo: "CEC_ADAP_G_CONNECTOR_INFO",
}

// String returns the kernel name of the request.
func (r Request) String() string {
	if int(r) < len(requestNames) {
		return requestNames[r]
	}
	return fmt.Sprintf("REQUEST(%d)", uint8(r))
}

// ioctl number encoding (asm-generic):
//
//	bits 0-7:   command number (nr)
//	bits 8-15:  ioctl type
//	bits 16-29: argument size
//	bits 30-31: direction
const (
	iocWrite = 1
	iocRead  = 2

	iocNRShift   = 0
	iocTypeShift = 8
	iocSizeShift = 16
	iocDirShift  = 30
)

func ioc(dir, typ, nr, size uint32) uint32 {
	return dir<<iocDirShift | typ<<iocTypeShift | nr<<iocNRShift | size<<iocSizeShift
}

func ior(nr, size uint32) uint32  { return ioc(iocRead, cecType, nr, size) }
func iow(nr, size uint32) uint32  { return ioc(iocWrite, cecType, nr, size) }
func iowr(nr, size uint32) uint32 { return ioc(iocRead|iocWrite, cecType, nr, size) }

// cec ioctl type character.
const cecType = 'a'

// Kernel ABI sizes of the parameter blocks.
const (
	sizeCaps          = 76
	sizeLogAddrs      = 92
	sizeMsg           = 56
	sizeConnectorInfo = 68
	sizePhysAddr      = 2
	sizeMode          = 4
)

var requestNumbers = [...]uint32{
	GetCaps:          iowr(0, sizeCaps),
	GetPhysAddr:      ior(1, sizePhysAddr),
	GetLogAddrs:      ior(3, sizeLogAddrs),
	Transmit:         iowr(5, sizeMsg),
	Receive:          iowr(6, sizeMsg),
	GetMode:          ior(8, sizeMode),
	SetMode:          iow(9, sizeMode),
	GetConnectorInfo: ior(10, sizeConnectorInfo),
}

// Number returns the ioctl request number, or 0 for an unknown request.
func (r Request) Number() uint32 {
	if int(r) < len(requestNumbers) {
		return requestNumbers[r]
	}
	return 0
}
