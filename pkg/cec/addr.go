package cec

import "fmt"

// LogicalAddress identifies a device role on the bus (0-15).
type LogicalAddress uint8

// Logical addresses defined by CEC.
const (
	LogAddrTV           LogicalAddress = 0
	LogAddrRecord1      LogicalAddress = 1
	LogAddrRecord2      LogicalAddress = 2
	LogAddrTuner1       LogicalAddress = 3
	LogAddrPlayback1    LogicalAddress = 4
	LogAddrAudioSystem  LogicalAddress = 5
	LogAddrTuner2       LogicalAddress = 6
	LogAddrTuner3       LogicalAddress = 7
	LogAddrPlayback2    LogicalAddress = 8
	LogAddrRecord3      LogicalAddress = 9
	LogAddrTuner4       LogicalAddress = 10
	LogAddrPlayback3    LogicalAddress = 11
	LogAddrBackup1      LogicalAddress = 12
	LogAddrBackup2      LogicalAddress = 13
	LogAddrSpecific     LogicalAddress = 14
	LogAddrUnregistered LogicalAddress = 15 // as initiator address
	LogAddrBroadcast    LogicalAddress = 15 // as destination address
)

// NumLogicalAddresses is the size of the logical address space.
const NumLogicalAddresses = 16

// MaxLogAddrs is the maximum number of logical addresses an adapter can claim.
const MaxLogAddrs = 4

// Valid reports whether la fits in 4 bits.
func (la LogicalAddress) Valid() bool {
	return la < NumLogicalAddresses
}

// String returns the role name of the logical address.
func (la LogicalAddress) String() string {
	switch la {
	case LogAddrTV:
		return "TV"
	case LogAddrRecord1:
		return "Recording Device 1"
	case LogAddrRecord2:
		return "Recording Device 2"
	case LogAddrTuner1:
		return "Tuner 1"
	case LogAddrPlayback1:
		return "Playback Device 1"
	case LogAddrAudioSystem:
		return "Audio System"
	case LogAddrTuner2:
		return "Tuner 2"
	case LogAddrTuner3:
		return "Tuner 3"
	case LogAddrPlayback2:
		return "Playback Device 2"
	case LogAddrRecord3:
		return "Recording Device 3"
	case LogAddrTuner4:
		return "Tuner 4"
	case LogAddrPlayback3:
		return "Playback Device 3"
	case LogAddrBackup1:
		return "Backup 1"
	case LogAddrBackup2:
		return "Backup 2"
	case LogAddrSpecific:
		return "Specific"
	case LogAddrUnregistered:
		return "Unregistered"
	default:
		return fmt.Sprintf("Invalid(%d)", uint8(la))
	}
}

// PhysicalAddress is the a.b.c.d HDMI topology address packed into 16 bits.
type PhysicalAddress uint16

// PhysAddrInvalid marks an adapter without a physical address.
const PhysAddrInvalid PhysicalAddress = 0xffff

// String formats the address as a.b.c.d, or f.f.f.f when invalid.
func (pa PhysicalAddress) String() string {
	return fmt.Sprintf("%x.%x.%x.%x", uint16(pa)>>12, (uint16(pa)>>8)&0xf, (uint16(pa)>>4)&0xf, uint16(pa)&0xf)
}
