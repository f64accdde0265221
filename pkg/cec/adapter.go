package cec

import (
	"bytes"
	"fmt"
	"strings"
)

// Adapter capability bits reported in Caps.Capabilities.
const (
	CapPhysAddr      uint32 = 1 << 0
	CapLogAddrs      uint32 = 1 << 1
	CapTransmit      uint32 = 1 << 2
	CapPassthrough   uint32 = 1 << 3
	CapRC            uint32 = 1 << 4
	CapMonitorAll    uint32 = 1 << 5
	CapNeedsHPD      uint32 = 1 << 6
	CapMonitorPin    uint32 = 1 << 7
	CapConnectorInfo uint32 = 1 << 8
	CapReplyVendorID uint32 = 1 << 9
)

var capNames = []struct {
	bit  uint32
	name string
}{
	{CapPhysAddr, "Physical Address"},
	{CapLogAddrs, "Logical Addresses"},
	{CapTransmit, "Transmit"},
	{CapPassthrough, "Passthrough"},
	{CapRC, "Remote Control Support"},
	{CapMonitorAll, "Monitor All"},
	{CapNeedsHPD, "Needs HPD"},
	{CapMonitorPin, "Monitor Pin"},
	{CapConnectorInfo, "Connector Info"},
	{CapReplyVendorID, "Reply Vendor ID"},
}

// CapsString lists the names of the capability bits set in caps.
func CapsString(caps uint32) string {
	var names []string
	for _, c := range capNames {
		if caps&c.bit != 0 {
			names = append(names, c.name)
		}
	}
	return strings.Join(names, ", ")
}

// CEC protocol versions.
const (
	Version1_3A uint8 = 4
	Version1_4  uint8 = 5
	Version2_0  uint8 = 6
)

// Device feature operand bits (the byte following the RC profile bytes).
const (
	FeatExt                       uint8 = 0x80 // more feature bytes follow
	FeatDevHasRecordTVScreen      uint8 = 0x40
	FeatDevHasSetOSDString        uint8 = 0x20
	FeatDevHasDeckControl         uint8 = 0x10
	FeatDevHasSetAudioRate        uint8 = 0x08
	FeatDevSinkHasARCTx           uint8 = 0x04
	FeatDevSourceHasARCRx         uint8 = 0x02
	FeatDevHasSetAudioVolumeLevel uint8 = 0x01
)

// Adapter modes for SetMode.
const (
	ModeNoInitiator    uint32 = 0x0
	ModeInitiator      uint32 = 0x1
	ModeExclInitiator  uint32 = 0x2
	ModeNoFollower     uint32 = 0x00
	ModeFollower       uint32 = 0x10
	ModeExclFollower   uint32 = 0x20
	ModeExclFollowerPT uint32 = 0x30
	ModeMonitorPin     uint32 = 0xd0
	ModeMonitor        uint32 = 0xe0
	ModeMonitorAll     uint32 = 0xf0

	ModeInitiatorMask uint32 = 0x0f
	ModeFollowerMask  uint32 = 0xf0
)

var initiatorModeNames = map[uint32]string{
	ModeNoInitiator:   "no initiator",
	ModeInitiator:     "initiator",
	ModeExclInitiator: "exclusive initiator",
}

var followerModeNames = map[uint32]string{
	ModeNoFollower:     "no follower",
	ModeFollower:       "follower",
	ModeExclFollower:   "exclusive follower",
	ModeExclFollowerPT: "exclusive follower (passthrough)",
	ModeMonitorPin:     "pin monitor",
	ModeMonitor:        "monitor",
	ModeMonitorAll:     "monitor all",
}

// ModeString renders the initiator and follower halves of an adapter mode,
// e.g. "initiator, follower".
func ModeString(mode uint32) string {
	name := func(names map[uint32]string, v uint32) string {
		if n, ok := names[v]; ok {
			return n
		}
		return fmt.Sprintf("unknown (0x%02x)", v)
	}
	return name(initiatorModeNames, mode&ModeInitiatorMask) + ", " +
		name(followerModeNames, mode&ModeFollowerMask)
}

// Caps mirrors struct cec_caps.
type Caps struct {
	Driver            [32]byte
	Name              [32]byte
	AvailableLogAddrs uint32
	Capabilities      uint32
	Version           uint32
}

// DriverName returns the NUL-terminated driver name.
func (c *Caps) DriverName() string {
	return cString(c.Driver[:])
}

// AdapterName returns the NUL-terminated adapter name.
func (c *Caps) AdapterName() string {
	return cString(c.Name[:])
}

// VersionString formats the kernel CEC framework version.
func (c *Caps) VersionString() string {
	return fmt.Sprintf("%d.%d.%d", c.Version>>16, (c.Version>>8)&0xff, c.Version&0xff)
}

// LogAddrs mirrors struct cec_log_addrs.
type LogAddrs struct {
	LogAddr           [MaxLogAddrs]uint8
	LogAddrMask       uint16
	CECVersion        uint8
	NumLogAddrs       uint8
	VendorID          uint32
	Flags             uint32
	OSDName           [15]byte
	PrimaryDeviceType [MaxLogAddrs]uint8
	LogAddrType       [MaxLogAddrs]uint8
	AllDeviceTypes    [MaxLogAddrs]uint8
	Features          [MaxLogAddrs][12]uint8
}

// OSD returns the NUL-terminated OSD name.
func (l *LogAddrs) OSD() string {
	return cString(l.OSDName[:])
}

// Connector types reported in ConnectorInfo.Type.
const (
	ConnectorTypeNoConnector uint32 = 0
	ConnectorTypeDRM         uint32 = 1
)

// ConnectorInfo mirrors struct cec_connector_info.
type ConnectorInfo struct {
	Type uint32
	Raw  [16]uint32
}

// String describes the connector the adapter is associated with.
func (c *ConnectorInfo) String() string {
	switch c.Type {
	case ConnectorTypeNoConnector:
		return "none"
	case ConnectorTypeDRM:
		return fmt.Sprintf("DRM card %d, connector %d", c.Raw[0], c.Raw[1])
	default:
		return fmt.Sprintf("unknown type %d", c.Type)
	}
}

// VersionName returns the display name of a CEC protocol version operand.
func VersionName(v uint8) string {
	switch v {
	case Version1_3A:
		return "1.3a"
	case Version1_4:
		return "1.4"
	case Version2_0:
		return "2.0"
	default:
		return fmt.Sprintf("Unknown (0x%02x)", v)
	}
}

func cString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
