package state

// Tuner display modes.
const (
	TunerDisplayDigital  uint8 = 0
	TunerDisplayNone     uint8 = 1
	TunerDisplayAnalogue uint8 = 2
)

// Service identification methods.
const (
	ServiceIDByDigitalID uint8 = 0
	ServiceIDByChannel   uint8 = 1
)

// Digital broadcast systems.
const (
	DigBcastARIBGeneric uint8 = 0x00
	DigBcastATSCGeneric uint8 = 0x01
	DigBcastDVBGeneric  uint8 = 0x02
	DigBcastARIBTerrest uint8 = 0x0a
	DigBcastATSCTerrest uint8 = 0x12
	DigBcastDVBT        uint8 = 0x1a
)

// TunerState is the currently selected service of the emulated tuner.
type TunerState struct {
	DisplayInfo     uint8
	Analogue        bool
	ServiceIDMethod uint8
	BcastSystem     uint8

	// Channel is the major/minor channel pair used when services are
	// identified by channel.
	MajorChannel uint16
	MinorChannel uint16

	// ServiceIndex selects the service within the tuner's service list.
	ServiceIndex int
}

// DefaultTuner selects the first digital service, identified the way the
// state's ServiceByDigID option asks for.
func DefaultTuner(s *DeviceState) {
	s.Tuner = TunerState{
		DisplayInfo:     TunerDisplayDigital,
		ServiceIDMethod: ServiceIDByChannel,
		BcastSystem:     DigBcastDVBT,
		MajorChannel:    1,
		MinorChannel:    1,
	}
	if s.ServiceByDigID {
		s.Tuner.ServiceIDMethod = ServiceIDByDigitalID
	}
}
