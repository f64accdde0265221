package cec

// PowerStatus is the operand of REPORT_POWER_STATUS.
type PowerStatus uint8

// Power status values.
const (
	PowerStatusOn        PowerStatus = 0
	PowerStatusStandby   PowerStatus = 1
	PowerStatusToOn      PowerStatus = 2
	PowerStatusToStandby PowerStatus = 3
)

// String returns the display name of the power status.
func (p PowerStatus) String() string {
	switch p {
	case PowerStatusOn:
		return "On"
	case PowerStatusStandby:
		return "Standby"
	case PowerStatusToOn:
		return "In transition Standby to On"
	case PowerStatusToStandby:
		return "In transition On to Standby"
	default:
		return "Unknown"
	}
}

// Feature abort reasons.
const (
	AbortUnrecognizedOp uint8 = 0
	AbortIncorrectMode  uint8 = 1
	AbortNoSource       uint8 = 2
	AbortInvalidOp      uint8 = 3
	AbortRefused        uint8 = 4
	AbortUndetermined   uint8 = 5
)

// VendorIDNone marks logical addresses configured without a vendor ID.
const VendorIDNone uint32 = 0xffffffff

// Primary device types.
const (
	PrimaryTypeTV          uint8 = 0
	PrimaryTypeRecord      uint8 = 1
	PrimaryTypeTuner       uint8 = 3
	PrimaryTypePlayback    uint8 = 4
	PrimaryTypeAudioSystem uint8 = 5
	PrimaryTypeSwitch      uint8 = 6
	PrimaryTypeProcessor   uint8 = 7
)

// PrimaryDeviceTypeName returns the display name of a primary device type.
func PrimaryDeviceTypeName(t uint8) string {
	switch t {
	case PrimaryTypeTV:
		return "TV"
	case PrimaryTypeRecord:
		return "Record"
	case PrimaryTypeTuner:
		return "Tuner"
	case PrimaryTypePlayback:
		return "Playback"
	case PrimaryTypeAudioSystem:
		return "Audio System"
	case PrimaryTypeSwitch:
		return "Switch"
	case PrimaryTypeProcessor:
		return "Processor"
	default:
		return "Unknown"
	}
}
