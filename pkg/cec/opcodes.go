package cec

// Opcodes.
const (
	MsgFeatureAbort                uint8 = 0x00
	MsgImageViewOn                 uint8 = 0x04
	MsgTunerStepIncrement          uint8 = 0x05
	MsgTunerStepDecrement          uint8 = 0x06
	MsgTunerDeviceStatus           uint8 = 0x07
	MsgGiveTunerDeviceStatus       uint8 = 0x08
	MsgRecordOn                    uint8 = 0x09
	MsgRecordStatus                uint8 = 0x0a
	MsgRecordOff                   uint8 = 0x0b
	MsgTextViewOn                  uint8 = 0x0d
	MsgRecordTVScreen              uint8 = 0x0f
	MsgGiveDeckStatus              uint8 = 0x1a
	MsgDeckStatus                  uint8 = 0x1b
	MsgSetMenuLanguage             uint8 = 0x32
	MsgClearAnalogueTimer          uint8 = 0x33
	MsgSetAnalogueTimer            uint8 = 0x34
	MsgTimerStatus                 uint8 = 0x35
	MsgStandby                     uint8 = 0x36
	MsgPlay                        uint8 = 0x41
	MsgDeckControl                 uint8 = 0x42
	MsgTimerClearedStatus          uint8 = 0x43
	MsgUserControlPressed          uint8 = 0x44
	MsgUserControlReleased         uint8 = 0x45
	MsgGiveOSDName                 uint8 = 0x46
	MsgSetOSDName                  uint8 = 0x47
	MsgSetOSDString                uint8 = 0x64
	MsgSetTimerProgramTitle        uint8 = 0x67
	MsgSystemAudioModeRequest      uint8 = 0x70
	MsgGiveAudioStatus             uint8 = 0x71
	MsgSetSystemAudioMode          uint8 = 0x72
	MsgSetAudioVolumeLevel         uint8 = 0x73
	MsgReportAudioStatus           uint8 = 0x7a
	MsgGiveSystemAudioModeStatus   uint8 = 0x7d
	MsgSystemAudioModeStatus       uint8 = 0x7e
	MsgRoutingChange               uint8 = 0x80
	MsgRoutingInformation          uint8 = 0x81
	MsgActiveSource                uint8 = 0x82
	MsgGivePhysicalAddr            uint8 = 0x83
	MsgReportPhysicalAddr          uint8 = 0x84
	MsgRequestActiveSource         uint8 = 0x85
	MsgSetStreamPath               uint8 = 0x86
	MsgDeviceVendorID              uint8 = 0x87
	MsgVendorCommand               uint8 = 0x89
	MsgVendorRemoteButtonDown      uint8 = 0x8a
	MsgVendorRemoteButtonUp        uint8 = 0x8b
	MsgGiveDeviceVendorID          uint8 = 0x8c
	MsgMenuRequest                 uint8 = 0x8d
	MsgMenuStatus                  uint8 = 0x8e
	MsgGiveDevicePowerStatus       uint8 = 0x8f
	MsgReportPowerStatus           uint8 = 0x90
	MsgGetMenuLanguage             uint8 = 0x91
	MsgSelectAnalogueService       uint8 = 0x92
	MsgSelectDigitalService        uint8 = 0x93
	MsgSetDigitalTimer             uint8 = 0x97
	MsgClearDigitalTimer           uint8 = 0x99
	MsgSetAudioRate                uint8 = 0x9a
	MsgInactiveSource              uint8 = 0x9d
	MsgCECVersion                  uint8 = 0x9e
	MsgGetCECVersion               uint8 = 0x9f
	MsgVendorCommandWithID         uint8 = 0xa0
	MsgClearExtTimer               uint8 = 0xa1
	MsgSetExtTimer                 uint8 = 0xa2
	MsgReportShortAudioDescriptor  uint8 = 0xa3
	MsgRequestShortAudioDescriptor uint8 = 0xa4
	MsgGiveFeatures                uint8 = 0xa5
	MsgReportFeatures              uint8 = 0xa6
	MsgRequestCurrentLatency       uint8 = 0xa7
	MsgReportCurrentLatency        uint8 = 0xa8
	MsgInitiateARC                 uint8 = 0xc0
	MsgReportARCInitiated          uint8 = 0xc1
	MsgReportARCTerminated         uint8 = 0xc2
	MsgRequestARCInitiation        uint8 = 0xc3
	MsgRequestARCTermination       uint8 = 0xc4
	MsgTerminateARC                uint8 = 0xc5
	MsgCDCMessage                  uint8 = 0xf8
	MsgAbort                       uint8 = 0xff
)

// CDC sub-opcodes, carried at offset 4 of a CDC message.
const (
	CDCHECInquireState        uint8 = 0x00
	CDCHECReportState         uint8 = 0x01
	CDCHECSetStateAdjacent    uint8 = 0x02
	CDCHECSetState            uint8 = 0x03
	CDCHECRequestDeactivation uint8 = 0x04
	CDCHECNotifyAlive         uint8 = 0x05
	CDCHECDiscover            uint8 = 0x06
	CDCHPDSetState            uint8 = 0x10
	CDCHPDReportState         uint8 = 0x11
)

// CDCOpcodeOffset is the byte offset of the sub-opcode in a CDC message
// (header, opcode, two-byte initiator physical address).
const CDCOpcodeOffset = 4
