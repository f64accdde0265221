package cec

import (
	"fmt"
	"strings"
)

var opcodeNames = map[uint8]string{
	MsgFeatureAbort:                "FEATURE_ABORT",
	MsgImageViewOn:                 "IMAGE_VIEW_ON",
	MsgTunerStepIncrement:          "TUNER_STEP_INCREMENT",
	MsgTunerStepDecrement:          "TUNER_STEP_DECREMENT",
	MsgTunerDeviceStatus:           "TUNER_DEVICE_STATUS",
	MsgGiveTunerDeviceStatus:       "GIVE_TUNER_DEVICE_STATUS",
	MsgRecordOn:                    "RECORD_ON",
	MsgRecordStatus:                "RECORD_STATUS",
	MsgRecordOff:                   "RECORD_OFF",
	MsgTextViewOn:                  "TEXT_VIEW_ON",
	MsgRecordTVScreen:              "RECORD_TV_SCREEN",
	MsgGiveDeckStatus:              "GIVE_DECK_STATUS",
	MsgDeckStatus:                  "DECK_STATUS",
	MsgSetMenuLanguage:             "SET_MENU_LANGUAGE",
	MsgClearAnalogueTimer:          "CLEAR_ANALOGUE_TIMER",
	MsgSetAnalogueTimer:            "SET_ANALOGUE_TIMER",
	MsgTimerStatus:                 "TIMER_STATUS",
	MsgStandby:                     "STANDBY",
	MsgPlay:                        "PLAY",
	MsgDeckControl:                 "DECK_CONTROL",
	MsgTimerClearedStatus:          "TIMER_CLEARED_STATUS",
	MsgUserControlPressed:          "USER_CONTROL_PRESSED",
	MsgUserControlReleased:         "USER_CONTROL_RELEASED",
	MsgGiveOSDName:                 "GIVE_OSD_NAME",
	MsgSetOSDName:                  "SET_OSD_NAME",
	MsgSetOSDString:                "SET_OSD_STRING",
	MsgSetTimerProgramTitle:        "SET_TIMER_PROGRAM_TITLE",
	MsgSystemAudioModeRequest:      "SYSTEM_AUDIO_MODE_REQUEST",
	MsgGiveAudioStatus:             "GIVE_AUDIO_STATUS",
	MsgSetSystemAudioMode:          "SET_SYSTEM_AUDIO_MODE",
	MsgSetAudioVolumeLevel:         "SET_AUDIO_VOLUME_LEVEL",
	MsgReportAudioStatus:           "REPORT_AUDIO_STATUS",
	MsgGiveSystemAudioModeStatus:   "GIVE_SYSTEM_AUDIO_MODE_STATUS",
	MsgSystemAudioModeStatus:       "SYSTEM_AUDIO_MODE_STATUS",
	MsgRoutingChange:               "ROUTING_CHANGE",
	MsgRoutingInformation:          "ROUTING_INFORMATION",
	MsgActiveSource:                "ACTIVE_SOURCE",
	MsgGivePhysicalAddr:            "GIVE_PHYSICAL_ADDR",
	MsgReportPhysicalAddr:          "REPORT_PHYSICAL_ADDR",
	MsgRequestActiveSource:         "REQUEST_ACTIVE_SOURCE",
	MsgSetStreamPath:               "SET_STREAM_PATH",
	MsgDeviceVendorID:              "DEVICE_VENDOR_ID",
	MsgVendorCommand:               "VENDOR_COMMAND",
	MsgVendorRemoteButtonDown:      "VENDOR_REMOTE_BUTTON_DOWN",
	MsgVendorRemoteButtonUp:        "VENDOR_REMOTE_BUTTON_UP",
	MsgGiveDeviceVendorID:          "GIVE_DEVICE_VENDOR_ID",
	MsgMenuRequest:                 "MENU_REQUEST",
	MsgMenuStatus:                  "MENU_STATUS",
	MsgGiveDevicePowerStatus:       "GIVE_DEVICE_POWER_STATUS",
	MsgReportPowerStatus:           "REPORT_POWER_STATUS",
	MsgGetMenuLanguage:             "GET_MENU_LANGUAGE",
	MsgSelectAnalogueService:       "SELECT_ANALOGUE_SERVICE",
	MsgSelectDigitalService:        "SELECT_DIGITAL_SERVICE",
	MsgSetDigitalTimer:             "SET_DIGITAL_TIMER",
	MsgClearDigitalTimer:           "CLEAR_DIGITAL_TIMER",
	MsgSetAudioRate:                "SET_AUDIO_RATE",
	MsgInactiveSource:              "INACTIVE_SOURCE",
	MsgCECVersion:                  "CEC_VERSION",
	MsgGetCECVersion:               "GET_CEC_VERSION",
	MsgVendorCommandWithID:         "VENDOR_COMMAND_WITH_ID",
	MsgClearExtTimer:               "CLEAR_EXT_TIMER",
	MsgSetExtTimer:                 "SET_EXT_TIMER",
	MsgReportShortAudioDescriptor:  "REPORT_SHORT_AUDIO_DESCRIPTOR",
	MsgRequestShortAudioDescriptor: "REQUEST_SHORT_AUDIO_DESCRIPTOR",
	MsgGiveFeatures:                "GIVE_FEATURES",
	MsgReportFeatures:              "REPORT_FEATURES",
	MsgRequestCurrentLatency:       "REQUEST_CURRENT_LATENCY",
	MsgReportCurrentLatency:        "REPORT_CURRENT_LATENCY",
	MsgInitiateARC:                 "INITIATE_ARC",
	MsgReportARCInitiated:          "REPORT_ARC_INITIATED",
	MsgReportARCTerminated:         "REPORT_ARC_TERMINATED",
	MsgRequestARCInitiation:        "REQUEST_ARC_INITIATION",
	MsgRequestARCTermination:       "REQUEST_ARC_TERMINATION",
	MsgTerminateARC:                "TERMINATE_ARC",
	MsgCDCMessage:                  "CDC_MESSAGE",
	MsgAbort:                       "ABORT",
}

var cdcOpcodeNames = map[uint8]string{
	CDCHECInquireState:        "CDC_HEC_INQUIRE_STATE",
	CDCHECReportState:         "CDC_HEC_REPORT_STATE",
	CDCHECSetStateAdjacent:    "CDC_HEC_SET_STATE_ADJACENT",
	CDCHECSetState:            "CDC_HEC_SET_STATE",
	CDCHECRequestDeactivation: "CDC_HEC_REQUEST_DEACTIVATION",
	CDCHECNotifyAlive:         "CDC_HEC_NOTIFY_ALIVE",
	CDCHECDiscover:            "CDC_HEC_DISCOVER",
	CDCHPDSetState:            "CDC_HPD_SET_STATE",
	CDCHPDReportState:         "CDC_HPD_REPORT_STATE",
}

// OpcodeName returns the display name of the message's opcode. CDC messages
// are named by their sub-opcode; unknown opcodes render as hex literals, with
// a "CDC: " prefix for unknown CDC sub-opcodes. The result is never empty.
func OpcodeName(msg *Msg) string {
	opcode := msg.Msg[1]
	if opcode == MsgCDCMessage {
		cdcOpcode := msg.Msg[CDCOpcodeOffset]
		if name := CDCOpcodeString(cdcOpcode); name != "" {
			return name
		}
		return fmt.Sprintf("CDC: 0x%x", cdcOpcode)
	}
	return OpcodeString(opcode)
}

// OpcodeString returns the name of a primary opcode or its hex literal.
func OpcodeString(opcode uint8) string {
	if name, ok := opcodeNames[opcode]; ok {
		return name
	}
	return fmt.Sprintf("0x%x", opcode)
}

// CDCOpcodeString returns the name of a CDC sub-opcode, or "" if unknown.
func CDCOpcodeString(opcode uint8) string {
	return cdcOpcodeNames[opcode]
}

// LookupOpcode resolves an opcode name (case-insensitive) to its value.
func LookupOpcode(name string) (uint8, bool) {
	uname := strings.ToUpper(name)
	for op, n := range opcodeNames {
		if n == uname {
			return op, true
		}
	}
	return 0, false
}
