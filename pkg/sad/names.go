package sad

import "strings"

var formatNames = [16]string{
	"Reserved",
	"L-PCM",
	"AC-3",
	"MPEG-1",
	"MP3",
	"MPEG2",
	"AAC LC",
	"DTS",
	"ATRAC",
	"One Bit Audio",
	"Enhanced AC-3",
	"DTS-HD",
	"MAT",
	"DST",
	"WMA Pro",
	"Extended",
}

var extensionNames = map[uint8]string{
	ExtMPEG4HEAAC:         "MPEG-4 HE AAC",
	ExtMPEG4HEAACv2:       "MPEG-4 HE AAC v2",
	ExtMPEG4AACLC:         "MPEG-4 AAC LC",
	ExtDRA:                "DRA",
	ExtMPEG4HEAACSurround: "MPEG-4 HE AAC + MPEG Surround",
	ExtMPEG4AACLCSurround: "MPEG-4 AAC LC + MPEG Surround",
	ExtMPEGH3DAudio:       "MPEG-H 3D Audio",
	ExtAC4:                "AC-4",
	ExtLPCM3DAudio:        "L-PCM 3D Audio",
}

// FormatName returns the name of a primary audio format code, or "Illegal"
// for codes outside 0-15.
func FormatName(code uint8) string {
	if int(code) < len(formatNames) {
		return formatNames[code]
	}
	return "Illegal"
}

// ExtensionName returns the name of an extension type code. Codes 0-3 are
// "Not in use"; unassigned codes are "Reserved".
func ExtensionName(code uint8) string {
	if code <= 3 {
		return "Not in use"
	}
	if name, ok := extensionNames[code]; ok {
		return name
	}
	return "Reserved"
}

// FormatIDName labels an audio format as used by REQUEST_SHORT_AUDIO_DESCRIPTOR:
// formatID 0 selects the primary format table, 1 the extension type table.
// Any other formatID yields "Invalid".
func FormatIDName(formatID, code uint8) string {
	switch formatID {
	case FormatIDPrimary:
		return FormatName(code)
	case FormatIDExtension:
		return ExtensionName(code)
	default:
		return "Invalid"
	}
}

var rateNames = []struct {
	bit  uint8
	name string
}{
	{Rate32kHz, "32"},
	{Rate44kHz, "44.1"},
	{Rate48kHz, "48"},
	{Rate88kHz, "88.2"},
	{Rate96kHz, "96"},
	{Rate176kHz, "176.4"},
	{Rate192kHz, "192"},
}

// SampleRates lists the sample frequencies in mask, e.g. "44.1, 48 kHz".
func SampleRates(mask uint8) string {
	var rates []string
	for _, r := range rateNames {
		if mask&r.bit != 0 {
			rates = append(rates, r.name)
		}
	}
	if len(rates) == 0 {
		return ""
	}
	return strings.Join(rates, ", ") + " kHz"
}
