package sad

// Audio format codes (byte 1, bits 6-3).
const (
	FormatLPCM        uint8 = 1
	FormatAC3         uint8 = 2
	FormatMPEG1       uint8 = 3
	FormatMP3         uint8 = 4
	FormatMPEG2       uint8 = 5
	FormatAACLC       uint8 = 6
	FormatDTS         uint8 = 7
	FormatATRAC       uint8 = 8
	FormatOneBitAudio uint8 = 9
	FormatEnhancedAC3 uint8 = 10
	FormatDTSHD       uint8 = 11
	FormatMAT         uint8 = 12
	FormatDST         uint8 = 13
	FormatWMAPro      uint8 = 14
	FormatExtended    uint8 = 15
)

// Extension type codes, used when the format code is FormatExtended.
const (
	ExtMPEG4HEAAC         uint8 = 4
	ExtMPEG4HEAACv2       uint8 = 5
	ExtMPEG4AACLC         uint8 = 6
	ExtDRA                uint8 = 7
	ExtMPEG4HEAACSurround uint8 = 8
	ExtMPEG4AACLCSurround uint8 = 10
	ExtMPEGH3DAudio       uint8 = 11
	ExtAC4                uint8 = 12
	ExtLPCM3DAudio        uint8 = 13
)

// Format ID selectors for FormatIDName.
const (
	FormatIDPrimary   uint8 = 0
	FormatIDExtension uint8 = 1
)

// Sample frequency mask bits (byte 2).
const (
	Rate32kHz  uint8 = 1 << 0
	Rate44kHz  uint8 = 1 << 1
	Rate48kHz  uint8 = 1 << 2
	Rate88kHz  uint8 = 1 << 3
	Rate96kHz  uint8 = 1 << 4
	Rate176kHz uint8 = 1 << 5
	Rate192kHz uint8 = 1 << 6
)

// LPCM bit depth mask bits (byte 3).
const (
	Depth16 uint8 = 1 << 0
	Depth20 uint8 = 1 << 1
	Depth24 uint8 = 1 << 2
)
