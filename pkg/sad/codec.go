package sad

import (
	"fmt"
	"strings"
)

// Descriptor is the structured form of a Short Audio Descriptor. Only the
// fields relevant to FormatCode (and ExtensionTypeCode for extended formats)
// are consulted when encoding.
type Descriptor struct {
	NumChannels    uint8 // 1-8
	FormatCode     uint8 // 0-15
	SampleFreqMask uint8

	BitDepthMask      uint8 // LPCM, L-PCM 3D Audio, MPEG-H 3D Audio, AC-4
	MaxBitrate        uint8 // formats 2-8, in units of 8 kbps
	FormatDependent   uint8 // formats 9-13, MPEG-H 3D Audio, AC-4
	WMAProfile        uint8 // WMA Pro
	ExtensionTypeCode uint8 // Extended
	FrameLengthMask   uint8 // extension types 4-6, 8, 10
	MPS               uint8 // MPEG Surround flag, extension types 8 and 10
}

// Encode packs d into a 24-bit descriptor as (b1<<16)|(b2<<8)|b3.
func Encode(d Descriptor) uint32 {
	b := Bytes(d)
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}

// Bytes packs d into its 3-byte wire form.
func Bytes(d Descriptor) [3]byte {
	b1 := (d.NumChannels - 1) & 0x07
	b1 |= (d.FormatCode & 0x0f) << 3

	return [3]byte{b1, d.SampleFreqMask, formatByte(d)}
}

// formatByte computes byte 3 from the format-specific fields.
func formatByte(d Descriptor) uint8 {
	switch {
	case d.FormatCode == FormatLPCM:
		return bitDepth(d)
	case d.FormatCode >= FormatAC3 && d.FormatCode <= FormatATRAC:
		return d.MaxBitrate
	case d.FormatCode >= FormatOneBitAudio && d.FormatCode <= FormatDST:
		return d.FormatDependent
	case d.FormatCode == FormatWMAPro:
		return d.WMAProfile & 0x03
	case d.FormatCode == FormatExtended:
		return extensionByte(d)
	default:
		return 0
	}
}

// extensionByte computes byte 3 for FormatExtended: the extension type in the
// top five bits plus type-dependent low bits.
func extensionByte(d Descriptor) uint8 {
	b3 := (d.ExtensionTypeCode & 0x1f) << 3

	switch d.ExtensionTypeCode {
	case ExtMPEG4HEAAC, ExtMPEG4HEAACv2, ExtMPEG4AACLC:
		b3 |= frameLength(d)
	case ExtMPEG4HEAACSurround, ExtMPEG4AACLCSurround:
		b3 |= frameLength(d)
		b3 |= d.MPS & 0x01
	case ExtMPEGH3DAudio, ExtAC4:
		// Both the format-dependent value and the bit depth are ORed in.
		b3 |= d.FormatDependent & 0x07
		b3 |= bitDepth(d)
	case ExtLPCM3DAudio:
		b3 |= bitDepth(d)
	}
	return b3
}

func bitDepth(d Descriptor) uint8 {
	return d.BitDepthMask & 0x07
}

func frameLength(d Descriptor) uint8 {
	return (d.FrameLengthMask & 0x03) << 1
}

// Decode unpacks a 24-bit descriptor. For MPEG-H 3D Audio and AC-4 the low
// three bits cannot be split between format-dependent value and bit depth;
// they are reported in FormatDependent.
func Decode(v uint32) Descriptor {
	b1, b2, b3 := uint8(v>>16), uint8(v>>8), uint8(v)

	d := Descriptor{
		NumChannels:    (b1 & 0x07) + 1,
		FormatCode:     (b1 >> 3) & 0x0f,
		SampleFreqMask: b2,
	}

	switch {
	case d.FormatCode == FormatLPCM:
		d.BitDepthMask = b3 & 0x07
	case d.FormatCode >= FormatAC3 && d.FormatCode <= FormatATRAC:
		d.MaxBitrate = b3
	case d.FormatCode >= FormatOneBitAudio && d.FormatCode <= FormatDST:
		d.FormatDependent = b3
	case d.FormatCode == FormatWMAPro:
		d.WMAProfile = b3 & 0x03
	case d.FormatCode == FormatExtended:
		d.ExtensionTypeCode = b3 >> 3
		switch d.ExtensionTypeCode {
		case ExtMPEG4HEAAC, ExtMPEG4HEAACv2, ExtMPEG4AACLC:
			d.FrameLengthMask = (b3 >> 1) & 0x03
		case ExtMPEG4HEAACSurround, ExtMPEG4AACLCSurround:
			d.FrameLengthMask = (b3 >> 1) & 0x03
			d.MPS = b3 & 0x01
		case ExtMPEGH3DAudio, ExtAC4:
			d.FormatDependent = b3 & 0x07
		case ExtLPCM3DAudio:
			d.BitDepthMask = b3 & 0x07
		}
	}
	return d
}

// String describes the descriptor for diagnostics.
func (d Descriptor) String() string {
	var sb strings.Builder
	if d.FormatCode == FormatExtended {
		sb.WriteString(ExtensionName(d.ExtensionTypeCode))
	} else {
		sb.WriteString(FormatName(d.FormatCode))
	}
	fmt.Fprintf(&sb, ", %d channels", d.NumChannels)
	if rates := SampleRates(d.SampleFreqMask); rates != "" {
		fmt.Fprintf(&sb, ", %s", rates)
	}
	return sb.String()
}
