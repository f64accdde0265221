// Package sad encodes and labels HDMI Short Audio Descriptors.
//
// A Short Audio Descriptor (SAD) is the 3-byte record a sink or audio system
// uses to advertise one supported audio format during audio-capability
// negotiation (CEC REPORT_SHORT_AUDIO_DESCRIPTOR). The layout is defined by
// CTA-861:
//
//	byte 1: bits 6-3 audio format code, bits 2-0 channel count - 1
//	byte 2: sample frequency mask
//	byte 3: format-specific (bit depth, max bitrate, profile, extension type)
//
// Encode is pure and total: fields that do not apply to the selected format
// are ignored and unknown codes produce zero bits rather than errors.
package sad
