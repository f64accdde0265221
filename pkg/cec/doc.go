// Package cec defines the HDMI Consumer Electronics Control protocol model
// used by the follower: logical and physical addresses, the message block
// exchanged with the kernel adapter, adapter capability and addressing
// records, opcode constants and their display names.
//
// The record types mirror the Linux CEC uAPI (linux/cec.h) field for field so
// they can be handed to the driver boundary without conversion.
//
// # Addressing
//
// A message's first byte carries the initiator in the high nibble and the
// destination in the low nibble. Destination 15 is broadcast; initiator 15 is
// the unregistered address.
//
// # Names
//
// OpcodeName renders the opcode of a message for diagnostics. CDC messages
// (opcode 0xf8) are named by their embedded CDC sub-opcode instead.
package cec
