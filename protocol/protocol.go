// Package protocol implements the framing used on the display command link.
//
// A message block is
//
//	[len][seq][payload ...][crc16 hi][crc16 lo][0x7E]
//
// where len counts the whole block and the payload is a VLQ command ID
// followed by that command's VLQ arguments. The layout follows Klipper's
// message blocks so the same CRC and VLQ code serve both ends.
package protocol

// Version of the link protocol
const Version = "0.1.0"

// Message sequence masks
const (
	MessageSeqMask = 0x0F
	MessageDest    = 0x10
)

// Command IDs on the link. Firmware registers its handlers in this order.
const (
	CmdSetNumber    uint16 = 0 // set_number n=%u
	CmdSetSegments  uint16 = 1 // set_segments d0=%c d1=%c d2=%c d3=%c
	CmdClearDisplay uint16 = 2 // clear_display
)
