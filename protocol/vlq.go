package protocol

import "errors"

var (
	ErrInvalidVLQ     = errors.New("invalid VLQ encoding")
	ErrBufferTooSmall = errors.New("buffer too small for VLQ")
)

// maxVLQLen is the longest encoding of a 32-bit value
const maxVLQLen = 5

// EncodeVLQUint writes v in Klipper's VLQ form: big-endian 7-bit groups,
// continuation in bit 7. Values at or above 0x60 in the first group are
// read back as negative by a signed decoder, so the first group is
// widened until it cannot be mistaken for a sign extension.
func EncodeVLQUint(output OutputBuffer, v uint32) {
	var buf [maxVLQLen]byte
	output.Output(appendVLQ(buf[:0], v))
}

func appendVLQ(dst []byte, v uint32) []byte {
	sv := int32(v)
	for shift := 28; shift > 0; shift -= 7 {
		lim := int32(1) << uint(shift-2)
		if sv < -lim || sv >= 3*lim {
			dst = append(dst, byte(sv>>uint(shift))&0x7F|0x80)
		}
	}
	return append(dst, byte(sv)&0x7F)
}

// DecodeVLQUint reads one value and advances data past it
func DecodeVLQUint(data *[]byte) (uint32, error) {
	in := *data
	if len(in) == 0 {
		return 0, ErrBufferTooSmall
	}

	c := in[0]
	v := uint32(c & 0x7F)
	if c&0x60 == 0x60 {
		v |= ^uint32(0x1F)
	}
	i := 1
	for c&0x80 != 0 {
		if i == maxVLQLen {
			return 0, ErrInvalidVLQ
		}
		if i == len(in) {
			return 0, ErrBufferTooSmall
		}
		c = in[i]
		i++
		v = v<<7 | uint32(c&0x7F)
	}

	*data = in[i:]
	return v, nil
}
