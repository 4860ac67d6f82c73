package display

import "segmux/segment"

// pack lays the four patterns into one word, digit 0 in the top byte
func pack(b segment.Buffer) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func unpack(w uint32) segment.Buffer {
	return segment.Buffer{
		segment.Pattern(w >> 24),
		segment.Pattern(w >> 16),
		segment.Pattern(w >> 8),
		segment.Pattern(w),
	}
}
