package segment

// Digits is the number of digit positions in a Buffer
const Digits = 4

// MaxNumber is the largest value EncodeNumber accepts
const MaxNumber = 9999

// Pattern holds the on/off state of the seven segments of one digit
type Pattern uint8

// Buffer holds one Pattern per digit position, most significant first
type Buffer [Digits]Pattern

// Blank is the all-off pattern
const Blank Pattern = 0

// Mask covers the seven segment bits
const Mask Pattern = 0x7F

// 7-segment number patterns (a-b-c-d-e-f-g, bit 6 down to bit 0)
var font = [10]Pattern{
	0x7E, // 0
	0x30, // 1
	0x6D, // 2
	0x79, // 3
	0x33, // 4
	0x5B, // 5
	0x5F, // 6
	0x70, // 7
	0x7F, // 8
	0x7B, // 9
}

// Segment reports whether segment i (0-6) is lit
func (p Pattern) Segment(i int) bool {
	return p&(1<<uint(i)) != 0
}

// EncodeDigit returns the pattern for d.
// d must be in [0, 9]; anything else is a programming error and panics.
func EncodeDigit(d int) Pattern {
	if d < 0 || d > 9 {
		panic("segment: digit out of range: " + itoa(d))
	}
	return font[d]
}

// EncodeNumber returns the right-aligned rendering of n with leading
// zeros blanked. The units position always shows its digit, so 0
// renders as "   0".
// n must be in [0, MaxNumber]; anything else panics.
func EncodeNumber(n int) Buffer {
	if n < 0 || n > MaxNumber {
		panic("segment: number out of range: " + itoa(n))
	}

	var b Buffer
	leading := true
	div := 1000
	for pos := 0; pos < Digits; pos++ {
		d := (n / div) % 10
		div /= 10
		if d != 0 || pos == Digits-1 {
			leading = false
		}
		if leading {
			b[pos] = Blank
			continue
		}
		b[pos] = font[d]
	}
	return b
}

// EncodeClock renders hours and minutes as HHMM, blanking a leading
// zero in the hours. hours must be in [0, 23] and minutes in [0, 59].
func EncodeClock(hours, minutes int) Buffer {
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		panic("segment: time out of range: " + itoa(hours) + ":" + itoa(minutes))
	}
	b := Buffer{font[hours/10], font[hours%10], font[minutes/10], font[minutes%10]}
	if hours < 10 {
		b[0] = Blank
	}
	return b
}

// Decode maps a pattern back to its digit.
// ok is false for Blank and for patterns outside the table.
func Decode(p Pattern) (digit int, ok bool) {
	for d, f := range font {
		if f == p {
			return d, true
		}
	}
	return 0, false
}

// DecodeBuffer renders b as text, using a space for blank positions and
// '?' for patterns that are not digits.
func DecodeBuffer(b Buffer) string {
	var out [Digits]byte
	for i, p := range b {
		switch d, ok := Decode(p); {
		case ok:
			out[i] = byte('0' + d)
		case p == Blank:
			out[i] = ' '
		default:
			out[i] = '?'
		}
	}
	return string(out[:])
}

// itoa keeps fmt out of TinyGo builds
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}
