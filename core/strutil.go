package core

// Utoa formats n in decimal. TinyGo builds avoid fmt and strconv, so the
// packages above core format their debug text with this.
func Utoa(n uint32) string {
	var buf [10]byte
	pos := len(buf)
	for {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
		if n == 0 {
			return string(buf[pos:])
		}
	}
}

// Itoa formats n in decimal with a leading '-' when negative
func Itoa(n int) string {
	if n < 0 {
		// Negate as unsigned so the most negative value survives
		return "-" + utoa64(uint64(-int64(n)))
	}
	return utoa64(uint64(n))
}

func utoa64(n uint64) string {
	var buf [20]byte
	pos := len(buf)
	for {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
		if n == 0 {
			return string(buf[pos:])
		}
	}
}
