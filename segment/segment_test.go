package segment

import (
	"fmt"
	"testing"
)

func TestEncodeDigit(t *testing.T) {
	testCases := []struct {
		digit    int
		expected Pattern
		lit      []int // segment bits that must be on
	}{
		{0, 0x7E, []int{1, 2, 3, 4, 5, 6}},
		{1, 0x30, []int{4, 5}},
		{7, 0x70, []int{4, 5, 6}},
		{8, 0x7F, []int{0, 1, 2, 3, 4, 5, 6}},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("digit %d", tc.digit), func(t *testing.T) {
			got := EncodeDigit(tc.digit)
			if got != tc.expected {
				t.Fatalf("EncodeDigit(%d) = %#02x, want %#02x", tc.digit, got, tc.expected)
			}
			on := 0
			for i := 0; i < 7; i++ {
				if got.Segment(i) {
					on++
				}
			}
			if on != len(tc.lit) {
				t.Errorf("Expected %d lit segments, got %d", len(tc.lit), on)
			}
			for _, i := range tc.lit {
				if !got.Segment(i) {
					t.Errorf("Segment %d should be lit for %d", i, tc.digit)
				}
			}
		})
	}
}

func TestEncodeDigitPatternsDistinct(t *testing.T) {
	seen := make(map[Pattern]int)
	for d := 0; d <= 9; d++ {
		p := EncodeDigit(d)
		if p == Blank {
			t.Errorf("Digit %d encodes to blank", d)
		}
		if p&^Mask != 0 {
			t.Errorf("Digit %d uses bits outside the 7 segments: %#02x", d, p)
		}
		if prev, ok := seen[p]; ok {
			t.Errorf("Digits %d and %d share pattern %#02x", prev, d, p)
		}
		seen[p] = d
	}
}

func TestEncodeDigitPanics(t *testing.T) {
	for _, d := range []int{-1, 10, 42} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("EncodeDigit(%d) did not panic", d)
				}
			}()
			EncodeDigit(d)
		}()
	}
}

func TestEncodeNumber(t *testing.T) {
	testCases := []struct {
		n    int
		text string
	}{
		{0, "   0"},
		{5, "   5"},
		{7, "   7"},
		{10, "  10"},
		{100, " 100"},
		{1005, "1005"},
		{1234, "1234"},
		{9999, "9999"},
	}

	for _, tc := range testCases {
		if got := DecodeBuffer(EncodeNumber(tc.n)); got != tc.text {
			t.Errorf("EncodeNumber(%d) renders %q, want %q", tc.n, got, tc.text)
		}
	}
}

// Every position either shows the decimal digit of n at that place, or
// is blank exactly when it and all higher places are zero and it is not
// the units place.
func TestEncodeNumberAllValues(t *testing.T) {
	places := [Digits]int{1000, 100, 10, 1}
	for n := 0; n <= MaxNumber; n++ {
		b := EncodeNumber(n)
		for pos, place := range places {
			digit := (n / place) % 10
			shouldBlank := pos != Digits-1 && n < place

			if shouldBlank {
				if b[pos] != Blank {
					t.Fatalf("n=%d pos=%d: expected blank, got %#02x", n, pos, b[pos])
				}
				continue
			}
			got, ok := Decode(b[pos])
			if !ok || got != digit {
				t.Fatalf("n=%d pos=%d: decoded (%d, %v), want %d", n, pos, got, ok, digit)
			}
		}
	}
}

func TestEncodeNumberPanics(t *testing.T) {
	for _, n := range []int{-1, MaxNumber + 1} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("EncodeNumber(%d) did not panic", n)
				}
			}()
			EncodeNumber(n)
		}()
	}
}

func TestDecode(t *testing.T) {
	if _, ok := Decode(Blank); ok {
		t.Error("Blank should not decode to a digit")
	}
	if _, ok := Decode(0x01); ok {
		t.Error("A lone g segment should not decode to a digit")
	}
	if got := DecodeBuffer(Buffer{Blank, 0x01, EncodeDigit(4), 0x7B}); got != " ?49" {
		t.Errorf("DecodeBuffer = %q", got)
	}
}

func TestEncodeClock(t *testing.T) {
	tests := []struct {
		h, m int
		want string
	}{
		{0, 0, " 000"},
		{9, 5, " 905"},
		{10, 30, "1030"},
		{23, 59, "2359"},
	}
	for _, tt := range tests {
		if got := DecodeBuffer(EncodeClock(tt.h, tt.m)); got != tt.want {
			t.Errorf("EncodeClock(%d, %d) = %q, want %q", tt.h, tt.m, got, tt.want)
		}
	}

	for _, hm := range [][2]int{{24, 0}, {-1, 0}, {12, 60}, {12, -1}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("EncodeClock(%d, %d) did not panic", hm[0], hm[1])
				}
			}()
			EncodeClock(hm[0], hm[1])
		}()
	}
}

func ExampleEncodeNumber() {
	b := EncodeNumber(42)
	fmt.Printf("%q %#02x\n", DecodeBuffer(b), b[3])
	// Output: "  42" 0x6d
}
