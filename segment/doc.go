// Package segment encodes decimal digits and numbers into on/off
// patterns for a 7-segment display.
//
// A Pattern is one digit's seven segment flags. Bit i drives segment
// pin i of the display wiring; with the standard table bit 6 is segment
// a and bit 0 is segment g:
//
//	  aaa
//	 f   b
//	  ggg
//	 e   c
//	  ddd
//
// A Buffer is four Patterns ordered from the most significant digit
// position to the least significant.
package segment
