// Package display drives a 4-digit, 7-segment LED display by time-division
// multiplexing.
//
// Only one digit selector is active at a time. A recurring timer callback
// lights each digit in turn, fast enough that all four appear lit. The
// main context publishes what to show with Display.SetBuffer; the timer
// context reads it on every tick.
//
// The two contexts share exactly one value, a 32-bit frame word holding
// all four segment patterns. It is written and read whole with
// sync/atomic, which is the only synchronization between them: a tick
// sees either the old frame or the new one, never a mix. Everything else
// the timer callback touches (the digit cursor, the pins) belongs to the
// timer context alone.
//
// Each tick paints in a fixed order: deselect every digit, paint the
// segments, then select the new digit. A digit is therefore never lit
// while the shared segment lines still carry another digit's pattern.
package display
