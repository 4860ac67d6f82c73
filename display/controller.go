package display

import (
	"errors"
	"sync/atomic"

	"segmux/core"
	"segmux/segment"
)

// NoDigit passed to SelectDigit deselects every digit
const NoDigit = -1

// ErrInvalidPins is returned when a pin assignment has an identifier
// outside [core.MinGPIO, core.MaxGPIO]
var ErrInvalidPins = errors.New("display: pin outside the valid GPIO range")

// Pins is the wiring of a 4-digit display: seven segment lines, where
// Segments[i] is driven by bit i of a segment.Pattern, and four digit
// selectors ordered most significant first.
type Pins struct {
	Segments [7]int
	Digits   [segment.Digits]int
}

// Valid reports whether every identifier lies within the GPIO range.
// Overlap between segment and digit pins is not checked.
func (p Pins) Valid() bool {
	for _, pin := range p.Segments {
		if !inGPIORange(pin) {
			return false
		}
	}
	for _, pin := range p.Digits {
		if !inGPIORange(pin) {
			return false
		}
	}
	return true
}

// Uses reports whether pin is one of the display's segment or digit lines
func (p Pins) Uses(pin int) bool {
	for _, sp := range p.Segments {
		if sp == pin {
			return true
		}
	}
	for _, dp := range p.Digits {
		if dp == pin {
			return true
		}
	}
	return false
}

func inGPIORange(pin int) bool {
	return core.MinGPIO <= pin && pin <= core.MaxGPIO
}

// Controller owns a validated pin assignment and exposes the primitive
// operations of a multiplexed display. It starts uninitialized; every
// method except Initialize panics until Initialize has succeeded.
type Controller struct {
	gpio     core.GPIODriver
	segments [7]core.GPIOPin
	digits   [segment.Digits]core.GPIOPin
	ready    bool
	active   int // selected digit or NoDigit

	writeErrors atomic.Uint32
}

// NewController validates pins and returns an uninitialized controller
func NewController(gpio core.GPIODriver, pins Pins) (*Controller, error) {
	if !pins.Valid() {
		return nil, ErrInvalidPins
	}
	c := &Controller{gpio: gpio, active: NoDigit}
	for i, pin := range pins.Segments {
		c.segments[i] = core.GPIOPin(pin)
	}
	for i, pin := range pins.Digits {
		c.digits[i] = core.GPIOPin(pin)
	}
	return c, nil
}

// Initialize puts all eleven pins in output mode with segments low, then
// deselects every digit. The digit output latches stay low, so selecting
// a digit later is a single direction change.
func (c *Controller) Initialize() error {
	for _, pin := range c.segments {
		if err := c.gpio.ConfigureOutput(pin); err != nil {
			return err
		}
		if err := c.gpio.SetPin(pin, false); err != nil {
			return err
		}
	}
	for _, pin := range c.digits {
		if err := c.gpio.ConfigureOutput(pin); err != nil {
			return err
		}
		if err := c.gpio.SetPin(pin, false); err != nil {
			return err
		}
		if err := c.gpio.ConfigureInput(pin); err != nil {
			return err
		}
	}
	c.active = NoDigit
	c.ready = true
	return nil
}

// SelectDigit makes digit i the only active digit, or deselects all of
// them for NoDigit. Callers paint segments only while nothing is selected.
// Only the previously active digit and digit i change direction.
func (c *Controller) SelectDigit(i int) {
	c.mustBeReady()
	if i != NoDigit && (i < 0 || i >= segment.Digits) {
		panic("display: digit index out of range")
	}
	if i == c.active {
		return
	}

	// Deselect first so two digits are never driven at once
	if c.active != NoDigit {
		c.check(c.gpio.ConfigureInput(c.digits[c.active]))
		c.active = NoDigit
	}
	if i != NoDigit {
		c.check(c.gpio.ConfigureOutput(c.digits[i]))
		c.active = i
	}
}

// Paint drives the segment lines to p on whichever digit is selected
func (c *Controller) Paint(p segment.Pattern) {
	c.mustBeReady()
	for i, pin := range c.segments {
		c.check(c.gpio.SetPin(pin, p.Segment(i)))
	}
}

// WriteErrors returns how many pin operations failed after Initialize
func (c *Controller) WriteErrors() uint32 {
	return c.writeErrors.Load()
}

func (c *Controller) mustBeReady() {
	if !c.ready {
		panic("display: controller used before Initialize")
	}
}

// check counts driver failures. Paint and SelectDigit run in timer
// context where there is no caller to return an error to.
func (c *Controller) check(err error) {
	if err != nil {
		n := c.writeErrors.Add(1)
		core.RecordTiming(core.EvtWriteError, 0, core.GetTime(), n, 0)
	}
}
