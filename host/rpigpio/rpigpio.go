// Package rpigpio drives display pins from a Raspberry Pi header
// through /dev/gpiomem.
package rpigpio

import (
	"errors"
	"fmt"

	"github.com/stianeikeland/go-rpio"

	"segmux/core"
)

// MaxPin is the highest BCM GPIO on the 40-pin header
const MaxPin = 27

var ErrPinRange = errors.New("rpigpio: BCM pin outside the header")

// Driver implements core.GPIODriver with go-rpio
type Driver struct{}

// Open maps the GPIO registers. Call Close when done.
func Open() (*Driver, error) {
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("rpigpio: %w", err)
	}
	return &Driver{}, nil
}

// Close unmaps the GPIO registers
func (d *Driver) Close() error {
	return rpio.Close()
}

// ConfigureOutput switches the pin to push-pull output
func (d *Driver) ConfigureOutput(pin core.GPIOPin) error {
	p, err := bcm(pin)
	if err != nil {
		return err
	}
	p.Output()
	return nil
}

// ConfigureInput floats the pin so a deselected digit sinks nothing
func (d *Driver) ConfigureInput(pin core.GPIOPin) error {
	p, err := bcm(pin)
	if err != nil {
		return err
	}
	p.Input()
	p.PullOff()
	return nil
}

// SetPin drives an output pin high or low
func (d *Driver) SetPin(pin core.GPIOPin, value bool) error {
	p, err := bcm(pin)
	if err != nil {
		return err
	}
	if value {
		p.High()
	} else {
		p.Low()
	}
	return nil
}

func bcm(pin core.GPIOPin) (rpio.Pin, error) {
	if pin > MaxPin {
		return 0, ErrPinRange
	}
	return rpio.Pin(pin), nil
}
