//go:build rp2040

package main

import (
	"device/rp"
	"machine"

	"segmux/core"
)

// RPGPIODriver implements the GPIODriver interface for RP2040.
// The first use of a pin routes it to SIO through machine.Pin.Configure;
// later direction changes only touch the SIO output-enable registers, so
// the refresh interrupt never reconfigures pads or allocates.
type RPGPIODriver struct {
	claimed [core.MaxGPIO + 1]bool
}

// NewRPGPIODriver creates a new RP2040 GPIO driver
func NewRPGPIODriver() *RPGPIODriver {
	return &RPGPIODriver{}
}

// ConfigureOutput enables the output driver. The SIO output latch keeps
// its level, so a digit selector set low at init sinks immediately.
func (d *RPGPIODriver) ConfigureOutput(pin core.GPIOPin) error {
	if err := d.claim(pin, machine.PinOutput); err != nil {
		return err
	}
	rp.SIO.GPIO_OE_SET.Set(1 << pin)
	return nil
}

// ConfigureInput disables the output driver, leaving the pin floating
func (d *RPGPIODriver) ConfigureInput(pin core.GPIOPin) error {
	if err := d.claim(pin, machine.PinInput); err != nil {
		return err
	}
	rp.SIO.GPIO_OE_CLR.Set(1 << pin)
	return nil
}

// SetPin sets the pin to high (true) or low (false)
func (d *RPGPIODriver) SetPin(pin core.GPIOPin, value bool) error {
	if pin > core.MaxGPIO {
		return errPinRange
	}
	if value {
		rp.SIO.GPIO_OUT_SET.Set(1 << pin)
	} else {
		rp.SIO.GPIO_OUT_CLR.Set(1 << pin)
	}
	return nil
}

func (d *RPGPIODriver) claim(pin core.GPIOPin, mode machine.PinMode) error {
	if pin > core.MaxGPIO {
		return errPinRange
	}
	if !d.claimed[pin] {
		machine.Pin(pin).Configure(machine.PinConfig{Mode: mode})
		d.claimed[pin] = true
	}
	return nil
}
