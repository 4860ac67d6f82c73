// Package serial opens the USB CDC port the display firmware listens on.
package serial

import (
	"io"
	"time"
)

// Port is an open link to the firmware. Tests substitute an in-memory port.
type Port interface {
	io.ReadWriteCloser

	// Flush flushes any buffered data
	Flush() error
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyACM0", "COM3")
	Device string

	// Baud rate. USB CDC ignores it but tarm/serial requires one.
	Baud int

	// ReadTimeout bounds a Read; zero blocks
	ReadTimeout time.Duration
}

// DefaultConfig returns the settings the firmware's USB CDC port expects
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        250000,
		ReadTimeout: 100 * time.Millisecond,
	}
}
