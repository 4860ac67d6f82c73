// Package link drives a display attached to the firmware over its
// command link.
package link

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jonboulle/clockwork"

	"segmux/host/serial"
	"segmux/protocol"
	"segmux/segment"
)

var (
	ErrNotConnected = errors.New("link: not connected")
	ErrNumberRange  = errors.New("link: number outside [0, 9999]")
	ErrPatternRange = errors.New("link: pattern uses bits outside the 7 segments")
)

// settleDelay gives a freshly enumerated board time to start its USB task
const settleDelay = 100 * time.Millisecond

// Link is a connection to a display firmware
type Link struct {
	transport *protocol.HostTransport
	port      serial.Port
	clock     clockwork.Clock
	logger    *log.Logger

	connected bool
}

// Option configures a Link
type Option func(*Link)

// WithClock replaces the wall clock used for delays and countdowns
func WithClock(c clockwork.Clock) Option {
	return func(l *Link) { l.clock = c }
}

// WithLogger sets where sent commands are logged. Nil disables logging.
func WithLogger(logger *log.Logger) Option {
	return func(l *Link) { l.logger = logger }
}

// New wraps an already open port
func New(port serial.Port, opts ...Option) *Link {
	l := &Link{
		port:      port,
		transport: protocol.NewHostTransport(port),
		clock:     clockwork.NewRealClock(),
		connected: true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Open opens the serial device and waits for the board to settle
func Open(cfg *serial.Config, opts ...Option) (*Link, error) {
	port, err := serial.Open(cfg)
	if err != nil {
		return nil, err
	}
	l := New(port, opts...)
	if err := port.Flush(); err != nil {
		l.logf("flush %s: %v", cfg.Device, err)
	}
	l.clock.Sleep(settleDelay)
	return l, nil
}

// Close closes the port. Further sends fail with ErrNotConnected.
func (l *Link) Close() error {
	if !l.connected {
		return nil
	}
	l.connected = false
	return l.port.Close()
}

// SetNumber shows n with leading blanks
func (l *Link) SetNumber(n int) error {
	if n < 0 || n > segment.MaxNumber {
		return fmt.Errorf("%w: %d", ErrNumberRange, n)
	}
	return l.send("set_number", protocol.CmdSetNumber, uint32(n))
}

// SetSegments shows raw patterns, digit 0 leftmost
func (l *Link) SetSegments(b segment.Buffer) error {
	args := make([]uint32, len(b))
	for i, p := range b {
		if p&^segment.Mask != 0 {
			return fmt.Errorf("%w: digit %d = %#02x", ErrPatternRange, i, uint8(p))
		}
		args[i] = uint32(p)
	}
	return l.send("set_segments", protocol.CmdSetSegments, args...)
}

// Clear blanks every digit
func (l *Link) Clear() error {
	return l.send("clear_display", protocol.CmdClearDisplay)
}

// Countdown shows from, from-1, ... 1, one value per step. It returns
// early with ctx's error if ctx is cancelled.
func (l *Link) Countdown(ctx context.Context, from int, step time.Duration) error {
	for n := from; n > 0; n-- {
		if err := l.SetNumber(n); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.clock.After(step):
		}
	}
	return nil
}

func (l *Link) send(name string, cmdID uint16, args ...uint32) error {
	if !l.connected {
		return ErrNotConnected
	}
	if err := l.transport.SendCommand(cmdID, args...); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	l.logf("sent %s %v", name, args)
	return nil
}

func (l *Link) logf(format string, v ...any) {
	if l.logger != nil {
		l.logger.Printf(format, v...)
	}
}
