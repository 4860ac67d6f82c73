package display

import (
	"errors"
	"fmt"
	"sync/atomic"

	"segmux/core"
	"segmux/segment"
)

// ErrTimerRegistration wraps the timer facility's error when the refresh
// callback cannot be registered
var ErrTimerRegistration = errors.New("display: refresh timer registration failed")

// Lifecycle states
const (
	stateLive uint32 = iota + 1
	stateClosed
)

// Display is a live multiplexed display. It is created by New and stays
// live until Close. Do not copy a Display.
type Display struct {
	ctrl   *Controller
	timer  core.RecurringTimer
	handle core.TimerHandle
	state  atomic.Uint32

	// frame is the only state shared with the refresh callback
	frame atomic.Uint32

	// next is the digit the refresh callback draws next, in [0, 4).
	// Only the refresh callback touches it after construction.
	next int
}

// New builds a display on the registered GPIO driver and timer facility
// (core.MustGPIO, core.MustTimer) and starts refreshing one digit every
// refreshPeriodMs milliseconds.
func New(pins Pins, refreshPeriodMs uint32) (*Display, error) {
	return NewWithDrivers(core.MustGPIO(), core.MustTimer(), pins, refreshPeriodMs)
}

// NewWithDrivers is New with explicit drivers.
// On error nothing is registered with the timer and no Display is returned.
func NewWithDrivers(gpio core.GPIODriver, timer core.RecurringTimer, pins Pins, refreshPeriodMs uint32) (*Display, error) {
	ctrl, err := NewController(gpio, pins)
	if err != nil {
		return nil, err
	}
	if err := ctrl.Initialize(); err != nil {
		return nil, fmt.Errorf("display: initialize pins: %w", err)
	}

	d := &Display{ctrl: ctrl, timer: timer}
	d.frame.Store(pack(segment.Buffer{}))

	h, err := timer.RegisterRecurring(refreshPeriodMs, d.refresh)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTimerRegistration, err)
	}
	d.handle = h
	d.state.Store(stateLive)

	core.DebugPrintln("display: live, refresh every " + core.Utoa(refreshPeriodMs) + "ms")
	return d, nil
}

// SetBuffer replaces what the display shows. Safe to call at any time
// from the main context while the display is live.
func (d *Display) SetBuffer(b segment.Buffer) {
	d.mustBeLive()
	w := pack(b)
	d.frame.Store(w)
	core.RecordTiming(core.EvtSetBuffer, 0, core.GetTime(), w, 0)
}

// SetNumber is SetBuffer(segment.EncodeNumber(n))
func (d *Display) SetNumber(n int) {
	d.SetBuffer(segment.EncodeNumber(n))
}

// Buffer returns the patterns currently published to the refresh callback
func (d *Display) Buffer() segment.Buffer {
	d.mustBeLive()
	return unpack(d.frame.Load())
}

// Controller exposes the underlying digit controller, e.g. for WriteErrors
func (d *Display) Controller() *Controller {
	return d.ctrl
}

// Close cancels the refresh timer, then deselects every digit and paints
// blank so nothing stays lit. Calls after the first do nothing.
func (d *Display) Close() {
	if !d.state.CompareAndSwap(stateLive, stateClosed) {
		return
	}

	// No tick can be in flight once Cancel returns
	d.timer.Cancel(d.handle)

	d.ctrl.SelectDigit(NoDigit)
	d.ctrl.Paint(segment.Blank)
	core.RecordTiming(core.EvtTeardown, 0, core.GetTime(), 0, 0)
	core.DebugPrintln("display: closed")
}

// refresh runs in timer context once per period. It must stay bounded
// and allocation free.
func (d *Display) refresh() bool {
	digit := d.next

	d.ctrl.SelectDigit(NoDigit)
	p := unpack(d.frame.Load())[digit]
	d.ctrl.Paint(p)
	d.ctrl.SelectDigit(digit)

	d.next = (digit + 1) % segment.Digits
	core.RecordTiming(core.EvtRefresh, uint8(digit), core.GetTime(), uint32(p), 0)
	return true
}

func (d *Display) mustBeLive() {
	if d.state.Load() != stateLive {
		panic("display: used after Close")
	}
}
