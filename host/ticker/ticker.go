// Package ticker implements core.RecurringTimer with goroutines, for
// displays driven from a Linux host.
package ticker

import (
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"segmux/core"
)

var ErrInvalidPeriod = errors.New("ticker: period and callback are required")

type registration struct {
	ticker clockwork.Ticker
	stop   chan struct{}
	done   chan struct{}
}

// Ticker runs each registration's callback on its own goroutine, so
// callbacks of one registration never overlap.
type Ticker struct {
	clock clockwork.Clock

	mu   sync.Mutex
	next core.TimerHandle
	regs map[core.TimerHandle]*registration
}

// New returns a Ticker on the given clock; nil means the wall clock
func New(clock clockwork.Clock) *Ticker {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Ticker{
		clock: clock,
		regs:  make(map[core.TimerHandle]*registration),
	}
}

// RegisterRecurring starts calling fn every periodMs milliseconds
func (t *Ticker) RegisterRecurring(periodMs uint32, fn core.RecurringFunc) (core.TimerHandle, error) {
	if periodMs == 0 || fn == nil {
		return 0, ErrInvalidPeriod
	}

	reg := &registration{
		ticker: t.clock.NewTicker(time.Duration(periodMs) * time.Millisecond),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}

	t.mu.Lock()
	t.next++
	h := t.next
	t.regs[h] = reg
	t.mu.Unlock()

	go reg.run(fn)
	core.RecordTiming(core.EvtTimerRegister, 0, core.GetTime(), periodMs, uint32(h))
	return h, nil
}

// Cancel stops h and waits for a running callback to return.
// It must not be called from h's own callback.
func (t *Ticker) Cancel(h core.TimerHandle) {
	t.mu.Lock()
	reg, ok := t.regs[h]
	delete(t.regs, h)
	t.mu.Unlock()
	if !ok {
		return
	}

	close(reg.stop)
	<-reg.done
	core.RecordTiming(core.EvtTimerCancel, 0, core.GetTime(), 0, uint32(h))
}

// Active returns the number of registrations not yet cancelled
func (t *Ticker) Active() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.regs)
}

func (r *registration) run(fn core.RecurringFunc) {
	defer close(r.done)
	defer r.ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-r.ticker.Chan():
		}

		// A tick and a cancel can be ready together
		select {
		case <-r.stop:
			return
		default:
		}

		if !fn() {
			return
		}
	}
}
