package core

// TimerHandle identifies a recurring timer registration
type TimerHandle uint32

// RecurringFunc is invoked once per period in timer (interrupt) context.
// Returning true keeps the registration recurring; false ends it.
// It must not allocate, block, or run unbounded work.
type RecurringFunc func() bool

// RecurringTimer is the abstract periodic-timer facility.
//
// Implementations guarantee that callbacks for one registration never
// nest, and that once Cancel returns no callback for that handle is in
// flight or will start.
type RecurringTimer interface {
	// RegisterRecurring arranges for fn to run every periodMs milliseconds.
	RegisterRecurring(periodMs uint32, fn RecurringFunc) (TimerHandle, error)

	// Cancel stops a registration. Unknown handles are ignored.
	Cancel(h TimerHandle)
}

var timerDriver RecurringTimer

// SetTimerDriver is called by target-specific code to register its timer facility.
func SetTimerDriver(t RecurringTimer) {
	timerDriver = t
}

// MustTimer returns the configured timer facility or panics if missing.
func MustTimer() RecurringTimer {
	if timerDriver == nil {
		panic("timer driver not configured")
	}
	return timerDriver
}
