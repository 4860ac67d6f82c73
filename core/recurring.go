package core

import "errors"

// MaxRecurring is the number of concurrent registrations a SchedulerTimer holds
const MaxRecurring = 8

var (
	ErrInvalidPeriod = errors.New("recurring timer needs a positive period and a callback")
	ErrNoTimerSlots  = errors.New("no free recurring timer slots")
)

type recurringSlot struct {
	timer  Timer
	period uint32 // ticks
	fn     RecurringFunc
	used   bool
}

// SchedulerTimer implements RecurringTimer on top of the sorted timer list.
// Callbacks run from TimerDispatch, so the owner must call ProcessTimers
// from a tick interrupt or a main loop.
type SchedulerTimer struct {
	slots [MaxRecurring]recurringSlot
}

// NewSchedulerTimer creates a SchedulerTimer with all slots free
func NewSchedulerTimer() *SchedulerTimer {
	return &SchedulerTimer{}
}

// RegisterRecurring schedules fn every periodMs milliseconds starting one
// period from now.
func (s *SchedulerTimer) RegisterRecurring(periodMs uint32, fn RecurringFunc) (TimerHandle, error) {
	if periodMs == 0 || fn == nil {
		return 0, ErrInvalidPeriod
	}

	state := disableInterrupts()
	idx := -1
	for i := range s.slots {
		if !s.slots[i].used {
			idx = i
			break
		}
	}
	if idx < 0 {
		restoreInterrupts(state)
		return 0, ErrNoTimerSlots
	}
	slot := &s.slots[idx]
	slot.used = true
	slot.period = TimerFromMS(periodMs)
	slot.fn = fn
	slot.timer.Next = nil
	slot.timer.Handler = func(t *Timer) uint8 {
		return s.fire(slot, t)
	}
	slot.timer.WakeTime = GetTime() + slot.period
	restoreInterrupts(state)

	ScheduleTimer(&slot.timer)
	RecordTiming(EvtTimerRegister, uint8(idx), GetTime(), periodMs, 0)
	return TimerHandle(idx + 1), nil
}

// Cancel removes the registration. Once it returns the callback will not run again.
func (s *SchedulerTimer) Cancel(h TimerHandle) {
	idx := int(h) - 1
	if idx < 0 || idx >= len(s.slots) {
		return
	}

	state := disableInterrupts()
	defer restoreInterrupts(state)

	slot := &s.slots[idx]
	if !slot.used {
		return
	}
	CancelTimer(&slot.timer)
	slot.used = false
	slot.fn = nil
	RecordTiming(EvtTimerCancel, uint8(idx), GetTime(), 0, 0)
}

// Active returns the number of live registrations
func (s *SchedulerTimer) Active() int {
	n := 0
	for i := range s.slots {
		if s.slots[i].used {
			n++
		}
	}
	return n
}

// fire runs one period. A late dispatch skips the missed periods instead
// of bursting through them.
func (s *SchedulerTimer) fire(slot *recurringSlot, t *Timer) uint8 {
	if !slot.used || slot.fn == nil {
		return SF_DONE
	}
	if !slot.fn() {
		slot.used = false
		slot.fn = nil
		return SF_DONE
	}

	next := t.WakeTime + slot.period
	if !timerBefore(currentTime, next) {
		next = currentTime + slot.period
	}
	t.WakeTime = next
	return SF_RESCHEDULE
}
