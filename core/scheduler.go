package core

// Timer represents a scheduled event
type Timer struct {
	WakeTime uint32
	Handler  func(*Timer) uint8
	Next     *Timer
}

const (
	SF_DONE       = 0
	SF_RESCHEDULE = 1
)

var (
	timerList   *Timer
	currentTime uint32
)

// ScheduleTimer adds a timer to the schedule
func ScheduleTimer(t *Timer) {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	insertTimer(t)
}

// CancelTimer removes a timer from the schedule.
// Returns false if the timer was not scheduled.
func CancelTimer(t *Timer) bool {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	if timerList == t {
		timerList = t.Next
		t.Next = nil
		return true
	}
	for cur := timerList; cur != nil; cur = cur.Next {
		if cur.Next == t {
			cur.Next = t.Next
			t.Next = nil
			return true
		}
	}
	return false
}

// insertTimer inserts a timer in sorted order by WakeTime
func insertTimer(t *Timer) {
	if timerList == nil || timerBefore(t.WakeTime, timerList.WakeTime) {
		t.Next = timerList
		timerList = t
		return
	}

	current := timerList
	for current.Next != nil && timerBefore(current.Next.WakeTime, t.WakeTime) {
		current = current.Next
	}

	t.Next = current.Next
	current.Next = t
}

// TimerDispatch processes due timers.
// Handlers run with interrupts disabled, so a CancelTimer issued from
// the main context never observes a handler mid-flight.
func TimerDispatch() {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	for timerList != nil && !timerBefore(currentTime, timerList.WakeTime) {
		timer := timerList
		timerList = timer.Next
		timer.Next = nil

		result := timer.Handler(timer)

		if result == SF_RESCHEDULE {
			insertTimer(timer)
		}
	}
}

// resetTimers drops every scheduled timer (tests only)
func resetTimers() {
	timerList = nil
	currentTime = 0
}
