package core

import "sync/atomic"

// TimerFreq is the tick rate of the system clock (RP2040 microsecond timer)
const TimerFreq = 1000000

var systemTicks atomic.Uint32

// GetTime returns the current system time in timer ticks
func GetTime() uint32 {
	return systemTicks.Load()
}

// SetTime sets the current system time (for testing/hardware integration)
func SetTime(ticks uint32) {
	systemTicks.Store(ticks)
}

// TimerFromUS converts microseconds to timer ticks
func TimerFromUS(us uint32) uint32 {
	return uint32(uint64(us) * TimerFreq / 1000000)
}

// TimerFromMS converts milliseconds to timer ticks
func TimerFromMS(ms uint32) uint32 {
	return uint32(uint64(ms) * TimerFreq / 1000)
}

// TimerToUS converts timer ticks to microseconds
func TimerToUS(ticks uint32) uint32 {
	return uint32(uint64(ticks) * 1000000 / TimerFreq)
}

// timerBefore reports whether a is strictly earlier than b, tolerating wraparound
func timerBefore(a, b uint32) bool {
	return int32(a-b) < 0
}

// ProcessTimers processes scheduled timers
func ProcessTimers() {
	currentTime = GetTime()
	TimerDispatch()
}
