//go:build !tinygo

package core

import "sync"

// State stands in for the saved interrupt mask on regular Go
type State uintptr

// disableInterrupts is a no-op on regular Go. Host builds never run
// TimerDispatch from an interrupt, so tests drive it from one goroutine.
func disableInterrupts() State {
	return 0
}

// restoreInterrupts is a no-op on regular Go
func restoreInterrupts(state State) {}

// Host timers call back on their own goroutines, so the timing ring
// needs a real lock here.
var ringMu sync.Mutex

func lockRing() State {
	ringMu.Lock()
	return 0
}

func unlockRing(state State) {
	ringMu.Unlock()
}
