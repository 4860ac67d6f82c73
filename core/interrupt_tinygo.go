//go:build tinygo

package core

import "runtime/interrupt"

// disableInterrupts masks interrupts and returns the previous state.
// Calls nest: each restore puts back the mask its disable saw.
func disableInterrupts() interrupt.State {
	return interrupt.Disable()
}

// restoreInterrupts restores the interrupt state
func restoreInterrupts(state interrupt.State) {
	interrupt.Restore(state)
}

// lockRing guards the timing ring; masking interrupts is enough on one core
func lockRing() interrupt.State {
	return interrupt.Disable()
}

func unlockRing(state interrupt.State) {
	interrupt.Restore(state)
}
