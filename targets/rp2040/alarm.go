//go:build rp2040

package main

import (
	"device/rp"
	"runtime/interrupt"

	"segmux/core"
)

// tickUS is the scheduler tick. Refresh periods are whole milliseconds,
// so a 1kHz tick dispatches every registration on time.
const tickUS = 1000

// Alarm 0 belongs to the TinyGo runtime's sleep timer
var tickIRQ interrupt.Interrupt

// StartTick arms hardware alarm 3 to run core.ProcessTimers every
// millisecond. SchedulerTimer callbacks, including the display refresh,
// run from this interrupt.
func StartTick() {
	UpdateSystemTime()

	tickIRQ = interrupt.New(rp.IRQ_TIMER_IRQ_3, handleTick)
	rp.TIMER.INTE.SetBits(rp.TIMER_INTE_ALARM_3)
	rp.TIMER.ALARM3.Set(GetHardwareTime() + tickUS)
	tickIRQ.Enable()
}

func handleTick(interrupt.Interrupt) {
	rp.TIMER.INTR.Set(rp.TIMER_INTR_ALARM_3)

	// Rearm from the previous deadline so the tick does not drift
	next := rp.TIMER.ALARM3.Get() + tickUS
	now := GetHardwareTime()
	if int32(next-now) <= 0 {
		next = now + tickUS
	}
	rp.TIMER.ALARM3.Set(next)

	UpdateSystemTime()
	core.ProcessTimers()
}
