//go:build rp2040

package main

import (
	"errors"
	"time"

	"segmux/core"
	"segmux/display"
	"segmux/protocol"
)

const refreshPeriodMs = 10

var (
	errPinRange = errors.New("gpio out of range")

	// Board wiring: segments a-g on GPIO0-6, digit selectors on GPIO7-10
	boardPins = display.Pins{
		Segments: [7]int{0, 1, 2, 3, 4, 5, 6},
		Digits:   [4]int{7, 8, 9, 10},
	}

	inputBuffer *protocol.FifoBuffer
	transport   *protocol.Transport

	msgerrors uint32
)

func main() {
	InitUSB()
	core.SetDebugWriter(func(s string) { println(s) })
	core.SetDebugEnabled(true)
	core.InitAsyncDebug()
	core.DebugPrintln("segmux " + protocol.Version)

	core.SetGPIODriver(NewRPGPIODriver())
	core.SetTimerDriver(core.NewSchedulerTimer())
	StartTick()

	d, err := display.New(boardPins, refreshPeriodMs)
	if err != nil {
		println("display:", err.Error())
		return
	}

	for n := 10; n > 0; n-- {
		d.SetNumber(n)
		time.Sleep(time.Second)
	}

	if err := display.RegisterCommands(core.GetGlobalRegistry(), d); err != nil {
		println("commands:", err.Error())
		return
	}
	core.DebugPrintln(core.GetGlobalRegistry().GetDictionary())
	serve()
}

// serve feeds USB bytes through the transport to the command registry
func serve() {
	inputBuffer = protocol.NewFifoBuffer()
	transport = protocol.NewTransport(core.DispatchCommand)

	go usbReaderLoop()

	var lastErrors uint32
	for {
		if inputBuffer.Available() > 0 {
			transport.Receive(inputBuffer)
			if transport.Errors != lastErrors {
				lastErrors = transport.Errors
				core.DebugAsync("link: errors=" + core.Utoa(lastErrors))
			}
		}
		time.Sleep(100 * time.Microsecond)
	}
}

// usbReaderLoop runs in a goroutine to continuously read USB data
func usbReaderLoop() {
	defer func() {
		if r := recover(); r != nil {
			msgerrors++
			core.DebugAsync("usb: reader restarted")
			time.Sleep(100 * time.Millisecond)
			go usbReaderLoop()
		}
	}()

	var one [1]byte
	for {
		for USBAvailable() > 0 {
			data, err := USBRead()
			if err != nil {
				msgerrors++
				core.DebugAsync("usb: read: " + err.Error())
				break
			}
			one[0] = data
			if inputBuffer.Write(one[:]) == 0 {
				// Full: the transport drops the partial block and resyncs
				msgerrors++
				core.DebugAsync("usb: input full, errors=" + core.Utoa(msgerrors))
			}
		}
		time.Sleep(100 * time.Microsecond)
	}
}
