package display

import (
	"errors"
	"sync"

	"segmux/core"
)

// event is one call seen by the mock drivers
type event struct {
	kind  string // "out", "in", "set", "cancel"
	pin   core.GPIOPin
	value bool
}

// trace records driver calls from both mocks in one sequence
type trace struct {
	mu     sync.Mutex
	events []event
}

func (tr *trace) add(e event) {
	tr.mu.Lock()
	tr.events = append(tr.events, e)
	tr.mu.Unlock()
}

func (tr *trace) len() int {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return len(tr.events)
}

func (tr *trace) since(i int) []event {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return append([]event(nil), tr.events[i:]...)
}

// mockGPIO keeps the direction and latched level of every pin
type mockGPIO struct {
	tr     *trace
	mu     sync.Mutex
	output map[core.GPIOPin]bool
	level  map[core.GPIOPin]bool

	failConfigure error
	failSet       bool
}

func newMockGPIO(tr *trace) *mockGPIO {
	return &mockGPIO{
		tr:     tr,
		output: make(map[core.GPIOPin]bool),
		level:  make(map[core.GPIOPin]bool),
	}
}

func (m *mockGPIO) ConfigureOutput(pin core.GPIOPin) error {
	if m.failConfigure != nil {
		return m.failConfigure
	}
	m.mu.Lock()
	m.output[pin] = true
	m.mu.Unlock()
	m.tr.add(event{kind: "out", pin: pin})
	return nil
}

func (m *mockGPIO) ConfigureInput(pin core.GPIOPin) error {
	m.mu.Lock()
	m.output[pin] = false
	m.mu.Unlock()
	m.tr.add(event{kind: "in", pin: pin})
	return nil
}

func (m *mockGPIO) SetPin(pin core.GPIOPin, value bool) error {
	if m.failSet {
		return errors.New("pin write failed")
	}
	m.mu.Lock()
	m.level[pin] = value
	m.mu.Unlock()
	m.tr.add(event{kind: "set", pin: pin, value: value})
	return nil
}

func (m *mockGPIO) isOutput(pin int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.output[core.GPIOPin(pin)]
}

func (m *mockGPIO) isHigh(pin int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.level[core.GPIOPin(pin)]
}

// fakeTimer runs the registered callback only when the test calls tick
type fakeTimer struct {
	tr          *trace
	mu          sync.Mutex
	fn          core.RecurringFunc
	periodMs    uint32
	registerErr error
	cancelled   bool
	ticks       int
}

const fakeHandle core.TimerHandle = 7

func (f *fakeTimer) RegisterRecurring(periodMs uint32, fn core.RecurringFunc) (core.TimerHandle, error) {
	if f.registerErr != nil {
		return 0, f.registerErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fn = fn
	f.periodMs = periodMs
	return fakeHandle, nil
}

func (f *fakeTimer) Cancel(h core.TimerHandle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if h == fakeHandle {
		f.fn = nil
		f.cancelled = true
	}
	f.tr.add(event{kind: "cancel"})
}

// tick fires one period. Holding the lock keeps ticks from nesting and
// makes Cancel wait for an in-flight tick.
func (f *fakeTimer) tick() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fn == nil {
		return false
	}
	f.ticks++
	return f.fn()
}

var testPins = Pins{
	Segments: [7]int{0, 1, 2, 3, 4, 5, 6},
	Digits:   [4]int{7, 8, 9, 10},
}
