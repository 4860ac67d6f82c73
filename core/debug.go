package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// TimingEvent captures a timing-critical event for post-mortem analysis
type TimingEvent struct {
	EventType uint8  // Event type code
	Slot      uint8  // Digit position or timer slot
	Clock     uint32 // System clock at event
	Value1    uint32 // Context-dependent value
	Value2    uint32 // Context-dependent value
}

// Event type codes
const (
	EvtRefresh       = 1 // Display refresh tick painted a digit
	EvtSetBuffer     = 2 // Main context published a new frame
	EvtTimerRegister = 3 // Recurring timer registered
	EvtTimerCancel   = 4 // Recurring timer cancelled
	EvtTeardown      = 5 // Display blanked after cancel
	EvtWriteError    = 6 // Pin driver reported an error
)

const (
	TimingRingSize = 32 // Keep last 32 events for post-mortem
)

var (
	// debugPrintln is the global debug print function (can be set by platform code)
	debugPrintln DebugWriter = func(s string) {}

	// debugEnabled controls whether debug output is active
	debugEnabled bool = false

	// Timing capture ring buffer (non-blocking, safe from interrupt context)
	timingRing     [TimingRingSize]TimingEvent
	timingRingHead uint8
	timingEnabled  bool = true

	// Async debug output channel
	debugChan chan string
)

// SetDebugWriter sets the platform-specific debug output function
// This allows platforms to redirect debug output to UART, USB, a log file, etc.
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// IsDebugEnabled returns whether debug output is enabled
func IsDebugEnabled() bool {
	return debugEnabled
}

// SetTimingEnabled turns timing capture on or off
func SetTimingEnabled(enabled bool) {
	timingEnabled = enabled
}

// InitAsyncDebug starts the async debug output goroutine
// Call this from main() after SetDebugWriter. Later calls do nothing.
func InitAsyncDebug() {
	if debugChan != nil {
		return
	}
	debugChan = make(chan string, 16)
	go debugOutputWorker()
}

// debugOutputWorker runs in background, drains debug channel
func debugOutputWorker() {
	for msg := range debugChan {
		if debugPrintln != nil {
			debugPrintln(msg)
		}
	}
}

// DebugPrintln writes a debug message using the platform-specific writer
// Blocks if debug is enabled (use DebugAsync for non-blocking)
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// DebugAsync queues a debug message for async output (non-blocking)
// Returns immediately even if channel is full (drops message)
func DebugAsync(msg string) {
	if debugEnabled && debugChan != nil {
		select {
		case debugChan <- msg:
		default:
		}
	}
}

// RecordTiming captures a timing event in the ring buffer.
// Never allocates or blocks, so the refresh callback may call it.
func RecordTiming(eventType, slot uint8, clock, value1, value2 uint32) {
	if !timingEnabled {
		return
	}
	state := lockRing()
	idx := timingRingHead
	timingRing[idx] = TimingEvent{
		EventType: eventType,
		Slot:      slot,
		Clock:     clock,
		Value1:    value1,
		Value2:    value2,
	}
	timingRingHead = (idx + 1) % TimingRingSize
	unlockRing(state)
}

// TimingEvents returns the captured events from oldest to newest
func TimingEvents() []TimingEvent {
	state := lockRing()
	defer unlockRing(state)

	events := make([]TimingEvent, 0, TimingRingSize)
	start := timingRingHead
	for i := uint8(0); i < TimingRingSize; i++ {
		evt := timingRing[(start+i)%TimingRingSize]
		if evt.EventType != 0 {
			events = append(events, evt)
		}
	}
	return events
}

func eventName(t uint8) string {
	switch t {
	case EvtRefresh:
		return "REFRESH"
	case EvtSetBuffer:
		return "SET_BUFFER"
	case EvtTimerRegister:
		return "TIMER_REG"
	case EvtTimerCancel:
		return "TIMER_CANCEL"
	case EvtTeardown:
		return "TEARDOWN"
	case EvtWriteError:
		return "WRITE_ERR!"
	default:
		return "UNKNOWN"
	}
}

// DumpTimingRing outputs the timing ring buffer (call on shutdown/error)
// This must not be called from interrupt context
func DumpTimingRing() {
	if debugPrintln == nil {
		return
	}

	debugPrintln("[TIMING] === Timing Ring Dump ===")
	for _, evt := range TimingEvents() {
		debugPrintln("[TIMING] " + eventName(evt.EventType) +
			" slot=" + Itoa(int(evt.Slot)) +
			" clock=" + Utoa(evt.Clock) +
			" v1=" + Utoa(evt.Value1) +
			" v2=" + Utoa(evt.Value2))
	}
	debugPrintln("[TIMING] === End Dump ===")
}

// ClearTimingRing clears the timing buffer
func ClearTimingRing() {
	state := lockRing()
	defer unlockRing(state)

	for i := range timingRing {
		timingRing[i] = TimingEvent{}
	}
	timingRingHead = 0
}
