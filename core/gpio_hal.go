package core

// GPIOPin identifies a hardware GPIO pin number
type GPIOPin uint32

// Valid GPIO index range for the supported boards (RP2040 exposes GPIO0-GPIO29)
const (
	MinGPIO = 0
	MaxGPIO = 29
)

// GPIODriver is the abstract GPIO interface that core code uses.
// Platform-specific implementations handle actual hardware control.
//
// Implementations must not allocate or block: SetPin and the Configure
// calls are issued from the display refresh callback, which runs in
// interrupt context on real hardware.
type GPIODriver interface {
	// ConfigureOutput switches a pin to output mode.
	// The output latch keeps its last written level across direction changes.
	ConfigureOutput(pin GPIOPin) error

	// ConfigureInput switches a pin to input mode (high impedance, no pulls).
	// Digit selectors use this as their deselected state.
	ConfigureInput(pin GPIOPin) error

	// SetPin sets the pin to high (true) or low (false)
	SetPin(pin GPIOPin, value bool) error
}

// Global singleton used by core code.
var gpioDriver GPIODriver

// SetGPIODriver is called by target-specific code to register its driver.
func SetGPIODriver(d GPIODriver) {
	gpioDriver = d
}

// MustGPIO returns the configured driver or panics if missing.
func MustGPIO() GPIODriver {
	if gpioDriver == nil {
		panic("GPIO driver not configured")
	}
	return gpioDriver
}
