// Package gpio provides button and LED access with hardware abstraction.
// The Linux implementation uses the GPIO character device, the RP2040
// implementation uses TinyGo's machine package.
// The fake implementations allow testing without hardware.
package gpio

// Reader reads the kiosk buttons.
type Reader interface {
	// Read returns the logical states of buttons A and B.
	// The raw lines are active-low with pull-ups: raw 0 = pressed.
	// Returns (aPressed, bPressed, error).
	Read() (bool, bool, error)

	// Close releases GPIO resources.
	Close() error
}

// LED identifies one of the kiosk status LEDs.
type LED int

const (
	// LEDAcknowledge is lit once presence has been confirmed with button A.
	LEDAcknowledge LED = iota
	// LEDPresence marks a reset in progress and doubles as the wake indicator.
	LEDPresence
	// LEDConfirm is the default LED lit at power-up, waiting for confirmation.
	LEDConfirm
)

func (l LED) String() string {
	switch l {
	case LEDAcknowledge:
		return "ACK"
	case LEDPresence:
		return "PRESENCE"
	case LEDConfirm:
		return "CONFIRM"
	}
	return "UNKNOWN"
}

// LEDs drives the kiosk status LEDs.
type LEDs interface {
	// Set turns the LED on or off.
	Set(led LED, on bool) error

	// Close releases GPIO resources.
	Close() error
}

// Pin definitions (BitDogLab wiring, GP numbering on the board, line offsets on Linux)
const (
	DefaultPinA           = 5
	DefaultPinB           = 6
	DefaultPinAcknowledge = 11 // green
	DefaultPinPresence    = 12 // blue
	DefaultPinConfirm     = 13 // red
)

// Pins holds the line numbers used by a real reader and LED driver.
type Pins struct {
	A           int
	B           int
	Acknowledge int
	Presence    int
	Confirm     int
}

// DefaultPins returns the board's default wiring.
func DefaultPins() Pins {
	return Pins{
		A:           DefaultPinA,
		B:           DefaultPinB,
		Acknowledge: DefaultPinAcknowledge,
		Presence:    DefaultPinPresence,
		Confirm:     DefaultPinConfirm,
	}
}

// led returns the line number for the given LED.
func (p Pins) led(l LED) (int, bool) {
	switch l {
	case LEDAcknowledge:
		return p.Acknowledge, true
	case LEDPresence:
		return p.Presence, true
	case LEDConfirm:
		return p.Confirm, true
	}
	return 0, false
}
