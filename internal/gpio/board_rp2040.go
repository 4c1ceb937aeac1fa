//go:build tinygo && rp2040

package gpio

import (
	"fmt"
	"machine"
)

// BoardReader reads buttons wired to RP2040 pins.
type BoardReader struct {
	a machine.Pin
	b machine.Pin
}

// NewBoardReader configures both button pins as pulled-up inputs.
func NewBoardReader(pinA, pinB int) *BoardReader {
	r := &BoardReader{a: machine.Pin(pinA), b: machine.Pin(pinB)}
	r.a.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	r.b.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	return r
}

// Read returns the logical states of buttons A and B (low = pressed).
func (r *BoardReader) Read() (bool, bool, error) {
	return !r.a.Get(), !r.b.Get(), nil
}

// Close leaves the pins configured; the board has nothing to release.
func (r *BoardReader) Close() error {
	return nil
}

// BoardLEDs drives LEDs wired to RP2040 pins.
type BoardLEDs struct {
	pins map[LED]machine.Pin
}

// NewBoardLEDs configures the LED pins as outputs, all initially off.
func NewBoardLEDs(pins Pins) *BoardLEDs {
	l := &BoardLEDs{pins: make(map[LED]machine.Pin)}
	for _, led := range []LED{LEDAcknowledge, LEDPresence, LEDConfirm} {
		n, _ := pins.led(led)
		p := machine.Pin(n)
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
		p.Low()
		l.pins[led] = p
	}
	return l
}

// Set drives the LED pin.
func (l *BoardLEDs) Set(led LED, on bool) error {
	p, ok := l.pins[led]
	if !ok {
		return fmt.Errorf("unknown led %d", led)
	}
	p.Set(on)
	return nil
}

// Close switches every LED off.
func (l *BoardLEDs) Close() error {
	for _, p := range l.pins {
		p.Low()
	}
	return nil
}
