//go:build linux && !tinygo

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

const consumer = "attendance-kiosk"

// RealReader reads buttons from actual hardware using Linux GPIO character device.
type RealReader struct {
	chip *gpiocdev.Chip
	aPin *gpiocdev.Line
	bPin *gpiocdev.Line
}

// NewRealReader creates a button reader on the named chip (e.g. "gpiochip0").
func NewRealReader(chipName string, pinA, pinB int) (*RealReader, error) {
	chip, err := gpiocdev.NewChip(chipName, gpiocdev.WithConsumer(consumer))
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	// Buttons short to ground, so lines idle high through the pull-up.
	aLine, err := chip.RequestLine(pinA, gpiocdev.AsInput, gpiocdev.WithPullUp)
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request button A pin %d: %w", pinA, err)
	}

	bLine, err := chip.RequestLine(pinB, gpiocdev.AsInput, gpiocdev.WithPullUp)
	if err != nil {
		aLine.Close()
		chip.Close()
		return nil, fmt.Errorf("request button B pin %d: %w", pinB, err)
	}

	return &RealReader{
		chip: chip,
		aPin: aLine,
		bPin: bLine,
	}, nil
}

// Read returns the logical states of buttons A and B.
// Inverts raw GPIO: raw low (0) = pressed, raw high (1) = released.
func (r *RealReader) Read() (bool, bool, error) {
	aRaw, err := r.aPin.Value()
	if err != nil {
		return false, false, fmt.Errorf("read button A pin: %w", err)
	}

	bRaw, err := r.bPin.Value()
	if err != nil {
		return false, false, fmt.Errorf("read button B pin: %w", err)
	}

	return aRaw == 0, bRaw == 0, nil
}

// Close releases GPIO resources.
func (r *RealReader) Close() error {
	var errs []error

	if r.aPin != nil {
		if err := r.aPin.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close button A pin: %w", err))
		}
	}
	if r.bPin != nil {
		if err := r.bPin.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close button B pin: %w", err))
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// RealLEDs drives the status LEDs as GPIO outputs.
type RealLEDs struct {
	chip  *gpiocdev.Chip
	lines map[LED]*gpiocdev.Line
}

// NewRealLEDs requests the LED lines as outputs, all initially off.
func NewRealLEDs(chipName string, pins Pins) (*RealLEDs, error) {
	chip, err := gpiocdev.NewChip(chipName, gpiocdev.WithConsumer(consumer))
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	l := &RealLEDs{chip: chip, lines: make(map[LED]*gpiocdev.Line)}
	for _, led := range []LED{LEDAcknowledge, LEDPresence, LEDConfirm} {
		pin, _ := pins.led(led)
		line, err := chip.RequestLine(pin, gpiocdev.AsOutput(0))
		if err != nil {
			l.Close()
			return nil, fmt.Errorf("request %s led pin %d: %w", led, pin, err)
		}
		l.lines[led] = line
	}
	return l, nil
}

// Set drives the LED line high (on) or low (off).
func (l *RealLEDs) Set(led LED, on bool) error {
	line, ok := l.lines[led]
	if !ok {
		return fmt.Errorf("unknown led %d", led)
	}
	v := 0
	if on {
		v = 1
	}
	if err := line.SetValue(v); err != nil {
		return fmt.Errorf("set %s led: %w", led, err)
	}
	return nil
}

// Close releases GPIO resources.
// Lines are switched back to inputs before closing so the LEDs do not stay
// lit after the process exits.
func (l *RealLEDs) Close() error {
	var errs []error

	for led, line := range l.lines {
		if err := line.Reconfigure(gpiocdev.AsInput); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure %s led: %w", led, err))
		}
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s led: %w", led, err))
		}
	}
	l.lines = nil
	if l.chip != nil {
		if err := l.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
		l.chip = nil
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
