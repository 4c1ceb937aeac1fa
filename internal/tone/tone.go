// Package tone produces square-wave tones on a PWM channel.
package tone

import (
	"fmt"
	"math"
)

// Channel is a PWM output driving the buzzer.
type Channel interface {
	// SetWrap sets the counter top value; together with the clock divider it
	// sets the pitch.
	SetWrap(wrap uint16) error

	// SetLevel sets the compare level (duty) in counter ticks.
	SetLevel(level uint16) error

	// SetEnabled starts or stops the output.
	SetEnabled(on bool) error
}

// Clock constants of the board PWM block.
const (
	SystemClockHz = 125_000_000
	ClockDivider  = 16
)

// DefaultDutyDivisor gives a level of wrap/8, the buzzer's usual volume.
const DefaultDutyDivisor = 8

// Generator plays notes on a single channel.
type Generator struct {
	ch      Channel
	divisor uint16
}

// NewGenerator creates a Generator. A divisor of 0 selects DefaultDutyDivisor.
func NewGenerator(ch Channel, divisor uint16) *Generator {
	if divisor == 0 {
		divisor = DefaultDutyDivisor
	}
	return &Generator{ch: ch, divisor: divisor}
}

// PlayNote configures the pitch and duty and enables the output.
func (g *Generator) PlayNote(wrap uint16) error {
	if err := g.ch.SetWrap(wrap); err != nil {
		return fmt.Errorf("set wrap: %w", err)
	}
	if err := g.ch.SetLevel(wrap / g.divisor); err != nil {
		return fmt.Errorf("set level: %w", err)
	}
	if err := g.ch.SetEnabled(true); err != nil {
		return fmt.Errorf("enable: %w", err)
	}
	return nil
}

// PlayRest disables the output and leaves wrap and level untouched.
func (g *Generator) PlayRest() error {
	if err := g.ch.SetEnabled(false); err != nil {
		return fmt.Errorf("disable: %w", err)
	}
	return nil
}

// Divisor returns the duty divisor.
func (g *Generator) Divisor() uint16 {
	return g.divisor
}

// WrapForFrequency returns the wrap value producing hz with the board clock
// divided by ClockDivider. Frequencies too low to fit clamp to the maximum wrap.
func WrapForFrequency(hz float64) uint16 {
	if hz <= 0 {
		return 0
	}
	ticks := math.Round(float64(SystemClockHz) / ClockDivider / hz)
	if ticks > 65536 {
		return 65535
	}
	if ticks < 1 {
		return 0
	}
	return uint16(ticks - 1)
}

// TickNanos is the duration of one PWM counter tick in nanoseconds.
const TickNanos = 1_000_000_000 * ClockDivider / SystemClockHz
