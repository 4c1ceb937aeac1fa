//go:build !tinygo

package tone

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// PWMPin is the part of a periph gpio.PinOut the buzzer needs.
type PWMPin interface {
	PWM(duty gpio.Duty, f physic.Frequency) error
	Out(l gpio.Level) error
}

// PinChannel drives the buzzer from a periph PWM-capable pin. Wrap and level
// are converted to a frequency and duty for the board's clock-divided
// counter, so pitches match the firmware build.
type PinChannel struct {
	pin     PWMPin
	wrap    uint16
	level   uint16
	enabled bool
}

// NewPinChannel drives pin low and returns the channel disabled.
func NewPinChannel(pin PWMPin) (*PinChannel, error) {
	c := &PinChannel{pin: pin}
	if err := c.SetEnabled(false); err != nil {
		return nil, err
	}
	return c, nil
}

// SetWrap sets the PWM period to (wrap+1) counter ticks.
func (c *PinChannel) SetWrap(wrap uint16) error {
	c.wrap = wrap
	if c.level > wrap {
		c.level = wrap
	}
	return c.apply()
}

// SetLevel sets the duty to level counter ticks.
func (c *PinChannel) SetLevel(level uint16) error {
	if level > c.wrap {
		level = c.wrap
	}
	c.level = level
	return c.apply()
}

// SetEnabled starts or stops the output. A stopped pin is held low.
func (c *PinChannel) SetEnabled(on bool) error {
	c.enabled = on
	if !on {
		if err := c.pin.Out(gpio.Low); err != nil {
			return fmt.Errorf("pin low: %w", err)
		}
		return nil
	}
	return c.apply()
}

// Frequency returns the output frequency for the current wrap.
func (c *PinChannel) Frequency() physic.Frequency {
	return physic.Frequency(SystemClockHz/ClockDivider) * physic.Hertz / physic.Frequency(int64(c.wrap)+1)
}

// Duty returns the duty cycle for the current wrap and level.
func (c *PinChannel) Duty() gpio.Duty {
	return gpio.Duty(int64(gpio.DutyMax) * int64(c.level) / (int64(c.wrap) + 1))
}

// Close stops the output.
func (c *PinChannel) Close() error {
	return c.SetEnabled(false)
}

func (c *PinChannel) apply() error {
	if !c.enabled {
		return nil
	}
	if err := c.pin.PWM(c.Duty(), c.Frequency()); err != nil {
		return fmt.Errorf("pwm: %w", err)
	}
	return nil
}
