//go:build tinygo && rp2040

package tone

import (
	"errors"
	"machine"
)

// pwmCtrl is the subset of a machine PWM group we use. Local interface to
// avoid depending on an unexported concrete type in machine.
type pwmCtrl interface {
	Configure(cfg machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
}

func pwmGroupBySlice(slice uint8) pwmCtrl {
	switch slice {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	default:
		return machine.PWM7
	}
}

// BoardChannel drives a buzzer pin through the RP2040 PWM slice it belongs to.
// machine picks its own divider for a period, so wrap and level are applied
// as a period in nanoseconds and a duty scaled to the group's real top.
type BoardChannel struct {
	ctrl    pwmCtrl
	ch      uint8
	wrap    uint16
	level   uint16
	enabled bool
}

// NewBoardChannel claims pin for PWM output, initially silent.
func NewBoardChannel(pin int) (*BoardChannel, error) {
	p := machine.Pin(pin)
	slice, err := machine.PWMPeripheral(p)
	if err != nil {
		return nil, err
	}
	ctrl := pwmGroupBySlice(slice)
	if err := ctrl.Configure(machine.PWMConfig{Period: 2000 * TickNanos}); err != nil {
		return nil, err
	}
	ch, err := ctrl.Channel(p)
	if err != nil {
		return nil, err
	}
	p.Configure(machine.PinConfig{Mode: machine.PinPWM})
	c := &BoardChannel{ctrl: ctrl, ch: ch, wrap: 2000}
	ctrl.Set(ch, 0)
	return c, nil
}

// SetWrap reconfigures the slice period to (wrap+1) ticks of the divided clock.
func (c *BoardChannel) SetWrap(wrap uint16) error {
	if wrap == 0 {
		return errors.New("zero wrap")
	}
	if err := c.ctrl.Configure(machine.PWMConfig{Period: (uint64(wrap) + 1) * TickNanos}); err != nil {
		return err
	}
	c.wrap = wrap
	c.apply()
	return nil
}

// SetLevel sets the duty in ticks of the divided clock.
func (c *BoardChannel) SetLevel(level uint16) error {
	c.level = level
	c.apply()
	return nil
}

// SetEnabled models enable as "drive current level" vs "drive 0".
func (c *BoardChannel) SetEnabled(on bool) error {
	c.enabled = on
	c.apply()
	return nil
}

func (c *BoardChannel) apply() {
	if !c.enabled || c.wrap == 0 {
		c.ctrl.Set(c.ch, 0)
		return
	}
	level := c.level
	if level > c.wrap {
		level = c.wrap
	}
	// Scale from [0..wrap] to hardware [0..Top].
	c.ctrl.Set(c.ch, uint32(level)*c.ctrl.Top()/uint32(c.wrap))
}
