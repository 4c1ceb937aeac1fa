//go:build !tinygo

package wake

import (
	"fmt"

	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ads1x15"
)

// VoltagePin is the part of a periph analog pin the sampler needs.
type VoltagePin interface {
	Read() (analog.Sample, error)
}

// ADCSampler reads the joystick axes as voltages and scales them against
// the stick supply to 0-4095.
type ADCSampler struct {
	x    VoltagePin
	y    VoltagePin
	vref physic.ElectricPotential
}

// NewADCSampler samples x and y. vref is the stick's supply voltage.
func NewADCSampler(x, y VoltagePin, vref physic.ElectricPotential) (*ADCSampler, error) {
	if vref <= 0 {
		return nil, fmt.Errorf("reference voltage must be positive, got %s", vref)
	}
	return &ADCSampler{x: x, y: y, vref: vref}, nil
}

// Sample reads both axes.
func (s *ADCSampler) Sample() (uint16, uint16, error) {
	x, err := s.x.Read()
	if err != nil {
		return 0, 0, fmt.Errorf("read x axis: %w", err)
	}
	y, err := s.y.Read()
	if err != nil {
		return 0, 0, fmt.Errorf("read y axis: %w", err)
	}
	return s.scale(x.V), s.scale(y.V), nil
}

func (s *ADCSampler) scale(v physic.ElectricPotential) uint16 {
	switch {
	case v <= 0:
		return 0
	case v >= s.vref:
		return 4095
	}
	return uint16(int64(v) * 4095 / int64(s.vref))
}

// ADS1x15 chip variants.
const (
	ADS1015 = "ads1015"
	ADS1115 = "ads1115"
)

// DefaultADCAddress is the ADS1x15 address with ADDR tied to ground.
const DefaultADCAddress = 0x48

var singleEnded = []ads1x15.Channel{
	ads1x15.Channel0,
	ads1x15.Channel1,
	ads1x15.Channel2,
	ads1x15.Channel3,
}

// OpenADS1x15 opens an ADS1015 or ADS1115 on bus and samples the single-ended
// inputs xCh and yCh (0-3). The returned halt stops both conversions.
func OpenADS1x15(bus i2c.Bus, chip string, addr uint16, xCh, yCh int, vref physic.ElectricPotential) (*ADCSampler, func() error, error) {
	for _, ch := range []int{xCh, yCh} {
		if ch < 0 || ch >= len(singleEnded) {
			return nil, nil, fmt.Errorf("adc channel %d out of range 0-3", ch)
		}
	}

	opts := ads1x15.DefaultOpts
	opts.I2cAddress = addr

	var (
		dev *ads1x15.Dev
		err error
	)
	switch chip {
	case ADS1015:
		dev, err = ads1x15.NewADS1015(bus, &opts)
	case ADS1115:
		dev, err = ads1x15.NewADS1115(bus, &opts)
	default:
		return nil, nil, fmt.Errorf("unknown adc %q", chip)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", chip, err)
	}

	x, err := dev.PinForChannel(singleEnded[xCh], vref, 128*physic.Hertz, ads1x15.SaveEnergy)
	if err != nil {
		return nil, nil, fmt.Errorf("x axis: %w", err)
	}
	y, err := dev.PinForChannel(singleEnded[yCh], vref, 128*physic.Hertz, ads1x15.SaveEnergy)
	if err != nil {
		x.Halt()
		return nil, nil, fmt.Errorf("y axis: %w", err)
	}

	s, err := NewADCSampler(x, y, vref)
	if err != nil {
		x.Halt()
		y.Halt()
		return nil, nil, err
	}
	halt := func() error {
		var errs []error
		for _, p := range []ads1x15.PinADC{x, y} {
			if err := p.Halt(); err != nil {
				errs = append(errs, err)
			}
		}
		if len(errs) > 0 {
			return fmt.Errorf("halt errors: %v", errs)
		}
		return nil
	}
	return s, halt, nil
}
