//go:build tinygo && rp2040

package wake

import "machine"

// BoardSampler reads the joystick from two RP2040 ADC pins.
type BoardSampler struct {
	x machine.ADC
	y machine.ADC
}

// NewBoardSampler initialises the ADC and both axis pins (GP26, GP27 on the board).
func NewBoardSampler(xPin, yPin machine.Pin) *BoardSampler {
	machine.InitADC()
	s := &BoardSampler{x: machine.ADC{Pin: xPin}, y: machine.ADC{Pin: yPin}}
	s.x.Configure(machine.ADCConfig{})
	s.y.Configure(machine.ADCConfig{})
	return s
}

// Sample reads both axes. machine scales readings to 16 bits.
func (s *BoardSampler) Sample() (uint16, uint16, error) {
	return To12Bit(s.x.Get(), 16), To12Bit(s.y.Get(), 16), nil
}
