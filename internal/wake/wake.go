// Package wake detects joystick deflection used as the kiosk's wake gesture.
package wake

import "fmt"

// Sampler reads both joystick axes on a 0-4095 scale.
type Sampler interface {
	Sample() (x, y uint16, err error)
}

// Dead-zone around the stick's rest position on the 12-bit scale.
const (
	DeadZoneLow  = 2000
	DeadZoneHigh = 4000
)

// Detector reports whether the stick has left its dead-zone.
type Detector struct {
	sampler Sampler
}

// NewDetector creates a Detector reading from s.
func NewDetector(s Sampler) *Detector {
	return &Detector{sampler: s}
}

// IsDeflected samples both axes and reports whether either lies strictly
// outside [DeadZoneLow, DeadZoneHigh].
func (d *Detector) IsDeflected() (bool, error) {
	x, y, err := d.sampler.Sample()
	if err != nil {
		return false, fmt.Errorf("sample joystick: %w", err)
	}
	return outside(x) || outside(y), nil
}

func outside(v uint16) bool {
	return v < DeadZoneLow || v > DeadZoneHigh
}

// To12Bit rescales a raw reading of the given resolution to 0-4095.
func To12Bit(v uint16, bits uint) uint16 {
	switch {
	case bits > 12:
		return v >> (bits - 12)
	case bits < 12:
		return v << (12 - bits)
	}
	return v
}
