//go:build !tinygo

package wake

import (
	"errors"
	"testing"

	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/physic"
)

// voltages is a VoltagePin returning scripted voltages; the last repeats.
type voltages struct {
	v     []physic.ElectricPotential
	reads int
	err   error
}

func (p *voltages) Read() (analog.Sample, error) {
	if p.err != nil {
		return analog.Sample{}, p.err
	}
	i := p.reads
	if i >= len(p.v) {
		i = len(p.v) - 1
	}
	p.reads++
	return analog.Sample{V: p.v[i]}, nil
}

func volts(v ...physic.ElectricPotential) *voltages {
	return &voltages{v: v}
}

func TestADCSamplerScales(t *testing.T) {
	vref := 3300 * physic.MilliVolt
	cases := []struct {
		name string
		v    physic.ElectricPotential
		want uint16
	}{
		{"ground", 0, 0},
		{"negative", -100 * physic.MilliVolt, 0},
		{"mid", 1650 * physic.MilliVolt, 2047},
		{"rest", 2420 * physic.MilliVolt, 3003},
		{"low", 300 * physic.MilliVolt, 372},
		{"supply", vref, 4095},
		{"over", 5 * physic.Volt, 4095},
	}

	for _, c := range cases {
		s, err := NewADCSampler(volts(c.v), volts(vref), vref)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", c.name, err)
		}
		x, y, err := s.Sample()
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", c.name, err)
		}
		if x != c.want {
			t.Errorf("%s: x = %d, want %d", c.name, x, c.want)
		}
		if y != 4095 {
			t.Errorf("%s: y = %d, want 4095", c.name, y)
		}
	}
}

func TestADCSamplerDrivesDetector(t *testing.T) {
	vref := 3300 * physic.MilliVolt
	x := volts(2420*physic.MilliVolt, 300*physic.MilliVolt, 2420*physic.MilliVolt)
	y := volts(2420 * physic.MilliVolt)
	s, err := NewADCSampler(x, y, vref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d := NewDetector(s)

	want := []bool{false, true, false}
	for i, w := range want {
		got, err := d.IsDeflected()
		if err != nil {
			t.Fatalf("call %d: unexpected error: %v", i, err)
		}
		if got != w {
			t.Errorf("call %d: got %v, want %v", i, got, w)
		}
	}
	if x.reads != 3 || y.reads != 3 {
		t.Errorf("expected 3 reads per axis, got x=%d y=%d", x.reads, y.reads)
	}
}

func TestADCSamplerErrors(t *testing.T) {
	vref := 3300 * physic.MilliVolt

	if _, err := NewADCSampler(volts(0), volts(0), 0); err == nil {
		t.Error("expected error for zero reference")
	}

	bad := &voltages{err: errors.New("i2c nack")}
	s, _ := NewADCSampler(bad, volts(vref), vref)
	if _, _, err := s.Sample(); !errors.Is(err, bad.err) {
		t.Errorf("expected wrapped x error, got %v", err)
	}

	s, _ = NewADCSampler(volts(vref), bad, vref)
	if _, _, err := s.Sample(); !errors.Is(err, bad.err) {
		t.Errorf("expected wrapped y error, got %v", err)
	}
}

func TestOpenADS1x15RejectsBadArguments(t *testing.T) {
	vref := 3300 * physic.MilliVolt

	if _, _, err := OpenADS1x15(nil, ADS1115, DefaultADCAddress, 0, 4, vref); err == nil {
		t.Error("expected error for channel 4")
	}
	if _, _, err := OpenADS1x15(nil, "ads9999", DefaultADCAddress, 0, 1, vref); err == nil {
		t.Error("expected error for unknown chip")
	}
}
