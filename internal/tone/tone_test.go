package tone

import (
	"errors"
	"testing"
)

func TestPlayNote(t *testing.T) {
	ch := NewFakeChannel()
	g := NewGenerator(ch, 0)

	if g.Divisor() != DefaultDutyDivisor {
		t.Errorf("expected default divisor %d, got %d", DefaultDutyDivisor, g.Divisor())
	}

	if err := g.PlayNote(8000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ch.Wrap != 8000 {
		t.Errorf("expected wrap 8000, got %d", ch.Wrap)
	}
	if ch.Level != 1000 {
		t.Errorf("expected level 1000, got %d", ch.Level)
	}
	if !ch.Enabled {
		t.Error("expected output enabled")
	}
}

func TestPlayNoteCustomDivisor(t *testing.T) {
	ch := NewFakeChannel()
	g := NewGenerator(ch, 2)

	if err := g.PlayNote(3000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ch.Level != 1500 {
		t.Errorf("expected level 1500, got %d", ch.Level)
	}
}

func TestPlayRestLeavesConfiguration(t *testing.T) {
	ch := NewFakeChannel()
	g := NewGenerator(ch, 8)

	g.PlayNote(4000)
	if err := g.PlayRest(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ch.Enabled {
		t.Error("expected output disabled")
	}
	if ch.Wrap != 4000 || ch.Level != 500 {
		t.Errorf("rest changed configuration: wrap=%d level=%d", ch.Wrap, ch.Level)
	}
}

func TestPlayRestIdempotent(t *testing.T) {
	ch := NewFakeChannel()
	g := NewGenerator(ch, 8)

	g.PlayNote(4000)
	g.PlayRest()
	before := *ch

	if err := g.PlayRest(); err != nil {
		t.Fatalf("second rest: unexpected error: %v", err)
	}
	if ch.Enabled != before.Enabled || ch.Wrap != before.Wrap || ch.Level != before.Level {
		t.Errorf("second rest changed state: before %+v, after %+v", before, *ch)
	}
	if ch.Toggles != before.Toggles {
		t.Errorf("second rest toggled output: %d -> %d", before.Toggles, ch.Toggles)
	}
}

func TestPlayNoteError(t *testing.T) {
	ch := NewFakeChannel()
	ch.Err = errors.New("bus fault")
	g := NewGenerator(ch, 8)

	err := g.PlayNote(1000)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ch.Err) {
		t.Errorf("expected wrapped bus fault, got %v", err)
	}
	if err := g.PlayRest(); !errors.Is(err, ch.Err) {
		t.Errorf("expected wrapped bus fault from rest, got %v", err)
	}
}

func TestWrapForFrequency(t *testing.T) {
	cases := []struct {
		hz   float64
		want uint16
	}{
		{261.63, 29860}, // C4
		{329.63, 23700}, // E4
		{392.00, 19929}, // G4
		{7812.5, 999},
		{0, 0},
		{-5, 0},
		{1, 65535},
		{10_000_000, 0},
	}
	for _, c := range cases {
		if got := WrapForFrequency(c.hz); got != c.want {
			t.Errorf("WrapForFrequency(%v): got %d, want %d", c.hz, got, c.want)
		}
	}
}

func TestTickNanos(t *testing.T) {
	if TickNanos != 128 {
		t.Errorf("expected 128ns per tick, got %d", TickNanos)
	}
}
