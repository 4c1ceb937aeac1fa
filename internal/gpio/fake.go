package gpio

import (
	"errors"
	"fmt"
)

// FakeReader is a test double that returns scripted button values.
type FakeReader struct {
	// Samples contains scripted (aPressed, bPressed) values to return.
	// Each call to Read() consumes the next sample.
	Samples []Sample

	// index tracks current position in Samples
	index int

	// Reads counts calls to Read
	Reads int

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by Read()
	ReadError error
}

// Sample represents a single button reading (already in logical form).
type Sample struct {
	A bool // true = pressed
	B bool // true = pressed
}

// NewFakeReader creates a FakeReader with the given samples.
func NewFakeReader(samples []Sample) *FakeReader {
	return &FakeReader{Samples: samples}
}

// Read returns the next scripted sample.
// If samples are exhausted, returns the last sample repeatedly.
func (f *FakeReader) Read() (bool, bool, error) {
	f.Reads++
	if f.ReadError != nil {
		return false, false, f.ReadError
	}

	if len(f.Samples) == 0 {
		return false, false, errors.New("no samples configured")
	}

	sample := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}

	return sample.A, sample.B, nil
}

// Remaining returns the number of samples not yet consumed.
func (f *FakeReader) Remaining() int {
	if len(f.Samples) == 0 {
		return 0
	}
	return len(f.Samples) - 1 - f.index
}

// Close marks the reader as closed.
func (f *FakeReader) Close() error {
	f.Closed = true
	return nil
}

// Reset resets the reader to the beginning of samples.
func (f *FakeReader) Reset() {
	f.index = 0
	f.Reads = 0
	f.Closed = false
}

// LEDChange records a single Set call.
type LEDChange struct {
	LED LED
	On  bool
}

// FakeLEDs records LED writes for test assertions.
type FakeLEDs struct {
	// States holds the last value written per LED.
	States map[LED]bool

	// History contains every write in order.
	History []LEDChange

	// SetError, if set, will be returned by Set.
	SetError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeLEDs creates a FakeLEDs with every LED off.
func NewFakeLEDs() *FakeLEDs {
	return &FakeLEDs{States: make(map[LED]bool)}
}

// Set records the write.
func (f *FakeLEDs) Set(led LED, on bool) error {
	if f.SetError != nil {
		return f.SetError
	}
	if led < LEDAcknowledge || led > LEDConfirm {
		return fmt.Errorf("unknown led %d", led)
	}
	f.States[led] = on
	f.History = append(f.History, LEDChange{LED: led, On: on})
	return nil
}

// On reports the last value written to the LED.
func (f *FakeLEDs) On(led LED) bool {
	return f.States[led]
}

// Close marks the LEDs as closed.
func (f *FakeLEDs) Close() error {
	f.Closed = true
	return nil
}

// Reset clears recorded writes.
func (f *FakeLEDs) Reset() {
	f.States = make(map[LED]bool)
	f.History = nil
	f.SetError = nil
	f.Closed = false
}
