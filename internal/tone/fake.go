package tone

// FakeChannel records PWM configuration for test assertions.
type FakeChannel struct {
	Wrap    uint16
	Level   uint16
	Enabled bool

	// Writes counts every call that reached the fake.
	Writes int

	// Toggles counts changes of the enabled state.
	Toggles int

	// Err, if set, is returned by every call.
	Err error
}

// NewFakeChannel creates a disabled FakeChannel.
func NewFakeChannel() *FakeChannel {
	return &FakeChannel{}
}

// SetWrap records the wrap value.
func (f *FakeChannel) SetWrap(wrap uint16) error {
	if f.Err != nil {
		return f.Err
	}
	f.Writes++
	f.Wrap = wrap
	return nil
}

// SetLevel records the level.
func (f *FakeChannel) SetLevel(level uint16) error {
	if f.Err != nil {
		return f.Err
	}
	f.Writes++
	f.Level = level
	return nil
}

// SetEnabled records the enabled state.
func (f *FakeChannel) SetEnabled(on bool) error {
	if f.Err != nil {
		return f.Err
	}
	f.Writes++
	if f.Enabled != on {
		f.Toggles++
	}
	f.Enabled = on
	return nil
}
