package wake

// Position is a single joystick reading.
type Position struct {
	X uint16
	Y uint16
}

// Center is the stick at rest.
var Center = Position{X: 3000, Y: 3000}

// FakeSampler is a test double that returns scripted positions.
// Each call to Sample consumes the next position; the last one repeats.
type FakeSampler struct {
	Positions []Position
	index     int

	// Samples counts calls to Sample.
	Samples int

	// Err, if set, is returned by Sample.
	Err error
}

// NewFakeSampler creates a FakeSampler. With no positions it reports Center.
func NewFakeSampler(positions ...Position) *FakeSampler {
	return &FakeSampler{Positions: positions}
}

// Sample returns the next scripted position.
func (f *FakeSampler) Sample() (uint16, uint16, error) {
	f.Samples++
	if f.Err != nil {
		return 0, 0, f.Err
	}
	if len(f.Positions) == 0 {
		return Center.X, Center.Y, nil
	}
	p := f.Positions[f.index]
	if f.index < len(f.Positions)-1 {
		f.index++
	}
	return p.X, p.Y, nil
}
