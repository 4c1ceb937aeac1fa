// Package melody sequences notes through a tone generator.
// Playback blocks the caller for the whole melody; nothing else runs meanwhile.
package melody

import (
	"errors"
	"fmt"
	"time"

	"github.com/sweeney/attendance-kiosk/internal/tone"
)

// Note is one pitch held for a duration.
type Note struct {
	Pitch    uint16 // PWM wrap value
	Duration time.Duration
}

// Melody is an immutable note sequence with its repeat settings.
type Melody struct {
	Notes  []Note
	Repeat int
	// Pause follows every full pass, including the last.
	Pause time.Duration
}

// Duration returns how long Play blocks for m.
func (m Melody) Duration() time.Duration {
	var pass time.Duration
	for _, n := range m.Notes {
		pass += n.Duration
	}
	return time.Duration(m.Repeat) * (pass + m.Pause)
}

// Note pitches as wrap values for the board's divided PWM clock.
var (
	NoteC4 = tone.WrapForFrequency(261.63)
	NoteD4 = tone.WrapForFrequency(293.66)
	NoteE4 = tone.WrapForFrequency(329.63)
	NoteF4 = tone.WrapForFrequency(349.23)
	NoteG4 = tone.WrapForFrequency(392.00)
	NoteA4 = tone.WrapForFrequency(440.00)
	NoteB4 = tone.WrapForFrequency(493.88)
	NoteC5 = tone.WrapForFrequency(523.25)
)

// DefaultPause separates repetitions of the alert.
const DefaultPause = 500 * time.Millisecond

// Alert is the three-note call played at startup and after every reset.
var Alert = Melody{
	Notes: []Note{
		{Pitch: NoteC4, Duration: 500 * time.Millisecond},
		{Pitch: NoteE4, Duration: 500 * time.Millisecond},
		{Pitch: NoteG4, Duration: 500 * time.Millisecond},
	},
	Repeat: 3,
	Pause:  DefaultPause,
}

// Player plays melodies using an injected delay.
type Player struct {
	delay func(time.Duration)
	pause time.Duration
}

// NewPlayer creates a Player. delay is called for every wait; pass time.Sleep
// in production. pause is the inter-repeat pause used by PlaySequence.
func NewPlayer(delay func(time.Duration), pause time.Duration) *Player {
	if delay == nil {
		delay = time.Sleep
	}
	return &Player{delay: delay, pause: pause}
}

// PlaySequence plays notes[i] for durations[i], repeat times, pausing after
// each pass, then silences the generator.
func (p *Player) PlaySequence(g *tone.Generator, notes []uint16, durations []time.Duration, repeat int) error {
	if len(notes) != len(durations) {
		return fmt.Errorf("melody: %d notes but %d durations", len(notes), len(durations))
	}

	seq := make([]Note, len(notes))
	for i := range notes {
		seq[i] = Note{Pitch: notes[i], Duration: durations[i]}
	}
	return p.Play(g, Melody{Notes: seq, Repeat: repeat, Pause: p.pause})
}

// Play plays m on g and always ends with the generator silenced.
// A failed note is skipped but its duration still elapses so timing holds.
func (p *Player) Play(g *tone.Generator, m Melody) error {
	var errs []error

	for r := 0; r < m.Repeat; r++ {
		for _, n := range m.Notes {
			if err := g.PlayNote(n.Pitch); err != nil {
				errs = append(errs, fmt.Errorf("note %d: %w", n.Pitch, err))
			}
			p.delay(n.Duration)
		}
		p.delay(m.Pause)
	}

	if err := g.PlayRest(); err != nil {
		errs = append(errs, fmt.Errorf("rest: %w", err))
	}
	return errors.Join(errs...)
}
