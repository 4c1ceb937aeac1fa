// Package status provides a thread-safe status tracker for the kiosk.
// It is written by the orchestrator and read by the host binary's heartbeat.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/attendance-kiosk/internal/display"
	"github.com/sweeney/attendance-kiosk/internal/gpio"
	"github.com/sweeney/attendance-kiosk/internal/logic"
)

// Config contains kiosk configuration for display.
type Config struct {
	DebounceCycles uint
	PollMs         int64
	Resolution     logic.Resolution
}

// LEDState holds the last level written to each LED.
type LEDState struct {
	Acknowledge bool
	Presence    bool
	Confirm     bool
}

// Snapshot is a point-in-time view of kiosk state.
// It is a value type and safe to use after the lock is released.
type Snapshot struct {
	State     logic.ButtonState
	Playing   bool
	Message   display.Message
	LEDs      LEDState
	Counts    logic.Counts
	Wakes     int
	Started   bool
	Recent    []Record // oldest first
	Dropped   int      // records pushed out of Recent
	StartTime time.Time
	Now       time.Time
	Config    Config
}

// Uptime returns the duration since the kiosk started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable kiosk state behind an RWMutex.
type Tracker struct {
	mu     sync.RWMutex
	snap   Snapshot
	recent *history
	now    func() time.Time
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
		recent: newHistory(DefaultHistory),
		now:    time.Now,
	}
}

// SetClock replaces the clock used for record times and Snapshot.Now.
func (t *Tracker) SetClock(now func() time.Time) {
	t.mu.Lock()
	t.now = now
	t.mu.Unlock()
}

// Update sets the machine state and counters. Called after every poll.
func (t *Tracker) Update(state logic.ButtonState, counts logic.Counts) {
	t.mu.Lock()
	t.snap.State = state
	t.snap.Counts = counts
	t.mu.Unlock()
}

// SetPlaying records whether the alert melody is considered active.
func (t *Tracker) SetPlaying(playing bool) {
	t.mu.Lock()
	t.snap.Playing = playing
	t.mu.Unlock()
}

// SetMessage records the message currently on screen.
func (t *Tracker) SetMessage(m display.Message) {
	t.mu.Lock()
	t.snap.Message = m
	t.mu.Unlock()
}

// SetLED records an LED level.
func (t *Tracker) SetLED(led gpio.LED, on bool) {
	t.mu.Lock()
	switch led {
	case gpio.LEDAcknowledge:
		t.snap.LEDs.Acknowledge = on
	case gpio.LEDPresence:
		t.snap.LEDs.Presence = on
	case gpio.LEDConfirm:
		t.snap.LEDs.Confirm = on
	}
	t.mu.Unlock()
}

// AddWake counts one joystick wake.
func (t *Tracker) AddWake() {
	t.mu.Lock()
	t.snap.Wakes++
	t.mu.Unlock()
}

// Record appends an event to the recent history.
func (t *Tracker) Record(event string, state logic.ButtonState) {
	t.mu.Lock()
	t.recent.push(Record{Time: t.now(), Event: event, State: state.String()})
	t.mu.Unlock()
}

// SetStarted marks the startup sequence as complete.
func (t *Tracker) SetStarted() {
	t.mu.Lock()
	t.snap.Started = true
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the kiosk state.
// The Now field is read from the tracker clock at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	s.Recent = t.recent.items()
	s.Dropped = t.recent.dropped
	now := t.now
	t.mu.RUnlock()
	s.Now = now()
	return s
}
