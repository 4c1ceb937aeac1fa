// Package logic contains the pure button debounce and action state machine.
// This package has NO external dependencies (no GPIO, display, buzzer or time.Sleep).
// Side effects are requested through returned Events.
package logic

// ButtonState is the state of the debounce/action machine.
type ButtonState int

const (
	StateIdle ButtonState = iota
	StateDebouncingA
	StateReleaseWaitA
	StateDebouncingB
	StateReleaseWaitB
	StateActionA
	StateActionB
)

func (s ButtonState) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateDebouncingA:
		return "DEBOUNCING_A"
	case StateReleaseWaitA:
		return "RELEASE_WAIT_A"
	case StateDebouncingB:
		return "DEBOUNCING_B"
	case StateReleaseWaitB:
		return "RELEASE_WAIT_B"
	case StateActionA:
		return "ACTION_A"
	case StateActionB:
		return "ACTION_B"
	}
	return "UNKNOWN"
}

// EventType is a side effect requested by the machine.
type EventType string

const (
	// EventShowPresence asks for the "presence confirmed" message.
	EventShowPresence EventType = "SHOW_PRESENCE"
	// EventShowResetting asks for the "resetting" message.
	EventShowResetting EventType = "SHOW_RESETTING"
	// EventActionA is the confirmed press of button A.
	EventActionA EventType = "ACTION_A"
	// EventActionB is the confirmed press of button B.
	EventActionB EventType = "ACTION_B"
)

// Event is a side effect to apply, in emission order.
type Event struct {
	Type EventType
	// State is the machine state after the poll that emitted the event.
	State ButtonState
}

// Input is a single sample of logical button levels.
type Input struct {
	A bool // true = pressed (already inverted from the active-low line)
	B bool
}

// Resolution selects how a poll that sees both buttons pressed while Idle is resolved.
type Resolution int

const (
	// PreferA treats the two checks as mutually exclusive: A wins.
	PreferA Resolution = iota
	// LastEvaluatedWins evaluates A then B unconditionally: both messages are
	// requested and the machine ends in DebouncingB.
	LastEvaluatedWins
)

func (r Resolution) String() string {
	if r == LastEvaluatedWins {
		return "last-evaluated-wins"
	}
	return "prefer-a"
}

// Counts tracks accepted and rejected presses since startup.
type Counts struct {
	Presences int // ActionA
	Resets    int // ActionB
	Bounces   int // presses released before the threshold
}
