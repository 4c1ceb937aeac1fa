package logic

// DefaultDebounceCycles is the number of consecutive held polls required
// before a press is accepted.
const DefaultDebounceCycles = 50

// Machine tracks button state and turns samples into debounced actions.
type Machine struct {
	threshold  uint
	resolution Resolution
	state      ButtonState
	counter    uint
	counts     Counts
}

// NewMachine creates an Idle machine. A press is accepted once the button has
// been seen held for more than threshold polls after the initial Idle poll.
func NewMachine(threshold uint, resolution Resolution) *Machine {
	return &Machine{
		threshold:  threshold,
		resolution: resolution,
		state:      StateIdle,
	}
}

// Process takes one sample and returns the side effects to apply, in order.
// It must be called once per loop iteration.
func (m *Machine) Process(input Input) []Event {
	var events []Event

	switch m.state {
	case StateIdle:
		events = m.processIdle(input)
		m.counter = 0

	case StateDebouncingA:
		m.processDebouncing(input.A, StateReleaseWaitA)

	case StateDebouncingB:
		m.processDebouncing(input.B, StateReleaseWaitB)

	case StateReleaseWaitA:
		if !input.A {
			m.state = StateActionA
		}

	case StateReleaseWaitB:
		if !input.B {
			m.state = StateActionB
		}

	case StateActionA:
		m.state = StateIdle
		m.counts.Presences++
		events = append(events, Event{Type: EventActionA, State: m.state})

	case StateActionB:
		m.state = StateIdle
		m.counts.Resets++
		events = append(events, Event{Type: EventActionB, State: m.state})

	default:
		m.state = StateIdle
		m.counter = 0
	}

	return events
}

func (m *Machine) processIdle(input Input) []Event {
	var events []Event

	if input.A {
		m.state = StateDebouncingA
		events = append(events, Event{Type: EventShowPresence, State: m.state})
		if m.resolution == PreferA {
			return events
		}
	}

	if input.B {
		m.state = StateDebouncingB
		events = append(events, Event{Type: EventShowResetting, State: m.state})
	}

	// Events report the state the poll ended in.
	for i := range events {
		events[i].State = m.state
	}
	return events
}

// processDebouncing advances a Debouncing state for the button at level held.
func (m *Machine) processDebouncing(held bool, next ButtonState) {
	if !held {
		m.state = StateIdle
		m.counter = 0
		m.counts.Bounces++
		return
	}

	m.counter++
	if m.counter > m.threshold {
		m.counter = 0
		m.state = next
	}
}

// State returns the current button state.
func (m *Machine) State() ButtonState {
	return m.state
}

// Counter returns the current debounce counter.
func (m *Machine) Counter() uint {
	return m.counter
}

// Threshold returns the debounce threshold in polls.
func (m *Machine) Threshold() uint {
	return m.threshold
}

// Resolution returns the simultaneous-press policy.
func (m *Machine) Resolution() Resolution {
	return m.resolution
}

// CountsSnapshot returns a copy of the press counters.
func (m *Machine) CountsSnapshot() Counts {
	return m.counts
}
