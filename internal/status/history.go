package status

import "time"

// DefaultHistory is the number of recent kiosk events a Tracker keeps.
const DefaultHistory = 16

// Record is one kiosk event kept in the recent history.
type Record struct {
	Time  time.Time
	Event string
	State string
}

// history is a fixed-capacity FIFO of recent records; the oldest is
// overwritten when full. Not safe for concurrent use, the Tracker locks.
type history struct {
	buf      []Record
	capacity int
	head     int // next write position
	count    int
	dropped  int
}

func newHistory(capacity int) *history {
	if capacity < 1 {
		capacity = 1
	}
	return &history{
		buf:      make([]Record, capacity),
		capacity: capacity,
	}
}

func (h *history) push(r Record) {
	h.buf[h.head] = r
	h.head = (h.head + 1) % h.capacity
	if h.count == h.capacity {
		// Overwrote the oldest: head was pointing at it.
		h.dropped++
		return
	}
	h.count++
}

// items returns the records oldest first without consuming them.
func (h *history) items() []Record {
	if h.count == 0 {
		return nil
	}

	result := make([]Record, h.count)
	start := (h.head - h.count + h.capacity) % h.capacity
	for i := 0; i < h.count; i++ {
		result[i] = h.buf[(start+i)%h.capacity]
	}
	return result
}
