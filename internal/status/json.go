package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string       `json:"event,omitempty"`
	Reason        string       `json:"reason,omitempty"`
	State         string       `json:"state"`
	Ready         bool         `json:"ready"`
	Playing       bool         `json:"playing"`
	Message       string       `json:"message"`
	LEDs          LEDsJSON     `json:"leds"`
	UptimeSeconds int64        `json:"uptime_seconds"`
	StartTime     string       `json:"start_time"`
	Timestamp     string       `json:"timestamp"`
	Counts        CountsJSON   `json:"counts"`
	Config        ConfigJSON   `json:"config"`
	Recent        []RecordJSON `json:"recent,omitempty"`
	Dropped       int          `json:"recent_dropped,omitempty"`
}

// LEDsJSON is the JSON representation of LED levels.
type LEDsJSON struct {
	Acknowledge bool `json:"acknowledge"`
	Presence    bool `json:"presence"`
	Confirm     bool `json:"confirm"`
}

// CountsJSON is the JSON representation of kiosk counters.
type CountsJSON struct {
	Presences int `json:"presences"`
	Resets    int `json:"resets"`
	Bounces   int `json:"bounces"`
	Wakes     int `json:"wakes"`
}

// ConfigJSON is the JSON representation of kiosk config.
type ConfigJSON struct {
	DebounceCycles uint   `json:"debounce_cycles"`
	PollMs         int64  `json:"poll_ms"`
	Resolution     string `json:"resolution"`
}

// RecordJSON is the JSON representation of a history record.
type RecordJSON struct {
	Time  string `json:"time"`
	Event string `json:"event"`
	State string `json:"state"`
}

func buildInner(snap Snapshot) StatusInner {
	return StatusInner{
		State:         snap.State.String(),
		Ready:         snap.Started,
		Playing:       snap.Playing,
		Message:       snap.Message.String(),
		LEDs:          LEDsJSON(snap.LEDs),
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		Counts: CountsJSON{
			Presences: snap.Counts.Presences,
			Resets:    snap.Counts.Resets,
			Bounces:   snap.Counts.Bounces,
			Wakes:     snap.Wakes,
		},
		Config: ConfigJSON{
			DebounceCycles: snap.Config.DebounceCycles,
			PollMs:         snap.Config.PollMs,
			Resolution:     snap.Config.Resolution.String(),
		},
	}
}

func buildRecent(snap Snapshot, inner *StatusInner) {
	inner.Dropped = snap.Dropped
	for _, r := range snap.Recent {
		inner.Recent = append(inner.Recent, RecordJSON{
			Time:  r.Time.UTC().Format(time.RFC3339),
			Event: r.Event,
			State: r.State,
		})
	}
}

// FormatJSON returns the indented JSON status, with the recent history,
// used by -print-state.
func FormatJSON(snap Snapshot) []byte {
	inner := buildInner(snap)
	buildRecent(snap, &inner)

	data, _ := json.MarshalIndent(StatusJSON{Status: inner}, "", "  ")
	return data
}

// FormatStatusEvent returns single-line JSON status for a log record.
// The recent history is left out.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
