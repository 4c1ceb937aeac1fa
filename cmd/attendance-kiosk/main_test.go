//go:build !tinygo

package main

import (
	"bytes"
	"errors"
	"log"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/sweeney/attendance-kiosk/internal/display"
	"github.com/sweeney/attendance-kiosk/internal/gpio"
	"github.com/sweeney/attendance-kiosk/internal/kiosk"
	"github.com/sweeney/attendance-kiosk/internal/logic"
	"github.com/sweeney/attendance-kiosk/internal/status"
	"github.com/sweeney/attendance-kiosk/internal/tone"
)

// fakeClock returns a function that yields start, start+step, start+2*step, ...
// on successive calls. Not safe for concurrent use (only called from runLoop's goroutine).
func fakeClock(start time.Time, step time.Duration) func() time.Time {
	n := 0
	return func() time.Time {
		t := start.Add(time.Duration(n) * step)
		n++
		return t
	}
}

// repeat returns n copies of sample.
func repeat(sample gpio.Sample, n int) []gpio.Sample {
	out := make([]gpio.Sample, n)
	for i := range out {
		out[i] = sample
	}
	return out
}

// faultReader wraps a FakeReader and returns errors for a range of Read() calls.
type faultReader struct {
	inner      *gpio.FakeReader
	call       int
	faultStart int // first call index that returns error (inclusive)
	faultEnd   int // last call index that returns error (exclusive)
}

func (r *faultReader) Read() (bool, bool, error) {
	i := r.call
	r.call++
	if i >= r.faultStart && i < r.faultEnd {
		return false, false, errors.New("gpio fault")
	}
	return r.inner.Read()
}

func (r *faultReader) Close() error { return r.inner.Close() }

type harness struct {
	leds    *gpio.FakeLEDs
	buzzer  *tone.FakeChannel
	tracker *status.Tracker
	k       *kiosk.Kiosk
	waits   []time.Duration
}

const testDebounce = 3

func newHarness(reader gpio.Reader, resolution logic.Resolution) *harness {
	h := &harness{
		leds:    gpio.NewFakeLEDs(),
		buzzer:  tone.NewFakeChannel(),
		tracker: status.NewTracker(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), status.Config{DebounceCycles: testDebounce}),
	}
	cfg := kiosk.DefaultConfig()
	cfg.DebounceCycles = testDebounce
	cfg.Resolution = resolution
	h.k = kiosk.New(cfg, kiosk.Hardware{
		Buttons: reader,
		LEDs:    h.leds,
		Buzzer:  tone.NewGenerator(h.buzzer, 0),
		Display: display.NewPresenter(display.NewFramebuffer(display.Width, display.Height, nil)),
		Tracker: h.tracker,
		Delay:   func(d time.Duration) { h.waits = append(h.waits, d) },
	})
	return h
}

// captureLog redirects the standard logger for the duration of the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	flags := log.Flags()
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(flags)
	})
	return &buf
}

// runRunLoop drives runLoop for nTicks and then delivers signal.
func runRunLoop(t *testing.T, h *harness, statusInterval time.Duration, clock func() time.Time, nTicks int, signal os.Signal) error {
	t.Helper()
	tick := make(chan time.Time)
	sig := make(chan os.Signal, 1)

	errCh := make(chan error, 1)
	go func() {
		errCh <- runLoop(h.k, h.tracker, statusInterval, clock, tick, sig)
	}()

	for i := 0; i < nTicks; i++ {
		tick <- time.Time{}
	}
	sig <- signal

	return <-errCh
}

// acceptedPress is a full press of one button: Idle poll, threshold+1 held
// polls, release, action poll.
func acceptedPress(s gpio.Sample) []gpio.Sample {
	return append(repeat(s, testDebounce+2), gpio.Sample{}, gpio.Sample{})
}

func TestRunLoopIdle(t *testing.T) {
	reader := gpio.NewFakeReader(repeat(gpio.Sample{}, 5))
	h := newHarness(reader, logic.PreferA)
	clock := fakeClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Millisecond)

	if err := runRunLoop(t, h, 0, clock, 5, syscall.SIGTERM); err != nil {
		t.Fatalf("runLoop returned error: %v", err)
	}

	if reader.Reads != 5 {
		t.Errorf("expected 5 reads, got %d", reader.Reads)
	}
	if len(h.leds.History) != 0 {
		t.Errorf("expected no LED writes, got %v", h.leds.History)
	}
	if h.k.State() != logic.StateIdle {
		t.Errorf("state: got %v, want IDLE", h.k.State())
	}
}

func TestRunLoopPresence(t *testing.T) {
	samples := acceptedPress(gpio.Sample{A: true})
	h := newHarness(gpio.NewFakeReader(samples), logic.PreferA)
	clock := fakeClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Millisecond)

	if err := runRunLoop(t, h, 0, clock, len(samples), syscall.SIGTERM); err != nil {
		t.Fatalf("runLoop returned error: %v", err)
	}

	if h.k.Counts().Presences != 1 {
		t.Errorf("presences: got %d, want 1", h.k.Counts().Presences)
	}
	if !h.leds.On(gpio.LEDAcknowledge) {
		t.Error("expected acknowledge LED on")
	}
	if h.tracker.Snapshot().State != logic.StateIdle {
		t.Errorf("tracker state: got %v, want IDLE", h.tracker.Snapshot().State)
	}
}

func TestRunLoopResetCompletesBeforeShutdown(t *testing.T) {
	samples := acceptedPress(gpio.Sample{B: true})
	h := newHarness(gpio.NewFakeReader(samples), logic.PreferA)
	clock := fakeClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Millisecond)

	if err := runRunLoop(t, h, 0, clock, len(samples), syscall.SIGINT); err != nil {
		t.Fatalf("runLoop returned error: %v", err)
	}

	if h.k.Counts().Resets != 1 {
		t.Errorf("resets: got %d, want 1", h.k.Counts().Resets)
	}
	if !h.k.Playing() {
		t.Error("expected the alert to have restarted before shutdown")
	}
	if len(h.waits) != 14 {
		t.Errorf("expected 14 waits for the reset action, got %d", len(h.waits))
	}
}

func TestRunLoopBounceRejection(t *testing.T) {
	samples := append(repeat(gpio.Sample{A: true}, 2), repeat(gpio.Sample{}, 4)...)
	h := newHarness(gpio.NewFakeReader(samples), logic.PreferA)
	clock := fakeClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Millisecond)

	if err := runRunLoop(t, h, 0, clock, len(samples), syscall.SIGTERM); err != nil {
		t.Fatalf("runLoop returned error: %v", err)
	}

	c := h.k.Counts()
	if c.Presences != 0 || c.Bounces != 1 {
		t.Errorf("counts: got %+v, want 1 bounce only", c)
	}
}

func TestRunLoopGPIOReadError(t *testing.T) {
	// Errors on the 3rd and 4th reads cost two polls; the press still lands.
	samples := acceptedPress(gpio.Sample{A: true})
	reader := &faultReader{inner: gpio.NewFakeReader(samples), faultStart: 2, faultEnd: 4}
	h := newHarness(reader, logic.PreferA)
	clock := fakeClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Millisecond)

	if err := runRunLoop(t, h, 0, clock, len(samples)+2, syscall.SIGTERM); err != nil {
		t.Fatalf("runLoop returned error: %v", err)
	}

	if h.k.Counts().Presences != 1 {
		t.Errorf("presences: got %d, want 1", h.k.Counts().Presences)
	}
}

func TestRunLoopParity(t *testing.T) {
	h := newHarness(gpio.NewFakeReader([]gpio.Sample{{A: true, B: true}}), resolution(true))
	clock := fakeClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Millisecond)

	if err := runRunLoop(t, h, 0, clock, 1, syscall.SIGTERM); err != nil {
		t.Fatalf("runLoop returned error: %v", err)
	}
	if h.k.State() != logic.StateDebouncingB {
		t.Errorf("state: got %v, want DEBOUNCING_B", h.k.State())
	}
}

func TestRunLoopStatusHeartbeat(t *testing.T) {
	buf := captureLog(t)
	h := newHarness(gpio.NewFakeReader(repeat(gpio.Sample{}, 1)), logic.PreferA)
	// Every call advances 10 minutes: the first read is lastStatus, then one per tick.
	clock := fakeClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 10*time.Minute)

	if err := runRunLoop(t, h, 15*time.Minute, clock, 4, syscall.SIGTERM); err != nil {
		t.Fatalf("runLoop returned error: %v", err)
	}

	// ticks at +10m, +20m (beat), +30m, +40m (beat)
	out := buf.String()
	if n := strings.Count(out, `"event":"HEARTBEAT"`); n != 2 {
		t.Errorf("expected 2 heartbeats, got %d:\n%s", n, out)
	}
	if !strings.Contains(out, `"event":"SHUTDOWN","reason":"SIGTERM"`) {
		t.Errorf("expected shutdown status line, got:\n%s", out)
	}
}

func TestRunLoopStatusDisabled(t *testing.T) {
	buf := captureLog(t)
	h := newHarness(gpio.NewFakeReader(repeat(gpio.Sample{}, 1)), logic.PreferA)
	clock := fakeClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Hour)

	if err := runRunLoop(t, h, 0, clock, 3, syscall.SIGINT); err != nil {
		t.Fatalf("runLoop returned error: %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "HEARTBEAT") {
		t.Errorf("expected no heartbeat with interval 0, got:\n%s", out)
	}
	if !strings.Contains(out, `"reason":"SIGINT"`) {
		t.Errorf("expected SIGINT in shutdown status, got:\n%s", out)
	}
}

func TestSignalName(t *testing.T) {
	if signalName(syscall.SIGINT) != "SIGINT" {
		t.Error("SIGINT")
	}
	if signalName(syscall.SIGTERM) != "SIGTERM" {
		t.Error("SIGTERM")
	}
	if signalName(syscall.SIGHUP) != "UNKNOWN" {
		t.Error("SIGHUP should be UNKNOWN")
	}
}

func TestResolution(t *testing.T) {
	if resolution(false) != logic.PreferA {
		t.Error("expected prefer-a by default")
	}
	if resolution(true) != logic.LastEvaluatedWins {
		t.Error("expected last-evaluated-wins with -parity")
	}
}

func TestPressedString(t *testing.T) {
	if pressedString(true) != "PRESSED" {
		t.Errorf("got %q, want PRESSED", pressedString(true))
	}
	if pressedString(false) != "RELEASED" {
		t.Errorf("got %q, want RELEASED", pressedString(false))
	}
}
