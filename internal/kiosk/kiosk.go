// Package kiosk wires the button machine to the LEDs, buzzer, screen and
// joystick, and runs the startup sequence and main loop.
package kiosk

import (
	"log"
	"time"

	"github.com/sweeney/attendance-kiosk/internal/display"
	"github.com/sweeney/attendance-kiosk/internal/gpio"
	"github.com/sweeney/attendance-kiosk/internal/logic"
	"github.com/sweeney/attendance-kiosk/internal/melody"
	"github.com/sweeney/attendance-kiosk/internal/status"
	"github.com/sweeney/attendance-kiosk/internal/tone"
	"github.com/sweeney/attendance-kiosk/internal/wake"
)

// Config holds the kiosk timings and machine parameters.
type Config struct {
	DebounceCycles uint
	Resolution     logic.Resolution

	// Poll is the pause between loop steps in Run. Zero polls back to back.
	Poll time.Duration

	StartupHold time.Duration // startup message hold
	ResetDelay  time.Duration // after button B, before the thanks message
	ThanksHold  time.Duration // thanks message hold before the alert restarts
	WakePoll    time.Duration // button A poll interval while woken

	Alert melody.Melody
}

// DefaultConfig returns the board's stock timings.
func DefaultConfig() Config {
	return Config{
		DebounceCycles: logic.DefaultDebounceCycles,
		Resolution:     logic.PreferA,
		StartupHold:    5 * time.Second,
		ResetDelay:     5 * time.Second,
		ThanksHold:     5 * time.Second,
		WakePoll:       100 * time.Millisecond,
		Alert:          melody.Alert,
	}
}

// Hardware bundles the devices the kiosk drives.
// Wake and Tracker are optional.
type Hardware struct {
	Buttons gpio.Reader
	LEDs    gpio.LEDs
	Buzzer  *tone.Generator
	Display *display.Presenter
	Wake    *wake.Detector
	Tracker *status.Tracker

	// Delay blocks for the given duration. Nil means time.Sleep.
	Delay func(time.Duration)
}

// Kiosk is the attendance kiosk controller.
type Kiosk struct {
	cfg     Config
	hw      Hardware
	delay   func(time.Duration)
	machine *logic.Machine
	player  *melody.Player
	playing bool
}

// New creates a Kiosk. Nothing is driven until Start.
func New(cfg Config, hw Hardware) *Kiosk {
	delay := hw.Delay
	if delay == nil {
		delay = time.Sleep
	}
	return &Kiosk{
		cfg:     cfg,
		hw:      hw,
		delay:   delay,
		machine: logic.NewMachine(cfg.DebounceCycles, cfg.Resolution),
		player:  melody.NewPlayer(delay, cfg.Alert.Pause),
	}
}

// Start runs the power-up sequence: confirm LED on, alert melody, startup
// message, then a hold before polling begins.
func (k *Kiosk) Start() {
	log.Printf("starting: debounce=%d resolution=%s", k.cfg.DebounceCycles, k.cfg.Resolution)

	k.setLED(gpio.LEDConfirm, true)
	k.setLED(gpio.LEDAcknowledge, false)
	k.playAlert()

	k.clear()
	k.show(display.MessageStartup)
	k.delay(k.cfg.StartupHold)

	if k.hw.Tracker != nil {
		k.hw.Tracker.SetStarted()
	}
	log.Printf("ready")
}

// Step runs one loop iteration: the wake check, then one button poll.
func (k *Kiosk) Step() {
	if k.hw.Wake != nil {
		deflected, err := k.hw.Wake.IsDeflected()
		if err != nil {
			log.Printf("wake error: %v", err)
		} else if deflected {
			k.awaitButtonA()
		}
	}

	a, b, err := k.hw.Buttons.Read()
	if err != nil {
		log.Printf("gpio read error: %v", err)
		return
	}

	for _, event := range k.machine.Process(logic.Input{A: a, B: b}) {
		log.Printf("event: %s (state=%s)", event.Type, event.State)
		if k.hw.Tracker != nil {
			k.hw.Tracker.Record(string(event.Type), event.State)
		}
		k.apply(event)
	}

	if k.hw.Tracker != nil {
		k.hw.Tracker.Update(k.machine.State(), k.machine.CountsSnapshot())
	}
}

// Run starts the kiosk and steps forever.
func (k *Kiosk) Run() {
	k.Start()
	for {
		k.Step()
		if k.cfg.Poll > 0 {
			k.delay(k.cfg.Poll)
		}
	}
}

// Playing reports whether the alert melody is considered active.
func (k *Kiosk) Playing() bool {
	return k.playing
}

// State returns the button machine state.
func (k *Kiosk) State() logic.ButtonState {
	return k.machine.State()
}

// Counts returns the accepted and rejected press counters.
func (k *Kiosk) Counts() logic.Counts {
	return k.machine.CountsSnapshot()
}

func (k *Kiosk) apply(event logic.Event) {
	switch event.Type {
	case logic.EventShowPresence:
		k.show(display.MessagePresenceConfirmed)
	case logic.EventShowResetting:
		k.show(display.MessageResetting)
	case logic.EventActionA:
		k.actionA()
	case logic.EventActionB:
		k.actionB()
	}
}

// actionA acknowledges a confirmed presence.
func (k *Kiosk) actionA() {
	k.setLED(gpio.LEDPresence, false)
	k.setLED(gpio.LEDConfirm, false)
	k.setLED(gpio.LEDAcknowledge, true)
	k.rest()
	k.setPlaying(false)
}

// actionB resets the kiosk for the next attendee. Blocks for the reset
// delay, the thanks hold and the full alert melody.
func (k *Kiosk) actionB() {
	k.setLED(gpio.LEDAcknowledge, false)
	k.setLED(gpio.LEDPresence, true)
	k.rest()
	k.setPlaying(false)

	k.delay(k.cfg.ResetDelay)
	k.setLED(gpio.LEDPresence, false)
	k.setLED(gpio.LEDAcknowledge, false)

	k.clear()
	k.show(display.MessageThanks)
	k.delay(k.cfg.ThanksHold)

	k.playAlert()
	k.setLED(gpio.LEDPresence, true)
}

// awaitButtonA lights the presence LED and blocks until button A reads pressed.
func (k *Kiosk) awaitButtonA() {
	log.Printf("wake: joystick deflected, waiting for button A")
	if k.hw.Tracker != nil {
		k.hw.Tracker.AddWake()
		k.hw.Tracker.Record("WAKE", k.machine.State())
	}
	k.setLED(gpio.LEDPresence, true)
	for {
		a, _, err := k.hw.Buttons.Read()
		if err != nil {
			log.Printf("gpio read error: %v", err)
		} else if a {
			break
		}
		k.delay(k.cfg.WakePoll)
	}
	k.setLED(gpio.LEDPresence, false)
}

func (k *Kiosk) playAlert() {
	if err := k.player.Play(k.hw.Buzzer, k.cfg.Alert); err != nil {
		log.Printf("buzzer error: %v", err)
	}
	k.setPlaying(true)
}

func (k *Kiosk) rest() {
	if err := k.hw.Buzzer.PlayRest(); err != nil {
		log.Printf("buzzer error: %v", err)
	}
}

func (k *Kiosk) setPlaying(playing bool) {
	k.playing = playing
	if k.hw.Tracker != nil {
		k.hw.Tracker.SetPlaying(playing)
	}
}

func (k *Kiosk) setLED(led gpio.LED, on bool) {
	if err := k.hw.LEDs.Set(led, on); err != nil {
		log.Printf("led %s error: %v", led, err)
		return
	}
	if k.hw.Tracker != nil {
		k.hw.Tracker.SetLED(led, on)
	}
}

func (k *Kiosk) show(m display.Message) {
	if err := k.hw.Display.Show(m); err != nil {
		log.Printf("display error: %v", err)
		return
	}
	log.Printf("display: %s", m)
	if k.hw.Tracker != nil {
		k.hw.Tracker.SetMessage(m)
	}
}

func (k *Kiosk) clear() {
	if err := k.hw.Display.Clear(); err != nil {
		log.Printf("display error: %v", err)
		return
	}
	if k.hw.Tracker != nil {
		k.hw.Tracker.SetMessage(display.MessageNone)
	}
}
