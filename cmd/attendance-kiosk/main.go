//go:build linux && !tinygo

// Command attendance-kiosk runs the attendance kiosk on a Linux board:
// buttons and LEDs on the GPIO character device, and the buzzer, joystick
// ADC and OLED through periph.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/host/v3"

	"github.com/sweeney/attendance-kiosk/internal/display"
	"github.com/sweeney/attendance-kiosk/internal/gpio"
	"github.com/sweeney/attendance-kiosk/internal/kiosk"
	"github.com/sweeney/attendance-kiosk/internal/logic"
	"github.com/sweeney/attendance-kiosk/internal/status"
	"github.com/sweeney/attendance-kiosk/internal/tone"
	"github.com/sweeney/attendance-kiosk/internal/wake"
)

type options struct {
	chip           string
	pins           gpio.Pins
	buzzerPin      string
	i2cBus         string
	oled           bool
	adc            string
	adcAddr        uint
	adcX           int
	adcY           int
	adcVref        physic.ElectricPotential
	debounce       uint
	poll           time.Duration
	parity         bool
	statusInterval time.Duration
	printState     bool
}

func main() {
	o := options{adcVref: 3300 * physic.MilliVolt}
	flag.StringVar(&o.chip, "chip", "gpiochip0", "GPIO chip name")
	flag.IntVar(&o.pins.A, "pin-a", gpio.DefaultPinA, "Line offset for button A (confirm presence)")
	flag.IntVar(&o.pins.B, "pin-b", gpio.DefaultPinB, "Line offset for button B (reset)")
	flag.IntVar(&o.pins.Acknowledge, "pin-ack", gpio.DefaultPinAcknowledge, "Line offset for the acknowledge LED")
	flag.IntVar(&o.pins.Presence, "pin-presence", gpio.DefaultPinPresence, "Line offset for the presence LED")
	flag.IntVar(&o.pins.Confirm, "pin-confirm", gpio.DefaultPinConfirm, "Line offset for the confirm LED")
	flag.StringVar(&o.buzzerPin, "buzzer-pin", "GPIO18", "PWM-capable pin for the buzzer")
	flag.StringVar(&o.i2cBus, "i2c-bus", "", "I2C bus for the OLED and joystick ADC (empty for the first bus)")
	flag.BoolVar(&o.oled, "oled", true, "Drive an SSD1306 OLED at 0x3C (false logs messages only)")
	flag.StringVar(&o.adc, "adc", wake.ADS1115, "Joystick ADC: ads1115 or ads1015 (empty to disable wake)")
	flag.UintVar(&o.adcAddr, "adc-addr", wake.DefaultADCAddress, "I2C address of the joystick ADC")
	flag.IntVar(&o.adcX, "adc-x", 0, "ADC input for the joystick X axis")
	flag.IntVar(&o.adcY, "adc-y", 1, "ADC input for the joystick Y axis")
	flag.Var(&o.adcVref, "adc-vref", "Joystick supply voltage")
	flag.UintVar(&o.debounce, "debounce", logic.DefaultDebounceCycles, "Polls a button must be held before it is accepted")
	flag.DurationVar(&o.poll, "poll", time.Millisecond, "Button polling interval")
	flag.BoolVar(&o.parity, "parity", false, "Resolve a simultaneous A+B press as B, showing both messages")
	flag.DurationVar(&o.statusInterval, "status-interval", 15*time.Minute, "Status log interval (0 to disable)")
	flag.BoolVar(&o.printState, "print-state", false, "Print current inputs and exit")

	flag.Parse()

	if err := run(o); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(o options) error {
	if o.poll <= 0 {
		return fmt.Errorf("poll interval must be positive, got %v", o.poll)
	}

	if _, err := host.Init(); err != nil {
		return fmt.Errorf("init periph: %w", err)
	}

	var bus i2c.BusCloser
	if o.oled || o.adc != "" {
		b, err := i2creg.Open(o.i2cBus)
		if err != nil {
			return fmt.Errorf("open i2c bus: %w", err)
		}
		defer b.Close()
		bus = b
	}

	buttons, err := gpio.NewRealReader(o.chip, o.pins.A, o.pins.B)
	if err != nil {
		return fmt.Errorf("init buttons: %w", err)
	}
	defer buttons.Close()

	var joystick *wake.Detector
	if o.adc != "" {
		sampler, halt, err := wake.OpenADS1x15(bus, o.adc, uint16(o.adcAddr), o.adcX, o.adcY, o.adcVref)
		if err != nil {
			return fmt.Errorf("init joystick: %w", err)
		}
		defer halt()
		joystick = wake.NewDetector(sampler)
	}

	cfg := kioskConfig(o)
	tracker := status.NewTracker(time.Now(), status.Config{
		DebounceCycles: cfg.DebounceCycles,
		PollMs:         o.poll.Milliseconds(),
		Resolution:     cfg.Resolution,
	})

	if o.printState {
		return printState(buttons, joystick, tracker)
	}

	leds, err := gpio.NewRealLEDs(o.chip, o.pins)
	if err != nil {
		return fmt.Errorf("init leds: %w", err)
	}
	defer leds.Close()

	pin := gpioreg.ByName(o.buzzerPin)
	if pin == nil {
		return fmt.Errorf("init buzzer: no pin %q", o.buzzerPin)
	}
	pwm, err := tone.NewPinChannel(pin)
	if err != nil {
		return fmt.Errorf("init buzzer: %w", err)
	}
	defer pwm.Close()

	var flush func([]byte) error
	if o.oled {
		oled, err := ssd1306.NewI2C(bus, &ssd1306.DefaultOpts)
		if err != nil {
			return fmt.Errorf("init oled: %w", err)
		}
		defer oled.Halt()
		flush = display.FlushTo(oled)
	}
	screen := display.NewFramebuffer(display.Width, display.Height, flush)

	k := kiosk.New(cfg, kiosk.Hardware{
		Buttons: buttons,
		LEDs:    leds,
		Buzzer:  tone.NewGenerator(pwm, tone.DefaultDutyDivisor),
		Display: display.NewPresenter(screen),
		Wake:    joystick,
		Tracker: tracker,
	})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	k.Start()
	log.Printf("started: poll=%v debounce=%d resolution=%s wake=%v oled=%v", o.poll, cfg.DebounceCycles, cfg.Resolution, joystick != nil, o.oled)

	ticker := time.NewTicker(o.poll)
	defer ticker.Stop()

	return runLoop(k, tracker, o.statusInterval, time.Now, ticker.C, sigCh)
}

func kioskConfig(o options) kiosk.Config {
	cfg := kiosk.DefaultConfig()
	cfg.DebounceCycles = o.debounce
	cfg.Resolution = resolution(o.parity)
	return cfg
}

func printState(buttons gpio.Reader, joystick *wake.Detector, tracker *status.Tracker) error {
	a, b, err := buttons.Read()
	if err != nil {
		return fmt.Errorf("read gpio: %w", err)
	}
	fmt.Printf("A: %s, B: %s\n", pressedString(a), pressedString(b))

	if joystick != nil {
		deflected, err := joystick.IsDeflected()
		if err != nil {
			return fmt.Errorf("read joystick: %w", err)
		}
		fmt.Printf("joystick deflected: %v\n", deflected)
	}

	fmt.Println(string(status.FormatJSON(tracker.Snapshot())))
	return nil
}
