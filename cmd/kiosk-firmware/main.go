//go:build tinygo && rp2040

// Command kiosk-firmware is the attendance kiosk firmware for an RP2040
// board with two buttons, three LEDs, a piezo buzzer, an analog joystick
// and an SSD1306 OLED on I2C1.
package main

import (
	"machine"
	"time"

	"tinygo.org/x/drivers/ssd1306"

	"github.com/sweeney/attendance-kiosk/internal/display"
	"github.com/sweeney/attendance-kiosk/internal/gpio"
	"github.com/sweeney/attendance-kiosk/internal/kiosk"
	"github.com/sweeney/attendance-kiosk/internal/status"
	"github.com/sweeney/attendance-kiosk/internal/tone"
	"github.com/sweeney/attendance-kiosk/internal/wake"
)

const (
	pinBuzzer  = 21
	oledAddr   = 0x3C
	i2cFreqKHz = 400
)

func main() {
	machine.I2C1.Configure(machine.I2CConfig{
		SDA:       machine.GP14,
		SCL:       machine.GP15,
		Frequency: i2cFreqKHz * machine.KHz,
	})
	oled := ssd1306.NewI2C(machine.I2C1)
	oled.Configure(ssd1306.Config{
		Address: oledAddr,
		Width:   display.Width,
		Height:  display.Height,
	})

	buzzer, err := tone.NewBoardChannel(pinBuzzer)
	if err != nil {
		panic(err)
	}

	pins := gpio.DefaultPins()

	// A 1 ms poll puts the 50-cycle debounce at about 50 ms.
	cfg := kiosk.DefaultConfig()
	cfg.Poll = time.Millisecond

	k := kiosk.New(cfg, kiosk.Hardware{
		Buttons: gpio.NewBoardReader(pins.A, pins.B),
		LEDs:    gpio.NewBoardLEDs(pins),
		Buzzer:  tone.NewGenerator(buzzer, tone.DefaultDutyDivisor),
		Display: display.NewPresenter(&oled),
		Wake:    wake.NewDetector(wake.NewBoardSampler(machine.ADC0, machine.ADC1)),
		Tracker: status.NewTracker(time.Now(), status.Config{
			DebounceCycles: cfg.DebounceCycles,
			PollMs:         cfg.Poll.Milliseconds(),
			Resolution:     cfg.Resolution,
		}),
	})

	k.Run()
}
