//go:build !tinygo

package main

import (
	"log"
	"os"
	"syscall"
	"time"

	"github.com/sweeney/attendance-kiosk/internal/logic"
	"github.com/sweeney/attendance-kiosk/internal/status"
)

// stepper is the part of kiosk.Kiosk the loop drives.
type stepper interface {
	Step()
}

// runLoop steps the kiosk on every tick until a signal arrives. A step that
// blocks (reset delay, melody) always completes before the signal is seen.
func runLoop(k stepper, tracker *status.Tracker, statusInterval time.Duration, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	lastStatus := now()

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			if tracker != nil {
				log.Printf("status: %s", status.FormatStatusEvent(tracker.Snapshot(), "SHUTDOWN", signalName(s)))
			}
			return nil

		case <-tick:
			k.Step()

			if statusInterval <= 0 || tracker == nil {
				continue
			}
			t := now()
			if t.Sub(lastStatus) >= statusInterval {
				log.Printf("status: %s", status.FormatStatusEvent(tracker.Snapshot(), "HEARTBEAT", ""))
				lastStatus = t
			}
		}
	}
}

func signalName(s os.Signal) string {
	switch s {
	case syscall.SIGINT:
		return "SIGINT"
	case syscall.SIGTERM:
		return "SIGTERM"
	}
	return "UNKNOWN"
}

func resolution(parity bool) logic.Resolution {
	if parity {
		return logic.LastEvaluatedWins
	}
	return logic.PreferA
}

func pressedString(pressed bool) string {
	if pressed {
		return "PRESSED"
	}
	return "RELEASED"
}
