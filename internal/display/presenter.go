package display

import (
	"fmt"
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// Screen is a buffered monochrome display. *ssd1306.Device satisfies it.
type Screen interface {
	drivers.Displayer

	// ClearBuffer blanks the local buffer without sending it.
	ClearBuffer()
}

// Text layout, matching an 8x8 character grid.
const (
	marginX    = 5
	lineHeight = 8
	baseline   = 7
)

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Presenter draws messages on a Screen.
type Presenter struct {
	screen  Screen
	font    tinyfont.Fonter
	current Message
}

// NewPresenter creates a Presenter using the 8pt proggy font.
func NewPresenter(screen Screen) *Presenter {
	return &Presenter{screen: screen, font: &proggy.TinySZ8pt7b}
}

// Show replaces the screen contents with m and flushes it.
func (p *Presenter) Show(m Message) error {
	p.screen.ClearBuffer()
	for i, line := range m.Lines() {
		tinyfont.WriteLine(p.screen, p.font, marginX, int16(i*lineHeight+baseline), line, white)
	}
	if err := p.screen.Display(); err != nil {
		return fmt.Errorf("display %s: %w", m, err)
	}
	p.current = m
	return nil
}

// Clear blanks the screen.
func (p *Presenter) Clear() error {
	p.screen.ClearBuffer()
	if err := p.screen.Display(); err != nil {
		return fmt.Errorf("clear display: %w", err)
	}
	p.current = MessageNone
	return nil
}

// Current returns the message last shown successfully.
func (p *Presenter) Current() Message {
	return p.current
}
