package display

import (
	"fmt"
	"image/color"
	"io"
)

// Panel geometry of the kiosk OLED.
const (
	Width  = 128
	Height = 64
)

// Framebuffer is an in-memory Screen laid out like the SSD1306 GDDRAM:
// one byte per column per 8-pixel page, least significant bit on top.
type Framebuffer struct {
	width  int16
	height int16
	buf    []byte
	flush  func([]byte) error

	// Flushes counts Display calls.
	Flushes int
}

// NewFramebuffer creates a blank buffer. flush, if non-nil, receives the
// buffer on every Display call.
func NewFramebuffer(width, height int16, flush func([]byte) error) *Framebuffer {
	return &Framebuffer{
		width:  width,
		height: height,
		buf:    make([]byte, int(width)*int(height)/8),
		flush:  flush,
	}
}

// Size returns the panel size.
func (f *Framebuffer) Size() (int16, int16) {
	return f.width, f.height
}

// SetPixel lights the pixel for any non-black colour.
func (f *Framebuffer) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	idx := int(x) + int(y/8)*int(f.width)
	bit := byte(1) << uint(y%8)
	if c.R != 0 || c.G != 0 || c.B != 0 {
		f.buf[idx] |= bit
	} else {
		f.buf[idx] &^= bit
	}
}

// Pixel reports whether the pixel is lit.
func (f *Framebuffer) Pixel(x, y int16) bool {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return false
	}
	return f.buf[int(x)+int(y/8)*int(f.width)]&(1<<uint(y%8)) != 0
}

// Lit returns the number of lit pixels.
func (f *Framebuffer) Lit() int {
	n := 0
	for _, b := range f.buf {
		for ; b != 0; b &= b - 1 {
			n++
		}
	}
	return n
}

// ClearBuffer blanks the buffer.
func (f *Framebuffer) ClearBuffer() {
	for i := range f.buf {
		f.buf[i] = 0
	}
}

// Display hands the buffer to the flush function.
func (f *Framebuffer) Display() error {
	f.Flushes++
	if f.flush == nil {
		return nil
	}
	return f.flush(f.buf)
}

// Buffer returns the raw page buffer.
func (f *Framebuffer) Buffer() []byte {
	return f.buf
}

// FlushTo returns a flush function that writes the page buffer to w in one
// call. Panels such as periph's ssd1306.Dev take this layout as is.
func FlushTo(w io.Writer) func([]byte) error {
	return func(buf []byte) error {
		n, err := w.Write(buf)
		if err != nil {
			return fmt.Errorf("write panel: %w", err)
		}
		if n != len(buf) {
			return fmt.Errorf("write panel: short write %d of %d bytes", n, len(buf))
		}
		return nil
	}
}
