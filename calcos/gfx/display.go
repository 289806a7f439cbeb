// Package gfx draws into a hal.Framebuffer through the tinygo drivers
// Displayer interface so tinyfont can render on it.
package gfx

import (
	"image/color"

	"pocketcalc/hal"

	"tinygo.org/x/drivers"
)

var _ drivers.Displayer = (*Display)(nil)

// Display adapts an RGB565 framebuffer. Drawing outside the buffer is clipped.
type Display struct {
	fb hal.Framebuffer
}

func NewDisplay(fb hal.Framebuffer) *Display {
	return &Display{fb: fb}
}

func (d *Display) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *Display) SetPixel(x, y int16, c color.RGBA) {
	buf := d.buffer()
	if buf == nil {
		return
	}
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= d.fb.Width() || iy < 0 || iy >= d.fb.Height() {
		return
	}
	off := iy*d.fb.StrideBytes() + ix*2
	if off+1 >= len(buf) {
		return
	}
	p := RGB565(c)
	buf[off] = byte(p)
	buf[off+1] = byte(p >> 8)
}

// Display presents the framebuffer.
func (d *Display) Display() error {
	if d.fb == nil {
		return nil
	}
	return d.fb.Present()
}

func (d *Display) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	buf := d.buffer()
	if buf == nil {
		return nil
	}
	w, h := d.fb.Width(), d.fb.Height()
	x0 := clampInt(int(x), 0, w)
	y0 := clampInt(int(y), 0, h)
	x1 := clampInt(int(x)+int(width), 0, w)
	y1 := clampInt(int(y)+int(height), 0, h)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	p := RGB565(c)
	lo, hi := byte(p), byte(p>>8)
	stride := d.fb.StrideBytes()
	for py := y0; py < y1; py++ {
		row := buf[py*stride+x0*2 : py*stride+x1*2]
		for i := 0; i+1 < len(row); i += 2 {
			row[i] = lo
			row[i+1] = hi
		}
	}
	return nil
}

// StrokeRectangle draws a border of the given thickness inside the rectangle.
func (d *Display) StrokeRectangle(x, y, width, height, thick int16, c color.RGBA) {
	if thick <= 0 {
		return
	}
	_ = d.FillRectangle(x, y, width, thick, c)
	_ = d.FillRectangle(x, y+height-thick, width, thick, c)
	_ = d.FillRectangle(x, y, thick, height, c)
	_ = d.FillRectangle(x+width-thick, y, thick, height, c)
}

func (d *Display) buffer() []byte {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return nil
	}
	return d.fb.Buffer()
}

// RGB565 packs c into the framebuffer pixel format.
func RGB565(c color.RGBA) uint16 {
	return uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
