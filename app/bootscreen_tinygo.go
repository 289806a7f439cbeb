//go:build tinygo

package app

import (
	"image/color"

	"pocketcalc/calcos/gfx"
	"pocketcalc/hal"
	"pocketcalc/internal/buildinfo"

	"tinygo.org/x/tinyfont/freemono"
	"tinygo.org/x/tinyfont/proggy"
)

// bootScreen shows a splash with msg until the calculator draws its first
// frame.
func bootScreen(h hal.HAL, msg string) {
	disp := h.Display()
	if disp == nil {
		return
	}
	fb := disp.Framebuffer()
	if fb == nil {
		return
	}
	d := gfx.NewDisplay(fb)
	w, ht := d.Size()

	bg := color.RGBA{R: 0x11, G: 0x18, B: 0x27, A: 0xFF}
	amber := color.RGBA{R: 0xF5, G: 0x9E, B: 0x0B, A: 0xFF}
	dim := color.RGBA{R: 0x9C, G: 0xA3, B: 0xAF, A: 0xFF}

	_ = d.FillRectangle(0, 0, w, ht, bg)
	gfx.DrawTextCentered(d, &freemono.Bold18pt7b, 0, w, ht/2, "pocketcalc", amber)
	gfx.DrawTextCentered(d, &proggy.TinySZ8pt7b, 0, w, ht/2+24, msg, dim)
	gfx.DrawTextCentered(d, &proggy.TinySZ8pt7b, 0, w, ht-12, buildinfo.Short(), dim)
	_ = d.Display()
}
