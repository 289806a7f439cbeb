package app

import (
	"fmt"
	"image/color"
	"strings"
	"unicode/utf8"

	"pocketcalc/calcos/gfx"
	"pocketcalc/calcos/kernel"
	"pocketcalc/hal"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

var (
	panicBG = color.RGBA{R: 0x7F, G: 0x1D, B: 0x1D, A: 0xFF}
	panicFG = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
)

func installPanicHandler(h hal.HAL) {
	kernel.SetPanicHandler(func(info kernel.PanicInfo) {
		lines := panicLines(info)
		if l := h.Logger(); l != nil {
			for _, line := range lines {
				l.WriteLineString(line)
			}
		}
		if disp := h.Display(); disp != nil {
			if fb := disp.Framebuffer(); fb != nil {
				drawPanic(gfx.NewDisplay(fb), lines)
			}
		}
	})
}

func panicLines(info kernel.PanicInfo) []string {
	lines := []string{
		"pocketcalc panic",
		fmt.Sprintf("task: %d", info.TaskID),
		fmt.Sprintf("panic: %v", info.Value),
	}
	if len(info.Stack) == 0 {
		return append(lines, "stack: unavailable")
	}
	lines = append(lines, "stack:")
	for _, line := range strings.Split(string(info.Stack), "\n") {
		if line = strings.TrimRight(line, " \t"); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// drawPanic fills the screen and prints lines, wrapping long ones, until the
// screen is full.
func drawPanic(d *gfx.Display, lines []string) {
	var font tinyfont.Fonter = &proggy.TinySZ8pt7b
	lineH := int16(font.GetYAdvance())
	w, h := d.Size()
	_ = d.FillRectangle(0, 0, w, h, panicBG)

	const pad = 4
	maxW := w - 2*pad
	y := pad + lineH
	for _, line := range lines {
		for line != "" {
			if y > h-pad {
				_ = d.Display()
				return
			}
			chunk, rest := fitPrefix(font, line, maxW)
			gfx.DrawText(d, font, pad, y, chunk, panicFG)
			y += lineH
			line = strings.TrimLeft(rest, " \t")
		}
	}
	_ = d.Display()
}

// fitPrefix splits s at the longest prefix that fits in maxW. At least one
// rune is always taken.
func fitPrefix(f tinyfont.Fonter, s string, maxW int16) (prefix, rest string) {
	end := 0
	for end < len(s) {
		_, n := utf8.DecodeRuneInString(s[end:])
		if end > 0 && gfx.TextWidth(f, s[:end+n]) > maxW {
			break
		}
		end += n
	}
	return s[:end], s[end:]
}
