package gfx

import (
	"image/color"
	"unicode/utf8"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// TextWidth is the advance width of s in f.
func TextWidth(f tinyfont.Fonter, s string) int16 {
	_, outbox := tinyfont.LineWidth(f, s)
	return int16(outbox)
}

// DrawText writes s with its baseline at y.
func DrawText(d drivers.Displayer, f tinyfont.Fonter, x, y int16, s string, c color.RGBA) {
	tinyfont.WriteLine(d, f, x, y, s, c)
}

// DrawTextRight writes s so that it ends at right.
func DrawTextRight(d drivers.Displayer, f tinyfont.Fonter, right, y int16, s string, c color.RGBA) {
	DrawText(d, f, right-TextWidth(f, s), y, s, c)
}

// DrawTextCentered centers s horizontally inside [x, x+w).
func DrawTextCentered(d drivers.Displayer, f tinyfont.Fonter, x, w, y int16, s string, c color.RGBA) {
	DrawText(d, f, x+(w-TextWidth(f, s))/2, y, s, c)
}

// ClipLeft drops leading characters of s until it fits in maxW.
func ClipLeft(f tinyfont.Fonter, s string, maxW int16) (string, bool) {
	clipped := false
	for s != "" && TextWidth(f, s) > maxW {
		_, n := utf8.DecodeRuneInString(s)
		s = s[n:]
		clipped = true
	}
	return s, clipped
}
