package calc

import (
	"image/color"

	"pocketcalc/calcos/engine"
	"pocketcalc/calcos/gfx"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
	"tinygo.org/x/tinyfont/proggy"
)

// The bundled fonts are 7-bit, so operators render with Op.ASCII.
var (
	fontDisplay tinyfont.Fonter = &freemono.Bold18pt7b
	fontKey     tinyfont.Fonter = &freemono.Bold12pt7b
	fontPending tinyfont.Fonter = &proggy.TinySZ8pt7b
)

const (
	margin = 8
	gap    = 4

	panelY = margin
	panelH = 80

	gridY = panelY + panelH + margin
	cellW = 73
	cellH = 40

	focusWidth = 2
)

func (t *Task) render() {
	if t.d == nil {
		return
	}
	th := t.cfg.Theme
	w, h := t.d.Size()
	_ = t.d.FillRectangle(0, 0, w, h, th.Background)

	t.renderReadout(w)
	focused := t.cursor.focused()
	for i := range keypad {
		t.renderKey(keypad[i], i == focused)
	}
	_ = t.d.Display()
}

func (t *Task) renderReadout(w int16) {
	th := t.cfg.Theme
	panelW := w - 2*margin
	_ = t.d.FillRectangle(margin, panelY, panelW, panelH, th.Panel)

	right := margin + panelW - 8
	inner := panelW - 16

	if p := t.state.PendingASCII(); p != "" {
		p, _ = gfx.ClipLeft(fontPending, p, inner)
		gfx.DrawTextRight(t.d, fontPending, right, panelY+20, p, th.Pending)
	}

	display, _ := gfx.ClipLeft(fontDisplay, t.state.Display, inner)
	gfx.DrawTextRight(t.d, fontDisplay, right, panelY+panelH-16, display, th.Text)
}

func (t *Task) renderKey(c cell, focused bool) {
	x, y, w, h := cellRect(c)
	bg, fg := t.keyColors(c.button)
	_ = t.d.FillRectangle(x, y, w, h, bg)
	if focused {
		t.d.StrokeRectangle(x, y, w, h, focusWidth, t.cfg.Theme.Focus)
	}
	baseline := y + h/2 + int16(fontKey.GetYAdvance())/4
	gfx.DrawTextCentered(t.d, fontKey, x, w, baseline, c.button.ASCII(), fg)
}

func (t *Task) keyColors(b engine.Button) (bg, fg color.RGBA) {
	th := t.cfg.Theme
	switch kindOf(b) {
	case kindOperator:
		if t.state.IsActive(b.Op()) {
			return th.OperatorActive, th.ActiveText
		}
		return th.Operator, th.Text
	case kindFunction:
		return th.Function, th.Text
	default:
		return th.Digit, th.Text
	}
}

func cellRect(c cell) (x, y, w, h int16) {
	x = margin + int16(c.col)*(cellW+gap)
	y = gridY + int16(c.row)*(cellH+gap)
	w = int16(c.span)*cellW + int16(c.span-1)*gap
	return x, y, w, cellH
}
