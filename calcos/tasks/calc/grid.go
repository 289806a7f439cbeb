package calc

import "pocketcalc/calcos/engine"

const (
	gridCols = 4
	gridRows = 5
)

type cell struct {
	button engine.Button
	row    int
	col    int
	span   int
}

// keypad lists the on-screen buttons row by row.
var keypad = [...]cell{
	{engine.ButtonClear, 0, 0, 1},
	{engine.ButtonToggleSign, 0, 1, 1},
	{engine.ButtonPercent, 0, 2, 1},
	{engine.ButtonDiv, 0, 3, 1},

	{engine.Button7, 1, 0, 1},
	{engine.Button8, 1, 1, 1},
	{engine.Button9, 1, 2, 1},
	{engine.ButtonMul, 1, 3, 1},

	{engine.Button4, 2, 0, 1},
	{engine.Button5, 2, 1, 1},
	{engine.Button6, 2, 2, 1},
	{engine.ButtonSub, 2, 3, 1},

	{engine.Button1, 3, 0, 1},
	{engine.Button2, 3, 1, 1},
	{engine.Button3, 3, 2, 1},
	{engine.ButtonAdd, 3, 3, 1},

	{engine.Button0, 4, 0, 2},
	{engine.ButtonDecimal, 4, 2, 1},
	{engine.ButtonEquals, 4, 3, 1},
}

// cellAt returns the index of the cell covering row, col.
func cellAt(row, col int) int {
	for i, c := range keypad {
		if c.row == row && col >= c.col && col < c.col+c.span {
			return i
		}
	}
	return -1
}

type cellKind uint8

const (
	kindDigit cellKind = iota
	kindFunction
	kindOperator
)

func kindOf(b engine.Button) cellKind {
	switch {
	case b.Op() != engine.OpNone || b == engine.ButtonEquals:
		return kindOperator
	case b == engine.ButtonClear || b == engine.ButtonToggleSign || b == engine.ButtonPercent:
		return kindFunction
	default:
		return kindDigit
	}
}

// cursor tracks the focused keypad cell. col is the column the user last
// aimed at, so moving vertically through the wide 0 key keeps the column.
type cursor struct {
	row int
	col int
}

func (c cursor) focused() int { return cellAt(c.row, c.col) }

func (c cursor) move(dRow, dCol int) cursor {
	if dRow != 0 {
		c.row = clamp(c.row+dRow, 0, gridRows-1)
	}
	if dCol != 0 {
		cur := keypad[c.focused()]
		if dCol > 0 {
			c.col = clamp(cur.col+cur.span, 0, gridCols-1)
		} else {
			c.col = clamp(cur.col-1, 0, gridCols-1)
		}
		// Land on the start of a wide key.
		c.col = keypad[c.focused()].col
	}
	return c
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
