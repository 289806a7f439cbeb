package calc

import (
	"testing"

	"pocketcalc/calcos/engine"
)

func TestKeypadCoversGrid(t *testing.T) {
	for row := 0; row < gridRows; row++ {
		for col := 0; col < gridCols; col++ {
			if cellAt(row, col) < 0 {
				t.Fatalf("cellAt(%d, %d) = -1", row, col)
			}
		}
	}
	if got := keypad[cellAt(4, 1)].button; got != engine.Button0 {
		t.Fatalf("cellAt(4, 1) = %v, want 0", got)
	}
}

func TestCursorMove(t *testing.T) {
	c := cursor{row: 3, col: 1} // "2"
	c = c.move(1, 0)
	if got := keypad[c.focused()].button; got != engine.Button0 {
		t.Fatalf("down from 2 = %v, want 0", got)
	}
	if got := keypad[c.move(-1, 0).focused()].button; got != engine.Button2 {
		t.Fatalf("up from wide 0 = %v, want 2", got)
	}

	c = c.move(0, 1)
	if got := keypad[c.focused()].button; got != engine.ButtonDecimal {
		t.Fatalf("right from 0 = %v, want .", got)
	}
	c = c.move(0, -1)
	if got := keypad[c.focused()].button; got != engine.Button0 || c.col != 0 {
		t.Fatalf("left from . = %v col %d, want 0 col 0", got, c.col)
	}

	c = c.move(0, -1).move(1, 0)
	if got := keypad[c.focused()].button; got != engine.Button0 {
		t.Fatalf("moves past the edge = %v, want 0", got)
	}

	c = cursor{}
	c = c.move(-1, 0).move(0, -1)
	if got := keypad[c.focused()].button; got != engine.ButtonClear {
		t.Fatalf("top-left clamp = %v, want AC", got)
	}
}
