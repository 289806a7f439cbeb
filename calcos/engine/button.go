package engine

import "strings"

// Button identifies one keypad button.
type Button uint8

const (
	ButtonNone Button = iota
	Button0
	Button1
	Button2
	Button3
	Button4
	Button5
	Button6
	Button7
	Button8
	Button9
	ButtonDecimal
	ButtonAdd
	ButtonSub
	ButtonMul
	ButtonDiv
	ButtonEquals
	ButtonClear
	ButtonBackspace
	ButtonToggleSign
	ButtonPercent

	buttonCount
)

// DigitButton returns the button for digit d ('0'..'9').
func DigitButton(d rune) (Button, bool) {
	if d < '0' || d > '9' {
		return ButtonNone, false
	}
	return Button0 + Button(d-'0'), true
}

// Valid reports whether b names a real button.
func (b Button) Valid() bool { return b > ButtonNone && b < buttonCount }

// Digit returns the digit rune for digit buttons.
func (b Button) Digit() (rune, bool) {
	if b < Button0 || b > Button9 {
		return 0, false
	}
	return '0' + rune(b-Button0), true
}

// Op returns the operator for operator buttons.
func (b Button) Op() Op {
	switch b {
	case ButtonAdd:
		return OpAdd
	case ButtonSub:
		return OpSub
	case ButtonMul:
		return OpMul
	case ButtonDiv:
		return OpDiv
	default:
		return OpNone
	}
}

// Label is the button caption.
func (b Button) Label() string {
	if d, ok := b.Digit(); ok {
		return string(d)
	}
	if op := b.Op(); op != OpNone {
		return op.String()
	}
	switch b {
	case ButtonDecimal:
		return "."
	case ButtonEquals:
		return "="
	case ButtonClear:
		return "AC"
	case ButtonBackspace:
		return "⌫"
	case ButtonToggleSign:
		return "+/-"
	case ButtonPercent:
		return "%"
	default:
		return "?"
	}
}

// ASCII is Label restricted to 7-bit characters.
func (b Button) ASCII() string {
	if op := b.Op(); op != OpNone {
		return op.ASCII()
	}
	if b == ButtonBackspace {
		return "DEL"
	}
	return b.Label()
}

func (b Button) String() string { return b.Label() }

// ParseButton maps a token to a button. Word tokens are case-insensitive.
func ParseButton(tok string) (Button, bool) {
	switch tok {
	case ".":
		return ButtonDecimal, true
	case "+":
		return ButtonAdd, true
	case "-":
		return ButtonSub, true
	case "×", "*", "x", "X":
		return ButtonMul, true
	case "÷", "/":
		return ButtonDiv, true
	case "=":
		return ButtonEquals, true
	case "⌫", "<-":
		return ButtonBackspace, true
	case "+/-", "±":
		return ButtonToggleSign, true
	case "%":
		return ButtonPercent, true
	}
	if len(tok) == 1 {
		if b, ok := DigitButton(rune(tok[0])); ok {
			return b, true
		}
	}
	switch strings.ToLower(tok) {
	case "ac", "c", "clear":
		return ButtonClear, true
	case "del", "bs", "backspace":
		return ButtonBackspace, true
	case "neg", "sign":
		return ButtonToggleSign, true
	}
	return ButtonNone, false
}

// Press applies the action bound to b.
func (s State) Press(b Button) State {
	if d, ok := b.Digit(); ok {
		return s.Digit(d)
	}
	if op := b.Op(); op != OpNone {
		return s.Operator(op)
	}
	switch b {
	case ButtonDecimal:
		return s.Decimal()
	case ButtonEquals:
		return s.Equals()
	case ButtonClear:
		return s.Clear()
	case ButtonBackspace:
		return s.Backspace()
	case ButtonToggleSign:
		return s.ToggleSign()
	case ButtonPercent:
		return s.Percent()
	}
	return s
}
