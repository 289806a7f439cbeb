package engine

import "strings"

// Op is a pending binary operator.
type Op uint8

const (
	OpNone Op = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
)

// Ops lists the operators in keypad order.
var Ops = [...]Op{OpDiv, OpMul, OpSub, OpAdd}

func (o Op) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "×"
	case OpDiv:
		return "÷"
	default:
		return ""
	}
}

// ASCII returns a 7-bit label for fonts without × and ÷ glyphs.
func (o Op) ASCII() string {
	switch o {
	case OpMul:
		return "x"
	case OpDiv:
		return "/"
	default:
		return o.String()
	}
}

// State is the complete calculator state.
type State struct {
	// Display is the entry buffer. It is never empty.
	Display string
	// Previous is the left operand of the pending operation. Empty means no
	// operation is pending.
	Previous string
	// Op is the pending operator.
	Op Op
	// ResetDisplay makes the next digit start a fresh operand.
	ResetDisplay bool
}

// New returns the initial state.
func New() State {
	return State{Display: "0"}
}

// Digit enters one decimal digit. Runes outside '0'..'9' are ignored.
func (s State) Digit(d rune) State {
	if d < '0' || d > '9' {
		return s
	}
	if s.Display == "0" || s.ResetDisplay {
		s.Display = string(d)
		s.ResetDisplay = false
		return s
	}
	s.Display += string(d)
	return s
}

// Decimal inserts a decimal point unless the display already has one.
func (s State) Decimal() State {
	if s.ResetDisplay {
		s.Display = "0."
		s.ResetDisplay = false
		return s
	}
	if !strings.Contains(s.Display, ".") {
		s.Display += "."
	}
	return s
}

// Operator chooses op as the pending operation, resolving the previous one
// first when a new operand has been typed since.
func (s State) Operator(op Op) State {
	if op == OpNone {
		return s
	}
	if s.Previous != "" && s.Op != OpNone && !s.ResetDisplay {
		result := s.Evaluate()
		s.Previous = result
		s.Display = result
	} else {
		s.Previous = s.Display
	}
	s.Op = op
	s.ResetDisplay = true
	return s
}

// Equals resolves the pending operation. Without one it does nothing.
func (s State) Equals() State {
	if s.Previous == "" || s.Op == OpNone {
		return s
	}
	s.Display = s.Evaluate()
	s.Previous = ""
	s.Op = OpNone
	s.ResetDisplay = true
	return s
}

// Evaluate applies the pending operation to Previous and Display and returns
// the formatted result. With no operation it returns Display unchanged.
func (s State) Evaluate() string {
	prevStr := s.Previous
	if prevStr == "" {
		prevStr = "0"
	}
	prev := parseNumber(prevStr)
	cur := parseNumber(s.Display)

	var result float64
	switch s.Op {
	case OpAdd:
		result = prev + cur
	case OpSub:
		result = prev - cur
	case OpMul:
		result = prev * cur
	case OpDiv:
		result = prev / cur
	default:
		return s.Display
	}
	return formatResult(result)
}

// Clear resets every field.
func (s State) Clear() State {
	return New()
}

// Backspace drops the last character, falling back to "0".
func (s State) Backspace() State {
	n := len(s.Display)
	if n == 1 || (n == 2 && s.Display[0] == '-') {
		s.Display = "0"
		return s
	}
	s.Display = trimLastRune(s.Display)
	return s
}

// ToggleSign flips the sign of the display. "0" is left alone.
func (s State) ToggleSign() State {
	if s.Display == "0" {
		return s
	}
	if strings.HasPrefix(s.Display, "-") {
		s.Display = s.Display[1:]
	} else {
		s.Display = "-" + s.Display
	}
	return s
}

// Percent divides the display by 100.
//
// The quotient uses the raw shortest conversion, not the 8-digit result
// format used by Evaluate.
func (s State) Percent() State {
	s.Display = formatRaw(parseNumber(s.Display) / 100)
	return s
}

// Pending returns the secondary readout ("12 +"), or "" when nothing is
// pending.
func (s State) Pending() string {
	if s.Previous == "" {
		return ""
	}
	return s.Previous + " " + s.Op.String()
}

// PendingASCII is Pending with the operator in 7-bit form ("12 x").
func (s State) PendingASCII() string {
	if s.Previous == "" {
		return ""
	}
	return s.Previous + " " + s.Op.ASCII()
}

// IsActive reports whether op is the pending operator.
func (s State) IsActive(op Op) bool {
	return op != OpNone && s.Op == op
}

func trimLastRune(s string) string {
	if s == "" {
		return s
	}
	i := len(s) - 1
	// Display strings are ASCII in practice; keep multi-byte runes whole anyway.
	for i > 0 && s[i]&0xC0 == 0x80 {
		i--
	}
	return s[:i]
}
