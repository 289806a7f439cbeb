package engine

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Step is one press in a replayed tape.
type Step struct {
	Button Button
	State  State
}

// ParseTape reads whitespace-separated button tokens. A '#' starts a comment
// that runs to the end of the line. Runs of digits and '.' such as "12.5"
// expand to one press per character.
func ParseTape(r io.Reader) ([]Button, error) {
	var out []Button
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		for _, tok := range strings.Fields(text) {
			if b, ok := ParseButton(tok); ok {
				out = append(out, b)
				continue
			}
			expanded, ok := expandNumber(tok)
			if !ok {
				return nil, fmt.Errorf("tape line %d: unknown button %q", line, tok)
			}
			out = append(out, expanded...)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read tape: %w", err)
	}
	return out, nil
}

func expandNumber(tok string) ([]Button, bool) {
	out := make([]Button, 0, len(tok))
	for _, r := range tok {
		if r == '.' {
			out = append(out, ButtonDecimal)
			continue
		}
		b, ok := DigitButton(r)
		if !ok {
			return nil, false
		}
		out = append(out, b)
	}
	return out, true
}

// Replay presses each button in order starting from s.
func Replay(s State, buttons []Button) []Step {
	steps := make([]Step, 0, len(buttons))
	for _, b := range buttons {
		s = s.Press(b)
		steps = append(steps, Step{Button: b, State: s})
	}
	return steps
}
