package engine

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseButton(t *testing.T) {
	tests := []struct {
		tok  string
		want Button
	}{
		{"0", Button0},
		{"9", Button9},
		{".", ButtonDecimal},
		{"+", ButtonAdd},
		{"-", ButtonSub},
		{"×", ButtonMul},
		{"*", ButtonMul},
		{"x", ButtonMul},
		{"÷", ButtonDiv},
		{"/", ButtonDiv},
		{"=", ButtonEquals},
		{"AC", ButtonClear},
		{"c", ButtonClear},
		{"DEL", ButtonBackspace},
		{"<-", ButtonBackspace},
		{"+/-", ButtonToggleSign},
		{"neg", ButtonToggleSign},
		{"%", ButtonPercent},
	}
	for _, tt := range tests {
		got, ok := ParseButton(tt.tok)
		if !ok || got != tt.want {
			t.Fatalf("ParseButton(%q) = %v, %v, want %v, true", tt.tok, got, ok, tt.want)
		}
	}

	for _, tok := range []string{"", "12", "sqrt", "+-"} {
		if _, ok := ParseButton(tok); ok {
			t.Fatalf("ParseButton(%q) ok = true, want false", tok)
		}
	}
}

func TestButtonLabels(t *testing.T) {
	for b := Button0; b < buttonCount; b++ {
		if !b.Valid() {
			t.Fatalf("%d.Valid() = false", b)
		}
		got, ok := ParseButton(b.Label())
		if !ok || got != b {
			t.Fatalf("ParseButton(%q) = %v, %v, want %v", b.Label(), got, ok, b)
		}
		for _, r := range b.ASCII() {
			if r > 0x7f {
				t.Fatalf("%v.ASCII() = %q has non-ASCII rune", b, b.ASCII())
			}
		}
	}
	if ButtonNone.Valid() {
		t.Fatalf("ButtonNone.Valid() = true")
	}
}

func TestParseTape(t *testing.T) {
	src := `# add then multiply
12.5 + 3   # comment
= x 2 =
`
	got, err := ParseTape(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseTape: %v", err)
	}
	want := []Button{
		Button1, Button2, ButtonDecimal, Button5, ButtonAdd, Button3,
		ButtonEquals, ButtonMul, Button2, ButtonEquals,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ParseTape mismatch (-want +got):\n%s", diff)
	}

	steps := Replay(New(), got)
	if len(steps) != len(want) {
		t.Fatalf("len(steps) = %d, want %d", len(steps), len(want))
	}
	if d := steps[len(steps)-1].State.Display; d != "31" {
		t.Fatalf("final Display = %q, want %q", d, "31")
	}
	if d := steps[6].State.Display; d != "15.5" {
		t.Fatalf("Display after first '=' = %q, want %q", d, "15.5")
	}
}

func TestParseTapeUnknownToken(t *testing.T) {
	_, err := ParseTape(strings.NewReader("1 +\n2 sqrt\n"))
	if err == nil {
		t.Fatal("ParseTape: expected error")
	}
	if !strings.Contains(err.Error(), "line 2") || !strings.Contains(err.Error(), `"sqrt"`) {
		t.Fatalf("ParseTape error = %q, want line 2 and token", err)
	}
}
