package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"pocketcalc/calcos/tasks/calc"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Window.Scale != 2 || cfg.Headless.Hz != 60 || cfg.Trace {
		t.Fatalf("Default() = %+v", cfg)
	}
	if want := (color.RGBA{R: 0xF5, G: 0x9E, B: 0x0B, A: 0xFF}); cfg.Theme.Operator != want {
		t.Fatalf("Operator = %v, want %v", cfg.Theme.Operator, want)
	}
}

func TestDefaultThemeIsWidgetDefault(t *testing.T) {
	if diff := cmp.Diff(calc.DefaultTheme(), Default().Theme); diff != "" {
		t.Fatalf("theme mismatch (-widget +config):\n%s", diff)
	}
}

func TestPaletteVariablesMatchWidgetPalette(t *testing.T) {
	for name, want := range calc.Palette {
		cfg, err := Parse([]byte("theme {\n  focus = palette."+name+"\n}\n"), "palette.hcl")
		if err != nil {
			t.Fatalf("palette.%s: %v", name, err)
		}
		if cfg.Theme.Focus != want {
			t.Fatalf("palette.%s = %v, want %v", name, cfg.Theme.Focus, want)
		}
	}
}

func TestHex(t *testing.T) {
	c := color.RGBA{R: 0xF5, G: 0x9E, B: 0x0B, A: 0xFF}
	if got := Hex(c); got != "#f59e0b" {
		t.Fatalf("Hex() = %q, want %q", got, "#f59e0b")
	}
	back, err := ParseHex(Hex(c))
	if err != nil || back != c {
		t.Fatalf("ParseHex(Hex(c)) = %v, %v", back, err)
	}
}

func TestParse(t *testing.T) {
	src := `
trace = true

window {
  title = "calc"
  scale = 3
}

headless {
  hz = 120
}

theme {
  operator        = palette.green500
  operator_active = rgb(255, 0, 16)
  focus           = "#fff"
}
`
	got, err := Parse([]byte(src), "test.hcl")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := Default()
	want.Trace = true
	want.Window = Window{Title: "calc", Scale: 3}
	want.Headless.Hz = 120
	want.Theme.Operator = color.RGBA{R: 0x22, G: 0xC5, B: 0x5E, A: 0xFF}
	want.Theme.OperatorActive = color.RGBA{R: 0xFF, G: 0x00, B: 0x10, A: 0xFF}
	want.Theme.Focus = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"syntax", `window {`, "failed to parse"},
		{"unknown block", `keys { }`, "failed to decode"},
		{"scale range", `window { scale = 0 }`, "window.scale"},
		{"hz range", `headless { hz = 5000 }`, "headless.hz"},
		{"unknown color", `theme { sparkle = "#fff" }`, "Unknown theme color"},
		{"bad hex", `theme { text = "fff" }`, "missing leading"},
		{"bad channel", `theme { text = rgb(300, 0, 0) }`, "0..255"},
		{"not a string", `theme { text = [1] }`, "must be a string"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "bad.hcl")
			if err == nil {
				t.Fatal("Parse: expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Parse error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pocketcalc.hcl")
	if err := os.WriteFile(path, []byte("trace = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Trace {
		t.Fatal("Trace = false, want true")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.hcl")); err == nil {
		t.Fatal("Load(missing): expected error")
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#1f2937", color.RGBA{R: 0x1F, G: 0x29, B: 0x37, A: 0xFF}},
		{"#ABC", color.RGBA{R: 0xAA, G: 0xBB, B: 0xCC, A: 0xFF}},
		{" #000000 ", color.RGBA{A: 0xFF}},
	}
	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		if err != nil || got != tt.want {
			t.Fatalf("ParseHex(%q) = %v, %v, want %v", tt.in, got, err, tt.want)
		}
	}
	for _, in := range []string{"", "#12", "#12345g", "123456"} {
		if _, err := ParseHex(in); err == nil {
			t.Fatalf("ParseHex(%q): expected error", in)
		}
	}
}
