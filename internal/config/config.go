// Package config loads the optional host configuration file.
//
// The file is HCL:
//
//	window {
//	  title = "pocketcalc"
//	  scale = 2
//	}
//	headless {
//	  hz = 60
//	}
//	trace = true
//	theme {
//	  operator        = palette.amber500
//	  operator_active = rgb(251, 191, 36)
//	}
//
// Theme colors are "#rrggbb" or "#rgb" strings. Expressions may use the
// palette object and the rgb function.
package config

import (
	"image/color"

	"pocketcalc/calcos/tasks/calc"
)

// Config is the resolved host configuration.
type Config struct {
	Window   Window
	Headless Headless
	Trace    bool
	Theme    Theme
}

type Window struct {
	Title string
	Scale int
}

type Headless struct {
	Hz int
}

// Theme is the calculator widget's color set.
type Theme = calc.Theme

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Window:   Window{Title: "pocketcalc", Scale: 2},
		Headless: Headless{Hz: 60},
		Theme:    calc.DefaultTheme(),
	}
}

// themeFields maps attribute names in the theme block to their field.
func themeFields(t *Theme) map[string]*color.RGBA {
	return map[string]*color.RGBA{
		"background":      &t.Background,
		"panel":           &t.Panel,
		"text":            &t.Text,
		"pending":         &t.Pending,
		"function":        &t.Function,
		"digit":           &t.Digit,
		"operator":        &t.Operator,
		"operator_active": &t.OperatorActive,
		"active_text":     &t.ActiveText,
		"focus":           &t.Focus,
	}
}
