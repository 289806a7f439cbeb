package calc

import "image/color"

// Theme holds every color the widget draws with.
type Theme struct {
	Background     color.RGBA
	Panel          color.RGBA
	Text           color.RGBA
	Pending        color.RGBA
	Function       color.RGBA
	Digit          color.RGBA
	Operator       color.RGBA
	OperatorActive color.RGBA
	ActiveText     color.RGBA
	Focus          color.RGBA
}

func rgb(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}
}

// Palette is the set of named colors themes are built from. Config files
// see it as palette.<name>.
var Palette = map[string]color.RGBA{
	"white":    rgb(0xffffff),
	"black":    rgb(0x000000),
	"gray400":  rgb(0x9ca3af),
	"gray700":  rgb(0x374151),
	"gray800":  rgb(0x1f2937),
	"gray900":  rgb(0x111827),
	"amber400": rgb(0xfbbf24),
	"amber500": rgb(0xf59e0b),
	"blue400":  rgb(0x60a5fa),
	"green500": rgb(0x22c55e),
	"red500":   rgb(0xef4444),
}

// DefaultTheme is the dark slate and amber scheme.
func DefaultTheme() Theme {
	return Theme{
		Background:     Palette["gray900"],
		Panel:          Palette["gray800"],
		Text:           Palette["white"],
		Pending:        Palette["gray400"],
		Function:       Palette["gray700"],
		Digit:          Palette["gray800"],
		Operator:       Palette["amber500"],
		OperatorActive: Palette["amber400"],
		ActiveText:     Palette["gray900"],
		Focus:          Palette["blue400"],
	}
}
