package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"

	"pocketcalc/calcos/tasks/calc"
)

type fileRoot struct {
	Window   *windowBlock   `hcl:"window,block"`
	Headless *headlessBlock `hcl:"headless,block"`
	Theme    *themeBlock    `hcl:"theme,block"`
	Trace    *bool          `hcl:"trace,optional"`
}

type windowBlock struct {
	Title *string `hcl:"title,optional"`
	Scale *int    `hcl:"scale,optional"`
}

type headlessBlock struct {
	Hz *int `hcl:"hz,optional"`
}

type themeBlock struct {
	Remain hcl.Body `hcl:",remain"`
}

// Load reads and decodes the file at path on top of Default.
func Load(path string) (Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(src, path)
}

// Parse decodes HCL source on top of Default. filename is used in
// diagnostics only.
func Parse(src []byte, filename string) (Config, error) {
	cfg := Default()

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", filename, diags)
	}

	ectx := evalContext()
	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, ectx, &root); diags.HasErrors() {
		return Config{}, fmt.Errorf("failed to decode config %s: %w", filename, diags)
	}

	if root.Trace != nil {
		cfg.Trace = *root.Trace
	}
	if w := root.Window; w != nil {
		if w.Title != nil {
			cfg.Window.Title = *w.Title
		}
		if w.Scale != nil {
			if *w.Scale < 1 || *w.Scale > 8 {
				return Config{}, fmt.Errorf("config %s: window.scale %d out of range 1..8", filename, *w.Scale)
			}
			cfg.Window.Scale = *w.Scale
		}
	}
	if h := root.Headless; h != nil && h.Hz != nil {
		if *h.Hz < 1 || *h.Hz > 1000 {
			return Config{}, fmt.Errorf("config %s: headless.hz %d out of range 1..1000", filename, *h.Hz)
		}
		cfg.Headless.Hz = *h.Hz
	}
	if root.Theme != nil {
		if diags := decodeTheme(root.Theme.Remain, ectx, &cfg.Theme); diags.HasErrors() {
			return Config{}, fmt.Errorf("failed to decode theme in %s: %w", filename, diags)
		}
	}
	return cfg, nil
}

func decodeTheme(body hcl.Body, ectx *hcl.EvalContext, theme *Theme) hcl.Diagnostics {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return diags
	}
	fields := themeFields(theme)
	for name, attr := range attrs {
		dst, ok := fields[name]
		if !ok {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unknown theme color",
				Detail:   fmt.Sprintf("The theme has no color named %q.", name),
				Subject:  attr.NameRange.Ptr(),
			})
			continue
		}
		val, vdiags := attr.Expr.Value(ectx)
		diags = append(diags, vdiags...)
		if vdiags.HasErrors() {
			continue
		}
		str, err := convert.Convert(val, cty.String)
		if err != nil || str.IsNull() || !str.IsKnown() {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid theme color",
				Detail:   fmt.Sprintf("Color %q must be a string.", name),
				Subject:  attr.Expr.Range().Ptr(),
			})
			continue
		}
		c, err := ParseHex(str.AsString())
		if err != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid theme color",
				Detail:   err.Error(),
				Subject:  attr.Expr.Range().Ptr(),
			})
			continue
		}
		*dst = c
	}
	return diags
}

func evalContext() *hcl.EvalContext {
	colors := make(map[string]cty.Value, len(calc.Palette))
	for name, c := range calc.Palette {
		colors[name] = cty.StringVal(Hex(c))
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"palette": cty.ObjectVal(colors),
		},
		Functions: map[string]function.Function{
			"rgb": rgbFunc,
		},
	}
}

// rgbFunc builds a "#rrggbb" string from three 0..255 channels.
var rgbFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "r", Type: cty.Number},
		{Name: "g", Type: cty.Number},
		{Name: "b", Type: cty.Number},
	},
	Type: function.StaticReturnType(cty.String),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		var ch [3]int64
		for i, arg := range args {
			bf := arg.AsBigFloat()
			v, acc := bf.Int64()
			if acc != 0 || v < 0 || v > 255 {
				return cty.NilVal, function.NewArgErrorf(i, "channel must be a whole number in 0..255")
			}
			ch[i] = v
		}
		return cty.StringVal(fmt.Sprintf("#%02x%02x%02x", ch[0], ch[1], ch[2])), nil
	},
})
