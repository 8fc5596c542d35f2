// Package colorspec parses OpenSCAD-style color names and hex codes into
// RGBA values, and implements the first-operand color propagation rule
// used when booleans combine differently-colored operands.
package colorspec

import (
	"fmt"
	"strconv"
	"strings"
)

// Modifier mirrors OpenSCAD's debug modifier characters, kept as decorative
// metadata on the color.
type Modifier byte

const (
	ModifierNone       Modifier = 0
	ModifierShowOnly   Modifier = '!'
	ModifierTransparent Modifier = '%'
	ModifierHighlight  Modifier = '#'
	ModifierDisabled   Modifier = '*'
)

// ColorSpec is an RGBA color plus an optional display modifier, propagated
// across booleans from the first operand.
type ColorSpec struct {
	R, G, B, A float64
	Modifier   Modifier
}

var named = buildNamedTable()

// Parse accepts a CSS-style hex code ("#rrggbb" / "#rrggbbaa") or a name
// from the built-in 36-entry named-color table (case-insensitive). The table
// holds common CSS names only; other CSS/OpenSCAD names are not recognized.
func Parse(s string) (ColorSpec, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		return parseHex(s)
	}
	if c, ok := named[strings.ToLower(s)]; ok {
		return c, nil
	}
	return ColorSpec{}, fmt.Errorf("colorspec: unknown color %q", s)
}

func parseHex(s string) (ColorSpec, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 && len(h) != 8 {
		return ColorSpec{}, fmt.Errorf("colorspec: invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h[:6], 16, 32)
	if err != nil {
		return ColorSpec{}, fmt.Errorf("colorspec: invalid hex color %q: %w", s, err)
	}
	c := ColorSpec{
		R: float64((v>>16)&0xff) / 255,
		G: float64((v>>8)&0xff) / 255,
		B: float64(v&0xff) / 255,
		A: 1,
	}
	if len(h) == 8 {
		a, err := strconv.ParseUint(h[6:8], 16, 32)
		if err != nil {
			return ColorSpec{}, fmt.Errorf("colorspec: invalid hex alpha in %q: %w", s, err)
		}
		c.A = float64(a) / 255
	}
	return c, nil
}

// RGBA builds a ColorSpec directly from float components in [0,1].
func RGBA(r, g, b, a float64) ColorSpec {
	return ColorSpec{R: r, G: g, B: b, A: a}
}

// Propagate returns the color a boolean's result should carry: always the
// first operand's color metadata, regardless of the others.
func Propagate(first, _ ColorSpec) ColorSpec {
	return first
}

// Hex renders the color back to "#rrggbb" or "#rrggbbaa" form.
func (c ColorSpec) Hex() string {
	r := clampByte(c.R)
	g := clampByte(c.G)
	b := clampByte(c.B)
	if c.A >= 0.999 {
		return fmt.Sprintf("#%02x%02x%02x", r, g, b)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", r, g, b, clampByte(c.A))
}

func clampByte(f float64) int {
	v := int(f*255 + 0.5)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

func buildNamedTable() map[string]ColorSpec {
	hex := func(h string) ColorSpec {
		c, _ := parseHex(h)
		return c
	}
	// A representative subset of the CSS/OpenSCAD named-color table;
	// extended with more entries as scripts need them.
	return map[string]ColorSpec{
		"black":       hex("#000000"),
		"white":       hex("#ffffff"),
		"red":         hex("#ff0000"),
		"green":       hex("#008000"),
		"lime":        hex("#00ff00"),
		"blue":        hex("#0000ff"),
		"yellow":      hex("#ffff00"),
		"cyan":        hex("#00ffff"),
		"magenta":     hex("#ff00ff"),
		"gray":        hex("#808080"),
		"grey":        hex("#808080"),
		"silver":      hex("#c0c0c0"),
		"orange":      hex("#ffa500"),
		"purple":      hex("#800080"),
		"brown":       hex("#a52a2a"),
		"pink":        hex("#ffc0cb"),
		"gold":        hex("#ffd700"),
		"navy":        hex("#000080"),
		"teal":        hex("#008080"),
		"olive":       hex("#808000"),
		"maroon":      hex("#800000"),
		"indigo":      hex("#4b0082"),
		"violet":      hex("#ee82ee"),
		"coral":       hex("#ff7f50"),
		"salmon":      hex("#fa8072"),
		"khaki":       hex("#f0e68c"),
		"chocolate":   hex("#d2691e"),
		"tomato":      hex("#ff6347"),
		"orchid":      hex("#da70d6"),
		"turquoise":   hex("#40e0d0"),
		"steelblue":   hex("#4682b4"),
		"skyblue":     hex("#87ceeb"),
		"forestgreen": hex("#228b22"),
		"seagreen":    hex("#2e8b57"),
		"slategray":   hex("#708090"),
		"transparent": {R: 0, G: 0, B: 0, A: 0},
	}
}
