package raster

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"
)

// LEDColor is one selectable LED colour.
type LEDColor struct {
	ID   string
	Name string
	RGBA color.RGBA
}

const DefaultColorID = "green"

var palette = map[string]LEDColor{
	"red":   {ID: "red", Name: "Red", RGBA: color.RGBA{0xe6, 0x39, 0x46, 0xff}},
	"green": {ID: "green", Name: "Green", RGBA: color.RGBA{0x2a, 0x9d, 0x4a, 0xff}},
	"blue":  {ID: "blue", Name: "Blue", RGBA: color.RGBA{0x43, 0x61, 0xee, 0xff}},
}

// ColorIDs lists palette ids in cycle order.
func ColorIDs() []string {
	out := make([]string, 0, len(palette))
	for k := range palette {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		return paletteOrder(out[i]) < paletteOrder(out[j])
	})
	return out
}

func paletteOrder(id string) int {
	switch id {
	case "red":
		return 0
	case "green":
		return 1
	default:
		return 2
	}
}

// LookupColor accepts a palette id or "#rrggbb". Anything else falls back to
// the default green, with ok=false.
func LookupColor(s string) (c color.RGBA, ok bool) {
	if lc, found := palette[strings.ToLower(s)]; found {
		return lc.RGBA, true
	}
	if c, err := ParseHex(s); err == nil {
		return c, true
	}
	return palette[DefaultColorID].RGBA, false
}

// ParseHex parses "#rrggbb" or "rrggbb" into an opaque colour.
func ParseHex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("parse colour %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("parse colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// Hex formats c as "#rrggbb".
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Theme selects the off-cell and background colours.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ParseTheme maps unknown values to ThemeDark.
func ParseTheme(s string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, true
	case ThemeDark:
		return ThemeDark, true
	}
	return ThemeDark, false
}

// OffAlpha is the opacity of unlit cells (25 %).
const OffAlpha = 64

func (t Theme) OffColor() color.RGBA {
	if t == ThemeLight {
		return color.RGBA{0xd9, 0xde, 0xe7, 0xff}
	}
	return color.RGBA{0x1e, 0x23, 0x2d, 0xff}
}

func (t Theme) Background() color.RGBA {
	if t == ThemeLight {
		return color.RGBA{0xf4, 0xf6, 0xfa, 0xff}
	}
	return color.RGBA{0x12, 0x15, 0x1c, 0xff}
}
