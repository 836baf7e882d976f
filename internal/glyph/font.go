// Package glyph supplies the bitmap fonts used to rasterize text content.
package glyph

import (
	"sort"
	"unicode"

	"github.com/coreman2200/ledgrid/internal/bitmap"
)

// Font is a fixed-height bitmap font.
type Font interface {
	ID() string
	Height() int
	// Advance is the cell width used for characters the font cannot draw.
	Advance() int
	Glyph(r rune) (*bitmap.Bitmap, bool)
}

const DefaultFontID = "5x7"

// Registry maps font ids to fonts.
type Registry struct{ m map[string]Font }

func NewRegistry() *Registry { return &Registry{m: map[string]Font{}} }

// DefaultRegistry holds the built-in 5x7 table plus the 7x13 and TomThumb faces.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(Font5x7)
	r.Register(NewBasicFont())
	r.Register(NewTomThumb())
	return r
}

func (r *Registry) Register(f Font) {
	if f == nil {
		return
	}
	r.m[f.ID()] = f
}

// Get falls back to the 5x7 font for unknown ids.
func (r *Registry) Get(id string) Font {
	if f, ok := r.m[id]; ok {
		return f
	}
	if f, ok := r.m[DefaultFontID]; ok {
		return f
	}
	return Font5x7
}

func (r *Registry) Has(id string) bool {
	_, ok := r.m[id]
	return ok
}

func (r *Registry) List() []string {
	out := make([]string, 0, len(r.m))
	for k := range r.m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Lookup tries r, then its upper-case form.
func Lookup(f Font, r rune) (*bitmap.Bitmap, bool) {
	if g, ok := f.Glyph(r); ok {
		return g, true
	}
	if u := unicode.ToUpper(r); u != r {
		return f.Glyph(u)
	}
	return nil, false
}

// RenderText concatenates glyphs left to right with spacing blank columns
// between characters. Unknown characters become blank cells of the font's
// advance width. An empty string yields nil.
func RenderText(f Font, s string, spacing int) *bitmap.Bitmap {
	runes := []rune(s)
	if len(runes) == 0 || f == nil {
		return nil
	}
	spacing = max(0, spacing)
	h := f.Height()

	cells := make([]*bitmap.Bitmap, len(runes))
	w := 0
	for i, r := range runes {
		g, ok := Lookup(f, r)
		if !ok || g.Empty() {
			g = bitmap.New(f.Advance(), h)
		}
		cells[i] = g
		w += g.W
	}
	w += spacing * (len(runes) - 1)

	out := bitmap.New(w, h)
	if out.Empty() {
		return nil
	}
	x := 0
	for _, g := range cells {
		for gy := 0; gy < g.H && gy < h; gy++ {
			for gx := 0; gx < g.W; gx++ {
				if g.At(gx, gy) {
					out.Set(x+gx, gy, true)
				}
			}
		}
		x += g.W + spacing
	}
	return out
}
