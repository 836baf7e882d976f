// Package content normalizes text, icon and canvas sources into one bitmap.
package content

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/coreman2200/ledgrid/internal/bitmap"
	"github.com/coreman2200/ledgrid/internal/glyph"
	"github.com/coreman2200/ledgrid/internal/icon"
)

type Kind string

const (
	KindText   Kind = "text"
	KindIcon   Kind = "icon"
	KindCanvas Kind = "canvas"
)

var Kinds = []Kind{KindText, KindIcon, KindCanvas}

const (
	MaxTextLen = 32
	CanvasSize = 8
	// CharSpacing is the blank column count between rendered characters.
	CharSpacing = 1
)

// ParseKind reports false for unknown kinds.
func ParseKind(s string) (Kind, bool) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindText, KindIcon, KindCanvas:
		return k, true
	}
	return "", false
}

// Content is the user's current selection. Only the field matching Kind is read.
type Content struct {
	Kind   Kind
	Text   string
	FontID string
	IconID string
	Canvas *bitmap.Bitmap
}

func (c Content) Clone() Content {
	c.Canvas = c.Canvas.Clone()
	return c
}

// Source is a normalized bitmap. Bitmap is nil when there is nothing to draw,
// and then Width and Height are zero.
type Source struct {
	Bitmap *bitmap.Bitmap
	Width  int
	Height int
}

func (s Source) Empty() bool { return s.Bitmap == nil }

func sourceOf(b *bitmap.Bitmap) Source {
	if b.Empty() {
		return Source{}
	}
	return Source{Bitmap: b, Width: b.W, Height: b.H}
}

// Adapter resolves Content to a Source.
type Adapter struct {
	fonts   *glyph.Registry
	Spacing int
}

func NewAdapter(fonts *glyph.Registry) *Adapter {
	if fonts == nil {
		fonts = glyph.DefaultRegistry()
	}
	return &Adapter{fonts: fonts, Spacing: CharSpacing}
}

// Resolve never fails: unknown kinds, icons, empty text and empty canvases
// all resolve to an empty Source.
func (a *Adapter) Resolve(c Content) Source {
	switch c.Kind {
	case KindIcon:
		b, ok := icon.Lookup(c.IconID)
		if !ok {
			return Source{}
		}
		return sourceOf(b)
	case KindCanvas:
		return sourceOf(c.Canvas.Clone())
	case KindText:
		t := ClampText(c.Text)
		if t == "" {
			return Source{}
		}
		return sourceOf(glyph.RenderText(a.fonts.Get(c.FontID), t, a.Spacing))
	}
	return Source{}
}

// ClampText composes s (NFC), so an accent typed as a combining mark counts
// as one character, and keeps at most MaxTextLen runes.
func ClampText(s string) string {
	s = norm.NFC.String(s)
	r := []rune(s)
	if len(r) <= MaxTextLen {
		return s
	}
	return string(r[:MaxTextLen])
}

// NewCanvas returns an empty 8×8 drawing surface.
func NewCanvas() *bitmap.Bitmap { return bitmap.New(CanvasSize, CanvasSize) }

// ParseCanvas reads '#'/'.' rows, as stored in configuration files.
func ParseCanvas(rows []string) *bitmap.Bitmap {
	if len(rows) == 0 {
		return NewCanvas()
	}
	return bitmap.Parse(strings.Join(rows, "\n"))
}

// CanvasRows is the inverse of ParseCanvas.
func CanvasRows(b *bitmap.Bitmap) []string {
	if b.Empty() {
		return nil
	}
	return strings.Split(b.String(), "\n")
}
