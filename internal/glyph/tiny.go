package glyph

import (
	"image/color"
	"sync"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"

	"github.com/coreman2200/ledgrid/internal/bitmap"
)

// cellDisplay is a drivers.Displayer that records lit pixels into a bitmap.
type cellDisplay struct {
	b *bitmap.Bitmap
}

var _ drivers.Displayer = (*cellDisplay)(nil)

func (d *cellDisplay) Size() (x, y int16) { return int16(d.b.W), int16(d.b.H) }

func (d *cellDisplay) SetPixel(x, y int16, c color.RGBA) {
	if c.A == 0 {
		return
	}
	d.b.Set(int(x), int(y), true)
}

func (d *cellDisplay) Display() error { return nil }

// TinyFont renders a tinyfont face (TomThumb by default) into cell bitmaps.
type TinyFont struct {
	id    string
	font  tinyfont.Fonter
	cache sync.Map

	// baseline row and cell height, covering every glyph's extent
	ascent int
	height int
}

func NewTomThumb() *TinyFont {
	return NewTinyFont("tomthumb", &tinyfont.TomThumb)
}

// NewTinyFont sizes the cell from the glyph table so that neither the
// tallest glyph nor the deepest descender is clipped.
func NewTinyFont(id string, font *tinyfont.Font) *TinyFont {
	ascent, descent := 0, 0
	for _, g := range font.Glyphs {
		ascent = max(ascent, -int(g.YOffset))
		descent = max(descent, int(g.YOffset)+int(g.Height))
	}
	height := ascent + descent
	if height <= 0 {
		height = int(font.GetYAdvance())
		ascent = height - 1
	}
	return &TinyFont{id: id, font: font, ascent: ascent, height: height}
}

func (f *TinyFont) ID() string { return f.id }

func (f *TinyFont) Height() int { return f.height }

func (f *TinyFont) Advance() int {
	_, outbox := tinyfont.LineWidth(f.font, "0")
	return max(1, int(outbox))
}

func (f *TinyFont) Glyph(r rune) (*bitmap.Bitmap, bool) {
	if v, ok := f.cache.Load(r); ok {
		if v == nil {
			return nil, false
		}
		return v.(*bitmap.Bitmap).Clone(), true
	}

	_, outbox := tinyfont.LineWidth(f.font, string(r))
	h := f.Height()
	if outbox == 0 || h <= 0 {
		f.cache.Store(r, nil)
		return nil, false
	}
	d := &cellDisplay{b: bitmap.New(int(outbox), h)}
	tinyfont.WriteLine(d, f.font, 0, int16(f.ascent), string(r), color.RGBA{R: 255, G: 255, B: 255, A: 255})
	f.cache.Store(r, d.b)
	return d.b.Clone(), true
}
