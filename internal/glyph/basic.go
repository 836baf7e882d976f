package glyph

import (
	"image"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/coreman2200/ledgrid/internal/bitmap"
)

// coverage at or above this alpha counts as a lit cell.
const alphaThreshold = 0x80

// BasicFont wraps an x/image basicfont face (7x13 by default).
type BasicFont struct {
	id    string
	face  *basicfont.Face
	cache sync.Map // rune -> *bitmap.Bitmap
}

func NewBasicFont() *BasicFont {
	return &BasicFont{id: "7x13", face: basicfont.Face7x13}
}

func (f *BasicFont) ID() string   { return f.id }
func (f *BasicFont) Height() int  { return f.face.Height }
func (f *BasicFont) Advance() int { return f.face.Advance }

func (f *BasicFont) has(r rune) bool {
	for _, rng := range f.face.Ranges {
		if r >= rng.Low && r < rng.High {
			return true
		}
	}
	return false
}

func (f *BasicFont) Glyph(r rune) (*bitmap.Bitmap, bool) {
	if !f.has(r) {
		return nil, false
	}
	if v, ok := f.cache.Load(r); ok {
		return v.(*bitmap.Bitmap).Clone(), true
	}

	w, h := f.face.Advance, f.face.Height
	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	d := font.Drawer{
		Dst:  dst,
		Src:  image.Opaque,
		Face: f.face,
		Dot:  fixed.P(0, f.face.Ascent),
	}
	d.DrawString(string(r))

	b := bitmap.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if dst.AlphaAt(x, y).A >= alphaThreshold {
				b.Set(x, y, true)
			}
		}
	}
	f.cache.Store(r, b)
	return b.Clone(), true
}
