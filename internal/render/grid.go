package render

import (
	"github.com/coreman2200/ledgrid/internal/bitmap"
	"github.com/coreman2200/ledgrid/internal/content"
	"github.com/coreman2200/ledgrid/internal/layout"
)

// DisplayMode is the time behaviour of the display.
type DisplayMode string

const (
	ModeStatic DisplayMode = "static"
	ModeBlink  DisplayMode = "blink"
	ModeScroll DisplayMode = "scroll"
)

var DisplayModes = []DisplayMode{ModeStatic, ModeBlink, ModeScroll}

// ParseDisplayMode maps unknown values to ModeStatic.
func ParseDisplayMode(s string) DisplayMode {
	for _, m := range DisplayModes {
		if string(m) == s {
			return m
		}
	}
	return ModeStatic
}

// Params is the full input of one display grid computation.
type Params struct {
	Size      layout.GridSize
	Source    content.Source
	Kind      content.Kind
	TextFit   FitMode
	IconFit   FitMode
	Mode      DisplayMode
	Direction Direction
	Offset    int
	Smoothing bool
}

// Fit is the effective fit mode. Scrolling text is always laid out at native
// size; icons and canvases share IconFit.
func (p Params) Fit() FitMode {
	if p.Kind == content.KindText {
		if p.Mode == ModeScroll {
			return FitNative
		}
		return p.TextFit
	}
	return p.IconFit
}

// Scroll is nil unless the display is scrolling.
func (p Params) Scroll() *Scroll {
	if p.Mode != ModeScroll {
		return nil
	}
	return &Scroll{Direction: p.Direction, Offset: p.Offset}
}

// ComputeDisplayGrid maps the source onto a Size.Cols×Size.Rows grid and
// applies smoothing when enabled. It has no side effects; an empty source
// yields an all-off grid.
func ComputeDisplayGrid(p Params) *bitmap.Bitmap {
	rows, cols := p.Size.Rows, p.Size.Cols
	out := bitmap.New(cols, rows)
	src := p.Source.Bitmap
	if out.Empty() || src.Empty() {
		return out
	}

	fit := p.Fit()
	scroll := p.Scroll()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			sr, sc, ok := MapCell(r, c, rows, cols, src.H, src.W, fit, scroll)
			if ok && src.At(sc, sr) {
				out.Set(c, r, true)
			}
		}
	}

	if p.Smoothing {
		return Smooth(out)
	}
	return out
}
