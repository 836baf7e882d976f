package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/ledgrid/internal/bitmap"
	"github.com/coreman2200/ledgrid/internal/content"
	"github.com/coreman2200/ledgrid/internal/layout"
)

var adapter = content.NewAdapter(nil)

func single8x8() layout.GridSize {
	return layout.Resolve(layout.ModuleTypeOrDefault("MAX7219_8X8"), 1, layout.Square)
}

func textParams(s string) Params {
	return Params{
		Size:    single8x8(),
		Source:  adapter.Resolve(content.Content{Kind: content.KindText, Text: s}),
		Kind:    content.KindText,
		TextFit: FitFill,
		IconFit: FitFill,
		Mode:    ModeStatic,
	}
}

func TestComputeDisplayGridHIFill(t *testing.T) {
	p := textParams("HI")
	src := p.Source.Bitmap
	require.Equal(t, 11, src.W)
	require.Equal(t, 7, src.H)

	g := ComputeDisplayGrid(p)
	require.Equal(t, 8, g.W)
	require.Equal(t, 8, g.H)

	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			want := src.At(c*11/8, r*7/8)
			assert.Equal(t, want, g.At(c, r), "cell %d,%d", r, c)
		}
	}
	assert.True(t, g.At(0, 0))
	assert.True(t, g.At(7, 7))
	assert.False(t, g.At(2, 3))
}

func TestComputeDisplayGridEmptySource(t *testing.T) {
	p := textParams("")
	g := ComputeDisplayGrid(p)
	assert.Equal(t, 8, g.W)
	assert.Equal(t, 0, g.Count())

	p = Params{Size: single8x8(), Kind: content.KindIcon, Source: adapter.Resolve(content.Content{Kind: content.KindIcon, IconID: "nope"})}
	assert.Equal(t, 0, ComputeDisplayGrid(p).Count())
}

func TestComputeDisplayGridIconUsesIconFit(t *testing.T) {
	size := layout.Resolve(layout.ModuleTypeOrDefault("MAX7219_8X8"), 4, layout.Row)
	p := Params{
		Size:    size,
		Source:  adapter.Resolve(content.Content{Kind: content.KindIcon, IconID: "heart"}),
		Kind:    content.KindIcon,
		TextFit: FitFill,
		IconFit: FitNative,
	}
	g := ComputeDisplayGrid(p)
	// the heart sits centred in columns 12..19
	for c := 0; c < 32; c++ {
		col := 0
		for r := 0; r < 8; r++ {
			if g.At(c, r) {
				col++
			}
		}
		if c < 12 || c >= 20 {
			assert.Zero(t, col, "column %d", c)
		}
	}
	assert.Equal(t, p.Source.Bitmap.Count(), g.Count())
}

func TestComputeDisplayGridCanvasSharesIconFit(t *testing.T) {
	canvas := content.NewCanvas()
	canvas.Set(0, 0, true)
	p := Params{
		Size:    layout.Resolve(layout.ModuleTypeOrDefault("MAX7219_8X8"), 4, layout.Square),
		Source:  adapter.Resolve(content.Content{Kind: content.KindCanvas, Canvas: canvas}),
		Kind:    content.KindCanvas,
		TextFit: FitNative,
		IconFit: FitFill,
	}
	g := ComputeDisplayGrid(p)
	// fill doubles the single pixel into a 2×2 block
	assert.Equal(t, 4, g.Count())
	assert.True(t, g.At(1, 1))
}

func TestTextScrollIgnoresTextFit(t *testing.T) {
	p := textParams("HI")
	p.Mode = ModeScroll
	p.Direction = Left
	p.Offset = 0
	assert.Equal(t, FitNative, p.Fit())

	g := ComputeDisplayGrid(p)
	src := p.Source.Bitmap
	// native alignment: no centring since the text is wider than the grid;
	// row 7 is below the 7-row source
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			want := r < 7 && src.At(c, r)
			assert.Equal(t, want, g.At(c, r), "cell %d,%d", r, c)
		}
	}

	p.Offset = 3
	g = ComputeDisplayGrid(p)
	for r := 0; r < 7; r++ {
		for c := 0; c < 8; c++ {
			assert.Equal(t, src.At((c+3)%11, r), g.At(c, r))
		}
	}
}

func TestOffsetIgnoredUnlessScrolling(t *testing.T) {
	p := textParams("HI")
	a := ComputeDisplayGrid(p)
	p.Offset = 5
	b := ComputeDisplayGrid(p)
	assert.True(t, a.Equal(b))
	assert.Nil(t, p.Scroll())

	p.Mode = ModeBlink
	assert.True(t, a.Equal(ComputeDisplayGrid(p)))
}

func TestComputeDisplayGridSmoothing(t *testing.T) {
	src := bitmap.Parse(`
#...
##..
.##.
..##
`)
	p := Params{
		Size:    layout.GridSize{Cols: 4, Rows: 4, LayoutCols: 1, LayoutRows: 1},
		Source:  content.Source{Bitmap: src, Width: 4, Height: 4},
		Kind:    content.KindCanvas,
		IconFit: FitFill,
	}
	plain := ComputeDisplayGrid(p)
	assert.True(t, plain.Equal(src))

	p.Smoothing = true
	smooth := ComputeDisplayGrid(p)
	assert.True(t, plain.Subset(smooth))
	assert.Greater(t, smooth.Count(), plain.Count())
}

func TestComputeDisplayGridIsPure(t *testing.T) {
	p := textParams("HELLO")
	p.Mode = ModeScroll
	p.Offset = 7
	before := p.Source.Bitmap.Clone()
	a := ComputeDisplayGrid(p)
	b := ComputeDisplayGrid(p)
	assert.True(t, a.Equal(b))
	assert.True(t, before.Equal(p.Source.Bitmap))
}
