// Package raster draws display grids as images and exports them.
package raster

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/vector"

	"github.com/coreman2200/ledgrid/internal/bitmap"
	"github.com/coreman2200/ledgrid/internal/layout"
)

// Style carries everything besides the grid that affects the pixels.
type Style struct {
	On      color.RGBA
	Theme   Theme
	Visible bool
	// Background is nil for a transparent canvas.
	Background *color.RGBA
}

// DefaultStyle is green LEDs on the dark theme with a solid background.
func DefaultStyle() Style {
	bg := ThemeDark.Background()
	return Style{
		On:         palette[DefaultColorID].RGBA,
		Theme:      ThemeDark,
		Visible:    true,
		Background: &bg,
	}
}

func (s Style) offColor() color.NRGBA {
	c := s.Theme.OffColor()
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: OffAlpha}
}

// cellMask rasterizes one rounded cell of size×size with corner radius r.
func cellMask(size, r int) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, size, size))
	if size <= 0 {
		return mask
	}
	r = min(r, size/2)
	s, rf := float32(size), float32(r)

	z := vector.NewRasterizer(size, size)
	z.MoveTo(rf, 0)
	z.LineTo(s-rf, 0)
	z.QuadTo(s, 0, s, rf)
	z.LineTo(s, s-rf)
	z.QuadTo(s, s, s-rf, s)
	z.LineTo(rf, s)
	z.QuadTo(0, s, 0, s-rf)
	z.LineTo(0, rf)
	z.QuadTo(0, 0, rf, 0)
	z.ClosePath()
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

// Render draws grid with the cell layout of geo. Cells outside the grid's
// extent are drawn off. With Visible false every cell is drawn off.
func Render(grid *bitmap.Bitmap, geo layout.Geometry, st Style) *image.RGBA {
	dst := image.NewRGBA(geo.Bounds())
	if st.Background != nil {
		draw.Draw(dst, dst.Bounds(), image.NewUniform(*st.Background), image.Point{}, draw.Src)
	}

	mask := cellMask(geo.CellSize, geo.Radius)
	on := image.NewUniform(st.On)
	off := image.NewUniform(st.offColor())

	cols := geo.Grid.Cols
	for i, rect := range geo.BuildLUT() {
		src := off
		if st.Visible && grid.At(i%cols, i/cols) {
			src = on
		}
		draw.DrawMask(dst, rect, src, image.Point{}, mask, image.Point{}, draw.Over)
	}
	return dst
}

// CellImage is one pixel per LED: the on colour for lit cells, black otherwise.
// Display drivers scale it themselves.
func CellImage(grid *bitmap.Bitmap, st Style) *image.RGBA {
	if grid.Empty() {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	img := image.NewRGBA(image.Rect(0, 0, grid.W, grid.H))
	black := color.RGBA{A: 0xff}
	for y := 0; y < grid.H; y++ {
		for x := 0; x < grid.W; x++ {
			if st.Visible && grid.At(x, y) {
				img.SetRGBA(x, y, st.On)
			} else {
				img.SetRGBA(x, y, black)
			}
		}
	}
	return img
}
