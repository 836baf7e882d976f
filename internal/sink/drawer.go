package sink

import (
	"fmt"
	"image"

	"periph.io/x/conn/v3/display"

	"github.com/coreman2200/ledgrid/internal/raster"
	"github.com/coreman2200/ledgrid/internal/render"
)

// resizer is implemented by drawers whose size follows the grid.
type resizer interface {
	Resize(w, h int)
}

// DrawerSink writes each frame to a display.Drawer as a one pixel per LED
// image. Frames larger than the drawer are cropped at the bottom right.
type DrawerSink struct {
	d display.Drawer
}

func NewDrawerSink(d display.Drawer) *DrawerSink { return &DrawerSink{d: d} }

func (s *DrawerSink) Write(f render.Frame) error {
	if r, ok := s.d.(resizer); ok {
		r.Resize(f.Size.Cols, f.Size.Rows)
	}
	img := raster.CellImage(f.Grid, raster.Style{On: f.Color, Visible: f.Visible})
	if err := s.d.Draw(s.d.Bounds(), img, image.Point{}); err != nil {
		return fmt.Errorf("%s: %w", s.d, err)
	}
	return nil
}

// Halt halts the underlying drawer.
func (s *DrawerSink) Halt() error { return s.d.Halt() }
