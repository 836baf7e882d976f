package render

import (
	"github.com/coreman2200/ledgrid/internal/bitmap"
	"github.com/coreman2200/ledgrid/internal/layout"
)

// Overlay temporarily replaces the computed grid, e.g. a wiring test
// pattern. Step fills dst and returns false once the overlay has finished;
// dst is then discarded.
type Overlay interface {
	Name() string
	Step(dst *bitmap.Bitmap, size layout.GridSize) bool
}

// PostPipeline groups stages run after the display grid is computed; all
// are optional.
type PostPipeline struct {
	Overlay Overlay
	// OnOverlayDone is called once when the overlay finishes.
	OnOverlayDone func(name string)
}

// apply runs the pipeline on g. The returned bool reports whether the
// overlay finished during this call.
func (p *PostPipeline) apply(g *bitmap.Bitmap, size layout.GridSize) (*bitmap.Bitmap, bool) {
	finished := false
	if p.Overlay != nil {
		dst := bitmap.New(size.Cols, size.Rows)
		if p.Overlay.Step(dst, size) {
			g = dst
		} else {
			finished = true
		}
	}
	return g, finished
}
