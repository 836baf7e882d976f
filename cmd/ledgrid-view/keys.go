package main

import (
	"image"

	"github.com/coreman2200/ledgrid/internal/app"
	"github.com/coreman2200/ledgrid/internal/content"
	"github.com/coreman2200/ledgrid/internal/layout"
	"github.com/coreman2200/ledgrid/internal/raster"
	"github.com/coreman2200/ledgrid/internal/render"
)

// next returns the element after cur in list, wrapping around. Unknown
// values restart at the first element.
func next[T comparable](list []T, cur T) T {
	for i, v := range list {
		if v == cur {
			return list[(i+1)%len(list)]
		}
	}
	return list[0]
}

// action is one keyboard command.
type action func(c *app.Core)

var actions = map[rune]action{
	'm': func(c *app.Core) { c.SetMode(next(render.DisplayModes, c.Eng.Settings().Mode)) },
	'f': func(c *app.Core) { c.Eng.SetIconFit(next(render.FitModes, c.Eng.Settings().IconFit)) },
	'g': func(c *app.Core) { c.Eng.SetTextFit(next(render.FitModes, c.Eng.Settings().TextFit)) },
	'd': func(c *app.Core) { c.Eng.SetDirection(next(render.Directions, c.Eng.Settings().Direction)) },
	's': func(c *app.Core) { c.Eng.SetSmoothing(!c.Eng.Settings().Smoothing) },
	'c': func(c *app.Core) { c.Eng.SetColor(next(raster.ColorIDs(), c.Eng.Settings().Color)) },
	'k': func(c *app.Core) { c.Eng.SetKind(next(content.Kinds, c.Eng.Settings().Content.Kind)) },
	't': func(c *app.Core) { c.SetTheme(next([]raster.Theme{raster.ThemeDark, raster.ThemeLight}, c.Theme())) },
	'a': func(c *app.Core) {
		c.Eng.SetArrangement(next(layout.Arrangements, c.Eng.Settings().Arrangement))
	},
	'+': func(c *app.Core) { c.Eng.SetCount(c.Eng.Settings().Count + 1) },
	'=': func(c *app.Core) { c.Eng.SetCount(c.Eng.Settings().Count + 1) },
	'-': func(c *app.Core) { c.Eng.SetCount(c.Eng.Settings().Count - 1) },
	'e': func(c *app.Core) { _ = c.Export("") },
	'x': func(c *app.Core) { c.Eng.ClearCanvas() },
	'p': func(c *app.Core) { _ = c.RunPattern("cell_sweep") },
}

// handleKey runs the command bound to r, if any.
func handleKey(c *app.Core, r rune) bool {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	a, ok := actions[r]
	if !ok {
		return false
	}
	a(c)
	return true
}

// canvasCell maps a click at p (image coordinates) to the canvas cell that
// feeds the LED under it.
func canvasCell(eng *render.Engine, geo layout.Geometry, lut []image.Rectangle, p image.Point) (x, y int, ok bool) {
	row, col, ok := geo.CellAt(lut, p)
	if !ok {
		return 0, 0, false
	}
	return eng.CanvasCell(row, col)
}
