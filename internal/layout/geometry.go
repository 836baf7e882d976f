package layout

import (
	"image"
	"math"
)

const (
	CellGap     = 1
	ModuleGap   = 6
	PreviewSize = 400
	MinCellSize = 2
)

// Geometry places every LED cell of a grid on a pixel canvas, keeping the
// module gaps used by the interactive preview.
type Geometry struct {
	Grid      GridSize
	CellSize  int
	Gap       int
	ModuleGap int
	Radius    int
}

// NewGeometry fits the grid into the preview box. cellSize > 0 overrides the
// computed size (never below MinCellSize).
func NewGeometry(g GridSize, cellSize int) Geometry {
	geo := Geometry{Grid: g, Gap: CellGap, ModuleGap: ModuleGap}
	if cellSize > 0 {
		geo.CellSize = max(MinCellSize, cellSize)
	} else {
		geo.CellSize = fitCellSize(g)
	}
	geo.Radius = max(1, geo.CellSize/8)
	return geo
}

func fitCellSize(g GridSize) int {
	if g.Cols <= 0 || g.Rows <= 0 {
		return MinCellSize
	}
	availW := float64(PreviewSize)
	availH := float64(PreviewSize)
	if g.Multi() {
		availW -= float64((g.LayoutCols - 1) * ModuleGap)
		availH -= float64((g.LayoutRows - 1) * ModuleGap)
	}
	maxW := (availW - float64(CellGap*(g.Cols-1))) / float64(g.Cols)
	maxH := (availH - float64(CellGap*(g.Rows-1))) / float64(g.Rows)
	return max(MinCellSize, int(math.Floor(math.Min(maxW, maxH))))
}

func (geo Geometry) pitch() int { return geo.CellSize + geo.Gap }

// ModuleWidth is the pixel width of one module block.
func (geo Geometry) ModuleWidth() int {
	return geo.Grid.ModuleCols()*geo.pitch() - geo.Gap
}

func (geo Geometry) ModuleHeight() int {
	return geo.Grid.ModuleRows()*geo.pitch() - geo.Gap
}

// Width is the full canvas width in pixels.
func (geo Geometry) Width() int {
	lc := max(1, geo.Grid.LayoutCols)
	return lc*geo.ModuleWidth() + (lc-1)*geo.ModuleGap
}

func (geo Geometry) Height() int {
	lr := max(1, geo.Grid.LayoutRows)
	return lr*geo.ModuleHeight() + (lr-1)*geo.ModuleGap
}

func (geo Geometry) Bounds() image.Rectangle {
	return image.Rect(0, 0, geo.Width(), geo.Height())
}

// CellRect returns the pixel rectangle of LED (row, col).
func (geo Geometry) CellRect(row, col int) image.Rectangle {
	mc, mr := geo.Grid.ModuleCols(), geo.Grid.ModuleRows()
	if mc <= 0 || mr <= 0 {
		return image.Rectangle{}
	}
	lx, ly := col/mc, row/mr
	dc, dr := col%mc, row%mr
	x := lx*(geo.ModuleWidth()+geo.ModuleGap) + dc*geo.pitch()
	y := ly*(geo.ModuleHeight()+geo.ModuleGap) + dr*geo.pitch()
	return image.Rect(x, y, x+geo.CellSize, y+geo.CellSize)
}

// BuildLUT returns every cell rectangle in row-major order.
func (geo Geometry) BuildLUT() []image.Rectangle {
	out := make([]image.Rectangle, 0, geo.Grid.Count())
	for r := 0; r < geo.Grid.Rows; r++ {
		for c := 0; c < geo.Grid.Cols; c++ {
			out = append(out, geo.CellRect(r, c))
		}
	}
	return out
}

// CellAt returns the LED whose rectangle in lut contains p. lut must come
// from BuildLUT on the same geometry.
func (geo Geometry) CellAt(lut []image.Rectangle, p image.Point) (row, col int, ok bool) {
	if geo.Grid.Cols <= 0 {
		return 0, 0, false
	}
	for i, r := range lut {
		if p.In(r) {
			return i / geo.Grid.Cols, i % geo.Grid.Cols, true
		}
	}
	return 0, 0, false
}
