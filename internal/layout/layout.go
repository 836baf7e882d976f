package layout

import (
	"math"
	"sort"
)

const (
	MinModules = 1
	MaxModules = 64

	// DefaultModuleDim is used when a module type carries no usable size.
	DefaultModuleDim = 8
)

// ModuleType is one catalog entry: a physical LED matrix board.
type ModuleType struct {
	ID            string
	Name          string
	Description   string
	PerModuleCols int
	PerModuleRows int
	Chips         int // MAX7219 ICs on the board
}

const DefaultModuleTypeID = "MAX7219_8X8"

var moduleTypes = map[string]ModuleType{
	"MAX7219_8X8": {
		ID:            "MAX7219_8X8",
		Name:          "MAX7219 8×8 (single)",
		Description:   "1× 8×8 matrix, 1 MAX7219 IC, 64 LEDs",
		PerModuleCols: 8,
		PerModuleRows: 8,
		Chips:         1,
	},
	"MAX7219_4IN1_8X32": {
		ID:            "MAX7219_4IN1_8X32",
		Name:          "MAX7219 4-in-1 8×32",
		Description:   "4× 8×8 in a row on one board, 8×32, 4 MAX7219 ICs",
		PerModuleCols: 32,
		PerModuleRows: 8,
		Chips:         4,
	},
	"MAX7219_32X32": {
		ID:            "MAX7219_32X32",
		Name:          "MAX7219 32×32",
		Description:   "16× 8×8 in 4×4 grid (or 4× 8×32 stacked), 32×32",
		PerModuleCols: 32,
		PerModuleRows: 32,
		Chips:         16,
	},
}

// LookupModuleType returns the catalog entry for id.
func LookupModuleType(id string) (ModuleType, bool) {
	mt, ok := moduleTypes[id]
	return mt, ok
}

// ModuleTypeOrDefault never fails; unknown ids resolve to the single 8×8 board.
func ModuleTypeOrDefault(id string) ModuleType {
	if mt, ok := moduleTypes[id]; ok {
		return mt
	}
	return moduleTypes[DefaultModuleTypeID]
}

// ModuleTypeIDs lists the catalog ids in a stable order.
func ModuleTypeIDs() []string {
	out := make([]string, 0, len(moduleTypes))
	for k := range moduleTypes {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := moduleTypes[out[i]], moduleTypes[out[j]]
		if a.Chips != b.Chips {
			return a.Chips < b.Chips
		}
		return a.ID < b.ID
	})
	return out
}

// Arrangement is the tiling strategy for N identical modules.
type Arrangement string

const (
	Square Arrangement = "square"
	Row    Arrangement = "row"
	Column Arrangement = "column"
)

var Arrangements = []Arrangement{Square, Row, Column}

// ParseArrangement maps unknown values to Square.
func ParseArrangement(s string) Arrangement {
	switch Arrangement(s) {
	case Row:
		return Row
	case Column:
		return Column
	default:
		return Square
	}
}

// GridSize is the derived LED grid shape.
type GridSize struct {
	Cols       int `json:"cols"`
	Rows       int `json:"rows"`
	LayoutCols int `json:"layoutCols"`
	LayoutRows int `json:"layoutRows"`
}

// ClampCount clamps a requested module count into [MinModules, MaxModules].
func ClampCount(n int) int {
	if n < MinModules {
		return MinModules
	}
	if n > MaxModules {
		return MaxModules
	}
	return n
}

// Resolve computes the grid for count modules of type mt tiled by arr.
// Inputs are clamped, never rejected.
func Resolve(mt ModuleType, count int, arr Arrangement) GridSize {
	n := ClampCount(count)
	w, h := mt.PerModuleCols, mt.PerModuleRows
	if w <= 0 {
		w = DefaultModuleDim
	}
	if h <= 0 {
		h = DefaultModuleDim
	}

	var lc, lr int
	switch arr {
	case Row:
		lc, lr = n, 1
	case Column:
		lc, lr = 1, n
	default:
		// rows <= cols always; ties go to the wider layout.
		lr = int(math.Floor(math.Sqrt(float64(n))))
		if lr < 1 {
			lr = 1
		}
		lc = (n + lr - 1) / lr
	}

	return GridSize{
		Cols:       w * lc,
		Rows:       h * lr,
		LayoutCols: lc,
		LayoutRows: lr,
	}
}

func (g GridSize) ModuleCols() int {
	if g.LayoutCols <= 0 {
		return g.Cols
	}
	return g.Cols / g.LayoutCols
}

func (g GridSize) ModuleRows() int {
	if g.LayoutRows <= 0 {
		return g.Rows
	}
	return g.Rows / g.LayoutRows
}

// Multi reports whether more than one module is tiled.
func (g GridSize) Multi() bool { return g.LayoutCols > 1 || g.LayoutRows > 1 }

// Count is the number of LEDs.
func (g GridSize) Count() int { return g.Cols * g.Rows }

// Tiles is the number of module slots in the layout (may exceed the
// requested count for square arrangements).
func (g GridSize) Tiles() int { return g.LayoutCols * g.LayoutRows }

// ModuleAt maps a grid cell to its module tile and daisy-chain index.
func (g GridSize) ModuleAt(row, col int) (lx, ly, chain int) {
	mc, mr := g.ModuleCols(), g.ModuleRows()
	if mc <= 0 || mr <= 0 {
		return 0, 0, 0
	}
	lx = col / mc
	ly = row / mr
	return lx, ly, ly*g.LayoutCols + lx
}
