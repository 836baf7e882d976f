// Package patterns holds wiring test patterns. A Runner replaces the
// displayed content one step per frame and finishes after its last step.
package patterns

import (
	"sort"

	"github.com/coreman2200/ledgrid/internal/bitmap"
	"github.com/coreman2200/ledgrid/internal/layout"
)

type Kind string

const (
	None        Kind = ""
	CellSweep   Kind = "cell_sweep"
	ModuleSweep Kind = "module_sweep"
	AllOn       Kind = "all_on"
	Checker     Kind = "checker"
)

var known = map[Kind]bool{CellSweep: true, ModuleSweep: true, AllOn: true, Checker: true}

// Kinds lists the runnable patterns, sorted.
func Kinds() []Kind {
	out := make([]Kind, 0, len(known))
	for k := range known {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func ParseKind(s string) (Kind, bool) {
	k := Kind(s)
	return k, known[k]
}

type Plan struct{ Kind Kind }

// Runner steps through one plan. It satisfies render.Overlay.
type Runner struct {
	plan Plan
	step int
}

func NewRunner(plan Plan) *Runner { return &Runner{plan: plan} }

func (r *Runner) Kind() Kind   { return r.plan.Kind }
func (r *Runner) Name() string { return string(r.plan.Kind) }

// Steps returns how many frames the plan lasts on a grid of size g.
func (r *Runner) Steps(g layout.GridSize) int {
	switch r.plan.Kind {
	case CellSweep:
		return g.Count()
	case ModuleSweep:
		return g.Tiles()
	case AllOn:
		return 1
	case Checker:
		return 2
	}
	return 0
}

// Step fills dst; returns false when complete.
func (r *Runner) Step(dst *bitmap.Bitmap, g layout.GridSize) bool {
	dst.Clear()
	if r.step >= r.Steps(g) {
		return false
	}

	switch r.plan.Kind {
	case CellSweep:
		row, col := ChainCell(g, r.step)
		dst.Set(col, row, true)
	case ModuleSweep:
		fillModule(dst, g, r.step)
	case AllOn:
		for i := range dst.Pix {
			dst.Pix[i] = true
		}
	case Checker:
		for y := 0; y < dst.H; y++ {
			for x := 0; x < dst.W; x++ {
				dst.Set(x, y, (x+y+r.step)%2 == 0)
			}
		}
	}
	r.step++
	return true
}

// ChainCell returns the grid position of the i-th LED in daisy-chain
// order: module by module, row-major inside each module.
func ChainCell(g layout.GridSize, i int) (row, col int) {
	mc, mr := g.ModuleCols(), g.ModuleRows()
	per := mc * mr
	if per <= 0 || g.LayoutCols <= 0 {
		return 0, 0
	}
	m, within := i/per, i%per
	lx, ly := m%g.LayoutCols, m/g.LayoutCols
	return ly*mr + within/mc, lx*mc + within%mc
}

func fillModule(dst *bitmap.Bitmap, g layout.GridSize, m int) {
	mc, mr := g.ModuleCols(), g.ModuleRows()
	lx, ly := m%g.LayoutCols, m/g.LayoutCols
	for y := ly * mr; y < (ly+1)*mr; y++ {
		for x := lx * mc; x < (lx+1)*mc; x++ {
			dst.Set(x, y, true)
		}
	}
}
