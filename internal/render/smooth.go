package render

import "github.com/coreman2200/ledgrid/internal/bitmap"

// Smooth fills single-cell concave notches on diagonal edges. An off cell
// turns on when exactly two orthogonal neighbours are on, they meet at a
// corner, and the diagonal cell between them is on too. Single pass; the
// input is not modified.
func Smooth(g *bitmap.Bitmap) *bitmap.Bitmap {
	if g.Empty() {
		return g.Clone()
	}
	out := g.Clone()
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.At(x, y) {
				continue
			}
			top, bottom := g.At(x, y-1), g.At(x, y+1)
			left, right := g.At(x-1, y), g.At(x+1, y)
			if n := b2i(top) + b2i(bottom) + b2i(left) + b2i(right); n != 2 {
				continue
			}
			if (top && bottom) || (left && right) {
				continue
			}
			dy, dx := 1, 1
			if top {
				dy = -1
			}
			if left {
				dx = -1
			}
			if g.At(x+dx, y+dy) {
				out.Set(x, y, true)
			}
		}
	}
	return out
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
