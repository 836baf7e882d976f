package render

import "math"

// FitMode selects how a source bitmap is mapped onto the LED grid.
type FitMode string

const (
	FitNative  FitMode = "native"
	FitFill    FitMode = "fill"
	FitUniform FitMode = "uniform"
	FitWidth   FitMode = "fitWidth"
	FitHeight  FitMode = "fitHeight"
)

var FitModes = []FitMode{FitNative, FitFill, FitUniform, FitWidth, FitHeight}

// ParseFitMode accepts the mode names and the short forms "width" and
// "height". Unknown values map to FitFill.
func ParseFitMode(s string) FitMode {
	for _, m := range FitModes {
		if string(m) == s {
			return m
		}
	}
	switch s {
	case "width":
		return FitWidth
	case "height":
		return FitHeight
	}
	return FitFill
}

// Direction is the scroll flow of content across the grid.
type Direction string

const (
	Left  Direction = "left"
	Right Direction = "right"
	Up    Direction = "up"
	Down  Direction = "down"
)

var Directions = []Direction{Left, Right, Up, Down}

// ParseDirection maps unknown values to Left.
func ParseDirection(s string) Direction {
	for _, d := range Directions {
		if string(d) == s {
			return d
		}
	}
	return Left
}

// Scroll displaces the mapped coordinate along one axis with wraparound.
type Scroll struct {
	Direction Direction
	Offset    int
}

// mod is the mathematical modulo; n must be > 0.
func mod(a, n int) int {
	return ((a % n) + n) % n
}

// centerOffset is where content of size src starts when centered in dest.
func centerOffset(dest, src int) int {
	return max(0, (dest-src)/2)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// fitCoord returns the unscrolled source coordinate for a destination cell.
// Results may lie outside the source.
func fitCoord(destRow, destCol, destRows, destCols, srcRows, srcCols int, fit FitMode) (cr, cc int) {
	switch fit {
	case FitNative:
		return destRow - centerOffset(destRows, srcRows), destCol - centerOffset(destCols, srcCols)

	case FitUniform:
		s := math.Min(float64(destCols)/float64(srcCols), float64(destRows)/float64(srcRows))
		offC := (float64(destCols) - float64(srcCols)*s) / 2
		offR := (float64(destRows) - float64(srcRows)*s) / 2
		cc = int(math.Floor((float64(destCol) - offC) / s))
		cr = int(math.Floor((float64(destRow) - offR) / s))
		return cr, cc

	case FitWidth:
		scale := float64(destCols) / float64(srcCols)
		offR := (float64(destRows) - float64(srcRows)*scale) / 2
		cc = clampInt(destCol*srcCols/destCols, 0, srcCols-1)
		cr = int(math.Floor((float64(destRow) - offR) / scale))
		return cr, cc

	case FitHeight:
		scale := float64(destRows) / float64(srcRows)
		offC := (float64(destCols) - float64(srcCols)*scale) / 2
		cr = clampInt(destRow*srcRows/destRows, 0, srcRows-1)
		cc = int(math.Floor((float64(destCol) - offC) / scale))
		return cr, cc

	default: // FitFill
		return destRow * srcRows / destRows, destCol * srcCols / destCols
	}
}

// MapCell maps destination cell (destRow, destCol) of a destRows×destCols grid
// onto a srcRows×srcCols source. ok is false when the cell falls outside the
// source and must stay off. A non-nil scroll wraps the scrolled axis instead
// of clipping it.
func MapCell(destRow, destCol, destRows, destCols, srcRows, srcCols int, fit FitMode, scroll *Scroll) (srcRow, srcCol int, ok bool) {
	if destRows <= 0 || destCols <= 0 || srcRows <= 0 || srcCols <= 0 {
		return 0, 0, false
	}
	cr, cc := fitCoord(destRow, destCol, destRows, destCols, srcRows, srcCols, fit)

	if scroll != nil {
		colOff := mod(scroll.Offset, srcCols)
		rowOff := mod(scroll.Offset, srcRows)
		switch scroll.Direction {
		case Right:
			cc = mod(cc-colOff, srcCols)
		case Up:
			cr = mod(cr+rowOff, srcRows)
		case Down:
			cr = mod(cr-rowOff, srcRows)
		default:
			cc = mod(cc+colOff, srcCols)
		}
	}

	if cr < 0 || cr >= srcRows || cc < 0 || cc >= srcCols {
		return 0, 0, false
	}
	return cr, cc, true
}
