// Package bitmap holds the binary cell matrix shared by content sources,
// the fit mapper and the rasterizer.
package bitmap

import (
	"fmt"
	"strings"
)

// Bitmap is a W×H matrix of on/off cells stored row-major.
type Bitmap struct {
	W, H int
	Pix  []bool
}

// New returns an all-off bitmap. Non-positive dimensions yield an empty one.
func New(w, h int) *Bitmap {
	if w <= 0 || h <= 0 {
		return &Bitmap{}
	}
	return &Bitmap{W: w, H: h, Pix: make([]bool, w*h)}
}

// FromRows builds a bitmap from 0/1 rows. Short rows are padded with off
// cells up to the longest row.
func FromRows(rows [][]uint8) *Bitmap {
	w := 0
	for _, r := range rows {
		w = max(w, len(r))
	}
	b := New(w, len(rows))
	if b.Empty() {
		return b
	}
	for y, r := range rows {
		for x, v := range r {
			b.Pix[y*w+x] = v != 0
		}
	}
	return b
}

// Parse reads rows of '#'/'1' (on) and anything else (off), one row per line.
// Blank lines are skipped.
func Parse(s string) *Bitmap {
	var rows [][]uint8
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			continue
		}
		row := make([]uint8, 0, len(line))
		for _, ch := range line {
			if ch == '#' || ch == '1' {
				row = append(row, 1)
			} else {
				row = append(row, 0)
			}
		}
		rows = append(rows, row)
	}
	return FromRows(rows)
}

func (b *Bitmap) Empty() bool { return b == nil || b.W <= 0 || b.H <= 0 }

func (b *Bitmap) in(x, y int) bool { return x >= 0 && y >= 0 && x < b.W && y < b.H }

// At reports whether cell (x, y) is on; outside cells are off.
func (b *Bitmap) At(x, y int) bool {
	if b.Empty() || !b.in(x, y) {
		return false
	}
	return b.Pix[y*b.W+x]
}

// Set ignores coordinates outside the bitmap.
func (b *Bitmap) Set(x, y int, on bool) {
	if b.Empty() || !b.in(x, y) {
		return
	}
	b.Pix[y*b.W+x] = on
}

func (b *Bitmap) Toggle(x, y int) {
	b.Set(x, y, !b.At(x, y))
}

func (b *Bitmap) Clear() {
	if b == nil {
		return
	}
	for i := range b.Pix {
		b.Pix[i] = false
	}
}

func (b *Bitmap) Clone() *Bitmap {
	if b == nil {
		return nil
	}
	out := &Bitmap{W: b.W, H: b.H, Pix: make([]bool, len(b.Pix))}
	copy(out.Pix, b.Pix)
	return out
}

// Count returns the number of on cells.
func (b *Bitmap) Count() int {
	if b == nil {
		return 0
	}
	n := 0
	for _, v := range b.Pix {
		if v {
			n++
		}
	}
	return n
}

func (b *Bitmap) Equal(o *Bitmap) bool {
	if b.Empty() || o.Empty() {
		return b.Empty() && o.Empty()
	}
	if b.W != o.W || b.H != o.H {
		return false
	}
	for i, v := range b.Pix {
		if o.Pix[i] != v {
			return false
		}
	}
	return true
}

// Subset reports whether every on cell of b is also on in o.
func (b *Bitmap) Subset(o *Bitmap) bool {
	if b.Empty() {
		return true
	}
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			if b.At(x, y) && !o.At(x, y) {
				return false
			}
		}
	}
	return true
}

// Rows returns a 0/1 copy, one slice per row.
func (b *Bitmap) Rows() [][]uint8 {
	if b.Empty() {
		return nil
	}
	out := make([][]uint8, b.H)
	for y := range out {
		out[y] = make([]uint8, b.W)
		for x := 0; x < b.W; x++ {
			if b.Pix[y*b.W+x] {
				out[y][x] = 1
			}
		}
	}
	return out
}

// String renders '#' for on and '.' for off, rows separated by newlines.
func (b *Bitmap) String() string {
	if b.Empty() {
		return ""
	}
	var sb strings.Builder
	sb.Grow((b.W + 1) * b.H)
	for y := 0; y < b.H; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < b.W; x++ {
			if b.Pix[y*b.W+x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}

func (b *Bitmap) GoString() string {
	if b.Empty() {
		return "bitmap.Bitmap{}"
	}
	return fmt.Sprintf("bitmap.Bitmap{%dx%d}\n%s", b.W, b.H, b.String())
}
