package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coreman2200/ledgrid/internal/bitmap"
)

func TestSmoothFillsStaircase(t *testing.T) {
	in := bitmap.Parse(`
#...
##..
.##.
..##
`)
	want := bitmap.Parse(`
##..
###.
####
.###
`)
	got := Smooth(in)
	assert.Equal(t, want.String(), got.String())
	// input untouched
	assert.Equal(t, "#...\n##..\n.##.\n..##", in.String())
}

func TestSmoothNeedsDiagonal(t *testing.T) {
	// (1,1) has its left and bottom neighbours on but (0,2) is off
	in := bitmap.Parse(`
...
#..
.#.
`)
	assert.True(t, Smooth(in).Equal(in))
}

func TestSmoothIgnoresOpposites(t *testing.T) {
	in := bitmap.Parse(`
.#.
...
.#.
`)
	assert.True(t, Smooth(in).Equal(in))

	in = bitmap.Parse(`
...
#.#
...
`)
	assert.True(t, Smooth(in).Equal(in))
}

func TestSmoothIdempotentOnStraightEdges(t *testing.T) {
	cases := []string{
		"....\n.##.\n.##.\n....",
		"########\n........\n########",
		"#.#.#\n.....\n#.#.#",
		"#...\n....\n...#",
		"#\n#\n#",
	}
	for _, c := range cases {
		in := bitmap.Parse(c)
		assert.True(t, Smooth(in).Equal(in), "\n%s", c)
	}
}

func TestSmoothMonotonic(t *testing.T) {
	in := bitmap.Parse(`
#..#..#.
.##..##.
#..##..#
..#..#..
`)
	out := Smooth(in)
	assert.True(t, in.Subset(out))
}

func TestSmoothGridEdgesCountAsOff(t *testing.T) {
	// corner cell (0,0) has only right and bottom neighbours in-grid
	in := bitmap.Parse(`
.#
##
`)
	out := Smooth(in)
	assert.True(t, out.At(0, 0))
}

func TestSmoothSinglePass(t *testing.T) {
	in := bitmap.Parse(`
#....
##...
.##..
..##.
...##
`)
	once := Smooth(in)
	assert.Equal(t, in.Count()+7, once.Count())

	// a second pass finds new notches, so one call is not a fixed point
	twice := Smooth(once)
	assert.True(t, once.Subset(twice))
	assert.Greater(t, twice.Count(), once.Count())
}

func TestSmoothEmpty(t *testing.T) {
	assert.True(t, Smooth(nil).Empty())
	assert.True(t, Smooth(bitmap.New(0, 0)).Empty())
}
