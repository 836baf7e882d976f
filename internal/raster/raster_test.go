package raster

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/ledgrid/internal/bitmap"
	"github.com/coreman2200/ledgrid/internal/layout"
)

func testGeometry(count int, arr layout.Arrangement, cell int) layout.Geometry {
	g := layout.Resolve(layout.ModuleTypeOrDefault("MAX7219_8X8"), count, arr)
	return layout.NewGeometry(g, cell)
}

func center(geo layout.Geometry, r, c int) (int, int) {
	rect := geo.CellRect(r, c)
	return (rect.Min.X + rect.Max.X) / 2, (rect.Min.Y + rect.Max.Y) / 2
}

func TestRenderOnOffCells(t *testing.T) {
	geo := testGeometry(1, layout.Square, 8)
	grid := bitmap.New(8, 8)
	grid.Set(2, 3, true)

	st := DefaultStyle()
	img := Render(grid, geo, st)
	require.Equal(t, geo.Bounds(), img.Bounds())

	x, y := center(geo, 3, 2)
	assert.Equal(t, st.On, img.RGBAAt(x, y))

	x, y = center(geo, 0, 0)
	assert.NotEqual(t, st.On, img.RGBAAt(x, y))
	assert.NotEqual(t, *st.Background, img.RGBAAt(x, y), "off cells are drawn over the background")
}

func TestRenderInvisibleEqualsAllOff(t *testing.T) {
	geo := testGeometry(4, layout.Square, 6)
	grid := bitmap.New(16, 16)
	for i := 0; i < 16; i++ {
		grid.Set(i, i, true)
	}
	st := DefaultStyle()
	st.Visible = false
	hidden := Render(grid, geo, st)

	st.Visible = true
	allOff := Render(bitmap.New(16, 16), geo, st)
	assert.Equal(t, allOff.Pix, hidden.Pix)
}

func TestRenderTransparentBackground(t *testing.T) {
	geo := testGeometry(2, layout.Row, 6)
	st := DefaultStyle()
	st.Background = nil
	img := Render(bitmap.New(16, 8), geo, st)

	// the module gap stays fully transparent
	gapX := geo.ModuleWidth() + layout.ModuleGap/2
	assert.Equal(t, color.RGBA{}, img.RGBAAt(gapX, 2))

	st.Background = &color.RGBA{1, 2, 3, 255}
	img = Render(bitmap.New(16, 8), geo, st)
	assert.Equal(t, color.RGBA{1, 2, 3, 255}, img.RGBAAt(gapX, 2))
}

func TestRenderDeterministic(t *testing.T) {
	geo := testGeometry(3, layout.Square, 0)
	grid := bitmap.Parse("#.#.#.#.\n.#.#.#.#")
	var a, b bytes.Buffer
	require.NoError(t, EncodePNG(&a, Render(grid, geo, DefaultStyle())))
	require.NoError(t, EncodePNG(&b, Render(grid, geo, DefaultStyle())))
	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestCellImage(t *testing.T) {
	grid := bitmap.Parse("#.\n.#")
	st := DefaultStyle()
	img := CellImage(grid, st)
	assert.Equal(t, st.On, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{A: 255}, img.RGBAAt(1, 0))

	st.Visible = false
	img = CellImage(grid, st)
	assert.Equal(t, color.RGBA{A: 255}, img.RGBAAt(0, 0))
}

func TestExportFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultExportName)
	geo := testGeometry(1, layout.Square, 4)
	grid := bitmap.New(8, 8)
	grid.Set(0, 0, true)

	require.NoError(t, ExportFile(path, grid, geo, DefaultStyle()))
	first, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), first[:4])

	require.NoError(t, ExportFile(path, grid, geo, DefaultStyle()))
	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestExportFileFailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	geo := testGeometry(1, layout.Square, 4)

	err := ExportFile(filepath.Join(dir, "missing", "out.png"), bitmap.New(8, 8), geo, DefaultStyle())
	require.Error(t, err)

	err = ExportFile(filepath.Join(dir, "empty.png"), nil, geo, DefaultStyle())
	require.ErrorIs(t, err, ErrEmptyGrid)

	// renaming onto a directory fails after the temp file was written
	target := filepath.Join(dir, "taken")
	require.NoError(t, os.Mkdir(target, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "x"), []byte("x"), 0o644))
	err = ExportFile(target, bitmap.New(8, 8), geo, DefaultStyle())
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "taken", entries[0].Name())
}

func TestLookupColor(t *testing.T) {
	c, ok := LookupColor("red")
	assert.True(t, ok)
	assert.Equal(t, "#e63946", Hex(c))

	c, ok = LookupColor("#FF8800")
	assert.True(t, ok)
	assert.Equal(t, color.RGBA{0xff, 0x88, 0x00, 0xff}, c)

	c, ok = LookupColor("mauve")
	assert.False(t, ok)
	assert.Equal(t, "#2a9d4a", Hex(c))

	_, err := ParseHex("#12345")
	assert.Error(t, err)
	_, err = ParseHex("#zzzzzz")
	assert.Error(t, err)

	assert.Equal(t, []string{"red", "green", "blue"}, ColorIDs())
}

func TestThemeColors(t *testing.T) {
	th, ok := ParseTheme("light")
	assert.True(t, ok)
	assert.Equal(t, "#d9dee7", Hex(th.OffColor()))
	assert.Equal(t, "#f4f6fa", Hex(th.Background()))

	th, ok = ParseTheme("solarized")
	assert.False(t, ok)
	assert.Equal(t, ThemeDark, th)
	assert.Equal(t, "#1e232d", Hex(th.OffColor()))
	assert.Equal(t, "#12151c", Hex(th.Background()))
}
