package raster

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/coreman2200/ledgrid/internal/bitmap"
	"github.com/coreman2200/ledgrid/internal/layout"
)

const DefaultExportName = "led-grid.png"

var ErrEmptyGrid = errors.New("raster: empty grid")

// EncodePNG writes img as PNG with best compression.
func EncodePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// ExportFile renders grid and writes it to path. The image goes to a
// temporary file in the same directory first; on any error nothing is left
// at path or in the directory.
func ExportFile(path string, grid *bitmap.Bitmap, geo layout.Geometry, st Style) error {
	if grid.Empty() || geo.Grid.Count() == 0 {
		return ErrEmptyGrid
	}
	if path == "" {
		path = DefaultExportName
	}
	img := Render(grid, geo, st)

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".led-grid-*.png")
	if err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	tmpName := tmp.Name()
	ok := false
	defer func() {
		if !ok {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if err := EncodePNG(tmp, img); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	ok = true
	return nil
}
