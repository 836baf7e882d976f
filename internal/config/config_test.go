package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/ledgrid/internal/content"
	"github.com/coreman2200/ledgrid/internal/layout"
	"github.com/coreman2200/ledgrid/internal/render"
)

func TestDefaultMatchesEngineDefaults(t *testing.T) {
	c := Default()
	s := c.Settings()
	d := render.DefaultSettings()
	assert.Equal(t, d.ModuleType, s.ModuleType)
	assert.Equal(t, d.Count, s.Count)
	assert.Equal(t, d.Arrangement, s.Arrangement)
	assert.Equal(t, d.Content.Kind, s.Content.Kind)
	assert.Equal(t, d.Content.IconID, s.Content.IconID)
	assert.Equal(t, d.Mode, s.Mode)
	assert.Equal(t, 500, c.Display.BlinkMS)
	assert.Equal(t, 50, c.Display.ScrollMS)
	assert.Equal(t, "led-grid.png", c.Export.Path)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
modules: 3
arrangement: row
content:
  kind: text
  text: HI
display:
  mode: scroll
  scroll_ms: 5
`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Modules)
	assert.Equal(t, "row", c.Arrangement)
	assert.Equal(t, "text", c.Content.Kind)
	assert.Equal(t, "scroll", c.Display.Mode)
	assert.Equal(t, 20, c.Display.ScrollMS, "clamped")
	assert.Equal(t, 500, c.Display.BlinkMS)
	assert.Equal(t, "MAX7219_8X8", c.ModuleType)
	assert.Equal(t, DefaultFPS, c.FPS)
}

func TestLoadFitModes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
display:
  text_fit: fitWidth
  icon_fit: height
`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "fitWidth", c.Display.TextFit)
	assert.Equal(t, "fitHeight", c.Display.IconFit)
	s := c.Settings()
	assert.Equal(t, render.FitWidth, s.TextFit)
	assert.Equal(t, render.FitHeight, s.IconFit)
}

func TestLoadOverKeepsBase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("color: blue\n"), 0o644))

	base := Default()
	base.Modules = 9
	c, err := LoadOver(path, base)
	require.NoError(t, err)
	assert.Equal(t, 9, c.Modules)
	assert.Equal(t, "blue", c.Color)
	assert.Equal(t, "green", base.Color, "base untouched")
}

func TestNormalizeClamps(t *testing.T) {
	c := &Config{
		ModuleType:  "nope",
		Modules:     99,
		Arrangement: "spiral",
		Color:       "#12",
		Content:     ContentCfg{Kind: "video", Font: "comic"},
		Display: DisplayCfg{
			Mode: "strobe", TextFit: "zoom", IconFit: "uniform", Direction: "north",
			BlinkMS: 1, ScrollMS: 9999,
		},
		CellSize: 1,
		FPS:      1000,
		Theme:    "sepia",
	}
	Normalize(c)
	assert.Equal(t, layout.DefaultModuleTypeID, c.ModuleType)
	assert.Equal(t, layout.MaxModules, c.Modules)
	assert.Equal(t, "square", c.Arrangement)
	assert.Equal(t, "green", c.Color)
	assert.Equal(t, "icon", c.Content.Kind)
	assert.Equal(t, "5x7", c.Content.Font)
	assert.Equal(t, "static", c.Display.Mode)
	assert.Equal(t, "fill", c.Display.TextFit)
	assert.Equal(t, "uniform", c.Display.IconFit)
	assert.Equal(t, "left", c.Display.Direction)
	assert.Equal(t, 100, c.Display.BlinkMS)
	assert.Equal(t, 300, c.Display.ScrollMS)
	assert.Equal(t, layout.MinCellSize, c.CellSize)
	assert.Equal(t, MaxFPS, c.FPS)
	assert.Equal(t, "dark", c.Theme)

	c = Default()
	c.CellSize = 0
	Normalize(c)
	assert.Zero(t, c.CellSize, "0 keeps the automatic size")
	assert.Empty(t, c.Theme)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("modules: [1, 2"), 0o644))
	_, err = Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.yaml")
}

func TestSaveRoundTripWithCanvas(t *testing.T) {
	s := render.DefaultSettings()
	s.Content.Kind = content.KindCanvas
	s.Content.Canvas.Set(1, 2, true)
	s.Mode = render.ModeBlink

	c := Default()
	c.ApplySettings(s)
	require.Len(t, c.Content.Canvas, 8)
	assert.Equal(t, "........", c.Content.Canvas[0])
	assert.Equal(t, ".#......", c.Content.Canvas[2])

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, Save(path, c))
	back, err := Load(path)
	require.NoError(t, err)

	got := back.Settings()
	assert.Equal(t, content.KindCanvas, got.Content.Kind)
	assert.True(t, got.Content.Canvas.At(1, 2))
	assert.Equal(t, 1, got.Content.Canvas.Count())
	assert.Equal(t, render.ModeBlink, got.Mode)
}
