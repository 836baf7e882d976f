package app

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/ledgrid/internal/config"
	diag "github.com/coreman2200/ledgrid/internal/diagnostics"
	"github.com/coreman2200/ledgrid/internal/layout"
	"github.com/coreman2200/ledgrid/internal/patterns"
	"github.com/coreman2200/ledgrid/internal/raster"
	"github.com/coreman2200/ledgrid/internal/render"
)

var _ render.Overlay = (*patterns.Runner)(nil)

// SetMode switches the engine and restarts the clock for m.
func (c *Core) SetMode(m render.DisplayMode) {
	c.Eng.SetMode(m)
	c.Clock.SetMode(c.Eng.Settings().Mode)
}

func (c *Core) SetBlinkSpeed(ms int)  { c.Clock.SetBlinkSpeed(ms) }
func (c *Core) SetScrollSpeed(ms int) { c.Clock.SetScrollSpeed(ms) }

func (c *Core) Theme() raster.Theme {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.theme
}

// SetTheme switches the theme and persists it; persistence failures are
// only logged by the store.
func (c *Core) SetTheme(t raster.Theme) {
	t, _ = raster.ParseTheme(string(t))
	c.mu.Lock()
	c.theme = t
	p := c.prefs
	c.mu.Unlock()
	p.SetTheme(t)
}

// SetTransparent selects a transparent export background.
func (c *Core) SetTransparent(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transparent = on
}

// RunPattern replaces the content with a wiring test pattern until it ends.
func (c *Core) RunPattern(name string) error {
	k, ok := patterns.ParseKind(name)
	if !ok {
		c.Preview.PushDiag(diag.New(diag.Warn, diag.PatternUnknown, "Unknown pattern name").With("name", name))
		return fmt.Errorf("unknown pattern %q", name)
	}
	c.Eng.RunOverlay(patterns.NewRunner(patterns.Plan{Kind: k}))
	d := diag.New(diag.Info, diag.PatternRunning, "Running pattern")
	d.Detail = name
	c.Preview.PushDiag(d)
	return nil
}

func (c *Core) patternDone(name string) {
	log.Info().Str("pattern", name).Msg("pattern complete")
	c.Preview.PushDiag(diag.New(diag.Info, diag.PatternDone, "Pattern complete").With("name", name))
}

// Style is the raster style for f under the current theme and background
// choice.
func (c *Core) Style(f render.Frame) raster.Style {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := raster.Style{On: f.Color, Theme: c.theme, Visible: f.Visible}
	if !c.transparent {
		bg := c.theme.Background()
		st.Background = &bg
	}
	return st
}

// Geometry lays out f's grid with the configured cell size.
func (c *Core) Geometry(g layout.GridSize) layout.Geometry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return layout.NewGeometry(g, c.cellSize)
}

// Export writes the current frame to path ("" uses the configured path).
// Style and grid are captured once, before encoding starts.
func (c *Core) Export(path string) error {
	if path == "" {
		c.mu.Lock()
		path = c.cfg.Export.Path
		c.mu.Unlock()
	}
	snap := c.Eng.Snapshot()
	err := raster.ExportFile(path, snap.Grid, c.Geometry(snap.Size), c.Style(snap))
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("export failed")
		c.Preview.PushDiag(diag.FromError(diag.ExportFailed, "Export failed", err).With("path", path))
		return err
	}
	log.Info().Str("path", path).Int("cols", snap.Size.Cols).Int("rows", snap.Size.Rows).Msg("exported")
	c.Preview.PushDiag(diag.New(diag.Info, diag.ExportDone, "Exported").With("path", path))
	return nil
}

// ExportPNG encodes the current frame into w.
func (c *Core) ExportPNG(w io.Writer) error {
	snap := c.Eng.Snapshot()
	if snap.Grid.Empty() {
		return raster.ErrEmptyGrid
	}
	return raster.EncodePNG(w, raster.Render(snap.Grid, c.Geometry(snap.Size), c.Style(snap)))
}

// Config returns the current settings in file form.
func (c *Core) Config() *config.Config {
	c.mu.Lock()
	cp := *c.cfg
	cp.Content.Canvas = append([]string(nil), c.cfg.Content.Canvas...)
	c.mu.Unlock()

	cp.ApplySettings(c.Eng.Settings())
	cp.Display.BlinkMS, cp.Display.ScrollMS = c.Clock.Speeds()
	cp.Export.Transparent = c.transparentNow()
	return &cp
}

func (c *Core) transparentNow() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transparent
}

// SaveConfig writes the current settings to path.
func (c *Core) SaveConfig(path string) error {
	return config.Save(path, c.Config())
}
