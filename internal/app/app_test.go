package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/ledgrid/internal/anim"
	"github.com/coreman2200/ledgrid/internal/config"
	"github.com/coreman2200/ledgrid/internal/prefs"
	"github.com/coreman2200/ledgrid/internal/raster"
	"github.com/coreman2200/ledgrid/internal/render"
)

// idleTicker never fires, so tests drive frames and ticks by hand.
type idleTicker struct{}

func (idleTicker) C() <-chan time.Time { return nil }
func (idleTicker) Stop()               {}

func newCore(t *testing.T, cfg *config.Config) (*Core, string) {
	t.Helper()
	dir := t.TempDir()
	p := prefs.Open(filepath.Join(dir, "prefs.json"))
	c, err := InitCore(context.Background(), cfg,
		WithTicker(func(time.Duration) anim.Ticker { return idleTicker{} }),
		WithPrefs(p))
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c, dir
}

func TestInitCoreDefaults(t *testing.T) {
	c, _ := newCore(t, nil)
	f := c.Frame()
	assert.Equal(t, uint64(1), f.ID)
	assert.Equal(t, 16, f.Size.Cols)
	assert.Equal(t, []string{"preview"}, c.Eng.Drivers())
	assert.Equal(t, raster.ThemeDark, c.Theme())
	assert.Equal(t, render.ModeStatic, c.Clock.Mode())
}

func TestModeDrivesClockAndEngine(t *testing.T) {
	cfg := config.Default()
	cfg.Content.Kind = "text"
	cfg.Content.Text = "HI"
	c, _ := newCore(t, cfg)

	c.SetMode(render.ModeScroll)
	assert.Equal(t, render.ModeScroll, c.Clock.Mode())
	c.Clock.Step()
	c.Clock.Step()
	off, _ := c.Eng.Phase()
	assert.Equal(t, 2, off)
	assert.Equal(t, 2, c.Frame().Offset)

	c.SetMode(render.ModeBlink)
	c.Clock.Step()
	f := c.Frame()
	assert.False(t, f.Visible)

	c.SetMode("bogus")
	assert.Equal(t, render.ModeStatic, c.Clock.Mode())
	assert.False(t, c.Clock.Running())
}

func TestRunPattern(t *testing.T) {
	c, _ := newCore(t, nil)
	require.Error(t, c.RunPattern("rainbow"))

	require.NoError(t, c.RunPattern("all_on"))
	f := c.Frame()
	assert.Equal(t, 256, f.Grid.Count())
	f = c.Frame()
	assert.Less(t, f.Grid.Count(), 256, "content is back")
	assert.Empty(t, c.Eng.OverlayActive())
}

func TestExport(t *testing.T) {
	c, dir := newCore(t, nil)
	path := filepath.Join(dir, "out.png")
	require.NoError(t, c.Export(path))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG", string(b[:4]))

	var buf bytes.Buffer
	require.NoError(t, c.ExportPNG(&buf))
	assert.Equal(t, b, buf.Bytes(), "same snapshot, same bytes")

	bad := filepath.Join(dir, "missing", "out.png")
	require.Error(t, c.Export(bad))
	_, err = os.Stat(bad)
	assert.True(t, os.IsNotExist(err))
}

func TestExportBackground(t *testing.T) {
	c, _ := newCore(t, nil)
	f := c.Eng.Snapshot()
	st := c.Style(f)
	require.NotNil(t, st.Background)
	assert.Equal(t, raster.ThemeDark.Background(), *st.Background)

	c.SetTransparent(true)
	assert.Nil(t, c.Style(f).Background)
}

func TestThemePersists(t *testing.T) {
	c, dir := newCore(t, nil)
	c.SetTheme(raster.ThemeLight)
	assert.Equal(t, raster.ThemeLight, c.Theme())
	assert.Equal(t, raster.ThemeLight, prefs.Open(filepath.Join(dir, "prefs.json")).Theme())

	c.SetTheme("neon")
	assert.Equal(t, raster.ThemeDark, c.Theme())
}

func TestConfigThemeOverridesPrefs(t *testing.T) {
	cfg := config.Default()
	cfg.Theme = "light"
	c, _ := newCore(t, cfg)
	assert.Equal(t, raster.ThemeLight, c.Theme())
}

func TestFailingSinkDoesNotStopFrames(t *testing.T) {
	c, _ := newCore(t, nil)
	c.AddSink("broken", render.DriverFunc(func(render.Frame) error { return errors.New("unplugged") }))
	f1 := c.Frame()
	f2 := c.Frame()
	assert.Greater(t, f2.ID, f1.ID)
}

func TestSaveConfig(t *testing.T) {
	c, dir := newCore(t, nil)
	c.Eng.SetCount(6)
	c.SetScrollSpeed(120)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, c.SaveConfig(path))

	back, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 6, back.Modules)
	assert.Equal(t, 120, back.Display.ScrollMS)
}
