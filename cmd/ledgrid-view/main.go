// Command ledgrid-view is a desktop preview window for the LED grid builder.
//
// Keys: M mode, F icon fit, G text fit, D direction, S smoothing, C colour,
// K content kind, T theme, A arrangement, +/- module count, E export,
// X clear canvas, P wiring pattern. With canvas content, clicking an LED
// toggles the canvas pixel that feeds it.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/ledgrid/internal/app"
	"github.com/coreman2200/ledgrid/internal/config"
	"github.com/coreman2200/ledgrid/internal/layout"
	"github.com/coreman2200/ledgrid/internal/raster"
	"github.com/coreman2200/ledgrid/internal/render"
)

// latest keeps the most recent frame for the draw loop.
type latest struct {
	mu sync.Mutex
	f  render.Frame
	ok bool
}

func (l *latest) Write(f render.Frame) error {
	l.mu.Lock()
	l.f, l.ok = f, true
	l.mu.Unlock()
	return nil
}

func (l *latest) get() (render.Frame, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.f, l.ok
}

type viewer struct {
	core  *app.Core
	last  *latest
	geo   layout.Geometry
	lut   []image.Rectangle
	img   *ebiten.Image
	title string
}

func (v *viewer) Update() error {
	for _, r := range ebiten.AppendInputChars(nil) {
		handleKey(v.core, r)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if cx, cy, ok := canvasCell(v.core.Eng, v.geo, v.lut, image.Pt(x, y)); ok {
			v.core.Eng.ToggleCanvas(cx, cy)
		}
	}

	s := v.core.Eng.Settings()
	title := fmt.Sprintf("LED Grid Builder: %d × %s, %s, %s", s.Count, s.ModuleType, s.Content.Kind, s.Mode)
	if title != v.title {
		ebiten.SetWindowTitle(title)
		v.title = title
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	f, ok := v.last.get()
	if !ok {
		return
	}
	if geo := v.core.Geometry(f.Size); geo != v.geo || v.lut == nil {
		v.geo, v.lut = geo, geo.BuildLUT()
	}
	rgba := raster.Render(f.Grid, v.geo, v.core.Style(f))
	b := rgba.Bounds()
	if v.img == nil || v.img.Bounds().Dx() != b.Dx() || v.img.Bounds().Dy() != b.Dy() {
		if v.img != nil {
			v.img.Deallocate()
		}
		v.img = ebiten.NewImage(b.Dx(), b.Dy())
	}
	v.img.WritePixels(rgba.Pix)
	screen.Fill(v.core.Theme().Background())
	screen.DrawImage(v.img, nil)
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	geo := v.core.Geometry(v.core.Eng.Size())
	return geo.Width(), geo.Height()
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to config.yaml")
	scale := flag.Int("scale", 2, "window scale")
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	cfg, err := config.Load(*configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; using defaults")
		}
		cfg = config.Default()
	}

	core, err := app.InitCore(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("init")
	}
	defer core.Close()

	v := &viewer{core: core, last: &latest{}}
	core.AddSink("view", v.last)

	geo := core.Geometry(core.Eng.Size())
	ebiten.SetWindowSize(geo.Width()*max(*scale, 1), geo.Height()*max(*scale, 1))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(v); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Error().Err(err).Msg("window")
	}
}
