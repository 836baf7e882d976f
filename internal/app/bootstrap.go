// Package app wires the animation clock, the render engine and the frame
// sinks into one running builder.
package app

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/ledgrid/internal/anim"
	"github.com/coreman2200/ledgrid/internal/config"
	diag "github.com/coreman2200/ledgrid/internal/diagnostics"
	"github.com/coreman2200/ledgrid/internal/prefs"
	"github.com/coreman2200/ledgrid/internal/preview"
	"github.com/coreman2200/ledgrid/internal/raster"
	"github.com/coreman2200/ledgrid/internal/render"
)

// Core is a running builder. All methods are safe for concurrent use.
type Core struct {
	Eng     *render.Engine
	Clock   *anim.Clock
	Preview *preview.Server

	mu          sync.Mutex
	cfg         *config.Config
	prefs       *prefs.Prefs
	theme       raster.Theme
	transparent bool
	cellSize    int
	lastErr     string

	newTicker anim.NewTickerFunc
	cancel    context.CancelFunc
	done      chan struct{}
}

type Option func(*Core)

// WithTicker replaces the wall-clock tickers of the clock and the frame
// loop.
func WithTicker(fn anim.NewTickerFunc) Option {
	return func(c *Core) { c.newTicker = fn }
}

// WithPrefs uses p instead of opening the store named in the config.
func WithPrefs(p *prefs.Prefs) Option {
	return func(c *Core) { c.prefs = p }
}

// InitCore builds the engine from cfg and starts the clock and the frame
// loop. The loop runs until ctx is cancelled or Close is called.
func InitCore(ctx context.Context, cfg *config.Config, opts ...Option) (*Core, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	cp := *cfg
	config.Normalize(&cp)

	c := &Core{
		cfg:         &cp,
		transparent: cp.Export.Transparent,
		cellSize:    cp.CellSize,
		newTicker:   anim.RealTicker,
	}
	for _, o := range opts {
		o(c)
	}
	if c.prefs == nil {
		c.prefs = prefs.Open(cp.Prefs)
	}
	c.theme = c.prefs.Theme()
	if cp.Theme != "" {
		c.theme, _ = raster.ParseTheme(cp.Theme)
	}

	// 1) Engine
	c.Eng = render.NewEngine(cp.Settings(), nil)
	c.Eng.SetPost(render.PostPipeline{OnOverlayDone: c.patternDone})

	// 2) Preview fan-out (always attached; served only if the shell listens)
	c.Preview = preview.NewServer(preview.ExporterFunc(c.ExportPNG))
	c.Preview.SetTimings(c.Eng.Metrics)
	c.Eng.AddDriver("preview", c.Preview)

	// 3) Clock hooks → engine phase
	c.Clock = anim.New(anim.Hooks{
		OnPhase: c.Eng.SetPhase,
		OnMode: func(m render.DisplayMode) {
			log.Debug().Str("mode", string(m)).Msg("display mode")
		},
	}, anim.WithSpeeds(cp.Display.BlinkMS, cp.Display.ScrollMS), anim.WithTicker(c.newTicker))
	c.Clock.SetMode(render.DisplayMode(cp.Display.Mode))

	// 4) Frame loop
	ctx, c.cancel = context.WithCancel(ctx)
	c.done = make(chan struct{})
	go c.run(ctx, time.Second/time.Duration(cp.FPS))

	log.Info().
		Str("module", cp.ModuleType).
		Int("modules", cp.Modules).
		Str("arrangement", cp.Arrangement).
		Str("theme", string(c.theme)).
		Int("fps", cp.FPS).
		Msg("builder started")
	return c, nil
}

func (c *Core) run(ctx context.Context, every time.Duration) {
	defer close(c.done)
	tick := c.newTicker(every)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C():
			c.Frame()
		}
	}
}

// Frame renders and distributes one frame. Driver failures are logged once
// per distinct error and pushed to the diagnostics stream.
func (c *Core) Frame() render.Frame {
	f, err := c.Eng.RenderOnce()
	c.mu.Lock()
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	changed := msg != c.lastErr
	c.lastErr = msg
	c.mu.Unlock()
	if err != nil && changed {
		log.Warn().Err(err).Uint64("frame", f.ID).Msg("frame write failed")
		c.Preview.PushDiag(diag.FromError(diag.DriverFailed, "Frame write failed", err))
	}
	return f
}

// AddSink attaches another frame output.
func (c *Core) AddSink(name string, d render.Driver) { c.Eng.AddDriver(name, d) }

// Close stops the frame loop and the clock and disconnects preview clients.
func (c *Core) Close() {
	c.cancel()
	<-c.done
	c.Clock.Stop()
	c.Preview.Close()
}
