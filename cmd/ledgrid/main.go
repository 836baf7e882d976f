package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/ledgrid/internal/app"
	"github.com/coreman2200/ledgrid/internal/config"
	"github.com/coreman2200/ledgrid/internal/sink"
)

func main() {
	// ---- Flags (config.yaml overrides what it sets) ----
	def := config.Default()
	var (
		configPath  = flag.String("config", "config.yaml", "path to config.yaml")
		addr        = flag.String("addr", def.Listen, "preview HTTP listen address (empty disables)")
		moduleType  = flag.String("module", def.ModuleType, "module type: MAX7219_8X8 | MAX7219_4IN1_8X32 | MAX7219_32X32")
		modules     = flag.Int("modules", def.Modules, "module count (1..64)")
		arrangement = flag.String("arrangement", def.Arrangement, "square | row | column")
		kind        = flag.String("kind", def.Content.Kind, "content: text | icon | canvas")
		text        = flag.String("text", def.Content.Text, "text content (max 32 characters)")
		font        = flag.String("font", def.Content.Font, "font: 5x7 | 7x13 | tomthumb")
		icon        = flag.String("icon", def.Content.Icon, "icon id")
		mode        = flag.String("mode", def.Display.Mode, "static | blink | scroll")
		color       = flag.String("color", def.Color, "red | green | blue | #rrggbb")
		fps         = flag.Int("fps", def.FPS, "frames per second")
		theme       = flag.String("theme", "", "dark | light (default: stored preference)")
		terminal    = flag.Bool("terminal", false, "draw frames in this terminal")
		logEvery    = flag.Int("log-frames", 0, "log every Nth frame (0 disables)")
		pattern     = flag.String("pattern", "", "run a wiring test pattern: cell_sweep | module_sweep | all_on | checker")
		exportPath  = flag.String("export", "", "export one PNG to this path and exit")
		saveConfig  = flag.String("save-config", "", "write the effective config to this path and exit")
		logLevel    = flag.String("log-level", "info", "debug | info | warn | error")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	if lvl, err := zerolog.ParseLevel(*logLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	} else {
		log.Warn().Str("level", *logLevel).Msg("unknown log level; using info")
	}

	// ---- Effective config: flags first, then the file on top ----
	base := config.Default()
	base.Listen = *addr
	base.ModuleType = *moduleType
	base.Modules = *modules
	base.Arrangement = *arrangement
	base.Content.Kind = *kind
	base.Content.Text = *text
	base.Content.Font = *font
	base.Content.Icon = *icon
	base.Display.Mode = *mode
	base.Color = *color
	base.FPS = *fps
	base.Theme = *theme

	cfg, err := config.LoadOver(*configPath, base)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with flags")
		}
		cfg = base
		config.Normalize(cfg)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	core, err := app.InitCore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("init")
	}
	defer core.Close()

	// ---- One-shot modes ----
	if *saveConfig != "" {
		if err := core.SaveConfig(*saveConfig); err != nil {
			log.Fatal().Err(err).Str("path", *saveConfig).Msg("save config")
		}
		return
	}
	if *exportPath != "" {
		if err := core.Export(*exportPath); err != nil {
			core.Close()
			os.Exit(1)
		}
		return
	}

	// ---- Sinks ----
	if *terminal {
		size := core.Eng.Size()
		term := sink.NewTerminal(os.Stdout, size.Cols, size.Rows)
		core.AddSink("terminal", sink.NewDrawerSink(term))
		defer func() {
			core.Eng.RemoveDriver("terminal")
			_ = term.Halt()
		}()
	}
	if *logEvery > 0 {
		core.AddSink("log", sink.NewLogSink(log.Logger, *logEvery))
	}
	if *pattern != "" {
		if err := core.RunPattern(*pattern); err != nil {
			log.Warn().Err(err).Msg("pattern")
		}
	}

	// ---- HTTP preview ----
	var srv *http.Server
	if cfg.Listen != "" {
		srv = &http.Server{Addr: cfg.Listen, Handler: core.Preview.Handler()}
		go func() {
			log.Info().Str("addr", cfg.Listen).Msg("preview listening (/ws, /diag, /health, /export.png)")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("preview server")
				stop()
			}
		}()
	}

	<-ctx.Done()
	log.Info().Msg("shutting down")
	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}
}
