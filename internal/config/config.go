package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/coreman2200/ledgrid/internal/anim"
	"github.com/coreman2200/ledgrid/internal/content"
	"github.com/coreman2200/ledgrid/internal/glyph"
	"github.com/coreman2200/ledgrid/internal/layout"
	"github.com/coreman2200/ledgrid/internal/raster"
	"github.com/coreman2200/ledgrid/internal/render"
)

const (
	DefaultFPS = 30
	MaxFPS     = 120
	// MaxCellSize bounds the explicit cell size override (pixels).
	MaxCellSize = 64
)

type ContentCfg struct {
	Kind   string   `yaml:"kind"` // text | icon | canvas
	Text   string   `yaml:"text"`
	Font   string   `yaml:"font"`
	Icon   string   `yaml:"icon"`
	Canvas []string `yaml:"canvas,omitempty"` // rows of '#' and '.'
}

type DisplayCfg struct {
	Mode      string `yaml:"mode"` // static | blink | scroll
	TextFit   string `yaml:"text_fit"`
	IconFit   string `yaml:"icon_fit"`
	Direction string `yaml:"direction"`
	BlinkMS   int    `yaml:"blink_ms"`
	ScrollMS  int    `yaml:"scroll_ms"`
	Smoothing bool   `yaml:"smoothing"`
}

type ExportCfg struct {
	Path        string `yaml:"path"`
	Transparent bool   `yaml:"transparent"`
}

type Config struct {
	ModuleType  string `yaml:"module_type"`
	Modules     int    `yaml:"modules"`
	Arrangement string `yaml:"arrangement"`
	Color       string `yaml:"color"` // red | green | blue | #rrggbb

	Content ContentCfg `yaml:"content"`
	Display DisplayCfg `yaml:"display"`
	Export  ExportCfg  `yaml:"export"`

	CellSize int    `yaml:"cell_size"` // 0 = fit the 400px preview box
	FPS      int    `yaml:"fps"`
	Theme    string `yaml:"theme,omitempty"` // empty = stored preference
	Prefs    string `yaml:"prefs_path,omitempty"`
	Listen   string `yaml:"listen"`
}

// Default mirrors render.DefaultSettings plus the shell options.
func Default() *Config {
	s := render.DefaultSettings()
	return &Config{
		ModuleType:  s.ModuleType,
		Modules:     s.Count,
		Arrangement: string(s.Arrangement),
		Color:       s.Color,
		Content: ContentCfg{
			Kind: string(s.Content.Kind),
			Text: s.Content.Text,
			Font: glyph.DefaultFontID,
			Icon: s.Content.IconID,
		},
		Display: DisplayCfg{
			Mode:      string(s.Mode),
			TextFit:   string(s.TextFit),
			IconFit:   string(s.IconFit),
			Direction: string(s.Direction),
			BlinkMS:   anim.BlinkDefaultMS,
			ScrollMS:  anim.ScrollDefaultMS,
		},
		Export: ExportCfg{Path: raster.DefaultExportName},
		FPS:    DefaultFPS,
		Listen: ":8080",
	}
}

// Normalize clamps every field into range, replacing unknown values with
// defaults. It never fails.
func Normalize(c *Config) {
	d := Default()
	c.ModuleType = layout.ModuleTypeOrDefault(c.ModuleType).ID
	c.Modules = layout.ClampCount(c.Modules)
	c.Arrangement = string(layout.ParseArrangement(c.Arrangement))
	if _, ok := raster.LookupColor(c.Color); !ok {
		c.Color = d.Color
	}

	if k, ok := content.ParseKind(c.Content.Kind); ok {
		c.Content.Kind = string(k)
	} else {
		c.Content.Kind = d.Content.Kind
	}
	c.Content.Text = content.ClampText(c.Content.Text)
	if !glyph.DefaultRegistry().Has(c.Content.Font) {
		c.Content.Font = glyph.DefaultFontID
	}

	c.Display.Mode = string(render.ParseDisplayMode(c.Display.Mode))
	c.Display.TextFit = string(render.ParseFitMode(c.Display.TextFit))
	c.Display.IconFit = string(render.ParseFitMode(c.Display.IconFit))
	c.Display.Direction = string(render.ParseDirection(c.Display.Direction))
	c.Display.BlinkMS = anim.ClampBlink(orDefault(c.Display.BlinkMS, d.Display.BlinkMS))
	c.Display.ScrollMS = anim.ClampScroll(orDefault(c.Display.ScrollMS, d.Display.ScrollMS))

	if c.CellSize != 0 {
		c.CellSize = min(max(c.CellSize, layout.MinCellSize), MaxCellSize)
	}
	c.FPS = min(max(orDefault(c.FPS, DefaultFPS), 1), MaxFPS)
	if c.Theme != "" {
		t, _ := raster.ParseTheme(c.Theme)
		c.Theme = string(t)
	}
	if c.Export.Path == "" {
		c.Export.Path = d.Export.Path
	}
}

func orDefault(v, d int) int {
	if v <= 0 {
		return d
	}
	return v
}

// Settings converts the file representation into engine settings.
func (c *Config) Settings() render.Settings {
	kind, _ := content.ParseKind(c.Content.Kind)
	canvas := content.ParseCanvas(c.Content.Canvas)
	return render.Settings{
		ModuleType:  c.ModuleType,
		Count:       c.Modules,
		Arrangement: layout.Arrangement(c.Arrangement),
		Content: content.Content{
			Kind:   kind,
			Text:   c.Content.Text,
			FontID: c.Content.Font,
			IconID: c.Content.Icon,
			Canvas: canvas,
		},
		TextFit:   render.FitMode(c.Display.TextFit),
		IconFit:   render.FitMode(c.Display.IconFit),
		Mode:      render.DisplayMode(c.Display.Mode),
		Direction: render.Direction(c.Display.Direction),
		Smoothing: c.Display.Smoothing,
		Color:     c.Color,
	}
}

// ApplySettings copies engine settings back, e.g. before Save.
func (c *Config) ApplySettings(s render.Settings) {
	c.ModuleType = s.ModuleType
	c.Modules = s.Count
	c.Arrangement = string(s.Arrangement)
	c.Color = s.Color
	c.Content.Kind = string(s.Content.Kind)
	c.Content.Text = s.Content.Text
	c.Content.Font = s.Content.FontID
	c.Content.Icon = s.Content.IconID
	c.Content.Canvas = nil
	if s.Content.Canvas.Count() > 0 {
		c.Content.Canvas = content.CanvasRows(s.Content.Canvas)
	}
	c.Display.Mode = string(s.Mode)
	c.Display.TextFit = string(s.TextFit)
	c.Display.IconFit = string(s.IconFit)
	c.Display.Direction = string(s.Direction)
	c.Display.Smoothing = s.Smoothing
}

// Load reads path over the defaults and normalizes the result.
func Load(path string) (*Config, error) {
	return LoadOver(path, Default())
}

// LoadOver reads path over a copy of base: keys present in the file win,
// everything else keeps base's value.
func LoadOver(path string, base *Config) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cp := *base
	c := &cp
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	Normalize(c)
	return c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
