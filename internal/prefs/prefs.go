// Package prefs persists user preferences (currently the colour theme) as a
// small JSON key/value file.
package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/ledgrid/internal/raster"
)

const (
	prefsFile = "preferences.json"
	appDir    = "ledgrid"

	// ThemeKey is the storage key of the theme preference.
	ThemeKey = "led-grid-builder-theme"
)

// Prefs stores preferences as a key-value map. Safe for concurrent use.
type Prefs struct {
	mu     sync.RWMutex
	values map[string]any
	path   string
}

// DefaultPath is $XDG_CONFIG_HOME/ledgrid/preferences.json (or the
// platform equivalent).
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, appDir, prefsFile)
}

// Open reads preferences from path ("" selects DefaultPath). A missing or
// unreadable file yields empty preferences; the error is only logged.
func Open(path string) *Prefs {
	if path == "" {
		path = DefaultPath()
	}
	p := &Prefs{values: make(map[string]any), path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Debug().Err(err).Str("path", path).Msg("prefs read failed")
		}
		return p
	}
	if err := json.Unmarshal(data, &p.values); err != nil {
		log.Debug().Err(err).Str("path", path).Msg("prefs decode failed")
		p.values = make(map[string]any)
	}
	return p
}

func (p *Prefs) Path() string { return p.path }

// Save writes preferences to disk.
func (p *Prefs) Save() error {
	p.mu.RLock()
	data, err := json.MarshalIndent(p.values, "", "  ")
	p.mu.RUnlock()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("prefs dir: %w", err)
	}
	if err := os.WriteFile(p.path, data, 0o644); err != nil {
		return fmt.Errorf("prefs write: %w", err)
	}
	return nil
}

// String returns a string preference, or "" if not set.
func (p *Prefs) String(key string) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if s, ok := p.values[key].(string); ok {
		return s
	}
	return ""
}

func (p *Prefs) SetString(key, val string) {
	p.mu.Lock()
	p.values[key] = val
	p.mu.Unlock()
}

// Theme returns the stored theme, falling back to dark for absent or
// unknown values.
func (p *Prefs) Theme() raster.Theme {
	t, _ := raster.ParseTheme(p.String(ThemeKey))
	return t
}

// SetTheme stores t and saves immediately. Failures are logged and
// swallowed; the in-memory value still changes.
func (p *Prefs) SetTheme(t raster.Theme) {
	t, _ = raster.ParseTheme(string(t))
	p.SetString(ThemeKey, string(t))
	if err := p.Save(); err != nil {
		log.Debug().Err(err).Str("path", p.path).Msg("theme not persisted")
	}
}
