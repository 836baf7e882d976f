package render

import (
	"image/color"
	"sort"

	"github.com/coreman2200/ledgrid/internal/bitmap"
	"github.com/coreman2200/ledgrid/internal/content"
	"github.com/coreman2200/ledgrid/internal/layout"
)

// Frame is one computed display state.
type Frame struct {
	ID      uint64
	Grid    *bitmap.Bitmap
	Size    layout.GridSize
	Visible bool
	Color   color.RGBA
	Mode    DisplayMode
	Offset  int
}

// Lit reports whether LED (row, col) is shown lit in this frame.
func (f Frame) Lit(row, col int) bool {
	return f.Visible && f.Grid.At(col, row)
}

func (f Frame) Clone() Frame {
	f.Grid = f.Grid.Clone()
	return f
}

// Driver receives every rendered frame (preview window, terminal, websocket,
// physical display).
type Driver interface {
	Write(Frame) error
}

// DriverFunc adapts a function to Driver.
type DriverFunc func(Frame) error

func (fn DriverFunc) Write(f Frame) error { return fn(f) }

// Settings is the user-facing configuration of the engine.
type Settings struct {
	ModuleType  string
	Count       int
	Arrangement layout.Arrangement
	Content     content.Content
	TextFit     FitMode
	IconFit     FitMode
	Mode        DisplayMode
	Direction   Direction
	Smoothing   bool
	Color       string
}

// DefaultSettings matches the builder's start-up state: four 8×8 modules in
// a square showing the heart icon.
func DefaultSettings() Settings {
	return Settings{
		ModuleType:  layout.DefaultModuleTypeID,
		Count:       4,
		Arrangement: layout.Square,
		Content: content.Content{
			Kind:   content.KindIcon,
			Text:   "HELLO",
			IconID: "heart",
			Canvas: content.NewCanvas(),
		},
		TextFit:   FitFill,
		IconFit:   FitFill,
		Mode:      ModeStatic,
		Direction: Left,
		Color:     "green",
	}
}

// Registry keeps named drivers so shells can attach and detach them.
type Registry struct{ m map[string]Driver }

func NewRegistry() *Registry { return &Registry{m: map[string]Driver{}} }

func (r *Registry) Register(name string, d Driver) {
	if d == nil {
		return
	}
	r.m[name] = d
}

func (r *Registry) Unregister(name string) { delete(r.m, name) }

func (r *Registry) Get(name string) (Driver, bool) {
	d, ok := r.m[name]
	return d, ok
}

func (r *Registry) List() []string {
	out := make([]string, 0, len(r.m))
	for k := range r.m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
