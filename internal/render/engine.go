package render

import (
	"errors"
	"fmt"
	"image/color"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/ledgrid/internal/bitmap"
	"github.com/coreman2200/ledgrid/internal/content"
	"github.com/coreman2200/ledgrid/internal/layout"
	"github.com/coreman2200/ledgrid/internal/raster"
)

// Engine owns the builder settings and turns them into frames. Setters clamp
// out-of-range input instead of failing. Safe for concurrent use.
type Engine struct {
	mu sync.Mutex

	set     Settings
	size    layout.GridSize
	color   color.RGBA
	adapter *content.Adapter

	// cached source bitmap, rebuilt when the content changes
	src      content.Source
	srcDirty bool

	memo Memo
	post PostPipeline
	drv  *Registry

	// phase, advanced by the animation clock
	offset  int
	blinkOn bool

	frameID uint64

	last Timings
}

// Timings are the durations of the most recent RenderOnce, in milliseconds.
type Timings struct {
	ComputeMS float64
	PostMS    float64
	TotalMS   float64
}

// NewEngine normalizes s and returns a ready engine. A nil adapter uses the
// built-in fonts.
func NewEngine(s Settings, adapter *content.Adapter) *Engine {
	if adapter == nil {
		adapter = content.NewAdapter(nil)
	}
	e := &Engine{
		adapter:  adapter,
		drv:      NewRegistry(),
		blinkOn:  true,
		srcDirty: true,
	}
	e.set = normalize(s)
	e.resize()
	e.color, _ = raster.LookupColor(e.set.Color)
	return e
}

func normalize(s Settings) Settings {
	s.ModuleType = layout.ModuleTypeOrDefault(s.ModuleType).ID
	s.Count = layout.ClampCount(s.Count)
	s.Arrangement = layout.ParseArrangement(string(s.Arrangement))
	if _, ok := content.ParseKind(string(s.Content.Kind)); !ok {
		s.Content.Kind = content.KindIcon
	}
	s.Content.Text = content.ClampText(s.Content.Text)
	s.Content.Canvas = s.Content.Canvas.Clone()
	if s.Content.Canvas.Empty() {
		s.Content.Canvas = content.NewCanvas()
	}
	s.TextFit = ParseFitMode(string(s.TextFit))
	s.IconFit = ParseFitMode(string(s.IconFit))
	s.Mode = ParseDisplayMode(string(s.Mode))
	s.Direction = ParseDirection(string(s.Direction))
	if _, ok := raster.LookupColor(s.Color); !ok {
		s.Color = raster.DefaultColorID
	}
	return s
}

func (e *Engine) resize() {
	e.size = layout.Resolve(layout.ModuleTypeOrDefault(e.set.ModuleType), e.set.Count, e.set.Arrangement)
}

// Settings returns a deep copy of the current settings.
func (e *Engine) Settings() Settings {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := e.set
	s.Content = s.Content.Clone()
	return s
}

func (e *Engine) Size() layout.GridSize {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.size
}

func (e *Engine) Color() color.RGBA {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.color
}

// ---- setters ----

func (e *Engine) SetModuleType(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.set.ModuleType = layout.ModuleTypeOrDefault(id).ID
	e.resize()
}

func (e *Engine) SetCount(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if c := layout.ClampCount(n); c != n {
		log.Debug().Int("requested", n).Int("count", c).Msg("module count clamped")
	}
	e.set.Count = layout.ClampCount(n)
	e.resize()
}

func (e *Engine) SetArrangement(a layout.Arrangement) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.set.Arrangement = layout.ParseArrangement(string(a))
	e.resize()
}

// SetKind ignores unknown kinds.
func (e *Engine) SetKind(k content.Kind) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if kk, ok := content.ParseKind(string(k)); ok {
		e.set.Content.Kind = kk
		e.srcDirty = true
	}
}

func (e *Engine) SetText(s string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.set.Content.Text = content.ClampText(s)
	e.srcDirty = true
}

func (e *Engine) SetFont(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.set.Content.FontID = id
	e.srcDirty = true
}

// SetIcon accepts unknown ids; they render as an empty grid.
func (e *Engine) SetIcon(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.set.Content.IconID = id
	e.srcDirty = true
}

// SetCanvas copies b.
func (e *Engine) SetCanvas(b *bitmap.Bitmap) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.set.Content.Canvas = b.Clone()
	e.srcDirty = true
}

// ToggleCanvas flips one canvas cell.
func (e *Engine) ToggleCanvas(x, y int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.set.Content.Canvas.Toggle(x, y)
	e.srcDirty = true
}

// CanvasCell maps display cell (row, col) back to the canvas cell that
// feeds it under the current fit mode and scroll phase. ok is false when
// the content is not the canvas or the cell shows no source pixel.
func (e *Engine) CanvasCell(row, col int) (x, y int, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	cv := e.set.Content.Canvas
	if e.set.Content.Kind != content.KindCanvas || cv.Empty() {
		return 0, 0, false
	}
	if row < 0 || col < 0 || row >= e.size.Rows || col >= e.size.Cols {
		return 0, 0, false
	}
	p := e.paramsLocked()
	sr, sc, ok := MapCell(row, col, e.size.Rows, e.size.Cols, cv.H, cv.W, p.Fit(), p.Scroll())
	return sc, sr, ok
}

func (e *Engine) ClearCanvas() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.set.Content.Canvas.Clear()
	e.srcDirty = true
}

func (e *Engine) SetTextFit(m FitMode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.set.TextFit = ParseFitMode(string(m))
}

func (e *Engine) SetIconFit(m FitMode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.set.IconFit = ParseFitMode(string(m))
}

func (e *Engine) SetMode(m DisplayMode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.set.Mode = ParseDisplayMode(string(m))
}

func (e *Engine) SetDirection(d Direction) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.set.Direction = ParseDirection(string(d))
}

func (e *Engine) SetSmoothing(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.set.Smoothing = on
}

// SetColor accepts a palette id or "#rrggbb"; anything else selects green.
func (e *Engine) SetColor(s string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	c, ok := raster.LookupColor(s)
	if !ok {
		s = raster.DefaultColorID
	}
	e.set.Color, e.color = s, c
}

// SetPhase is the animation clock's input.
func (e *Engine) SetPhase(offset int, blinkOn bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.offset, e.blinkOn = offset, blinkOn
}

func (e *Engine) Phase() (offset int, blinkOn bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.offset, e.blinkOn
}

// ---- drivers / post ----

func (e *Engine) AddDriver(name string, d Driver) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.drv.Register(name, d)
}

func (e *Engine) RemoveDriver(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.drv.Unregister(name)
}

func (e *Engine) Drivers() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.drv.List()
}

func (e *Engine) SetPost(p PostPipeline) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.post = p
}

// RunOverlay shows o in place of the content until it finishes.
func (e *Engine) RunOverlay(o Overlay) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.post.Overlay = o
}

// OverlayActive returns the running overlay's name, or "".
func (e *Engine) OverlayActive() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.post.Overlay == nil {
		return ""
	}
	return e.post.Overlay.Name()
}

// ---- rendering ----

// Params snapshots the inputs of ComputeDisplayGrid.
func (e *Engine) Params() Params {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.paramsLocked()
}

func (e *Engine) paramsLocked() Params {
	if e.srcDirty {
		e.src = e.adapter.Resolve(e.set.Content)
		e.srcDirty = false
	}
	return Params{
		Size:      e.size,
		Source:    e.src,
		Kind:      e.set.Content.Kind,
		TextFit:   e.set.TextFit,
		IconFit:   e.set.IconFit,
		Mode:      e.set.Mode,
		Direction: e.set.Direction,
		Offset:    e.offset,
		Smoothing: e.set.Smoothing,
	}
}

func (e *Engine) frameLocked(grid *bitmap.Bitmap) Frame {
	return Frame{
		ID:      e.frameID,
		Grid:    grid,
		Size:    e.size,
		Visible: e.set.Mode != ModeBlink || e.blinkOn,
		Color:   e.color,
		Mode:    e.set.Mode,
		Offset:  e.offset,
	}
}

// RenderOnce computes the next frame, runs the post pipeline and writes the
// frame to every driver. Driver errors are joined; the frame is still
// returned.
func (e *Engine) RenderOnce() (Frame, error) {
	start := time.Now()

	e.mu.Lock()
	grid := e.memo.Compute(e.paramsLocked())
	e.last.ComputeMS = float64(time.Since(start).Microseconds()) / 1000.0

	postStart := time.Now()
	grid, finished := e.post.apply(grid, e.size)
	overlay := e.post.Overlay != nil && !finished
	var done func(string)
	var doneName string
	if finished {
		doneName = e.post.Overlay.Name()
		done = e.post.OnOverlayDone
		e.post.Overlay = nil
	}
	e.last.PostMS = float64(time.Since(postStart).Microseconds()) / 1000.0

	e.frameID++
	f := e.frameLocked(grid)
	if overlay {
		f.Visible = true
	}
	names := e.drv.List()
	drivers := make([]Driver, 0, len(names))
	for _, name := range names {
		d, _ := e.drv.Get(name)
		drivers = append(drivers, d)
	}
	e.mu.Unlock()

	if done != nil {
		done(doneName)
	}

	var errs []error
	for _, d := range drivers {
		if err := d.Write(f); err != nil {
			errs = append(errs, fmt.Errorf("driver write: %w", err))
		}
	}

	e.mu.Lock()
	e.last.TotalMS = float64(time.Since(start).Microseconds()) / 1000.0
	e.mu.Unlock()
	return f, errors.Join(errs...)
}

// Snapshot is a self-consistent deep copy of the current frame, for export.
// It does not advance the frame counter or step overlays.
func (e *Engine) Snapshot() Frame {
	e.mu.Lock()
	defer e.mu.Unlock()
	f := e.frameLocked(e.memo.Compute(e.paramsLocked()))
	return f.Clone()
}

// Metrics returns the timings of the last RenderOnce.
func (e *Engine) Metrics() Timings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last
}

// Memo exposes cache statistics.
func (e *Engine) MemoStats() (hits, misses uint64) { return e.memo.Stats() }
