// Package anim advances the blink phase and scroll offset consumed by the
// display grid. It owns no rendering state; hooks push the phase out.
package anim

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/ledgrid/internal/render"
)

const (
	BlinkMinMS     = 100
	BlinkMaxMS     = 2000
	BlinkDefaultMS = 500

	ScrollMinMS     = 20
	ScrollMaxMS     = 300
	ScrollDefaultMS = 50
)

// Hooks are called after every tick, with the clock lock held. They must not
// call back into the clock.
type Hooks struct {
	// OnPhase receives the new phase after a tick.
	OnPhase func(offset int, blinkOn bool)
	// OnMode fires when the active mode changes.
	OnMode func(m render.DisplayMode)
}

// Ticker is the subset of *time.Ticker the clock needs.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// NewTickerFunc creates a Ticker firing every d.
type NewTickerFunc func(d time.Duration) Ticker

type realTicker struct{ t *time.Ticker }

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

// RealTicker wraps time.NewTicker.
func RealTicker(d time.Duration) Ticker { return realTicker{time.NewTicker(d)} }

// Option configures a Clock.
type Option func(*Clock)

// WithTicker replaces the wall-clock ticker, e.g. with a manual one in tests.
func WithTicker(fn NewTickerFunc) Option {
	return func(c *Clock) {
		if fn != nil {
			c.newTicker = fn
		}
	}
}

// WithSpeeds sets the initial blink and scroll intervals (clamped).
func WithSpeeds(blinkMS, scrollMS int) Option {
	return func(c *Clock) {
		c.blinkMS = ClampBlink(blinkMS)
		c.scrollMS = ClampScroll(scrollMS)
	}
}

// Clock runs at most one ticker goroutine, for the blink or scroll mode.
// Static mode runs none.
type Clock struct {
	mu sync.Mutex

	mode     render.DisplayMode
	blinkMS  int
	scrollMS int

	offset  int
	blinkOn bool

	hooks     Hooks
	newTicker NewTickerFunc

	// running ticker; gen invalidates ticks that lost the race with a
	// mode or speed change.
	gen    uint64
	cancel context.CancelFunc
	done   chan struct{}
}

// New returns a stopped clock in static mode.
func New(h Hooks, opts ...Option) *Clock {
	c := &Clock{
		mode:      render.ModeStatic,
		blinkMS:   BlinkDefaultMS,
		scrollMS:  ScrollDefaultMS,
		blinkOn:   true,
		hooks:     h,
		newTicker: RealTicker,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func ClampBlink(ms int) int  { return min(max(ms, BlinkMinMS), BlinkMaxMS) }
func ClampScroll(ms int) int { return min(max(ms, ScrollMinMS), ScrollMaxMS) }

// SetMode tears down the running ticker and starts the one for m, if any.
// No tick from the old ticker is delivered after SetMode returns.
func (c *Clock) SetMode(m render.DisplayMode) {
	m = render.ParseDisplayMode(string(m))
	c.mu.Lock()
	done := c.stopLocked()
	changed := c.mode != m
	c.mode = m
	c.startLocked()
	if changed && c.hooks.OnMode != nil {
		c.hooks.OnMode(m)
	}
	c.mu.Unlock()
	wait(done)
}

func (c *Clock) Mode() render.DisplayMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// SetBlinkSpeed clamps ms to [100, 2000]. A running blink ticker restarts,
// so the next toggle is one new interval away.
func (c *Clock) SetBlinkSpeed(ms int) {
	c.setSpeed(&c.blinkMS, ClampBlink(ms), render.ModeBlink)
}

// SetScrollSpeed clamps ms to [20, 300].
func (c *Clock) SetScrollSpeed(ms int) {
	c.setSpeed(&c.scrollMS, ClampScroll(ms), render.ModeScroll)
}

func (c *Clock) setSpeed(field *int, ms int, mode render.DisplayMode) {
	c.mu.Lock()
	if *field == ms {
		c.mu.Unlock()
		return
	}
	*field = ms
	var done chan struct{}
	if c.mode == mode {
		done = c.stopLocked()
		c.startLocked()
	}
	c.mu.Unlock()
	wait(done)
}

// Speeds returns the clamped intervals in milliseconds.
func (c *Clock) Speeds() (blinkMS, scrollMS int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.blinkMS, c.scrollMS
}

// Phase returns the current scroll offset and blink state.
func (c *Clock) Phase() (offset int, blinkOn bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.offset, c.blinkOn
}

// Step advances one tick of the current mode synchronously. Static mode is
// a no-op.
func (c *Clock) Step() (offset int, blinkOn bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tickLocked()
	return c.offset, c.blinkOn
}

// Reset zeroes the offset and turns the blink phase on.
func (c *Clock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.offset, c.blinkOn = 0, true
	if c.hooks.OnPhase != nil {
		c.hooks.OnPhase(c.offset, c.blinkOn)
	}
}

// Stop cancels the ticker and waits for its goroutine to exit. The mode is
// kept; a later SetMode starts ticking again.
func (c *Clock) Stop() {
	c.mu.Lock()
	done := c.stopLocked()
	c.mu.Unlock()
	wait(done)
}

// Running reports whether a ticker goroutine is active.
func (c *Clock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancel != nil
}

func (c *Clock) tickLocked() {
	switch c.mode {
	case render.ModeBlink:
		c.blinkOn = !c.blinkOn
	case render.ModeScroll:
		c.offset++
	default:
		return
	}
	if c.hooks.OnPhase != nil {
		c.hooks.OnPhase(c.offset, c.blinkOn)
	}
}

func (c *Clock) interval() time.Duration {
	switch c.mode {
	case render.ModeBlink:
		return time.Duration(c.blinkMS) * time.Millisecond
	case render.ModeScroll:
		return time.Duration(c.scrollMS) * time.Millisecond
	}
	return 0
}

func (c *Clock) startLocked() {
	d := c.interval()
	if d == 0 {
		return
	}
	c.gen++
	gen := c.gen
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	c.cancel, c.done = cancel, done
	t := c.newTicker(d)
	log.Debug().Str("mode", string(c.mode)).Dur("interval", d).Msg("clock ticker started")

	go func() {
		defer close(done)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C():
				c.mu.Lock()
				if ctx.Err() != nil || c.gen != gen {
					c.mu.Unlock()
					return
				}
				c.tickLocked()
				c.mu.Unlock()
			}
		}
	}()
}

// stopLocked cancels the running ticker and returns its done channel.
func (c *Clock) stopLocked() chan struct{} {
	if c.cancel == nil {
		return nil
	}
	c.gen++
	c.cancel()
	done := c.done
	c.cancel, c.done = nil, nil
	return done
}

func wait(done chan struct{}) {
	if done != nil {
		<-done
	}
}
