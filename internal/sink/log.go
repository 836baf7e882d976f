package sink

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/coreman2200/ledgrid/internal/render"
)

// LogSink logs a compact summary of every Nth frame, useful for headless
// runs.
type LogSink struct {
	mu    sync.Mutex
	log   zerolog.Logger
	every int
	count int
}

// NewLogSink logs one frame in every (<=1 logs all).
func NewLogSink(l zerolog.Logger, every int) *LogSink {
	return &LogSink{log: l, every: max(every, 1)}
}

func (s *LogSink) Write(f render.Frame) error {
	s.mu.Lock()
	s.count++
	n := s.count
	s.mu.Unlock()
	if (n-1)%s.every != 0 {
		return nil
	}
	lit := 0
	if f.Visible {
		lit = f.Grid.Count()
	}
	s.log.Info().
		Uint64("frame", f.ID).
		Int("cols", f.Size.Cols).
		Int("rows", f.Size.Rows).
		Int("lit", lit).
		Str("mode", string(f.Mode)).
		Int("offset", f.Offset).
		Msg("frame")
	return nil
}

// Count returns how many frames were written.
func (s *LogSink) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}
