// Package preview serves a read-only live view of the LED grid: a websocket
// frame stream, a diagnostics stream, a health endpoint and PNG export.
// Nothing received from clients changes the builder state.
package preview

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	diag "github.com/coreman2200/ledgrid/internal/diagnostics"
	"github.com/coreman2200/ledgrid/internal/layout"
	"github.com/coreman2200/ledgrid/internal/raster"
	"github.com/coreman2200/ledgrid/internal/render"
)

const writeWait = 200 * time.Millisecond

// Exporter renders the current grid as a PNG.
type Exporter interface {
	ExportPNG(w io.Writer) error
}

// ExporterFunc adapts a function to Exporter.
type ExporterFunc func(w io.Writer) error

func (fn ExporterFunc) ExportPNG(w io.Writer) error { return fn(w) }

// Server fans frames and diagnostics out to websocket clients. It is a
// render.Driver.
type Server struct {
	mu          sync.RWMutex
	wmu         sync.Mutex // one writer per connection at a time
	clients     map[*websocket.Conn]bool
	diagClients map[*websocket.Conn]bool

	exporter  Exporter
	timings   func() render.Timings
	upgrader  websocket.Upgrader
	startTime time.Time

	frameID uint64
	frames  uint64
	size    layout.GridSize
	mode    render.DisplayMode
}

var _ render.Driver = (*Server)(nil)

// NewServer returns a server; ex may be nil to disable /export.png.
func NewServer(ex Exporter) *Server {
	return &Server{
		clients:     map[*websocket.Conn]bool{},
		diagClients: map[*websocket.Conn]bool{},
		exporter:    ex,
		upgrader:    websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		startTime:   time.Now(),
	}
}

// SetTimings reports fn's render timings on /health.
func (s *Server) SetTimings(fn func() render.Timings) {
	s.mu.Lock()
	s.timings = fn
	s.mu.Unlock()
}

// Handler routes /ws, /diag, /health and /export.png.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.HandleFramesWS)
	mux.HandleFunc("/diag", s.HandleDiagWS)
	mux.HandleFunc("/health", s.HandleHealth)
	mux.HandleFunc("/export.png", s.HandleExport)
	return mux
}

type topologyMsg struct {
	Type       string `json:"type"`
	Cols       int    `json:"cols"`
	Rows       int    `json:"rows"`
	LayoutCols int    `json:"layoutCols"`
	LayoutRows int    `json:"layoutRows"`
}

type frameMsg struct {
	Type    string   `json:"type"`
	T       int64    `json:"t"`
	FrameID uint64   `json:"frame_id"`
	Cols    int      `json:"cols"`
	Rows    int      `json:"rows"`
	Visible bool     `json:"visible"`
	Color   string   `json:"color"`
	Mode    string   `json:"mode"`
	Offset  int      `json:"offset"`
	Grid    []string `json:"grid"`
}

// Write broadcasts f to frame clients. Slow clients are skipped, never
// waited on beyond a short deadline.
func (s *Server) Write(f render.Frame) error {
	msg := frameMsg{
		Type:    "frame",
		T:       time.Now().UnixNano(),
		FrameID: f.ID,
		Cols:    f.Size.Cols,
		Rows:    f.Size.Rows,
		Visible: f.Visible,
		Color:   raster.Hex(f.Color),
		Mode:    string(f.Mode),
		Offset:  f.Offset,
	}
	if !f.Grid.Empty() {
		msg.Grid = strings.Split(f.Grid.String(), "\n")
	}
	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	s.mu.Lock()
	resized := s.size != f.Size
	s.frameID, s.size, s.mode = f.ID, f.Size, f.Mode
	s.frames++
	conns := keys(s.clients)
	s.mu.Unlock()

	if resized {
		top, _ := json.Marshal(s.topology())
		s.broadcast(conns, top)
	}
	s.broadcast(conns, b)
	return nil
}

// PushDiag sends d to diagnostics clients.
func (s *Server) PushDiag(d diag.Diagnostic) {
	b, err := json.Marshal(d)
	if err != nil {
		return
	}
	s.mu.RLock()
	conns := keys(s.diagClients)
	s.mu.RUnlock()
	s.broadcast(conns, b)
}

func (s *Server) broadcast(conns []*websocket.Conn, b []byte) {
	s.wmu.Lock()
	defer s.wmu.Unlock()
	for _, c := range conns {
		c.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
			log.Debug().Err(err).Str("remote", c.RemoteAddr().String()).Msg("preview write")
		}
	}
}

func (s *Server) topology() topologyMsg {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return topologyMsg{
		Type:       "topology",
		Cols:       s.size.Cols,
		Rows:       s.size.Rows,
		LayoutCols: s.size.LayoutCols,
		LayoutRows: s.size.LayoutRows,
	}
}

func (s *Server) HandleFramesWS(w http.ResponseWriter, r *http.Request) {
	s.serveWS(w, r, s.clients, true)
}

func (s *Server) HandleDiagWS(w http.ResponseWriter, r *http.Request) {
	s.serveWS(w, r, s.diagClients, false)
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request, set map[*websocket.Conn]bool, hello bool) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.mu.Lock()
	set[conn] = true
	s.mu.Unlock()
	if hello {
		b, _ := json.Marshal(s.topology())
		s.broadcast([]*websocket.Conn{conn}, b)
	}

	go func() {
		defer func() {
			s.mu.Lock()
			delete(set, conn)
			s.mu.Unlock()
			conn.Close()
		}()
		// drain and discard; the preview accepts no control messages
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	resp := map[string]any{
		"frame_id":     s.frameID,
		"frames":       s.frames,
		"uptime_s":     time.Since(s.startTime).Seconds(),
		"cols":         s.size.Cols,
		"rows":         s.size.Rows,
		"mode":         string(s.mode),
		"clients":      len(s.clients),
		"diag_clients": len(s.diagClients),
	}
	timings := s.timings
	s.mu.RUnlock()
	if timings != nil {
		t := timings()
		resp["compute_ms"] = t.ComputeMS
		resp["post_ms"] = t.PostMS
		resp["total_ms"] = t.TotalMS
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// HandleExport responds with the current grid as PNG.
func (s *Server) HandleExport(w http.ResponseWriter, r *http.Request) {
	if s.exporter == nil {
		http.Error(w, "export disabled", http.StatusNotFound)
		return
	}
	var buf bytes.Buffer
	if err := s.exporter.ExportPNG(&buf); err != nil {
		log.Warn().Err(err).Msg("preview export failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", `inline; filename="`+raster.DefaultExportName+`"`)
	_, _ = w.Write(buf.Bytes())
}

// Close disconnects every client.
func (s *Server) Close() {
	s.mu.Lock()
	conns := append(keys(s.clients), keys(s.diagClients)...)
	s.mu.Unlock()
	for _, c := range conns {
		c.Close()
	}
}

func keys(m map[*websocket.Conn]bool) []*websocket.Conn {
	out := make([]*websocket.Conn, 0, len(m))
	for c := range m {
		out = append(out, c)
	}
	return out
}
