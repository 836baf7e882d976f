package preview

import (
	"encoding/json"
	"errors"
	"image/color"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/ledgrid/internal/bitmap"
	diag "github.com/coreman2200/ledgrid/internal/diagnostics"
	"github.com/coreman2200/ledgrid/internal/layout"
	"github.com/coreman2200/ledgrid/internal/render"
)

func testFrame(id uint64) render.Frame {
	return render.Frame{
		ID:      id,
		Grid:    bitmap.Parse("#.\n.#"),
		Size:    layout.GridSize{Cols: 2, Rows: 2, LayoutCols: 1, LayoutRows: 1},
		Visible: true,
		Color:   color.RGBA{0xe6, 0x39, 0x46, 0xff},
		Mode:    render.ModeBlink,
	}
}

func dial(t *testing.T, srv *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func readJSON(t *testing.T, c *websocket.Conn) map[string]any {
	t.Helper()
	require.NoError(t, c.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, b, err := c.ReadMessage()
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	return m
}

func TestFrameStream(t *testing.T) {
	s := NewServer(nil)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	c := dial(t, srv, "/ws")
	hello := readJSON(t, c)
	assert.Equal(t, "topology", hello["type"])

	require.NoError(t, s.Write(testFrame(3)))
	top := readJSON(t, c)
	assert.Equal(t, "topology", top["type"], "size change is announced")
	assert.EqualValues(t, 2, top["cols"])

	f := readJSON(t, c)
	assert.Equal(t, "frame", f["type"])
	assert.EqualValues(t, 3, f["frame_id"])
	assert.Equal(t, "#e63946", f["color"])
	assert.Equal(t, "blink", f["mode"])
	assert.Equal(t, []any{"#.", ".#"}, f["grid"])

	// same size: no second topology message
	require.NoError(t, s.Write(testFrame(4)))
	f = readJSON(t, c)
	assert.Equal(t, "frame", f["type"])
	assert.EqualValues(t, 4, f["frame_id"])
}

func TestControlMessagesIgnored(t *testing.T) {
	s := NewServer(nil)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	c := dial(t, srv, "/ws")
	readJSON(t, c)
	require.NoError(t, c.WriteMessage(websocket.TextMessage, []byte(`{"count":64}`)))
	require.NoError(t, s.Write(testFrame(1)))
	readJSON(t, c)
	f := readJSON(t, c)
	assert.EqualValues(t, 2, f["cols"])
}

func TestDiagStream(t *testing.T) {
	s := NewServer(nil)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	c := dial(t, srv, "/diag")
	require.Eventually(t, func() bool {
		s.mu.RLock()
		defer s.mu.RUnlock()
		return len(s.diagClients) == 1
	}, time.Second, 5*time.Millisecond)

	s.PushDiag(diag.New(diag.Info, diag.PatternDone, "Pattern complete"))
	m := readJSON(t, c)
	assert.Equal(t, "PATTERN.DONE", m["code"])
	assert.Equal(t, "info", m["severity"])
}

func TestHealth(t *testing.T) {
	s := NewServer(nil)
	require.NoError(t, s.Write(testFrame(9)))

	rec := httptest.NewRecorder()
	s.HandleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	assert.EqualValues(t, 9, m["frame_id"])
	assert.EqualValues(t, 1, m["frames"])
	assert.EqualValues(t, 2, m["cols"])
	assert.Equal(t, "blink", m["mode"])
	assert.NotContains(t, m, "total_ms")
}

func TestHealthReportsRenderTimings(t *testing.T) {
	s := NewServer(nil)
	s.SetTimings(func() render.Timings {
		return render.Timings{ComputeMS: 0.25, PostMS: 0.5, TotalMS: 1.5}
	})

	rec := httptest.NewRecorder()
	s.HandleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	assert.Equal(t, 0.25, m["compute_ms"])
	assert.Equal(t, 0.5, m["post_ms"])
	assert.Equal(t, 1.5, m["total_ms"])
}

func TestExport(t *testing.T) {
	s := NewServer(ExporterFunc(func(w io.Writer) error {
		_, err := w.Write([]byte("\x89PNG"))
		return err
	}))
	rec := httptest.NewRecorder()
	s.HandleExport(rec, httptest.NewRequest(http.MethodGet, "/export.png", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "\x89PNG", rec.Body.String())

	s = NewServer(ExporterFunc(func(io.Writer) error { return errors.New("empty grid") }))
	rec = httptest.NewRecorder()
	s.HandleExport(rec, httptest.NewRequest(http.MethodGet, "/export.png", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = httptest.NewRecorder()
	NewServer(nil).HandleExport(rec, httptest.NewRequest(http.MethodGet, "/export.png", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
