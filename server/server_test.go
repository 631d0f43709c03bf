package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staticserver/accesslog"
	"staticserver/config"
)

// memoryRecorder collects entries for assertions.
type memoryRecorder struct {
	mu      sync.Mutex
	entries []accesslog.Entry
}

func (r *memoryRecorder) Record(e accesslog.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
	return nil
}

func (r *memoryRecorder) Close() {}

func (r *memoryRecorder) all() []accesslog.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]accesslog.Entry(nil), r.entries...)
}

func newTestServer(t *testing.T) (*Server, *memoryRecorder) {
	t.Helper()
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "index.html"), "<html><head><title>Home</title></head></html>")
	writeFile(t, filepath.Join(root, "assets", "test.css"), "body { margin: 0; }")

	cfg := config.Default()
	cfg.Host = "127.0.0.1"
	cfg.Port = 0
	cfg.StaticRoot = root

	rec := &memoryRecorder{}
	return New(cfg, rec), rec
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func do(t *testing.T, s *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	return rr
}

func TestServeHome(t *testing.T) {
	s, _ := newTestServer(t)

	rr := do(t, s, http.MethodGet, "/")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), "<title>Home</title>")
}

func TestMethodIgnored(t *testing.T) {
	s, _ := newTestServer(t)

	get := do(t, s, http.MethodGet, "/")
	post := do(t, s, http.MethodPost, "/")

	assert.Equal(t, get.Code, post.Code)
	assert.Equal(t, get.Header().Get("Content-Type"), post.Header().Get("Content-Type"))
	assert.Equal(t, get.Body.String(), post.Body.String())
}

func TestServeAsset(t *testing.T) {
	s, _ := newTestServer(t)

	rr := do(t, s, http.MethodGet, "/assets/test.css")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/css", rr.Header().Get("Content-Type"))
	assert.Equal(t, "body { margin: 0; }", rr.Body.String())
}

func TestNotFoundBodies(t *testing.T) {
	s, _ := newTestServer(t)

	asset := do(t, s, http.MethodGet, "/assets/nonexistent.xyz")
	assert.Equal(t, http.StatusNotFound, asset.Code)
	assert.Equal(t, "Not Found", asset.Body.String())

	route := do(t, s, http.MethodGet, "/nowhere")
	assert.Equal(t, http.StatusNotFound, route.Code)
	assert.Equal(t, "Page Not Found", route.Body.String())
}

func TestRequestIDHeader(t *testing.T) {
	s, _ := newTestServer(t)

	rr := do(t, s, http.MethodGet, "/")
	assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))
}

func TestAccessLogRecorded(t *testing.T) {
	s, rec := newTestServer(t)

	do(t, s, http.MethodGet, "/nowhere")

	entries := rec.all()
	require.Len(t, entries, 1)
	assert.Equal(t, http.MethodGet, entries[0].Method)
	assert.Equal(t, "/nowhere", entries[0].Path)
	assert.Equal(t, http.StatusNotFound, entries[0].Status)
	assert.NotEmpty(t, entries[0].ID)
}

func TestStartAndShutdown(t *testing.T) {
	s, _ := newTestServer(t)
	require.NoError(t, s.Start())
	defer shutdown(t, s)

	resp, err := http.Get("http://" + s.Addr() + "/assets/test.css")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/css", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "body { margin: 0; }", string(body))
}

func TestConcurrentInstances(t *testing.T) {
	first, _ := newTestServer(t)
	second, _ := newTestServer(t)

	require.NoError(t, first.Start())
	defer shutdown(t, first)
	require.NoError(t, second.Start())
	defer shutdown(t, second)

	assert.NotEqual(t, first.Addr(), second.Addr())

	for _, s := range []*Server{first, second} {
		resp, err := http.Get("http://" + s.Addr() + "/")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
}

func shutdown(t *testing.T, s *Server) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))
}
