package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiveReloadInjection(t *testing.T) {
	h := testRouter(t, WithLiveReload(NewHub()))

	rec := get(t, h, "/blog/post-a")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "new WebSocket")
	assert.Equal(t, "no-cache, no-store, must-revalidate", rec.Header().Get("Cache-Control"))

	rec = get(t, h, "/blog/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotContains(t, rec.Body.String(), "new WebSocket")

	rec = get(t, h, "/api/posts")
	assert.NotContains(t, rec.Body.String(), "new WebSocket")
}

func TestLiveReloadWrapperSkipsNonHTML(t *testing.T) {
	h := liveReloadWrapper(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("</body>"))
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "</body>", rec.Body.String())
}

func TestHubBroadcastsReload(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(testRouter(t, WithLiveReload(hub)))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)
	hub.Reload()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, reloadMessage, string(msg))

	hub.Close()
	assert.Equal(t, 0, hub.Clients())
}

func TestWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir, filepath.Join(dir, "missing"))
	require.NoError(t, err)
	w.debounce = 0
	w.settle = 0
	assert.Len(t, w.Dirs(), 1)

	var changes atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, func(string) { changes.Add(1) }) }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "post.mdoc"), []byte("x"), 0o644))
	require.Eventually(t, func() bool { return changes.Load() > 0 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
