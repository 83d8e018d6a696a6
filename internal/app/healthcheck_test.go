package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/specialistvlad/workgraph/internal/graph"
	"github.com/specialistvlad/workgraph/internal/node"
	"github.com/specialistvlad/workgraph/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, cfg Config) (*App, *testutil.SafeBuffer) {
	t.Helper()
	if cfg.Concurrency == 0 {
		cfg.Concurrency = 2
	}
	if cfg.GraphPath == "" {
		cfg.GraphPath = "unused.hcl"
	}
	config, err := NewConfig(cfg)
	require.NoError(t, err)

	out := &testutil.SafeBuffer{}
	return NewApp(out, config), out
}

func TestHealthHandler(t *testing.T) {
	a, _ := newTestApp(t, Config{})

	rec := httptest.NewRecorder()
	a.healthMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK\n", rec.Body.String())
}

func TestStatusHandler(t *testing.T) {
	t.Run("before the graph is loaded", func(t *testing.T) {
		a, _ := newTestApp(t, Config{})

		rec := httptest.NewRecorder()
		a.healthMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var got statusResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, 0, got.Total)
		assert.Equal(t, 0, got.States["PENDING"])
		assert.Len(t, got.States, len(node.States()))
	})

	t.Run("counts nodes per state", func(t *testing.T) {
		a, _ := newTestApp(t, Config{})

		g := graph.New()
		_, err := g.AddStack("network", &node.Stack{Name: "network"})
		require.NoError(t, err)
		app, err := g.AddStack("app", &node.Stack{Name: "app"}, "network")
		require.NoError(t, err)
		require.NoError(t, app.Transition(node.Pending, node.Queued))
		a.graph.Store(g)

		rec := httptest.NewRecorder()
		a.healthMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var got statusResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, 2, got.Total)
		assert.Equal(t, 1, got.States["PENDING"])
		assert.Equal(t, 1, got.States["QUEUED"])
		assert.Equal(t, 0, got.States["COMPLETED"])
	})

	t.Run("rejects other methods", func(t *testing.T) {
		a, _ := newTestApp(t, Config{})

		rec := httptest.NewRecorder()
		a.healthMux().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/status", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestHealthcheckServerLifecycle(t *testing.T) {
	t.Run("close without start", func(t *testing.T) {
		a, out := newTestApp(t, Config{LogLevel: "debug"})

		a.closeHealthcheckServer(context.Background())
		assert.Contains(t, out.String(), "Health check server was not running.")
	})

	t.Run("start then close", func(t *testing.T) {
		l, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		port := l.Addr().(*net.TCPAddr).Port
		require.NoError(t, l.Close())

		a, out := newTestApp(t, Config{HealthcheckPort: port, LogLevel: "debug"})
		ctx := context.Background()
		require.NoError(t, a.startHealthcheckServer(ctx))

		resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/health", port))
		require.NoError(t, err)
		require.NoError(t, resp.Body.Close())
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		a.closeHealthcheckServer(ctx)
		assert.Contains(t, out.String(), "Health check server shut down gracefully.")
	})
}
