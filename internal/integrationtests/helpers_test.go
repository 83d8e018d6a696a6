package integrationtests

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/specialistvlad/workgraph/internal/graph"
	"github.com/specialistvlad/workgraph/internal/hclgraph"
	"github.com/specialistvlad/workgraph/internal/localexecutor"
	"github.com/specialistvlad/workgraph/internal/publishcache"
	"github.com/specialistvlad/workgraph/internal/runstore"
	"github.com/specialistvlad/workgraph/internal/shell"
	"github.com/specialistvlad/workgraph/internal/testutil"
	"github.com/stretchr/testify/require"
)

// result is what a deployment left behind.
type result struct {
	Err    error
	Graph  *graph.WorkGraph
	Runs   *runstore.Store
	Output string
	// Order lists the node ids in the order their commands appended to
	// order.log.
	Order []string
}

// harness holds the files of one deployment.
type harness struct {
	t        *testing.T
	ctx      context.Context
	dir      string
	stateDir string
}

func newHarness(t *testing.T, files map[string]string) *harness {
	t.Helper()
	ctx, _ := testutil.Context(t)
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, "graph", name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return &harness{t: t, ctx: ctx, dir: dir, stateDir: filepath.Join(dir, "state")}
}

func (h *harness) load() *graph.WorkGraph {
	h.t.Helper()
	g, err := hclgraph.NewLoader(nil).Load(h.ctx, filepath.Join(h.dir, "graph"))
	require.NoError(h.t, err, "graph should load")
	g.RemoveUnavailableDependencies(h.ctx)
	return g
}

func (h *harness) cache() *publishcache.Cache {
	return publishcache.New(h.stateDir)
}

// deploy runs g with shell commands executed in the harness directory.
func (h *harness) deploy(g *graph.WorkGraph, concurrency int) *result {
	h.t.Helper()
	out := &testutil.SafeBuffer{}
	runs := runstore.New()
	actions := shell.New(shell.Config{
		Dir:    h.dir,
		Stdout: out,
		Stderr: out,
		Cache:  h.cache(),
	})

	err := g.DoParallel(h.ctx, concurrency, actions, localexecutor.WithObserver(runs))

	res := &result{Err: err, Graph: g, Runs: runs, Output: out.String()}
	if data, readErr := os.ReadFile(filepath.Join(h.dir, "order.log")); readErr == nil {
		res.Order = strings.Fields(string(data))
	}
	return res
}
