package graph

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/specialistvlad/workgraph/internal/node"
	"github.com/specialistvlad/workgraph/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assetGraph(t *testing.T, assets ...string) *WorkGraph {
	t.Helper()
	g := New()
	app := &node.Stack{Name: "App"}
	var deps []string
	for _, id := range assets {
		_, _, err := g.AddAsset(&node.Asset{ID: id}, app)
		require.NoError(t, err)
		deps = append(deps, id+"-publish")
	}
	_, err := g.AddStack("App", app, deps...)
	require.NoError(t, err)
	return g
}

func TestRemoveUnnecessaryAssets(t *testing.T) {
	ctx, _ := testutil.Context(t)
	g := assetGraph(t, "a", "b")

	err := g.RemoveUnnecessaryAssets(ctx, func(_ context.Context, n *node.AssetBuildNode) (bool, error) {
		return n.Asset.ID == "b", nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a-build", "a-publish", "App"}, ids(g))
	app, _ := g.Node("App")
	assert.Equal(t, []string{"a-publish"}, app.Dependencies())

	rec := testutil.NewRecorder()
	require.NoError(t, g.DoParallel(ctx, 1, rec))
	assert.Equal(t, []string{"a-build", "a-publish", "App"}, rec.Effects())
	assert.NotContains(t, rec.Started(), "b-build")
}

func TestRemoveUnnecessaryAssetsPredicateError(t *testing.T) {
	ctx, _ := testutil.Context(t)
	g := assetGraph(t, "a", "b")
	boom := errors.New("cache unreachable")

	err := g.RemoveUnnecessaryAssets(ctx, func(_ context.Context, n *node.AssetBuildNode) (bool, error) {
		if n.Asset.ID == "b" {
			return false, boom
		}
		return true, nil
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 5, g.Len(), "graph is untouched when a predicate fails")
}

func TestRemoveUnnecessaryAssetsRunsInParallel(t *testing.T) {
	ctx, _ := testutil.Context(t)
	assets := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}
	g := assetGraph(t, assets...)

	var active, peak atomic.Int32
	var calls atomic.Int32
	err := g.RemoveUnnecessaryAssets(ctx, func(context.Context, *node.AssetBuildNode) (bool, error) {
		calls.Add(1)
		cur := active.Add(1)
		for {
			old := peak.Load()
			if cur <= old || peak.CompareAndSwap(old, cur) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		active.Add(-1)
		return false, nil
	})
	require.NoError(t, err)

	assert.Equal(t, int32(len(assets)), calls.Load(), "each asset is evaluated once")
	assert.LessOrEqual(t, peak.Load(), int32(maxParallelPredicates))
	assert.Greater(t, peak.Load(), int32(1))
	assert.Equal(t, 2*len(assets)+1, g.Len())
}

func TestRemoveUnnecessaryAssetsWithoutAssets(t *testing.T) {
	ctx, _ := testutil.Context(t)
	g := New()
	_, err := g.AddStack("App", nil)
	require.NoError(t, err)

	called := false
	require.NoError(t, g.RemoveUnnecessaryAssets(ctx, func(context.Context, *node.AssetBuildNode) (bool, error) {
		called = true
		return true, nil
	}))
	assert.False(t, called)
}
