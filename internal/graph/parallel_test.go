package graph

import (
	"errors"
	"testing"
	"time"

	"github.com/specialistvlad/workgraph/internal/node"
	"github.com/specialistvlad/workgraph/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoParallelScenarios(t *testing.T) {
	errA := errors.New("A failed")

	t.Run("B depends on A with concurrency 1", func(t *testing.T) {
		ctx, _ := testutil.Context(t)
		g := New()
		_, err := g.AddStack("A", nil)
		require.NoError(t, err)
		_, err = g.AddStack("B", nil, "A")
		require.NoError(t, err)

		rec := testutil.NewRecorder()
		require.NoError(t, g.DoParallel(ctx, 1, rec))
		assert.Equal(t, []string{"A", "B"}, rec.Effects())
	})

	t.Run("A fails and independent B never runs with concurrency 1", func(t *testing.T) {
		ctx, _ := testutil.Context(t)
		g := New()
		_, err := g.AddStack("A", nil)
		require.NoError(t, err)
		_, err = g.AddStack("B", nil)
		require.NoError(t, err)

		rec := testutil.NewRecorder().Fail("A", errA)
		err = g.DoParallel(ctx, 1, rec)
		require.ErrorIs(t, err, errA)

		var nodeErr *NodeError
		require.ErrorAs(t, err, &nodeErr)
		assert.Equal(t, "A", nodeErr.ID)
		assert.Empty(t, rec.Effects())
	})

	t.Run("A fails and independent B still finishes with concurrency 2", func(t *testing.T) {
		ctx, _ := testutil.Context(t)
		g := New()
		_, err := g.AddStack("A", nil)
		require.NoError(t, err)
		_, err = g.AddStack("B", nil)
		require.NoError(t, err)

		rec := testutil.NewRecorder().Fail("A", errA)
		err = g.DoParallel(ctx, 2, rec)
		require.ErrorIs(t, err, errA)
		assert.Equal(t, []string{"B"}, rec.Effects())
	})

	t.Run("stack after its asset with concurrency 1", func(t *testing.T) {
		ctx, _ := testutil.Context(t)
		g := New()
		stackA := &node.Stack{Name: "A"}
		_, err := g.AddStack("A", stackA, "a-publish")
		require.NoError(t, err)
		_, _, err = g.AddAsset(&node.Asset{ID: "a"}, stackA)
		require.NoError(t, err)

		rec := testutil.NewRecorder()
		require.NoError(t, g.DoParallel(ctx, 1, rec))
		assert.Equal(t, []string{"a-build", "a-publish", "A"}, rec.Effects())
	})

	t.Run("self cycle", func(t *testing.T) {
		ctx, _ := testutil.Context(t)
		g := New()
		_, err := g.AddStack("A", nil, "A")
		require.NoError(t, err)

		err = g.DoParallel(ctx, 1, testutil.NewRecorder())
		require.ErrorIs(t, err, ErrUnableToMakeProgress)
		assert.Contains(t, err.Error(), "A -> A")
	})

	t.Run("two-node cycle", func(t *testing.T) {
		ctx, _ := testutil.Context(t)
		g := New()
		_, err := g.AddStack("A", nil, "B")
		require.NoError(t, err)
		_, err = g.AddStack("B", nil, "A")
		require.NoError(t, err)

		err = g.DoParallel(ctx, 1, testutil.NewRecorder())
		var stall *UnableToMakeProgressError
		require.ErrorAs(t, err, &stall)
		assert.Equal(t, []string{"A", "B", "A"}, stall.Cycle)
	})
}

func TestDoParallelInvalidConcurrency(t *testing.T) {
	ctx, _ := testutil.Context(t)
	err := New().DoParallel(ctx, 0, testutil.NewRecorder())
	assert.ErrorIs(t, err, ErrInvalidConcurrency)
}

func TestDoParallelLogs(t *testing.T) {
	ctx, logs := testutil.Context(t)
	g := New()
	_, err := g.AddStack("A", nil)
	require.NoError(t, err)

	require.NoError(t, g.DoParallel(ctx, 2, testutil.NewRecorder().Delay("A", time.Millisecond)))
	assert.Contains(t, logs.String(), "Starting concurrent execution")
	assert.Contains(t, logs.String(), "Execution finished")
	assert.Equal(t, 1, g.Counts()[node.Completed])
}
