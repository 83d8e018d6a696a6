package graph

import (
	"context"

	"github.com/specialistvlad/workgraph/internal/ctxlog"
	"github.com/specialistvlad/workgraph/internal/executor"
	"github.com/specialistvlad/workgraph/internal/localexecutor"
)

// DoParallel executes the graph with at most concurrency callbacks in
// flight. See localexecutor.Executor.Execute for the failure semantics.
func (g *WorkGraph) DoParallel(ctx context.Context, concurrency int, actions executor.Actions, opts ...localexecutor.Option) error {
	logger := ctxlog.FromContext(ctx)

	exec, err := localexecutor.New(g.store, concurrency, actions, opts...)
	if err != nil {
		return err
	}

	logger.Info("🚀 Starting concurrent execution...", "nodes", g.Len(), "concurrency", concurrency)
	if err := exec.Execute(ctx); err != nil {
		logger.Error("Execution stopped.", "error", err)
		return err
	}
	logger.Info("🏁 Execution finished.")
	return nil
}
