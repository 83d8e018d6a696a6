package localexecutor

import (
	"context"
	"sync"
	"time"

	"github.com/specialistvlad/workgraph/internal/ctxlog"
	"github.com/specialistvlad/workgraph/internal/executor"
	"github.com/specialistvlad/workgraph/internal/node"
)

// worker is the core processing loop for a single concurrent worker.
func (e *Executor) worker(ctx context.Context, workerID int, jobs <-chan node.Node, results chan<- result, wg *sync.WaitGroup) {
	defer wg.Done()
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Worker started.", "workerID", workerID)

	for n := range jobs {
		workerLogger := logger.With("workerID", workerID, "nodeID", n.ID())
		workerLogger.Debug("Worker picked up node for execution.")

		start := time.Now()
		err := e.run(ctxlog.WithLogger(ctx, workerLogger), n)
		if err != nil {
			workerLogger.Debug("Node execution failed.", "error", err)
		} else {
			workerLogger.Debug("Node execution succeeded.")
		}

		results <- result{node: n, err: err, elapsed: time.Since(start), workerID: workerID}
	}
	logger.Debug("Worker finished.", "workerID", workerID)
}

// run invokes the callback for n, turning a panic into an error.
func (e *Executor) run(ctx context.Context, n node.Node) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &executor.PanicError{Value: r}
		}
	}()
	return executor.Invoke(ctx, e.actions, n)
}
