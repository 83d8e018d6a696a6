// Package localexecutor provides a concrete, in-process implementation of the
// executor.Executor interface.
//
// The goroutine calling Execute is the supervisor: it owns the ready queue,
// performs every node state transition and decides what to dispatch. A fixed
// pool of worker goroutines runs the callbacks and reports settlements back
// over a single results channel, so scheduling state needs no locks.
package localexecutor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/specialistvlad/workgraph/internal/ctxlog"
	"github.com/specialistvlad/workgraph/internal/executor"
	"github.com/specialistvlad/workgraph/internal/node"
	"github.com/specialistvlad/workgraph/internal/scheduler"
	"github.com/specialistvlad/workgraph/internal/topologystore"
)

// ErrInvalidConcurrency is returned for a concurrency below one.
var ErrInvalidConcurrency = errors.New("concurrency must be at least 1")

// Executor implements the executor.Executor interface for local execution.
type Executor struct {
	store       topologystore.Store
	concurrency int
	actions     executor.Actions
	observers   executor.Observers
}

// Option customizes an Executor.
type Option func(*Executor)

// WithObserver registers an observer for every node state transition.
// Observers are notified in registration order.
func WithObserver(o executor.Observer) Option {
	return func(e *Executor) {
		if o != nil {
			e.observers = append(e.observers, o)
		}
	}
}

// New creates a new local executor that runs at most concurrency callbacks
// at a time.
func New(store topologystore.Store, concurrency int, actions executor.Actions, opts ...Option) (*Executor, error) {
	if concurrency < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidConcurrency, concurrency)
	}
	if actions == nil {
		return nil, errors.New("actions must not be nil")
	}

	e := &Executor{
		store:       store,
		concurrency: concurrency,
		actions:     actions,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

var _ executor.Executor = (*Executor)(nil)

// result is what a worker reports back once a callback settled.
type result struct {
	node     node.Node
	err      error
	elapsed  time.Duration
	workerID int
}

// Execute runs every node of the store. Once a callback fails, or ctx is
// done, no further node is started; callbacks already running are awaited.
// The first callback error is returned wrapped in an *executor.NodeError.
// When the run ends without errors while work is left, the result is a
// *scheduler.UnableToMakeProgressError.
func (e *Executor) Execute(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	sched := scheduler.New(e.store)

	var firstErr error
	if err := e.refresh(ctx, sched); err != nil {
		return err
	}

	workers := min(e.concurrency, max(e.store.Len(), 1))
	jobs := make(chan node.Node)
	results := make(chan result, workers)

	var wg sync.WaitGroup
	logger.Debug("Starting workers.", "count", workers, "concurrency", e.concurrency)
	for i := range workers {
		wg.Add(1)
		go e.worker(ctx, i+1, jobs, results, &wg)
	}
	defer func() {
		close(jobs)
		wg.Wait()
	}()

	inFlight := 0
	for {
		for firstErr == nil && ctx.Err() == nil && inFlight < e.concurrency {
			n, ok := sched.Next()
			if !ok {
				break
			}
			if err := e.transition(ctx, n, node.Queued, node.Deploying, nil); err != nil {
				firstErr = err
				break
			}
			inFlight++
			logger.Debug("Dispatching node.", "nodeID", n.ID(), "kind", n.Kind(), "inFlight", inFlight)
			jobs <- n
		}

		if inFlight == 0 {
			break
		}

		res := <-results
		inFlight--
		n := res.node

		if res.err != nil {
			if err := e.transition(ctx, n, node.Deploying, node.Failed, res.err); err != nil && firstErr == nil {
				firstErr = err
			}
			if firstErr == nil {
				firstErr = &executor.NodeError{ID: n.ID(), Kind: n.Kind(), Err: res.err}
				logger.Error("Node failed, no further work will be started.",
					"nodeID", n.ID(), "kind", n.Kind(), "error", res.err, "inFlight", inFlight)
			} else {
				logger.Warn("Node failed after the run was already stopping.",
					"nodeID", n.ID(), "kind", n.Kind(), "error", res.err)
			}
			continue
		}

		if err := e.transition(ctx, n, node.Deploying, node.Completed, nil); err != nil && firstErr == nil {
			firstErr = err
		}
		logger.Info("✅ Node completed.", "nodeID", n.ID(), "kind", n.Kind(), "duration", res.elapsed, "workerID", res.workerID)

		if firstErr == nil && ctx.Err() == nil {
			if err := e.refresh(ctx, sched); err != nil {
				firstErr = err
			}
		}
	}

	if firstErr != nil {
		return firstErr
	}
	if err := ctx.Err(); err != nil && e.unfinished() {
		return fmt.Errorf("execution interrupted: %w", err)
	}
	return scheduler.Stalled(e.store)
}

// refresh queues newly ready nodes and tells the observer about them.
func (e *Executor) refresh(ctx context.Context, sched *scheduler.Scheduler) error {
	queued, err := sched.Refresh(ctx)
	for _, n := range queued {
		e.observers.NodeStateChanged(ctx, n, node.Queued, nil)
	}
	return err
}

// transition moves n to the next state and notifies the observer.
func (e *Executor) transition(ctx context.Context, n node.Node, from, to node.State, cause error) error {
	if err := n.Transition(from, to); err != nil {
		return err
	}
	e.observers.NodeStateChanged(ctx, n, to, cause)
	return nil
}

// unfinished reports whether any node did not reach Completed.
func (e *Executor) unfinished() bool {
	for n := range e.store.Nodes() {
		if n.State() != node.Completed {
			return true
		}
	}
	return false
}
