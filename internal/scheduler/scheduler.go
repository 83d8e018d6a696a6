package scheduler

import (
	"context"
	"fmt"

	"github.com/specialistvlad/workgraph/internal/ctxlog"
	"github.com/specialistvlad/workgraph/internal/node"
	"github.com/specialistvlad/workgraph/internal/topologystore"
)

// Scheduler tracks the ready queue of a single run. It is not safe for
// concurrent use; the executor's supervisor loop is its only caller.
type Scheduler struct {
	store topologystore.Store
	ready queue
}

// New creates a scheduler over the given store.
func New(store topologystore.Store) *Scheduler {
	return &Scheduler{store: store}
}

// Refresh scans the Pending nodes in insertion order, marks every ready one
// Queued and appends it to the back of the queue. It returns the newly
// queued nodes.
func (s *Scheduler) Refresh(ctx context.Context) ([]node.Node, error) {
	logger := ctxlog.FromContext(ctx)

	var queued []node.Node
	for n := range s.store.Nodes() {
		if n.State() != node.Pending || !IsReady(s.store, n) {
			continue
		}
		if err := n.Transition(node.Pending, node.Queued); err != nil {
			return queued, fmt.Errorf("failed to queue ready node: %w", err)
		}
		s.ready.push(n)
		queued = append(queued, n)
		logger.Debug("Node is ready.", "nodeID", n.ID(), "kind", n.Kind(), "queueLength", s.ready.len())
	}
	return queued, nil
}

// Next removes and returns the head of the ready queue.
func (s *Scheduler) Next() (node.Node, bool) {
	return s.ready.pop()
}

// Queued returns the number of nodes waiting in the ready queue.
func (s *Scheduler) Queued() int {
	return s.ready.len()
}

// IsReady reports whether every dependency of n refers to a Completed node
// in the store. A dependency on an absent id is never satisfied.
func IsReady(store topologystore.Store, n node.Node) bool {
	for _, id := range n.Dependencies() {
		dep, ok := store.Node(id)
		if !ok || dep.State() != node.Completed {
			return false
		}
	}
	return true
}
