package executor

import (
	"context"

	"github.com/specialistvlad/workgraph/internal/node"
)

// Observer is notified about every state transition of a run. Calls happen
// sequentially from the executor's supervisor, never concurrently, so
// implementations need no locking of their own unless they are read from
// elsewhere. err is only set for node.Failed.
type Observer interface {
	NodeStateChanged(ctx context.Context, n node.Node, state node.State, err error)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ctx context.Context, n node.Node, state node.State, err error)

func (f ObserverFunc) NodeStateChanged(ctx context.Context, n node.Node, state node.State, err error) {
	f(ctx, n, state, err)
}

// Observers fans a notification out to several observers in order.
type Observers []Observer

func (o Observers) NodeStateChanged(ctx context.Context, n node.Node, state node.State, err error) {
	for _, obs := range o {
		if obs != nil {
			obs.NodeStateChanged(ctx, n, state, err)
		}
	}
}
