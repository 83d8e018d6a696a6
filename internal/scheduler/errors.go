package scheduler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/workgraph/internal/node"
	"github.com/specialistvlad/workgraph/internal/topologystore"
)

// ErrUnableToMakeProgress is matched by every *UnableToMakeProgressError.
var ErrUnableToMakeProgress = errors.New("unable to make progress")

// UnableToMakeProgressError reports a run that stalled: nothing is running,
// nothing is ready, but Pending work remains.
type UnableToMakeProgressError struct {
	// Cycle is the dependency cycle among the remaining work, e.g. [A B A].
	// It is empty when the work is blocked on ids missing from the graph.
	Cycle []string
	// Remaining lists the ids of the Pending nodes in insertion order.
	Remaining []string
	// Blockers maps each remaining id to the dependencies it still waits on.
	Blockers map[string][]string
}

func (e *UnableToMakeProgressError) Error() string {
	if len(e.Cycle) > 0 {
		return "unable to make progress anymore, dependency cycle between remaining work: " +
			strings.Join(e.Cycle, " -> ")
	}

	parts := make([]string, 0, len(e.Remaining))
	for _, id := range e.Remaining {
		parts = append(parts, fmt.Sprintf("%s (waiting on: %s)", id, strings.Join(e.Blockers[id], ", ")))
	}
	return "unable to make progress anymore, blocked work: " + strings.Join(parts, "; ")
}

// Is lets errors.Is match ErrUnableToMakeProgress.
func (e *UnableToMakeProgressError) Is(target error) bool {
	return target == ErrUnableToMakeProgress
}

// Stalled inspects a store after a run ended without failures. It returns nil
// when no node is left Pending, and an *UnableToMakeProgressError otherwise.
func Stalled(store topologystore.Store) error {
	var pending []node.Node
	for n := range store.Nodes() {
		if n.State() == node.Pending {
			pending = append(pending, n)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	stall := &UnableToMakeProgressError{
		Cycle:     FindCycle(pending),
		Remaining: make([]string, 0, len(pending)),
		Blockers:  make(map[string][]string, len(pending)),
	}
	for _, n := range pending {
		stall.Remaining = append(stall.Remaining, n.ID())
		for _, id := range n.Dependencies() {
			if dep, ok := store.Node(id); !ok || dep.State() != node.Completed {
				stall.Blockers[n.ID()] = append(stall.Blockers[n.ID()], id)
			}
		}
	}
	return stall
}
