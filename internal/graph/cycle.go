package graph

import (
	"github.com/specialistvlad/workgraph/internal/node"
	"github.com/specialistvlad/workgraph/internal/scheduler"
)

// FindCycle returns a dependency cycle among the Pending nodes, e.g.
// [A B A], or nil when there is none.
func (g *WorkGraph) FindCycle() []string {
	var pending []node.Node
	for n := range g.store.Nodes() {
		if n.State() == node.Pending {
			pending = append(pending, n)
		}
	}
	return scheduler.FindCycle(pending)
}
