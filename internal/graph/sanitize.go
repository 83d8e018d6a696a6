package graph

import (
	"context"

	"github.com/specialistvlad/workgraph/internal/ctxlog"
)

// RemoveUnavailableDependencies drops every dependency id that does not name
// a node of the graph, so that absent work counts as already done. It
// returns the number of references removed.
func (g *WorkGraph) RemoveUnavailableDependencies(ctx context.Context) int {
	logger := ctxlog.FromContext(ctx)

	removed := 0
	for n := range g.store.Nodes() {
		for _, dep := range n.Dependencies() {
			if g.store.Has(dep) {
				continue
			}
			n.RemoveDependency(dep)
			removed++
			logger.Debug("Dropped dependency on unavailable node.", "nodeID", n.ID(), "dependency", dep)
		}
	}
	if removed > 0 {
		logger.Info("Removed dependencies on work outside the graph.", "count", removed)
	}
	return removed
}
