package graph

import (
	"context"
	"fmt"

	"github.com/specialistvlad/workgraph/internal/ctxlog"
	"github.com/specialistvlad/workgraph/internal/node"
	"golang.org/x/sync/errgroup"
)

// maxParallelPredicates caps how many prune predicates run at once.
const maxParallelPredicates = 8

// UnnecessaryAssetFunc decides whether an asset can be skipped, typically by
// checking whether it was already published.
type UnnecessaryAssetFunc func(ctx context.Context, n *node.AssetBuildNode) (bool, error)

// RemoveUnnecessaryAssets evaluates predicate for every asset-build node and
// removes each build node it approves together with the publish nodes of
// the same asset. Predicates run in parallel and must not touch the graph.
// If any predicate fails the graph is left unchanged.
func (g *WorkGraph) RemoveUnnecessaryAssets(ctx context.Context, predicate UnnecessaryAssetFunc) error {
	logger := ctxlog.FromContext(ctx)

	var builds []*node.AssetBuildNode
	for n := range g.store.Nodes() {
		if b, ok := n.(*node.AssetBuildNode); ok {
			builds = append(builds, b)
		}
	}
	if len(builds) == 0 {
		return nil
	}

	unnecessary := make([]bool, len(builds))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(maxParallelPredicates)
	for i, b := range builds {
		eg.Go(func() error {
			skip, err := predicate(egCtx, b)
			if err != nil {
				return fmt.Errorf("checking asset %q: %w", b.ID(), err)
			}
			unnecessary[i] = skip
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	removed := 0
	for i, b := range builds {
		if !unnecessary[i] {
			continue
		}
		g.store.RemoveNode(b.ID())
		for n := range g.store.Nodes() {
			if p, ok := n.(*node.AssetPublishNode); ok && p.Asset.ID == b.Asset.ID {
				g.store.RemoveNode(p.ID())
			}
		}
		removed++
		logger.Debug("Asset does not need to be built.", "nodeID", b.ID(), "asset", b.Asset.ID)
	}

	logger.Info("Pruned unnecessary assets.", "total", len(builds), "remaining", len(builds)-removed)
	return nil
}
