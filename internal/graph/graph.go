package graph

import (
	"fmt"
	"iter"
	"strings"

	"github.com/specialistvlad/workgraph/internal/inmemorytopology"
	"github.com/specialistvlad/workgraph/internal/node"
	"github.com/specialistvlad/workgraph/internal/nodeid"
	"github.com/specialistvlad/workgraph/internal/topologystore"
)

// WorkGraph is the unit of deployment work.
type WorkGraph struct {
	store topologystore.Store
}

// New creates an empty work graph backed by an in-memory store.
func New() *WorkGraph {
	return NewWithStore(inmemorytopology.New())
}

// NewWithStore creates a work graph on top of an existing store.
func NewWithStore(store topologystore.Store) *WorkGraph {
	return &WorkGraph{store: store}
}

// AddNode inserts nodes in order. It stops at the first duplicate id and
// returns a *DuplicateNodeError; nodes before it stay inserted.
func (g *WorkGraph) AddNode(nodes ...node.Node) error {
	for _, n := range nodes {
		if err := g.store.AddNode(n); err != nil {
			return err
		}
	}
	return nil
}

// AddStack inserts a stack node.
func (g *WorkGraph) AddStack(id string, stack *node.Stack, deps ...string) (*node.StackNode, error) {
	n := node.NewStackNode(id, stack, deps...)
	if err := g.store.AddNode(n); err != nil {
		return nil, err
	}
	return n, nil
}

// AddAsset inserts the build and publish nodes of an asset. The build node
// gets deps; the publish node depends on the build node.
func (g *WorkGraph) AddAsset(asset *node.Asset, parent *node.Stack, deps ...string) (*node.AssetBuildNode, *node.AssetPublishNode, error) {
	buildID, publishID := nodeid.Build(asset.ID), nodeid.Publish(asset.ID)
	if g.store.Has(buildID) {
		return nil, nil, &DuplicateNodeError{ID: buildID}
	}
	if g.store.Has(publishID) {
		return nil, nil, &DuplicateNodeError{ID: publishID}
	}

	build := node.NewAssetBuildNode(buildID, asset, parent, deps...)
	publish := node.NewAssetPublishNode(publishID, asset, parent, buildID)
	if err := g.AddNode(build, publish); err != nil {
		return nil, nil, err
	}
	return build, publish, nil
}

// RemoveNode deletes a node and every reference to it. It reports whether
// the node existed.
func (g *WorkGraph) RemoveNode(id string) bool {
	return g.store.RemoveNode(id)
}

// Node looks a node up by id.
func (g *WorkGraph) Node(id string) (node.Node, bool) {
	return g.store.Node(id)
}

// Nodes yields all nodes in insertion order.
func (g *WorkGraph) Nodes() iter.Seq[node.Node] {
	return g.store.Nodes()
}

// Len returns the number of nodes.
func (g *WorkGraph) Len() int {
	return g.store.Len()
}

// Counts returns how many nodes are in each state.
func (g *WorkGraph) Counts() map[node.State]int {
	counts := make(map[node.State]int, len(node.States()))
	for n := range g.store.Nodes() {
		counts[n.State()]++
	}
	return counts
}

// String renders one line per node in insertion order.
func (g *WorkGraph) String() string {
	var b strings.Builder
	for n := range g.store.Nodes() {
		fmt.Fprintf(&b, "%s [%s] %s", n.ID(), n.Kind(), n.State())
		if deps := n.Dependencies(); len(deps) > 0 {
			fmt.Fprintf(&b, " <- %s", strings.Join(deps, ", "))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
