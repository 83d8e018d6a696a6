package node

import (
	"fmt"
	"slices"
	"sync/atomic"
)

// Node is a single vertex in the work graph. The concrete types are
// *StackNode, *AssetBuildNode and *AssetPublishNode; callers switch on the
// type (or on Kind) to reach the payload.
type Node interface {
	ID() string
	Kind() Kind

	// Dependencies returns a copy of the dependency ids in insertion order.
	Dependencies() []string
	HasDependency(id string) bool
	// AddDependency appends ids that are not yet present.
	AddDependency(ids ...string)
	// RemoveDependency deletes id and reports whether it was present.
	RemoveDependency(id string) bool

	State() State
	// Transition moves the node from one state to another. It fails when the
	// node is not in the expected state or the edge is not a legal one.
	Transition(from, to State) error
}

// base implements the bookkeeping shared by every node variant.
type base struct {
	id   string
	deps []string
	// state is the node's current execution state, managed atomically.
	state atomic.Int32
}

func (b *base) init(id string, deps []string) {
	b.id = id
	b.AddDependency(deps...)
}

// ID returns the node's unique identifier.
func (b *base) ID() string {
	return b.id
}

func (b *base) Dependencies() []string {
	return slices.Clone(b.deps)
}

func (b *base) HasDependency(id string) bool {
	return slices.Contains(b.deps, id)
}

func (b *base) AddDependency(ids ...string) {
	for _, id := range ids {
		if !b.HasDependency(id) {
			b.deps = append(b.deps, id)
		}
	}
}

func (b *base) RemoveDependency(id string) bool {
	i := slices.Index(b.deps, id)
	if i < 0 {
		return false
	}
	b.deps = slices.Delete(b.deps, i, i+1)
	return true
}

// State atomically retrieves the node's execution state.
func (b *base) State() State {
	return State(b.state.Load())
}

func (b *base) Transition(from, to State) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("node %q: illegal state transition %s -> %s", b.id, from, to)
	}
	if !b.state.CompareAndSwap(int32(from), int32(to)) {
		return fmt.Errorf("node %q: expected state %s, found %s", b.id, from, b.State())
	}
	return nil
}

// StackNode deploys an infrastructure stack.
type StackNode struct {
	base
	Stack *Stack
}

// NewStackNode creates a pending stack node.
func NewStackNode(id string, stack *Stack, deps ...string) *StackNode {
	n := &StackNode{Stack: stack}
	n.init(id, deps)
	return n
}

func (*StackNode) Kind() Kind { return StackKind }

// AssetBuildNode builds an asset.
type AssetBuildNode struct {
	base
	Asset *Asset
	// ParentStack is the stack that references the asset.
	ParentStack *Stack
}

// NewAssetBuildNode creates a pending asset-build node.
func NewAssetBuildNode(id string, asset *Asset, parent *Stack, deps ...string) *AssetBuildNode {
	n := &AssetBuildNode{Asset: asset, ParentStack: parent}
	n.init(id, deps)
	return n
}

func (*AssetBuildNode) Kind() Kind { return AssetBuildKind }

// AssetPublishNode publishes a built asset.
type AssetPublishNode struct {
	base
	Asset       *Asset
	ParentStack *Stack
}

// NewAssetPublishNode creates a pending asset-publish node.
func NewAssetPublishNode(id string, asset *Asset, parent *Stack, deps ...string) *AssetPublishNode {
	n := &AssetPublishNode{Asset: asset, ParentStack: parent}
	n.init(id, deps)
	return n
}

func (*AssetPublishNode) Kind() Kind { return AssetPublishKind }
