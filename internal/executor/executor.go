// Package executor defines the contract between the work graph and the code
// that performs the actual work: the callbacks that deploy stacks and build
// or publish assets, and the observers notified about state changes.
package executor

import (
	"context"
	"fmt"

	"github.com/specialistvlad/workgraph/internal/node"
)

// Executor is responsible for orchestrating the end-to-end execution of a
// work graph. It manages concurrency, consults the scheduler and dispatches
// nodes to Actions.
type Executor interface {
	Execute(ctx context.Context) error
}

// Actions performs the side effects of each node kind. Implementations must
// be safe for concurrent use: up to the configured concurrency of calls run
// at the same time.
type Actions interface {
	DeployStack(ctx context.Context, n *node.StackNode) error
	BuildAsset(ctx context.Context, n *node.AssetBuildNode) error
	PublishAsset(ctx context.Context, n *node.AssetPublishNode) error
}

// ActionFuncs adapts plain functions to the Actions interface. A nil function
// succeeds without doing anything.
type ActionFuncs struct {
	DeployStackFn  func(ctx context.Context, n *node.StackNode) error
	BuildAssetFn   func(ctx context.Context, n *node.AssetBuildNode) error
	PublishAssetFn func(ctx context.Context, n *node.AssetPublishNode) error
}

var _ Actions = ActionFuncs{}

func (f ActionFuncs) DeployStack(ctx context.Context, n *node.StackNode) error {
	if f.DeployStackFn == nil {
		return nil
	}
	return f.DeployStackFn(ctx, n)
}

func (f ActionFuncs) BuildAsset(ctx context.Context, n *node.AssetBuildNode) error {
	if f.BuildAssetFn == nil {
		return nil
	}
	return f.BuildAssetFn(ctx, n)
}

func (f ActionFuncs) PublishAsset(ctx context.Context, n *node.AssetPublishNode) error {
	if f.PublishAssetFn == nil {
		return nil
	}
	return f.PublishAssetFn(ctx, n)
}

// Invoke routes a node to the callback matching its kind.
func Invoke(ctx context.Context, actions Actions, n node.Node) error {
	switch typed := n.(type) {
	case *node.StackNode:
		return actions.DeployStack(ctx, typed)
	case *node.AssetBuildNode:
		return actions.BuildAsset(ctx, typed)
	case *node.AssetPublishNode:
		return actions.PublishAsset(ctx, typed)
	default:
		return fmt.Errorf("unsupported node type %T for node %q", n, n.ID())
	}
}
