package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/specialistvlad/workgraph/internal/ctxlog"
	"github.com/specialistvlad/workgraph/internal/executor"
	"github.com/specialistvlad/workgraph/internal/node"
	"github.com/specialistvlad/workgraph/internal/publishcache"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// Config holds what every command shares.
type Config struct {
	// Dir is the working directory of every command.
	Dir string
	// Env is appended to the process environment.
	Env []string
	// Stdout and Stderr receive the command output, one "[node-id] " prefix
	// per line. They default to os.Stdout and os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
	// Cache, when set, receives the fingerprint of every published asset.
	Cache *publishcache.Cache
}

// Actions runs node commands.
type Actions struct {
	cfg Config
	// mu serializes writes to the shared output streams.
	mu sync.Mutex
}

var _ executor.Actions = (*Actions)(nil)

// New creates shell actions.
func New(cfg Config) *Actions {
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}
	return &Actions{cfg: cfg}
}

// DeployStack runs the stack's deploy command.
func (a *Actions) DeployStack(ctx context.Context, n *node.StackNode) error {
	if n.Stack == nil {
		return a.run(ctx, n, "", nil)
	}
	return a.run(ctx, n, n.Stack.Command, []string{"WORKGRAPH_STACK=" + n.Stack.Name})
}

// BuildAsset runs the asset's build command.
func (a *Actions) BuildAsset(ctx context.Context, n *node.AssetBuildNode) error {
	return a.run(ctx, n, n.Asset.BuildCommand, assetEnv(n.Asset, n.ParentStack))
}

// PublishAsset runs the asset's publish command and records the published
// fingerprint.
func (a *Actions) PublishAsset(ctx context.Context, n *node.AssetPublishNode) error {
	if err := a.run(ctx, n, n.Asset.PublishCommand, assetEnv(n.Asset, n.ParentStack)); err != nil {
		return err
	}
	if a.cfg.Cache == nil {
		return nil
	}
	return a.cfg.Cache.Record(n.Asset.ID, n.Asset.Fingerprint)
}

func assetEnv(asset *node.Asset, parent *node.Stack) []string {
	env := []string{
		"WORKGRAPH_ASSET=" + asset.ID,
		"WORKGRAPH_ASSET_SOURCE=" + asset.Source,
		"WORKGRAPH_ASSET_PACKAGING=" + asset.Packaging,
		"WORKGRAPH_ASSET_FINGERPRINT=" + asset.Fingerprint,
	}
	if parent != nil {
		env = append(env, "WORKGRAPH_STACK="+parent.Name)
	}
	return env
}

// run executes command for n. An empty command succeeds immediately.
func (a *Actions) run(ctx context.Context, n node.Node, command string, extraEnv []string) error {
	logger := ctxlog.FromContext(ctx)
	if strings.TrimSpace(command) == "" {
		logger.Debug("No command configured, nothing to do.", "nodeID", n.ID(), "kind", n.Kind())
		return nil
	}

	file, err := syntax.NewParser().Parse(strings.NewReader(command), n.ID())
	if err != nil {
		return fmt.Errorf("parsing command: %w", err)
	}

	environ := append(os.Environ(), a.cfg.Env...)
	environ = append(environ, "WORKGRAPH_NODE_ID="+n.ID(), "WORKGRAPH_KIND="+n.Kind().String())
	environ = append(environ, extraEnv...)

	prefix := "[" + n.ID() + "] "
	stdout := &prefixWriter{mu: &a.mu, w: a.cfg.Stdout, prefix: prefix}
	stderr := &prefixWriter{mu: &a.mu, w: a.cfg.Stderr, prefix: prefix}
	defer stdout.flush()
	defer stderr.flush()

	runner, err := interp.New(
		interp.Dir(a.cfg.Dir),
		interp.Env(expand.ListEnviron(environ...)),
		interp.StdIO(nil, stdout, stderr),
	)
	if err != nil {
		return fmt.Errorf("preparing shell: %w", err)
	}

	logger.Debug("Running command.", "nodeID", n.ID(), "kind", n.Kind())
	if err := runner.Run(ctx, file); err != nil {
		var status interp.ExitStatus
		if errors.As(err, &status) {
			return fmt.Errorf("command exited with status %d", uint8(status))
		}
		return fmt.Errorf("running command: %w", err)
	}
	return nil
}
