package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/workgraph/internal/ctxlog"
	"github.com/specialistvlad/workgraph/internal/events"
	"github.com/specialistvlad/workgraph/internal/executor"
	"github.com/specialistvlad/workgraph/internal/localexecutor"
	"github.com/specialistvlad/workgraph/internal/node"
	"github.com/specialistvlad/workgraph/internal/publishcache"
	"github.com/specialistvlad/workgraph/internal/runstore"
	"github.com/specialistvlad/workgraph/internal/shell"
)

// Run loads the graph and deploys it.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	g, err := a.load(ctx)
	if err != nil {
		return err
	}

	var cache *publishcache.Cache
	if a.config.StateDir != "" {
		cache = publishcache.New(a.config.StateDir)
	}
	if a.config.SkipPublished {
		err := g.RemoveUnnecessaryAssets(ctx, func(_ context.Context, n *node.AssetBuildNode) (bool, error) {
			return cache.Has(n.Asset.ID, n.Asset.Fingerprint)
		})
		if err != nil {
			return fmt.Errorf("failed to prune published assets: %w", err)
		}
	}

	if g.Len() == 0 {
		a.logger.Warn("No nodes found in graph, execution not required.")
		return nil
	}

	if a.config.HealthcheckPort > 0 {
		if err := a.startHealthcheckServer(ctx); err != nil {
			return err
		}
		defer a.closeHealthcheckServer(ctx)
	}

	runs := runstore.New()
	observers := executor.Observers{runs}

	var reporter *events.Reporter
	if a.config.EventsURL != "" {
		reporter, err = events.Dial(ctx, events.Options{
			URL:                a.config.EventsURL,
			Namespace:          a.config.EventsNamespace,
			InsecureSkipVerify: a.config.EventsInsecure,
		})
		if err != nil {
			return fmt.Errorf("failed to connect progress reporter: %w", err)
		}
		defer reporter.Close()
		observers = append(observers, reporter)
	}

	actions := shell.New(shell.Config{
		Dir:    a.config.WorkDir,
		Stdout: a.outW,
		Stderr: a.outW,
		Cache:  cache,
	})

	runErr := g.DoParallel(ctx, a.config.Concurrency, actions, localexecutor.WithObserver(observers))
	if reporter != nil {
		reporter.Finish(runErr)
	}
	a.printSummary(g.Len(), runs)

	a.logger.Debug("App.Run method finished.")
	if runErr != nil {
		return fmt.Errorf("deployment failed: %w", runErr)
	}
	return nil
}
