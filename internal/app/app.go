package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/specialistvlad/workgraph/internal/ctxlog"
	"github.com/specialistvlad/workgraph/internal/graph"
	"github.com/specialistvlad/workgraph/internal/hclgraph"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config

	// graph is published once loaded so the status endpoint can read it.
	graph      atomic.Pointer[graph.WorkGraph]
	httpServer *http.Server
}

// NewApp is the constructor for the main application. Logs and command
// output are written to outW.
func NewApp(outW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
	}
}

// Logger returns the application's logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// load reads and sanitizes the configured graph.
func (a *App) load(ctx context.Context) (*graph.WorkGraph, error) {
	g, err := hclgraph.Load(ctx, a.config.GraphPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load graph: %w", err)
	}
	g.RemoveUnavailableDependencies(ctx)
	a.graph.Store(g)
	return g, nil
}

// Plan loads the graph and prints it without running anything. It fails
// when the graph contains a dependency cycle.
func (a *App) Plan(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	g, err := a.load(ctx)
	if err != nil {
		return err
	}

	fmt.Fprint(a.outW, g.String())
	if cycle := g.FindCycle(); cycle != nil {
		return &graph.UnableToMakeProgressError{Cycle: cycle}
	}
	return nil
}
