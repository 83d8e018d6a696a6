package hclgraph

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/workgraph/internal/ctxlog"
	"github.com/specialistvlad/workgraph/internal/fsutil"
	"github.com/specialistvlad/workgraph/internal/graph"
	"github.com/specialistvlad/workgraph/internal/hclutil"
	"github.com/specialistvlad/workgraph/internal/node"
	"github.com/specialistvlad/workgraph/internal/nodeid"
)

// Loader reads graph files.
type Loader struct {
	evalCtx *hcl.EvalContext
}

// NewLoader creates a loader whose expressions see environ as `env`.
func NewLoader(environ []string) *Loader {
	return &Loader{evalCtx: hclutil.EnvContext(environ)}
}

// Load reads a graph file, or every .hcl file below a directory, using the
// process environment.
func Load(ctx context.Context, path string) (*graph.WorkGraph, error) {
	return NewLoader(os.Environ()).Load(ctx, path)
}

// entry is one decoded block, in file order.
type entry struct {
	id    string
	rng   hcl.Range
	stack *hclStack
	asset *hclAsset
}

// Load reads the graph at path.
func (l *Loader) Load(ctx context.Context, path string) (*graph.WorkGraph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading graph from path", "path", path)

	files, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to find graph files in %s: %w", path, err)
	}

	g := graph.New()
	if len(files) == 0 {
		logger.Warn("No .hcl graph files found in path, returning empty graph", "path", path)
		return g, nil
	}

	parser := hclparse.NewParser()
	var entries []entry
	for _, file := range files {
		fileEntries, err := l.decodeFile(parser, file)
		if err != nil {
			return nil, err
		}
		entries = append(entries, fileEntries...)
	}

	if err := l.populate(g, entries); err != nil {
		return nil, err
	}

	logger.Info("Graph loaded successfully.", "files", len(files), "nodes", g.Len())
	return g, nil
}

// decodeFile parses a single HCL file into its blocks.
func (l *Loader) decodeFile(parser *hclparse.Parser, filePath string) ([]entry, error) {
	hclFile, diags := parser.ParseHCLFile(filePath)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filePath, diags)
	}

	content, diags := hclFile.Body.Content(fileSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filePath, diags)
	}

	entries := make([]entry, 0, len(content.Blocks))
	for _, block := range content.Blocks {
		e := entry{id: block.Labels[0], rng: block.DefRange}
		if err := nodeid.Validate(e.id); err != nil {
			diags = append(diags, hclutil.ErrorAt(block.LabelRanges[0], "Invalid identifier", err.Error()))
			continue
		}

		switch block.Type {
		case "stack":
			e.stack = &hclStack{}
			diags = append(diags, gohcl.DecodeBody(block.Body, l.evalCtx, e.stack)...)
		case "asset":
			e.asset = &hclAsset{}
			diags = append(diags, gohcl.DecodeBody(block.Body, l.evalCtx, e.asset)...)
		}
		entries = append(entries, e)
	}
	if diags.HasErrors() {
		return nil, fmt.Errorf("error decoding blocks in file %s: %w", filePath, diags)
	}
	return entries, nil
}

// populate inserts the decoded blocks into g in order.
func (l *Loader) populate(g *graph.WorkGraph, entries []entry) error {
	stacks := make(map[string]*node.Stack)
	for _, e := range entries {
		if e.stack == nil {
			continue
		}
		name := e.stack.Name
		if name == "" {
			name = e.id
		}
		stacks[e.id] = &node.Stack{
			Name:        name,
			Environment: e.stack.Environment,
			Template:    e.stack.Template,
			Command:     e.stack.Deploy,
		}
	}

	var diags hcl.Diagnostics
	for _, e := range entries {
		switch {
		case e.stack != nil:
			deps, depDiags := l.stackDependencies(e.stack)
			diags = append(diags, depDiags...)
			if depDiags.HasErrors() {
				continue
			}
			if _, err := g.AddStack(e.id, stacks[e.id], deps...); err != nil {
				diags = append(diags, hclutil.ErrorAt(e.rng, "Duplicate node", err.Error()))
			}

		case e.asset != nil:
			asset, parent, assetDiags := l.asset(e, stacks)
			diags = append(diags, assetDiags...)
			if assetDiags.HasErrors() {
				continue
			}
			deps, depDiags := hclutil.StringList("depends_on", e.asset.DependsOn, l.evalCtx)
			diags = append(diags, depDiags...)
			if depDiags.HasErrors() {
				continue
			}
			if _, _, err := g.AddAsset(asset, parent, deps...); err != nil {
				diags = append(diags, hclutil.ErrorAt(e.rng, "Duplicate node", err.Error()))
			}
		}
	}

	if diags.HasErrors() {
		return fmt.Errorf("invalid graph: %w", diags)
	}
	return nil
}

// stackDependencies merges depends_on with the publish nodes of the
// referenced assets.
func (l *Loader) stackDependencies(s *hclStack) ([]string, hcl.Diagnostics) {
	deps, diags := hclutil.StringList("depends_on", s.DependsOn, l.evalCtx)
	assets, assetDiags := hclutil.StringList("assets", s.Assets, l.evalCtx)
	diags = append(diags, assetDiags...)
	for _, asset := range assets {
		deps = append(deps, nodeid.Publish(asset))
	}
	return deps, diags
}

func (l *Loader) asset(e entry, stacks map[string]*node.Stack) (*node.Asset, *node.Stack, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	parent, ok := stacks[e.asset.Stack]
	if !ok {
		diags = append(diags, hclutil.ErrorAt(e.rng, "Unknown stack",
			fmt.Sprintf("Asset %q references stack %q, which is not declared.", e.id, e.asset.Stack)))
	}

	packaging := e.asset.Packaging
	switch packaging {
	case "":
		packaging = node.PackagingFile
	case node.PackagingFile, node.PackagingContainerImage:
	default:
		diags = append(diags, hclutil.ErrorAt(e.rng, "Unsupported packaging",
			fmt.Sprintf("Asset %q has packaging %q; expected %q or %q.", e.id, packaging, node.PackagingFile, node.PackagingContainerImage)))
	}

	return &node.Asset{
		ID:             e.id,
		Packaging:      packaging,
		Source:         e.asset.Source,
		Fingerprint:    e.asset.Fingerprint,
		BuildCommand:   e.asset.Build,
		PublishCommand: e.asset.Publish,
	}, parent, diags
}
