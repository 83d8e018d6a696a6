package hclgraph

import "github.com/hashicorp/hcl/v2"

// fileSchema lists the top-level blocks of a graph file. Decoding block by
// block, instead of into one struct, keeps their relative order.
var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "stack", LabelNames: []string{"id"}},
		{Type: "asset", LabelNames: []string{"id"}},
	},
}

// hclStack is the body of a `stack` block.
type hclStack struct {
	Name        string         `hcl:"name,optional"`
	Environment string         `hcl:"environment,optional"`
	Template    string         `hcl:"template,optional"`
	Deploy      string         `hcl:"deploy,optional"`
	DependsOn   hcl.Expression `hcl:"depends_on,optional"`
	Assets      hcl.Expression `hcl:"assets,optional"`
}

// hclAsset is the body of an `asset` block.
type hclAsset struct {
	Stack       string         `hcl:"stack"`
	Packaging   string         `hcl:"packaging,optional"`
	Source      string         `hcl:"source,optional"`
	Fingerprint string         `hcl:"fingerprint,optional"`
	Build       string         `hcl:"build,optional"`
	Publish     string         `hcl:"publish,optional"`
	DependsOn   hcl.Expression `hcl:"depends_on,optional"`
}
