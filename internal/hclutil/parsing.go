// Package hclutil collects small HCL helpers shared by the configuration
// loaders.
package hclutil

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// StringList evaluates an attribute that must be written as a list literal
// of strings, e.g. `depends_on = ["a", "b"]`. A missing attribute yields nil.
func StringList(name string, expr hcl.Expression, evalCtx *hcl.EvalContext) ([]string, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	if expr == nil {
		return nil, diags
	}

	// The expression must be a tuple constructor, i.e., a list literal like `[...]`.
	if syntaxExpr, ok := expr.(hclsyntax.Expression); ok {
		if _, isTuple := syntaxExpr.(*hclsyntax.TupleConsExpr); !isTuple {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  fmt.Sprintf("Invalid %s value", name),
				Detail:   fmt.Sprintf("The '%s' attribute must be a list of strings.", name),
				Subject:  expr.Range().Ptr(),
			})
			return nil, diags
		}
	}

	val, valDiags := expr.Value(evalCtx)
	diags = append(diags, valDiags...)
	if diags.HasErrors() || val.IsNull() {
		return nil, diags
	}

	var out []string
	listVal, err := convert.Convert(val, cty.List(cty.String))
	if err == nil {
		err = gocty.FromCtyValue(listVal, &out)
	}
	if err != nil {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  fmt.Sprintf("Invalid %s value", name),
			Detail:   fmt.Sprintf("The '%s' attribute must be a list of strings: %s.", name, err),
			Subject:  expr.Range().Ptr(),
		})
		return nil, diags
	}
	return out, diags
}

// ErrorAt builds an error diagnostic pointing at rng.
func ErrorAt(rng hcl.Range, summary, detail string) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   detail,
		Subject:  rng.Ptr(),
	}
}
