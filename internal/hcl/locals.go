package hcl

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

var localsSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{{Type: "locals"}},
}

// evalLocals collects the locals of every file and evaluates them into an
// EvalContext exposing them as `local.<name>`. Locals may reference each
// other in any order; cycles are reported as errors.
func evalLocals(files []*hcl.File) (*hcl.EvalContext, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	pending := make(map[string]*hcl.Attribute)

	for _, f := range files {
		content, _, d := f.Body.PartialContent(localsSchema)
		diags = append(diags, d...)
		if content == nil {
			continue
		}
		for _, block := range content.Blocks {
			attrs, d := block.Body.JustAttributes()
			diags = append(diags, d...)
			for name, attr := range attrs {
				if prev, dup := pending[name]; dup {
					diags = append(diags, &hcl.Diagnostic{
						Severity: hcl.DiagError,
						Summary:  "Duplicate local value",
						Detail:   fmt.Sprintf("Local %q was already defined at %s.", name, prev.NameRange),
						Subject:  attr.NameRange.Ptr(),
					})
					continue
				}
				pending[name] = attr
			}
		}
	}
	if diags.HasErrors() {
		return nil, diags
	}

	resolved := make(map[string]cty.Value, len(pending))
	for len(pending) > 0 {
		progress := false
		for _, name := range sortedNames(pending) {
			attr := pending[name]
			if waitsOnPending(attr.Expr, pending, name) {
				continue
			}
			val, d := attr.Expr.Value(localsContext(resolved))
			diags = append(diags, d...)
			if d.HasErrors() {
				return nil, diags
			}
			resolved[name] = val
			delete(pending, name)
			progress = true
		}
		if !progress {
			for _, name := range sortedNames(pending) {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Cyclic local value",
					Detail:   fmt.Sprintf("Local %q depends on itself through other locals.", name),
					Subject:  pending[name].NameRange.Ptr(),
				})
			}
			return nil, diags
		}
	}
	return localsContext(resolved), diags
}

func localsContext(values map[string]cty.Value) *hcl.EvalContext {
	obj := cty.EmptyObjectVal
	if len(values) > 0 {
		obj = cty.ObjectVal(values)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"local": obj},
	}
}

// waitsOnPending reports whether expr references a local that is still
// unevaluated. A self reference counts.
func waitsOnPending(expr hcl.Expression, pending map[string]*hcl.Attribute, self string) bool {
	for _, tr := range expr.Variables() {
		if tr.RootName() != "local" || len(tr) < 2 {
			continue
		}
		attr, ok := tr[1].(hcl.TraverseAttr)
		if !ok {
			continue
		}
		if _, isPending := pending[attr.Name]; isPending {
			return true
		}
		if attr.Name == self {
			return true
		}
	}
	return false
}

func sortedNames(m map[string]*hcl.Attribute) []string {
	out := make([]string, 0, len(m))
	for n := range m {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
