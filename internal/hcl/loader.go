package hcl

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/toymeas/internal/config"
	"github.com/specialistvlad/toymeas/internal/ctxlog"
	"github.com/specialistvlad/toymeas/internal/fsutil"
	"github.com/specialistvlad/toymeas/internal/model"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Extension is the file extension of setup files.
const Extension = ".hcl"

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL setup loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ config.Loader = (*Loader)(nil)

// Load parses every setup file found at paths and merges them into one
// Model.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	const op = "hcl.load"
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	var files []string
	for _, p := range paths {
		found, err := fsutil.FindFilesByExtension(p, Extension)
		if err != nil {
			return nil, model.PathErrorf(op, p, model.ErrInvalidValue, err)
		}
		files = append(files, found...)
	}
	if len(files) == 0 {
		return nil, model.Errorf(op, model.ErrInvalidValue, "no %s setup files found in %v", Extension, paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	parsed := make([]*hcl.File, 0, len(files))
	for _, file := range files {
		f, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, diagError(op, file, diags)
		}
		parsed = append(parsed, f)
	}

	evalCtx, diags := evalLocals(parsed)
	if diags.HasErrors() {
		return nil, diagError(op, files[0], diags)
	}

	merged := &config.Model{}
	for i, f := range parsed {
		var root fileRoot
		if diags := gohcl.DecodeBody(f.Body, evalCtx, &root); diags.HasErrors() {
			return nil, diagError(op, files[i], diags)
		}
		m, err := translate(&root, evalCtx, filepath.Dir(files[i]))
		if err != nil {
			return nil, &model.OpError{Op: op, Kind: model.KindConfiguration, Path: files[i], Err: err}
		}
		if err := merged.Merge(m); err != nil {
			return nil, err
		}
	}

	logger.Debug("HCL loading complete.",
		"sources", len(merged.Sources),
		"distributions", len(merged.Distributions),
		"pol_configs", len(merged.PolConfigs),
	)
	return merged, nil
}

// translate converts one decoded file into the format-agnostic model.
func translate(root *fileRoot, evalCtx *hcl.EvalContext, dir string) (*config.Model, error) {
	m := &config.Model{}
	if root.Output != nil {
		m.Output = *root.Output
	}
	if root.Connector != nil {
		m.Connector = *root.Connector
	}

	names, err := decodeNames(root.Distributions, evalCtx)
	if err != nil {
		return nil, err
	}
	m.Distributions = names

	for _, s := range root.Sources {
		path := s.Path
		if path != "" && !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		m.Sources = append(m.Sources, &config.Source{Name: s.Name, Path: path, Energy: model.Energy(s.Energy)})
	}
	for _, lb := range root.Luminosities {
		m.Luminosities = append(m.Luminosities, &config.Luminosity{
			Energy:      model.Energy(lb.Energy),
			Value:       lb.Value,
			Uncertainty: lb.Uncertainty,
		})
	}
	for _, p := range root.Polarizations {
		m.Polarizations = append(m.Polarizations, &config.Polarization{
			Label:       p.Label,
			Energy:      model.Energy(p.Energy),
			Magnitude:   p.Magnitude,
			Uncertainty: p.Uncertainty,
		})
	}
	for _, pc := range root.PolConfigs {
		m.PolConfigs = append(m.PolConfigs, &config.PolConfig{
			Name:         pc.Name,
			Energy:       model.Energy(pc.Energy),
			Electron:     pc.Electron,
			Positron:     pc.Positron,
			ElectronSign: pc.ElectronSign,
			PositronSign: pc.PositronSign,
			Fraction:     pc.Fraction,
		})
	}
	for _, n := range root.Normalizations {
		norm := &config.Normalization{
			Name:         n.Name,
			Distribution: n.Distribution,
			Channel:      n.Channel,
			Factor:       1,
		}
		if n.Factor != nil {
			norm.Factor = *n.Factor
		}
		if n.Energy != nil {
			norm.Energy = model.Energy(*n.Energy)
		}
		m.Normalizations = append(m.Normalizations, norm)
	}
	return m, nil
}

// decodeNames accepts a single string or any list, tuple or set of strings.
func decodeNames(expr hcl.Expression, evalCtx *hcl.EvalContext) ([]string, error) {
	if expr == nil {
		return nil, nil
	}
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, nil
	}
	if val.Type() == cty.String {
		val = cty.ListVal([]cty.Value{val})
	}

	list, err := convert.Convert(val, cty.List(cty.String))
	if err != nil {
		return nil, fmt.Errorf("distributions must be a list of strings: %w", err)
	}
	if !list.IsWhollyKnown() {
		return nil, fmt.Errorf("distributions must be known at load time")
	}

	var names []string
	if err := gocty.FromCtyValue(list, &names); err != nil {
		return nil, fmt.Errorf("distributions: %w", err)
	}
	return names, nil
}

func diagError(op, path string, diags hcl.Diagnostics) error {
	return &model.OpError{
		Op:   op,
		Kind: model.KindConfiguration,
		Path: path,
		Err:  fmt.Errorf("%w: %w", model.ErrInvalidValue, diags),
	}
}
