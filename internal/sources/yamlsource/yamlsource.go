// Package yamlsource reads distribution templates from YAML files:
//
//	distributions:
//	  - name: Zhadronic
//	    dim: 1
//	    bins:
//	      - centers: [-0.9]
//	        nominal: 10.5
//	        uncertainty: 0.3
//	        chiral: {LR: 12.0, RL: 9.0}
package yamlsource

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/specialistvlad/toymeas/internal/catalog"
	"github.com/specialistvlad/toymeas/internal/model"
	"gopkg.in/yaml.v3"
)

type yamlFile struct {
	Distributions []yamlDistribution `yaml:"distributions"`
}

type yamlDistribution struct {
	Name string    `yaml:"name"`
	Dim  int       `yaml:"dim"`
	Bins []yamlBin `yaml:"bins"`
}

type yamlBin struct {
	Centers     []float64          `yaml:"centers"`
	Nominal     float64            `yaml:"nominal"`
	Uncertainty float64            `yaml:"uncertainty"`
	Chiral      map[string]float64 `yaml:"chiral"`
}

// Reader implements catalog.SourceReader for YAML templates.
type Reader struct{}

// New creates a Reader.
func New() *Reader {
	return &Reader{}
}

var _ catalog.SourceReader = (*Reader)(nil)

// Read loads every template of the file at ref.Path.
func (r *Reader) Read(ctx context.Context, ref model.SourceRef) ([]model.Distribution, error) {
	const op = "yamlsource.read"
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b, err := os.ReadFile(ref.Path)
	if err != nil {
		return nil, model.PathErrorf(op, ref.Path, model.ErrSourceRead, err)
	}

	var yf yamlFile
	if err := yaml.Unmarshal(b, &yf); err != nil {
		return nil, model.PathErrorf(op, ref.Path, model.ErrSourceRead, err)
	}

	out, err := mapAndValidate(yf, ref)
	if err != nil {
		return nil, model.PathErrorf(op, ref.Path, model.ErrSourceRead, err)
	}
	return out, nil
}

func mapAndValidate(yf yamlFile, ref model.SourceRef) ([]model.Distribution, error) {
	out := make([]model.Distribution, 0, len(yf.Distributions))
	for i, yd := range yf.Distributions {
		name := strings.TrimSpace(yd.Name)
		if name == "" {
			return nil, fmt.Errorf("distribution #%d has no name", i)
		}
		dim := yd.Dim
		if dim == 0 && len(yd.Bins) > 0 {
			dim = len(yd.Bins[0].Centers)
		}
		if dim < 0 {
			return nil, fmt.Errorf("distribution %q: dim %d must not be negative", name, dim)
		}

		d := model.Distribution{
			Name:   name,
			Energy: ref.Energy,
			Source: ref.Path,
			Dim:    dim,
			Bins:   make([]model.Bin, len(yd.Bins)),
		}
		for b, yb := range yd.Bins {
			if len(yb.Centers) != dim {
				return nil, fmt.Errorf("distribution %q bin %d: %d centers for dim %d", name, b, len(yb.Centers), dim)
			}
			d.Bins[b] = model.Bin{
				Centers: append([]float64(nil), yb.Centers...),
				Value: model.BinValue{
					Nominal:     yb.Nominal,
					Uncertainty: yb.Uncertainty,
					Components:  yb.Chiral,
				},
			}
		}
		out = append(out, d)
	}
	return out, nil
}
