// Package sources selects a source reader by file extension. YAML files are
// read as templates; toy output files written by a previous run are
// re-imported so their expected values serve as nominal templates.
package sources

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/toymeas/internal/catalog"
	"github.com/specialistvlad/toymeas/internal/distrio"
	"github.com/specialistvlad/toymeas/internal/model"
	"github.com/specialistvlad/toymeas/internal/sources/yamlsource"
)

// Dispatch routes each source to the reader registered for its extension.
type Dispatch struct {
	readers map[string]catalog.SourceReader
}

// NewDispatch creates a Dispatch with the built-in readers.
func NewDispatch() *Dispatch {
	y := yamlsource.New()
	out := OutputReader{}
	return &Dispatch{readers: map[string]catalog.SourceReader{
		".yaml": y,
		".yml":  y,
		".out":  out,
		".txt":  out,
	}}
}

// Register adds or replaces the reader for ext (including the dot).
func (d *Dispatch) Register(ext string, r catalog.SourceReader) {
	d.readers[strings.ToLower(ext)] = r
}

var _ catalog.SourceReader = (*Dispatch)(nil)

// Read implements catalog.SourceReader.
func (d *Dispatch) Read(ctx context.Context, ref model.SourceRef) ([]model.Distribution, error) {
	ext := strings.ToLower(filepath.Ext(ref.Path))
	r, ok := d.readers[ext]
	if !ok {
		return nil, model.PathErrorf("sources.read", ref.Path, model.ErrSource,
			fmt.Errorf("no reader for extension %q", ext))
	}
	return r.Read(ctx, ref)
}

// OutputReader re-imports toy output files. Results of the same
// distribution are summed over their polarization configs into the nominal
// value of each bin.
type OutputReader struct{}

// Read implements catalog.SourceReader.
func (OutputReader) Read(ctx context.Context, ref model.SourceRef) ([]model.Distribution, error) {
	const op = "sources.read_output"
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	energy, results, err := distrio.ReadFile(ref.Path)
	if err != nil {
		return nil, err
	}
	if energy != 0 && energy != ref.Energy {
		return nil, model.PathErrorf(op, ref.Path, model.ErrSourceRead,
			fmt.Errorf("file holds energy %s, source is registered for %s", energy, ref.Energy))
	}

	var (
		order  []string
		byName = make(map[string]*model.Distribution)
	)
	for _, r := range results {
		d, ok := byName[r.Distribution]
		if !ok {
			d = &model.Distribution{
				Name:   r.Distribution,
				Energy: ref.Energy,
				Source: ref.Path,
				Dim:    r.Dim,
				Bins:   make([]model.Bin, r.NBins()),
			}
			for i := range d.Bins {
				d.Bins[i].Centers = append([]float64(nil), r.Centers[i]...)
			}
			byName[r.Distribution] = d
			order = append(order, r.Distribution)
		}
		if d.NBins() != r.NBins() || d.Dim != r.Dim {
			return nil, model.PathErrorf(op, ref.Path, model.ErrSourceRead,
				fmt.Errorf("distribution %q changes binning between configs", r.Distribution))
		}
		for i, v := range r.Values {
			d.Bins[i].Value.Nominal += v
		}
	}

	out := make([]model.Distribution, 0, len(order))
	for _, name := range order {
		out = append(out, *byName[name])
	}
	return out, nil
}
