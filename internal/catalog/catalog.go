// Package catalog tracks the registered input sources and the distributions
// selected for export, and resolves selections against the templates the
// sources provide.
package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/specialistvlad/toymeas/internal/ctxlog"
	"github.com/specialistvlad/toymeas/internal/model"
)

// SourceReader returns the distribution templates found in one source.
// Implementations must be idempotent.
type SourceReader interface {
	Read(ctx context.Context, ref model.SourceRef) ([]model.Distribution, error)
}

// SourceReaderFunc adapts a function to SourceReader.
type SourceReaderFunc func(ctx context.Context, ref model.SourceRef) ([]model.Distribution, error)

// Read calls f.
func (f SourceReaderFunc) Read(ctx context.Context, ref model.SourceRef) ([]model.Distribution, error) {
	return f(ctx, ref)
}

// Catalog holds source references and selected distribution names.
type Catalog struct {
	sources  []model.SourceRef
	selected []string
	seen     map[string]struct{}
}

// New creates an empty Catalog.
func New() *Catalog {
	return &Catalog{seen: make(map[string]struct{})}
}

// RegisterSource records an input source for energy.
func (c *Catalog) RegisterSource(path string, energy model.Energy) error {
	const op = "catalog.register_source"
	path = strings.TrimSpace(path)
	if path == "" {
		return model.Errorf(op, model.ErrSource, "source path must not be empty")
	}
	if !energy.Valid() {
		return model.Errorf(op, model.ErrInvalidValue, "energy %v of source %q must be positive", float64(energy), path)
	}
	ref := model.SourceRef{Path: path, Energy: energy}
	for _, s := range c.sources {
		if s == ref {
			return model.Errorf(op, model.ErrSource, "source %q already registered for energy %s", path, energy)
		}
	}
	c.sources = append(c.sources, ref)
	return nil
}

// Select marks a distribution for export. Existence is checked by Resolve;
// selecting the same name twice is a no-op.
func (c *Catalog) Select(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Errorf("catalog.select", model.ErrInvalidValue, "distribution name must not be empty")
	}
	if _, ok := c.seen[name]; ok {
		return nil
	}
	c.seen[name] = struct{}{}
	c.selected = append(c.selected, name)
	return nil
}

// Selected returns the selected names in selection order.
func (c *Catalog) Selected() []string {
	return append([]string(nil), c.selected...)
}

// Sources returns the registered sources in registration order.
func (c *Catalog) Sources() []model.SourceRef {
	return append([]model.SourceRef(nil), c.sources...)
}

// Resolution maps each energy to its selected distributions, in selection
// order.
type Resolution map[model.Energy][]model.Distribution

// Energies returns the energies with at least one selected distribution.
func (r Resolution) Energies() []model.Energy {
	out := make([]model.Energy, 0, len(r))
	for e, ds := range r {
		if len(ds) > 0 {
			out = append(out, e)
		}
	}
	return model.SortEnergies(out)
}

// Has reports whether distribution name was resolved at energy e.
func (r Resolution) Has(name string, e model.Energy) bool {
	for _, d := range r[e] {
		if d.Name == name {
			return true
		}
	}
	return false
}

// HasAnywhere reports whether distribution name was resolved at any energy.
func (r Resolution) HasAnywhere(name string) bool {
	for e := range r {
		if r.Has(name, e) {
			return true
		}
	}
	return false
}

// Resolve reads every registered source once and returns the selected
// distributions per energy. A selected name must exist in at least one
// source and at most once per energy.
func (c *Catalog) Resolve(ctx context.Context, reader SourceReader) (Resolution, error) {
	const op = "catalog.resolve"
	logger := ctxlog.FromContext(ctx)

	type hit struct {
		distr model.Distribution
		count int
	}
	found := make(map[model.Energy]map[string]*hit)

	for _, ref := range c.sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		templates, err := reader.Read(ctx, ref)
		if err != nil {
			var oe *model.OpError
			if errors.As(err, &oe) {
				return nil, err
			}
			return nil, model.PathErrorf(op, ref.Path, model.ErrSourceRead, err)
		}
		logger.Debug("Read distribution source.", "path", ref.Path, "energy", ref.Energy, "templates", len(templates))

		if found[ref.Energy] == nil {
			found[ref.Energy] = make(map[string]*hit)
		}
		for _, d := range templates {
			if _, wanted := c.seen[d.Name]; !wanted {
				continue
			}
			h, ok := found[ref.Energy][d.Name]
			if !ok {
				d = d.Clone()
				d.Energy = ref.Energy
				d.Source = ref.Path
				found[ref.Energy][d.Name] = &hit{distr: d, count: 1}
				continue
			}
			h.count++
		}
	}

	res := make(Resolution)
	for _, name := range c.selected {
		present := false
		for e, byName := range found {
			h, ok := byName[name]
			if !ok {
				continue
			}
			if h.count > 1 {
				return nil, model.Errorf(op, model.ErrUnknownDistribution,
					"distribution %q is ambiguous at energy %s (%d templates)", name, e, h.count)
			}
			present = true
			res[e] = append(res[e], h.distr)
		}
		if !present {
			return nil, model.Errorf(op, model.ErrUnknownDistribution,
				"distribution %q not found in any registered source", name)
		}
	}
	return res, nil
}
