// Package toygen produces expected (unfluctuated) per-bin values for every
// selected distribution under every polarization config of a linked setup.
package toygen

import (
	"context"
	"fmt"
	"sync"

	"github.com/specialistvlad/toymeas/internal/ctxlog"
	"github.com/specialistvlad/toymeas/internal/model"
	"golang.org/x/sync/errgroup"
)

// Parameters are the per-call inputs handed to a DataConnector.
type Parameters struct {
	Energy     model.Energy
	Luminosity model.LuminositySystematic
	// Overrides holds only the overrides that target the distribution.
	Overrides []model.NormalizationOverride
}

// DataConnector computes one expected value per bin. Implementations must be
// pure and safe for concurrent use.
type DataConnector interface {
	ExpectedValues(d model.Distribution, pc model.PolarizationConfig, p Parameters) ([]float64, error)
}

// SetupSource yields a finalized setup. Both setup.MeasurementSetup and
// model.LinkedSetup satisfy it.
type SetupSource interface {
	Linked() (*model.LinkedSetup, error)
}

// Generator turns a linked setup into toy results.
type Generator struct {
	connector DataConnector
	source    SetupSource
}

// New creates a Generator.
func New(connector DataConnector, source SetupSource) *Generator {
	return &Generator{connector: connector, source: source}
}

// ExpectedDistributions returns one result per (distribution, config) pair at
// energy, grouped by distribution in selection order and then by config in
// insertion order.
func (g *Generator) ExpectedDistributions(ctx context.Context, energy model.Energy) ([]model.ToyResult, error) {
	const op = "toygen.expected_distributions"

	ls, err := g.source.Linked()
	if err != nil {
		return nil, err
	}
	if ls == nil {
		return nil, model.Errorf(op, model.ErrSetupNotFinalized, "no linked setup")
	}
	sec, err := ls.At(energy)
	if err != nil {
		return nil, err
	}

	ctx = ctxlog.With(ctx, "energy", energy)
	logger := ctxlog.FromContext(ctx)
	results := make([]model.ToyResult, 0, len(sec.Distributions)*len(sec.PolConfigs))

	for _, d := range sec.Distributions {
		params := Parameters{
			Energy:     energy,
			Luminosity: sec.Luminosity,
			Overrides:  sec.OverridesFor(d.Name),
		}
		for _, pc := range sec.PolConfigs {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			values, err := g.connector.ExpectedValues(d, pc, params)
			if err != nil {
				return nil, &model.OpError{
					Op:   op,
					Kind: model.KindExecution,
					Err:  fmt.Errorf("distribution %q, config %q: %w: %w", d.Name, pc.Name, model.ErrConnector, err),
				}
			}
			if len(values) != d.NBins() {
				return nil, model.Errorf(op, model.ErrConnector,
					"distribution %q, config %q: connector returned %d values for %d bins", d.Name, pc.Name, len(values), d.NBins())
			}

			results = append(results, model.ToyResult{
				Distribution: d.Name,
				PolConfig:    pc.Name,
				Energy:       energy,
				Dim:          d.Dim,
				Centers:      d.Centers(),
				Values:       append([]float64(nil), values...),
			})
		}
	}

	logger.Debug("Generated expected distributions.", "results", len(results))
	return results, nil
}

// GenerateAll runs ExpectedDistributions for every energy concurrently.
func (g *Generator) GenerateAll(ctx context.Context) (map[model.Energy][]model.ToyResult, error) {
	ls, err := g.source.Linked()
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	out := make(map[model.Energy][]model.ToyResult)

	eg, egCtx := errgroup.WithContext(ctx)
	for _, e := range ls.Energies() {
		eg.Go(func() error {
			results, err := g.ExpectedDistributions(egCtx, e)
			if err != nil {
				return err
			}
			mu.Lock()
			out[e] = results
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
