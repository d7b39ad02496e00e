package config

import (
	"context"

	"github.com/specialistvlad/toymeas/internal/ctxlog"
	"github.com/specialistvlad/toymeas/internal/model"
)

// Apply feeds m into t in dependency order: sources and selections first,
// then systematics, then the polarization configs that reference them and
// finally the overrides. It stops at the first error.
func Apply(ctx context.Context, m *Model, t Target) error {
	logger := ctxlog.FromContext(ctx)

	for _, s := range m.Sources {
		if err := t.AddSource(s.Path, s.Energy); err != nil {
			return err
		}
	}
	for _, name := range m.Distributions {
		if err := t.UseDistribution(name); err != nil {
			return err
		}
	}
	for _, l := range m.Luminosities {
		if err := t.SetLuminosity(l.Energy, l.Value, l.Uncertainty); err != nil {
			return err
		}
	}
	for _, p := range m.Polarizations {
		if err := t.AddPolarization(p.Label, p.Energy, p.Magnitude, p.Uncertainty); err != nil {
			return err
		}
	}
	for _, pc := range m.PolConfigs {
		if err := t.AddPolConfig(pc.Name, pc.Energy, pc.Electron, pc.Positron, pc.ElectronSign, pc.PositronSign, pc.Fraction); err != nil {
			return err
		}
	}
	for _, n := range m.Normalizations {
		err := t.AddNormalizationOverride(model.NormalizationOverride{
			Name:         n.Name,
			Distribution: n.Distribution,
			Channel:      n.Channel,
			Factor:       n.Factor,
			Energy:       n.Energy,
		})
		if err != nil {
			return err
		}
	}

	logger.Debug("Applied setup configuration.",
		"sources", len(m.Sources),
		"distributions", len(m.Distributions),
		"pol_configs", len(m.PolConfigs),
		"overrides", len(m.Normalizations),
	)
	return nil
}
