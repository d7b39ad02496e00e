// Package connector ships the data connectors that turn a distribution
// template into expected per-bin event counts.
//
// Both connectors scale by integrated luminosity, the sharing fraction of the
// polarization config and the product of all normalization override factors
// that target the distribution.
package connector

import (
	"fmt"
	"sort"
	"strings"

	"github.com/specialistvlad/toymeas/internal/model"
	"github.com/specialistvlad/toymeas/internal/toygen"
)

// Chiral component keys: electron helicity first, positron second.
const (
	ComponentLR = "LR"
	ComponentRL = "RL"
	ComponentLL = "LL"
	ComponentRR = "RR"
)

// chiralOrder fixes the summation order so results are bit-for-bit stable.
var chiralOrder = []string{ComponentLR, ComponentRL, ComponentLL, ComponentRR}

// Default is the connector used when a setup names none.
const Default = "chiral"

var registry = map[string]func() toygen.DataConnector{
	"chiral":  func() toygen.DataConnector { return Chiral{} },
	"nominal": func() toygen.DataConnector { return Nominal{} },
}

// ByName returns the connector registered under name. An empty name selects
// Default.
func ByName(name string) (toygen.DataConnector, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = Default
	}
	factory, ok := registry[name]
	if !ok {
		return nil, model.Errorf("connector.by_name", model.ErrInvalidValue,
			"unknown connector %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return factory(), nil
}

// Names lists the registered connector names, sorted.
func Names() []string {
	out := make([]string, 0, len(registry))
	for n := range registry {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// scale is luminosity times fraction times every override factor.
func scale(pc model.PolarizationConfig, p toygen.Parameters) float64 {
	s := p.Luminosity.Value * pc.Fraction
	for _, o := range p.Overrides {
		s *= o.Factor
	}
	return s
}

// Chiral weights the per-helicity cross-sections of each bin with the signed
// beam polarizations of the config. Bins without chiral components fall back
// to their nominal value.
type Chiral struct{}

// Weights returns the helicity weights for the signed electron (pe) and
// positron (pp) polarizations.
func Weights(pe, pp float64) map[string]float64 {
	return map[string]float64{
		ComponentLR: (1 - pe) * (1 + pp) / 4,
		ComponentRL: (1 + pe) * (1 - pp) / 4,
		ComponentLL: (1 - pe) * (1 - pp) / 4,
		ComponentRR: (1 + pe) * (1 + pp) / 4,
	}
}

// ExpectedValues implements toygen.DataConnector.
func (Chiral) ExpectedValues(d model.Distribution, pc model.PolarizationConfig, p toygen.Parameters) ([]float64, error) {
	weights := Weights(pc.ElectronPolarization(), pc.PositronPolarization())
	s := scale(pc, p)

	out := make([]float64, d.NBins())
	for i, b := range d.Bins {
		if len(b.Value.Components) == 0 {
			out[i] = s * b.Value.Nominal
			continue
		}
		for key := range b.Value.Components {
			if _, ok := weights[key]; !ok {
				return nil, fmt.Errorf("bin %d of %q has unknown chiral component %q", i, d.Name, key)
			}
		}
		sigma := 0.0
		for _, key := range chiralOrder {
			sigma += weights[key] * b.Value.Components[key]
		}
		out[i] = s * sigma
	}
	return out, nil
}

// Nominal ignores beam polarization and scales the nominal bin value.
type Nominal struct{}

// ExpectedValues implements toygen.DataConnector.
func (Nominal) ExpectedValues(d model.Distribution, pc model.PolarizationConfig, p toygen.Parameters) ([]float64, error) {
	s := scale(pc, p)
	out := make([]float64, d.NBins())
	for i, b := range d.Bins {
		out[i] = s * b.Value.Nominal
	}
	return out, nil
}
