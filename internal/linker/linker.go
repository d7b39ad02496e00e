// Package linker combines registered beam polarizations into named,
// per-energy sharing configurations.
package linker

import (
	"strings"

	"github.com/specialistvlad/toymeas/internal/model"
)

// PolarizationLookup resolves a polarization label at an energy.
type PolarizationLookup interface {
	Polarization(label string, energy model.Energy) (model.PolarizationState, error)
}

// Linker keeps the polarization configs of every energy in insertion order.
// The sum of fractions is not checked here.
type Linker struct {
	lookup  PolarizationLookup
	configs map[model.Energy][]model.PolarizationConfig
}

// New creates a Linker resolving labels through lookup.
func New(lookup PolarizationLookup) *Linker {
	return &Linker{
		lookup:  lookup,
		configs: make(map[model.Energy][]model.PolarizationConfig),
	}
}

// AddConfig registers a sharing configuration.
func (l *Linker) AddConfig(name string, energy model.Energy, eLabel, pLabel, eSign, pSign string, fraction float64) error {
	const op = "linker.add_config"
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Errorf(op, model.ErrInvalidValue, "polarization config name must not be empty")
	}
	electron, err := l.lookup.Polarization(eLabel, energy)
	if err != nil {
		return err
	}
	positron, err := l.lookup.Polarization(pLabel, energy)
	if err != nil {
		return err
	}
	if !(fraction > 0 && fraction <= 1) {
		return model.Errorf(op, model.ErrInvalidValue, "fraction %v of config %q must be within (0,1]", fraction, name)
	}
	es, err := model.ParseHelicity(eSign)
	if err != nil {
		return model.Errorf(op, model.ErrInvalidValue, "electron sign of config %q: %v", name, err)
	}
	ps, err := model.ParseHelicity(pSign)
	if err != nil {
		return model.Errorf(op, model.ErrInvalidValue, "positron sign of config %q: %v", name, err)
	}

	pc := model.PolarizationConfig{
		Name:         name,
		Energy:       energy,
		Electron:     electron,
		Positron:     positron,
		ElectronSign: es,
		PositronSign: ps,
		Fraction:     fraction,
	}
	for _, existing := range l.configs[energy] {
		if existing.Key() == pc.Key() {
			return model.Errorf(op, model.ErrDuplicateConfig,
				"config %q repeats %q (%s%s, %s%s) at energy %s",
				name, existing.Name, electron.Label, es, positron.Label, ps, energy)
		}
		if existing.Name == name {
			return model.Errorf(op, model.ErrDuplicateConfig, "config name %q already used at energy %s", name, energy)
		}
	}

	l.configs[energy] = append(l.configs[energy], pc)
	return nil
}

// Configs returns the configs of energy in insertion order.
func (l *Linker) Configs(energy model.Energy) []model.PolarizationConfig {
	return append([]model.PolarizationConfig(nil), l.configs[energy]...)
}

// Energies returns every energy with at least one config, ascending.
func (l *Linker) Energies() []model.Energy {
	out := make([]model.Energy, 0, len(l.configs))
	for e := range l.configs {
		out = append(out, e)
	}
	return model.SortEnergies(out)
}

// FractionSum adds up the sharing fractions at energy.
func (l *Linker) FractionSum(energy model.Energy) float64 {
	sum := 0.0
	for _, pc := range l.configs[energy] {
		sum += pc.Fraction
	}
	return sum
}
