package config

import "github.com/specialistvlad/toymeas/internal/model"

// Model is the unified, format-agnostic representation of a setup file.
type Model struct {
	Output         string
	Connector      string
	Sources        []*Source
	Distributions  []string
	Luminosities   []*Luminosity
	Polarizations  []*Polarization
	PolConfigs     []*PolConfig
	Normalizations []*Normalization
}

// Source is the format-agnostic representation of a `source` block.
type Source struct {
	Name   string
	Path   string
	Energy model.Energy
}

// Luminosity is the format-agnostic representation of a `luminosity` block.
type Luminosity struct {
	Energy      model.Energy
	Value       float64
	Uncertainty float64
}

// Polarization is the format-agnostic representation of a `polarization`
// block.
type Polarization struct {
	Label       string
	Energy      model.Energy
	Magnitude   float64
	Uncertainty float64
}

// PolConfig is the format-agnostic representation of a `pol_config` block.
type PolConfig struct {
	Name         string
	Energy       model.Energy
	Electron     string
	Positron     string
	ElectronSign string
	PositronSign string
	Fraction     float64
}

// Normalization is the format-agnostic representation of a `normalization`
// block.
type Normalization struct {
	Name         string
	Distribution string
	Channel      string
	Factor       float64
	Energy       model.Energy
}

// Energies returns every energy a source is registered for, ascending.
func (m *Model) Energies() []model.Energy {
	seen := make(map[model.Energy]struct{})
	var out []model.Energy
	for _, s := range m.Sources {
		if _, ok := seen[s.Energy]; ok {
			continue
		}
		seen[s.Energy] = struct{}{}
		out = append(out, s.Energy)
	}
	return model.SortEnergies(out)
}

// Merge appends the contents of other to m. Output and Connector may be set
// by at most one of the two.
func (m *Model) Merge(other *Model) error {
	if other == nil {
		return nil
	}
	if other.Output != "" {
		if m.Output != "" && m.Output != other.Output {
			return model.Errorf("config.merge", model.ErrInvalidValue, "output is set twice (%q and %q)", m.Output, other.Output)
		}
		m.Output = other.Output
	}
	if other.Connector != "" {
		if m.Connector != "" && m.Connector != other.Connector {
			return model.Errorf("config.merge", model.ErrInvalidValue, "connector is set twice (%q and %q)", m.Connector, other.Connector)
		}
		m.Connector = other.Connector
	}
	m.Sources = append(m.Sources, other.Sources...)
	m.Distributions = append(m.Distributions, other.Distributions...)
	m.Luminosities = append(m.Luminosities, other.Luminosities...)
	m.Polarizations = append(m.Polarizations, other.Polarizations...)
	m.PolConfigs = append(m.PolConfigs, other.PolConfigs...)
	m.Normalizations = append(m.Normalizations, other.Normalizations...)
	return nil
}
