// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines LinkedSetup, the immutable product of a successful
// finalize. Every accessor hands out copies, so no caller can mutate the
// setup after it has been validated.
package model

// EnergySetup is everything linked for one energy.
type EnergySetup struct {
	Energy        Energy
	Distributions []Distribution
	PolConfigs    []PolarizationConfig
	Luminosity    LuminositySystematic
	Overrides     []NormalizationOverride
}

// OverridesFor returns the overrides applied to the named distribution.
func (s EnergySetup) OverridesFor(name string) []NormalizationOverride {
	var out []NormalizationOverride
	for _, o := range s.Overrides {
		if o.AppliesTo(name, s.Energy) {
			out = append(out, o)
		}
	}
	return out
}

func (s EnergySetup) clone() EnergySetup {
	out := EnergySetup{
		Energy:        s.Energy,
		Distributions: make([]Distribution, len(s.Distributions)),
		PolConfigs:    append([]PolarizationConfig(nil), s.PolConfigs...),
		Luminosity:    s.Luminosity,
		Overrides:     append([]NormalizationOverride(nil), s.Overrides...),
	}
	for i, d := range s.Distributions {
		out.Distributions[i] = d.Clone()
	}
	return out
}

// LinkedSetup is the read-only, validated measurement setup.
type LinkedSetup struct {
	order    []Energy
	sections map[Energy]EnergySetup
}

// NewLinkedSetup takes ownership of copies of the given sections.
func NewLinkedSetup(sections []EnergySetup) *LinkedSetup {
	ls := &LinkedSetup{
		sections: make(map[Energy]EnergySetup, len(sections)),
	}
	for _, s := range sections {
		if _, dup := ls.sections[s.Energy]; !dup {
			ls.order = append(ls.order, s.Energy)
		}
		ls.sections[s.Energy] = s.clone()
	}
	SortEnergies(ls.order)
	return ls
}

// Energies returns all energies of the setup in ascending order.
func (l *LinkedSetup) Energies() []Energy {
	return append([]Energy(nil), l.order...)
}

// Has reports whether e is part of the setup.
func (l *LinkedSetup) Has(e Energy) bool {
	_, ok := l.sections[e]
	return ok
}

// At returns a copy of the section for energy e.
func (l *LinkedSetup) At(e Energy) (EnergySetup, error) {
	s, ok := l.sections[e]
	if !ok {
		return EnergySetup{}, Errorf("linkedsetup.at", ErrUnknownEnergy, "energy %s is not part of the setup", e)
	}
	return s.clone(), nil
}

// Linked returns the setup itself. A nil LinkedSetup reports that no setup
// has been finalized.
func (l *LinkedSetup) Linked() (*LinkedSetup, error) {
	if l == nil {
		return nil, Errorf("linkedsetup.linked", ErrSetupNotFinalized, "no linked setup")
	}
	return l, nil
}
