// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package model

// LuminositySystematic is the integrated luminosity of one energy.
type LuminositySystematic struct {
	Energy         Energy
	Value          float64
	RelUncertainty float64
}

// NormalizationOverride restricts the normalization of one distribution,
// e.g. counting only a single decay channel. Energy zero applies the
// override at every energy where the distribution is selected.
type NormalizationOverride struct {
	Name         string
	Distribution string
	Channel      string
	Factor       float64
	Energy       Energy
}

// AppliesTo reports whether the override targets distribution name at e.
func (o NormalizationOverride) AppliesTo(name string, e Energy) bool {
	if o.Distribution != name {
		return false
	}
	return o.Energy == 0 || o.Energy == e
}
