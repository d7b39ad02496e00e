// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package model

import (
	"fmt"
	"strings"
)

// Helicity is the sign tag of a beam polarization, "+" or "-".
type Helicity string

const (
	HelicityPlus  Helicity = "+"
	HelicityMinus Helicity = "-"
)

// ParseHelicity accepts exactly "+" or "-" (surrounding spaces ignored).
func ParseHelicity(s string) (Helicity, error) {
	switch h := Helicity(strings.TrimSpace(s)); h {
	case HelicityPlus, HelicityMinus:
		return h, nil
	default:
		return "", fmt.Errorf("helicity %q must be one of {+,-}", s)
	}
}

// Factor returns +1 or -1.
func (h Helicity) Factor() float64 {
	if h == HelicityMinus {
		return -1
	}
	return 1
}

// PolarizationState is a configured beam polarization source.
type PolarizationState struct {
	Label          string
	Energy         Energy
	Magnitude      float64
	RelUncertainty float64
}

// PolarizationConfig is a named sharing configuration at one energy. It holds
// copies of the referenced states so it stays valid once registries change.
type PolarizationConfig struct {
	Name         string
	Energy       Energy
	Electron     PolarizationState
	Positron     PolarizationState
	ElectronSign Helicity
	PositronSign Helicity
	Fraction     float64
}

// ConfigKey identifies a config by its physical content, independent of name.
type ConfigKey struct {
	Energy        Energy
	ElectronLabel string
	PositronLabel string
	ElectronSign  Helicity
	PositronSign  Helicity
}

// Key returns the identity used for duplicate detection.
func (c PolarizationConfig) Key() ConfigKey {
	return ConfigKey{
		Energy:        c.Energy,
		ElectronLabel: c.Electron.Label,
		PositronLabel: c.Positron.Label,
		ElectronSign:  c.ElectronSign,
		PositronSign:  c.PositronSign,
	}
}

// ElectronPolarization is the signed electron beam polarization.
func (c PolarizationConfig) ElectronPolarization() float64 {
	return c.ElectronSign.Factor() * c.Electron.Magnitude
}

// PositronPolarization is the signed positron beam polarization.
func (c PolarizationConfig) PositronPolarization() float64 {
	return c.PositronSign.Factor() * c.Positron.Magnitude
}
