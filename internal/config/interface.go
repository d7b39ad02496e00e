package config

import (
	"context"

	"github.com/specialistvlad/toymeas/internal/model"
)

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads the setup files found at paths and merges them into one
	// Model.
	Load(ctx context.Context, paths ...string) (*Model, error)
}

// Target receives the contents of a Model. setup.MeasurementSetup
// implements it.
type Target interface {
	AddSource(path string, energy model.Energy) error
	UseDistribution(name string) error
	SetLuminosity(energy model.Energy, value, relUnc float64) error
	AddPolarization(label string, energy model.Energy, magnitude, relUnc float64) error
	AddPolConfig(name string, energy model.Energy, eLabel, pLabel, eSign, pSign string, fraction float64) error
	AddNormalizationOverride(o model.NormalizationOverride) error
}
