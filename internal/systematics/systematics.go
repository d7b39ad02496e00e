// Package systematics stores luminosity and beam polarization systematics
// keyed by energy and label.
package systematics

import (
	"math"
	"strings"

	"github.com/specialistvlad/toymeas/internal/model"
)

type polKey struct {
	label  string
	energy model.Energy
}

// Registry holds the systematics of one measurement setup.
type Registry struct {
	luminosity   map[model.Energy]model.LuminositySystematic
	polarization map[polKey]model.PolarizationState
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		luminosity:   make(map[model.Energy]model.LuminositySystematic),
		polarization: make(map[polKey]model.PolarizationState),
	}
}

// SetLuminosity sets the integrated luminosity of energy, replacing any
// earlier value.
func (r *Registry) SetLuminosity(energy model.Energy, value, relUnc float64) error {
	const op = "systematics.set_luminosity"
	if !energy.Valid() {
		return model.Errorf(op, model.ErrInvalidValue, "energy %v must be positive", float64(energy))
	}
	if !finite(value) || value <= 0 {
		return model.Errorf(op, model.ErrInvalidValue, "luminosity %v at energy %s must be positive", value, energy)
	}
	if !finite(relUnc) || relUnc < 0 {
		return model.Errorf(op, model.ErrInvalidValue, "luminosity uncertainty %v at energy %s must not be negative", relUnc, energy)
	}

	r.luminosity[energy] = model.LuminositySystematic{
		Energy:         energy,
		Value:          value,
		RelUncertainty: relUnc,
	}
	return nil
}

// AddPolarization registers a beam polarization source.
func (r *Registry) AddPolarization(label string, energy model.Energy, magnitude, relUnc float64) error {
	const op = "systematics.add_polarization"
	label = strings.TrimSpace(label)
	if label == "" {
		return model.Errorf(op, model.ErrInvalidValue, "polarization label must not be empty")
	}
	if !energy.Valid() {
		return model.Errorf(op, model.ErrInvalidValue, "energy %v of polarization %q must be positive", float64(energy), label)
	}
	if !finite(magnitude) || magnitude < 0 || magnitude > 1 {
		return model.Errorf(op, model.ErrInvalidValue, "magnitude %v of polarization %q must be within [0,1]", magnitude, label)
	}
	if !finite(relUnc) || relUnc < 0 {
		return model.Errorf(op, model.ErrInvalidValue, "uncertainty %v of polarization %q must not be negative", relUnc, label)
	}

	key := polKey{label: label, energy: energy}
	if _, exists := r.polarization[key]; exists {
		return model.Errorf(op, model.ErrDuplicateLabel, "polarization %q already registered at energy %s", label, energy)
	}
	r.polarization[key] = model.PolarizationState{
		Label:          label,
		Energy:         energy,
		Magnitude:      magnitude,
		RelUncertainty: relUnc,
	}
	return nil
}

// Polarization looks up a polarization source.
func (r *Registry) Polarization(label string, energy model.Energy) (model.PolarizationState, error) {
	ps, ok := r.polarization[polKey{label: strings.TrimSpace(label), energy: energy}]
	if !ok {
		return model.PolarizationState{}, model.Errorf("systematics.polarization", model.ErrUnknownSystematic,
			"no polarization %q at energy %s", label, energy)
	}
	return ps, nil
}

// Luminosity looks up the luminosity of energy.
func (r *Registry) Luminosity(energy model.Energy) (model.LuminositySystematic, error) {
	l, ok := r.luminosity[energy]
	if !ok {
		return model.LuminositySystematic{}, model.Errorf("systematics.luminosity", model.ErrMissingSystematic,
			"no luminosity registered for energy %s", energy)
	}
	return l, nil
}

// LuminosityEnergies returns the energies with a luminosity, ascending.
func (r *Registry) LuminosityEnergies() []model.Energy {
	out := make([]model.Energy, 0, len(r.luminosity))
	for e := range r.luminosity {
		out = append(out, e)
	}
	return model.SortEnergies(out)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
