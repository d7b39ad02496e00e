package setup

import (
	"context"
	"math"
	"strings"
	"sync"

	"github.com/specialistvlad/toymeas/internal/catalog"
	"github.com/specialistvlad/toymeas/internal/ctxlog"
	"github.com/specialistvlad/toymeas/internal/linker"
	"github.com/specialistvlad/toymeas/internal/model"
	"github.com/specialistvlad/toymeas/internal/systematics"
)

// FractionTolerance is the absolute tolerance on the per-energy sum of
// polarization fractions.
const FractionTolerance = 1e-6

// State is the lifecycle state of a MeasurementSetup.
type State int

const (
	StateOpen State = iota
	StateFinalized
)

func (s State) String() string {
	if s == StateFinalized {
		return "finalized"
	}
	return "open"
}

// MeasurementSetup is safe for concurrent use.
type MeasurementSetup struct {
	mu sync.RWMutex

	reader      catalog.SourceReader
	catalog     *catalog.Catalog
	systematics *systematics.Registry
	linker      *linker.Linker
	overrides   []model.NormalizationOverride

	state  State
	linked *model.LinkedSetup
}

// New creates an Open setup whose sources are read with reader.
func New(reader catalog.SourceReader) *MeasurementSetup {
	reg := systematics.New()
	return &MeasurementSetup{
		reader:      reader,
		catalog:     catalog.New(),
		systematics: reg,
		linker:      linker.New(reg),
	}
}

// State returns the current lifecycle state.
func (s *MeasurementSetup) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// mutate runs fn under the write lock unless the setup is frozen.
func (s *MeasurementSetup) mutate(op string, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateFinalized {
		return model.Errorf(op, model.ErrSetupFrozen, "setup is finalized and can no longer be changed")
	}
	return fn()
}

// AddSource registers an input source for energy.
func (s *MeasurementSetup) AddSource(path string, energy model.Energy) error {
	return s.mutate("setup.add_source", func() error {
		return s.catalog.RegisterSource(path, energy)
	})
}

// UseDistribution selects a distribution for export.
func (s *MeasurementSetup) UseDistribution(name string) error {
	return s.mutate("setup.use_distribution", func() error {
		return s.catalog.Select(name)
	})
}

// SetLuminosity sets the integrated luminosity of energy.
func (s *MeasurementSetup) SetLuminosity(energy model.Energy, value, relUnc float64) error {
	return s.mutate("setup.set_luminosity", func() error {
		return s.systematics.SetLuminosity(energy, value, relUnc)
	})
}

// AddPolarization registers a beam polarization source.
func (s *MeasurementSetup) AddPolarization(label string, energy model.Energy, magnitude, relUnc float64) error {
	return s.mutate("setup.add_polarization", func() error {
		return s.systematics.AddPolarization(label, energy, magnitude, relUnc)
	})
}

// AddPolConfig registers a polarization sharing configuration.
func (s *MeasurementSetup) AddPolConfig(name string, energy model.Energy, eLabel, pLabel, eSign, pSign string, fraction float64) error {
	return s.mutate("setup.add_pol_config", func() error {
		return s.linker.AddConfig(name, energy, eLabel, pLabel, eSign, pSign, fraction)
	})
}

// AddNormalizationOverride registers an override. An energy of zero applies
// it at every energy where its distribution is selected.
func (s *MeasurementSetup) AddNormalizationOverride(o model.NormalizationOverride) error {
	const op = "setup.add_normalization_override"
	return s.mutate(op, func() error {
		o.Name = strings.TrimSpace(o.Name)
		o.Distribution = strings.TrimSpace(o.Distribution)
		if o.Name == "" {
			return model.Errorf(op, model.ErrInvalidValue, "override name must not be empty")
		}
		if o.Distribution == "" {
			return model.Errorf(op, model.ErrInvalidValue, "override %q names no distribution", o.Name)
		}
		if math.IsNaN(o.Factor) || math.IsInf(o.Factor, 0) || o.Factor <= 0 {
			return model.Errorf(op, model.ErrInvalidValue, "factor %v of override %q must be positive", o.Factor, o.Name)
		}
		if o.Energy != 0 && !o.Energy.Valid() {
			return model.Errorf(op, model.ErrInvalidValue, "energy %v of override %q must be positive", float64(o.Energy), o.Name)
		}
		for _, existing := range s.overrides {
			if existing.Name == o.Name {
				return model.Errorf(op, model.ErrInvalidValue, "override %q already registered", o.Name)
			}
		}
		s.overrides = append(s.overrides, o)
		return nil
	})
}

// Selected returns the selected distribution names in selection order.
func (s *MeasurementSetup) Selected() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.Selected()
}

// Linked returns the LinkedSetup produced by Finalize.
func (s *MeasurementSetup) Linked() (*model.LinkedSetup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateFinalized {
		return nil, model.Errorf("setup.linked", model.ErrSetupNotFinalized, "setup has not been finalized")
	}
	return s.linked, nil
}

// Finalize validates the setup and freezes it. On failure the setup stays
// Open and no LinkedSetup is produced.
func (s *MeasurementSetup) Finalize(ctx context.Context) (*model.LinkedSetup, error) {
	const op = "setup.finalize"
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateFinalized {
		return nil, model.Errorf(op, model.ErrAlreadyFinalized, "setup was already finalized")
	}
	logger := ctxlog.FromContext(ctx)

	resolved, err := s.catalog.Resolve(ctx, s.reader)
	if err != nil {
		return nil, err
	}

	for _, e := range s.linker.Energies() {
		sum := s.linker.FractionSum(e)
		if math.Abs(sum-1) > FractionTolerance {
			return nil, model.Errorf(op, model.ErrFractionSum,
				"polarization fractions at energy %s sum to %g", e, sum)
		}
	}

	energies := resolved.Energies()
	lumi := make(map[model.Energy]model.LuminositySystematic, len(energies))
	for _, e := range energies {
		l, err := s.systematics.Luminosity(e)
		if err != nil {
			return nil, err
		}
		lumi[e] = l
	}

	for _, o := range s.overrides {
		if o.Energy == 0 {
			if !resolved.HasAnywhere(o.Distribution) {
				return nil, model.Errorf(op, model.ErrUnknownDistribution,
					"override %q targets distribution %q which is not selected", o.Name, o.Distribution)
			}
			continue
		}
		if !resolved.Has(o.Distribution, o.Energy) {
			return nil, model.Errorf(op, model.ErrUnknownDistribution,
				"override %q targets distribution %q which is not selected at energy %s", o.Name, o.Distribution, o.Energy)
		}
	}

	sections := make([]model.EnergySetup, 0, len(energies))
	for _, e := range energies {
		sec := model.EnergySetup{
			Energy:        e,
			Distributions: resolved[e],
			PolConfigs:    s.linker.Configs(e),
			Luminosity:    lumi[e],
		}
		for _, o := range s.overrides {
			if o.Energy == 0 || o.Energy == e {
				if resolved.Has(o.Distribution, e) {
					sec.Overrides = append(sec.Overrides, o)
				}
			}
		}
		if len(sec.PolConfigs) == 0 {
			logger.Warn("Energy has selected distributions but no polarization configs; no toys will be produced.", "energy", e)
		}
		sections = append(sections, sec)
	}

	s.linked = model.NewLinkedSetup(sections)
	s.state = StateFinalized
	logger.Info("Setup finalized.", "energies", len(sections), "distributions", len(s.catalog.Selected()), "overrides", len(s.overrides))
	return s.linked, nil
}
