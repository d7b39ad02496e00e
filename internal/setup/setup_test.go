package setup

import (
	"context"
	"testing"

	"github.com/specialistvlad/toymeas/internal/catalog"
	"github.com/specialistvlad/toymeas/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticReader(byPath map[string][]model.Distribution) catalog.SourceReader {
	return catalog.SourceReaderFunc(func(_ context.Context, ref model.SourceRef) ([]model.Distribution, error) {
		return byPath[ref.Path], nil
	})
}

func twoBin(name string) model.Distribution {
	return model.Distribution{
		Name: name,
		Dim:  1,
		Bins: []model.Bin{
			{Centers: []float64{-0.5}, Value: model.BinValue{Nominal: 10}},
			{Centers: []float64{0.5}, Value: model.BinValue{Nominal: 20}},
		},
	}
}

// newValidSetup builds the single-config "Z" / "e-p+" scenario at 250 GeV.
func newValidSetup(t *testing.T) *MeasurementSetup {
	t.Helper()
	s := New(staticReader(map[string][]model.Distribution{
		"rk.yaml": {twoBin("Z"), twoBin("WW")},
	}))
	require.NoError(t, s.AddSource("rk.yaml", 250))
	require.NoError(t, s.UseDistribution("Z"))
	require.NoError(t, s.SetLuminosity(250, 2000, 0.01))
	require.NoError(t, s.AddPolarization("ePol-", 250, 0.8, 0.0001))
	require.NoError(t, s.AddPolarization("pPol+", 250, 0.3, 0.0001))
	require.NoError(t, s.AddPolConfig("e-p+", 250, "ePol-", "pPol+", "-", "+", 1.0))
	return s
}

func TestFinalize_Success(t *testing.T) {
	s := newValidSetup(t)

	ls, err := s.Finalize(context.Background())
	require.NoError(t, err)
	require.NotNil(t, ls)
	assert.Equal(t, StateFinalized, s.State())
	assert.Equal(t, []model.Energy{250}, ls.Energies())

	sec, err := ls.At(250)
	require.NoError(t, err)
	require.Len(t, sec.Distributions, 1)
	assert.Equal(t, "Z", sec.Distributions[0].Name)
	require.Len(t, sec.PolConfigs, 1)
	assert.Equal(t, "e-p+", sec.PolConfigs[0].Name)
	assert.Equal(t, 2000.0, sec.Luminosity.Value)

	linked, err := s.Linked()
	require.NoError(t, err)
	assert.Same(t, ls, linked)
}

func TestFinalize_Twice(t *testing.T) {
	s := newValidSetup(t)
	_, err := s.Finalize(context.Background())
	require.NoError(t, err)

	_, err = s.Finalize(context.Background())
	require.ErrorIs(t, err, model.ErrAlreadyFinalized)
	assert.True(t, model.IsKind(err, model.KindState))
}

func TestMutationsAfterFinalize_AreFrozen(t *testing.T) {
	s := newValidSetup(t)
	_, err := s.Finalize(context.Background())
	require.NoError(t, err)

	mutations := map[string]func() error{
		"AddSource":       func() error { return s.AddSource("other.yaml", 250) },
		"UseDistribution": func() error { return s.UseDistribution("WW") },
		"SetLuminosity":   func() error { return s.SetLuminosity(250, 1, 0) },
		"AddPolarization": func() error { return s.AddPolarization("x", 250, 0.1, 0) },
		"AddPolConfig":    func() error { return s.AddPolConfig("c", 250, "ePol-", "pPol+", "+", "+", 0.1) },
		"AddNormalizationOverride": func() error {
			return s.AddNormalizationOverride(model.NormalizationOverride{Name: "o", Distribution: "Z", Factor: 1})
		},
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			require.ErrorIs(t, mutate(), model.ErrSetupFrozen)
		})
	}
}

func TestLinked_BeforeFinalize(t *testing.T) {
	_, err := newValidSetup(t).Linked()
	require.ErrorIs(t, err, model.ErrSetupNotFinalized)
}

func TestFinalize_UnknownDistribution(t *testing.T) {
	s := newValidSetup(t)
	require.NoError(t, s.UseDistribution("Higgs"))

	ls, err := s.Finalize(context.Background())
	require.ErrorIs(t, err, model.ErrUnknownDistribution)
	assert.Contains(t, err.Error(), "Higgs")
	assert.Nil(t, ls)
	assert.Equal(t, StateOpen, s.State())
}

func TestFinalize_FractionSum(t *testing.T) {
	testCases := []struct {
		name      string
		fractions []float64
		wantErr   bool
	}{
		{"sums to one", []float64{0.45, 0.45, 0.05, 0.05}, false},
		{"within tolerance", []float64{0.5, 0.5 - 5e-7}, false},
		{"short", []float64{0.45, 0.45}, true},
		{"over", []float64{0.6, 0.6}, true},
	}
	combos := [][4]string{
		{"ePol-", "pPol+", "-", "+"},
		{"ePol+", "pPol-", "+", "-"},
		{"ePol-", "pPol-", "-", "-"},
		{"ePol+", "pPol+", "+", "+"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := New(staticReader(map[string][]model.Distribution{"rk.yaml": {twoBin("Z")}}))
			require.NoError(t, s.AddSource("rk.yaml", 250))
			require.NoError(t, s.UseDistribution("Z"))
			require.NoError(t, s.SetLuminosity(250, 2000, 0.01))
			for _, l := range []string{"ePol-", "ePol+", "pPol-", "pPol+"} {
				require.NoError(t, s.AddPolarization(l, 250, 0.5, 0))
			}
			for i, f := range tc.fractions {
				c := combos[i]
				require.NoError(t, s.AddPolConfig(c[0]+c[1], 250, c[0], c[1], c[2], c[3], f))
			}

			ls, err := s.Finalize(context.Background())
			if tc.wantErr {
				require.ErrorIs(t, err, model.ErrFractionSum)
				assert.Nil(t, ls)
				assert.Equal(t, StateOpen, s.State())
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestFinalize_FractionSumCheckedForConfigOnlyEnergy(t *testing.T) {
	s := newValidSetup(t)
	require.NoError(t, s.AddPolarization("ePol-", 500, 0.8, 0))
	require.NoError(t, s.AddPolarization("pPol+", 500, 0.3, 0))
	require.NoError(t, s.AddPolConfig("e-p+", 500, "ePol-", "pPol+", "-", "+", 0.4))

	_, err := s.Finalize(context.Background())
	require.ErrorIs(t, err, model.ErrFractionSum)
}

func TestFinalize_MissingLuminosity(t *testing.T) {
	s := New(staticReader(map[string][]model.Distribution{"rk.yaml": {twoBin("Z")}}))
	require.NoError(t, s.AddSource("rk.yaml", 250))
	require.NoError(t, s.UseDistribution("Z"))

	_, err := s.Finalize(context.Background())
	require.ErrorIs(t, err, model.ErrMissingSystematic)
	assert.Equal(t, StateOpen, s.State())
}

func TestFinalize_RetryAfterFix(t *testing.T) {
	s := New(staticReader(map[string][]model.Distribution{"rk.yaml": {twoBin("Z")}}))
	require.NoError(t, s.AddSource("rk.yaml", 250))
	require.NoError(t, s.UseDistribution("Z"))

	_, err := s.Finalize(context.Background())
	require.Error(t, err)

	require.NoError(t, s.SetLuminosity(250, 2000, 0.01))
	_, err = s.Finalize(context.Background())
	require.NoError(t, err)
}

func TestFinalize_Overrides(t *testing.T) {
	s := newValidSetup(t)
	require.NoError(t, s.AddNormalizationOverride(model.NormalizationOverride{
		Name: "Z_mu_only", Distribution: "Z", Channel: "mu", Factor: 0.25,
	}))

	ls, err := s.Finalize(context.Background())
	require.NoError(t, err)
	sec, err := ls.At(250)
	require.NoError(t, err)
	require.Len(t, sec.OverridesFor("Z"), 1)
	assert.Equal(t, 0.25, sec.OverridesFor("Z")[0].Factor)
}

func TestFinalize_OverrideOnUnselectedDistribution(t *testing.T) {
	testCases := []struct {
		name     string
		override model.NormalizationOverride
	}{
		{"not selected", model.NormalizationOverride{Name: "WW_mu_only", Distribution: "WW", Factor: 0.5}},
		{"wrong energy", model.NormalizationOverride{Name: "Z_500", Distribution: "Z", Factor: 0.5, Energy: 500}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := newValidSetup(t)
			require.NoError(t, s.AddNormalizationOverride(tc.override))

			_, err := s.Finalize(context.Background())
			require.ErrorIs(t, err, model.ErrUnknownDistribution)
			assert.Equal(t, StateOpen, s.State())
		})
	}
}

func TestAddNormalizationOverride_Invalid(t *testing.T) {
	s := newValidSetup(t)
	require.ErrorIs(t, s.AddNormalizationOverride(model.NormalizationOverride{Distribution: "Z", Factor: 1}), model.ErrInvalidValue)
	require.ErrorIs(t, s.AddNormalizationOverride(model.NormalizationOverride{Name: "o", Factor: 1}), model.ErrInvalidValue)
	require.ErrorIs(t, s.AddNormalizationOverride(model.NormalizationOverride{Name: "o", Distribution: "Z"}), model.ErrInvalidValue)

	require.NoError(t, s.AddNormalizationOverride(model.NormalizationOverride{Name: "o", Distribution: "Z", Factor: 1}))
	require.ErrorIs(t, s.AddNormalizationOverride(model.NormalizationOverride{Name: "o", Distribution: "Z", Factor: 2}), model.ErrInvalidValue)
}

func TestFinalize_CheckOrder(t *testing.T) {
	testCases := []struct {
		name    string
		arrange func(t *testing.T) *MeasurementSetup
		wantErr error
	}{
		{
			name: "unknown distribution before fraction sum",
			arrange: func(t *testing.T) *MeasurementSetup {
				s := New(staticReader(map[string][]model.Distribution{"rk.yaml": {twoBin("Z")}}))
				require.NoError(t, s.AddSource("rk.yaml", 250))
				require.NoError(t, s.UseDistribution("Higgs"))
				require.NoError(t, s.SetLuminosity(250, 2000, 0.01))
				require.NoError(t, s.AddPolarization("ePol-", 250, 0.8, 0))
				require.NoError(t, s.AddPolarization("pPol+", 250, 0.3, 0))
				require.NoError(t, s.AddPolConfig("e-p+", 250, "ePol-", "pPol+", "-", "+", 0.5))
				return s
			},
			wantErr: model.ErrUnknownDistribution,
		},
		{
			name: "fraction sum before luminosity",
			arrange: func(t *testing.T) *MeasurementSetup {
				s := New(staticReader(map[string][]model.Distribution{"rk.yaml": {twoBin("Z")}}))
				require.NoError(t, s.AddSource("rk.yaml", 250))
				require.NoError(t, s.UseDistribution("Z"))
				require.NoError(t, s.AddPolarization("ePol-", 250, 0.8, 0))
				require.NoError(t, s.AddPolarization("pPol+", 250, 0.3, 0))
				require.NoError(t, s.AddPolConfig("e-p+", 250, "ePol-", "pPol+", "-", "+", 0.5))
				return s
			},
			wantErr: model.ErrFractionSum,
		},
		{
			name: "luminosity before override targets",
			arrange: func(t *testing.T) *MeasurementSetup {
				s := New(staticReader(map[string][]model.Distribution{"rk.yaml": {twoBin("Z"), twoBin("WW")}}))
				require.NoError(t, s.AddSource("rk.yaml", 250))
				require.NoError(t, s.UseDistribution("Z"))
				require.NoError(t, s.AddPolarization("ePol-", 250, 0.8, 0))
				require.NoError(t, s.AddPolarization("pPol+", 250, 0.3, 0))
				require.NoError(t, s.AddPolConfig("e-p+", 250, "ePol-", "pPol+", "-", "+", 1.0))
				require.NoError(t, s.AddNormalizationOverride(model.NormalizationOverride{
					Name: "WW_mu_only", Distribution: "WW", Factor: 0.5,
				}))
				return s
			},
			wantErr: model.ErrMissingSystematic,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := tc.arrange(t)

			ls, err := s.Finalize(context.Background())
			require.ErrorIs(t, err, tc.wantErr)
			assert.Nil(t, ls)
			assert.Equal(t, StateOpen, s.State())
		})
	}
}
