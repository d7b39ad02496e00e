package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnergy_StringAndValid(t *testing.T) {
	assert.Equal(t, "250", Energy(250).String())
	assert.Equal(t, "91.2", Energy(91.2).String())
	assert.True(t, Energy(500).Valid())
	assert.False(t, Energy(0).Valid())
	assert.False(t, Energy(-1).Valid())
}

func TestParseHelicity(t *testing.T) {
	h, err := ParseHelicity(" - ")
	require.NoError(t, err)
	assert.Equal(t, HelicityMinus, h)
	assert.Equal(t, -1.0, h.Factor())

	h, err = ParseHelicity("+")
	require.NoError(t, err)
	assert.Equal(t, 1.0, h.Factor())

	_, err = ParseHelicity("L")
	require.Error(t, err)
}

func TestPolarizationConfig_SignedPolarizations(t *testing.T) {
	pc := PolarizationConfig{
		Electron:     PolarizationState{Label: "ePol-", Magnitude: 0.8},
		Positron:     PolarizationState{Label: "pPol+", Magnitude: 0.3},
		ElectronSign: HelicityMinus,
		PositronSign: HelicityPlus,
	}
	assert.InDelta(t, -0.8, pc.ElectronPolarization(), 1e-12)
	assert.InDelta(t, 0.3, pc.PositronPolarization(), 1e-12)
	assert.Equal(t, "ePol-", pc.Key().ElectronLabel)
}

func TestLinkedSetup_AccessorsReturnCopies(t *testing.T) {
	distr := Distribution{
		Name: "Z", Energy: 250, Dim: 1,
		Bins: []Bin{{Centers: []float64{-0.5}, Value: BinValue{Nominal: 1, Components: map[string]float64{"LR": 2}}}},
	}
	ls := NewLinkedSetup([]EnergySetup{
		{Energy: 500},
		{Energy: 250, Distributions: []Distribution{distr}},
	})

	assert.Equal(t, []Energy{250, 500}, ls.Energies())
	assert.True(t, ls.Has(250))
	assert.False(t, ls.Has(91.2))

	// Mutating the input after construction must not leak in.
	distr.Bins[0].Centers[0] = 99
	distr.Bins[0].Value.Components["LR"] = 99

	sec, err := ls.At(250)
	require.NoError(t, err)
	assert.Equal(t, -0.5, sec.Distributions[0].Bins[0].Centers[0])
	assert.Equal(t, 2.0, sec.Distributions[0].Bins[0].Value.Components["LR"])

	// Mutating a returned copy must not leak back.
	sec.Distributions[0].Bins[0].Centers[0] = 42
	again, err := ls.At(250)
	require.NoError(t, err)
	assert.Equal(t, -0.5, again.Distributions[0].Bins[0].Centers[0])

	_, err = ls.At(91.2)
	require.ErrorIs(t, err, ErrUnknownEnergy)
}

func TestLinkedSetup_NilIsNotFinalized(t *testing.T) {
	var ls *LinkedSetup
	_, err := ls.Linked()
	require.ErrorIs(t, err, ErrSetupNotFinalized)
	assert.True(t, IsKind(err, KindState))
}

func TestEnergySetup_OverridesFor(t *testing.T) {
	sec := EnergySetup{
		Energy: 250,
		Overrides: []NormalizationOverride{
			{Name: "WW_mu_only", Distribution: "WW", Factor: 0.5},
			{Name: "ZZ_mu_only", Distribution: "ZZ", Factor: 0.5},
			{Name: "WW_500", Distribution: "WW", Factor: 0.1, Energy: 500},
		},
	}
	got := sec.OverridesFor("WW")
	require.Len(t, got, 1)
	assert.Equal(t, "WW_mu_only", got[0].Name)
	assert.Empty(t, sec.OverridesFor("Z"))
}

func TestToyResult_IntegralAndProjection(t *testing.T) {
	r := ToyResult{
		Dim:     2,
		Centers: [][]float64{{0.5, -1}, {0.5, 1}, {-0.5, -1}, {-0.5, 1}},
		Values:  []float64{1, 2, -3, 4},
	}

	assert.Equal(t, 7.0, r.Integral(0))
	assert.Equal(t, 6.0, r.Integral(1))

	xs, ys, err := r.Projection(0, 0)
	require.NoError(t, err)
	if diff := cmp.Diff([]float64{-0.5, 0.5}, xs); diff != "" {
		t.Errorf("projection x mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{4, 3}, ys); diff != "" {
		t.Errorf("projection y mismatch (-want +got):\n%s", diff)
	}

	_, _, err = r.Projection(2, 0)
	require.ErrorIs(t, err, ErrInvalidValue)
}

func TestToyResult_ProjectionKeepsEmptyCenters(t *testing.T) {
	r := ToyResult{
		Dim:     1,
		Centers: [][]float64{{1}, {2}},
		Values:  []float64{0, 5},
	}
	xs, ys, err := r.Projection(0, 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, xs)
	assert.Equal(t, []float64{0, 5}, ys)
}
