package systematics

import (
	"math"
	"testing"

	"github.com/specialistvlad/toymeas/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLuminosity_Overwrites(t *testing.T) {
	r := New()
	require.NoError(t, r.SetLuminosity(250, 900, 0.01))
	require.NoError(t, r.SetLuminosity(250, 2000, 0.02))

	l, err := r.Luminosity(250)
	require.NoError(t, err)
	assert.Equal(t, model.LuminositySystematic{Energy: 250, Value: 2000, RelUncertainty: 0.02}, l)
	assert.Equal(t, []model.Energy{250}, r.LuminosityEnergies())
}

func TestSetLuminosity_InvalidValues(t *testing.T) {
	testCases := []struct {
		name   string
		energy model.Energy
		value  float64
		relUnc float64
	}{
		{"zero value", 250, 0, 0.01},
		{"negative value", 250, -1, 0.01},
		{"negative uncertainty", 250, 2000, -0.1},
		{"NaN value", 250, math.NaN(), 0.01},
		{"zero energy", 0, 2000, 0.01},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := New().SetLuminosity(tc.energy, tc.value, tc.relUnc)
			require.ErrorIs(t, err, model.ErrInvalidValue)
			assert.True(t, model.IsKind(err, model.KindConfiguration))
		})
	}
}

func TestLuminosity_Missing(t *testing.T) {
	_, err := New().Luminosity(500)
	require.ErrorIs(t, err, model.ErrMissingSystematic)
}

func TestAddPolarization(t *testing.T) {
	r := New()
	require.NoError(t, r.AddPolarization("ePol-", 250, 0.8, 0.0001))
	require.NoError(t, r.AddPolarization("ePol-", 500, 0.8, 0.0001), "same label at another energy is distinct")
	require.NoError(t, r.AddPolarization("pPol0", 250, 0, 0), "zero magnitude is allowed")
	require.NoError(t, r.AddPolarization("full", 250, 1, 0), "full magnitude is allowed")

	err := r.AddPolarization("ePol-", 250, 0.7, 0.0001)
	require.ErrorIs(t, err, model.ErrDuplicateLabel)

	ps, err := r.Polarization("ePol-", 250)
	require.NoError(t, err)
	assert.Equal(t, 0.8, ps.Magnitude)

	_, err = r.Polarization("pPol+", 250)
	require.ErrorIs(t, err, model.ErrUnknownSystematic)
}

func TestAddPolarization_InvalidValues(t *testing.T) {
	testCases := []struct {
		name      string
		label     string
		magnitude float64
		relUnc    float64
	}{
		{"empty label", " ", 0.5, 0},
		{"magnitude above one", "e", 1.01, 0},
		{"negative magnitude", "e", -0.1, 0},
		{"negative uncertainty", "e", 0.5, -1},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := New().AddPolarization(tc.label, 250, tc.magnitude, tc.relUnc)
			require.ErrorIs(t, err, model.ErrInvalidValue)
		})
	}
}
