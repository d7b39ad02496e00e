package sources

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/toymeas/internal/distrio"
	"github.com/specialistvlad/toymeas/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatch_YAML(t *testing.T) {
	ref := model.SourceRef{Path: filepath.Join("testdata", "rk.yaml"), Energy: 250}
	got, err := NewDispatch().Read(context.Background(), ref)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Z", got[0].Name)
}

func TestDispatch_UnknownExtension(t *testing.T) {
	_, err := NewDispatch().Read(context.Background(), model.SourceRef{Path: "data.root", Energy: 250})
	require.ErrorIs(t, err, model.ErrSource)
}

func TestDispatch_Register(t *testing.T) {
	d := NewDispatch()
	d.Register(".ROOT", OutputReader{})
	_, err := d.Read(context.Background(), model.SourceRef{Path: filepath.Join(t.TempDir(), "missing.root"), Energy: 250})
	require.ErrorIs(t, err, model.ErrSourceRead, "routed to the registered reader")
}

func TestOutputReader_SumsConfigs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "previous.out")
	results := []model.ToyResult{
		{Distribution: "Z", PolConfig: "e-p+", Dim: 1, Centers: [][]float64{{-0.5}, {0.5}}, Values: []float64{1, 2}},
		{Distribution: "Z", PolConfig: "e+p-", Dim: 1, Centers: [][]float64{{-0.5}, {0.5}}, Values: []float64{3, 4}},
		{Distribution: "WW", PolConfig: "e-p+", Dim: 1, Centers: [][]float64{{0}}, Values: []float64{9}},
	}
	require.NoError(t, distrio.Write(250, results, path))

	got, err := NewDispatch().Read(context.Background(), model.SourceRef{Path: path, Energy: 250})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Z", got[0].Name)
	assert.Equal(t, 4.0, got[0].Bins[0].Value.Nominal)
	assert.Equal(t, 6.0, got[0].Bins[1].Value.Nominal)
	assert.Equal(t, []float64{0.5}, got[0].Bins[1].Centers)
	assert.Equal(t, 9.0, got[1].Bins[0].Value.Nominal)

	_, err = OutputReader{}.Read(context.Background(), model.SourceRef{Path: path, Energy: 500})
	require.ErrorIs(t, err, model.ErrSourceRead)
}

func TestOutputReader_BinningMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.out")
	results := []model.ToyResult{
		{Distribution: "Z", PolConfig: "a", Dim: 1, Centers: [][]float64{{0}}, Values: []float64{1}},
		{Distribution: "Z", PolConfig: "b", Dim: 1, Centers: [][]float64{{0}, {1}}, Values: []float64{1, 2}},
	}
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, distrio.Write(250, results, path))

	_, err := OutputReader{}.Read(context.Background(), model.SourceRef{Path: path, Energy: 250})
	require.ErrorIs(t, err, model.ErrSourceRead)
}
