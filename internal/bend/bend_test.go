package bend

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDataset(t *testing.T) *Dataset {
	t.Helper()
	d, err := NewDataset([]Sample{
		{Thickness: 1, Width: 8, Angle: 90, BDMild: 1.8, BDStainless: 2.0},
		{Thickness: 1, Width: 12, Angle: 90, BDMild: 2.2, BDStainless: 2.4},
		{Thickness: 2, Width: 12, Angle: 90, BDMild: 3.6, BDStainless: 3.9},
		{Thickness: 2, Width: 16, Angle: 90, BDMild: 4.0, BDStainless: 4.3},
		{Thickness: 2, Width: 16, Angle: 135, BDMild: 1.5, BDStainless: 1.7},
	})
	require.NoError(t, err)
	return d
}

func TestParseMaterial(t *testing.T) {
	m, err := ParseMaterial(" cz ")
	require.NoError(t, err)
	assert.Equal(t, MaterialMild, m)

	m, err = ParseMaterial("N")
	require.NoError(t, err)
	assert.Equal(t, MaterialStainless, m)

	_, err = ParseMaterial("AL")
	assert.Error(t, err)
}

func TestDatasetChoices(t *testing.T) {
	d := testDataset(t)
	assert.Equal(t, []float64{1, 2}, d.Thicknesses())
	assert.Equal(t, []float64{8, 12, 16}, d.Widths())
	assert.Equal(t, []float64{12, 16}, d.WidthsFor(2))
	assert.Empty(t, d.WidthsFor(3))
}

func TestNewDatasetDropsEmpty(t *testing.T) {
	_, err := NewDataset(nil)
	assert.ErrorIs(t, err, ErrEmptyDataset)
}

func TestDatasetSaveLoad(t *testing.T) {
	d := testDataset(t)
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, d.Save(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"Grubosc"`)
	assert.Contains(t, string(raw), `"BD_N"`)

	loaded, err := LoadDataset(path)
	require.NoError(t, err)
	assert.Equal(t, d.Samples, loaded.Samples)

	_, err = LoadDataset(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestNearestPredictorExact(t *testing.T) {
	p := NewNearestPredictor(testDataset(t), DefaultNeighbours)

	bd, err := p.PredictBD(2, 16, 90, MaterialMild)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, bd, 1e-12)

	bd, err = p.PredictBD(2, 16, 90, MaterialStainless)
	require.NoError(t, err)
	assert.InDelta(t, 4.3, bd, 1e-12)
}

func TestNearestPredictorInterpolates(t *testing.T) {
	p := NewNearestPredictor(testDataset(t), 2)

	// halfway between the two 1mm samples
	bd, err := p.PredictBD(1, 10, 90, MaterialMild)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, bd, 1e-9)

	// deterministic
	again, err := p.PredictBD(1, 10, 90, MaterialMild)
	require.NoError(t, err)
	assert.Equal(t, bd, again)
}

func TestNearestPredictorDomain(t *testing.T) {
	p := NewNearestPredictor(testDataset(t), DefaultNeighbours)

	cases := []struct {
		name                    string
		thickness, width, angle float64
		material                Material
	}{
		{"thin", 0.5, 12, 90, MaterialMild},
		{"thick", 3, 12, 90, MaterialMild},
		{"narrow", 1, 4, 90, MaterialMild},
		{"wide", 1, 40, 90, MaterialMild},
		{"zero angle", 1, 8, 0, MaterialMild},
		{"reflex angle", 1, 8, 200, MaterialMild},
		{"material", 1, 8, 90, Material("AL")},
	}
	for _, tc := range cases {
		_, err := p.PredictBD(tc.thickness, tc.width, tc.angle, tc.material)
		assert.True(t, errors.Is(err, ErrOutOfDomain), tc.name)
	}
}

func TestPredictorFunc(t *testing.T) {
	var p Predictor = PredictorFunc(func(thickness, width, angle float64, material Material) (float64, error) {
		return thickness + width + angle, nil
	})
	bd, err := p.PredictBD(1, 2, 3, MaterialMild)
	require.NoError(t, err)
	assert.Equal(t, 6.0, bd)
}

func TestDatasetAdd(t *testing.T) {
	d := &Dataset{}
	require.NoError(t, d.Add(Sample{Thickness: 3, Width: 24, Angle: 90, BDMild: 5.1, BDStainless: 5.4}))
	assert.Equal(t, []float64{24}, d.Widths())

	assert.ErrorIs(t, d.Add(Sample{Thickness: math.NaN(), Width: 24, Angle: 90}), ErrOutOfDomain)
	assert.ErrorIs(t, d.Add(Sample{Thickness: 0, Width: 24, Angle: 90}), ErrOutOfDomain)
	assert.Len(t, d.Samples, 1)
}
