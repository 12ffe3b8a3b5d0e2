package sequence

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gobend/internal/bend"
)

var params = Params{Thickness: 2, Width: 16, Material: bend.MaterialMild}

func TestCalculateTotals(t *testing.T) {
	s := New(DefaultOptions())
	_, _ = s.Select(1, 30)
	_, _ = s.Select(2, 80)
	_, _ = s.Select(3, 81)

	totals, err := s.Calculate(params, constant(2.5))
	require.NoError(t, err)
	assert.InDelta(t, 81, totals.Length, 1e-9)
	assert.InDelta(t, 7.5, totals.BD, 1e-9)
	// the 1mm row cannot go below zero
	assert.InDelta(t, 27.5+47.5+0, totals.EffectiveLength, 1e-9)

	for _, e := range s.Entries() {
		assert.True(t, e.HasBD)
		assert.Equal(t, 2.5, e.BD)
	}
	assert.InDelta(t, 7.5, s.TotalBD(), 1e-9)
}

func TestCalculateZeroAngle(t *testing.T) {
	s := New(DefaultOptions())
	_, _ = s.Select(1, 30)
	require.NoError(t, s.SetAngle(0, "0"))

	called := false
	predictor := bend.PredictorFunc(func(thickness, width, angle float64, material bend.Material) (float64, error) {
		called = true
		return 99, errors.New("must not be called")
	})

	totals, err := s.Calculate(params, predictor)
	require.NoError(t, err)
	assert.False(t, called)
	assert.Equal(t, 0.0, totals.BD)
	e, _ := s.Entry(0)
	assert.True(t, e.HasBD)
	assert.Equal(t, 0.0, e.BD)

	require.NoError(t, s.SetAngle(0, "0,0"))
	_, err = s.Calculate(params, predictor)
	require.NoError(t, err)
	assert.False(t, called)
}

func TestCalculateClampsNegative(t *testing.T) {
	s := New(DefaultOptions())
	_, _ = s.Select(1, 30)

	totals, err := s.Calculate(params, constant(-1.2))
	require.NoError(t, err)
	assert.Equal(t, 0.0, totals.BD)
	assert.Equal(t, 30.0, totals.EffectiveLength)
}

func TestCalculatePassesInputs(t *testing.T) {
	s := New(DefaultOptions())
	_, _ = s.Select(1, 30)
	require.NoError(t, s.SetAngle(0, "135,5"))

	var got []string
	predictor := bend.PredictorFunc(func(thickness, width, angle float64, material bend.Material) (float64, error) {
		got = append(got, fmt.Sprintf("%v %v %v %v", thickness, width, angle, material))
		return 1, nil
	})
	_, err := s.Calculate(params, predictor)
	require.NoError(t, err)
	assert.Equal(t, []string{"2 16 135.5 CZ"}, got)
}

func TestCalculateValidationAborts(t *testing.T) {
	s := New(DefaultOptions())
	_, _ = s.Select(1, 10)
	_, _ = s.Select(2, 20)
	_, _ = s.Select(3, 30)
	require.NoError(t, s.SetAngle(1, ""))

	_, err := s.Calculate(params, constant(1))
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, 1, verr.Row)
	assert.Equal(t, FieldAngle, verr.Field)
	assert.Contains(t, err.Error(), "row 2")

	entries := s.Entries()
	assert.True(t, entries[0].HasBD, "rows before the invalid one keep their BD")
	assert.False(t, entries[1].HasBD)
	assert.False(t, entries[2].HasBD, "rows after the invalid one are not computed")
	assert.Equal(t, []float64{10, 10, 10}, lengths(s), "lengths untouched")
}

func TestCalculatePredictionErrorBlanksRow(t *testing.T) {
	s := New(DefaultOptions())
	_, _ = s.Select(1, 10)
	_, _ = s.Select(2, 20)
	require.NoError(t, s.SetAngle(1, "135"))

	// a previous successful pass filled every BD cell
	_, err := s.Calculate(params, constant(1))
	require.NoError(t, err)

	predictor := bend.PredictorFunc(func(thickness, width, angle float64, material bend.Material) (float64, error) {
		if angle == 135 {
			return 0, fmt.Errorf("angle %v: %w", angle, bend.ErrOutOfDomain)
		}
		return 2, nil
	})
	_, err = s.Calculate(params, predictor)

	var perr *PredictionError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 1, perr.Row)
	assert.ErrorIs(t, err, bend.ErrOutOfDomain)

	entries := s.Entries()
	assert.Equal(t, 2.0, entries[0].BD)
	assert.False(t, entries[1].HasBD)
}

func TestCalculateNaNPrediction(t *testing.T) {
	s := New(DefaultOptions())
	_, _ = s.Select(1, 10)

	_, err := s.Calculate(params, constant(math.NaN()))
	assert.ErrorIs(t, err, bend.ErrOutOfDomain)
}

func TestCalculateEmpty(t *testing.T) {
	totals, err := New(DefaultOptions()).Calculate(params, constant(1))
	require.NoError(t, err)
	assert.Equal(t, Totals{}, totals)
}

func TestCalculateRejectsInfiniteLength(t *testing.T) {
	s := New(DefaultOptions())
	_, _ = s.Select(1, 10)
	row := s.AddManual()
	_, err := s.SetPosition(row, math.Inf(1))
	require.NoError(t, err)

	_, err = s.Calculate(params, constant(1))
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, 1, verr.Row)
	assert.Equal(t, FieldLength, verr.Field)
	assert.ErrorIs(t, err, ErrNotFinite)
}
