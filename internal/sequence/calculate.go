package sequence

import (
	"fmt"
	"math"

	"github.com/philipparndt/gobend/internal/bend"
)

// Params are the sheet parameters shared by every row
type Params struct {
	Thickness float64
	Width     float64
	Material  bend.Material
}

// Totals is the result of an aggregate calculation
type Totals struct {
	Length          float64
	BD              float64
	EffectiveLength float64
}

// ValidationError reports a row whose cells cannot be used
type ValidationError struct {
	Row   int
	Field Field
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("row %d: invalid %s %q: %v", e.Row+1, e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// PredictionError reports a row the predictor rejected
type PredictionError struct {
	Row int
	Err error
}

func (e *PredictionError) Error() string {
	return fmt.Sprintf("row %d: bend deduction prediction failed: %v", e.Row+1, e.Err)
}

func (e *PredictionError) Unwrap() error {
	return e.Err
}

// Calculate walks the rows in table order, writes each row's bend
// deduction and returns the totals. A zero angle means no bend and a BD of
// exactly 0. Predictions are clamped at 0. The pass stops at the first
// invalid row or failed prediction; rows already written keep their BD and
// the failing row's BD is cleared.
func (s *Sequence) Calculate(params Params, predictor bend.Predictor) (Totals, error) {
	var totals Totals

	for i := range s.entries {
		e := &s.entries[i]

		if math.IsNaN(e.Length) || math.IsInf(e.Length, 0) {
			e.HasBD = false
			return totals, &ValidationError{Row: i, Field: FieldLength, Value: fmt.Sprint(e.Length), Err: ErrNotFinite}
		}
		angle, err := ParseDecimal(e.Angle)
		if err != nil {
			e.HasBD = false
			return totals, &ValidationError{Row: i, Field: FieldAngle, Value: e.Angle, Err: err}
		}

		bd := 0.0
		if angle != 0 {
			bd, err = predictor.PredictBD(params.Thickness, params.Width, angle, params.Material)
			if err == nil && math.IsNaN(bd) {
				err = fmt.Errorf("prediction is NaN: %w", bend.ErrOutOfDomain)
			}
			if err != nil {
				e.HasBD = false
				return totals, &PredictionError{Row: i, Err: err}
			}
			bd = math.Max(bd, 0)
		}

		e.BD = bd
		e.HasBD = true

		totals.Length += e.Length
		totals.BD += bd
		totals.EffectiveLength += math.Max(e.Length-bd, 0)
	}
	return totals, nil
}
