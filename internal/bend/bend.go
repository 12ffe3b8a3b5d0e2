package bend

import (
	"errors"
	"fmt"
	"strings"
)

// Material is the sheet material a bend deduction is predicted for
type Material string

const (
	// MaterialMild is black (mild) steel
	MaterialMild Material = "CZ"
	// MaterialStainless is stainless steel
	MaterialStainless Material = "N"
)

// Materials lists the supported materials in display order
var Materials = []Material{MaterialMild, MaterialStainless}

// ParseMaterial parses a material code, case-insensitively
func ParseMaterial(s string) (Material, error) {
	switch Material(strings.ToUpper(strings.TrimSpace(s))) {
	case MaterialMild:
		return MaterialMild, nil
	case MaterialStainless:
		return MaterialStainless, nil
	default:
		return "", fmt.Errorf("unknown material %q (expected CZ or N)", s)
	}
}

// ErrOutOfDomain is returned by predictors for inputs outside the range they
// were built from
var ErrOutOfDomain = errors.New("input outside the trained range")

// Predictor computes the bend deduction for one bend
type Predictor interface {
	PredictBD(thickness, width, angle float64, material Material) (float64, error)
}

// PredictorFunc adapts a plain function to the Predictor interface
type PredictorFunc func(thickness, width, angle float64, material Material) (float64, error)

// PredictBD calls f
func (f PredictorFunc) PredictBD(thickness, width, angle float64, material Material) (float64, error) {
	return f(thickness, width, angle, material)
}
