package bend

import (
	"fmt"
	"math"
	"sort"
)

// DefaultNeighbours is the number of samples blended by NearestPredictor
const DefaultNeighbours = 4

// NearestPredictor predicts the bend deduction as the inverse-distance
// weighted mean of the k closest samples. Thickness and width are compared
// relative to the dataset's range, angle relative to 180 degrees.
type NearestPredictor struct {
	samples []Sample
	k       int

	minThickness, maxThickness float64
	minWidth, maxWidth         float64
}

type neighbour struct {
	index    int
	distance float64
}

// NewNearestPredictor builds a predictor over the dataset
func NewNearestPredictor(d *Dataset, k int) *NearestPredictor {
	if k <= 0 {
		k = DefaultNeighbours
	}
	p := &NearestPredictor{
		samples:      d.Samples,
		k:            k,
		minThickness: math.Inf(1),
		maxThickness: math.Inf(-1),
		minWidth:     math.Inf(1),
		maxWidth:     math.Inf(-1),
	}
	for _, s := range d.Samples {
		p.minThickness = math.Min(p.minThickness, s.Thickness)
		p.maxThickness = math.Max(p.maxThickness, s.Thickness)
		p.minWidth = math.Min(p.minWidth, s.Width)
		p.maxWidth = math.Max(p.maxWidth, s.Width)
	}
	return p
}

// PredictBD implements Predictor. Inputs outside the dataset's thickness or
// width range, angles outside (0, 180] and unknown materials are rejected
// with ErrOutOfDomain.
func (p *NearestPredictor) PredictBD(thickness, width, angle float64, material Material) (float64, error) {
	if material != MaterialMild && material != MaterialStainless {
		return 0, fmt.Errorf("material %q: %w", material, ErrOutOfDomain)
	}
	if !finite(thickness, width, angle) {
		return 0, fmt.Errorf("non-finite input: %w", ErrOutOfDomain)
	}
	if thickness < p.minThickness || thickness > p.maxThickness {
		return 0, fmt.Errorf("thickness %g outside [%g, %g]: %w", thickness, p.minThickness, p.maxThickness, ErrOutOfDomain)
	}
	if width < p.minWidth || width > p.maxWidth {
		return 0, fmt.Errorf("width %g outside [%g, %g]: %w", width, p.minWidth, p.maxWidth, ErrOutOfDomain)
	}
	if angle <= 0 || angle > 180 {
		return 0, fmt.Errorf("angle %g outside (0, 180]: %w", angle, ErrOutOfDomain)
	}

	spanT := span(p.minThickness, p.maxThickness)
	spanW := span(p.minWidth, p.maxWidth)

	neighbours := make([]neighbour, len(p.samples))
	for i, s := range p.samples {
		dt := (thickness - s.Thickness) / spanT
		dw := (width - s.Width) / spanW
		da := (angle - s.Angle) / 180
		neighbours[i] = neighbour{index: i, distance: math.Sqrt(dt*dt + dw*dw + da*da)}
	}
	sort.SliceStable(neighbours, func(i, j int) bool {
		return neighbours[i].distance < neighbours[j].distance
	})

	// exact matches win outright
	if neighbours[0].distance == 0 {
		sum, n := 0.0, 0
		for _, nb := range neighbours {
			if nb.distance != 0 {
				break
			}
			sum += p.samples[nb.index].BD(material)
			n++
		}
		return sum / float64(n), nil
	}

	k := p.k
	if k > len(neighbours) {
		k = len(neighbours)
	}
	var weighted, weights float64
	for _, nb := range neighbours[:k] {
		w := 1 / (nb.distance * nb.distance)
		weighted += w * p.samples[nb.index].BD(material)
		weights += w
	}
	return weighted / weights, nil
}

func span(min, max float64) float64 {
	if max-min <= 0 {
		return 1
	}
	return max - min
}
