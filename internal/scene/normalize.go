package scene

import (
	"fmt"
	"strings"

	"github.com/philipparndt/gobend/pkg/geometry"
)

// DefaultMargin is the pannable space added around a normalized drawing
const DefaultMargin = 5000.0

// VerticalReference selects which horizontal edge of the bounding box is
// mapped to Y = 0 by Normalize.
type VerticalReference string

const (
	// ReferenceBottom maps the minimum Y (the visual bottom) to 0
	ReferenceBottom VerticalReference = "bottom"
	// ReferenceTop maps the maximum Y (the visual top) to 0
	ReferenceTop VerticalReference = "top"
)

// ParseVerticalReference parses "bottom" or "top"
func ParseVerticalReference(s string) (VerticalReference, error) {
	switch VerticalReference(strings.ToLower(strings.TrimSpace(s))) {
	case ReferenceBottom:
		return ReferenceBottom, nil
	case ReferenceTop:
		return ReferenceTop, nil
	default:
		return "", fmt.Errorf("unknown vertical reference %q (expected bottom or top)", s)
	}
}

// Axis is the measurement axis along which bend positions are read
type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
)

// ParseAxis parses "x" or "y"
func ParseAxis(s string) (Axis, error) {
	switch Axis(strings.ToLower(strings.TrimSpace(s))) {
	case AxisX:
		return AxisX, nil
	case AxisY:
		return AxisY, nil
	default:
		return "", fmt.Errorf("unknown measurement axis %q (expected x or y)", s)
	}
}

// Coordinate returns the component of p along the axis
func (a Axis) Coordinate(p geometry.Vector2) float64 {
	if a == AxisY {
		return p.Y
	}
	return p.X
}

// Normalize translates every primitive so that the left edge and the chosen
// vertical reference of the bounding box land on the origin, then grows the
// bounds by margin to obtain the pannable extent. Calling it again with the
// same reference leaves the primitives where they are.
func (s *Scene) Normalize(ref VerticalReference, margin float64) {
	if s.bounds.IsEmpty() {
		return
	}
	if margin < 0 {
		margin = 0
	}

	refY := s.bounds.Min.Y
	if ref == ReferenceTop {
		refY = s.bounds.Max.Y
	}
	offset := geometry.NewVector2(-s.bounds.Min.X, -refY)

	if offset != (geometry.Vector2{}) {
		for i := range s.primitives {
			s.primitives[i].Shape = s.primitives[i].Shape.Translate(offset)
		}
		s.bounds = s.bounds.Translate(offset)
		s.shift = s.shift.Add(offset)
		s.rebuildIndex()
	}

	s.extent = s.bounds.Grow(margin)
}
