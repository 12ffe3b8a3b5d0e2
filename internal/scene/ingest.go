package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/philipparndt/gobend/pkg/drawing"
	"github.com/philipparndt/gobend/pkg/geometry"
)

// DefaultBendColor is the color index that marks a LINE as a bend candidate
const DefaultBendColor = 2

// ErrNoGeometry is returned when a drawing yields no renderable primitive
var ErrNoGeometry = errors.New("drawing contains no renderable geometry")

// GeometryError describes a record that was skipped during ingestion
type GeometryError struct {
	Index  int
	Kind   drawing.Kind
	Reason string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("record %d (%s): %s", e.Index, e.Kind, e.Reason)
}

// Ingest turns geometry-source records into a scene. Unsupported or
// malformed records are skipped and returned as *GeometryError values.
// ErrNoGeometry is returned when nothing renderable remains.
func Ingest(records []drawing.Record, bendColor int) (*Scene, []error, error) {
	b := &builder{bendColor: bendColor}

	for i, r := range records {
		if err := b.add(r); err != nil {
			b.skipped = append(b.skipped, &GeometryError{Index: i, Kind: r.Kind, Reason: err.Error()})
		}
	}

	if len(b.primitives) == 0 {
		return nil, b.skipped, ErrNoGeometry
	}
	return newScene(b.primitives), b.skipped, nil
}

type builder struct {
	bendColor  int
	primitives []Primitive
	skipped    []error
}

func (b *builder) push(shape geometry.Shape, r drawing.Record, candidate bool) {
	b.primitives = append(b.primitives, Primitive{
		ID:            LineID(len(b.primitives)),
		Shape:         shape,
		Color:         r.Color,
		Layer:         r.Layer,
		BendCandidate: candidate,
	})
}

func (b *builder) add(r drawing.Record) error {
	switch r.Kind {
	case drawing.KindLine:
		if !finite(r.Start.X, r.Start.Y, r.End.X, r.End.Y) {
			return errors.New("non-finite endpoint")
		}
		b.push(geometry.NewSegment(r.Start.Vector(), r.End.Vector()), r, r.Color == b.bendColor)

	case drawing.KindCircle:
		if !finite(r.Center.X, r.Center.Y, r.Radius) || r.Radius <= 0 {
			return fmt.Errorf("invalid radius %v", r.Radius)
		}
		b.push(geometry.Circle{Center: r.Center.Vector(), Radius: r.Radius}, r, false)

	case drawing.KindArc:
		if !finite(r.Center.X, r.Center.Y, r.Radius, r.StartAngle, r.EndAngle) || r.Radius <= 0 {
			return fmt.Errorf("invalid arc radius %v", r.Radius)
		}
		b.push(geometry.Arc{
			Center:     r.Center.Vector(),
			Radius:     r.Radius,
			StartAngle: geometry.NormalizeDegrees(r.StartAngle),
			EndAngle:   geometry.NormalizeDegrees(r.EndAngle),
		}, r, false)

	case drawing.KindPolyline, drawing.KindLWPolyline:
		return b.addPolyline(r)

	default:
		return fmt.Errorf("unsupported kind %q", r.Kind)
	}
	return nil
}

// addPolyline decomposes a polyline into segments and bulge arcs. The bulge
// of vertex i describes the edge from vertex i to vertex i+1; closed
// polylines also get the edge from the last vertex back to the first.
func (b *builder) addPolyline(r drawing.Record) error {
	n := len(r.Vertices)
	if n < 2 {
		return fmt.Errorf("polyline needs at least 2 vertices, got %d", n)
	}
	for _, v := range r.Vertices {
		if !finite(v.X, v.Y, v.Bulge) {
			return errors.New("non-finite vertex")
		}
	}

	edges := n - 1
	if r.Closed {
		edges = n
	}

	for i := 0; i < edges; i++ {
		from := r.Vertices[i]
		to := r.Vertices[(i+1)%n]
		start, end := from.Vector(), to.Vector()

		if arc, ok := geometry.ArcFromBulge(start, end, from.Bulge); ok {
			b.push(arc, r, false)
			continue
		}
		if start == end {
			continue
		}
		b.push(geometry.NewSegment(start, end), r, false)
	}
	return nil
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
