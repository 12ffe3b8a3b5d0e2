package drawing

import (
	"github.com/philipparndt/gobend/pkg/geometry"
)

// Kind identifies the type of a drawing record
type Kind string

// Supported record kinds. Anything else is reported and skipped by the ingestor.
const (
	KindLine       Kind = "LINE"
	KindCircle     Kind = "CIRCLE"
	KindArc        Kind = "ARC"
	KindPolyline   Kind = "POLYLINE"
	KindLWPolyline Kind = "LWPOLYLINE"
)

// Point is a serialized 2D coordinate
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Vector converts the point to a geometry vector
func (p Point) Vector() geometry.Vector2 {
	return geometry.NewVector2(p.X, p.Y)
}

// Vertex is a polyline vertex. Bulge describes the edge to the next vertex.
type Vertex struct {
	X     float64 `json:"x" yaml:"x"`
	Y     float64 `json:"y" yaml:"y"`
	Bulge float64 `json:"bulge,omitempty" yaml:"bulge,omitempty"`
}

// Vector converts the vertex position to a geometry vector
func (v Vertex) Vector() geometry.Vector2 {
	return geometry.NewVector2(v.X, v.Y)
}

// Record is one primitive supplied by a geometry source. Only the fields
// relevant to Kind are read.
type Record struct {
	Kind  Kind   `json:"kind" yaml:"kind"`
	Color int    `json:"color,omitempty" yaml:"color,omitempty"`
	Layer string `json:"layer,omitempty" yaml:"layer,omitempty"`

	// LINE
	Start Point `json:"start,omitempty" yaml:"start,omitempty"`
	End   Point `json:"end,omitempty" yaml:"end,omitempty"`

	// CIRCLE and ARC; angles in degrees, counter-clockwise
	Center     Point   `json:"center,omitempty" yaml:"center,omitempty"`
	Radius     float64 `json:"radius,omitempty" yaml:"radius,omitempty"`
	StartAngle float64 `json:"startAngle,omitempty" yaml:"startAngle,omitempty"`
	EndAngle   float64 `json:"endAngle,omitempty" yaml:"endAngle,omitempty"`

	// POLYLINE and LWPOLYLINE
	Vertices []Vertex `json:"vertices,omitempty" yaml:"vertices,omitempty"`
	Closed   bool     `json:"closed,omitempty" yaml:"closed,omitempty"`
}

// Drawing is a named list of records
type Drawing struct {
	Name    string   `json:"name,omitempty" yaml:"name,omitempty"`
	Records []Record `json:"entities" yaml:"entities"`
}

// NewDrawing creates a new empty drawing
func NewDrawing(name string) *Drawing {
	return &Drawing{
		Name:    name,
		Records: make([]Record, 0),
	}
}

// Add appends a record to the drawing
func (d *Drawing) Add(record Record) {
	d.Records = append(d.Records, record)
}

// Line creates a LINE record
func Line(start, end geometry.Vector2, color int) Record {
	return Record{
		Kind:  KindLine,
		Color: color,
		Start: Point{X: start.X, Y: start.Y},
		End:   Point{X: end.X, Y: end.Y},
	}
}

// RecordCount returns the number of records in the drawing
func (d *Drawing) RecordCount() int {
	return len(d.Records)
}

// CountByKind returns how many records of each kind the drawing contains
func (d *Drawing) CountByKind() map[Kind]int {
	counts := make(map[Kind]int)
	for _, r := range d.Records {
		counts[r.Kind]++
	}
	return counts
}
