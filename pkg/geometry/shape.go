package geometry

import "math"

// Shape is the closed set of renderable primitives: Segment, Circle and Arc.
// Consumers dispatch with a type switch over these three types.
type Shape interface {
	// Bounds returns the tight axis-aligned bounding box of the shape
	Bounds() BoundingBox
	// Translate returns a copy of the shape moved by offset
	Translate(offset Vector2) Shape

	shape()
}

// Segment is a straight line between two points
type Segment struct {
	Start Vector2
	End   Vector2
}

// NewSegment creates a new segment
func NewSegment(start, end Vector2) Segment {
	return Segment{Start: start, End: end}
}

func (Segment) shape() {}

// Bounds returns the bounding box of the segment
func (s Segment) Bounds() BoundingBox {
	return NewBoundingBoxFromPoints(s.Start, s.End)
}

// Translate returns the segment moved by offset
func (s Segment) Translate(offset Vector2) Shape {
	return Segment{Start: s.Start.Add(offset), End: s.End.Add(offset)}
}

// Length returns the length of the segment
func (s Segment) Length() float64 {
	return s.Start.Distance(s.End)
}

// Midpoint returns the point halfway between the endpoints
func (s Segment) Midpoint() Vector2 {
	return s.Start.Lerp(s.End, 0.5)
}

// ClosestPoint returns the point of the finite segment nearest to p and the
// scalar projection t of p onto the segment, clamped to [0,1].
func (s Segment) ClosestPoint(p Vector2) (Vector2, float64) {
	ab := s.End.Sub(s.Start)
	ab2 := ab.Dot(ab)
	if ab2 == 0 {
		return s.Start, 0
	}
	t := p.Sub(s.Start).Dot(ab) / ab2
	switch {
	case t < 0:
		return s.Start, 0
	case t > 1:
		return s.End, 1
	}
	return s.Start.Add(ab.Mul(t)), t
}

// DistanceTo returns the distance from p to the finite segment
func (s Segment) DistanceTo(p Vector2) float64 {
	closest, _ := s.ClosestPoint(p)
	return p.Distance(closest)
}

// Circle is a full circle
type Circle struct {
	Center Vector2
	Radius float64
}

func (Circle) shape() {}

// Bounds returns the bounding box of the circle
func (c Circle) Bounds() BoundingBox {
	return BoundingBox{
		Min: Vector2{X: c.Center.X - c.Radius, Y: c.Center.Y - c.Radius},
		Max: Vector2{X: c.Center.X + c.Radius, Y: c.Center.Y + c.Radius},
	}
}

// Translate returns the circle moved by offset
func (c Circle) Translate(offset Vector2) Shape {
	return Circle{Center: c.Center.Add(offset), Radius: c.Radius}
}

// Points samples n+1 points around the circle, first and last coincide
func (c Circle) Points(n int) []Vector2 {
	return Arc{Center: c.Center, Radius: c.Radius, StartAngle: 0, EndAngle: 360}.Points(n)
}

// Arc is a circular arc swept counter-clockwise from StartAngle to EndAngle.
// Angles are in degrees.
type Arc struct {
	Center     Vector2
	Radius     float64
	StartAngle float64
	EndAngle   float64
}

func (Arc) shape() {}

// Sweep returns the counter-clockwise sweep in degrees, in (0, 360]
func (a Arc) Sweep() float64 {
	sweep := NormalizeDegrees(a.EndAngle - a.StartAngle)
	if sweep == 0 {
		return 360
	}
	return sweep
}

// PointAt returns the point of the arc's circle at angle degrees
func (a Arc) PointAt(angle float64) Vector2 {
	rad := angle * math.Pi / 180
	return Vector2{
		X: a.Center.X + a.Radius*math.Cos(rad),
		Y: a.Center.Y + a.Radius*math.Sin(rad),
	}
}

// StartPoint returns the first point of the sweep
func (a Arc) StartPoint() Vector2 {
	return a.PointAt(a.StartAngle)
}

// EndPoint returns the last point of the sweep
func (a Arc) EndPoint() Vector2 {
	return a.PointAt(a.StartAngle + a.Sweep())
}

// ContainsAngle reports whether the direction angle lies on the sweep
func (a Arc) ContainsAngle(angle float64) bool {
	return NormalizeDegrees(angle-a.StartAngle) <= a.Sweep()
}

// Bounds returns the tight bounding box: both endpoints plus every axis
// extreme that falls inside the sweep
func (a Arc) Bounds() BoundingBox {
	bbox := NewBoundingBoxFromPoints(a.StartPoint(), a.EndPoint())
	for _, cardinal := range []float64{0, 90, 180, 270} {
		if a.ContainsAngle(cardinal) {
			bbox.Extend(a.PointAt(cardinal))
		}
	}
	return bbox
}

// Translate returns the arc moved by offset
func (a Arc) Translate(offset Vector2) Shape {
	a.Center = a.Center.Add(offset)
	return a
}

// Points samples n+1 evenly spaced points along the sweep
func (a Arc) Points(n int) []Vector2 {
	if n < 1 {
		n = 1
	}
	sweep := a.Sweep()
	points := make([]Vector2, 0, n+1)
	for i := 0; i <= n; i++ {
		points = append(points, a.PointAt(a.StartAngle+sweep*float64(i)/float64(n)))
	}
	return points
}

// NormalizeDegrees maps an angle into [0, 360)
func NormalizeDegrees(angle float64) float64 {
	angle = math.Mod(angle, 360)
	if angle < 0 {
		angle += 360
	}
	if angle >= 360 {
		angle = 0
	}
	return angle
}
