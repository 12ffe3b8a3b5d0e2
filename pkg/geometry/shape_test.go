package geometry

import (
	"math"
	"testing"
)

const eps = 1e-9

func sameAngle(a, b float64) bool {
	d := NormalizeDegrees(a - b)
	return d < eps || 360-d < eps
}

func TestSegmentClosestPoint(t *testing.T) {
	seg := NewSegment(NewVector2(0, 0), NewVector2(10, 0))

	tests := []struct {
		name     string
		point    Vector2
		expected Vector2
		t        float64
		distance float64
	}{
		{"inside", NewVector2(4, 3), NewVector2(4, 0), 0.4, 3},
		{"before start", NewVector2(-3, 4), NewVector2(0, 0), 0, 5},
		{"after end", NewVector2(13, -4), NewVector2(10, 0), 1, 5},
		{"on segment", NewVector2(7, 0), NewVector2(7, 0), 0.7, 0},
	}

	for _, tc := range tests {
		closest, param := seg.ClosestPoint(tc.point)
		if !closest.ApproxEqual(tc.expected, eps) {
			t.Errorf("%s: expected closest %v, got %v", tc.name, tc.expected, closest)
		}
		if math.Abs(param-tc.t) > eps {
			t.Errorf("%s: expected t %v, got %v", tc.name, tc.t, param)
		}
		if d := seg.DistanceTo(tc.point); math.Abs(d-tc.distance) > eps {
			t.Errorf("%s: expected distance %v, got %v", tc.name, tc.distance, d)
		}
	}
}

func TestSegmentDegenerate(t *testing.T) {
	seg := NewSegment(NewVector2(2, 2), NewVector2(2, 2))
	if d := seg.DistanceTo(NewVector2(5, 6)); math.Abs(d-5) > eps {
		t.Errorf("expected distance 5, got %v", d)
	}
}

func TestArcSweep(t *testing.T) {
	tests := []struct {
		start, end, sweep float64
	}{
		{0, 90, 90},
		{270, 90, 180},
		{350, 10, 20},
		{45, 45, 360},
	}
	for _, tc := range tests {
		arc := Arc{Radius: 1, StartAngle: tc.start, EndAngle: tc.end}
		if s := arc.Sweep(); math.Abs(s-tc.sweep) > eps {
			t.Errorf("Sweep(%v -> %v): expected %v, got %v", tc.start, tc.end, tc.sweep, s)
		}
	}
}

func TestArcBounds(t *testing.T) {
	// Lower half circle: from 180 counter-clockwise through 270 to 360
	arc := Arc{Center: NewVector2(0, 0), Radius: 1, StartAngle: 180, EndAngle: 0}
	bbox := arc.Bounds()

	if !bbox.Min.ApproxEqual(NewVector2(-1, -1), eps) {
		t.Errorf("Bounds min failed: got %v", bbox.Min)
	}
	if !bbox.Max.ApproxEqual(NewVector2(1, 0), eps) {
		t.Errorf("Bounds max failed: got %v", bbox.Max)
	}
}

func TestCircleBounds(t *testing.T) {
	c := Circle{Center: NewVector2(5, 5), Radius: 2}
	bbox := c.Bounds()
	if bbox.Min != NewVector2(3, 3) || bbox.Max != NewVector2(7, 7) {
		t.Errorf("Circle bounds failed: got %v", bbox)
	}
}

func TestShapeTranslate(t *testing.T) {
	offset := NewVector2(10, -5)
	shapes := []Shape{
		NewSegment(NewVector2(0, 0), NewVector2(1, 1)),
		Circle{Center: NewVector2(0, 0), Radius: 1},
		Arc{Center: NewVector2(0, 0), Radius: 1, StartAngle: 0, EndAngle: 90},
	}
	for _, s := range shapes {
		before := s.Bounds()
		after := s.Translate(offset).Bounds()
		if !after.Min.ApproxEqual(before.Min.Add(offset), eps) || !after.Max.ApproxEqual(before.Max.Add(offset), eps) {
			t.Errorf("Translate failed for %T: %v -> %v", s, before, after)
		}
	}
}

func TestArcFromBulgeQuarter(t *testing.T) {
	bulge := math.Tan(math.Pi / 8) // 90 degree included angle
	arc, ok := ArcFromBulge(NewVector2(1, 0), NewVector2(0, 1), bulge)
	if !ok {
		t.Fatalf("expected an arc")
	}
	if !arc.Center.ApproxEqual(NewVector2(0, 0), eps) {
		t.Errorf("center failed: got %v", arc.Center)
	}
	if math.Abs(arc.Radius-1) > eps {
		t.Errorf("radius failed: got %v", arc.Radius)
	}
	if !sameAngle(arc.StartAngle, 0) || !sameAngle(arc.EndAngle, 90) {
		t.Errorf("angles failed: got %v -> %v", arc.StartAngle, arc.EndAngle)
	}
}

func TestArcFromBulgeClockwise(t *testing.T) {
	bulge := -math.Tan(math.Pi / 8)
	arc, ok := ArcFromBulge(NewVector2(0, 1), NewVector2(1, 0), bulge)
	if !ok {
		t.Fatalf("expected an arc")
	}
	if !arc.Center.ApproxEqual(NewVector2(0, 0), eps) {
		t.Errorf("center failed: got %v", arc.Center)
	}
	// clockwise from 90 to 0 is stored as counter-clockwise from 0 to 90
	if !sameAngle(arc.StartAngle, 0) || !sameAngle(arc.EndAngle, 90) {
		t.Errorf("angles failed: got %v -> %v", arc.StartAngle, arc.EndAngle)
	}
}

func TestArcFromBulgeSemicircle(t *testing.T) {
	arc, ok := ArcFromBulge(NewVector2(-1, 0), NewVector2(1, 0), 1)
	if !ok {
		t.Fatalf("expected an arc")
	}
	if !arc.Center.ApproxEqual(NewVector2(0, 0), eps) || math.Abs(arc.Radius-1) > eps {
		t.Errorf("semicircle failed: center %v radius %v", arc.Center, arc.Radius)
	}
	if math.Abs(arc.Sweep()-180) > eps {
		t.Errorf("sweep failed: got %v", arc.Sweep())
	}
	if !arc.StartPoint().ApproxEqual(NewVector2(-1, 0), eps) || !arc.EndPoint().ApproxEqual(NewVector2(1, 0), eps) {
		t.Errorf("endpoints failed: %v -> %v", arc.StartPoint(), arc.EndPoint())
	}
}

func TestArcFromBulgeStraight(t *testing.T) {
	if _, ok := ArcFromBulge(NewVector2(0, 0), NewVector2(1, 0), 0); ok {
		t.Errorf("zero bulge should not produce an arc")
	}
	if _, ok := ArcFromBulge(NewVector2(1, 1), NewVector2(1, 1), 0.5); ok {
		t.Errorf("zero-length chord should not produce an arc")
	}
}
