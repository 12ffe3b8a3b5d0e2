package scene

import (
	"github.com/dhconnelly/rtreego"

	"github.com/philipparndt/gobend/pkg/geometry"
)

// DefaultTolerance is the hit-test radius in scene units
const DefaultTolerance = 20.0

// minRectSide keeps axis-aligned lines from producing zero-area rectangles
const minRectSide = 1e-6

// Hit is the result of a successful bend-line hit test
type Hit struct {
	Line     LineID
	Point    geometry.Vector2 // closest point on the line
	Distance float64
}

type indexedLine struct {
	id   LineID
	rect rtreego.Rect
}

func (l *indexedLine) Bounds() rtreego.Rect {
	return l.rect
}

func rectFromBounds(b geometry.BoundingBox) (rtreego.Rect, error) {
	size := b.Size()
	w := size.X + 2*minRectSide
	h := size.Y + 2*minRectSide
	return rtreego.NewRect(rtreego.Point{b.Min.X - minRectSide, b.Min.Y - minRectSide}, []float64{w, h})
}

// rebuildIndex indexes the bend candidates. Called whenever coordinates change.
func (s *Scene) rebuildIndex() {
	objs := make([]rtreego.Spatial, 0)
	for _, p := range s.primitives {
		if !p.BendCandidate {
			continue
		}
		rect, err := rectFromBounds(p.Shape.Bounds())
		if err != nil {
			continue
		}
		objs = append(objs, &indexedLine{id: p.ID, rect: rect})
	}
	s.index = rtreego.NewTree(2, 25, 50, objs...)
}

// NearestBendLine finds the candidate bend line closest to p. The search
// window is a square of side 2·tolerance around p; within it the exact
// distance to each finite segment decides, and only a distance strictly
// below tolerance counts as a hit.
func (s *Scene) NearestBendLine(p geometry.Vector2, tolerance float64) (Hit, bool) {
	if tolerance <= 0 || s.index == nil || s.index.Size() == 0 {
		return Hit{}, false
	}

	window := rtreego.Point{p.X, p.Y}.ToRect(tolerance)
	candidates := s.index.SearchIntersect(window)

	best := Hit{Line: NoLine}
	found := false
	for _, c := range candidates {
		line := c.(*indexedLine)
		seg, ok := s.primitives[line.id].Segment()
		if !ok {
			continue
		}
		closest, _ := seg.ClosestPoint(p)
		d := closest.Distance(p)
		if d >= tolerance {
			continue
		}
		if !found || d < best.Distance || (d == best.Distance && line.id < best.Line) {
			best = Hit{Line: line.id, Point: closest, Distance: d}
			found = true
		}
	}
	return best, found
}
