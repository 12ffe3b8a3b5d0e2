package scene

import (
	"github.com/dhconnelly/rtreego"

	"github.com/philipparndt/gobend/pkg/geometry"
)

// LineID is the stable handle of a primitive inside its scene. It is the
// primitive's index in the scene arena and is valid until the next load.
type LineID int

// NoLine marks a sequence entry that is not tied to a scene line
const NoLine LineID = -1

// Primitive is one renderable element of the scene
type Primitive struct {
	ID            LineID
	Shape         geometry.Shape
	Color         int
	Layer         string
	BendCandidate bool
}

// Segment returns the primitive as a segment when it is one
func (p Primitive) Segment() (geometry.Segment, bool) {
	seg, ok := p.Shape.(geometry.Segment)
	return seg, ok
}

// Scene holds the primitives of one loaded drawing together with its
// bounding box, the accumulated origin shift and the selection state of the
// bend candidates.
type Scene struct {
	primitives []Primitive
	selected   []bool

	bounds geometry.BoundingBox
	extent geometry.BoundingBox
	shift  geometry.Vector2

	index *rtreego.Rtree
}

func newScene(primitives []Primitive) *Scene {
	s := &Scene{
		primitives: primitives,
		selected:   make([]bool, len(primitives)),
	}
	s.bounds = s.computeBounds()
	s.extent = s.bounds
	s.rebuildIndex()
	return s
}

// Primitives returns all primitives in arena order
func (s *Scene) Primitives() []Primitive {
	return s.primitives
}

// Primitive returns the primitive with the given id
func (s *Scene) Primitive(id LineID) (Primitive, bool) {
	if !s.valid(id) {
		return Primitive{}, false
	}
	return s.primitives[id], true
}

// Len returns the number of primitives
func (s *Scene) Len() int {
	return len(s.primitives)
}

// BendCandidates returns the ids of all candidate bend lines
func (s *Scene) BendCandidates() []LineID {
	ids := make([]LineID, 0)
	for _, p := range s.primitives {
		if p.BendCandidate {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// Bounds returns the tight bounding box of all primitives
func (s *Scene) Bounds() geometry.BoundingBox {
	return s.bounds
}

// Extent returns the pannable extent: the bounds grown by the margin
func (s *Scene) Extent() geometry.BoundingBox {
	return s.extent
}

// Shift returns the total translation applied by normalization
func (s *Scene) Shift() geometry.Vector2 {
	return s.shift
}

// Centroid returns the center of the bounding box
func (s *Scene) Centroid() geometry.Vector2 {
	return s.bounds.Center()
}

func (s *Scene) valid(id LineID) bool {
	return id >= 0 && int(id) < len(s.primitives)
}

func (s *Scene) computeBounds() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, p := range s.primitives {
		bbox.Union(p.Shape.Bounds())
	}
	return bbox
}
