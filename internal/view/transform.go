package view

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/philipparndt/gobend/pkg/geometry"
)

// Defaults for the view transform
const (
	DefaultZoomStep = 1.1
	DefaultMinScale = 1e-3
	DefaultMaxScale = 1e3
)

// Transform maps scene coordinates to screen coordinates with a 3x3 affine
// matrix (column vectors, screen = M·scene). It only affects rendering; the
// scene itself is never touched.
type Transform struct {
	m        mgl64.Mat3
	minScale float64
	maxScale float64
}

// NewTransform creates an identity transform whose cumulative scale is kept
// within [minScale, maxScale]
func NewTransform(minScale, maxScale float64) *Transform {
	if minScale <= 0 {
		minScale = DefaultMinScale
	}
	if maxScale < minScale {
		maxScale = minScale
	}
	return &Transform{
		m:        mgl64.Ident3(),
		minScale: minScale,
		maxScale: maxScale,
	}
}

// ResetAndCenter rebuilds the transform from scratch: identity, then a flip
// of the Y axis so larger scene Y renders higher, then a translation that
// puts centroid in the middle of a width x height viewport.
func (t *Transform) ResetAndCenter(centroid geometry.Vector2, width, height float64) {
	t.m = mgl64.Ident3()
	t.m = t.m.Mul3(mgl64.Scale2D(1, -1))

	viewCenter := t.m.Inv().Mul3x1(mgl64.Vec3{width / 2, height / 2, 1})
	offset := geometry.NewVector2(viewCenter[0], viewCenter[1]).Sub(centroid)
	t.m = t.m.Mul3(mgl64.Translate2D(offset.X, offset.Y))
}

// Pan moves the view by a raw screen-space delta
func (t *Transform) Pan(delta geometry.Vector2) {
	t.m = mgl64.Translate2D(delta.X, delta.Y).Mul3(t.m)
}

// Zoom scales the view by factor about the screen point anchor, so the scene
// point under the anchor stays put. It returns false and leaves the view
// unchanged when the factor is invalid or the result would leave the
// allowed scale range.
func (t *Transform) Zoom(factor float64, anchor geometry.Vector2) bool {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return false
	}
	next := t.Scale() * factor
	if next < t.minScale || next > t.maxScale {
		return false
	}

	about := mgl64.Translate2D(anchor.X, anchor.Y).
		Mul3(mgl64.Scale2D(factor, factor)).
		Mul3(mgl64.Translate2D(-anchor.X, -anchor.Y))
	t.m = about.Mul3(t.m)
	return true
}

// Scale returns the current uniform zoom factor
func (t *Transform) Scale() float64 {
	return math.Abs(t.m[0])
}

// ToScreen maps a scene point to screen coordinates
func (t *Transform) ToScreen(p geometry.Vector2) geometry.Vector2 {
	r := t.m.Mul3x1(mgl64.Vec3{p.X, p.Y, 1})
	return geometry.NewVector2(r[0], r[1])
}

// ToScene maps a screen point back to scene coordinates
func (t *Transform) ToScene(p geometry.Vector2) geometry.Vector2 {
	r := t.m.Inv().Mul3x1(mgl64.Vec3{p.X, p.Y, 1})
	return geometry.NewVector2(r[0], r[1])
}
