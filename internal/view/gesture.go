package view

import "github.com/philipparndt/gobend/pkg/geometry"

// DefaultClickThreshold is the pointer travel, in screen units, below which
// a press/release pair counts as a click
const DefaultClickThreshold = 10.0

// Gesture tells clicks from drags by accumulating pointer travel between
// press and release
type Gesture struct {
	threshold float64
	pressed   bool
	travel    float64
}

// NewGesture creates a gesture tracker
func NewGesture(threshold float64) *Gesture {
	if threshold <= 0 {
		threshold = DefaultClickThreshold
	}
	return &Gesture{threshold: threshold}
}

// Press starts a new gesture
func (g *Gesture) Press() {
	g.pressed = true
	g.travel = 0
}

// Move records pointer movement while pressed
func (g *Gesture) Move(delta geometry.Vector2) {
	if !g.pressed {
		return
	}
	g.travel += delta.Length()
}

// Release ends the gesture and reports whether it was a drag
func (g *Gesture) Release() (wasDrag bool) {
	wasDrag = g.travel >= g.threshold
	g.pressed = false
	g.travel = 0
	return wasDrag
}

// Pressed reports whether a gesture is in progress
func (g *Gesture) Pressed() bool {
	return g.pressed
}
