package viewer

import (
	"errors"
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/philipparndt/gobend/internal/scene"
	"github.com/philipparndt/gobend/internal/session"
	"github.com/philipparndt/gobend/internal/view"
	"github.com/philipparndt/gobend/pkg/geometry"
)

// Palette holds the stroke colors of the drawing view
type Palette struct {
	Background color.Color
	Line       color.Color
	Bend       color.Color
	Selected   color.Color
}

// DefaultPalette draws on a dark background with yellow bend lines
var DefaultPalette = Palette{
	Background: color.RGBA{30, 30, 30, 255},
	Line:       color.RGBA{220, 220, 220, 255},
	Bend:       color.RGBA{255, 255, 0, 255},
	Selected:   color.RGBA{255, 0, 0, 255},
}

// LightPalette draws on a white background for printing and bright rooms
var LightPalette = Palette{
	Background: color.RGBA{255, 255, 255, 255},
	Line:       color.RGBA{40, 40, 40, 255},
	Bend:       color.RGBA{230, 140, 0, 255},
	Selected:   color.RGBA{220, 0, 0, 255},
}

// DrawingView renders the session's scene and turns pointer input into
// session operations: drag pans, wheel zooms, click toggles a bend line
type DrawingView struct {
	widget.BaseWidget

	session   *session.Session
	gesture   *view.Gesture
	palette   Palette
	highlight map[scene.LineID]bool

	objects []fyne.CanvasObject
	width   float64
	height  float64

	onCursor func(p geometry.Vector2)
	onError  func(err error)
}

// NewDrawingView creates a view bound to a session
func NewDrawingView(s *session.Session, clickThreshold float64) *DrawingView {
	v := &DrawingView{
		session:   s,
		gesture:   view.NewGesture(clickThreshold),
		palette:   DefaultPalette,
		highlight: make(map[scene.LineID]bool),
	}
	v.ExtendBaseWidget(v)

	s.OnSceneChanged(func() {
		v.syncHighlight()
		v.Refresh()
	})
	s.OnSelectionChanged(func(line scene.LineID, selected bool) {
		if selected {
			v.highlight[line] = true
		} else {
			delete(v.highlight, line)
		}
		v.Refresh()
	})
	return v
}

// SetOnCursor sets the callback receiving the scene position under the pointer
func (v *DrawingView) SetOnCursor(callback func(p geometry.Vector2)) {
	v.onCursor = callback
}

// SetOnError sets the callback receiving errors from input handling
func (v *DrawingView) SetOnError(callback func(err error)) {
	v.onError = callback
}

// SetPalette replaces the stroke colors
func (v *DrawingView) SetPalette(p Palette) {
	v.palette = p
	v.Refresh()
}

// syncHighlight rebuilds the highlight set after a load
func (v *DrawingView) syncHighlight() {
	v.highlight = make(map[scene.LineID]bool)
	if sc := v.session.Scene(); sc != nil {
		for _, id := range sc.Selected() {
			v.highlight[id] = true
		}
	}
}

func (v *DrawingView) report(err error) {
	if err != nil && v.onError != nil {
		v.onError(err)
	}
}

// CreateRenderer creates the renderer for the widget
func (v *DrawingView) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(v.palette.Background)
	return &drawingRenderer{view: v, background: bg}
}

// Render rebuilds the canvas objects for the current view
func (v *DrawingView) Render(width, height float64) {
	v.width = width
	v.height = height
	v.objects = v.objects[:0]

	sc := v.session.Scene()
	if sc == nil {
		return
	}
	for _, p := range sc.Primitives() {
		v.objects = append(v.objects, v.shapeObjects(p, v.strokeFor(p))...)
	}
}

func (v *DrawingView) strokeFor(p scene.Primitive) color.Color {
	switch {
	case v.highlight[p.ID]:
		return v.palette.Selected
	case p.BendCandidate:
		return v.palette.Bend
	default:
		return v.palette.Line
	}
}

func (v *DrawingView) shapeObjects(p scene.Primitive, stroke color.Color) []fyne.CanvasObject {
	switch shape := p.Shape.(type) {
	case geometry.Segment:
		return []fyne.CanvasObject{v.line(shape.Start, shape.End, stroke)}
	case geometry.Circle:
		return v.polyline(shape.Points(tessellation(360)), stroke)
	case geometry.Arc:
		return v.polyline(shape.Points(tessellation(shape.Sweep())), stroke)
	}
	return nil
}

func (v *DrawingView) line(a, b geometry.Vector2, stroke color.Color) *canvas.Line {
	sa := v.session.ScreenAt(a)
	sb := v.session.ScreenAt(b)
	l := canvas.NewLine(stroke)
	l.StrokeWidth = 1
	l.Position1 = fyne.NewPos(float32(sa.X), float32(sa.Y))
	l.Position2 = fyne.NewPos(float32(sb.X), float32(sb.Y))
	return l
}

func (v *DrawingView) polyline(points []geometry.Vector2, stroke color.Color) []fyne.CanvasObject {
	objs := make([]fyne.CanvasObject, 0, len(points))
	for i := 1; i < len(points); i++ {
		objs = append(objs, v.line(points[i-1], points[i], stroke))
	}
	return objs
}

// tessellation picks the number of chords for a sweep in degrees
func tessellation(sweep float64) int {
	return int(math.Max(8, math.Ceil(sweep/5)))
}

func toVector(p fyne.Position) geometry.Vector2 {
	return geometry.NewVector2(float64(p.X), float64(p.Y))
}

// MouseDown starts a click-or-drag gesture
func (v *DrawingView) MouseDown(_ *desktop.MouseEvent) {
	v.gesture.Press()
}

// MouseUp ends the gesture; short gestures toggle the bend line under the pointer
func (v *DrawingView) MouseUp(event *desktop.MouseEvent) {
	wasDrag := v.gesture.Release()
	_, err := v.session.ClickRelease(toVector(event.Position), wasDrag)
	v.report(err)
}

// Dragged pans the view by the pointer delta. Touch drags arrive without
// a MouseDown, so they start the gesture themselves.
func (v *DrawingView) Dragged(event *fyne.DragEvent) {
	if !v.gesture.Pressed() {
		v.gesture.Press()
	}
	delta := geometry.NewVector2(float64(event.Dragged.DX), float64(event.Dragged.DY))
	v.gesture.Move(delta)
	v.report(v.session.Pan(delta))
}

// DragEnd implements fyne.Draggable; MouseUp ends the gesture
func (v *DrawingView) DragEnd() {}

// Scrolled zooms about the pointer, one step per wheel event
func (v *DrawingView) Scrolled(event *fyne.ScrollEvent) {
	notches := 0.0
	switch {
	case event.Scrolled.DY > 0:
		notches = 1
	case event.Scrolled.DY < 0:
		notches = -1
	}
	_, err := v.session.Wheel(notches, toVector(event.Position))
	v.report(err)
}

// MouseIn implements desktop.Hoverable
func (v *DrawingView) MouseIn(event *desktop.MouseEvent) {
	v.MouseMoved(event)
}

// MouseMoved reports the scene position under the pointer
func (v *DrawingView) MouseMoved(event *desktop.MouseEvent) {
	if v.onCursor != nil {
		v.onCursor(v.session.SceneAt(toVector(event.Position)))
	}
}

// MouseOut implements desktop.Hoverable
func (v *DrawingView) MouseOut() {}

// drawingRenderer implements fyne.WidgetRenderer
type drawingRenderer struct {
	view       *DrawingView
	background *canvas.Rectangle
	objects    []fyne.CanvasObject
}

func (r *drawingRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	w, h := float64(size.Width), float64(size.Height)
	if w != r.view.width || h != r.view.height {
		first := r.view.width == 0 && r.view.height == 0
		r.view.session.Resize(w, h)
		if first {
			if err := r.view.session.ResetView(); err != nil && !errors.Is(err, session.ErrNoDrawing) {
				r.view.report(err)
			}
		}
	}
	r.view.Render(w, h)
	r.collect()
}

func (r *drawingRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 300)
}

func (r *drawingRenderer) Refresh() {
	r.background.FillColor = r.view.palette.Background
	r.view.Render(r.view.width, r.view.height)
	r.collect()
	canvas.Refresh(r.view)
}

func (r *drawingRenderer) collect() {
	r.objects = append(r.objects[:0], r.background)
	r.objects = append(r.objects, r.view.objects...)
}

func (r *drawingRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *drawingRenderer) Destroy() {}
