package session

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"github.com/philipparndt/gobend/internal/bend"
	"github.com/philipparndt/gobend/internal/config"
	"github.com/philipparndt/gobend/internal/scene"
	"github.com/philipparndt/gobend/internal/sequence"
	"github.com/philipparndt/gobend/internal/view"
	"github.com/philipparndt/gobend/pkg/drawing"
	"github.com/philipparndt/gobend/pkg/geometry"
)

// Options configures a session
type Options struct {
	BendColor int
	Margin    float64
	Reference scene.VerticalReference
	Axis      scene.Axis
	Tolerance float64

	ZoomStep float64
	MinScale float64
	MaxScale float64

	Sequence sequence.Options
}

// DefaultOptions mirrors config.Default
func DefaultOptions() Options {
	return OptionsFromConfig(config.Default())
}

// OptionsFromConfig extracts the session options from a validated config
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		BendColor: cfg.Scene.BendColor,
		Margin:    cfg.Scene.Margin,
		Reference: cfg.VerticalReference(),
		Axis:      cfg.Axis(),
		Tolerance: cfg.Scene.Tolerance,
		ZoomStep:  cfg.View.ZoomStep,
		MinScale:  cfg.View.MinScale,
		MaxScale:  cfg.View.MaxScale,
		Sequence: sequence.Options{
			DefaultAngle:   cfg.Sequence.DefaultAngle,
			ManualPosition: cfg.Sequence.ManualPosition,
		},
	}
}

// SequenceEvent carries the totals after a sequence change. Err is set when
// the change was a failed calculation.
type SequenceEvent struct {
	TotalLength     float64
	TotalBD         float64
	EffectiveLength float64
	Err             error
}

// Session is the interactive builder: it owns the scene, the segment
// sequence and the view transform of one drawing. Operations run one at a
// time on the caller's goroutine; a Session is not safe for concurrent use.
// Event handlers run after the operation that triggered them has finished
// and may call back into the session.
type Session struct {
	opts Options
	log  *slog.Logger

	scene     *scene.Scene
	seq       *sequence.Sequence
	view      *view.Transform
	drawingID uuid.UUID
	name      string

	width, height float64

	params    sequence.Params
	predictor bend.Predictor
	totals    sequence.Totals

	busy    bool
	pending []func()

	onScene     []func()
	onSelection []func(line scene.LineID, selected bool)
	onSequence  []func(SequenceEvent)
}

// New creates an empty session
func New(opts Options, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.ZoomStep <= 1 {
		opts.ZoomStep = view.DefaultZoomStep
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = scene.DefaultTolerance
	}
	if opts.Reference == "" {
		opts.Reference = scene.ReferenceBottom
	}
	if opts.Axis == "" {
		opts.Axis = scene.AxisX
	}
	return &Session{
		opts: opts,
		log:  logger,
		seq:  sequence.New(opts.Sequence),
		view: view.NewTransform(opts.MinScale, opts.MaxScale),
	}
}

// OnSceneChanged registers a handler called when the scene or view changes
func (s *Session) OnSceneChanged(fn func()) {
	s.onScene = append(s.onScene, fn)
}

// OnSelectionChanged registers a handler called when a line's selection changes
func (s *Session) OnSelectionChanged(fn func(line scene.LineID, selected bool)) {
	s.onSelection = append(s.onSelection, fn)
}

// OnSequenceChanged registers a handler called when the table changes
func (s *Session) OnSequenceChanged(fn func(SequenceEvent)) {
	s.onSequence = append(s.onSequence, fn)
}

func (s *Session) begin() error {
	if s.busy {
		return ErrBusy
	}
	s.busy = true
	return nil
}

// end releases the guard and delivers the events queued by the operation
func (s *Session) end() {
	s.busy = false
	pending := s.pending
	s.pending = nil
	for _, fn := range pending {
		fn()
	}
}

func (s *Session) emitScene() {
	for _, fn := range s.onScene {
		s.pending = append(s.pending, fn)
	}
}

func (s *Session) emitSelection(line scene.LineID, selected bool) {
	for _, fn := range s.onSelection {
		s.pending = append(s.pending, func() { fn(line, selected) })
	}
}

func (s *Session) emitSequence(err error) {
	ev := SequenceEvent{
		TotalLength:     s.seq.TotalLength(),
		TotalBD:         s.seq.TotalBD(),
		EffectiveLength: s.totals.EffectiveLength,
		Err:             err,
	}
	for _, fn := range s.onSequence {
		s.pending = append(s.pending, func() { fn(ev) })
	}
}

// LoadFile parses a drawing file and loads it
func (s *Session) LoadFile(path string) ([]error, error) {
	d, err := drawing.Parse(path)
	if err != nil {
		return nil, err
	}
	return s.Load(d.Name, d.Records)
}

// Load replaces the current drawing. Skipped records are returned; when
// nothing renderable remains the previous drawing stays loaded.
func (s *Session) Load(name string, records []drawing.Record) ([]error, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	sc, skipped, err := scene.Ingest(records, s.opts.BendColor)
	for _, e := range skipped {
		s.log.Warn("skipped drawing record", "drawing", name, "error", e)
	}
	if err != nil {
		return skipped, fmt.Errorf("failed to load %s: %w", name, err)
	}

	sc.Normalize(s.opts.Reference, s.opts.Margin)

	s.scene = sc
	s.name = name
	s.drawingID = uuid.New()
	s.seq.Clear()
	s.totals = sequence.Totals{}
	s.resetView()

	s.log.Info("drawing loaded",
		"drawing", name,
		"id", s.drawingID,
		"primitives", sc.Len(),
		"bend_lines", len(sc.BendCandidates()),
		"skipped", len(skipped),
		"shift", sc.Shift())

	s.emitScene()
	s.emitSequence(nil)
	return skipped, nil
}

// Resize records the viewport size used to center the drawing
func (s *Session) Resize(width, height float64) {
	s.width, s.height = width, height
}

// ResetView recenters the drawing and drops any pan and zoom
func (s *Session) ResetView() error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	if s.scene == nil {
		return ErrNoDrawing
	}
	s.resetView()
	s.emitScene()
	return nil
}

func (s *Session) resetView() {
	if s.scene == nil {
		return
	}
	s.view.ResetAndCenter(s.scene.Centroid(), s.width, s.height)
}

// Pan moves the view by a screen-space delta
func (s *Session) Pan(delta geometry.Vector2) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	s.view.Pan(delta)
	s.emitScene()
	return nil
}

// Zoom scales the view about a screen point. It reports false when the zoom
// limits were hit and nothing changed.
func (s *Session) Zoom(factor float64, anchor geometry.Vector2) (bool, error) {
	if err := s.begin(); err != nil {
		return false, err
	}
	defer s.end()

	if !s.view.Zoom(factor, anchor) {
		return false, nil
	}
	s.emitScene()
	return true, nil
}

// Wheel zooms by the configured step per notch; positive notches zoom in
func (s *Session) Wheel(notches float64, anchor geometry.Vector2) (bool, error) {
	if notches == 0 {
		return false, nil
	}
	return s.Zoom(math.Pow(s.opts.ZoomStep, notches), anchor)
}

// SceneAt maps a screen point to scene coordinates
func (s *Session) SceneAt(screen geometry.Vector2) geometry.Vector2 {
	return s.view.ToScene(screen)
}

// ScreenAt maps a scene point to screen coordinates
func (s *Session) ScreenAt(p geometry.Vector2) geometry.Vector2 {
	return s.view.ToScreen(p)
}

// Scene returns the loaded scene or nil
func (s *Session) Scene() *scene.Scene {
	return s.scene
}

// Name returns the name of the loaded drawing
func (s *Session) Name() string {
	return s.name
}

// DrawingID identifies the current load; it changes on every Load
func (s *Session) DrawingID() uuid.UUID {
	return s.drawingID
}

// ViewScale returns the current zoom factor
func (s *Session) ViewScale() float64 {
	return s.view.Scale()
}

// Options returns the session options
func (s *Session) Options() Options {
	return s.opts
}
