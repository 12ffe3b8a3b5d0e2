package session

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gobend/internal/bend"
	"github.com/philipparndt/gobend/internal/config"
	"github.com/philipparndt/gobend/internal/scene"
	"github.com/philipparndt/gobend/internal/sequence"
	"github.com/philipparndt/gobend/pkg/drawing"
	"github.com/philipparndt/gobend/pkg/geometry"
)

const (
	lineAt30 = scene.LineID(4)
	lineAt80 = scene.LineID(5)
)

func v(x, y float64) geometry.Vector2 {
	return geometry.NewVector2(x, y)
}

// part is a 100x40 outline with bend lines at X=30 and X=80
func part() []drawing.Record {
	return []drawing.Record{
		drawing.Line(v(0, 0), v(100, 0), 7),
		drawing.Line(v(100, 0), v(100, 40), 7),
		drawing.Line(v(100, 40), v(0, 40), 7),
		drawing.Line(v(0, 40), v(0, 0), 7),
		drawing.Line(v(30, 0), v(30, 40), scene.DefaultBendColor),
		drawing.Line(v(80, 0), v(80, 40), scene.DefaultBendColor),
	}
}

func newSession(t *testing.T) *Session {
	t.Helper()
	s := New(DefaultOptions(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.Resize(800, 600)
	_, err := s.Load("part", part())
	require.NoError(t, err)
	return s
}

// click releases the pointer over a scene point without dragging
func click(t *testing.T, s *Session, p geometry.Vector2) bool {
	t.Helper()
	toggled, err := s.ClickRelease(s.ScreenAt(p), false)
	require.NoError(t, err)
	return toggled
}

func entryLengths(s *Session) []float64 {
	out := make([]float64, 0)
	for _, e := range s.Entries() {
		out = append(out, e.Length)
	}
	return out
}

func TestEndToEndScenario(t *testing.T) {
	s := newSession(t)

	require.True(t, click(t, s, v(33, 12)))
	entries := s.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, lineAt30, entries[0].Line)
	assert.InDelta(t, 30, entries[0].Position, 1e-9)
	assert.Equal(t, "30.00", s.Rows()[0].Cells()[0])

	require.True(t, click(t, s, v(76, 25)))
	entries = s.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, lineAt80, entries[1].Line)
	assert.Equal(t, "50.00", s.Rows()[1].Cells()[0])

	require.True(t, click(t, s, v(28, 5)))
	entries = s.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, lineAt80, entries[0].Line)
	assert.Equal(t, "80.00", s.Rows()[0].Cells()[0])

	assert.False(t, s.Scene().IsSelected(lineAt30))
	assert.True(t, s.Scene().IsSelected(lineAt80))
	assert.NoError(t, s.CheckConsistency())
	assert.True(t, s.Rows()[len(s.Rows())-1].Placeholder)
}

func TestPositionComesFromClosestPoint(t *testing.T) {
	opts := DefaultOptions()
	opts.Axis = scene.AxisY
	s := New(opts, nil)
	s.Resize(800, 600)
	_, err := s.Load("slanted", []drawing.Record{
		drawing.Line(v(0, 0), v(40, 40), scene.DefaultBendColor),
	})
	require.NoError(t, err)

	toggled, err := s.SelectAt(v(10, 20))
	require.NoError(t, err)
	require.True(t, toggled)
	// closest point on y=x to (10, 20) is (15, 15)
	assert.InDelta(t, 15, s.Entries()[0].Position, 1e-9)
}

func TestDragDoesNotSelect(t *testing.T) {
	s := newSession(t)
	toggled, err := s.ClickRelease(s.ScreenAt(v(30, 20)), true)
	require.NoError(t, err)
	assert.False(t, toggled)
	assert.Empty(t, s.Entries())
}

func TestMissDoesNothing(t *testing.T) {
	s := newSession(t)
	assert.False(t, click(t, s, v(55, 20)))
	assert.Empty(t, s.Entries())
}

func TestBijectionUnderToggles(t *testing.T) {
	s := newSession(t)
	clicks := []geometry.Vector2{
		v(31, 10), v(79, 10), v(29, 30), v(81, 30), v(30, 20), v(80, 20), v(80, 1),
	}
	for _, p := range clicks {
		click(t, s, p)
		require.NoError(t, s.CheckConsistency())
		for _, line := range []scene.LineID{lineAt30, lineAt80} {
			inSeq := 0
			for _, e := range s.Entries() {
				if e.Line == line {
					inSeq++
				}
			}
			if s.Scene().IsSelected(line) {
				assert.Equal(t, 1, inSeq)
			} else {
				assert.Equal(t, 0, inSeq)
			}
		}
	}
}

func TestRemoveRowDeselectsLine(t *testing.T) {
	s := newSession(t)
	click(t, s, v(30, 20))
	click(t, s, v(80, 20))
	row, err := s.AddRow()
	require.NoError(t, err)
	assert.Equal(t, 2, row, "manual rows sit at position 100")

	var deselected []scene.LineID
	s.OnSelectionChanged(func(line scene.LineID, selected bool) {
		if !selected {
			deselected = append(deselected, line)
		}
	})

	require.NoError(t, s.RemoveRow(0))
	assert.Equal(t, []scene.LineID{lineAt30}, deselected)
	assert.False(t, s.Scene().IsSelected(lineAt30))
	assert.Equal(t, []float64{80, 20}, entryLengths(s))

	require.NoError(t, s.RemoveRow(1))
	assert.Len(t, deselected, 1, "manual rows have no line to deselect")
	assert.NoError(t, s.CheckConsistency())

	assert.ErrorIs(t, s.RemoveRow(5), sequence.ErrRowOutOfRange)
}

func TestPanZoomAreNonDestructive(t *testing.T) {
	s := newSession(t)
	click(t, s, v(30, 20))

	shapes := make([]geometry.Shape, 0)
	for _, p := range s.Scene().Primitives() {
		shapes = append(shapes, p.Shape)
	}
	entries := s.Entries()

	require.NoError(t, s.Pan(v(40, -25)))
	_, err := s.Zoom(2, v(100, 100))
	require.NoError(t, err)
	_, err = s.Wheel(-3, v(700, 20))
	require.NoError(t, err)
	require.NoError(t, s.Pan(v(-1, 1)))

	for i, p := range s.Scene().Primitives() {
		assert.Equal(t, shapes[i], p.Shape)
	}
	assert.Equal(t, entries, s.Entries())

	// the selection still works through the changed view
	assert.True(t, click(t, s, v(80, 20)))
}

func TestWheelKeepsPointUnderCursor(t *testing.T) {
	s := newSession(t)
	anchor := v(250, 330)
	under := s.SceneAt(anchor)

	changed, err := s.Wheel(2, anchor)
	require.NoError(t, err)
	require.True(t, changed)
	assert.InDelta(t, 1.21, s.ViewScale(), 1e-9)

	after := s.SceneAt(anchor)
	assert.InDelta(t, under.X, after.X, 1e-9)
	assert.InDelta(t, under.Y, after.Y, 1e-9)

	require.NoError(t, s.ResetView())
	assert.InDelta(t, 1, s.ViewScale(), 1e-12)
}

func TestResetCentersDrawing(t *testing.T) {
	s := newSession(t)
	center := s.ScreenAt(s.Scene().Centroid())
	assert.InDelta(t, 400, center.X, 1e-9)
	assert.InDelta(t, 300, center.Y, 1e-9)
}

func TestFailedLoadKeepsState(t *testing.T) {
	s := newSession(t)
	click(t, s, v(30, 20))
	id := s.DrawingID()
	entries := s.Entries()

	skipped, err := s.Load("broken", []drawing.Record{{Kind: "TEXT"}, {Kind: drawing.KindCircle}})
	assert.ErrorIs(t, err, scene.ErrNoGeometry)
	assert.Len(t, skipped, 2)

	assert.Equal(t, "part", s.Name())
	assert.Equal(t, id, s.DrawingID())
	assert.Equal(t, entries, s.Entries())
	assert.True(t, s.Scene().IsSelected(lineAt30))
}

func TestLoadResetsSequence(t *testing.T) {
	s := newSession(t)
	click(t, s, v(30, 20))
	first := s.DrawingID()

	_, err := s.Load("again", part())
	require.NoError(t, err)
	assert.Empty(t, s.Entries())
	assert.Empty(t, s.Scene().Selected())
	assert.NotEqual(t, first, s.DrawingID())
}

func TestLoadNormalizesDrawing(t *testing.T) {
	s := New(DefaultOptions(), nil)
	shifted := make([]drawing.Record, 0)
	for _, r := range part() {
		r.Start.X += 500
		r.End.X += 500
		r.Start.Y -= 70
		r.End.Y -= 70
		shifted = append(shifted, r)
	}
	_, err := s.Load("shifted", shifted)
	require.NoError(t, err)
	assert.Equal(t, v(0, 0), s.Scene().Bounds().Min)

	toggled, err := s.SelectAt(v(30, 20))
	require.NoError(t, err)
	require.True(t, toggled)
	assert.InDelta(t, 30, s.Entries()[0].Position, 1e-9)
}

func TestNoDrawing(t *testing.T) {
	s := New(DefaultOptions(), nil)
	_, err := s.SelectAt(v(0, 0))
	assert.ErrorIs(t, err, ErrNoDrawing)
	assert.ErrorIs(t, s.ResetView(), ErrNoDrawing)
	assert.NoError(t, s.CheckConsistency())
}

func TestConsistencyViolationIsReported(t *testing.T) {
	s := newSession(t)
	// corrupt the scene behind the session's back
	require.NoError(t, s.scene.SetSelected(lineAt30, true))

	toggled, err := s.SelectAt(v(30, 20))
	assert.False(t, toggled)
	var cerr *ConsistencyError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, lineAt30, cerr.Line)

	assert.Empty(t, s.Entries(), "not repaired")
	assert.True(t, s.scene.IsSelected(lineAt30))
	assert.Error(t, s.CheckConsistency())
}

func TestBusyGuard(t *testing.T) {
	s := newSession(t)
	s.busy = true
	_, err := s.SelectAt(v(30, 20))
	assert.ErrorIs(t, err, ErrBusy)
	assert.ErrorIs(t, s.Pan(v(1, 1)), ErrBusy)
	_, err = s.AddRow()
	assert.ErrorIs(t, err, ErrBusy)
	s.busy = false
}

func TestHandlersMayCallBack(t *testing.T) {
	s := newSession(t)
	s.SetPredictor(bend.PredictorFunc(func(thickness, width, angle float64, material bend.Material) (float64, error) {
		return 1.5, nil
	}))

	var events []SequenceEvent
	s.OnSequenceChanged(func(ev SequenceEvent) {
		events = append(events, ev)
		if len(events) == 1 {
			_, err := s.Calculate()
			assert.NoError(t, err, "handlers run after the guard is released")
		}
	})

	click(t, s, v(30, 20))
	require.Len(t, events, 2)
	assert.InDelta(t, 30, events[0].TotalLength, 1e-9)
	assert.InDelta(t, 1.5, events[1].TotalBD, 1e-9)
	assert.InDelta(t, 28.5, events[1].EffectiveLength, 1e-9)
}

func TestCalculate(t *testing.T) {
	s := newSession(t)
	click(t, s, v(30, 20))
	click(t, s, v(80, 20))

	_, err := s.Calculate()
	assert.ErrorIs(t, err, ErrNoPredictor)

	var got sequence.Params
	s.SetParams(sequence.Params{Thickness: 2, Width: 16, Material: bend.MaterialStainless})
	s.SetPredictor(bend.PredictorFunc(func(thickness, width, angle float64, material bend.Material) (float64, error) {
		got = sequence.Params{Thickness: thickness, Width: width, Material: material}
		return 2, nil
	}))

	_, err = s.EditRow(1, sequence.FieldAngle, "0")
	require.NoError(t, err)

	totals, err := s.Calculate()
	require.NoError(t, err)
	assert.Equal(t, s.Params(), got)
	assert.InDelta(t, 80, totals.Length, 1e-9)
	assert.InDelta(t, 2, totals.BD, 1e-9)
	assert.InDelta(t, 28+50, totals.EffectiveLength, 1e-9)
	assert.Equal(t, totals, s.Totals())

	_, err = s.EditRow(0, sequence.FieldAngle, "")
	require.NoError(t, err)
	var lastErr error
	s.OnSequenceChanged(func(ev SequenceEvent) { lastErr = ev.Err })
	_, err = s.Calculate()
	var verr *sequence.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, err, lastErr)
	assert.Equal(t, totals, s.Totals(), "failed calculations keep the last totals")
}

func TestManualPositionFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gobend.toml")
	require.NoError(t, os.WriteFile(path, []byte("[sequence]\nmanual_position = 0\n"), 0o644))
	cfg, err := config.Load(path)
	require.NoError(t, err)

	s := New(OptionsFromConfig(cfg), slog.New(slog.NewTextHandler(io.Discard, nil)))
	row, err := s.AddRow()
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.Entries()[row].Position)
	assert.Equal(t, sequence.DefaultAngle, s.Entries()[row].Angle)
}
