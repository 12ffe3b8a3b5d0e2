package main

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gobend/internal/config"
	"github.com/philipparndt/gobend/internal/scene"
	"github.com/philipparndt/gobend/internal/sequence"
	"github.com/philipparndt/gobend/pkg/drawing"
	"github.com/philipparndt/gobend/pkg/geometry"
)

func v(x, y float64) geometry.Vector2 {
	return geometry.NewVector2(x, y)
}

// newTestApp loads a 100x40 part with bend lines at X=30 and X=80, both
// selected. Manual rows land at X=50, between the two line rows.
func newTestApp(t *testing.T) *App {
	t.Helper()
	test.NewTempApp(t)

	cfg := config.Default()
	dir := t.TempDir()
	cfg.Data.TrainingFile = filepath.Join(dir, "data.json")
	cfg.Data.DieConfigFile = filepath.Join(dir, "dies.json")
	cfg.Sequence.ManualPosition = 50

	w := test.NewWindow(nil)
	t.Cleanup(w.Close)
	a := newApp(w, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := a.session.Load("part", []drawing.Record{
		drawing.Line(v(0, 0), v(100, 0), 7),
		drawing.Line(v(100, 0), v(100, 40), 7),
		drawing.Line(v(100, 40), v(0, 40), 7),
		drawing.Line(v(0, 40), v(0, 0), 7),
		drawing.Line(v(30, 0), v(30, 40), scene.DefaultBendColor),
		drawing.Line(v(80, 0), v(80, 40), scene.DefaultBendColor),
	})
	require.NoError(t, err)
	for _, x := range []float64{30, 80} {
		toggled, err := a.session.SelectAt(v(x, 20))
		require.NoError(t, err)
		require.True(t, toggled)
	}
	return a
}

func TestPlaceholderSelectsInsertedRow(t *testing.T) {
	a := newTestApp(t)

	a.table.Select(widget.TableCellID{Row: 2, Col: 0})

	entries := a.session.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, 1, a.selectedRow)
	assert.True(t, entries[a.selectedRow].Manual())
}

func TestToggleClearsSelection(t *testing.T) {
	a := newTestApp(t)
	a.table.Select(widget.TableCellID{Row: 1, Col: 0})
	require.Equal(t, 1, a.selectedRow)

	toggled, err := a.session.SelectAt(v(30, 20))
	require.NoError(t, err)
	require.True(t, toggled)

	assert.Equal(t, -1, a.selectedRow)
	a.applyEdit()
	assert.Len(t, a.session.Entries(), 1)
}

func TestApplyEditFollowsMovedRow(t *testing.T) {
	a := newTestApp(t)
	a.table.Select(widget.TableCellID{Row: 2, Col: 0})
	require.Equal(t, 1, a.selectedRow)

	a.fieldSelect.SetSelected(string(sequence.FieldPosition))
	a.valueEntry.SetText("90")
	a.applyEdit()

	entries := a.session.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, 2, a.selectedRow)
	assert.True(t, entries[a.selectedRow].Manual())
	assert.InDelta(t, 90, entries[a.selectedRow].Position, 1e-9)
}
