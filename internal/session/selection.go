package session

import (
	"github.com/philipparndt/gobend/internal/scene"
	"github.com/philipparndt/gobend/pkg/geometry"
)

// ClickRelease handles the end of a pointer gesture. Drags were pans and
// never hit-test. It reports whether a bend line was toggled.
func (s *Session) ClickRelease(screen geometry.Vector2, wasDrag bool) (bool, error) {
	if wasDrag {
		return false, nil
	}
	return s.SelectAt(s.view.ToScene(screen))
}

// SelectAt toggles the bend line nearest to a scene point, if one lies
// within the tolerance. The entry position is the measurement-axis
// coordinate of the point on the line closest to p.
func (s *Session) SelectAt(p geometry.Vector2) (bool, error) {
	if err := s.begin(); err != nil {
		return false, err
	}
	defer s.end()

	if s.scene == nil {
		return false, ErrNoDrawing
	}

	hit, ok := s.scene.NearestBendLine(p, s.opts.Tolerance)
	if !ok {
		return false, nil
	}

	selected := s.scene.IsSelected(hit.Line)
	if selected != s.seq.Contains(hit.Line) {
		return false, s.violation(hit.Line)
	}

	if selected {
		s.seq.Deselect(hit.Line)
	} else {
		position := s.opts.Axis.Coordinate(hit.Point)
		if _, err := s.seq.Select(hit.Line, position); err != nil {
			return false, err
		}
	}
	if err := s.scene.SetSelected(hit.Line, !selected); err != nil {
		return false, err
	}

	s.log.Debug("bend line toggled",
		"line", hit.Line,
		"selected", !selected,
		"distance", hit.Distance,
		"entries", s.seq.Len())

	s.emitSelection(hit.Line, !selected)
	s.emitSequence(nil)
	return true, nil
}

func (s *Session) violation(line scene.LineID) error {
	err := &ConsistencyError{Line: line}
	if s.scene.IsSelected(line) {
		err.Detail = "selected line has no sequence entry"
	} else {
		err.Detail = "sequence entry for a line that is not selected"
	}
	s.log.Error("consistency violation", "line", line, "detail", err.Detail)
	return err
}

// CheckConsistency verifies that the selected scene lines and the line
// entries of the sequence correspond one to one
func (s *Session) CheckConsistency() error {
	if s.scene == nil {
		if lines := s.seq.Lines(); len(lines) > 0 {
			return &ConsistencyError{Line: lines[0], Detail: "sequence entry without a drawing"}
		}
		return nil
	}

	seen := make(map[scene.LineID]int)
	for _, line := range s.seq.Lines() {
		seen[line]++
		if seen[line] > 1 {
			return &ConsistencyError{Line: line, Detail: "line has more than one sequence entry"}
		}
		if !s.scene.IsSelected(line) {
			return &ConsistencyError{Line: line, Detail: "sequence entry for a line that is not selected"}
		}
	}
	for _, line := range s.scene.Selected() {
		if seen[line] == 0 {
			return &ConsistencyError{Line: line, Detail: "selected line has no sequence entry"}
		}
	}
	return nil
}
