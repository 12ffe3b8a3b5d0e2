package scene

import (
	"errors"
	"fmt"
)

// ErrNotCandidate is returned when selecting a primitive that is not a bend candidate
var ErrNotCandidate = errors.New("primitive is not a bend candidate")

// IsSelected reports whether the line is currently selected
func (s *Scene) IsSelected(id LineID) bool {
	return s.valid(id) && s.selected[id]
}

// SetSelected changes the selection state of a bend candidate
func (s *Scene) SetSelected(id LineID, selected bool) error {
	if !s.valid(id) {
		return fmt.Errorf("unknown line %d", id)
	}
	if !s.primitives[id].BendCandidate {
		return fmt.Errorf("line %d: %w", id, ErrNotCandidate)
	}
	s.selected[id] = selected
	return nil
}

// Selected returns the selected lines in arena order
func (s *Scene) Selected() []LineID {
	ids := make([]LineID, 0)
	for i, sel := range s.selected {
		if sel {
			ids = append(ids, LineID(i))
		}
	}
	return ids
}

// ClearSelection deselects every line
func (s *Scene) ClearSelection() {
	for i := range s.selected {
		s.selected[i] = false
	}
}
