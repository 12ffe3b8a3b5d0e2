package session

import (
	"github.com/philipparndt/gobend/internal/bend"
	"github.com/philipparndt/gobend/internal/sequence"
)

// Rows returns the table rows including the trailing placeholder
func (s *Session) Rows() []sequence.Row {
	return s.seq.Rows()
}

// Entries returns the sequence entries in table order
func (s *Session) Entries() []sequence.Entry {
	return s.seq.Entries()
}

// Totals returns the result of the last successful calculation
func (s *Session) Totals() sequence.Totals {
	return s.totals
}

// EditRow applies a cell edit and returns the row the entry ends up in
func (s *Session) EditRow(row int, field sequence.Field, value string) (int, error) {
	if err := s.begin(); err != nil {
		return row, err
	}
	defer s.end()

	newRow, err := s.seq.Edit(row, field, value)
	if err != nil {
		return row, err
	}
	s.emitSequence(nil)
	return newRow, nil
}

// AddRow appends a manual row and returns its index
func (s *Session) AddRow() (int, error) {
	if err := s.begin(); err != nil {
		return -1, err
	}
	defer s.end()

	row := s.seq.AddManual()
	s.emitSequence(nil)
	return row, nil
}

// RemoveRow deletes a row. Removing a line row also deselects the line.
func (s *Session) RemoveRow(row int) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	entry, err := s.seq.Entry(row)
	if err != nil {
		return err
	}
	if !entry.Manual() {
		if s.scene == nil || !s.scene.IsSelected(entry.Line) {
			return s.violationFor(entry)
		}
	}

	if _, err := s.seq.Remove(row); err != nil {
		return err
	}
	if !entry.Manual() {
		if err := s.scene.SetSelected(entry.Line, false); err != nil {
			return err
		}
		s.emitSelection(entry.Line, false)
	}
	s.emitSequence(nil)
	return nil
}

func (s *Session) violationFor(entry sequence.Entry) error {
	if s.scene == nil {
		return &ConsistencyError{Line: entry.Line, Detail: "sequence entry without a drawing"}
	}
	return s.violation(entry.Line)
}

// SetParams sets the sheet parameters used by Calculate
func (s *Session) SetParams(params sequence.Params) {
	s.params = params
}

// Params returns the sheet parameters
func (s *Session) Params() sequence.Params {
	return s.params
}

// SetPredictor sets the bend deduction predictor used by Calculate
func (s *Session) SetPredictor(p bend.Predictor) {
	s.predictor = p
}

// Calculate computes the bend deduction of every row and the totals
func (s *Session) Calculate() (sequence.Totals, error) {
	if err := s.begin(); err != nil {
		return sequence.Totals{}, err
	}
	defer s.end()

	if s.predictor == nil {
		return sequence.Totals{}, ErrNoPredictor
	}

	totals, err := s.seq.Calculate(s.params, s.predictor)
	if err != nil {
		s.log.Warn("calculation aborted", "error", err)
		s.emitSequence(err)
		return totals, err
	}

	s.totals = totals
	s.log.Info("calculation finished",
		"rows", s.seq.Len(),
		"length", totals.Length,
		"bd", totals.BD,
		"effective_length", totals.EffectiveLength)
	s.emitSequence(nil)
	return totals, nil
}
