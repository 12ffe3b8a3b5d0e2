package sequence

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/philipparndt/gobend/internal/scene"
)

// Defaults for new entries
const (
	DefaultAngle          = "90"
	DefaultManualPosition = 100.0
)

var (
	// ErrRowOutOfRange is returned for row indexes that name no entry
	ErrRowOutOfRange = errors.New("row out of range")
	// ErrDuplicateLine is returned when a line is already in the sequence
	ErrDuplicateLine = errors.New("line already in sequence")
	// ErrReadOnly is returned when editing a derived or fixed cell
	ErrReadOnly = errors.New("cell is read-only")
	// ErrNotFinite is returned for cells holding NaN or an infinity
	ErrNotFinite = errors.New("not a finite number")
	// ErrNoLine is returned when selecting without a scene line
	ErrNoLine = errors.New("select needs a scene line")
)

// Entry is one row of the segment table
type Entry struct {
	// Line is the scene line this row was created from, or scene.NoLine
	Line scene.LineID
	// Position is the coordinate of the bend along the measurement axis
	Position float64
	// Length is derived from the sorted positions
	Length float64
	// Angle is the user-editable angle cell text
	Angle string
	// BD is the last computed bend deduction; valid when HasBD is set
	BD    float64
	HasBD bool
}

// Manual reports whether the entry was added by hand
func (e Entry) Manual() bool {
	return e.Line == scene.NoLine
}

// Options configures new entries
type Options struct {
	DefaultAngle   string
	ManualPosition float64
}

// Sequence is the ordered list of selected bend lines and manual rows. It
// is kept sorted by position and every mutation re-derives all lengths.
type Sequence struct {
	entries []Entry
	opts    Options
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{DefaultAngle: DefaultAngle, ManualPosition: DefaultManualPosition}
}

// New creates an empty sequence with the options as given
func New(opts Options) *Sequence {
	return &Sequence{opts: opts}
}

// Len returns the number of entries
func (s *Sequence) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the entries in table order
func (s *Sequence) Entries() []Entry {
	return append([]Entry(nil), s.entries...)
}

// Entry returns the entry at row
func (s *Sequence) Entry(row int) (Entry, error) {
	if row < 0 || row >= len(s.entries) {
		return Entry{}, fmt.Errorf("row %d: %w", row, ErrRowOutOfRange)
	}
	return s.entries[row], nil
}

// Contains reports whether a line has an entry
func (s *Sequence) Contains(line scene.LineID) bool {
	return s.indexOf(line) >= 0
}

// Lines returns the lines that have an entry, in table order
func (s *Sequence) Lines() []scene.LineID {
	lines := make([]scene.LineID, 0, len(s.entries))
	for _, e := range s.entries {
		if !e.Manual() {
			lines = append(lines, e.Line)
		}
	}
	return lines
}

// Select inserts an entry for a line at the given position and returns its
// row. The entry goes before the first entry with a strictly greater
// position, so equal positions keep their selection order.
func (s *Sequence) Select(line scene.LineID, position float64) (int, error) {
	if line == scene.NoLine {
		return -1, ErrNoLine
	}
	if s.Contains(line) {
		return -1, fmt.Errorf("line %d: %w", line, ErrDuplicateLine)
	}
	return s.insert(Entry{Line: line, Position: position, Angle: s.opts.DefaultAngle}), nil
}

// Deselect removes the entry of a line and returns the row it occupied
func (s *Sequence) Deselect(line scene.LineID) (int, bool) {
	row := s.indexOf(line)
	if row < 0 {
		return -1, false
	}
	s.removeAt(row)
	return row, true
}

// Toggle selects the line when absent and deselects it otherwise. It
// reports whether the line is selected afterwards.
func (s *Sequence) Toggle(line scene.LineID, position float64) (bool, error) {
	if _, ok := s.Deselect(line); ok {
		return false, nil
	}
	if _, err := s.Select(line, position); err != nil {
		return false, err
	}
	return true, nil
}

// AddManual inserts a row not tied to any line at the manual position
func (s *Sequence) AddManual() int {
	return s.insert(Entry{Line: scene.NoLine, Position: s.opts.ManualPosition, Angle: s.opts.DefaultAngle})
}

// Remove deletes the entry at row and returns it
func (s *Sequence) Remove(row int) (Entry, error) {
	e, err := s.Entry(row)
	if err != nil {
		return Entry{}, err
	}
	s.removeAt(row)
	return e, nil
}

// Clear removes every entry
func (s *Sequence) Clear() {
	s.entries = nil
}

// SetAngle replaces the angle text of a row. Lengths are not affected.
func (s *Sequence) SetAngle(row int, text string) error {
	if _, err := s.Entry(row); err != nil {
		return err
	}
	s.entries[row].Angle = strings.TrimSpace(text)
	s.entries[row].HasBD = false
	return nil
}

// SetPosition moves a manual row. Positions of line rows are fixed at selection.
func (s *Sequence) SetPosition(row int, position float64) (int, error) {
	e, err := s.Entry(row)
	if err != nil {
		return -1, err
	}
	if !e.Manual() {
		return -1, fmt.Errorf("position of line %d: %w", e.Line, ErrReadOnly)
	}
	s.removeAt(row)
	e.Position = position
	return s.insert(e), nil
}

// TotalLength sums the derived lengths
func (s *Sequence) TotalLength() float64 {
	total := 0.0
	for _, e := range s.entries {
		total += e.Length
	}
	return total
}

// TotalBD sums the computed bend deductions
func (s *Sequence) TotalBD() float64 {
	total := 0.0
	for _, e := range s.entries {
		if e.HasBD {
			total += e.BD
		}
	}
	return total
}

func (s *Sequence) indexOf(line scene.LineID) int {
	if line == scene.NoLine {
		return -1
	}
	for i, e := range s.entries {
		if e.Line == line {
			return i
		}
	}
	return -1
}

func (s *Sequence) insert(e Entry) int {
	row := sort.Search(len(s.entries), func(i int) bool {
		return s.entries[i].Position > e.Position
	})
	s.entries = append(s.entries, Entry{})
	copy(s.entries[row+1:], s.entries[row:])
	s.entries[row] = e
	s.recompute()
	return row
}

func (s *Sequence) removeAt(row int) {
	s.entries = append(s.entries[:row], s.entries[row+1:]...)
	s.recompute()
}

// recompute re-derives every length from the full sorted set
func (s *Sequence) recompute() {
	sort.SliceStable(s.entries, func(i, j int) bool {
		return s.entries[i].Position < s.entries[j].Position
	})
	prev := 0.0
	for i := range s.entries {
		s.entries[i].Length = s.entries[i].Position - prev
		prev = s.entries[i].Position
	}
}

// ParseDecimal parses a number that may use a comma as decimal separator
func ParseDecimal(text string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
	if cleaned == "" {
		return 0, errors.New("empty value")
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number format: %q", text)
	}
	return v, nil
}
