package sequence

import (
	"fmt"
	"strings"
)

// Field names an editable column of the segment table
type Field string

const (
	FieldLength   Field = "length"
	FieldAngle    Field = "angle"
	FieldBD       Field = "bd"
	FieldPosition Field = "position"
)

// ParseField parses a column name
func ParseField(s string) (Field, error) {
	switch f := Field(strings.ToLower(strings.TrimSpace(s))); f {
	case FieldLength, FieldAngle, FieldBD, FieldPosition:
		return f, nil
	default:
		return "", fmt.Errorf("unknown field %q", s)
	}
}

// Row is one line of the tabular presentation. The last row is always the
// placeholder that opens a new manual entry.
type Row struct {
	Entry
	Placeholder bool
}

// Cells formats the row as length, angle and BD cells
func (r Row) Cells() [3]string {
	if r.Placeholder {
		return [3]string{"+", "", ""}
	}
	bd := ""
	if r.HasBD {
		bd = fmt.Sprintf("%.2f", r.BD)
	}
	return [3]string{fmt.Sprintf("%.2f", r.Length), r.Angle, bd}
}

// Rows returns the table rows followed by the placeholder row
func (s *Sequence) Rows() []Row {
	rows := make([]Row, 0, len(s.entries)+1)
	for _, e := range s.entries {
		rows = append(rows, Row{Entry: e})
	}
	return append(rows, Row{Placeholder: true})
}

// IsPlaceholder reports whether row is the trailing placeholder
func (s *Sequence) IsPlaceholder(row int) bool {
	return row == len(s.entries)
}

// Edit applies a user edit to a cell. Angle text is stored as typed; a
// position edit moves a manual row. Length and BD are derived. The
// returned row is where the edited entry ends up.
func (s *Sequence) Edit(row int, field Field, value string) (int, error) {
	switch field {
	case FieldAngle:
		return row, s.SetAngle(row, value)
	case FieldPosition:
		pos, err := ParseDecimal(value)
		if err != nil {
			return row, &ValidationError{Row: row, Field: field, Value: value, Err: err}
		}
		return s.SetPosition(row, pos)
	case FieldLength, FieldBD:
		if _, err := s.Entry(row); err != nil {
			return row, err
		}
		return row, fmt.Errorf("%s: %w", field, ErrReadOnly)
	default:
		return row, fmt.Errorf("unknown field %q", field)
	}
}
