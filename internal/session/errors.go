package session

import (
	"errors"
	"fmt"

	"github.com/philipparndt/gobend/internal/scene"
)

var (
	// ErrBusy is returned when an operation starts while another one is
	// still mutating the session
	ErrBusy = errors.New("session is busy with another operation")
	// ErrNoDrawing is returned by operations that need a loaded drawing
	ErrNoDrawing = errors.New("no drawing loaded")
	// ErrNoPredictor is returned by Calculate when no predictor is set
	ErrNoPredictor = errors.New("no bend deduction predictor configured")
)

// ConsistencyError reports a broken correspondence between selected scene
// lines and sequence entries. It indicates a bug; the session is left as it was.
type ConsistencyError struct {
	Line   scene.LineID
	Detail string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("consistency violation for line %d: %s", e.Line, e.Detail)
}
