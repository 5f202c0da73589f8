package extract

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat marks a file extension with no registered reader.
// The dispatcher degrades these to a placeholder record instead of failing;
// the sentinel exists for callers that need to distinguish the outcome.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ExtractionError wraps a genuine reader failure (corrupt PDF, undecodable
// image). These propagate to the caller unmodified, unlike unsupported
// formats which soft-degrade.
type ExtractionError struct {
	Filename  string
	Extension string
	Err       error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s (%s): %v", e.Filename, e.Extension, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
