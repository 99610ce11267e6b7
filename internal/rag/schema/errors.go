package schema

import (
	"errors"
	"fmt"
)

// ErrValidation indicates malformed input (chunk options, query parameters).
// It is returned before any capability call is made.
var ErrValidation = errors.New("validation failed")

// IngestionError reports a failed ingestion of a single document. It carries
// the index of the chunk that failed and how many chunks were persisted
// before the failure, so callers can tell partial progress from no progress.
type IngestionError struct {
	// Source is the document the ingestion was running for.
	Source string
	// Chunk is the 0-based index of the chunk that failed.
	Chunk int
	// Persisted is the number of chunks successfully stored before the failure.
	Persisted int
	// Err is the underlying cause.
	Err error
}

func (e *IngestionError) Error() string {
	return fmt.Sprintf("ingestion of %q failed at chunk %d after persisting %d chunks: %v",
		e.Source, e.Chunk, e.Persisted, e.Err)
}

func (e *IngestionError) Unwrap() error {
	return e.Err
}
