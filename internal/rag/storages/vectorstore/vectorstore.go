package vectorstore

import (
	"context"
	"errors"
	"time"

	"searchmind/internal/rag/schema"
)

// ErrUnavailable indicates the store cannot be reached. All store operations
// surface it on connectivity loss; the core never retries it.
var ErrUnavailable = errors.New("vector store unavailable")

// VectorStore persists embedding records and answers nearest-neighbor
// queries. Implementations must be safe for concurrent use; connection
// pooling and timeouts are owned here, not by the callers.
type VectorStore interface {
	// Insert persists one (content, embedding, metadata) triple. The store
	// assigns the creation timestamp. Records are never updated in place.
	Insert(ctx context.Context, content string, vector []float32, meta schema.Metadata) error

	// Nearest returns up to k records whose cosine similarity to vector
	// exceeds threshold, most similar first. Ties keep a deterministic order
	// within one implementation. No matches is a valid empty result.
	Nearest(ctx context.Context, vector []float32, k int, threshold float64) ([]schema.RetrievedDocument, error)

	// Count returns the number of persisted records.
	Count(ctx context.Context) (int, error)

	// LastUpdated returns the most recent insert timestamp, or nil when the
	// store is empty.
	LastUpdated(ctx context.Context) (*time.Time, error)

	// DeleteAll removes every record.
	DeleteAll(ctx context.Context) error
}
