package pipeline

import (
	"context"
	"fmt"
	"strings"

	"searchmind/internal/embedding"
	"searchmind/internal/rag/schema"
	"searchmind/internal/rag/storages/vectorstore"
	"searchmind/pkg/logger"
)

// Retrieval defaults and bounds.
const (
	DefaultMaxResults          = 5
	MaxResultsLimit            = 20
	DefaultSimilarityThreshold = 0.7
)

// Retriever embeds a query and asks the store for the most similar records.
type Retriever struct {
	embedder embedding.Embedding
	store    vectorstore.VectorStore
	log      *logger.Logger
}

// NewRetriever creates a new Retriever.
func NewRetriever(embedder embedding.Embedding, store vectorstore.VectorStore, log *logger.Logger) *Retriever {
	return &Retriever{embedder: embedder, store: store, log: log}
}

// Search returns up to maxResults records whose similarity to query exceeds
// threshold, most similar first. Zero matches is a valid empty result.
// Arguments are validated before any capability call.
func (r *Retriever) Search(ctx context.Context, query string, maxResults int, threshold float64) ([]schema.RetrievedDocument, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query must not be empty", schema.ErrValidation)
	}
	if maxResults <= 0 || maxResults > MaxResultsLimit {
		return nil, fmt.Errorf("%w: maxResults must be in 1..%d, got %d", schema.ErrValidation, MaxResultsLimit, maxResults)
	}
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("%w: similarity threshold must be in [0,1], got %v", schema.ErrValidation, threshold)
	}

	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	results, err := r.store.Nearest(ctx, vector, maxResults, threshold)
	if err != nil {
		return nil, err
	}

	r.log.Debug(fmt.Sprintf("Found %d similar documents", len(results)))
	return results, nil
}
