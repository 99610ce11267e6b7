package pipeline

import (
	"context"
	"errors"
	"fmt"

	"searchmind/internal/llm"
	"searchmind/internal/rag/schema"
	"searchmind/pkg/logger"
)

// Answerer composes retrieval, context assembly and generation into one
// answer operation. It is stateless between calls; no conversation memory is
// carried.
type Answerer struct {
	retriever  *Retriever
	llm        llm.LLM
	log        *logger.Logger
	maxResults int
	threshold  float64
}

// NewAnswerer creates a new Answerer. Non-positive maxResults or threshold
// fall back to the retrieval defaults.
func NewAnswerer(retriever *Retriever, model llm.LLM, log *logger.Logger, maxResults int, threshold float64) *Answerer {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}
	return &Answerer{
		retriever:  retriever,
		llm:        model,
		log:        log,
		maxResults: maxResults,
		threshold:  threshold,
	}
}

// Answer retrieves grounding material for query and generates an answer.
// When retrieval finds nothing the generator is still called with an empty
// context so the caller always gets a response. Any failure triggers exactly
// one retrieval-free fallback generation before the error is surfaced;
// validation errors are surfaced immediately without touching a backend.
func (a *Answerer) Answer(ctx context.Context, query string, maxResults int) (string, error) {
	if maxResults <= 0 {
		maxResults = a.maxResults
	}

	answer, err := a.answerOnce(ctx, query, maxResults)
	if err == nil {
		return answer, nil
	}
	if errors.Is(err, schema.ErrValidation) {
		return "", err
	}

	a.log.Warn(fmt.Sprintf("Answer pipeline failed, retrying without retrieval: %v", err))

	fallback, ferr := a.llm.Generate(ctx, query, "")
	if ferr != nil {
		return "", fmt.Errorf("answer failed after retrieval-free fallback: %w", ferr)
	}
	return fallback, nil
}

func (a *Answerer) answerOnce(ctx context.Context, query string, maxResults int) (string, error) {
	docs, err := a.retriever.Search(ctx, query, maxResults, a.threshold)
	if err != nil {
		return "", err
	}

	if len(docs) > 0 {
		a.log.Debug(fmt.Sprintf("Generating answer with context from %d documents", len(docs)))
	}

	return a.llm.Generate(ctx, query, BuildContext(docs))
}
