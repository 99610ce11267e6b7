package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"searchmind/internal/rag/schema"
	"searchmind/internal/rag/storages/vectorstore"
)

func TestAnswererGroundedAnswer(t *testing.T) {
	store := vectorstore.NewMemoryStore()
	seedStore(t, store)

	model := &fakeLLM{}
	retriever := NewRetriever(newFakeEmbedder([]float32{1, 0}), store, testLogger())
	answerer := NewAnswerer(retriever, model, testLogger(), 0, 0)

	answer, err := answerer.Answer(context.Background(), "what matches?", 0)
	require.NoError(t, err)
	assert.Equal(t, `grounded answer to "what matches?"`, answer)

	require.Len(t, model.contexts, 1)
	assert.Contains(t, model.contexts[0], "===== DOCUMENT 1 =====")
}

func TestAnswererEmptyStoreStillAnswers(t *testing.T) {
	model := &fakeLLM{}
	retriever := NewRetriever(newFakeEmbedder([]float32{1, 0}), vectorstore.NewMemoryStore(), testLogger())
	answerer := NewAnswerer(retriever, model, testLogger(), 0, 0)

	answer, err := answerer.Answer(context.Background(), "anything there?", 0)
	require.NoError(t, err)
	assert.Equal(t, "ungrounded: anything there?", answer)

	// Exactly one generation, with no context: there was no failure, so no
	// fallback retry either.
	require.Len(t, model.contexts, 1)
	assert.Equal(t, "", model.contexts[0])
}

func TestAnswererRetrievalFailureFallsBackOnce(t *testing.T) {
	embedder := newFakeEmbedder([]float32{1, 0})
	embedder.failFrom = 1

	model := &fakeLLM{}
	retriever := NewRetriever(embedder, vectorstore.NewMemoryStore(), testLogger())
	answerer := NewAnswerer(retriever, model, testLogger(), 0, 0)

	answer, err := answerer.Answer(context.Background(), "still works?", 0)
	require.NoError(t, err)
	assert.Equal(t, "ungrounded: still works?", answer)

	require.Len(t, model.contexts, 1)
	assert.Equal(t, "", model.contexts[0])
}

func TestAnswererGenerationFailureFallsBackOnce(t *testing.T) {
	store := vectorstore.NewMemoryStore()
	seedStore(t, store)

	// First generation fails, the fallback succeeds.
	model := &fakeLLM{err: errors.New("model crashed"), failures: 1}
	retriever := NewRetriever(newFakeEmbedder([]float32{1, 0}), store, testLogger())
	answerer := NewAnswerer(retriever, model, testLogger(), 0, 0)

	answer, err := answerer.Answer(context.Background(), "resilient?", 0)
	require.NoError(t, err)
	assert.Equal(t, "ungrounded: resilient?", answer)

	require.Len(t, model.contexts, 2)
	assert.NotEqual(t, "", model.contexts[0])
	assert.Equal(t, "", model.contexts[1])
}

func TestAnswererFallbackFailureSurfacesError(t *testing.T) {
	model := &fakeLLM{err: errors.New("model down")}
	retriever := NewRetriever(newFakeEmbedder([]float32{1, 0}), vectorstore.NewMemoryStore(), testLogger())
	answerer := NewAnswerer(retriever, model, testLogger(), 0, 0)

	_, err := answerer.Answer(context.Background(), "broken?", 0)
	require.Error(t, err)
	assert.ErrorContains(t, err, "retrieval-free fallback")
	assert.Len(t, model.contexts, 2)
}

func TestAnswererValidationErrorSkipsFallback(t *testing.T) {
	model := &fakeLLM{}
	retriever := NewRetriever(newFakeEmbedder([]float32{1, 0}), vectorstore.NewMemoryStore(), testLogger())
	answerer := NewAnswerer(retriever, model, testLogger(), 0, 0)

	_, err := answerer.Answer(context.Background(), "   ", 0)
	assert.ErrorIs(t, err, schema.ErrValidation)
	assert.Empty(t, model.contexts)

	_, err = answerer.Answer(context.Background(), "valid query", 50)
	assert.ErrorIs(t, err, schema.ErrValidation)
	assert.Empty(t, model.contexts)
}
