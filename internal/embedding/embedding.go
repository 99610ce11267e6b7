package embedding

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnavailable indicates the embedding backend could not be reached.
var ErrUnavailable = errors.New("embedding backend unavailable")

// ErrFailed indicates the embedding backend was reached but failed to
// produce a vector.
var ErrFailed = errors.New("embedding failed")

// Embedding is the interface every embedding model client implements.
// Embed is synchronous and uncached: embedding the same text twice performs
// two backend calls.
type Embedding interface {
	// Embed generates the embedding vector for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embedding vectors for a batch of texts.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Healthy reports whether the configured model is reachable.
	Healthy(ctx context.Context) bool
}

// NewModel creates an Embedding client for the given provider.
func NewModel(provider, model, apiKey, baseURL string) (Embedding, error) {
	switch provider {
	case "ollama":
		return NewOllamaModel(model, baseURL)
	case "openai":
		return NewOpenAIModel(model, apiKey, baseURL)
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", provider)
	}
}
