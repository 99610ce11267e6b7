package llm

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnavailable indicates the generation backend could not be reached.
var ErrUnavailable = errors.New("generation backend unavailable")

// ErrFailed indicates the generation backend was reached but failed to
// produce an answer.
var ErrFailed = errors.New("generation failed")

// LLM is the interface for a model that answers a prompt grounded in a
// retrieved context block. An empty context is valid: the model then answers
// that it has no material to ground on.
type LLM interface {
	// Generate produces an answer for prompt using contextBlock as grounding.
	Generate(ctx context.Context, prompt, contextBlock string) (string, error)

	// Healthy reports whether the configured model is reachable.
	Healthy(ctx context.Context) bool
}

// NewModel creates an LLM client for the given provider.
func NewModel(provider, model, apiKey, baseURL string) (LLM, error) {
	switch provider {
	case "ollama":
		return NewOllama(model, baseURL)
	case "openai":
		return NewOpenAI(model, apiKey, baseURL)
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", provider)
	}
}
