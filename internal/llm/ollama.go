package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	ollama "github.com/ollama/ollama/api"
)

// Ollama is an LLM client for the Ollama chat API.
type Ollama struct {
	client *ollama.Client
	model  string
}

// NewOllama creates a new Ollama client. An empty baseURL defaults to the
// local Ollama address.
func NewOllama(model, baseURL string) (*Ollama, error) {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	hc := &http.Client{
		Timeout: 120 * time.Second,
	}

	return &Ollama{client: ollama.NewClient(parsedURL, hc), model: model}, nil
}

// Generate answers prompt using contextBlock as grounding material. With no
// context it returns the fixed no-grounding reply instead of calling the
// backend.
func (o *Ollama) Generate(ctx context.Context, prompt, contextBlock string) (string, error) {
	if strings.TrimSpace(contextBlock) == "" {
		return NoGroundingReply, nil
	}

	stream := false
	var result ollama.ChatResponse

	err := o.client.Chat(ctx, &ollama.ChatRequest{
		Model: o.model,
		Messages: []ollama.Message{
			{Role: "system", Content: systemPrompt(contextBlock)},
			{Role: "user", Content: prompt},
		},
		Stream: &stream,
		Options: map[string]interface{}{
			"temperature": 0.4,
			"top_p":       0.9,
			"top_k":       40,
		},
	}, func(resp ollama.ChatResponse) error {
		result = resp
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if result.Message.Content == "" {
		return "", fmt.Errorf("%w: empty completion", ErrFailed)
	}

	return result.Message.Content, nil
}

// Healthy reports whether the configured chat model is present on the
// backend.
func (o *Ollama) Healthy(ctx context.Context) bool {
	resp, err := o.client.List(ctx)
	if err != nil {
		return false
	}
	base := strings.SplitN(o.model, ":", 2)[0]
	for _, model := range resp.Models {
		if strings.Contains(model.Name, base) {
			return true
		}
	}
	return false
}

var _ LLM = (*Ollama)(nil)
