package llm

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAI is an LLM client for the OpenAI chat completions API. It also works
// against OpenAI-compatible backends via a custom base URL.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates a new OpenAI client.
func NewOpenAI(model, apiKey, baseURL string) (*OpenAI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &OpenAI{client: openai.NewClientWithConfig(cfg), model: model}, nil
}

// Generate answers prompt using contextBlock as grounding material. With no
// context it returns the fixed no-grounding reply instead of calling the
// backend.
func (o *OpenAI) Generate(ctx context.Context, prompt, contextBlock string) (string, error) {
	if strings.TrimSpace(contextBlock) == "" {
		return NoGroundingReply, nil
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt(contextBlock)},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.4,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: empty completion", ErrFailed)
	}

	return resp.Choices[0].Message.Content, nil
}

// Healthy reports whether the backend answers a model listing request.
func (o *OpenAI) Healthy(ctx context.Context) bool {
	_, err := o.client.ListModels(ctx)
	return err == nil
}

var _ LLM = (*OpenAI)(nil)
