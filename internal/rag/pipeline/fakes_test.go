package pipeline

import (
	"context"
	"errors"
	"fmt"

	"searchmind/internal/rag/schema"
	"searchmind/internal/rag/storages/vectorstore"
	"searchmind/pkg/logger"
)

// fakeEmbedder returns a fixed vector for every input and can be programmed
// to fail from a given call onward.
type fakeEmbedder struct {
	calls    int
	failFrom int // fail on call number failFrom (1-based), 0 disables
	vector   []float32
}

func newFakeEmbedder(vector []float32) *fakeEmbedder {
	return &fakeEmbedder{vector: vector}
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.calls++
	if f.failFrom > 0 && f.calls >= f.failFrom {
		return nil, errors.New("embedding backend exploded")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.vector, nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vector, err := f.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors[i] = vector
	}
	return vectors, nil
}

func (f *fakeEmbedder) Healthy(ctx context.Context) bool { return f.failFrom == 0 }

// fakeLLM records the context blocks it receives and echoes whether it got
// grounding material.
type fakeLLM struct {
	contexts []string
	err      error
	failures int // number of initial calls that fail when err is set; 0 means all
}

func (f *fakeLLM) Generate(ctx context.Context, prompt, contextBlock string) (string, error) {
	f.contexts = append(f.contexts, contextBlock)
	if f.err != nil && (f.failures == 0 || len(f.contexts) <= f.failures) {
		return "", f.err
	}
	if contextBlock == "" {
		return "ungrounded: " + prompt, nil
	}
	return fmt.Sprintf("grounded answer to %q", prompt), nil
}

func (f *fakeLLM) Healthy(ctx context.Context) bool { return true }

// failingStore delegates to an in-memory store until the configured insert
// call, which fails.
type failingStore struct {
	*vectorstore.MemoryStore
	inserts  int
	failFrom int
}

func (f *failingStore) Insert(ctx context.Context, content string, vector []float32, meta schema.Metadata) error {
	f.inserts++
	if f.failFrom > 0 && f.inserts >= f.failFrom {
		return fmt.Errorf("%w: write refused", vectorstore.ErrUnavailable)
	}
	return f.MemoryStore.Insert(ctx, content, vector, meta)
}

func testLogger() *logger.Logger {
	return logger.New("test")
}
