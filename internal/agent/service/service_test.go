package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"searchmind/internal/rag/pipeline"
	"searchmind/internal/rag/schema"
	"searchmind/internal/rag/splitters"
	"searchmind/internal/rag/storages/vectorstore"
	"searchmind/pkg/logger"
)

type stubEmbedder struct{}

func (stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return []float32{1, 0}, nil
}

func (e stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{1, 0}
	}
	return vectors, nil
}

func (stubEmbedder) Healthy(ctx context.Context) bool { return true }

type stubLLM struct {
	healthy bool
	err     error
}

func (m *stubLLM) Generate(ctx context.Context, prompt, contextBlock string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if contextBlock == "" {
		return "no material", nil
	}
	return "grounded", nil
}

func (m *stubLLM) Healthy(ctx context.Context) bool { return m.healthy }

func newTestService(t *testing.T, model *stubLLM) (*AgentService, *vectorstore.MemoryStore) {
	t.Helper()
	log := logger.New("test")
	store := vectorstore.NewMemoryStore()
	embedder := stubEmbedder{}

	ingestor := pipeline.NewIngestor(splitters.NewParagraphSplitter(), embedder, store, log)
	retriever := pipeline.NewRetriever(embedder, store, log)
	answerer := pipeline.NewAnswerer(retriever, model, log, 0, 0)

	svc := NewAgentService(ingestor, answerer, store, model, embedder, schema.DefaultChunkOptions(), log)
	return svc, store
}

func TestIngestTextAndStatistics(t *testing.T) {
	svc, _ := newTestService(t, &stubLLM{healthy: true})
	ctx := context.Background()

	chunks, err := svc.IngestText(ctx, "a short document", "note.txt")
	require.NoError(t, err)
	assert.Equal(t, 1, chunks)

	stats, err := svc.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalDocuments)
	require.NotNil(t, stats.LastUpdated)
}

func TestIngestUploadRejectsUnsupportedExtension(t *testing.T) {
	svc, _ := newTestService(t, &stubLLM{healthy: true})

	_, err := svc.IngestUpload(context.Background(), "payload.exe", []byte("x"))
	assert.ErrorIs(t, err, schema.ErrValidation)
}

func TestIngestDirectoryBestEffort(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("first document"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.md"), []byte("second document"), 0o644))
	// Corrupt PDF: the loader fails, the other files still land.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.pdf"), []byte("not a pdf"), 0o644))
	// Unsupported files are skipped silently.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skip.bin"), []byte{0x00}, 0o644))

	svc, store := newTestService(t, &stubLLM{healthy: true})
	results, err := svc.IngestDirectory(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, results, 3)

	byFile := make(map[string]FileResult, len(results))
	for _, r := range results {
		byFile[r.File] = r
	}
	assert.Empty(t, byFile["a.txt"].Error)
	assert.Equal(t, 1, byFile["a.txt"].Chunks)
	assert.Empty(t, byFile["b.md"].Error)
	assert.Equal(t, 1, byFile["b.md"].Chunks)
	assert.NotEmpty(t, byFile["c.pdf"].Error)
	assert.Zero(t, byFile["c.pdf"].Chunks)

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestIngestDirectoryEmpty(t *testing.T) {
	svc, _ := newTestService(t, &stubLLM{healthy: true})

	results, err := svc.IngestDirectory(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, results)

	_, err = svc.IngestDirectory(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestAnswerUsesIngestedDocuments(t *testing.T) {
	svc, _ := newTestService(t, &stubLLM{healthy: true})
	ctx := context.Background()

	_, err := svc.IngestText(ctx, "the capital of France is Paris", "facts.txt")
	require.NoError(t, err)

	answer, err := svc.Answer(ctx, "what is the capital of France?", 0)
	require.NoError(t, err)
	assert.Equal(t, "grounded", answer)
}

func TestClearEmptiesStore(t *testing.T) {
	svc, store := newTestService(t, &stubLLM{healthy: true})
	ctx := context.Background()

	_, err := svc.IngestText(ctx, strings.Repeat("text ", 10), "note.txt")
	require.NoError(t, err)
	require.NoError(t, svc.Clear(ctx))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCheckHealth(t *testing.T) {
	svc, _ := newTestService(t, &stubLLM{healthy: true})
	health := svc.CheckHealth(context.Background())
	assert.True(t, health.Model)
	assert.True(t, health.Store)

	svc, _ = newTestService(t, &stubLLM{healthy: false, err: errors.New("down")})
	health = svc.CheckHealth(context.Background())
	assert.False(t, health.Model)
	assert.True(t, health.Store)
}
