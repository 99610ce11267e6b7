package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"searchmind/internal/agent/service"
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

type stubLLM struct{ healthy bool }

func (m *stubLLM) Generate(ctx context.Context, prompt, contextBlock string) (string, error) {
	if contextBlock == "" {
		return "no material", nil
	}
	return "grounded", nil
}

func (m *stubLLM) Healthy(ctx context.Context) bool { return m.healthy }

func newTestRouter(t *testing.T, healthy bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.New("test")
	store := vectorstore.NewMemoryStore()
	embedder := stubEmbedder{}
	model := &stubLLM{healthy: healthy}

	ingestor := pipeline.NewIngestor(splitters.NewParagraphSplitter(), embedder, store, log)
	retriever := pipeline.NewRetriever(embedder, store, log)
	answerer := pipeline.NewAnswerer(retriever, model, log, 0, 0)
	svc := service.NewAgentService(ingestor, answerer, store, model, embedder, schema.DefaultChunkOptions(), log)

	return SetupRouter(NewHandler(svc, log))
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func uploadFile(t *testing.T, r *gin.Engine, filename, content string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/agent/documents", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestQueryValidation(t *testing.T) {
	r := newTestRouter(t, true)

	w := doJSON(t, r, http.MethodPost, "/api/v1/agent/query", gin.H{"query": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/agent/query", gin.H{"query": strings.Repeat("q", 1001)})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/agent/query", gin.H{"query": "ok", "maxResults": 21})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQueryAnswers(t *testing.T) {
	r := newTestRouter(t, true)

	w := uploadFile(t, r, "facts.txt", "the capital of France is Paris")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/agent/query", gin.H{"query": "capital of France?"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "capital of France?", resp["query"])
	assert.Equal(t, "grounded", resp["response"])
	assert.NotEmpty(t, resp["timestamp"])
	assert.NotEmpty(t, resp["processingTime"])
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	r := newTestRouter(t, true)

	w := uploadFile(t, r, "malware.exe", "nope")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unsupported file type")
}

func TestUploadRequiresFileField(t *testing.T) {
	r := newTestRouter(t, true)

	w := doJSON(t, r, http.MethodPost, "/api/v1/agent/documents", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatisticsAndClear(t *testing.T) {
	r := newTestRouter(t, true)

	w := uploadFile(t, r, "note.txt", "a small note")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/agent/statistics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"totalDocuments":1`)

	w = doJSON(t, r, http.MethodDelete, "/api/v1/agent/documents", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/agent/statistics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"totalDocuments":0`)
}

func TestHealthDegraded(t *testing.T) {
	r := newTestRouter(t, true)
	w := doJSON(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	r = newTestRouter(t, false)
	w = doJSON(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "degraded")
}
