package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"searchmind/internal/embedding"
	"searchmind/internal/llm"
	"searchmind/internal/rag/loaders"
	"searchmind/internal/rag/pipeline"
	"searchmind/internal/rag/schema"
	"searchmind/internal/rag/storages/vectorstore"
	"searchmind/pkg/logger"
)

// directoryWorkers bounds how many files are ingested concurrently. Chunks
// of one file stay strictly ordered; only whole files run in parallel.
const directoryWorkers = 2

// Statistics summarizes the state of the knowledge base.
type Statistics struct {
	TotalDocuments int        `json:"totalDocuments"`
	LastUpdated    *time.Time `json:"lastUpdated,omitempty"`
}

// Health reports reachability of the agent's backends.
type Health struct {
	Model     bool `json:"model"`
	Embedding bool `json:"embedding"`
	Store     bool `json:"store"`
}

// FileResult is the per-file outcome of a directory ingestion.
type FileResult struct {
	File   string `json:"file"`
	Chunks int    `json:"chunks"`
	Error  string `json:"error,omitempty"`
}

// AgentService is the facade the transports talk to. It owns no state beyond
// its collaborators; all persistence lives in the vector store.
type AgentService struct {
	ingestor  *pipeline.Ingestor
	answerer  *pipeline.Answerer
	store     vectorstore.VectorStore
	model     llm.LLM
	embedder  embedding.Embedding
	log       *logger.Logger
	chunkOpts schema.ChunkOptions
}

// NewAgentService creates a new AgentService.
func NewAgentService(ingestor *pipeline.Ingestor, answerer *pipeline.Answerer, store vectorstore.VectorStore, model llm.LLM, embedder embedding.Embedding, chunkOpts schema.ChunkOptions, log *logger.Logger) *AgentService {
	return &AgentService{
		ingestor:  ingestor,
		answerer:  answerer,
		store:     store,
		model:     model,
		embedder:  embedder,
		log:       log,
		chunkOpts: chunkOpts,
	}
}

// IngestText chunks and persists raw text under the given source name.
func (s *AgentService) IngestText(ctx context.Context, text, sourceName string) (int, error) {
	return s.ingestor.Ingest(ctx, text, sourceName, s.chunkOpts)
}

// IngestUpload extracts text from an uploaded document and persists it. The
// loader is chosen by file extension.
func (s *AgentService) IngestUpload(ctx context.Context, filename string, data []byte) (int, error) {
	loader, err := loaders.ForExtension(filepath.Ext(filename))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", schema.ErrValidation, err)
	}

	text, err := loader.Load(ctx, data)
	if err != nil {
		return 0, fmt.Errorf("failed to load %q: %w", filename, err)
	}

	return s.ingestor.Ingest(ctx, text, filename, s.chunkOpts)
}

// IngestDirectory ingests every supported file directly under dir. Files are
// processed best-effort: one corrupt file does not stop the others. The
// returned results are ordered by file name.
func (s *AgentService) IngestDirectory(ctx context.Context, dir string) ([]FileResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %q: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if loaders.Supported(filepath.Ext(entry.Name())) {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	if len(files) == 0 {
		return nil, nil
	}

	s.log.Info(fmt.Sprintf("Ingesting %d files from %q", len(files), dir))

	results := make([]FileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(directoryWorkers)

	for i, name := range files {
		g.Go(func() error {
			results[i] = s.ingestFile(gctx, dir, name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}

	return results, nil
}

func (s *AgentService) ingestFile(ctx context.Context, dir, name string) FileResult {
	result := FileResult{File: name}

	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		result.Error = err.Error()
		return result
	}

	chunks, err := s.IngestUpload(ctx, name, data)
	result.Chunks = chunks
	if err != nil {
		s.log.Warn(fmt.Sprintf("Ingestion of %q failed: %v", name, err))
		result.Error = err.Error()
	}
	return result
}

// Answer runs the retrieval-augmented answer pipeline for query.
func (s *AgentService) Answer(ctx context.Context, query string, maxResults int) (string, error) {
	return s.answerer.Answer(ctx, query, maxResults)
}

// Statistics returns the document count and the time of the last insert.
func (s *AgentService) Statistics(ctx context.Context) (Statistics, error) {
	count, err := s.store.Count(ctx)
	if err != nil {
		return Statistics{}, err
	}
	last, err := s.store.LastUpdated(ctx)
	if err != nil {
		return Statistics{}, err
	}
	return Statistics{TotalDocuments: count, LastUpdated: last}, nil
}

// Clear removes every persisted document.
func (s *AgentService) Clear(ctx context.Context) error {
	if err := s.store.DeleteAll(ctx); err != nil {
		return err
	}
	s.log.Info("Knowledge base cleared")
	return nil
}

// CheckHealth probes the generation model, the embedding model and the
// vector store.
func (s *AgentService) CheckHealth(ctx context.Context) Health {
	_, storeErr := s.store.Count(ctx)
	return Health{
		Model:     s.model.Healthy(ctx),
		Embedding: s.embedder.Healthy(ctx),
		Store:     storeErr == nil,
	}
}
