package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"context"

	"searchmind/internal/embedding"
	"searchmind/internal/rag/schema"
	"searchmind/internal/rag/splitters"
	"searchmind/internal/rag/storages/vectorstore"
	"searchmind/pkg/logger"
)

// DefaultBatchSize is the number of chunks processed per batch. Small batches
// cap peak memory while embedding vectors and raw text are held together.
const DefaultBatchSize = 3

// defaultBatchPause is the cooperative pause between batches. It paces
// backend calls and gives the runtime room to reclaim memory; it is a
// resource mitigation, not a correctness requirement.
const defaultBatchPause = 100 * time.Millisecond

// pdfPageChars approximates how many characters fit one PDF page, used to
// estimate a page number for chunks of paginated sources.
const pdfPageChars = 3000

// Ingestor drives chunking, embeds each chunk and persists the resulting
// records in source order. Batches of one document are strictly sequential;
// batches of different documents may run concurrently through separate calls.
type Ingestor struct {
	splitter   splitters.Splitter
	embedder   embedding.Embedding
	store      vectorstore.VectorStore
	log        *logger.Logger
	batchSize  int
	batchPause time.Duration
}

// NewIngestor creates a new Ingestor with the default batch size.
func NewIngestor(splitter splitters.Splitter, embedder embedding.Embedding, store vectorstore.VectorStore, log *logger.Logger) *Ingestor {
	return &Ingestor{
		splitter:   splitter,
		embedder:   embedder,
		store:      store,
		log:        log,
		batchSize:  DefaultBatchSize,
		batchPause: defaultBatchPause,
	}
}

// Ingest splits text, embeds every chunk and persists the records. It
// returns the number of chunks persisted. The first embedding or store
// failure stops the ingestion and is returned as an IngestionError carrying
// the failed chunk index and the persisted count; chunks stored before the
// failure are kept. Cancellation between chunks leaves no half-committed
// record.
func (p *Ingestor) Ingest(ctx context.Context, text, sourceName string, opts schema.ChunkOptions) (int, error) {
	chunks, err := p.splitter.Split(text, opts)
	if err != nil {
		return 0, err
	}
	if len(chunks) == 0 {
		return 0, nil
	}

	isPDF := strings.EqualFold(filepath.Ext(sourceName), ".pdf")
	totalBatches := (len(chunks) + p.batchSize - 1) / p.batchSize

	p.log.Info(fmt.Sprintf("Ingesting %q: %d chunks in %d batches", sourceName, len(chunks), totalBatches))

	persisted := 0
	for batch := 0; batch < totalBatches; batch++ {
		start := batch * p.batchSize
		end := start + p.batchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		for _, chunk := range chunks[start:end] {
			if err := ctx.Err(); err != nil {
				return persisted, &schema.IngestionError{Source: sourceName, Chunk: chunk.Index, Persisted: persisted, Err: err}
			}

			vector, err := p.embedder.Embed(ctx, chunk.Text)
			if err != nil {
				return persisted, &schema.IngestionError{Source: sourceName, Chunk: chunk.Index, Persisted: persisted, Err: err}
			}

			meta := schema.Metadata{
				Source:      sourceName,
				Chunk:       chunk.Index + 1,
				TotalChunks: chunk.TotalChunks,
				Article:     chunk.Article,
				Chapter:     chunk.Chapter,
				Title:       chunk.Title,
			}
			if isPDF {
				meta.Page = chunk.Index*opts.ChunkSize/pdfPageChars + 1
			}

			if err := p.store.Insert(ctx, chunk.Text, vector, meta); err != nil {
				return persisted, &schema.IngestionError{Source: sourceName, Chunk: chunk.Index, Persisted: persisted, Err: err}
			}
			persisted++
		}

		p.log.Debug(fmt.Sprintf("Batch %d/%d of %q completed", batch+1, totalBatches, sourceName))

		if batch < totalBatches-1 && p.batchPause > 0 {
			select {
			case <-ctx.Done():
				return persisted, &schema.IngestionError{Source: sourceName, Chunk: end, Persisted: persisted, Err: ctx.Err()}
			case <-time.After(p.batchPause):
			}
		}
	}

	p.log.Info(fmt.Sprintf("Ingested %q: %d chunks persisted", sourceName, persisted))
	return persisted, nil
}
