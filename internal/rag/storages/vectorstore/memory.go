package vectorstore

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"searchmind/internal/rag/schema"
)

// MemoryStore is an in-memory VectorStore using brute-force cosine
// similarity. It backs tests and local development; ties keep insertion
// order, so results are deterministic.
type MemoryStore struct {
	mu      sync.RWMutex
	records []schema.EmbeddingRecord
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Insert appends one record. The embedding dimension is fixed by the first
// insert; mismatching vectors are rejected.
func (s *MemoryStore) Insert(ctx context.Context, content string, vector []float32, meta schema.Metadata) error {
	if len(vector) == 0 {
		return fmt.Errorf("empty embedding vector")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.records) > 0 && len(s.records[0].Embedding) != len(vector) {
		return fmt.Errorf("embedding dimension mismatch: store holds %d, got %d",
			len(s.records[0].Embedding), len(vector))
	}

	stored := make([]float32, len(vector))
	copy(stored, vector)

	s.records = append(s.records, schema.EmbeddingRecord{
		ID:        uuid.NewString(),
		Content:   content,
		Embedding: stored,
		Metadata:  meta,
		CreatedAt: time.Now(),
	})
	return nil
}

// Nearest scans all records and returns the k most similar above threshold.
func (s *MemoryStore) Nearest(ctx context.Context, vector []float32, k int, threshold float64) ([]schema.RetrievedDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type scored struct {
		index      int
		similarity float64
	}

	var matches []scored
	for i, record := range s.records {
		similarity := CosineSimilarity(vector, record.Embedding)
		if similarity > threshold {
			matches = append(matches, scored{index: i, similarity: similarity})
		}
	}

	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].similarity > matches[b].similarity
	})

	if k < len(matches) {
		matches = matches[:k]
	}

	results := make([]schema.RetrievedDocument, 0, len(matches))
	for _, m := range matches {
		record := s.records[m.index]
		results = append(results, schema.RetrievedDocument{
			Content:    record.Content,
			Metadata:   record.Metadata,
			Similarity: m.similarity,
		})
	}
	return results, nil
}

// Count returns the number of stored records.
func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

// LastUpdated returns the most recent insert timestamp, nil when empty.
func (s *MemoryStore) LastUpdated(ctx context.Context) (*time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.records) == 0 {
		return nil, nil
	}
	last := s.records[len(s.records)-1].CreatedAt
	return &last, nil
}

// DeleteAll removes every record.
func (s *MemoryStore) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	return nil
}

// CosineSimilarity computes the cosine similarity of two vectors. Zero-length
// or zero-magnitude vectors yield 0.
func CosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

var _ VectorStore = (*MemoryStore)(nil)
