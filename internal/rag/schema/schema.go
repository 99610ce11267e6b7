package schema

import "time"

// Metadata holds the attributes persisted alongside a chunk's content.
// Source and the chunk counters are always set; the structural tags are only
// present when the chunk text matched the corresponding pattern.
type Metadata struct {
	// Source is the originating file name.
	Source string `json:"source"`
	// Page is an estimated page number for paginated sources, 0 when unknown.
	Page int `json:"page,omitempty"`
	// Chunk is the 1-based position of the chunk within its document.
	Chunk int `json:"chunk"`
	// TotalChunks is the size of the chunk sequence the document produced.
	TotalChunks int `json:"totalChunks"`
	// Title, Article and Chapter carry structural markers found in the text.
	Title   string `json:"title,omitempty"`
	Article string `json:"article,omitempty"`
	Chapter string `json:"chapter,omitempty"`
}

// Chunk is a bounded contiguous segment produced from one document's text.
// Chunks live in memory between splitting and persistence and are not
// retained afterwards.
type Chunk struct {
	// Text is the chunk content, never empty.
	Text string

	// Index is the 0-based position within the source document.
	Index int

	// TotalChunks is the length of the originating sequence. It is assigned
	// only once the full sequence is known.
	TotalChunks int

	// Structural tags extracted from Text, empty when absent.
	Article string
	Chapter string
	Title   string
}

// EmbeddingRecord is the persisted unit: chunk content, its vector and the
// full metadata. CreatedAt is assigned by the store on insert. Records are
// never updated in place; corrections are delete-and-reinsert.
type EmbeddingRecord struct {
	ID        string    `json:"id,omitempty"`
	Content   string    `json:"content"`
	Embedding []float32 `json:"embedding"`
	Metadata  Metadata  `json:"metadata"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// RetrievedDocument is a read-only projection of an EmbeddingRecord plus the
// similarity score computed at query time. It is never persisted. The score
// is 1 - cosineDistance, so it may be negative for anti-correlated vectors.
type RetrievedDocument struct {
	Content    string   `json:"content"`
	Metadata   Metadata `json:"metadata"`
	Similarity float64  `json:"similarity"`
}
