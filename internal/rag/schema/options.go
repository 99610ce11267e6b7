package schema

import "fmt"

// Chunking defaults shared by the splitter and every caller that does not
// override them.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// ChunkOptions controls how documents are split into chunks.
type ChunkOptions struct {
	// ChunkSize is the target maximum number of characters per chunk.
	ChunkSize int `yaml:"chunkSize" json:"chunkSize"`

	// ChunkOverlap is the number of characters repeated between consecutive
	// chunks when hard-splitting. Values >= ChunkSize are clamped to
	// ChunkSize-1 before splitting.
	ChunkOverlap int `yaml:"chunkOverlap" json:"chunkOverlap"`

	// PreserveParagraphs makes chunk boundaries prefer paragraph breaks over
	// fixed-width cuts.
	PreserveParagraphs bool `yaml:"preserveParagraphs" json:"preserveParagraphs"`
}

// DefaultChunkOptions returns the chunking configuration used when a caller
// supplies none.
func DefaultChunkOptions() ChunkOptions {
	return ChunkOptions{
		ChunkSize:          DefaultChunkSize,
		ChunkOverlap:       DefaultChunkOverlap,
		PreserveParagraphs: true,
	}
}

// Validate rejects malformed options before any capability call is made.
func (o ChunkOptions) Validate() error {
	if o.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk size must be positive, got %d", ErrValidation, o.ChunkSize)
	}
	if o.ChunkOverlap < 0 {
		return fmt.Errorf("%w: chunk overlap must not be negative, got %d", ErrValidation, o.ChunkOverlap)
	}
	return nil
}
