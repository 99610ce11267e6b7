package splitters

import (
	"regexp"
	"strings"

	"searchmind/internal/rag/schema"
)

// Splitter is the interface for splitting raw document text into chunks.
type Splitter interface {
	Split(text string, opts schema.ChunkOptions) ([]schema.Chunk, error)
}

// ParagraphSplitter splits text into bounded, overlap-controlled chunks.
// When PreserveParagraphs is set it accumulates whole paragraphs up to the
// chunk size and only falls back to fixed-width windows for paragraphs that
// are too large on their own.
type ParagraphSplitter struct{}

// NewParagraphSplitter creates a new ParagraphSplitter.
func NewParagraphSplitter() *ParagraphSplitter {
	return &ParagraphSplitter{}
}

// paragraphRegex matches blank-line boundaries: two or more consecutive
// newlines separate paragraphs.
var paragraphRegex = regexp.MustCompile(`\n\n+`)

// Split produces the ordered chunk sequence for text. Empty input yields no
// chunks. Index and TotalChunks are assigned once the full sequence is known.
func (s *ParagraphSplitter) Split(text string, opts schema.ChunkOptions) ([]schema.Chunk, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, nil
	}

	var texts []string
	if opts.PreserveParagraphs {
		texts = s.splitParagraphs(text, opts)
	} else {
		texts = s.hardSplit(text, opts)
	}

	chunks := make([]schema.Chunk, 0, len(texts))
	for i, t := range texts {
		chunk := schema.Chunk{
			Text:        t,
			Index:       i,
			TotalChunks: len(texts),
		}
		chunk.Article, chunk.Chapter, chunk.Title = ExtractStructure(t)
		chunks = append(chunks, chunk)
	}
	return chunks, nil
}

// splitParagraphs greedily accumulates paragraphs into chunks of at most
// ChunkSize characters. An oversized paragraph flushes the running buffer and
// is hard-split on its own.
func (s *ParagraphSplitter) splitParagraphs(text string, opts schema.ChunkOptions) []string {
	paragraphs := paragraphRegex.Split(text, -1)

	var chunks []string
	var current strings.Builder
	currentLen := 0

	for _, paragraph := range paragraphs {
		paraLen := len([]rune(paragraph))

		// Account for the joining separator when the buffer is not empty.
		joinedLen := currentLen + paraLen
		if currentLen > 0 {
			joinedLen += 2
		}

		if joinedLen <= opts.ChunkSize {
			if currentLen > 0 {
				current.WriteString("\n\n")
				currentLen += 2
			}
			current.WriteString(paragraph)
			currentLen += paraLen
			continue
		}

		if currentLen > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
			currentLen = 0
		}

		if paraLen > opts.ChunkSize {
			chunks = append(chunks, s.hardSplit(paragraph, opts)...)
		} else {
			current.WriteString(paragraph)
			currentLen = paraLen
		}
	}

	if currentLen > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}

// hardSplit advances a fixed-width window over the text. Each step advances
// by ChunkSize-overlap, clamped to at least 1 character so the loop always
// terminates. The last window is truncated to the remaining length.
func (s *ParagraphSplitter) hardSplit(text string, opts schema.ChunkOptions) []string {
	runes := []rune(text)

	overlap := opts.ChunkOverlap
	if overlap >= opts.ChunkSize {
		overlap = opts.ChunkSize - 1
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + opts.ChunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))

		if end >= len(runes) {
			break
		}

		next := end - overlap
		if next <= start {
			next = start + 1
		}
		start = next
	}

	return chunks
}

var _ Splitter = (*ParagraphSplitter)(nil)
