package loaders

import (
	"context"
	"regexp"
)

// MarkdownLoader implements the Loader interface for Markdown (.md) files.
// Markdown is indexed as-is except for image references, which carry no
// retrievable text and are stripped.
type MarkdownLoader struct{}

// NewMarkdownLoader creates a new MarkdownLoader.
func NewMarkdownLoader() *MarkdownLoader {
	return &MarkdownLoader{}
}

// imageRegex matches Markdown image syntax, e.g. ![alt](path/to/image.png).
var imageRegex = regexp.MustCompile(`!\[.*?\]\(.*?\)`)

// Load returns the Markdown source with image references removed.
func (l *MarkdownLoader) Load(ctx context.Context, data []byte) (string, error) {
	return imageRegex.ReplaceAllString(string(data), ""), nil
}

var _ Loader = (*MarkdownLoader)(nil)
