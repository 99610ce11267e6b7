package loaders

import (
	"context"
	"fmt"
	"strings"
)

// Loader extracts plain text from one document format. Implementations
// operate on in-memory buffers so uploads never touch the filesystem.
type Loader interface {
	Load(ctx context.Context, data []byte) (string, error)
}

// SupportedExtensions lists the file extensions the loaders can handle.
var SupportedExtensions = []string{".pdf", ".txt", ".md"}

// ForExtension returns the loader for a file extension. Detection is by
// extension only; content sniffing is deliberately not done.
func ForExtension(ext string) (Loader, error) {
	switch strings.ToLower(ext) {
	case ".pdf":
		return NewPdfLoader(), nil
	case ".txt":
		return NewTxtLoader(), nil
	case ".md":
		return NewMarkdownLoader(), nil
	default:
		return nil, fmt.Errorf("unsupported file type %q: only PDF, TXT and MD are accepted", ext)
	}
}

// Supported reports whether a file extension has a loader.
func Supported(ext string) bool {
	_, err := ForExtension(ext)
	return err == nil
}
