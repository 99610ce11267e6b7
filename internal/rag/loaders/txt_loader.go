package loaders

import "context"

// TxtLoader implements the Loader interface for plain text files.
type TxtLoader struct{}

// NewTxtLoader creates a new TxtLoader.
func NewTxtLoader() *TxtLoader {
	return &TxtLoader{}
}

// Load returns the buffer content decoded as UTF-8 text.
func (l *TxtLoader) Load(ctx context.Context, data []byte) (string, error) {
	return string(data), nil
}

var _ Loader = (*TxtLoader)(nil)
