// Package clipboard reads the system clipboard for the clipboard import source.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"

	"ruleweaver/internal/application"
	"ruleweaver/internal/ports"
)

// Reader implements ports.ClipboardReader
type Reader struct {
	read        func() (string, error)
	unsupported bool
}

var _ ports.ClipboardReader = (*Reader)(nil)

// NewReader creates a reader over the system clipboard
func NewReader() *Reader {
	return &Reader{read: clipboard.ReadAll, unsupported: clipboard.Unsupported}
}

// ReadText returns the clipboard contents as text
func (r *Reader) ReadText() (string, error) {
	if r.unsupported {
		return "", fmt.Errorf("%w: no clipboard utility available (install xclip, xsel or wl-clipboard)",
			application.ErrUnsupportedSource)
	}
	text, err := r.read()
	if err != nil {
		return "", fmt.Errorf("failed to read clipboard: %w", err)
	}
	if text == "" {
		return "", errors.New("clipboard is empty")
	}
	return text, nil
}
