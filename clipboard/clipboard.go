// Package clipboard wraps the system clipboard for paste-from-clipboard
// key bindings, backed by github.com/atotto/clipboard.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// Host reads and writes the system clipboard. The zero value is ready to
// use; it exists mainly so callers can substitute a fake in tests without
// touching the real clipboard.
type Host struct{}

// NewHost returns a clipboard Host backed by the OS clipboard.
func NewHost() *Host {
	return &Host{}
}

// ReadText returns the current clipboard contents.
func (h *Host) ReadText() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	return text, nil
}

// WriteText replaces the clipboard contents with text, for the yank-to-
// system-clipboard side of the same bindings.
func (h *Host) WriteText(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}
