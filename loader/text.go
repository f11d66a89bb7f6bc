package loader

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/halcyard/raglet/core"
)

// Text loads plain-text and markdown files. Decoding tries UTF-8 first
// and falls back to Latin-1, which accepts any byte sequence.
type Text struct{}

var _ Loader = (*Text)(nil)

// NewText creates a plain-text loader.
func NewText() *Text {
	return &Text{}
}

// Extensions returns the extensions the text loader handles.
func (l *Text) Extensions() []string {
	return []string{".txt", ".text", ".md"}
}

// Load decodes the bytes into a text document.
func (l *Text) Load(_ context.Context, data []byte, filename string) (*core.Document, error) {
	// NUL bytes mark binary data mislabelled as text.
	if bytes.IndexByte(data, 0) >= 0 {
		return nil, fmt.Errorf("%w: %s contains binary data", ErrCorruptInput, filename)
	}

	var content string
	if utf8.Valid(data) {
		content = string(data)
	} else {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrCorruptInput, filename, err)
		}
		content = string(decoded)
	}

	return newDocument(strings.TrimSpace(content), filename, "txt", len(data)), nil
}
