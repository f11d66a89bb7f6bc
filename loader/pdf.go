package loader

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/documentloaders"

	"github.com/halcyard/raglet/core"
)

// PDF loads PDF files, extracting the text of each page.
type PDF struct{}

var _ Loader = (*PDF)(nil)

// NewPDF creates a PDF loader.
func NewPDF() *PDF {
	return &PDF{}
}

// Extensions returns the extensions the PDF loader handles.
func (l *PDF) Extensions() []string {
	return []string{".pdf"}
}

// Load parses the PDF and joins page texts with blank lines, so the
// splitter's paragraph separator respects page boundaries.
func (l *PDF) Load(ctx context.Context, data []byte, filename string) (*core.Document, error) {
	pdf := documentloaders.NewPDF(bytes.NewReader(data), int64(len(data)))

	pages, err := pdf.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptInput, filename, err)
	}

	parts := make([]string, 0, len(pages))
	for _, page := range pages {
		if text := strings.TrimSpace(page.PageContent); text != "" {
			parts = append(parts, text)
		}
	}

	return newDocument(strings.Join(parts, "\n\n"), filename, "pdf", len(data)), nil
}
