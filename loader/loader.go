package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/halcyard/raglet/core"
)

// Loader parses the raw bytes of one source format into a Document.
// Loaders are pure transforms: bytes are handed in, already read by the
// caller, and no loader touches the filesystem itself.
// Implementations must be safe for concurrent use.
type Loader interface {
	// Load parses data into a Document. The filename is used only for
	// metadata; it carries no path semantics.
	// Returns ErrCorruptInput (wrapped) when parsing fails.
	Load(ctx context.Context, data []byte, filename string) (*core.Document, error)

	// Extensions lists the lowercase file extensions this loader handles,
	// including the leading dot.
	Extensions() []string
}

// Registry maps file extensions to loaders. It is resolved once at
// startup; workflows hold the registry and never dispatch on types.
type Registry struct {
	loaders map[string]Loader
}

// NewRegistry creates a registry with the given loaders registered.
// Later registrations win on extension conflicts.
func NewRegistry(loaders ...Loader) *Registry {
	r := &Registry{loaders: make(map[string]Loader)}
	for _, l := range loaders {
		r.Register(l)
	}
	return r
}

// DefaultRegistry creates a registry with all built-in loaders:
// plain text (.txt, .text, .md), PDF and DOCX.
func DefaultRegistry() *Registry {
	return NewRegistry(NewText(), NewPDF(), NewDOCX())
}

// Register adds a loader for each extension it reports.
func (r *Registry) Register(l Loader) {
	for _, ext := range l.Extensions() {
		r.loaders[strings.ToLower(ext)] = l
	}
}

// Resolve returns the loader registered for the filename's extension.
// Returns ErrUnsupportedFormat when no loader is registered.
func (r *Registry) Resolve(filename string) (Loader, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	l, ok := r.loaders[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return l, nil
}

// Extensions lists all registered extensions.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.loaders))
	for ext := range r.loaders {
		exts = append(exts, ext)
	}
	return exts
}

// newDocument builds a Document with the standard source metadata every
// loader attaches: filename, source type, raw size and a content hash.
func newDocument(content, filename, sourceType string, rawSize int) *core.Document {
	return &core.Document{
		ID:      core.NewID(),
		Content: content,
		Metadata: map[string]string{
			core.MetadataFilename: filename,
			"source_type":         sourceType,
			"file_size_bytes":     strconv.Itoa(rawSize),
			"content_hash":        core.ContentHash(content),
		},
	}
}
