package store

import (
	"context"

	"github.com/halcyard/raglet/core"
)

// Store persists embedded chunks and serves nearest-neighbor search.
// Implementations must be thread-safe: concurrent AddChunks calls from
// different documents must not interleave one document's chunk set, and
// a concurrent Search must never observe a strict subset of one
// AddChunks call's chunks. Cross-call atomicity across documents is not
// required; the atomicity unit is one AddChunks call.
type Store interface {
	// AddChunks persists a batch of chunks, all carrying embeddings.
	// The whole batch is validated before anything is written; on error
	// zero chunks from the batch are visible. Chunk order is preserved.
	AddChunks(ctx context.Context, chunks []*core.Chunk) error

	// Search returns up to k chunks ranked by similarity score
	// descending. The optional filter restricts results to chunks whose
	// metadata matches every key/value pair; the reserved key
	// "document_id" matches the chunk's document id.
	Search(ctx context.Context, queryVector []float32, k int, filter map[string]string) ([]*core.RetrievedChunk, error)

	// DeleteByDocumentID removes all chunks of one document and returns
	// the count deleted. Idempotent: a nonexistent id deletes 0 chunks
	// and returns no error.
	DeleteByDocumentID(ctx context.Context, documentID string) (int, error)

	// Count returns the total number of stored chunks.
	Count(ctx context.Context) (int, error)

	// Close releases resources held by the store.
	Close() error
}

// FilterDocumentID is the reserved filter key matching a chunk's
// document id rather than its metadata.
const FilterDocumentID = "document_id"

// MatchesFilter reports whether a chunk satisfies every key/value pair
// of the filter. A nil or empty filter matches everything.
func MatchesFilter(c *core.Chunk, filter map[string]string) bool {
	for key, want := range filter {
		if key == FilterDocumentID {
			if c.DocumentID != want {
				return false
			}
			continue
		}
		if c.Metadata[key] != want {
			return false
		}
	}
	return true
}
