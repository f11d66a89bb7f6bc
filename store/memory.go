package store

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/halcyard/raglet/core"
)

// Memory is an in-memory vector store with brute-force similarity
// search. It gives no durability guarantee and is the reference for
// correctness testing of the persistent backends. AddChunks appends the
// whole batch under one write lock, so a concurrent Search sees either
// none or all of a batch.
type Memory struct {
	mu     sync.RWMutex
	chunks []*core.Chunk
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// AddChunks stores copies of the batch. The batch is validated in full
// before anything is appended.
func (s *Memory) AddChunks(ctx context.Context, chunks []*core.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	copies := make([]*core.Chunk, len(chunks))
	for i, c := range chunks {
		if err := core.ValidateStorableChunk(c); err != nil {
			return fmt.Errorf("%w: %v", ErrWrite, err)
		}
		copies[i] = copyChunk(c)
	}

	s.mu.Lock()
	s.chunks = append(s.chunks, copies...)
	s.mu.Unlock()
	return nil
}

// Search scans all stored vectors and returns the top k by cosine
// similarity, descending.
func (s *Memory) Search(ctx context.Context, queryVector []float32, k int, filter map[string]string) ([]*core.RetrievedChunk, error) {
	if k <= 0 {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]*core.RetrievedChunk, 0, len(s.chunks))
	for _, c := range s.chunks {
		if !MatchesFilter(c, filter) {
			continue
		}
		results = append(results, &core.RetrievedChunk{
			Chunk:    copyChunk(c),
			Score:    CosineSimilarity(queryVector, c.Embedding),
			Filename: c.Filename(),
		})
	}

	slices.SortStableFunc(results, func(a, b *core.RetrievedChunk) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// DeleteByDocumentID removes all chunks of the document, returning the
// count deleted. Unknown ids delete nothing and return 0.
func (s *Memory) DeleteByDocumentID(ctx context.Context, documentID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.chunks[:0]
	deleted := 0
	for _, c := range s.chunks {
		if c.DocumentID == documentID {
			deleted++
			continue
		}
		kept = append(kept, c)
	}
	s.chunks = kept
	return deleted, nil
}

// Count returns the number of stored chunks.
func (s *Memory) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks), nil
}

// Close is a no-op for the in-memory store.
func (s *Memory) Close() error {
	return nil
}

// copyChunk deep-copies a chunk so the store and its callers never share
// mutable state.
func copyChunk(c *core.Chunk) *core.Chunk {
	dup := &core.Chunk{
		ID:         c.ID,
		DocumentID: c.DocumentID,
		Index:      c.Index,
		Text:       c.Text,
	}
	if c.Metadata != nil {
		dup.Metadata = make(map[string]string, len(c.Metadata))
		for k, v := range c.Metadata {
			dup.Metadata[k] = v
		}
	}
	if c.Embedding != nil {
		dup.Embedding = append([]float32(nil), c.Embedding...)
	}
	return dup
}
