// Copyright 2026 Halcyard Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package badger provides the persistent-local vector store backend over
// an embedded BadgerDB. One AddChunks call is one Badger transaction, so
// snapshot-isolated readers see either none or all of a document's
// chunks.
package badger

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/dgraph-io/badger/v4"

	"github.com/halcyard/raglet/core"
	"github.com/halcyard/raglet/store"
)

// Store implements store.Store over a Backend.
type Store struct {
	backend *Backend
	logger  *slog.Logger
}

var _ store.Store = (*Store)(nil)

// NewStore creates a vector store over the given backend.
func NewStore(backend *Backend) *Store {
	return &Store{
		backend: backend,
		logger:  slog.Default().With("component", "badger-store"),
	}
}

// Open opens a persistent store at the given path, creating it if
// needed.
func Open(filePath string) (*Store, error) {
	backend, err := OpenBackend(filePath, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return NewStore(backend), nil
}

// AddChunks writes the whole batch in a single transaction. The batch is
// validated before any key is set; a failed commit leaves zero chunks
// stored.
func (s *Store) AddChunks(ctx context.Context, chunks []*core.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	for _, c := range chunks {
		if err := core.ValidateStorableChunk(c); err != nil {
			return fmt.Errorf("%w: %v", store.ErrWrite, err)
		}
	}

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		for _, c := range chunks {
			key := makeChunkKey(c.DocumentID, c.Index)
			if err := tx.Set(key, store.MarshalChunk(c)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		s.logger.Error("failed to store chunks", "count", len(chunks), "err", err)
		return fmt.Errorf("%w: %v", store.ErrWrite, err)
	}

	s.logger.Debug("stored chunks", "count", len(chunks), "document", chunks[0].DocumentID)
	return nil
}

// Search scans all stored chunks, scoring each against the query vector
// with cosine similarity, and returns the top k descending.
func (s *Store) Search(ctx context.Context, queryVector []float32, k int, filter map[string]string) ([]*core.RetrievedChunk, error) {
	if k <= 0 {
		return nil, nil
	}

	var results []*core.RetrievedChunk
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = chunkScanPrefix()
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var chunk *core.Chunk
			err := iter.Item().Value(func(val []byte) error {
				var err error
				chunk, err = store.UnmarshalChunk(val)
				return err
			})
			if err != nil {
				return err
			}
			if chunk == nil || len(chunk.Embedding) == 0 {
				continue
			}
			if !store.MatchesFilter(chunk, filter) {
				continue
			}

			results = append(results, &core.RetrievedChunk{
				Chunk:    chunk,
				Score:    store.CosineSimilarity(queryVector, chunk.Embedding),
				Filename: chunk.Filename(),
			})
		}
		return nil
	}, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrUnavailable, err)
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

// DeleteByDocumentID removes all chunks under the document's key prefix
// in one transaction and returns the count. Unknown ids delete 0.
func (s *Store) DeleteByDocumentID(ctx context.Context, documentID string) (int, error) {
	deleted := 0
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeDocumentPrefix(documentID)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)

		var keys [][]byte
		for iter.Rewind(); iter.Valid(); iter.Next() {
			keys = append(keys, iter.Item().KeyCopy(nil))
		}
		iter.Close()

		for _, key := range keys {
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		deleted = len(keys)
		return tx.Commit()
	}, true)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", store.ErrWrite, err)
	}

	if deleted > 0 {
		s.logger.Debug("deleted document chunks", "document", documentID, "count", deleted)
	}
	return deleted, nil
}

// Count returns the total number of stored chunks.
func (s *Store) Count(ctx context.Context) (int, error) {
	count := 0
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = chunkScanPrefix()
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return count, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.backend.Close()
}
