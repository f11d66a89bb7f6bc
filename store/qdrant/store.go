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

// Package qdrant implements the vector store interface over the Qdrant
// REST API. The client is intentionally minimal: it assumes cosine
// distance, creates the collection on first use, and performs one
// upsert call per batch so a batch is either fully visible or not at
// all.
package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/halcyard/raglet/core"
	"github.com/halcyard/raglet/store"
)

const defaultTimeout = 15 * time.Second

// Config holds the connection settings for a Qdrant deployment.
type Config struct {
	// URL is the base REST endpoint, e.g. "http://localhost:6333".
	URL string
	// APIKey is optional; sent as the api-key header when set.
	APIKey string
	// Collection is the collection name chunks are stored in.
	Collection string
	// Dimensions is the vector size the collection is created with.
	Dimensions int
	// Timeout bounds each HTTP request. Defaults to 15s.
	Timeout time.Duration
}

// Store is a chunk store backed by a remote Qdrant collection.
type Store struct {
	cfg    Config
	client *http.Client
	logger *slog.Logger
}

var _ store.Store = (*Store)(nil)

// New creates a Store and ensures the collection exists with the
// configured dimensionality.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("%w: qdrant URL is required", store.ErrUnavailable)
	}
	if cfg.Collection == "" {
		return nil, fmt.Errorf("%w: qdrant collection is required", store.ErrUnavailable)
	}
	if cfg.Dimensions <= 0 {
		return nil, fmt.Errorf("%w: dimensions must be positive, got %d", store.ErrDimensionMismatch, cfg.Dimensions)
	}
	cfg.URL = strings.TrimRight(cfg.URL, "/")
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	s := &Store{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
		logger: slog.Default().With("component", "qdrant_store"),
	}
	if err := s.ensureCollection(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureCollection(ctx context.Context) error {
	body := map[string]any{
		"vectors": map[string]any{
			"size":     s.cfg.Dimensions,
			"distance": "Cosine",
		},
	}
	// Qdrant returns 200 if the collection already exists with the
	// same schema, so this is safe to call on every startup.
	err := s.doJSON(ctx, http.MethodPut, s.collectionURL(""), body, nil)
	if err != nil {
		return fmt.Errorf("%w: ensure collection %q: %v", store.ErrUnavailable, s.cfg.Collection, err)
	}
	return nil
}

// AddChunks validates and upserts the batch in a single call. Qdrant
// applies one upsert atomically, so a failed batch leaves no points
// behind.
func (s *Store) AddChunks(ctx context.Context, chunks []*core.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	for _, c := range chunks {
		if err := core.ValidateStorableChunk(c); err != nil {
			return fmt.Errorf("%w: chunk %s: %v", store.ErrWrite, c.ID, err)
		}
		if len(c.Embedding) != s.cfg.Dimensions {
			return fmt.Errorf("%w: chunk %s has %d dimensions, collection expects %d",
				store.ErrDimensionMismatch, c.ID, len(c.Embedding), s.cfg.Dimensions)
		}
	}

	points := make([]map[string]any, len(chunks))
	for i, c := range chunks {
		points[i] = map[string]any{
			"id":     c.ID,
			"vector": c.Embedding,
			"payload": map[string]any{
				"document_id": c.DocumentID,
				"index":       c.Index,
				"text":        c.Text,
				"metadata":    c.Metadata,
			},
		}
	}
	body := map[string]any{"points": points}
	if err := s.doJSON(ctx, http.MethodPut, s.collectionURL("/points?wait=true"), body, nil); err != nil {
		return fmt.Errorf("%w: upsert %d points: %v", store.ErrWrite, len(points), err)
	}

	s.logger.Debug("upserted chunks", "count", len(points), "collection", s.cfg.Collection)
	return nil
}

// Search runs a scored vector search, letting Qdrant apply the filter
// and ranking server-side.
func (s *Store) Search(ctx context.Context, queryVector []float32, k int, filter map[string]string) ([]*core.RetrievedChunk, error) {
	if k <= 0 {
		return nil, nil
	}
	req := map[string]any{
		"vector":       queryVector,
		"limit":        k,
		"with_payload": true,
	}
	if f := buildFilter(filter); f != nil {
		req["filter"] = f
	}

	var resp struct {
		Result []struct {
			ID      string         `json:"id"`
			Score   float32        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	if err := s.doJSON(ctx, http.MethodPost, s.collectionURL("/points/search"), req, &resp); err != nil {
		return nil, fmt.Errorf("%w: search: %v", store.ErrUnavailable, err)
	}

	results := make([]*core.RetrievedChunk, 0, len(resp.Result))
	for _, r := range resp.Result {
		chunk := payloadToChunk(r.ID, r.Payload)
		results = append(results, &core.RetrievedChunk{
			Chunk:    chunk,
			Score:    r.Score,
			Filename: chunk.Filename(),
		})
	}
	return results, nil
}

// DeleteByDocumentID removes every point whose payload document_id
// matches. Qdrant's delete endpoint does not report how many points it
// removed, so the count is taken first.
func (s *Store) DeleteByDocumentID(ctx context.Context, documentID string) (int, error) {
	filter := documentFilter(documentID)

	var countResp struct {
		Result struct {
			Count int `json:"count"`
		} `json:"result"`
	}
	countReq := map[string]any{"filter": filter, "exact": true}
	if err := s.doJSON(ctx, http.MethodPost, s.collectionURL("/points/count"), countReq, &countResp); err != nil {
		return 0, fmt.Errorf("%w: count before delete: %v", store.ErrUnavailable, err)
	}
	if countResp.Result.Count == 0 {
		return 0, nil
	}

	deleteReq := map[string]any{"filter": filter}
	if err := s.doJSON(ctx, http.MethodPost, s.collectionURL("/points/delete?wait=true"), deleteReq, nil); err != nil {
		return 0, fmt.Errorf("%w: delete document %s: %v", store.ErrWrite, documentID, err)
	}

	s.logger.Debug("deleted document", "document_id", documentID, "chunks", countResp.Result.Count)
	return countResp.Result.Count, nil
}

// Count returns the exact number of points in the collection.
func (s *Store) Count(ctx context.Context) (int, error) {
	var resp struct {
		Result struct {
			Count int `json:"count"`
		} `json:"result"`
	}
	req := map[string]any{"exact": true}
	if err := s.doJSON(ctx, http.MethodPost, s.collectionURL("/points/count"), req, &resp); err != nil {
		return 0, fmt.Errorf("%w: count: %v", store.ErrUnavailable, err)
	}
	return resp.Result.Count, nil
}

// Close releases idle connections. The remote collection is untouched.
func (s *Store) Close() error {
	s.client.CloseIdleConnections()
	return nil
}

func (s *Store) collectionURL(suffix string) string {
	return fmt.Sprintf("%s/collections/%s%s", s.cfg.URL, s.cfg.Collection, suffix)
}

func (s *Store) doJSON(ctx context.Context, method, url string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.cfg.APIKey != "" {
		req.Header.Set("api-key", s.cfg.APIKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: %s", method, url, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// buildFilter translates the portable filter map into a Qdrant must
// clause. The reserved document ID key matches the top-level payload
// field; everything else matches inside the metadata map.
func buildFilter(filter map[string]string) map[string]any {
	if len(filter) == 0 {
		return nil
	}
	must := make([]map[string]any, 0, len(filter))
	for key, value := range filter {
		field := "metadata." + key
		if key == store.FilterDocumentID {
			field = "document_id"
		}
		must = append(must, map[string]any{
			"key":   field,
			"match": map[string]any{"value": value},
		})
	}
	return map[string]any{"must": must}
}

func documentFilter(documentID string) map[string]any {
	return map[string]any{
		"must": []map[string]any{
			{
				"key":   "document_id",
				"match": map[string]any{"value": documentID},
			},
		},
	}
}

func payloadToChunk(id string, payload map[string]any) *core.Chunk {
	chunk := &core.Chunk{ID: id}
	if v, ok := payload["document_id"].(string); ok {
		chunk.DocumentID = v
	}
	if v, ok := payload["index"].(float64); ok {
		chunk.Index = int(v)
	}
	if v, ok := payload["text"].(string); ok {
		chunk.Text = v
	}
	if raw, ok := payload["metadata"].(map[string]any); ok {
		chunk.Metadata = make(map[string]string, len(raw))
		for key, value := range raw {
			if s, ok := value.(string); ok {
				chunk.Metadata[key] = s
			}
		}
	}
	return chunk
}
