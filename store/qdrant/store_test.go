package qdrant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyard/raglet/core"
	"github.com/halcyard/raglet/store"
)

// fakeQdrant records requests and serves canned responses for the
// endpoints the store touches.
type fakeQdrant struct {
	t        *testing.T
	upserts  []map[string]any
	deletes  []map[string]any
	count    int
	searched []map[string]any
}

func (f *fakeQdrant) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /collections/chunks", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("PUT /collections/chunks/points", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(f.t, json.NewDecoder(r.Body).Decode(&body))
		f.upserts = append(f.upserts, body)
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /collections/chunks/points/search", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(f.t, json.NewDecoder(r.Body).Decode(&body))
		f.searched = append(f.searched, body)
		json.NewEncoder(w).Encode(map[string]any{
			"result": []map[string]any{
				{
					"id":    "abc",
					"score": 0.91,
					"payload": map[string]any{
						"document_id": "doc-1",
						"index":       0,
						"text":        "hello world",
						"metadata":    map[string]any{core.MetadataFilename: "hello.txt"},
					},
				},
			},
		})
	})
	mux.HandleFunc("POST /collections/chunks/points/count", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"result": map[string]any{"count": f.count},
		})
	})
	mux.HandleFunc("POST /collections/chunks/points/delete", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(f.t, json.NewDecoder(r.Body).Decode(&body))
		f.deletes = append(f.deletes, body)
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

func setupTestStore(t *testing.T, fake *fakeQdrant) *Store {
	fake.t = t
	server := httptest.NewServer(fake.handler())
	t.Cleanup(server.Close)

	s, err := New(context.Background(), Config{
		URL:        server.URL,
		Collection: "chunks",
		Dimensions: 3,
	})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(context.Background(), Config{Collection: "chunks", Dimensions: 3})
	assert.ErrorIs(t, err, store.ErrUnavailable)

	_, err = New(context.Background(), Config{URL: "http://localhost:6333", Dimensions: 3})
	assert.ErrorIs(t, err, store.ErrUnavailable)

	_, err = New(context.Background(), Config{URL: "http://localhost:6333", Collection: "chunks"})
	assert.ErrorIs(t, err, store.ErrDimensionMismatch)
}

func TestNewUnreachableServer(t *testing.T) {
	_, err := New(context.Background(), Config{
		URL:        "http://127.0.0.1:1",
		Collection: "chunks",
		Dimensions: 3,
	})
	assert.ErrorIs(t, err, store.ErrUnavailable)
}

func TestAddChunksUpsertsBatch(t *testing.T) {
	fake := &fakeQdrant{}
	s := setupTestStore(t, fake)

	chunks := []*core.Chunk{
		{
			ID:         core.NewID(),
			DocumentID: "doc-1",
			Index:      0,
			Text:       "first",
			Metadata:   map[string]string{core.MetadataFilename: "a.txt"},
			Embedding:  []float32{1, 0, 0},
		},
		{
			ID:         core.NewID(),
			DocumentID: "doc-1",
			Index:      1,
			Text:       "second",
			Metadata:   map[string]string{core.MetadataFilename: "a.txt"},
			Embedding:  []float32{0, 1, 0},
		},
	}
	require.NoError(t, s.AddChunks(context.Background(), chunks))

	require.Len(t, fake.upserts, 1)
	points := fake.upserts[0]["points"].([]any)
	assert.Len(t, points, 2)
}

func TestAddChunksRejectsBadBatchWithoutUpserting(t *testing.T) {
	fake := &fakeQdrant{}
	s := setupTestStore(t, fake)

	chunks := []*core.Chunk{
		{
			ID:         core.NewID(),
			DocumentID: "doc-1",
			Text:       "ok",
			Embedding:  []float32{1, 0, 0},
		},
		{
			ID:         core.NewID(),
			DocumentID: "doc-1",
			Text:       "wrong dims",
			Embedding:  []float32{1, 0},
		},
	}
	err := s.AddChunks(context.Background(), chunks)
	assert.ErrorIs(t, err, store.ErrDimensionMismatch)
	assert.Empty(t, fake.upserts)
}

func TestSearchDecodesPayload(t *testing.T) {
	fake := &fakeQdrant{}
	s := setupTestStore(t, fake)

	results, err := s.Search(context.Background(), []float32{1, 0, 0}, 5, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, "doc-1", results[0].Chunk.DocumentID)
	assert.Equal(t, "hello world", results[0].Chunk.Text)
	assert.Equal(t, "hello.txt", results[0].Filename)
	assert.InDelta(t, 0.91, float64(results[0].Score), 1e-6)
}

func TestSearchSendsFilter(t *testing.T) {
	fake := &fakeQdrant{}
	s := setupTestStore(t, fake)

	_, err := s.Search(context.Background(), []float32{1, 0, 0}, 5, map[string]string{
		store.FilterDocumentID: "doc-1",
	})
	require.NoError(t, err)

	require.Len(t, fake.searched, 1)
	filter := fake.searched[0]["filter"].(map[string]any)
	must := filter["must"].([]any)
	require.Len(t, must, 1)
	clause := must[0].(map[string]any)
	assert.Equal(t, "document_id", clause["key"])
}

func TestSearchZeroK(t *testing.T) {
	fake := &fakeQdrant{}
	s := setupTestStore(t, fake)

	results, err := s.Search(context.Background(), []float32{1, 0, 0}, 0, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Empty(t, fake.searched)
}

func TestDeleteByDocumentIDReturnsCount(t *testing.T) {
	fake := &fakeQdrant{count: 4}
	s := setupTestStore(t, fake)

	deleted, err := s.DeleteByDocumentID(context.Background(), "doc-1")
	require.NoError(t, err)
	assert.Equal(t, 4, deleted)
	assert.Len(t, fake.deletes, 1)
}

func TestDeleteByDocumentIDNoMatches(t *testing.T) {
	fake := &fakeQdrant{count: 0}
	s := setupTestStore(t, fake)

	deleted, err := s.DeleteByDocumentID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Equal(t, 0, deleted)
	// No delete call issued when nothing matches.
	assert.Empty(t, fake.deletes)
}

func TestCount(t *testing.T) {
	fake := &fakeQdrant{count: 7}
	s := setupTestStore(t, fake)

	n, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestBuildFilterMetadataKeys(t *testing.T) {
	f := buildFilter(map[string]string{"filename": "a.txt"})
	must := f["must"].([]map[string]any)
	require.Len(t, must, 1)
	assert.Equal(t, "metadata.filename", must[0]["key"])

	assert.Nil(t, buildFilter(nil))
}
