package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIDUnique(t *testing.T) {
	a := NewID()
	b := NewID()
	require.NotEmpty(t, a)
	require.NotEmpty(t, b)
	assert.NotEqual(t, a, b)
}

func TestContentHashDeterministic(t *testing.T) {
	h1 := ContentHash("the quick brown fox")
	h2 := ContentHash("the quick brown fox")
	h3 := ContentHash("the quick brown fox.")

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 32) // 16 bytes hex-encoded
}

func TestChunkFilename(t *testing.T) {
	c := &Chunk{Metadata: map[string]string{MetadataFilename: "report.txt"}}
	assert.Equal(t, "report.txt", c.Filename())

	empty := &Chunk{Metadata: map[string]string{}}
	assert.Equal(t, "", empty.Filename())
}

func TestValidateStorableChunk(t *testing.T) {
	valid := &Chunk{
		ID:         NewID(),
		DocumentID: NewID(),
		Index:      0,
		Text:       "some text",
		Embedding:  []float32{0.1, 0.2},
	}
	require.NoError(t, ValidateStorableChunk(valid))

	tests := []struct {
		name  string
		chunk *Chunk
	}{
		{"nil chunk", nil},
		{"no document id", &Chunk{ID: "c1", Index: 0, Embedding: []float32{1}}},
		{"negative index", &Chunk{ID: "c1", DocumentID: "d1", Index: -1, Embedding: []float32{1}}},
		{"no embedding", &Chunk{ID: "c1", DocumentID: "d1", Index: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, ValidateStorableChunk(tt.chunk))
		})
	}
}

func TestValidateStorableChunkMissingEmbeddingSentinel(t *testing.T) {
	err := ValidateStorableChunk(&Chunk{ID: "c1", DocumentID: "d1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingEmbedding)
}

func TestUniqueFilenames(t *testing.T) {
	retrieved := []*RetrievedChunk{
		{Filename: "b.txt"},
		{Filename: "a.txt"},
		{Filename: "b.txt"},
		{Chunk: &Chunk{Metadata: map[string]string{MetadataFilename: "c.txt"}}},
		{Filename: ""},
	}
	assert.Equal(t, []string{"b.txt", "a.txt", "c.txt"}, UniqueFilenames(retrieved))
}

func TestUniqueFilenamesEmpty(t *testing.T) {
	assert.Empty(t, UniqueFilenames(nil))
}
