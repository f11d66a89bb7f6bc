package query

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyard/raglet/ai"
	"github.com/halcyard/raglet/ai/mock"
	"github.com/halcyard/raglet/core"
	"github.com/halcyard/raglet/store"
)

func seedStore(t *testing.T, s store.Store, docID, filename string, texts ...string) {
	t.Helper()
	chunks := make([]*core.Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = &core.Chunk{
			ID:         core.NewID(),
			DocumentID: docID,
			Index:      i,
			Text:       text,
			Metadata:   map[string]string{core.MetadataFilename: filename},
			Embedding:  mock.DeterministicVector(text, mock.DefaultDimensions),
		}
	}
	require.NoError(t, s.AddChunks(context.Background(), chunks))
}

func setupWorkflow(t *testing.T, s store.Store, opts ...Option) (*Workflow, *mock.MockGenerator) {
	generator := mock.NewMockGenerator()
	opts = append([]Option{WithRetryPolicy(3, time.Millisecond)}, opts...)
	w, err := NewWorkflow(mock.NewMockEmbedder(), generator, s, opts...)
	require.NoError(t, err)
	return w, generator
}

func TestNewWorkflowValidation(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	generator := mock.NewMockGenerator()
	memory := store.NewMemory()

	_, err := NewWorkflow(nil, generator, memory)
	assert.ErrorIs(t, err, ErrEmbedderRequired)

	_, err = NewWorkflow(embedder, nil, memory)
	assert.ErrorIs(t, err, ErrGeneratorRequired)

	_, err = NewWorkflow(embedder, generator, nil)
	assert.ErrorIs(t, err, ErrStoreRequired)

	_, err = NewWorkflow(embedder, generator, memory, WithTopK(0))
	assert.ErrorIs(t, err, ErrInvalidTopK)

	_, err = NewWorkflow(embedder, generator, memory, WithMaxContextChars(-1))
	assert.ErrorIs(t, err, ErrInvalidContextLength)
}

func TestQueryAnswersFromRetrievedContext(t *testing.T) {
	memory := store.NewMemory()
	seedStore(t, memory, core.NewID(), "handbook.txt",
		"Employees accrue twenty days of leave per year.",
		"Leave requests go through the portal.",
	)
	w, generator := setupWorkflow(t, memory)
	generator.GenerateFunc = func(ctx context.Context, query, contextBlock string) (string, error) {
		assert.Contains(t, contextBlock, "handbook.txt")
		assert.Contains(t, contextBlock, "[Document 1:")
		return "Twenty days per year.", nil
	}

	result := w.Query(context.Background(), "How much leave do employees get?", nil)

	require.NoError(t, result.Err)
	assert.Equal(t, "Twenty days per year.", result.Answer)
	assert.Equal(t, []string{"handbook.txt"}, result.Sources)
	assert.NotEmpty(t, result.Retrieved)
	assert.Greater(t, result.Elapsed, time.Duration(0))
}

func TestQueryEmptyStore(t *testing.T) {
	w, generator := setupWorkflow(t, store.NewMemory())

	result := w.Query(context.Background(), "anything at all?", nil)

	// No grounding material is a valid outcome, not an error.
	require.NoError(t, result.Err)
	assert.Equal(t, InsufficientContextAnswer, result.Answer)
	assert.Empty(t, result.Sources)
	assert.Empty(t, result.Retrieved)
	assert.Equal(t, 0, generator.CallCount())
}

func TestQueryEmptyQuestion(t *testing.T) {
	w, _ := setupWorkflow(t, store.NewMemory())

	result := w.Query(context.Background(), "   \n ", nil)
	require.Error(t, result.Err)
	assert.ErrorIs(t, result.Err, core.ErrEmptyQuery)
	assert.Empty(t, result.Answer)
}

func TestQueryTopKLimitsRetrieval(t *testing.T) {
	memory := store.NewMemory()
	docID := core.NewID()
	texts := make([]string, 10)
	for i := range texts {
		texts[i] = fmt.Sprintf("chunk number %d with distinct content", i)
	}
	seedStore(t, memory, docID, "big.txt", texts...)
	w, _ := setupWorkflow(t, memory, WithTopK(3))

	result := w.Query(context.Background(), "distinct content", nil)
	require.NoError(t, result.Err)
	assert.Len(t, result.Retrieved, 3)
}

func TestQueryFilterRestrictsSources(t *testing.T) {
	memory := store.NewMemory()
	docA := core.NewID()
	docB := core.NewID()
	seedStore(t, memory, docA, "a.txt", "alpha content")
	seedStore(t, memory, docB, "b.txt", "beta content")
	w, _ := setupWorkflow(t, memory)

	result := w.Query(context.Background(), "content", map[string]string{
		store.FilterDocumentID: docA,
	})
	require.NoError(t, result.Err)
	assert.Equal(t, []string{"a.txt"}, result.Sources)
}

func TestQueryGenerationRetriesRateLimit(t *testing.T) {
	memory := store.NewMemory()
	seedStore(t, memory, core.NewID(), "doc.txt", "some content")
	w, generator := setupWorkflow(t, memory)

	calls := 0
	generator.GenerateFunc = func(ctx context.Context, query, contextBlock string) (string, error) {
		calls++
		if calls == 1 {
			return "", fmt.Errorf("%w: slow down", ai.ErrRateLimited)
		}
		return "answer", nil
	}

	result := w.Query(context.Background(), "question?", nil)
	require.NoError(t, result.Err)
	assert.Equal(t, "answer", result.Answer)
	assert.Equal(t, 2, calls)
}

func TestQueryGenerationFailureIsWellFormed(t *testing.T) {
	memory := store.NewMemory()
	seedStore(t, memory, core.NewID(), "doc.txt", "some content")
	w, generator := setupWorkflow(t, memory)
	generator.GenerateFunc = func(ctx context.Context, query, contextBlock string) (string, error) {
		return "", fmt.Errorf("%w: model offline", ai.ErrGeneration)
	}

	result := w.Query(context.Background(), "question?", nil)
	require.Error(t, result.Err)
	assert.ErrorIs(t, result.Err, ai.ErrGeneration)
	// Retrieval results survive a generation failure.
	assert.NotEmpty(t, result.Retrieved)
	assert.Empty(t, result.Answer)
}

func TestQueryCancelledContext(t *testing.T) {
	w, _ := setupWorkflow(t, store.NewMemory())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result := w.Query(ctx, "question?", nil)
	assert.ErrorIs(t, result.Err, context.Canceled)
}

func TestFormatContextAttribution(t *testing.T) {
	retrieved := []*core.RetrievedChunk{
		{Chunk: &core.Chunk{Text: "first chunk"}, Filename: "a.txt", Score: 0.9},
		{Chunk: &core.Chunk{Text: "second chunk"}, Filename: "b.txt", Score: 0.8},
	}

	got := FormatContext(retrieved, DefaultMaxContextChars)

	assert.Contains(t, got, "[Document 1: a.txt]\nfirst chunk\n---")
	assert.Contains(t, got, "[Document 2: b.txt]\nsecond chunk\n---")
	assert.Less(t, strings.Index(got, "first chunk"), strings.Index(got, "second chunk"))
}

func TestFormatContextDropsWholeChunksAtBudget(t *testing.T) {
	long := strings.Repeat("x", 200)
	retrieved := []*core.RetrievedChunk{
		{Chunk: &core.Chunk{Text: long}, Filename: "a.txt"},
		{Chunk: &core.Chunk{Text: long}, Filename: "b.txt"},
		{Chunk: &core.Chunk{Text: long}, Filename: "c.txt"},
	}

	// Budget fits one block but not two.
	got := FormatContext(retrieved, 300)

	assert.Contains(t, got, "[Document 1: a.txt]")
	assert.NotContains(t, got, "b.txt")
	assert.NotContains(t, got, "c.txt")
	// The included block is intact, not truncated.
	assert.Contains(t, got, long)
}

func TestFormatContextEmpty(t *testing.T) {
	assert.Equal(t, "", FormatContext(nil, DefaultMaxContextChars))
}
