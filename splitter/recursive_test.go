package splitter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyard/raglet/core"
)

func testDoc(content string) *core.Document {
	return &core.Document{
		ID:       core.NewID(),
		Content:  content,
		Metadata: map[string]string{core.MetadataFilename: "test.txt"},
	}
}

// reconstruct strips the re-included overlap from every chunk after the
// first and concatenates the remainder.
func reconstruct(chunks []*core.Chunk, overlap int) string {
	var sb strings.Builder
	for i, c := range chunks {
		runes := []rune(c.Text)
		if i > 0 {
			runes = runes[overlap:]
		}
		sb.WriteString(string(runes))
	}
	return sb.String()
}

// cycledText builds deterministic separator-free text of n runes.
func cycledText(n int) string {
	sb := make([]byte, n)
	for i := 0; i < n; i++ {
		sb[i] = byte('a' + i%26)
	}
	return string(sb)
}

func TestNewRecursiveRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"overlap equals size", Config{ChunkSize: 100, ChunkOverlap: 100}},
		{"overlap exceeds size", Config{ChunkSize: 100, ChunkOverlap: 150}},
		{"zero size", Config{ChunkSize: 0, ChunkOverlap: 0}},
		{"negative overlap", Config{ChunkSize: 100, ChunkOverlap: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRecursive(tt.cfg)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestSplitEmptyDocument(t *testing.T) {
	s, err := NewRecursive(DefaultConfig())
	require.NoError(t, err)

	chunks, err := s.Split(testDoc(""))
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestSplitShortDocument(t *testing.T) {
	s, err := NewRecursive(DefaultConfig())
	require.NoError(t, err)

	chunks, err := s.Split(testDoc("a short document"))
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "a short document", chunks[0].Text)
	assert.Equal(t, 0, chunks[0].Index)
}

func TestSplit2500CharDocument(t *testing.T) {
	s, err := NewRecursive(Config{ChunkSize: 1000, ChunkOverlap: 200, Separators: DefaultSeparators()})
	require.NoError(t, err)

	doc := testDoc(cycledText(2500))
	chunks, err := s.Split(doc)
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	// chunk 1 begins with the final 200 characters of chunk 0
	tail := chunks[0].Text[len(chunks[0].Text)-200:]
	assert.True(t, strings.HasPrefix(chunks[1].Text, tail))

	assert.Equal(t, doc.Content, reconstruct(chunks, 200))
}

func TestSplitRoundTrip(t *testing.T) {
	texts := []string{
		cycledText(5000),
		strings.Repeat("One sentence here. Another follows. ", 120),
		strings.Repeat("A paragraph of moderate length that goes on a bit.\n\n", 60),
		strings.Repeat("héllo wörld, ünïcode tëxt. ", 150),
		"tiny",
	}
	cfg := Config{ChunkSize: 300, ChunkOverlap: 50, Separators: DefaultSeparators()}
	s, err := NewRecursive(cfg)
	require.NoError(t, err)

	for i, text := range texts {
		doc := testDoc(text)
		chunks, err := s.Split(doc)
		require.NoError(t, err)
		assert.Equal(t, text, reconstruct(chunks, cfg.ChunkOverlap), "text %d", i)
	}
}

func TestSplitDeterministic(t *testing.T) {
	cfg := Config{ChunkSize: 200, ChunkOverlap: 30, Separators: DefaultSeparators()}
	s, err := NewRecursive(cfg)
	require.NoError(t, err)

	doc := testDoc(strings.Repeat("Words and more words make sentences. ", 40))

	first, err := s.Split(doc)
	require.NoError(t, err)
	second, err := s.Split(doc)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Text, second[i].Text)
	}
}

func TestSplitPrefersParagraphBreaks(t *testing.T) {
	para := strings.Repeat("x", 80)
	text := para + "\n\n" + para + "\n\n" + para
	cfg := Config{ChunkSize: 100, ChunkOverlap: 10, Separators: DefaultSeparators()}
	s, err := NewRecursive(cfg)
	require.NoError(t, err)

	chunks, err := s.Split(testDoc(text))
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)

	// First cut lands at the end of the paragraph separator, not mid-word.
	assert.True(t, strings.HasSuffix(chunks[0].Text, "\n\n"))
	assert.Equal(t, text, reconstruct(chunks, cfg.ChunkOverlap))
}

func TestSplitSizeInvariant(t *testing.T) {
	cfg := Config{ChunkSize: 120, ChunkOverlap: 20, Separators: DefaultSeparators()}
	s, err := NewRecursive(cfg)
	require.NoError(t, err)

	chunks, err := s.Split(testDoc(strings.Repeat("several short words in sequence ", 50)))
	require.NoError(t, err)
	for _, c := range chunks {
		assert.LessOrEqual(t, len([]rune(c.Text)), cfg.ChunkSize)
	}
}

func TestSplitLongUnsplittableWord(t *testing.T) {
	// No separator inside the window; the raw character fallback cuts
	// at the window boundary and coverage still holds.
	cfg := Config{ChunkSize: 50, ChunkOverlap: 10, Separators: DefaultSeparators()}
	s, err := NewRecursive(cfg)
	require.NoError(t, err)

	text := cycledText(180)
	chunks, err := s.Split(testDoc(text))
	require.NoError(t, err)
	assert.Equal(t, text, reconstruct(chunks, cfg.ChunkOverlap))
	for _, c := range chunks {
		assert.LessOrEqual(t, len([]rune(c.Text)), cfg.ChunkSize)
	}
}

func TestSplitMetadataInheritance(t *testing.T) {
	s, err := NewRecursive(Config{ChunkSize: 100, ChunkOverlap: 10, Separators: DefaultSeparators()})
	require.NoError(t, err)

	doc := testDoc(cycledText(350))
	doc.Metadata["source_type"] = "txt"

	chunks, err := s.Split(doc)
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)

	for i, c := range chunks {
		assert.Equal(t, i, c.Index)
		assert.Equal(t, doc.ID, c.DocumentID)
		assert.Equal(t, "test.txt", c.Metadata[core.MetadataFilename])
		assert.Equal(t, "txt", c.Metadata["source_type"])
		assert.NotEmpty(t, c.Metadata["chunk_index"])
		assert.NotEmpty(t, c.ID)
	}
}
