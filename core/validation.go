package core

import "fmt"

// ValidateStorableChunk checks that a chunk is complete enough to persist:
// it must carry an embedding, a document id, and a non-negative index.
// Vector stores call this before writing anything so a bad batch is
// rejected as a whole.
func ValidateStorableChunk(c *Chunk) error {
	if c == nil {
		return fmt.Errorf("chunk is nil")
	}
	if c.DocumentID == "" {
		return fmt.Errorf("chunk %q: document id is empty", c.ID)
	}
	if c.Index < 0 {
		return fmt.Errorf("chunk %q: negative index %d", c.ID, c.Index)
	}
	if len(c.Embedding) == 0 {
		return fmt.Errorf("chunk %q: %w", c.ID, ErrMissingEmbedding)
	}
	return nil
}

// UniqueFilenames extracts unique source filenames from retrieved chunks
// in first-seen order.
func UniqueFilenames(retrieved []*RetrievedChunk) []string {
	seen := make(map[string]struct{}, len(retrieved))
	var names []string
	for _, rc := range retrieved {
		name := rc.Filename
		if name == "" && rc.Chunk != nil {
			name = rc.Chunk.Filename()
		}
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}
