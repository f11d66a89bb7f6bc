package query

import (
	"fmt"
	"strings"

	"github.com/halcyard/raglet/core"
)

// DefaultMaxContextChars is the default character budget for the
// formatted context block handed to the generator.
const DefaultMaxContextChars = 4000

// FormatContext renders retrieved chunks into the context block the
// generator grounds its answer in. Each chunk becomes one block with
// source attribution:
//
//	[Document N: filename]
//	<chunk text>
//	---
//
// N is 1-based in rank order. Chunks are dropped whole from the tail
// once adding the next block would exceed maxChars; a block is never
// truncated mid-text.
func FormatContext(retrieved []*core.RetrievedChunk, maxChars int) string {
	var parts []string
	length := 0
	for i, rc := range retrieved {
		block := fmt.Sprintf("[Document %d: %s]\n%s\n---\n", i+1, rc.Filename, rc.Chunk.Text)
		if length+len(block) > maxChars {
			break
		}
		parts = append(parts, block)
		length += len(block)
	}
	return strings.Join(parts, "\n")
}
