package splitter

import (
	"strconv"

	"github.com/halcyard/raglet/core"
)

// Recursive partitions document text into overlapping chunks by cutting
// at the highest-priority separator that keeps each chunk within the
// configured size, falling back through the separator list down to a raw
// character cut. Splitting is deterministic: the same document and config
// always yield byte-identical chunk boundaries.
type Recursive struct {
	cfg  Config
	seps [][]rune
}

// NewRecursive creates a splitter, validating the configuration.
func NewRecursive(cfg Config) (*Recursive, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(cfg.Separators) == 0 {
		cfg.Separators = DefaultSeparators()
	}

	seps := make([][]rune, len(cfg.Separators))
	for i, s := range cfg.Separators {
		seps[i] = []rune(s)
	}
	return &Recursive{cfg: cfg, seps: seps}, nil
}

// Config returns the splitter's configuration.
func (s *Recursive) Config() Config {
	return s.cfg
}

// Split partitions the document into ordered chunks. Chunks fully cover
// the source text: chunk i+1 begins with the final ChunkOverlap runes of
// chunk i, and stripping that prefix from every chunk after the first
// reconstructs the document exactly. An empty document yields zero
// chunks; a document no longer than ChunkSize yields exactly one.
func (s *Recursive) Split(doc *core.Document) ([]*core.Chunk, error) {
	text := []rune(doc.Content)
	if len(text) == 0 {
		return nil, nil
	}

	size := s.cfg.ChunkSize
	overlap := s.cfg.ChunkOverlap

	var bounds [][2]int
	pos := 0
	for {
		if len(text)-pos <= size {
			bounds = append(bounds, [2]int{pos, len(text)})
			break
		}
		cut := s.findCut(text, pos, pos+size)
		bounds = append(bounds, [2]int{pos, cut})
		pos = cut - overlap
	}

	chunks := make([]*core.Chunk, len(bounds))
	for i, b := range bounds {
		chunks[i] = &core.Chunk{
			ID:         core.NewID(),
			DocumentID: doc.ID,
			Index:      i,
			Text:       string(text[b[0]:b[1]]),
			Metadata:   chunkMetadata(doc, i),
		}
	}
	return chunks, nil
}

// findCut picks the cut position in (pos+overlap, windowEnd]. For each
// separator in priority order it takes the last occurrence whose end
// still leaves forward progress after the overlap is re-included; if no
// separator fits, it cuts at the window boundary.
func (s *Recursive) findCut(text []rune, pos, windowEnd int) int {
	minCut := pos + s.cfg.ChunkOverlap + 1
	for _, sep := range s.seps {
		if len(sep) == 0 {
			break
		}
		for end := windowEnd; end >= minCut; end-- {
			start := end - len(sep)
			if start < pos {
				break
			}
			if runesEqual(text[start:end], sep) {
				return end
			}
		}
	}
	return windowEnd
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// chunkMetadata inherits the document metadata and extends it with the
// chunk position.
func chunkMetadata(doc *core.Document, index int) map[string]string {
	md := make(map[string]string, len(doc.Metadata)+1)
	for k, v := range doc.Metadata {
		md[k] = v
	}
	md["chunk_index"] = strconv.Itoa(index)
	return md
}
