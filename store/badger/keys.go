package badger

import (
	"encoding/binary"
	"fmt"
)

// Key prefixes for stored data
const (
	chunkPrefix = "chunk"
)

// makeChunkKey generates a key for one chunk. The index is written in
// BigEndian so iteration within a document yields chunks in index order
// (document ids are UUID strings and never contain ':').
// Format: chunk:<documentID>:<index>
func makeChunkKey(documentID string, index int) []byte {
	prefix := makeDocumentPrefix(documentID)
	buf := make([]byte, len(prefix)+4)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint32(buf[offset:], uint32(index))
	return buf
}

// makeDocumentPrefix generates the key prefix covering all chunks of one
// document. Used for deletion and prefix scans.
func makeDocumentPrefix(documentID string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", chunkPrefix, documentID))
}

// chunkScanPrefix covers every stored chunk.
func chunkScanPrefix() []byte {
	return []byte(chunkPrefix + ":")
}
