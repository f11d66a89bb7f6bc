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


package store

import (
	"fmt"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"

	"github.com/halcyard/raglet/core"
)

// Field serializers for the chunk wire format.
var (
	embeddingMUS = ord.NewSliceSer[float32](raw.Float32)
	metadataMUS  = ord.NewMapSer[string, string](ord.String, ord.String)
)

// chunkMUS serializes core.Chunk for persistent backends. Fields are
// written in declaration order; changing the order or types breaks
// stored data.
type chunkMUS struct{}

// ChunkMUS is the chunk serializer used by persistent backends.
var ChunkMUS = chunkMUS{}

func (chunkMUS) Marshal(c core.Chunk, bs []byte) (n int) {
	n = ord.String.Marshal(c.ID, bs)
	n += ord.String.Marshal(c.DocumentID, bs[n:])
	n += varint.Int.Marshal(c.Index, bs[n:])
	n += ord.String.Marshal(c.Text, bs[n:])
	n += metadataMUS.Marshal(c.Metadata, bs[n:])
	n += embeddingMUS.Marshal(c.Embedding, bs[n:])
	return
}

func (chunkMUS) Unmarshal(bs []byte) (c core.Chunk, n int, err error) {
	var n1 int
	if c.ID, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if c.DocumentID, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if c.Index, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if c.Text, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if c.Metadata, n1, err = metadataMUS.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if c.Embedding, n1, err = embeddingMUS.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	return
}

func (chunkMUS) Size(c core.Chunk) (size int) {
	size = ord.String.Size(c.ID)
	size += ord.String.Size(c.DocumentID)
	size += varint.Int.Size(c.Index)
	size += ord.String.Size(c.Text)
	size += metadataMUS.Size(c.Metadata)
	size += embeddingMUS.Size(c.Embedding)
	return
}

// MarshalChunk serializes a chunk to bytes.
func MarshalChunk(c *core.Chunk) []byte {
	buf := make([]byte, ChunkMUS.Size(*c))
	ChunkMUS.Marshal(*c, buf)
	return buf
}

// UnmarshalChunk deserializes a chunk from bytes.
func UnmarshalChunk(data []byte) (*core.Chunk, error) {
	c, _, err := ChunkMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}
	return &c, nil
}
