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


package core

import "errors"

// Domain validation errors
var (
	// ErrEmptyFilename indicates an ingestion input with no filename.
	ErrEmptyFilename = errors.New("filename cannot be empty")

	// ErrEmptyQuery indicates a query with no text.
	ErrEmptyQuery = errors.New("query cannot be empty")

	// ErrMissingEmbedding indicates a chunk handed to a vector store
	// without its embedding attached.
	ErrMissingEmbedding = errors.New("chunk has no embedding")

	// ErrEmbeddingCountMismatch indicates an embedder returned a different
	// number of vectors than texts submitted.
	ErrEmbeddingCountMismatch = errors.New("embedding count does not match input count")
)
