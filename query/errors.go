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

package query

import "errors"

var (
	// ErrEmbedderRequired indicates a nil embedder was passed.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrGeneratorRequired indicates a nil generator was passed.
	ErrGeneratorRequired = errors.New("generator is required")

	// ErrStoreRequired indicates a nil chunk store was passed.
	ErrStoreRequired = errors.New("chunk store is required")

	// ErrInvalidTopK indicates a non-positive retrieval count.
	ErrInvalidTopK = errors.New("top k must be greater than zero")

	// ErrInvalidContextLength indicates a non-positive context budget.
	ErrInvalidContextLength = errors.New("max context length must be greater than zero")
)
