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

import "errors"

var (
	// ErrUnavailable indicates the store backend cannot be reached.
	ErrUnavailable = errors.New("vector store unavailable")

	// ErrWrite indicates a write to the store backend failed. The failed
	// batch contributes zero chunks.
	ErrWrite = errors.New("vector store write failed")

	// ErrDimensionMismatch indicates a vector whose length differs from
	// the store's configured dimensionality.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrSerializationFailed indicates a chunk value could not be
	// decoded from the backend.
	ErrSerializationFailed = errors.New("chunk serialization failed")
)
