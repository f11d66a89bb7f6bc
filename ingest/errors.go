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

package ingest

import "errors"

var (
	// ErrRegistryRequired indicates a nil loader registry was passed.
	ErrRegistryRequired = errors.New("loader registry is required")

	// ErrSplitterRequired indicates a nil splitter was passed.
	ErrSplitterRequired = errors.New("splitter is required")

	// ErrEmbedderRequired indicates a nil embedder was passed.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrStoreRequired indicates a nil chunk store was passed.
	ErrStoreRequired = errors.New("chunk store is required")

	// ErrWorkflowRequired indicates a nil workflow was passed.
	ErrWorkflowRequired = errors.New("workflow is required")

	// ErrInvalidMaxAttempts indicates a non-positive retry attempt count.
	ErrInvalidMaxAttempts = errors.New("max attempts must be greater than zero")
)
