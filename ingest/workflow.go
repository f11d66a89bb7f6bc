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

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/halcyard/raglet/ai"
	"github.com/halcyard/raglet/core"
	"github.com/halcyard/raglet/loader"
	"github.com/halcyard/raglet/store"
)

// Splitter cuts a document's text into orderable chunks.
type Splitter interface {
	Split(doc *core.Document) ([]*core.Chunk, error)
}

const (
	// DefaultMaxAttempts is the default number of embedding attempts per file.
	DefaultMaxAttempts = 3
	// DefaultBaseDelay is the default backoff base for embedding retries.
	DefaultBaseDelay = 500 * time.Millisecond
)

// Workflow runs one file through the full ingestion sequence:
// load, split, embed, store. Each stage must complete before the next
// starts and any stage failure terminates the run for that file.
// A Workflow is stateless between calls and safe for concurrent use.
type Workflow struct {
	registry    *loader.Registry
	splitter    Splitter
	embedder    ai.Embedder
	chunkStore  store.Store
	maxAttempts int
	baseDelay   time.Duration
	logger      *slog.Logger
}

// WorkflowOption configures a Workflow.
type WorkflowOption func(*Workflow) error

// WithRetryPolicy sets how often and how patiently the embedding stage
// is retried on transient provider errors.
func WithRetryPolicy(maxAttempts int, baseDelay time.Duration) WorkflowOption {
	return func(w *Workflow) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		w.maxAttempts = maxAttempts
		w.baseDelay = baseDelay
		return nil
	}
}

// WithWorkflowLogger sets a custom logger.
// Default is slog.Default().
func WithWorkflowLogger(logger *slog.Logger) WorkflowOption {
	return func(w *Workflow) error {
		if logger == nil {
			logger = slog.Default()
		}
		w.logger = logger.With("component", "ingest_workflow")
		return nil
	}
}

// NewWorkflow creates an ingestion workflow over the given stages.
func NewWorkflow(registry *loader.Registry, splitter Splitter, embedder ai.Embedder, chunkStore store.Store, opts ...WorkflowOption) (*Workflow, error) {
	if registry == nil {
		return nil, ErrRegistryRequired
	}
	if splitter == nil {
		return nil, ErrSplitterRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if chunkStore == nil {
		return nil, ErrStoreRequired
	}

	w := &Workflow{
		registry:    registry,
		splitter:    splitter,
		embedder:    embedder,
		chunkStore:  chunkStore,
		maxAttempts: DefaultMaxAttempts,
		baseDelay:   DefaultBaseDelay,
		logger:      slog.Default().With("component", "ingest_workflow"),
	}
	for _, opt := range opts {
		if err := opt(w); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// IngestFile runs one file through every stage and returns a terminal
// result. Failures are reported in the result rather than as a returned
// error; the per-file outcome is always well-formed.
func (w *Workflow) IngestFile(ctx context.Context, filename string, data []byte) *core.IngestionResult {
	start := time.Now()
	result := &core.IngestionResult{
		Filename: filename,
		Status:   core.IngestStatusFailed,
	}
	fail := func(stage string, err error) *core.IngestionResult {
		result.Err = fmt.Errorf("%s %q: %w", stage, filename, err)
		result.Elapsed = time.Since(start)
		w.logger.Warn("ingestion failed", "filename", filename, "stage", stage, "error", err)
		return result
	}

	if filename == "" {
		return fail("load", core.ErrEmptyFilename)
	}
	if err := ctx.Err(); err != nil {
		return fail("load", err)
	}

	l, err := w.registry.Resolve(filename)
	if err != nil {
		return fail("load", err)
	}
	doc, err := l.Load(ctx, data, filename)
	if err != nil {
		return fail("load", err)
	}
	result.DocumentID = doc.ID

	if err := ctx.Err(); err != nil {
		return fail("split", err)
	}
	chunks, err := w.splitter.Split(doc)
	if err != nil {
		return fail("split", err)
	}
	if len(chunks) == 0 {
		// Nothing to embed or store; an empty file ingests cleanly.
		result.Status = core.IngestStatusSuccess
		result.Elapsed = time.Since(start)
		return result
	}

	if err := ctx.Err(); err != nil {
		return fail("embed", err)
	}
	if err := w.embedChunks(ctx, chunks); err != nil {
		return fail("embed", err)
	}

	if err := ctx.Err(); err != nil {
		return fail("store", err)
	}
	if err := w.chunkStore.AddChunks(ctx, chunks); err != nil {
		return fail("store", err)
	}

	result.ChunksCreated = len(chunks)
	result.Status = core.IngestStatusSuccess
	result.Elapsed = time.Since(start)
	w.logger.Info("ingested file", "filename", filename, "document_id", doc.ID, "chunks", len(chunks), "elapsed", result.Elapsed)
	return result
}

// embedChunks embeds all chunk texts in one batched call, retrying on
// transient provider errors only. Embeddings are attached in order.
func (w *Workflow) embedChunks(ctx context.Context, chunks []*core.Chunk) error {
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	var vectors [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var embedErr error
		vectors, embedErr = w.embedder.EmbedTexts(ctx, texts)
		return embedErr
	}, ai.IsRetryable, w.maxAttempts, w.baseDelay)
	if err != nil {
		return err
	}

	if len(vectors) != len(chunks) {
		return fmt.Errorf("%w: got %d embeddings for %d chunks",
			core.ErrEmbeddingCountMismatch, len(vectors), len(chunks))
	}
	for i, c := range chunks {
		c.Embedding = vectors[i]
	}
	return nil
}
