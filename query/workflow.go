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

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/halcyard/raglet/ai"
	"github.com/halcyard/raglet/core"
	"github.com/halcyard/raglet/ingest"
	"github.com/halcyard/raglet/store"
)

const (
	// DefaultTopK is the default number of chunks retrieved per query.
	DefaultTopK = 5

	// DefaultMaxAttempts is the default number of attempts for the embed
	// and generate stages.
	DefaultMaxAttempts = 3

	// DefaultBaseDelay is the default backoff base for retries.
	DefaultBaseDelay = 500 * time.Millisecond

	// InsufficientContextAnswer is returned, without calling the
	// generator, when retrieval finds nothing to ground an answer in.
	InsufficientContextAnswer = "The provided documents do not contain enough information to answer this question."
)

// Workflow answers questions against the chunk store: it embeds the
// query, retrieves the nearest chunks, formats them into a context
// block, and asks the generator for a grounded answer. A Workflow is
// stateless between calls and safe for concurrent use.
type Workflow struct {
	embedder        ai.Embedder
	generator       ai.Generator
	chunkStore      store.Store
	topK            int
	maxContextChars int
	maxAttempts     int
	baseDelay       time.Duration
	logger          *slog.Logger
}

// Option configures a Workflow.
type Option func(*Workflow) error

// WithTopK sets how many chunks are retrieved per query.
// Default is 5.
func WithTopK(k int) Option {
	return func(w *Workflow) error {
		if k <= 0 {
			return ErrInvalidTopK
		}
		w.topK = k
		return nil
	}
}

// WithMaxContextChars sets the character budget for the formatted
// context block. Default is 4000.
func WithMaxContextChars(n int) Option {
	return func(w *Workflow) error {
		if n <= 0 {
			return ErrInvalidContextLength
		}
		w.maxContextChars = n
		return nil
	}
}

// WithRetryPolicy sets how the embed and generate stages are retried on
// transient provider errors.
func WithRetryPolicy(maxAttempts int, baseDelay time.Duration) Option {
	return func(w *Workflow) error {
		if maxAttempts <= 0 {
			return ingest.ErrInvalidMaxAttempts
		}
		w.maxAttempts = maxAttempts
		w.baseDelay = baseDelay
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(w *Workflow) error {
		if logger == nil {
			logger = slog.Default()
		}
		w.logger = logger.With("component", "query_workflow")
		return nil
	}
}

// NewWorkflow creates a query workflow over the given services.
func NewWorkflow(embedder ai.Embedder, generator ai.Generator, chunkStore store.Store, opts ...Option) (*Workflow, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if generator == nil {
		return nil, ErrGeneratorRequired
	}
	if chunkStore == nil {
		return nil, ErrStoreRequired
	}

	w := &Workflow{
		embedder:        embedder,
		generator:       generator,
		chunkStore:      chunkStore,
		topK:            DefaultTopK,
		maxContextChars: DefaultMaxContextChars,
		maxAttempts:     DefaultMaxAttempts,
		baseDelay:       DefaultBaseDelay,
		logger:          slog.Default().With("component", "query_workflow"),
	}
	for _, opt := range opts {
		if err := opt(w); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// Query runs one question through the full sequence and returns a
// well-formed result. Failures populate the result's Err field rather
// than surfacing as a returned error; an empty store yields the fixed
// insufficient-context answer with a nil Err.
func (w *Workflow) Query(ctx context.Context, question string, filter map[string]string) *core.QueryResult {
	start := time.Now()
	result := &core.QueryResult{}
	fail := func(stage string, err error) *core.QueryResult {
		result.Err = fmt.Errorf("%s: %w", stage, err)
		result.Elapsed = time.Since(start)
		w.logger.Warn("query failed", "stage", stage, "error", err)
		return result
	}

	question = strings.TrimSpace(question)
	if question == "" {
		return fail("validate", core.ErrEmptyQuery)
	}
	if err := ctx.Err(); err != nil {
		return fail("embed", err)
	}

	var queryVector []float32
	err := ingest.RetryWithBackoff(ctx, func() error {
		var embedErr error
		queryVector, embedErr = w.embedder.EmbedText(ctx, question)
		return embedErr
	}, ai.IsRetryable, w.maxAttempts, w.baseDelay)
	if err != nil {
		return fail("embed", err)
	}

	if err := ctx.Err(); err != nil {
		return fail("retrieve", err)
	}
	retrieved, err := w.chunkStore.Search(ctx, queryVector, w.topK, filter)
	if err != nil {
		return fail("retrieve", err)
	}
	result.Retrieved = retrieved
	result.Sources = core.UniqueFilenames(retrieved)

	if len(retrieved) == 0 {
		// Nothing to ground an answer in; this is a valid outcome,
		// not an error.
		result.Answer = InsufficientContextAnswer
		result.Elapsed = time.Since(start)
		w.logger.Info("query retrieved no chunks", "elapsed", result.Elapsed)
		return result
	}

	contextBlock := FormatContext(retrieved, w.maxContextChars)

	if err := ctx.Err(); err != nil {
		return fail("generate", err)
	}
	var answer string
	err = ingest.RetryWithBackoff(ctx, func() error {
		var genErr error
		answer, genErr = w.generator.GenerateAnswer(ctx, question, contextBlock)
		return genErr
	}, ai.IsRetryable, w.maxAttempts, w.baseDelay)
	if err != nil {
		return fail("generate", err)
	}

	result.Answer = answer
	result.Elapsed = time.Since(start)
	w.logger.Info("query answered",
		"retrieved", len(retrieved),
		"sources", len(result.Sources),
		"elapsed", result.Elapsed)
	return result
}
