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

package raglet

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/halcyard/raglet/ai"
	"github.com/halcyard/raglet/ai/ollama"
	"github.com/halcyard/raglet/ai/openai"
	"github.com/halcyard/raglet/core"
	"github.com/halcyard/raglet/ingest"
	"github.com/halcyard/raglet/loader"
	"github.com/halcyard/raglet/query"
	"github.com/halcyard/raglet/splitter"
	"github.com/halcyard/raglet/store"
	"github.com/halcyard/raglet/store/badger"
	"github.com/halcyard/raglet/store/qdrant"
)

// Engine is the top-level facade: it wires the loader registry,
// splitter, AI provider, vector store, and the two workflows from one
// Config, and exposes the document pipeline operations.
type Engine struct {
	provider     ai.Provider
	chunkStore   store.Store
	orchestrator *ingest.Orchestrator
	querier      *query.Workflow
	logger       *slog.Logger
}

// EngineOption overrides a constructed dependency, mainly for tests.
type EngineOption func(*engineOptions)

type engineOptions struct {
	provider   ai.Provider
	chunkStore store.Store
}

// WithProvider supplies a pre-built AI provider instead of constructing
// one from the config.
func WithProvider(p ai.Provider) EngineOption {
	return func(o *engineOptions) { o.provider = p }
}

// WithStore supplies a pre-built vector store instead of constructing
// one from the config.
func WithStore(s store.Store) EngineOption {
	return func(o *engineOptions) { o.chunkStore = s }
}

// NewEngine validates the configuration and assembles the engine.
func NewEngine(ctx context.Context, cfg *Config, opts ...EngineOption) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := &engineOptions{}
	for _, opt := range opts {
		opt(options)
	}

	provider := options.provider
	if provider == nil {
		var err error
		provider, err = newProvider(cfg)
		if err != nil {
			return nil, err
		}
	}

	// The store must be able to hold what the embedder produces.
	dims := provider.Embedder().Dimensions()
	if dims != cfg.AI.EmbeddingDimensions && options.provider == nil {
		provider.Close()
		return nil, fmt.Errorf("embedder produces %d dimensions, config expects %d", dims, cfg.AI.EmbeddingDimensions)
	}

	chunkStore := options.chunkStore
	if chunkStore == nil {
		var err error
		chunkStore, err = newStore(ctx, cfg, dims)
		if err != nil {
			provider.Close()
			return nil, err
		}
	}

	split, err := splitter.NewRecursive(cfg.Splitter)
	if err != nil {
		chunkStore.Close()
		provider.Close()
		return nil, err
	}

	workflow, err := ingest.NewWorkflow(loader.DefaultRegistry(), split, provider.Embedder(), chunkStore,
		ingest.WithRetryPolicy(cfg.MaxAttempts, cfg.BaseDelay))
	if err != nil {
		chunkStore.Close()
		provider.Close()
		return nil, err
	}

	orchestrator, err := ingest.NewOrchestrator(workflow, ingest.WithPoolSize(cfg.MaxConcurrentFiles))
	if err != nil {
		chunkStore.Close()
		provider.Close()
		return nil, err
	}

	querier, err := query.NewWorkflow(provider.Embedder(), provider.Generator(), chunkStore,
		query.WithTopK(cfg.TopK),
		query.WithMaxContextChars(cfg.MaxContextChars),
		query.WithRetryPolicy(cfg.MaxAttempts, cfg.BaseDelay))
	if err != nil {
		orchestrator.Release()
		chunkStore.Close()
		provider.Close()
		return nil, err
	}

	return &Engine{
		provider:     provider,
		chunkStore:   chunkStore,
		orchestrator: orchestrator,
		querier:      querier,
		logger:       slog.Default().With("component", "engine"),
	}, nil
}

func newProvider(cfg *Config) (ai.Provider, error) {
	switch cfg.Provider {
	case ProviderOllama:
		return ollama.NewProvider(cfg.AI)
	default:
		return openai.NewProvider(cfg.AI)
	}
}

func newStore(ctx context.Context, cfg *Config, dims int) (store.Store, error) {
	switch cfg.Store {
	case StoreBadger:
		return badger.Open(cfg.StorePath)
	case StoreQdrant:
		return qdrant.New(ctx, qdrant.Config{
			URL:        cfg.QdrantURL,
			APIKey:     cfg.QdrantAPIKey,
			Collection: cfg.QdrantCollection,
			Dimensions: dims,
		})
	default:
		return store.NewMemory(), nil
	}
}

// IngestFile runs one file through the ingestion workflow.
func (e *Engine) IngestFile(ctx context.Context, filename string, data []byte) *core.IngestionResult {
	return e.orchestrator.IngestFile(ctx, filename, data)
}

// IngestBatch processes files concurrently and aggregates the outcome.
func (e *Engine) IngestBatch(ctx context.Context, files []ingest.File) *core.BatchResult {
	return e.orchestrator.IngestBatch(ctx, files)
}

// Query answers a question against the ingested chunks.
func (e *Engine) Query(ctx context.Context, question string, filter map[string]string) *core.QueryResult {
	return e.querier.Query(ctx, question, filter)
}

// DeleteDocument removes every chunk of one document and returns the
// count deleted. Deleting an unknown id is a no-op returning 0.
func (e *Engine) DeleteDocument(ctx context.Context, documentID string) (int, error) {
	return e.chunkStore.DeleteByDocumentID(ctx, documentID)
}

// Count returns the number of chunks currently stored.
func (e *Engine) Count(ctx context.Context) (int, error) {
	return e.chunkStore.Count(ctx)
}

// Close releases the worker pool, the store, and the AI provider.
func (e *Engine) Close() error {
	e.orchestrator.Release()

	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
	}
	if err := e.chunkStore.Close(); err != nil {
		e.logger.Error("error closing chunk store", "err", err)
		return err
	}
	return nil
}
