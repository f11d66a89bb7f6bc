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
	"errors"
	"fmt"
	"time"

	"github.com/halcyard/raglet/ai"
	"github.com/halcyard/raglet/splitter"
)

// ProviderName selects the AI provider implementation.
type ProviderName string

const (
	ProviderOpenAI ProviderName = "openai"
	ProviderOllama ProviderName = "ollama"
)

// StoreBackend selects the vector store implementation.
type StoreBackend string

const (
	StoreMemory StoreBackend = "memory"
	StoreBadger StoreBackend = "badger"
	StoreQdrant StoreBackend = "qdrant"
)

// Defaults for the engine-level knobs. Splitter and AI defaults live in
// their own packages.
const (
	DefaultTopK               = 5
	DefaultMaxContextChars    = 4000
	DefaultMaxAttempts        = 3
	DefaultBaseDelay          = 500 * time.Millisecond
	DefaultMaxConcurrentFiles = 4
)

// Config is the explicit configuration object the whole engine is
// built from. It is assembled once at startup and threaded down into
// each component; nothing reads ambient global settings.
type Config struct {
	// Provider selects the embedding/generation backend.
	Provider ProviderName
	// AI carries provider connection and model settings.
	AI *ai.Config

	// Store selects the vector store backend.
	Store StoreBackend
	// StorePath is the data directory for the badger backend.
	StorePath string
	// QdrantURL, QdrantAPIKey and QdrantCollection configure the qdrant
	// backend.
	QdrantURL        string
	QdrantAPIKey     string
	QdrantCollection string

	// Splitter holds chunking parameters.
	Splitter splitter.Config

	// TopK is the number of chunks retrieved per query.
	TopK int
	// MaxContextChars bounds the formatted context block.
	MaxContextChars int

	// MaxAttempts and BaseDelay govern retries of embedding and
	// generation calls.
	MaxAttempts int
	BaseDelay   time.Duration

	// MaxConcurrentFiles bounds concurrent ingestion runs.
	MaxConcurrentFiles int
}

// DefaultConfig returns a Config with the openai provider, the
// in-memory store, and stock parameters everywhere else.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderOpenAI,
		AI:       ai.DefaultConfig(),
		Store:    StoreMemory,
		Splitter: splitter.DefaultConfig(),
		TopK:               DefaultTopK,
		MaxContextChars:    DefaultMaxContextChars,
		MaxAttempts:        DefaultMaxAttempts,
		BaseDelay:          DefaultBaseDelay,
		MaxConcurrentFiles: DefaultMaxConcurrentFiles,
	}
}

// Validate checks the whole configuration, including the nested
// splitter and AI sections.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI, ProviderOllama:
	default:
		return fmt.Errorf("config: unknown provider %q", c.Provider)
	}
	if c.AI == nil {
		return errors.New("config: AI settings are required")
	}
	if err := c.AI.Validate(); err != nil {
		return err
	}

	switch c.Store {
	case StoreMemory:
	case StoreBadger:
		if c.StorePath == "" {
			return errors.New("config: StorePath is required for the badger store")
		}
	case StoreQdrant:
		if c.QdrantURL == "" {
			return errors.New("config: QdrantURL is required for the qdrant store")
		}
		if c.QdrantCollection == "" {
			return errors.New("config: QdrantCollection is required for the qdrant store")
		}
	default:
		return fmt.Errorf("config: unknown store backend %q", c.Store)
	}

	if err := c.Splitter.Validate(); err != nil {
		return err
	}
	if c.TopK <= 0 {
		return errors.New("config: TopK must be positive")
	}
	if c.MaxContextChars <= 0 {
		return errors.New("config: MaxContextChars must be positive")
	}
	if c.MaxAttempts <= 0 {
		return errors.New("config: MaxAttempts must be positive")
	}
	if c.MaxConcurrentFiles <= 0 {
		return errors.New("config: MaxConcurrentFiles must be positive")
	}
	return nil
}
