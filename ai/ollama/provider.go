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


// Package ollama provides AI services backed by a local Ollama server.
package ollama

import (
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"

	"github.com/halcyard/raglet/ai"
)

// DefaultServerURL is the stock Ollama listen address.
const DefaultServerURL = "http://localhost:11434"

// Provider implements ai.Provider over a local Ollama server via
// langchaingo's native Ollama client.
type Provider struct {
	embedder  *Embedder
	generator *Generator
	logger    *slog.Logger
}

var _ ai.Provider = (*Provider)(nil)

// NewProvider creates an Ollama-backed provider. Host in the config is
// the native Ollama URL; a /v1 suffix left over from OpenAI-compatible
// configuration is stripped.
func NewProvider(config *ai.Config) (ai.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	serverURL := strings.TrimSuffix(config.Host, "/v1")
	if serverURL == "" {
		serverURL = DefaultServerURL
	}

	embedClient, err := ollama.New(
		ollama.WithServerURL(serverURL),
		ollama.WithModel(config.EmbeddingModel),
	)
	if err != nil {
		return nil, err
	}
	embedder, err := embeddings.NewEmbedder(embedClient, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, err
	}

	genClient, err := ollama.New(
		ollama.WithServerURL(serverURL),
		ollama.WithModel(config.GenerationModel),
	)
	if err != nil {
		return nil, err
	}

	return &Provider{
		embedder: &Embedder{
			embedder:   embedder,
			dimensions: config.EmbeddingDimensions,
			logger:     slog.Default().With("component", "ollama-embedder"),
		},
		generator: &Generator{
			client:      genClient,
			temperature: config.Temperature,
			logger:      slog.Default().With("component", "ollama-generator"),
		},
		logger: slog.Default().With("component", "ollama-provider"),
	}, nil
}

// Embedder returns the text embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// Generator returns the answer generation service.
func (p *Provider) Generator() ai.Generator {
	return p.generator
}

// Close releases resources held by the provider.
func (p *Provider) Close() error {
	p.logger.Debug("closing Ollama provider")
	return nil
}
