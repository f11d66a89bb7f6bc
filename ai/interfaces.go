package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity
// search. Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Used at query time where only one input exists.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in
	// one batch. Implementations batch the upstream call rather than
	// issuing one request per text. The returned slice is 1:1 with the
	// input and order-preserving.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the fixed length of vectors this embedder
	// produces. Queried once at startup to validate vector store
	// compatibility.
	Dimensions() int
}

// Generator produces a grounded natural-language answer from a query and
// a formatted context block. Implementations must be thread-safe for
// concurrent use.
type Generator interface {
	// GenerateAnswer invokes the model at the configured temperature with
	// a system instruction constraining it to the supplied context, and
	// to state explicitly when the context is insufficient.
	GenerateAnswer(ctx context.Context, query, contextBlock string) (string, error)
}

// Provider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages Embedder and
// Generator instances sharing configuration and resources.
type Provider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Generator returns the answer generation service.
	Generator() Generator

	// Close releases resources held by the provider and its services.
	Close() error
}
