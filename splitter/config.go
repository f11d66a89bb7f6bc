package splitter

import "fmt"

// Defaults for chunking configuration.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// DefaultSeparators is the separator priority list: paragraph break,
// line break, sentence end, word boundary, then raw character cut.
// The empty string is the raw-character fallback.
func DefaultSeparators() []string {
	return []string{"\n\n", "\n", ". ", " ", ""}
}

// Config holds chunking parameters. Sizes are measured in runes so
// multi-byte text never splits mid-character.
type Config struct {
	// ChunkSize is the maximum chunk length. A single unsplittable unit
	// longer than ChunkSize still becomes one oversized chunk.
	ChunkSize int

	// ChunkOverlap is the number of trailing runes of chunk i re-included
	// at the start of chunk i+1. Must be >= 0 and < ChunkSize.
	ChunkOverlap int

	// Separators is the cut-point priority list, highest priority first.
	Separators []string
}

// DefaultConfig returns the default chunking configuration.
func DefaultConfig() Config {
	return Config{
		ChunkSize:    DefaultChunkSize,
		ChunkOverlap: DefaultChunkOverlap,
		Separators:   DefaultSeparators(),
	}
}

// Validate checks the configuration. Invalid configurations are rejected
// at construction time, never mid-split.
func (c Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk size %d must be positive", ErrInvalidConfig, c.ChunkSize)
	}
	if c.ChunkOverlap < 0 {
		return fmt.Errorf("%w: chunk overlap %d must not be negative", ErrInvalidConfig, c.ChunkOverlap)
	}
	if c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("%w: chunk overlap %d must be less than chunk size %d",
			ErrInvalidConfig, c.ChunkOverlap, c.ChunkSize)
	}
	return nil
}
