package core

import (
	"encoding/hex"
	"time"

	"github.com/go-crypt/x/blake2b"
	"github.com/google/uuid"
)

// NewID generates a unique identifier for domain entities.
// Every ingestion run gets fresh IDs; identical input bytes ingested twice
// produce two independent documents.
func NewID() string {
	return uuid.NewString()
}

// ContentHash returns a short BLAKE2b digest of text, hex-encoded.
// It is carried in document metadata so callers can recognise re-uploads;
// it is never used as a primary key.
func ContentHash(text string) string {
	h, _ := blake2b.New(16, nil)
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

// Document is the parsed form of one uploaded file: its full text plus
// source metadata. A Document is immutable after creation and is discarded
// once its chunks are produced; only chunks are persisted.
type Document struct {
	ID       string
	Content  string
	Metadata map[string]string
}

// Chunk is a contiguous slice of a document's text sized for embedding.
// Index is 0-based and contiguous within one document; ordering is
// significant end-to-end. Embedding is nil until the embed stage runs.
type Chunk struct {
	ID         string
	DocumentID string
	Index      int
	Text       string
	Metadata   map[string]string
	Embedding  []float32
}

// MetadataFilename is the metadata key carrying the source filename.
const MetadataFilename = "filename"

// Filename returns the source filename recorded in the chunk metadata,
// or an empty string if absent.
func (c *Chunk) Filename() string {
	return c.Metadata[MetadataFilename]
}

// RetrievedChunk is a chunk returned from a similarity search, together
// with its score. Score may be zero when the backend does not expose
// distances. RetrievedChunks are transient per query and never persisted.
type RetrievedChunk struct {
	Chunk    *Chunk
	Score    float32
	Filename string
}

// IngestStatus is the terminal status of one file's ingestion run.
type IngestStatus string

const (
	IngestStatusSuccess IngestStatus = "success"
	IngestStatusFailed  IngestStatus = "failed"
)

// IngestionResult reports the outcome of ingesting one file.
// It is terminal once returned.
type IngestionResult struct {
	DocumentID    string
	Filename      string
	ChunksCreated int
	Status        IngestStatus
	Elapsed       time.Duration
	Err           error
}

// BatchResult aggregates per-file ingestion outcomes.
// Success is true iff at least one file completed; partial success is
// reported as success with per-file detail, never as a batch-level error.
type BatchResult struct {
	Success        bool
	FilesProcessed int
	ChunksCreated  int
	Details        []*IngestionResult
}

// QueryResult is the outcome of one query run. It is always well-formed:
// every failure mode yields a result with Err populated rather than a
// propagated error. Sources lists unique filenames in first-seen order
// across the ranked retrieved chunks.
type QueryResult struct {
	Answer    string
	Sources   []string
	Retrieved []*RetrievedChunk
	Elapsed   time.Duration
	Err       error
}
