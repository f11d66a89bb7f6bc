// Package ingest turns raw files into embedded, stored chunks.
//
// A Workflow runs one file through the fixed stage sequence: resolve a
// loader by extension, load the document, split it into chunks, embed
// the chunk texts in one batched call, and persist the batch to the
// chunk store. Stage failures terminate that file's run; the embedding
// stage alone is retried with exponential backoff on transient provider
// errors.
//
// An Orchestrator fans batches of files out over a bounded worker pool.
// Files are processed independently: a corrupt or unsupported file is
// reported in its own result while the rest of the batch proceeds.
package ingest
