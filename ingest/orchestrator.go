package ingest

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/halcyard/raglet/core"
)

// File is one input to a batch ingestion: raw bytes plus the filename
// whose extension selects the loader.
type File struct {
	Filename string
	Data     []byte
}

// Orchestrator fans a batch of files out over a bounded worker pool,
// running each file through the ingestion workflow independently. One
// file's failure never affects another's outcome.
type Orchestrator struct {
	workflow *Workflow
	pool     *ants.Pool
	logger   *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator) error

// WithPoolSize sets the worker pool size for concurrent file processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(o *Orchestrator) error {
		if size < 1 {
			size = 1
		}
		if o.pool != nil {
			o.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		o.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger.With("component", "ingest_orchestrator")
		return nil
	}
}

// NewOrchestrator creates an orchestrator over the given workflow.
func NewOrchestrator(workflow *Workflow, opts ...Option) (*Orchestrator, error) {
	if workflow == nil {
		return nil, ErrWorkflowRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	o := &Orchestrator{
		workflow: workflow,
		pool:     pool,
		logger:   slog.Default().With("component", "ingest_orchestrator"),
	}
	for _, opt := range opts {
		if optErr := opt(o); optErr != nil {
			o.Release()
			return nil, optErr
		}
	}
	return o, nil
}

// IngestFile runs a single file through the workflow on the calling
// goroutine.
func (o *Orchestrator) IngestFile(ctx context.Context, filename string, data []byte) *core.IngestionResult {
	return o.workflow.IngestFile(ctx, filename, data)
}

// IngestBatch processes all files concurrently and waits for every one
// to finish. Details are returned in input order. The batch succeeds if
// at least one file succeeded; per-file failures are carried in the
// details, never as a batch-level error.
func (o *Orchestrator) IngestBatch(ctx context.Context, files []File) *core.BatchResult {
	start := time.Now()
	details := make([]*core.IngestionResult, len(files))

	var wg sync.WaitGroup
	for i, f := range files {
		wg.Add(1)
		if err := o.pool.Submit(func() {
			defer wg.Done()
			details[i] = o.workflow.IngestFile(ctx, f.Filename, f.Data)
		}); err != nil {
			wg.Done()
			details[i] = &core.IngestionResult{
				Filename: f.Filename,
				Status:   core.IngestStatusFailed,
				Err:      err,
			}
		}
	}
	wg.Wait()

	batch := &core.BatchResult{Details: details}
	for _, r := range details {
		if r.Status == core.IngestStatusSuccess {
			batch.Success = true
			batch.FilesProcessed++
			batch.ChunksCreated += r.ChunksCreated
		}
	}

	o.logger.Info("ingested batch",
		"files", len(files),
		"succeeded", batch.FilesProcessed,
		"chunks", batch.ChunksCreated,
		"elapsed", time.Since(start))
	return batch
}

// Release releases the worker pool. The orchestrator must not be used
// after calling Release.
func (o *Orchestrator) Release() {
	if o.pool != nil {
		o.pool.Release()
	}
}
