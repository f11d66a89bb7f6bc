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

package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/halcyard/raglet"
	"github.com/halcyard/raglet/ai"
	"github.com/halcyard/raglet/core"
	"github.com/halcyard/raglet/ingest"
)

func main() {
	app := &cli.App{
		Name:  "raglet",
		Usage: "Document pipeline: ingest files, then ask questions grounded in them",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "ingest",
				Usage:     "Ingest one or more files into the vector store",
				ArgsUsage: "FILE [FILE...]",
				Action:    ingestCommand,
				Flags:     engineFlags(),
			},
			{
				Name:      "query",
				Usage:     "Ask a question against the ingested documents",
				ArgsUsage: "QUESTION",
				Action:    queryCommand,
				Flags: append(engineFlags(),
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Number of chunks to retrieve",
						Value: raglet.DefaultTopK,
					},
					&cli.StringFlag{
						Name:  "document-id",
						Usage: "Restrict retrieval to one document",
					},
				),
			},
			{
				Name:   "delete",
				Usage:  "Delete all chunks of one document",
				Action: deleteCommand,
				Flags: append(engineFlags(),
					&cli.StringFlag{
						Name:     "document-id",
						Usage:    "Document to delete",
						Required: true,
					},
				),
			},
			{
				Name:   "stats",
				Usage:  "Show the number of stored chunks",
				Action: statsCommand,
				Flags:  engineFlags(),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func engineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to the BadgerDB data directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "provider",
			Usage: "AI provider (openai, ollama)",
			Value: "openai",
		},
		&cli.StringFlag{
			Name:  "host",
			Usage: "Provider host URL (defaults to the hosted OpenAI endpoint)",
		},
		&cli.StringFlag{
			Name:    "token",
			Usage:   "Provider API token",
			EnvVars: []string{"OPENAI_API_KEY"},
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: ai.DefaultEmbeddingModel,
		},
		&cli.IntFlag{
			Name:  "embedding-dimensions",
			Usage: "Embedding vector size",
			Value: ai.DefaultEmbeddingDimensions,
		},
		&cli.StringFlag{
			Name:  "generation-model",
			Usage: "Generation model name",
			Value: ai.DefaultGenerationModel,
		},
		&cli.IntFlag{
			Name:  "chunk-size",
			Usage: "Maximum chunk size in characters",
			Value: 1000,
		},
		&cli.IntFlag{
			Name:  "chunk-overlap",
			Usage: "Overlap between consecutive chunks in characters",
			Value: 200,
		},
		&cli.IntFlag{
			Name:  "max-retries",
			Usage: "Maximum attempts for embedding and generation calls",
			Value: raglet.DefaultMaxAttempts,
		},
		&cli.DurationFlag{
			Name:  "retry-delay",
			Usage: "Base delay for exponential backoff",
			Value: 1 * time.Second,
		},
		&cli.IntFlag{
			Name:  "concurrency",
			Usage: "Maximum concurrent file ingestions",
			Value: raglet.DefaultMaxConcurrentFiles,
		},
	}
}

func buildConfig(c *cli.Context) *raglet.Config {
	cfg := raglet.DefaultConfig()
	cfg.Provider = raglet.ProviderName(c.String("provider"))
	cfg.AI = ai.NewConfig(
		ai.WithHost(c.String("host")),
		ai.WithToken(c.String("token")),
		ai.WithEmbeddingModel(c.String("embedding-model"), c.Int("embedding-dimensions")),
		ai.WithGenerationModel(c.String("generation-model")),
	)
	cfg.Store = raglet.StoreBadger
	cfg.StorePath = c.String("db")
	cfg.Splitter.ChunkSize = c.Int("chunk-size")
	cfg.Splitter.ChunkOverlap = c.Int("chunk-overlap")
	cfg.MaxAttempts = c.Int("max-retries")
	cfg.BaseDelay = c.Duration("retry-delay")
	cfg.MaxConcurrentFiles = c.Int("concurrency")
	if c.IsSet("top-k") {
		cfg.TopK = c.Int("top-k")
	}
	return cfg
}

func openEngine(c *cli.Context) (*raglet.Engine, error) {
	cfg := buildConfig(c)
	engine, err := raglet.NewEngine(c.Context, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize engine: %w", err)
	}
	return engine, nil
}

func ingestCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one file is required")
	}

	files := make([]ingest.File, 0, c.NArg())
	for _, path := range c.Args().Slice() {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		files = append(files, ingest.File{Filename: filepath.Base(path), Data: data})
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	batch := engine.IngestBatch(c.Context, files)
	for _, d := range batch.Details {
		if d.Status == core.IngestStatusSuccess {
			fmt.Printf("%s: %d chunks (document %s, %s)\n", d.Filename, d.ChunksCreated, d.DocumentID, d.Elapsed.Round(time.Millisecond))
		} else {
			fmt.Printf("%s: FAILED: %v\n", d.Filename, d.Err)
		}
	}
	fmt.Printf("\n%d/%d files ingested, %d chunks total\n", batch.FilesProcessed, len(batch.Details), batch.ChunksCreated)

	if !batch.Success {
		return fmt.Errorf("no files were ingested successfully")
	}
	return nil
}

func queryCommand(c *cli.Context) error {
	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("a question is required")
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	var filter map[string]string
	if docID := c.String("document-id"); docID != "" {
		filter = map[string]string{"document_id": docID}
	}

	result := engine.Query(c.Context, question, filter)
	if result.Err != nil {
		return fmt.Errorf("query failed: %w", result.Err)
	}

	fmt.Println(result.Answer)
	if len(result.Sources) > 0 {
		fmt.Printf("\nSources: %s\n", strings.Join(result.Sources, ", "))
	}
	fmt.Fprintf(os.Stderr, "retrieved %d chunks in %s\n", len(result.Retrieved), result.Elapsed.Round(time.Millisecond))
	return nil
}

func deleteCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	deleted, err := engine.DeleteDocument(c.Context, c.String("document-id"))
	if err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	fmt.Printf("deleted %d chunks\n", deleted)
	return nil
}

func statsCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	count, err := engine.Count(c.Context)
	if err != nil {
		return fmt.Errorf("count failed: %w", err)
	}
	fmt.Printf("%d chunks stored\n", count)
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
