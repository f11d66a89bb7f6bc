package main

import (
	"flag"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestIngestCommandFlags(t *testing.T) {
	app := &cli.App{
		Name: "raglet",
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Action: func(c *cli.Context) error { return nil },
				Flags:  engineFlags(),
			},
		},
	}

	t.Run("db is required", func(t *testing.T) {
		err := app.Run([]string{"raglet", "ingest", "file.txt"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db")
	})

	t.Run("valid flags accepted", func(t *testing.T) {
		err := app.Run([]string{"raglet", "ingest", "--db", "/tmp/test", "file.txt"})
		assert.NoError(t, err)
	})
}

func TestBuildConfigDefaults(t *testing.T) {
	app := cli.NewApp()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range engineFlags() {
		require.NoError(t, f.Apply(set))
	}
	require.NoError(t, set.Parse([]string{"--db", "/tmp/data"}))
	c := cli.NewContext(app, set, nil)

	cfg := buildConfig(c)
	assert.Equal(t, "/tmp/data", cfg.StorePath)
	assert.Equal(t, 1000, cfg.Splitter.ChunkSize)
	assert.Equal(t, 200, cfg.Splitter.ChunkOverlap)
	assert.Equal(t, "text-embedding-3-small", cfg.AI.EmbeddingModel)
	assert.Equal(t, 1536, cfg.AI.EmbeddingDimensions)
}

func TestSetupLoggerLevels(t *testing.T) {
	original := slog.Default()
	defer slog.SetDefault(original)

	run := func(level string) error {
		app := cli.NewApp()
		set := flag.NewFlagSet("test", flag.ContinueOnError)
		set.String("log-level", level, "")
		c := cli.NewContext(app, set, nil)
		return setupLogger(c)
	}

	for _, level := range []string{"debug", "info", "warn", "error", "DEBUG", "Info"} {
		assert.NoError(t, run(level), level)
	}
	assert.Error(t, run("verbose"))
}
