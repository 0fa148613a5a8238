// Copyright 2025 Poiesic Systems
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
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/poiesic/netsec"
	"github.com/poiesic/netsec/config"
	"github.com/poiesic/netsec/featurestore"
	"github.com/poiesic/netsec/seed"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		slog.Debug("error detail", "err", fmt.Sprintf("%+v", err))
		slog.Error("netsec failed", "err", err)
		os.Exit(1)
	}
}

func sourceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "source",
			Usage: "Source kind (mongodb, badger, mysql)",
		},
		&cli.StringFlag{
			Name:  "uri",
			Usage: "Connection string for mongodb or mysql sources (mongodb defaults to $" + config.MongoURLEnv + ")",
		},
		&cli.StringFlag{
			Name:    "db-path",
			Aliases: []string{"d"},
			Usage:   "Path to BadgerDB database directory for badger sources",
		},
		&cli.StringFlag{
			Name:  "database",
			Usage: "Database name",
		},
		&cli.StringFlag{
			Name:  "collection",
			Usage: "Collection name",
		},
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "netsec",
		Usage: "Network security training pipeline",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Environment file to load before reading configuration",
				Value: ".env",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "Export a collection to the feature store and split it into train and test files",
				Action: ingestCommand,
				Flags: append(sourceFlags(),
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to YAML configuration file",
					},
					&cli.StringFlag{
						Name:  "artifact-dir",
						Usage: "Root directory for run artifacts",
					},
					&cli.Float64Flag{
						Name:  "split-ratio",
						Usage: "Fraction of rows assigned to the test set",
					},
					&cli.Uint64Flag{
						Name:  "seed",
						Usage: "Seed for the train/test shuffle",
					},
					&cli.BoolFlag{
						Name:  "no-manifest",
						Usage: "Do not write ingestion.yaml",
					},
				),
			},
			{
				Name:   "seed",
				Usage:  "Load a CSV file into a collection",
				Action: seedCommand,
				Flags: append(sourceFlags(),
					&cli.StringFlag{
						Name:     "csv",
						Usage:    "Path to the CSV file to load",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of concurrent insert workers",
						Value: 4,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of records per insert",
						Value: 500,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N records",
						Value: 1000,
					},
				),
			},
		},
	}
}

// buildConfig layers the config file, the environment and the flags.
func buildConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if c.IsSet("config") {
		loaded, err := config.LoadConfig(c.String("config"))
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if c.IsSet("source") {
		cfg.Source.Kind = c.String("source")
	}
	if c.IsSet("uri") {
		cfg.Source.URI = c.String("uri")
	}
	if c.IsSet("db-path") {
		cfg.Source.Path = c.String("db-path")
	}
	if c.IsSet("database") {
		cfg.DatabaseName = c.String("database")
	}
	if c.IsSet("collection") {
		cfg.CollectionName = c.String("collection")
	}
	if c.IsSet("artifact-dir") {
		cfg.ArtifactName = c.String("artifact-dir")
	}
	if c.IsSet("split-ratio") {
		cfg.TrainTestSplitRatio = c.Float64("split-ratio")
	}
	if c.IsSet("seed") {
		cfg.RandomSeed = c.Uint64("seed")
	}
	if c.Bool("no-manifest") {
		cfg.WriteManifest = false
	}

	cfg.ApplyEnv()
	return cfg, cfg.Validate()
}

func ingestCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	cfg, err := buildConfig(c)
	if err != nil {
		return err
	}

	pipeline, err := netsec.NewTrainingPipeline(cfg)
	if err != nil {
		return err
	}

	artifact, err := pipeline.Start(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, artifact.String())
	return nil
}

func seedCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	cfg, err := buildConfig(c)
	if err != nil {
		return err
	}

	table, err := featurestore.ReadTable(afero.NewOsFs(), c.String("csv"))
	if err != nil {
		return err
	}

	src, err := netsec.OpenSource(cfg.Source, slog.Default())
	if err != nil {
		return err
	}
	defer func() {
		if err := src.Close(context.WithoutCancel(ctx)); err != nil {
			slog.Error("error closing source", "err", err)
		}
	}()

	coll, err := netsec.OpenWritable(ctx, src, cfg.DatabaseName, cfg.CollectionName)
	if err != nil {
		return err
	}
	defer coll.Close(ctx)

	seeder, err := seed.NewSeeder(
		seed.WithWorkers(c.Int("workers")),
		seed.WithBatchSize(c.Int("batch-size")),
		seed.WithProgress(c.App.ErrWriter, c.Int("report-interval")),
	)
	if err != nil {
		return err
	}
	defer seeder.Release()

	slog.Info("seeding collection",
		"csv", c.String("csv"),
		"database", cfg.DatabaseName,
		"collection", cfg.CollectionName,
		"rows", table.Len())

	n, err := seeder.Seed(ctx, coll, table)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%d records inserted\n", n)
	return nil
}

func setup(c *cli.Context) error {
	if err := setupLogger(c); err != nil {
		return err
	}
	return config.LoadEnv(c.String("env-file"))
}

func setupLogger(c *cli.Context) error {
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
