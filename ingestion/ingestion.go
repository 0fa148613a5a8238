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

package ingestion

import (
	"context"
	"log/slog"
	"time"

	"github.com/poiesic/netsec/config"
	"github.com/poiesic/netsec/core"
	"github.com/poiesic/netsec/featurestore"
	"github.com/poiesic/netsec/source"
	"github.com/poiesic/netsec/split"
	"github.com/spf13/afero"
)

// DataIngestion moves a collection into the feature store and produces the
// train/test files.
type DataIngestion struct {
	cfg    config.DataIngestionConfig
	src    source.Source
	writer *featurestore.Writer
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a DataIngestion.
type Option func(*DataIngestion) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(d *DataIngestion) error {
		if logger == nil {
			logger = slog.Default()
		}
		d.logger = logger
		return nil
	}
}

// WithFs sets the filesystem output files are written to.
// Default is the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(d *DataIngestion) error {
		if fs == nil {
			return ErrFsRequired
		}
		d.writer = featurestore.NewWriter(fs)
		return nil
	}
}

// WithClock sets the time source used for the manifest timestamp.
func WithClock(now func() time.Time) Option {
	return func(d *DataIngestion) error {
		if now != nil {
			d.now = now
		}
		return nil
	}
}

// NewDataIngestion creates the ingestion stage for cfg reading from src.
// The source is not opened until the collection is read.
func NewDataIngestion(cfg config.DataIngestionConfig, src source.Source, opts ...Option) (*DataIngestion, error) {
	if src == nil {
		return nil, ErrSourceRequired
	}

	d := &DataIngestion{
		cfg:    cfg,
		src:    src,
		writer: featurestore.NewWriter(afero.NewOsFs()),
		now:    time.Now,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// Config returns the configuration the stage runs with.
func (d *DataIngestion) Config() config.DataIngestionConfig {
	return d.cfg
}

// ExportCollectionAsTable reads every document of the configured collection
// into a table. The identity column is dropped and "na" cells become missing.
func (d *DataIngestion) ExportCollectionAsTable(ctx context.Context) (*core.Table, error) {
	const op = "export collection"
	errCtx := map[string]any{
		"database":   d.cfg.DatabaseName,
		"collection": d.cfg.CollectionName,
	}

	coll, err := d.src.Open(ctx, d.cfg.DatabaseName, d.cfg.CollectionName)
	if err != nil {
		return nil, core.NewError(core.KindConnectionFailure, op, err, errCtx)
	}
	defer func() {
		if err := coll.Close(ctx); err != nil {
			d.logger.Warn("error closing collection", "err", err)
		}
	}()

	count, err := coll.CountDocuments(ctx)
	if err != nil {
		return nil, core.NewError(core.KindConnectionFailure, op, err, errCtx)
	}
	if count == 0 {
		return nil, core.NewError(core.KindEmptyCollection, op, core.ErrEmptyCollection, errCtx)
	}

	docs, err := coll.FindAll(ctx)
	if err != nil {
		return nil, core.NewError(core.KindConnectionFailure, op, err, errCtx)
	}
	if len(docs) == 0 {
		return nil, core.NewError(core.KindEmptyCollection, op, core.ErrEmptyCollection, errCtx)
	}

	table := core.NewTable(docs).
		DropColumn(core.IdentityColumn).
		ReplaceString(core.MissingSentinel, nil)
	if err := core.ValidateTable(table); err != nil {
		return nil, core.NewError(core.KindUnknown, op, err, errCtx)
	}

	d.logger.Info("exported collection",
		"database", d.cfg.DatabaseName,
		"collection", d.cfg.CollectionName,
		"rows", table.Len(),
		"columns", len(table.Columns))
	return table, nil
}

// ExportDataIntoFeatureStore writes the full table to the feature store file
// and returns it unchanged.
func (d *DataIngestion) ExportDataIntoFeatureStore(table *core.Table) (*core.Table, error) {
	path := d.cfg.FeatureStoreFilePath
	if err := d.writer.WriteTable(path, table); err != nil {
		return nil, core.NewError(core.KindIOFailure, "export feature store", err, map[string]any{"path": path})
	}

	d.logger.Info("wrote feature store", "path", path, "rows", table.Len())
	return table, nil
}

// SplitDataAsTrainTest splits the table by the configured ratio and writes
// the training and test files.
func (d *DataIngestion) SplitDataAsTrainTest(table *core.Table) error {
	_, _, err := d.splitAndWrite(table)
	return err
}

func (d *DataIngestion) splitAndWrite(table *core.Table) (train, test *core.Table, err error) {
	const op = "split train test"

	train, test, err = split.TrainTestSplit(table, d.cfg.TrainTestSplitRatio, d.cfg.RandomSeed)
	if err != nil {
		return nil, nil, core.NewError(core.KindSplitFailure, op, err, map[string]any{
			"ratio": d.cfg.TrainTestSplitRatio,
			"rows":  table.Len(),
		})
	}
	d.logger.Debug("performed train test split",
		"train_rows", train.Len(),
		"test_rows", test.Len(),
		"seed", d.cfg.RandomSeed)

	if err := d.writer.WriteTable(d.cfg.TrainingFilePath, train); err != nil {
		return nil, nil, core.NewError(core.KindIOFailure, op, err, map[string]any{"path": d.cfg.TrainingFilePath})
	}
	if err := d.writer.WriteTable(d.cfg.TestingFilePath, test); err != nil {
		return nil, nil, core.NewError(core.KindIOFailure, op, err, map[string]any{"path": d.cfg.TestingFilePath})
	}

	d.logger.Info("exported train and test files",
		"train_path", d.cfg.TrainingFilePath,
		"test_path", d.cfg.TestingFilePath)
	return train, test, nil
}

// InitiateDataIngestion runs the stage: read, store, split. A manifest is
// written when the configuration names one.
func (d *DataIngestion) InitiateDataIngestion(ctx context.Context) (*core.DataIngestionArtifact, error) {
	table, err := d.ExportCollectionAsTable(ctx)
	if err != nil {
		return nil, err
	}

	table, err = d.ExportDataIntoFeatureStore(table)
	if err != nil {
		return nil, err
	}

	train, test, err := d.splitAndWrite(table)
	if err != nil {
		return nil, err
	}

	if d.cfg.ManifestFilePath != "" {
		manifest, err := d.buildManifest(table, train, test)
		if err == nil {
			err = writeManifest(d.writer.Fs(), d.cfg.ManifestFilePath, manifest)
		}
		if err != nil {
			return nil, core.NewError(core.KindIOFailure, "write manifest", err, map[string]any{"path": d.cfg.ManifestFilePath})
		}
	}

	artifact := &core.DataIngestionArtifact{
		TrainedFilePath: d.cfg.TrainingFilePath,
		TestFilePath:    d.cfg.TestingFilePath,
	}
	d.logger.Info("data ingestion completed", "artifact", artifact.String())
	return artifact, nil
}
