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

package netsec

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/poiesic/netsec/config"
	"github.com/poiesic/netsec/core"
	"github.com/poiesic/netsec/ingestion"
	"github.com/poiesic/netsec/source"
	"github.com/spf13/afero"
)

// ErrConfigRequired is returned when no configuration is given.
var ErrConfigRequired = errors.New("config required")

// TrainingPipeline runs the stages of a training run against one source.
type TrainingPipeline struct {
	cfg          *config.Config
	pipelineCfg  config.TrainingPipelineConfig
	ingestionCfg config.DataIngestionConfig
	src          source.Source
	fs           afero.Fs
	now          func() time.Time
	logger       *slog.Logger
}

// Option configures a TrainingPipeline.
type Option func(*TrainingPipeline)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *TrainingPipeline) {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
	}
}

// WithFs sets the filesystem artifacts are written to.
// Default is the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(p *TrainingPipeline) {
		if fs != nil {
			p.fs = fs
		}
	}
}

// WithClock sets the time source for the artifact directory timestamp.
func WithClock(now func() time.Time) Option {
	return func(p *TrainingPipeline) {
		if now != nil {
			p.now = now
		}
	}
}

// WithSource uses src instead of opening the configured source.
// The pipeline does not close an injected source.
func WithSource(src source.Source) Option {
	return func(p *TrainingPipeline) {
		p.src = src
	}
}

// NewTrainingPipeline validates cfg and fixes the artifact layout for the run.
func NewTrainingPipeline(cfg *config.Config, opts ...Option) (*TrainingPipeline, error) {
	if cfg == nil {
		return nil, ErrConfigRequired
	}

	p := &TrainingPipeline{
		cfg:    cfg,
		fs:     afero.NewOsFs(),
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}

	// An injected source makes the source settings irrelevant.
	if p.src == nil {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	} else if err := validateStage(cfg); err != nil {
		return nil, err
	}

	p.pipelineCfg = config.NewTrainingPipelineConfig(cfg, p.now())
	p.ingestionCfg = config.NewDataIngestionConfig(p.pipelineCfg, cfg)
	return p, nil
}

func validateStage(cfg *config.Config) error {
	stage := *cfg
	stage.Source = config.SourceConfig{Kind: config.SourceBadger, Path: "-"}
	return stage.Validate()
}

// PipelineConfig returns the run layout.
func (p *TrainingPipeline) PipelineConfig() config.TrainingPipelineConfig {
	return p.pipelineCfg
}

// DataIngestionConfig returns the ingestion settings for the run.
func (p *TrainingPipeline) DataIngestionConfig() config.DataIngestionConfig {
	return p.ingestionCfg
}

// StartDataIngestion runs the ingestion stage on src.
func (p *TrainingPipeline) StartDataIngestion(ctx context.Context, src source.Source) (*core.DataIngestionArtifact, error) {
	p.logger.Info("starting data ingestion",
		"database", p.ingestionCfg.DatabaseName,
		"collection", p.ingestionCfg.CollectionName)

	di, err := ingestion.NewDataIngestion(p.ingestionCfg, src,
		ingestion.WithLogger(p.logger),
		ingestion.WithFs(p.fs),
		ingestion.WithClock(p.now))
	if err != nil {
		return nil, err
	}
	return di.InitiateDataIngestion(ctx)
}

// Start opens the source, runs every stage and releases the source.
func (p *TrainingPipeline) Start(ctx context.Context) (*core.DataIngestionArtifact, error) {
	src := p.src
	if src == nil {
		opened, err := OpenSource(p.cfg.Source, p.logger)
		if err != nil {
			return nil, core.NewError(core.KindConnectionFailure, "open source", err, map[string]any{"kind": p.cfg.Source.Kind})
		}
		defer func() {
			if err := opened.Close(context.WithoutCancel(ctx)); err != nil {
				p.logger.Error("error closing source", "err", err)
			}
		}()
		src = opened
	}

	p.logger.Info("starting training pipeline",
		"pipeline", p.pipelineCfg.PipelineName,
		"artifact_dir", p.pipelineCfg.ArtifactDir)

	artifact, err := p.StartDataIngestion(ctx, src)
	if err != nil {
		return nil, err
	}

	p.logger.Info("data ingestion artifact", "trained_file_path", artifact.TrainedFilePath, "test_file_path", artifact.TestFilePath)
	return artifact, nil
}
