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


package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/subosito/gotenv"
	"gopkg.in/yaml.v3"
)

// Source kinds understood by the pipeline.
const (
	SourceMongoDB = "mongodb"
	SourceBadger  = "badger"
	SourceMySQL   = "mysql"
)

// MongoURLEnv is the environment variable holding the MongoDB connection string.
const MongoURLEnv = "MONGO_DB_URL"

// SourceConfig selects and locates the document source.
type SourceConfig struct {
	// Kind is one of "mongodb", "badger" or "mysql".
	Kind string `yaml:"kind"`

	// URI is the connection string for mongodb and mysql sources.
	// For mongodb it defaults to $MONGO_DB_URL.
	URI string `yaml:"uri"`

	// Path is the BadgerDB directory for badger sources.
	Path string `yaml:"path"`
}

// Config holds the settings of a training pipeline run.
type Config struct {
	// PipelineName identifies the pipeline in logs.
	// Default: "networksecurity"
	PipelineName string `yaml:"pipeline_name"`

	// ArtifactName is the root directory for run artifacts.
	// Each run writes into ArtifactName/<timestamp>.
	// Default: "Artifacts"
	ArtifactName string `yaml:"artifact_name"`

	// DatabaseName is the source database (schema for mysql).
	DatabaseName string `yaml:"database_name"`

	// CollectionName is the source collection (table for mysql).
	CollectionName string `yaml:"collection_name"`

	// TrainTestSplitRatio is the fraction of rows assigned to the test set.
	// Must be in (0, 1). Default: 0.2
	TrainTestSplitRatio float64 `yaml:"train_test_split_ratio"`

	// RandomSeed seeds the train/test permutation.
	// Default: 42
	RandomSeed uint64 `yaml:"random_seed"`

	// WriteManifest controls whether ingestion.yaml is written with the outputs.
	// Default: true
	WriteManifest bool `yaml:"write_manifest"`

	Source SourceConfig `yaml:"source"`
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithPipelineName sets the pipeline name.
func WithPipelineName(name string) ConfigOption {
	return func(c *Config) {
		c.PipelineName = name
	}
}

// WithArtifactName sets the artifact root directory.
func WithArtifactName(name string) ConfigOption {
	return func(c *Config) {
		c.ArtifactName = name
	}
}

// WithDatabase sets the source database name.
func WithDatabase(name string) ConfigOption {
	return func(c *Config) {
		c.DatabaseName = name
	}
}

// WithCollection sets the source collection name.
func WithCollection(name string) ConfigOption {
	return func(c *Config) {
		c.CollectionName = name
	}
}

// WithSplitRatio sets the test fraction of the train/test split.
func WithSplitRatio(ratio float64) ConfigOption {
	return func(c *Config) {
		c.TrainTestSplitRatio = ratio
	}
}

// WithRandomSeed sets the split seed.
func WithRandomSeed(seed uint64) ConfigOption {
	return func(c *Config) {
		c.RandomSeed = seed
	}
}

// WithManifest enables or disables the ingestion manifest.
func WithManifest(enabled bool) ConfigOption {
	return func(c *Config) {
		c.WriteManifest = enabled
	}
}

// WithSource sets the document source.
func WithSource(kind, uri, path string) ConfigOption {
	return func(c *Config) {
		c.Source = SourceConfig{Kind: kind, URI: uri, Path: path}
	}
}

// DefaultConfig returns a Config with the stage's naming constants.
func DefaultConfig() *Config {
	return &Config{
		PipelineName:        PipelineName,
		ArtifactName:        ArtifactDir,
		DatabaseName:        DataIngestionDatabaseName,
		CollectionName:      DataIngestionCollectionName,
		TrainTestSplitRatio: DataIngestionTrainTestSplitRatio,
		RandomSeed:          DataIngestionRandomSeed,
		WriteManifest:       true,
		Source: SourceConfig{
			Kind: SourceMongoDB,
		},
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithDatabase("networksecurity"),
//	    WithSource(SourceBadger, "", "/var/lib/netsec"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// LoadConfig reads a YAML file over the defaults.
// Keys absent from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// LoadEnv loads KEY=VALUE pairs from dotenv files into the process environment.
// Variables already set are not overridden and missing files are ignored.
func LoadEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, name := range filenames {
		if err := gotenv.Load(name); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load env file %s: %w", name, err)
		}
	}
	return nil
}

// ApplyEnv fills settings left empty from the environment.
func (c *Config) ApplyEnv() {
	if c.Source.Kind == SourceMongoDB && c.Source.URI == "" {
		c.Source.URI = os.Getenv(MongoURLEnv)
	}
}

// Validate checks that the configuration is valid and complete.
func (c *Config) Validate() error {
	if c.ArtifactName == "" {
		return ErrArtifactNameRequired
	}
	if c.DatabaseName == "" {
		return ErrDatabaseRequired
	}
	if c.CollectionName == "" {
		return ErrCollectionRequired
	}
	if !(c.TrainTestSplitRatio > 0 && c.TrainTestSplitRatio < 1) {
		return fmt.Errorf("%w: got %v", ErrInvalidSplitRatio, c.TrainTestSplitRatio)
	}

	switch c.Source.Kind {
	case SourceMongoDB:
		if c.Source.URI == "" {
			return fmt.Errorf("%w: set source.uri or %s", ErrSourceURIRequired, MongoURLEnv)
		}
	case SourceMySQL:
		if c.Source.URI == "" {
			return ErrSourceURIRequired
		}
	case SourceBadger:
		if c.Source.Path == "" {
			return ErrSourcePathRequired
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSourceKind, c.Source.Kind)
	}
	return nil
}
