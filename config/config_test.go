package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "networksecurity", cfg.PipelineName)
	assert.Equal(t, "Artifacts", cfg.ArtifactName)
	assert.Equal(t, "networksecurity", cfg.DatabaseName)
	assert.Equal(t, "networkML", cfg.CollectionName)
	assert.Equal(t, 0.2, cfg.TrainTestSplitRatio)
	assert.Equal(t, uint64(42), cfg.RandomSeed)
	assert.True(t, cfg.WriteManifest)
	assert.Equal(t, SourceMongoDB, cfg.Source.Kind)
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("with multiple options", func(t *testing.T) {
		cfg := NewConfig(
			WithPipelineName("phishing"),
			WithArtifactName("out"),
			WithDatabase("db"),
			WithCollection("coll"),
			WithSplitRatio(0.3),
			WithRandomSeed(7),
			WithManifest(false),
			WithSource(SourceBadger, "", "/data"),
		)

		assert.Equal(t, "phishing", cfg.PipelineName)
		assert.Equal(t, "out", cfg.ArtifactName)
		assert.Equal(t, "db", cfg.DatabaseName)
		assert.Equal(t, "coll", cfg.CollectionName)
		assert.Equal(t, 0.3, cfg.TrainTestSplitRatio)
		assert.Equal(t, uint64(7), cfg.RandomSeed)
		assert.False(t, cfg.WriteManifest)
		assert.Equal(t, SourceConfig{Kind: SourceBadger, Path: "/data"}, cfg.Source)
	})
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    []ConfigOption
		wantErr error
	}{
		{
			name: "valid mongodb",
			opts: []ConfigOption{WithSource(SourceMongoDB, "mongodb://localhost:27017", "")},
		},
		{
			name: "valid badger",
			opts: []ConfigOption{WithSource(SourceBadger, "", "/tmp/db")},
		},
		{
			name: "valid mysql",
			opts: []ConfigOption{WithSource(SourceMySQL, "user:pw@tcp(localhost:3306)/networksecurity", "")},
		},
		{
			name:    "mongodb without uri",
			opts:    []ConfigOption{WithSource(SourceMongoDB, "", "")},
			wantErr: ErrSourceURIRequired,
		},
		{
			name:    "mysql without uri",
			opts:    []ConfigOption{WithSource(SourceMySQL, "", "")},
			wantErr: ErrSourceURIRequired,
		},
		{
			name:    "badger without path",
			opts:    []ConfigOption{WithSource(SourceBadger, "", "")},
			wantErr: ErrSourcePathRequired,
		},
		{
			name:    "unknown source",
			opts:    []ConfigOption{WithSource("postgres", "x", "")},
			wantErr: ErrUnknownSourceKind,
		},
		{
			name:    "ratio zero",
			opts:    []ConfigOption{WithSource(SourceBadger, "", "/tmp/db"), WithSplitRatio(0)},
			wantErr: ErrInvalidSplitRatio,
		},
		{
			name:    "ratio one",
			opts:    []ConfigOption{WithSource(SourceBadger, "", "/tmp/db"), WithSplitRatio(1)},
			wantErr: ErrInvalidSplitRatio,
		},
		{
			name:    "empty database",
			opts:    []ConfigOption{WithSource(SourceBadger, "", "/tmp/db"), WithDatabase("")},
			wantErr: ErrDatabaseRequired,
		},
		{
			name:    "empty collection",
			opts:    []ConfigOption{WithSource(SourceBadger, "", "/tmp/db"), WithCollection("")},
			wantErr: ErrCollectionRequired,
		},
		{
			name:    "empty artifact name",
			opts:    []ConfigOption{WithSource(SourceBadger, "", "/tmp/db"), WithArtifactName("")},
			wantErr: ErrArtifactNameRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewConfig(tt.opts...).Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("file overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "netsec.yaml")
		content := `
database_name: phishing
train_test_split_ratio: 0.25
source:
  kind: badger
  path: /var/lib/netsec
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, "phishing", cfg.DatabaseName)
		assert.Equal(t, 0.25, cfg.TrainTestSplitRatio)
		assert.Equal(t, SourceBadger, cfg.Source.Kind)
		assert.Equal(t, "/var/lib/netsec", cfg.Source.Path)
		// Untouched keys keep defaults
		assert.Equal(t, "networkML", cfg.CollectionName)
		assert.Equal(t, uint64(42), cfg.RandomSeed)
		assert.True(t, cfg.WriteManifest)
		require.NoError(t, cfg.Validate())
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := LoadConfig("")
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("source: [unclosed"), 0644))
		_, err := LoadConfig(path)
		assert.ErrorContains(t, err, "parse config")
	})
}

func TestLoadEnvAndApply(t *testing.T) {
	t.Run("dotenv supplies mongo url", func(t *testing.T) {
		t.Setenv(MongoURLEnv, "")
		os.Unsetenv(MongoURLEnv)

		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("MONGO_DB_URL=mongodb://envhost:27017\n"), 0644))

		require.NoError(t, LoadEnv(path))

		cfg := NewConfig()
		cfg.ApplyEnv()
		assert.Equal(t, "mongodb://envhost:27017", cfg.Source.URI)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("explicit uri wins", func(t *testing.T) {
		t.Setenv(MongoURLEnv, "mongodb://envhost:27017")

		cfg := NewConfig(WithSource(SourceMongoDB, "mongodb://flag:27017", ""))
		cfg.ApplyEnv()
		assert.Equal(t, "mongodb://flag:27017", cfg.Source.URI)
	})

	t.Run("missing env file is ignored", func(t *testing.T) {
		assert.NoError(t, LoadEnv(filepath.Join(t.TempDir(), "absent.env")))
	})
}

func TestDataIngestionConfigLayout(t *testing.T) {
	ts := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	cfg := NewConfig()

	pipeline := NewTrainingPipelineConfig(cfg, ts)
	assert.Equal(t, filepath.Join("Artifacts", "03_14_2025_09_26_53"), pipeline.ArtifactDir)
	assert.Equal(t, "networksecurity", pipeline.PipelineName)

	ingestion := NewDataIngestionConfig(pipeline, cfg)
	root := filepath.Join("Artifacts", "03_14_2025_09_26_53", "data_ingestion")
	assert.Equal(t, root, ingestion.DataIngestionDir)
	assert.Equal(t, filepath.Join(root, "feature_store", "phisingData.csv"), ingestion.FeatureStoreFilePath)
	assert.Equal(t, filepath.Join(root, "ingested", "train.csv"), ingestion.TrainingFilePath)
	assert.Equal(t, filepath.Join(root, "ingested", "test.csv"), ingestion.TestingFilePath)
	assert.Equal(t, filepath.Join(root, "ingestion.yaml"), ingestion.ManifestFilePath)
	assert.Equal(t, 0.2, ingestion.TrainTestSplitRatio)
	assert.Equal(t, uint64(42), ingestion.RandomSeed)
	assert.Equal(t, "networkML", ingestion.CollectionName)

	noManifest := NewDataIngestionConfig(pipeline, NewConfig(WithManifest(false)))
	assert.Empty(t, noManifest.ManifestFilePath)
}
