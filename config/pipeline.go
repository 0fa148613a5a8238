package config

import (
	"path/filepath"
	"time"
)

// TrainingPipelineConfig locates the artifact tree of a single run.
type TrainingPipelineConfig struct {
	PipelineName string
	ArtifactName string
	// ArtifactDir is ArtifactName/<Timestamp in TimestampLayout>.
	ArtifactDir string
	Timestamp   time.Time
}

// NewTrainingPipelineConfig derives the run layout from cfg and the run start time.
func NewTrainingPipelineConfig(cfg *Config, timestamp time.Time) TrainingPipelineConfig {
	return TrainingPipelineConfig{
		PipelineName: cfg.PipelineName,
		ArtifactName: cfg.ArtifactName,
		ArtifactDir:  filepath.Join(cfg.ArtifactName, timestamp.Format(TimestampLayout)),
		Timestamp:    timestamp,
	}
}

// DataIngestionConfig is the read-only configuration of the ingestion stage.
// It is passed and stored by value.
type DataIngestionConfig struct {
	DatabaseName         string
	CollectionName       string
	DataIngestionDir     string
	FeatureStoreFilePath string
	TrainingFilePath     string
	TestingFilePath      string
	// ManifestFilePath is empty when no manifest should be written.
	ManifestFilePath string
	// TrainTestSplitRatio is the test fraction.
	TrainTestSplitRatio float64
	RandomSeed          uint64
}

// NewDataIngestionConfig lays out the ingestion outputs under the run's artifact directory:
//
//	<ArtifactDir>/data_ingestion/feature_store/phisingData.csv
//	<ArtifactDir>/data_ingestion/ingested/train.csv
//	<ArtifactDir>/data_ingestion/ingested/test.csv
//	<ArtifactDir>/data_ingestion/ingestion.yaml
func NewDataIngestionConfig(pipeline TrainingPipelineConfig, cfg *Config) DataIngestionConfig {
	dir := filepath.Join(pipeline.ArtifactDir, DataIngestionDirName)
	ingested := filepath.Join(dir, DataIngestionIngestedDir)

	manifest := ""
	if cfg.WriteManifest {
		manifest = filepath.Join(dir, DataIngestionManifestFileName)
	}

	return DataIngestionConfig{
		DatabaseName:         cfg.DatabaseName,
		CollectionName:       cfg.CollectionName,
		DataIngestionDir:     dir,
		FeatureStoreFilePath: filepath.Join(dir, DataIngestionFeatureStoreDir, FileName),
		TrainingFilePath:     filepath.Join(ingested, TrainFileName),
		TestingFilePath:      filepath.Join(ingested, TestFileName),
		ManifestFilePath:     manifest,
		TrainTestSplitRatio:  cfg.TrainTestSplitRatio,
		RandomSeed:           cfg.RandomSeed,
	}
}
