package config

// Training pipeline naming constants.
const (
	TargetColumn  = "Result"
	PipelineName  = "networksecurity"
	ArtifactDir   = "Artifacts"
	FileName      = "phisingData.csv"
	TrainFileName = "train.csv"
	TestFileName  = "test.csv"

	// TimestampLayout formats the per-run artifact directory.
	TimestampLayout = "01_02_2006_15_04_05"
)

// Data ingestion constants.
const (
	DataIngestionCollectionName      = "networkML"
	DataIngestionDatabaseName        = "networksecurity"
	DataIngestionDirName             = "data_ingestion"
	DataIngestionFeatureStoreDir     = "feature_store"
	DataIngestionIngestedDir         = "ingested"
	DataIngestionManifestFileName    = "ingestion.yaml"
	DataIngestionTrainTestSplitRatio = 0.2
	DataIngestionRandomSeed          = 42
)
