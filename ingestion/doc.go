// Package ingestion implements the data ingestion stage of the training
// pipeline.
//
// DataIngestion reads every document of a configured collection, stores the
// full table in the feature store and splits it into training and test
// files:
//
//	di, err := ingestion.NewDataIngestion(cfg, src, ingestion.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	artifact, err := di.InitiateDataIngestion(ctx)
//
// The steps run strictly in sequence and the first failure aborts the run.
// Every failure is a *core.Error whose kind tells the caller which step
// failed. Files written before a failure are left in place.
package ingestion
