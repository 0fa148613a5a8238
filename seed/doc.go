// Package seed loads tabular records into a writable collection.
//
// It is the inverse of the ingestion stage and is used to populate a
// database from a CSV file before training:
//
//	table, err := featurestore.ReadTable(afero.NewOsFs(), "Network_Data/phisingData.csv")
//	seeder, err := seed.NewSeeder(seed.WithWorkers(4), seed.WithProgress(os.Stderr, 1000))
//	defer seeder.Release()
//	n, err := seeder.Seed(ctx, collection, table)
//
// Rows are converted to documents with ParseValue, split into batches and
// inserted concurrently on a bounded worker pool. Failed batch inserts are
// retried with exponential backoff.
package seed
