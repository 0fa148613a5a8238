package config

import "errors"

var (
	// ErrArtifactNameRequired is returned when the artifact root is empty.
	ErrArtifactNameRequired = errors.New("config: artifact name is required")

	// ErrDatabaseRequired is returned when no database name is configured.
	ErrDatabaseRequired = errors.New("config: database name is required")

	// ErrCollectionRequired is returned when no collection name is configured.
	ErrCollectionRequired = errors.New("config: collection name is required")

	// ErrInvalidSplitRatio is returned when the split ratio is outside (0, 1).
	ErrInvalidSplitRatio = errors.New("config: train_test_split_ratio must be between 0 and 1 exclusive")

	// ErrUnknownSourceKind is returned for an unsupported source kind.
	ErrUnknownSourceKind = errors.New("config: unknown source kind")

	// ErrSourceURIRequired is returned when a network source has no URI.
	ErrSourceURIRequired = errors.New("config: source uri is required")

	// ErrSourcePathRequired is returned when a badger source has no path.
	ErrSourcePathRequired = errors.New("config: source path is required")
)
