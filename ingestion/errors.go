package ingestion

import "errors"

var (
	// ErrSourceRequired is returned when a source is not provided.
	ErrSourceRequired = errors.New("source required")

	// ErrFsRequired is returned when WithFs is given a nil filesystem.
	ErrFsRequired = errors.New("filesystem required")
)
