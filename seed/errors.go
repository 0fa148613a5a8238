package seed

import "errors"

var (
	// ErrCollectionRequired is returned when no collection is given to Seed.
	ErrCollectionRequired = errors.New("collection required")

	// ErrInvalidMaxAttempts is returned when maxAttempts is not positive.
	ErrInvalidMaxAttempts = errors.New("max attempts must be greater than 0")
)
