package repository

import "errors"

var (
	// ErrNotFound is returned when a record with the requested id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrStorageUnavailable is returned when a collection cannot be persisted
	// or, during a mutation, cannot be read back from the backing store.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
