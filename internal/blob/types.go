// Package blob stores whole documents by key on the local filesystem, in
// memory, or in an S3-compatible bucket.
package blob

import (
	"context"
	"errors"
)

type Driver string

const (
	DriverFilesystem Driver = "fs"
	DriverMemory     Driver = "memory"
	DriverS3         Driver = "s3"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("blob not found")

// Store reads and overwrites whole documents.
type Store interface {
	Driver() Driver
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
}

// Watcher is implemented by stores that can report changes made outside the
// process. onChange receives the key that changed. Watch blocks until ctx is
// done.
type Watcher interface {
	Watch(ctx context.Context, onChange func(key string)) error
}
