package storage

import (
	"context"
	"io"
)

// Storage defines the interface for binary object storage.
type Storage interface {
	// Save writes content to the given relative path.
	Save(ctx context.Context, path string, content io.Reader) error

	// Get opens the object at the given relative path.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the object at the given relative path.
	// Deleting a missing object is not an error.
	Delete(ctx context.Context, path string) error
}
