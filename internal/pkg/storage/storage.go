package storage

import (
	"context"
	"io"
)

// FileStorage is the sink export files are written to.
type FileStorage interface {
	// Save writes the content of r under name and returns the full path of the stored file
	Save(ctx context.Context, r io.Reader, name string) (string, error)

	// Exists checks if file exists
	Exists(ctx context.Context, name string) (bool, error)
}
