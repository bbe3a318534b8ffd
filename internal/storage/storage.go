package storage

import (
	"context"
	"errors"
	"io"
	"regexp"
)

// ErrInvalidKey is returned for keys that fail ValidKey. A key is an
// opaque generated filename, never a path.
var ErrInvalidKey = errors.New("storage: invalid key")

// Keys are server-generated names: no separators, no leading dot, so a
// key can never resolve outside the storage root.
var keyPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidKey reports whether key is safe to resolve inside the root.
func ValidKey(key string) bool {
	return keyPattern.MatchString(key)
}

// Storage is the file store the ingestion pipeline writes to and the
// streaming responder reads from.
type Storage interface {
	// Save stores the reader's bytes under key and returns the number
	// of bytes written.
	Save(ctx context.Context, key string, reader io.Reader) (int64, error)

	// Open returns a read handle for key. The caller owns the cursor
	// and must close it.
	Open(ctx context.Context, key string) (io.ReadSeekCloser, error)

	// Delete removes the file stored under key. Deleting a missing key
	// is not an error.
	Delete(ctx context.Context, key string) error

	// Exists reports whether a file is stored under key.
	Exists(ctx context.Context, key string) (bool, error)

	// Size returns the stored size in bytes.
	Size(ctx context.Context, key string) (int64, error)
}
