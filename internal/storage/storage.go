// Package storage abstracts where uploaded document bytes live. Two
// backends exist: local disk for single-host deployments and S3 for
// anything that needs durable or shared storage. Database rows only
// ever hold the storage key.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrNotFound is returned when no object exists under a key
var ErrNotFound = errors.New("storage: object not found")

// Store reads and writes document bytes by key
type Store interface {
	// Save writes the object under key, replacing any previous object
	Save(ctx context.Context, key, contentType string, r io.Reader) error

	// Open returns a reader over the object's bytes
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// SignedURL returns a time-limited download URL for the object
	SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}
