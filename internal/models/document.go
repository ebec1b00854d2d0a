package models

import "time"

// Document is an uploaded file's metadata; the bytes live in the
// storage backend under StorageKey.
type Document struct {
	ID          int64
	UserID      int64
	Name        string
	StorageKey  string
	SizeBytes   int64
	ContentType string
	CreatedAt   time.Time
}
