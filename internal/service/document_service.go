package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"flicksclub/internal/models"
	"flicksclub/internal/repository"
	"flicksclub/internal/storage"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrFileTooLarge     = errors.New("file exceeds the upload size limit")
)

// storageKeyLength is the length of the random part of a storage key
const storageKeyLength = 21

// signedURLExpiry is how long a download link stays valid
const signedURLExpiry = 1 * time.Hour

// DocumentService handles document upload business logic. Metadata
// lives in the database, bytes in the storage backend.
type DocumentService struct {
	documentRepo *repository.DocumentRepository
	store        storage.Store
	maxSize      int64
}

// NewDocumentService creates a new document service
func NewDocumentService(documentRepo *repository.DocumentRepository, store storage.Store, maxSize int64) *DocumentService {
	return &DocumentService{
		documentRepo: documentRepo,
		store:        store,
		maxSize:      maxSize,
	}
}

// Upload stores a file and records its metadata. The reader is capped
// at the configured size limit; oversize uploads fail and leave nothing
// behind.
func (s *DocumentService) Upload(ctx context.Context, userID int64, name, contentType string, size int64, r io.Reader) (*models.Document, error) {
	if name == "" {
		return nil, errors.New("file name is required")
	}
	if size > s.maxSize {
		return nil, ErrFileTooLarge
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	random, err := gonanoid.New(storageKeyLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate storage key: %w", err)
	}
	key := random + filepath.Ext(name)

	// LimitReader guards against clients lying about the size
	limited := io.LimitReader(r, s.maxSize+1)
	if err := s.store.Save(ctx, key, contentType, limited); err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	doc, err := s.documentRepo.CreateDocument(&models.Document{
		UserID:      userID,
		Name:        name,
		StorageKey:  key,
		ContentType: contentType,
		SizeBytes:   size,
	})
	if err != nil {
		// Keep storage and metadata consistent on failure
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			log.Printf("Warning: failed to clean up orphaned object %s: %v", key, delErr)
		}
		return nil, err
	}

	return doc, nil
}

// GetDocuments returns a user's documents, newest first
func (s *DocumentService) GetDocuments(userID int64) ([]models.Document, error) {
	return s.documentRepo.GetDocumentsByUser(userID)
}

// GetDocument returns one document if the caller owns it
func (s *DocumentService) GetDocument(id, userID int64) (*models.Document, error) {
	doc, err := s.documentRepo.GetDocumentByID(id)
	if err != nil {
		return nil, err
	}
	if doc == nil || doc.UserID != userID {
		return nil, ErrDocumentNotFound
	}
	return doc, nil
}

// SignedURL returns a time-limited download link for a document the
// caller owns.
func (s *DocumentService) SignedURL(ctx context.Context, id, userID int64) (string, error) {
	doc, err := s.GetDocument(id, userID)
	if err != nil {
		return "", err
	}
	return s.store.SignedURL(ctx, doc.StorageKey, signedURLExpiry)
}

// Open returns the bytes of a stored object by storage key, along with
// its metadata record.
func (s *DocumentService) Open(ctx context.Context, key string) (*models.Document, io.ReadCloser, error) {
	doc, err := s.documentRepo.GetDocumentByStorageKey(key)
	if err != nil {
		return nil, nil, err
	}
	if doc == nil {
		return nil, nil, ErrDocumentNotFound
	}

	rc, err := s.store.Open(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	return doc, rc, nil
}

// Delete removes a document's bytes and its metadata record
func (s *DocumentService) Delete(ctx context.Context, id, userID int64) error {
	doc, err := s.GetDocument(id, userID)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, doc.StorageKey); err != nil {
		return fmt.Errorf("failed to delete stored file: %w", err)
	}
	return s.documentRepo.DeleteDocument(id)
}
