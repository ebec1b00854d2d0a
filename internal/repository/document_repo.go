package repository

import (
	"database/sql"
	"fmt"

	"flicksclub/internal/database"
	"flicksclub/internal/models"
)

// DocumentRepository handles database operations for uploaded documents
type DocumentRepository struct {
	db database.DBTX
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db database.DBTX) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// CreateDocument inserts a new document record
func (r *DocumentRepository) CreateDocument(d *models.Document) (*models.Document, error) {
	query := `
		INSERT INTO documents (user_id, name, storage_key, content_type, size_bytes)
		VALUES (?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		d.UserID, d.Name, d.StorageKey, d.ContentType, d.SizeBytes,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	return r.GetDocumentByID(id)
}

const documentColumns = "id, user_id, name, storage_key, content_type, size_bytes, created_at"

// GetDocumentByID retrieves one document record
func (r *DocumentRepository) GetDocumentByID(id int64) (*models.Document, error) {
	query := "SELECT " + documentColumns + " FROM documents WHERE id = ?"

	d := &models.Document{}
	err := r.db.QueryRow(query, id).Scan(
		&d.ID,
		&d.UserID,
		&d.Name,
		&d.StorageKey,
		&d.ContentType,
		&d.SizeBytes,
		&d.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	return d, nil
}

// GetDocumentByStorageKey retrieves a document record by its storage key
func (r *DocumentRepository) GetDocumentByStorageKey(key string) (*models.Document, error) {
	query := "SELECT " + documentColumns + " FROM documents WHERE storage_key = ?"

	d := &models.Document{}
	err := r.db.QueryRow(query, key).Scan(
		&d.ID,
		&d.UserID,
		&d.Name,
		&d.StorageKey,
		&d.ContentType,
		&d.SizeBytes,
		&d.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	return d, nil
}

// GetDocumentsByUser retrieves a user's documents, newest first
func (r *DocumentRepository) GetDocumentsByUser(userID int64) ([]models.Document, error) {
	query := "SELECT " + documentColumns + " FROM documents WHERE user_id = ? ORDER BY created_at DESC"

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		var d models.Document
		err := rows.Scan(&d.ID, &d.UserID, &d.Name, &d.StorageKey, &d.ContentType, &d.SizeBytes, &d.CreatedAt)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}

	return docs, rows.Err()
}

// DeleteDocument removes a document record
func (r *DocumentRepository) DeleteDocument(id int64) error {
	_, err := r.db.Exec("DELETE FROM documents WHERE id = ?", id)
	return err
}
