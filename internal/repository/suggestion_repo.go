package repository

import (
	"database/sql"
	"fmt"

	"flicksclub/internal/database"
	"flicksclub/internal/models"
)

// SuggestionRepository handles database operations for movie suggestions
type SuggestionRepository struct {
	db database.DBTX
}

// NewSuggestionRepository creates a new suggestion repository
func NewSuggestionRepository(db database.DBTX) *SuggestionRepository {
	return &SuggestionRepository{db: db}
}

// CreateSuggestion inserts a new suggestion
func (r *SuggestionRepository) CreateSuggestion(title, imdbLink string, userID int64) (*models.SuggestedFlick, error) {
	query := `
		INSERT INTO suggested_flicks (title, imdb_link, suggested_by_user_id)
		VALUES (?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, title, nullString(imdbLink), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to create suggestion: %w", err)
	}

	return r.GetSuggestionByID(id)
}

// GetSuggestionByID retrieves one suggestion
func (r *SuggestionRepository) GetSuggestionByID(id int64) (*models.SuggestedFlick, error) {
	query := `
		SELECT s.id, s.title, COALESCE(s.imdb_link, ''), s.suggested_by_user_id, u.name, s.created_at
		FROM suggested_flicks s
		JOIN users u ON u.id = s.suggested_by_user_id
		WHERE s.id = ?
	`
	suggestion := &models.SuggestedFlick{}
	err := r.db.QueryRow(query, id).Scan(
		&suggestion.ID,
		&suggestion.Title,
		&suggestion.IMDBLink,
		&suggestion.SuggestedByUserID,
		&suggestion.SuggestedByName,
		&suggestion.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get suggestion: %w", err)
	}

	return suggestion, nil
}

// GetAllSuggestions retrieves all suggestions, newest first
func (r *SuggestionRepository) GetAllSuggestions() ([]models.SuggestedFlick, error) {
	query := `
		SELECT s.id, s.title, COALESCE(s.imdb_link, ''), s.suggested_by_user_id, u.name, s.created_at
		FROM suggested_flicks s
		JOIN users u ON u.id = s.suggested_by_user_id
		ORDER BY s.created_at DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list suggestions: %w", err)
	}
	defer rows.Close()

	var suggestions []models.SuggestedFlick
	for rows.Next() {
		var s models.SuggestedFlick
		err := rows.Scan(
			&s.ID,
			&s.Title,
			&s.IMDBLink,
			&s.SuggestedByUserID,
			&s.SuggestedByName,
			&s.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		suggestions = append(suggestions, s)
	}

	return suggestions, rows.Err()
}

// DeleteSuggestion removes a suggestion
func (r *SuggestionRepository) DeleteSuggestion(id int64) error {
	_, err := r.db.Exec("DELETE FROM suggested_flicks WHERE id = ?", id)
	return err
}
