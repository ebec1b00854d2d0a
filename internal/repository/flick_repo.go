package repository

import (
	"database/sql"
	"fmt"
	"time"

	"flicksclub/internal/database"
	"flicksclub/internal/models"
)

// FlickRepository handles database operations for the shared watch log
type FlickRepository struct {
	db database.DBTX
}

// NewFlickRepository creates a new flick repository
func NewFlickRepository(db database.DBTX) *FlickRepository {
	return &FlickRepository{db: db}
}

const flickColumns = `id, watched_on, title, rating_megan, rating_alex, rating_tim,
	       COALESCE(description, ''), COALESCE(comment_megan, ''), COALESCE(comment_alex, ''),
	       COALESCE(comment_tim, ''), COALESCE(poster_filename, ''), created_at, updated_at`

// CreateFlick inserts a new watch-log entry
func (r *FlickRepository) CreateFlick(f *models.WatchedFlick) (*models.WatchedFlick, error) {
	query := `
		INSERT INTO watched_flicks
			(watched_on, title, rating_megan, rating_alex, rating_tim,
			 description, comment_megan, comment_alex, comment_tim, poster_filename)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		f.WatchedOn, f.Title,
		nullFloat(f.RatingMegan), nullFloat(f.RatingAlex), nullFloat(f.RatingTim),
		nullString(f.Description), nullString(f.CommentMegan), nullString(f.CommentAlex),
		nullString(f.CommentTim), nullString(f.PosterFilename),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create flick: %w", err)
	}

	return r.GetFlickByID(id)
}

// GetFlickByID retrieves one watch-log entry
func (r *FlickRepository) GetFlickByID(id int64) (*models.WatchedFlick, error) {
	query := "SELECT " + flickColumns + " FROM watched_flicks WHERE id = ?"

	flick, err := scanFlick(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get flick: %w", err)
	}
	return flick, nil
}

// GetAllFlicks retrieves the whole watch log, most recent watch first
func (r *FlickRepository) GetAllFlicks() ([]models.WatchedFlick, error) {
	query := "SELECT " + flickColumns + " FROM watched_flicks ORDER BY watched_on DESC, id DESC"

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list flicks: %w", err)
	}
	defer rows.Close()

	var flicks []models.WatchedFlick
	for rows.Next() {
		flick, err := scanFlickRow(rows)
		if err != nil {
			return nil, err
		}
		flicks = append(flicks, *flick)
	}

	return flicks, rows.Err()
}

// UpdateFlick replaces the mutable fields of a watch-log entry
func (r *FlickRepository) UpdateFlick(f *models.WatchedFlick) error {
	query := `
		UPDATE watched_flicks
		SET watched_on = ?, title = ?, rating_megan = ?, rating_alex = ?, rating_tim = ?,
		    description = ?, comment_megan = ?, comment_alex = ?, comment_tim = ?,
		    poster_filename = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := r.db.Exec(query,
		f.WatchedOn, f.Title,
		nullFloat(f.RatingMegan), nullFloat(f.RatingAlex), nullFloat(f.RatingTim),
		nullString(f.Description), nullString(f.CommentMegan), nullString(f.CommentAlex),
		nullString(f.CommentTim), nullString(f.PosterFilename),
		f.ID,
	)
	return err
}

// DeleteFlick removes a watch-log entry
func (r *FlickRepository) DeleteFlick(id int64) error {
	_, err := r.db.Exec("DELETE FROM watched_flicks WHERE id = ?", id)
	return err
}

// CountFlicks returns the size of the watch log
func (r *FlickRepository) CountFlicks() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM watched_flicks").Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanFlick(row *sql.Row) (*models.WatchedFlick, error) {
	return scanFlickRow(row)
}

func scanFlickRow(row rowScanner) (*models.WatchedFlick, error) {
	flick := &models.WatchedFlick{}
	var ratingMegan, ratingAlex, ratingTim sql.NullFloat64

	err := row.Scan(
		&flick.ID,
		&flick.WatchedOn,
		&flick.Title,
		&ratingMegan,
		&ratingAlex,
		&ratingTim,
		&flick.Description,
		&flick.CommentMegan,
		&flick.CommentAlex,
		&flick.CommentTim,
		&flick.PosterFilename,
		&flick.CreatedAt,
		&flick.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if ratingMegan.Valid {
		flick.RatingMegan = &ratingMegan.Float64
	}
	if ratingAlex.Valid {
		flick.RatingAlex = &ratingAlex.Float64
	}
	if ratingTim.Valid {
		flick.RatingTim = &ratingTim.Float64
	}

	return flick, nil
}

func nullFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullInt64(v *int64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}
