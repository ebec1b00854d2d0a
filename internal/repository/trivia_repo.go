package repository

import (
	"database/sql"
	"fmt"
	"time"

	"flicksclub/internal/database"
	"flicksclub/internal/models"
)

// TriviaRepository handles database operations for trivia play history
type TriviaRepository struct {
	db database.DBTX
}

// NewTriviaRepository creates a new trivia repository
func NewTriviaRepository(db database.DBTX) *TriviaRepository {
	return &TriviaRepository{db: db}
}

// CreateSession records the start of a trivia round
func (r *TriviaRepository) CreateSession(userID int64, totalQuestions int) (*models.TriviaSession, error) {
	query := `
		INSERT INTO trivia_sessions (user_id, total_questions, score)
		VALUES (?, ?, 0)
	`
	id, err := r.db.ExecReturningID(query, userID, totalQuestions)
	if err != nil {
		return nil, fmt.Errorf("failed to create trivia session: %w", err)
	}

	return &models.TriviaSession{
		ID:             id,
		UserID:         userID,
		TotalQuestions: totalQuestions,
		StartedAt:      time.Now(),
	}, nil
}

// CompleteSession stores the final score of a finished round
func (r *TriviaRepository) CompleteSession(id int64, score int) error {
	query := `
		UPDATE trivia_sessions
		SET score = ?, completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := r.db.Exec(query, score, id)
	return err
}

// GetSessionByID retrieves one trivia round
func (r *TriviaRepository) GetSessionByID(id int64) (*models.TriviaSession, error) {
	query := `
		SELECT id, user_id, total_questions, score, started_at, completed_at
		FROM trivia_sessions
		WHERE id = ?
	`
	s, err := scanTriviaSession(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trivia session: %w", err)
	}
	return s, nil
}

// GetSessionsByUser retrieves a user's play history, newest first
func (r *TriviaRepository) GetSessionsByUser(userID int64, limit int) ([]models.TriviaSession, error) {
	query := `
		SELECT id, user_id, total_questions, score, started_at, completed_at
		FROM trivia_sessions
		WHERE user_id = ?
		ORDER BY started_at DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list trivia sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.TriviaSession
	for rows.Next() {
		s, err := scanTriviaSessionRow(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *s)
	}

	return sessions, rows.Err()
}

// LeaderboardEntry is one row of the completed-round leaderboard
type LeaderboardEntry struct {
	UserID      int64  `json:"userId"`
	UserName    string `json:"userName"`
	GamesPlayed int    `json:"gamesPlayed"`
	TotalScore  int    `json:"totalScore"`
	TotalAsked  int    `json:"totalAsked"`
	BestScore   int    `json:"bestScore"`
}

// GetLeaderboard aggregates completed rounds per user, best players first
func (r *TriviaRepository) GetLeaderboard(limit int) ([]LeaderboardEntry, error) {
	query := `
		SELECT u.id, u.name, COUNT(t.id), SUM(t.score), SUM(t.total_questions), MAX(t.score)
		FROM trivia_sessions t
		JOIN users u ON u.id = t.user_id
		WHERE t.completed_at IS NOT NULL
		GROUP BY u.id, u.name
		ORDER BY SUM(t.score) DESC, COUNT(t.id) ASC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to build leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		err := rows.Scan(&e.UserID, &e.UserName, &e.GamesPlayed, &e.TotalScore, &e.TotalAsked, &e.BestScore)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func scanTriviaSession(row *sql.Row) (*models.TriviaSession, error) {
	return scanTriviaSessionRow(row)
}

func scanTriviaSessionRow(row rowScanner) (*models.TriviaSession, error) {
	s := &models.TriviaSession{}
	var completedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.TotalQuestions,
		&s.Score,
		&s.StartedAt,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}

	if completedAt.Valid {
		s.CompletedAt = &completedAt.Time
	}

	return s, nil
}
