package repository

import (
	"database/sql"
	"fmt"

	"flicksclub/internal/database"
	"flicksclub/internal/models"
)

// QuestionRepository handles database operations for user-submitted
// trivia questions.
type QuestionRepository struct {
	db database.DBTX
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(db database.DBTX) *QuestionRepository {
	return &QuestionRepository{db: db}
}

const questionColumns = `id, watched_flick_id, user_id, question_text, correct_answer,
	       incorrect_answer_1, incorrect_answer_2, incorrect_answer_3, is_approved, created_at`

// CreateQuestion stores a submitted question; it lands unapproved
func (r *QuestionRepository) CreateQuestion(q *models.UserQuestion) (*models.UserQuestion, error) {
	query := `
		INSERT INTO user_trivia_questions
			(watched_flick_id, user_id, question_text, correct_answer,
			 incorrect_answer_1, incorrect_answer_2, incorrect_answer_3, is_approved)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		q.WatchedFlickID, q.UserID, q.QuestionText, q.CorrectAnswer,
		nullStringPtr(q.IncorrectAnswer1), nullStringPtr(q.IncorrectAnswer2),
		nullStringPtr(q.IncorrectAnswer3), q.IsApproved,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	return r.GetQuestionByID(id)
}

// GetQuestionByID retrieves one question
func (r *QuestionRepository) GetQuestionByID(id int64) (*models.UserQuestion, error) {
	query := "SELECT " + questionColumns + " FROM user_trivia_questions WHERE id = ?"

	q, err := scanQuestion(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return q, nil
}

// GetApprovedQuestions retrieves all questions cleared for gameplay
func (r *QuestionRepository) GetApprovedQuestions() ([]models.UserQuestion, error) {
	query := "SELECT " + questionColumns + " FROM user_trivia_questions WHERE is_approved = ?"
	return r.queryQuestions(query, true)
}

// GetPendingQuestions retrieves questions awaiting moderation, oldest first
func (r *QuestionRepository) GetPendingQuestions() ([]models.UserQuestion, error) {
	query := "SELECT " + questionColumns + " FROM user_trivia_questions WHERE is_approved = ? ORDER BY created_at ASC"
	return r.queryQuestions(query, false)
}

// GetQuestionsByUser retrieves everything one user has submitted
func (r *QuestionRepository) GetQuestionsByUser(userID int64) ([]models.UserQuestion, error) {
	query := "SELECT " + questionColumns + " FROM user_trivia_questions WHERE user_id = ? ORDER BY created_at DESC"
	return r.queryQuestions(query, userID)
}

// ApproveQuestion clears a question for gameplay
func (r *QuestionRepository) ApproveQuestion(id int64) error {
	_, err := r.db.Exec("UPDATE user_trivia_questions SET is_approved = ? WHERE id = ?", true, id)
	return err
}

// DeleteQuestion removes a question
func (r *QuestionRepository) DeleteQuestion(id int64) error {
	_, err := r.db.Exec("DELETE FROM user_trivia_questions WHERE id = ?", id)
	return err
}

func (r *QuestionRepository) queryQuestions(query string, args ...interface{}) ([]models.UserQuestion, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	defer rows.Close()

	var questions []models.UserQuestion
	for rows.Next() {
		q, err := scanQuestionRow(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, *q)
	}

	return questions, rows.Err()
}

func scanQuestion(row *sql.Row) (*models.UserQuestion, error) {
	return scanQuestionRow(row)
}

func scanQuestionRow(row rowScanner) (*models.UserQuestion, error) {
	q := &models.UserQuestion{}
	var incorrect1, incorrect2, incorrect3 sql.NullString

	err := row.Scan(
		&q.ID,
		&q.WatchedFlickID,
		&q.UserID,
		&q.QuestionText,
		&q.CorrectAnswer,
		&incorrect1,
		&incorrect2,
		&incorrect3,
		&q.IsApproved,
		&q.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if incorrect1.Valid {
		q.IncorrectAnswer1 = &incorrect1.String
	}
	if incorrect2.Valid {
		q.IncorrectAnswer2 = &incorrect2.String
	}
	if incorrect3.Valid {
		q.IncorrectAnswer3 = &incorrect3.String
	}

	return q, nil
}

func nullStringPtr(s *string) interface{} {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}
