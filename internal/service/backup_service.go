package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"flicksclub/internal/database"
)

// BackupData represents the complete database backup structure
type BackupData struct {
	Version    string             `json:"version"`
	ExportedAt time.Time          `json:"exported_at"`
	Users      []UserBackup       `json:"users"`
	Flicks     []FlickBackup      `json:"flicks"`
	Suggested  []SuggestionBackup `json:"suggested_flicks"`
	Questions  []QuestionBackup   `json:"trivia_questions"`
	Games      []GameBackup       `json:"trivia_sessions"`
	Decks      []DeckBackup       `json:"decks"`
	Projects   []ProjectBackup    `json:"projects"`
	Entries    []TimeEntryBackup  `json:"time_entries"`
	Documents  []DocumentBackup   `json:"documents"`
}

// UserBackup represents a user record for backup
type UserBackup struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"password_hash"`
	Name          string    `json:"name"`
	OAuthProvider string    `json:"oauth_provider"`
	OAuthSubject  string    `json:"oauth_subject"`
	IsAdmin       bool      `json:"is_admin"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// FlickBackup represents a watch-log entry for backup
type FlickBackup struct {
	ID             int64     `json:"id"`
	WatchedOn      time.Time `json:"watched_on"`
	Title          string    `json:"title"`
	RatingMegan    *float64  `json:"rating_megan"`
	RatingAlex     *float64  `json:"rating_alex"`
	RatingTim      *float64  `json:"rating_tim"`
	Description    string    `json:"description"`
	CommentMegan   string    `json:"comment_megan"`
	CommentAlex    string    `json:"comment_alex"`
	CommentTim     string    `json:"comment_tim"`
	PosterFilename string    `json:"poster_filename"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// SuggestionBackup represents a movie suggestion for backup
type SuggestionBackup struct {
	ID                int64     `json:"id"`
	Title             string    `json:"title"`
	IMDBLink          string    `json:"imdb_link"`
	SuggestedByUserID int64     `json:"suggested_by_user_id"`
	CreatedAt         time.Time `json:"created_at"`
}

// QuestionBackup represents a user trivia question for backup
type QuestionBackup struct {
	ID               int64     `json:"id"`
	WatchedFlickID   int64     `json:"watched_flick_id"`
	UserID           int64     `json:"user_id"`
	QuestionText     string    `json:"question_text"`
	CorrectAnswer    string    `json:"correct_answer"`
	IncorrectAnswer1 string    `json:"incorrect_answer_1"`
	IncorrectAnswer2 string    `json:"incorrect_answer_2"`
	IncorrectAnswer3 string    `json:"incorrect_answer_3"`
	IsApproved       bool      `json:"is_approved"`
	CreatedAt        time.Time `json:"created_at"`
}

// GameBackup represents a trivia round record for backup
type GameBackup struct {
	ID             int64      `json:"id"`
	UserID         int64      `json:"user_id"`
	TotalQuestions int        `json:"total_questions"`
	Score          int        `json:"score"`
	StartedAt      time.Time  `json:"started_at"`
	CompletedAt    *time.Time `json:"completed_at"`
}

// DeckBackup represents a deck with its cards for backup
type DeckBackup struct {
	ID        int64        `json:"id"`
	PublicID  string       `json:"public_id"`
	UserID    int64        `json:"user_id"`
	Name      string       `json:"name"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	Cards     []CardBackup `json:"cards"`
}

// CardBackup represents a flashcard for backup
type CardBackup struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProjectBackup represents a project for backup
type ProjectBackup struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Name       string    `json:"name"`
	ClientName string    `json:"client_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// TimeEntryBackup represents a time entry for backup
type TimeEntryBackup struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	ProjectID   *int64    `json:"project_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// DocumentBackup represents a document metadata record for backup.
// Only the metadata travels; the stored bytes stay in the backend.
type DocumentBackup struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Name        string    `json:"name"`
	StorageKey  string    `json:"storage_key"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export creates a complete backup of the database to a file
func (s *BackupService) Export(outputPath string) error {
	log.Println("Starting database export...")

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := s.ExportToWriter(file); err != nil {
		return err
	}

	log.Printf("Database exported successfully to %s", outputPath)
	return nil
}

// ExportToWriter exports the database as indented JSON
func (s *BackupService) ExportToWriter(w io.Writer) error {
	backup := &BackupData{
		Version:    "1.0",
		ExportedAt: time.Now(),
	}

	if err := s.exportUsers(backup); err != nil {
		return fmt.Errorf("failed to export users: %w", err)
	}
	if err := s.exportFlicks(backup); err != nil {
		return fmt.Errorf("failed to export flicks: %w", err)
	}
	if err := s.exportSuggestions(backup); err != nil {
		return fmt.Errorf("failed to export suggestions: %w", err)
	}
	if err := s.exportQuestions(backup); err != nil {
		return fmt.Errorf("failed to export questions: %w", err)
	}
	if err := s.exportGames(backup); err != nil {
		return fmt.Errorf("failed to export trivia sessions: %w", err)
	}
	if err := s.exportDecks(backup); err != nil {
		return fmt.Errorf("failed to export decks: %w", err)
	}
	if err := s.exportProjects(backup); err != nil {
		return fmt.Errorf("failed to export projects: %w", err)
	}
	if err := s.exportTimeEntries(backup); err != nil {
		return fmt.Errorf("failed to export time entries: %w", err)
	}
	if err := s.exportDocuments(backup); err != nil {
		return fmt.Errorf("failed to export documents: %w", err)
	}

	log.Printf("Exported: %d users, %d flicks, %d suggestions, %d questions, %d games, %d decks, %d projects, %d time entries, %d documents",
		len(backup.Users), len(backup.Flicks), len(backup.Suggested),
		len(backup.Questions), len(backup.Games), len(backup.Decks),
		len(backup.Projects), len(backup.Entries), len(backup.Documents))

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(backup)
}

// Import restores a database from a backup file
func (s *BackupService) Import(inputPath string) error {
	log.Printf("Starting database import from %s...", inputPath)

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file)
}

// ImportFromReader restores a database from a backup reader
func (s *BackupService) ImportFromReader(reader io.Reader) error {
	var backup BackupData
	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	// Import in dependency order
	if err := s.importUsers(backup.Users); err != nil {
		return fmt.Errorf("failed to import users: %w", err)
	}
	if err := s.importFlicks(backup.Flicks); err != nil {
		return fmt.Errorf("failed to import flicks: %w", err)
	}
	if err := s.importSuggestions(backup.Suggested); err != nil {
		return fmt.Errorf("failed to import suggestions: %w", err)
	}
	if err := s.importQuestions(backup.Questions); err != nil {
		return fmt.Errorf("failed to import questions: %w", err)
	}
	if err := s.importGames(backup.Games); err != nil {
		return fmt.Errorf("failed to import trivia sessions: %w", err)
	}
	if err := s.importDecks(backup.Decks); err != nil {
		return fmt.Errorf("failed to import decks: %w", err)
	}
	if err := s.importProjects(backup.Projects); err != nil {
		return fmt.Errorf("failed to import projects: %w", err)
	}
	if err := s.importTimeEntries(backup.Entries); err != nil {
		return fmt.Errorf("failed to import time entries: %w", err)
	}
	if err := s.importDocuments(backup.Documents); err != nil {
		return fmt.Errorf("failed to import documents: %w", err)
	}

	log.Println("Database import completed successfully")
	return nil
}

func (s *BackupService) exportUsers(backup *BackupData) error {
	query := "SELECT id, email, password_hash, name, COALESCE(oauth_provider, ''), COALESCE(oauth_subject, ''), is_admin, created_at, updated_at FROM users ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var u UserBackup
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.OAuthProvider, &u.OAuthSubject, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return err
		}
		backup.Users = append(backup.Users, u)
	}
	return rows.Err()
}

func (s *BackupService) exportFlicks(backup *BackupData) error {
	query := "SELECT id, watched_on, title, rating_megan, rating_alex, rating_tim, COALESCE(description, ''), COALESCE(comment_megan, ''), COALESCE(comment_alex, ''), COALESCE(comment_tim, ''), COALESCE(poster_filename, ''), created_at, updated_at FROM watched_flicks ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var f FlickBackup
		var megan, alex, tim sql.NullFloat64
		if err := rows.Scan(&f.ID, &f.WatchedOn, &f.Title, &megan, &alex, &tim, &f.Description, &f.CommentMegan, &f.CommentAlex, &f.CommentTim, &f.PosterFilename, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return err
		}
		if megan.Valid {
			f.RatingMegan = &megan.Float64
		}
		if alex.Valid {
			f.RatingAlex = &alex.Float64
		}
		if tim.Valid {
			f.RatingTim = &tim.Float64
		}
		backup.Flicks = append(backup.Flicks, f)
	}
	return rows.Err()
}

func (s *BackupService) exportSuggestions(backup *BackupData) error {
	query := "SELECT id, title, COALESCE(imdb_link, ''), suggested_by_user_id, created_at FROM suggested_flicks ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var sg SuggestionBackup
		if err := rows.Scan(&sg.ID, &sg.Title, &sg.IMDBLink, &sg.SuggestedByUserID, &sg.CreatedAt); err != nil {
			return err
		}
		backup.Suggested = append(backup.Suggested, sg)
	}
	return rows.Err()
}

func (s *BackupService) exportQuestions(backup *BackupData) error {
	query := "SELECT id, watched_flick_id, user_id, question_text, correct_answer, COALESCE(incorrect_answer_1, ''), COALESCE(incorrect_answer_2, ''), COALESCE(incorrect_answer_3, ''), is_approved, created_at FROM user_trivia_questions ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var q QuestionBackup
		if err := rows.Scan(&q.ID, &q.WatchedFlickID, &q.UserID, &q.QuestionText, &q.CorrectAnswer, &q.IncorrectAnswer1, &q.IncorrectAnswer2, &q.IncorrectAnswer3, &q.IsApproved, &q.CreatedAt); err != nil {
			return err
		}
		backup.Questions = append(backup.Questions, q)
	}
	return rows.Err()
}

func (s *BackupService) exportGames(backup *BackupData) error {
	query := "SELECT id, user_id, total_questions, score, started_at, completed_at FROM trivia_sessions ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var g GameBackup
		var completedAt sql.NullTime
		if err := rows.Scan(&g.ID, &g.UserID, &g.TotalQuestions, &g.Score, &g.StartedAt, &completedAt); err != nil {
			return err
		}
		if completedAt.Valid {
			g.CompletedAt = &completedAt.Time
		}
		backup.Games = append(backup.Games, g)
	}
	return rows.Err()
}

func (s *BackupService) exportDecks(backup *BackupData) error {
	query := "SELECT id, public_id, user_id, name, created_at, updated_at FROM decks ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var d DeckBackup
		if err := rows.Scan(&d.ID, &d.PublicID, &d.UserID, &d.Name, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return err
		}

		cardQuery := "SELECT id, user_id, question, answer, created_at, updated_at FROM flashcards WHERE deck_id = ? ORDER BY id"
		cardRows, err := s.db.Query(cardQuery, d.ID)
		if err != nil {
			return err
		}

		for cardRows.Next() {
			var c CardBackup
			if err := cardRows.Scan(&c.ID, &c.UserID, &c.Question, &c.Answer, &c.CreatedAt, &c.UpdatedAt); err != nil {
				cardRows.Close()
				return err
			}
			d.Cards = append(d.Cards, c)
		}
		cardRows.Close()

		backup.Decks = append(backup.Decks, d)
	}
	return rows.Err()
}

func (s *BackupService) exportProjects(backup *BackupData) error {
	query := "SELECT id, user_id, name, COALESCE(client_name, ''), created_at FROM projects ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var p ProjectBackup
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.ClientName, &p.CreatedAt); err != nil {
			return err
		}
		backup.Projects = append(backup.Projects, p)
	}
	return rows.Err()
}

func (s *BackupService) exportTimeEntries(backup *BackupData) error {
	query := "SELECT id, user_id, project_id, start_time, end_time, COALESCE(description, ''), created_at FROM time_entries ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var e TimeEntryBackup
		var projectID sql.NullInt64
		if err := rows.Scan(&e.ID, &e.UserID, &projectID, &e.StartTime, &e.EndTime, &e.Description, &e.CreatedAt); err != nil {
			return err
		}
		if projectID.Valid {
			e.ProjectID = &projectID.Int64
		}
		backup.Entries = append(backup.Entries, e)
	}
	return rows.Err()
}

func (s *BackupService) exportDocuments(backup *BackupData) error {
	query := "SELECT id, user_id, name, storage_key, content_type, size_bytes, created_at FROM documents ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var d DocumentBackup
		if err := rows.Scan(&d.ID, &d.UserID, &d.Name, &d.StorageKey, &d.ContentType, &d.SizeBytes, &d.CreatedAt); err != nil {
			return err
		}
		backup.Documents = append(backup.Documents, d)
	}
	return rows.Err()
}

func (s *BackupService) importUsers(users []UserBackup) error {
	log.Printf("Importing %d users...", len(users))
	for _, u := range users {
		query := "INSERT INTO users (id, email, password_hash, name, oauth_provider, oauth_subject, is_admin, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)"
		_, err := s.db.Exec(query, u.ID, u.Email, u.PasswordHash, u.Name, nullIfEmpty(u.OAuthProvider), nullIfEmpty(u.OAuthSubject), u.IsAdmin, u.CreatedAt, u.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to import user %d: %w", u.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importFlicks(flicks []FlickBackup) error {
	log.Printf("Importing %d flicks...", len(flicks))
	for _, f := range flicks {
		query := "INSERT INTO watched_flicks (id, watched_on, title, rating_megan, rating_alex, rating_tim, description, comment_megan, comment_alex, comment_tim, poster_filename, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
		_, err := s.db.Exec(query, f.ID, f.WatchedOn, f.Title,
			nullIfNilFloat(f.RatingMegan), nullIfNilFloat(f.RatingAlex), nullIfNilFloat(f.RatingTim),
			nullIfEmpty(f.Description), nullIfEmpty(f.CommentMegan), nullIfEmpty(f.CommentAlex),
			nullIfEmpty(f.CommentTim), nullIfEmpty(f.PosterFilename), f.CreatedAt, f.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to import flick %d: %w", f.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importSuggestions(suggestions []SuggestionBackup) error {
	log.Printf("Importing %d suggestions...", len(suggestions))
	for _, sg := range suggestions {
		query := "INSERT INTO suggested_flicks (id, title, imdb_link, suggested_by_user_id, created_at) VALUES (?, ?, ?, ?, ?)"
		_, err := s.db.Exec(query, sg.ID, sg.Title, nullIfEmpty(sg.IMDBLink), sg.SuggestedByUserID, sg.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to import suggestion %d: %w", sg.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importQuestions(questions []QuestionBackup) error {
	log.Printf("Importing %d questions...", len(questions))
	for _, q := range questions {
		query := "INSERT INTO user_trivia_questions (id, watched_flick_id, user_id, question_text, correct_answer, incorrect_answer_1, incorrect_answer_2, incorrect_answer_3, is_approved, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
		_, err := s.db.Exec(query, q.ID, q.WatchedFlickID, q.UserID, q.QuestionText, q.CorrectAnswer,
			nullIfEmpty(q.IncorrectAnswer1), nullIfEmpty(q.IncorrectAnswer2), nullIfEmpty(q.IncorrectAnswer3),
			q.IsApproved, q.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to import question %d: %w", q.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importGames(games []GameBackup) error {
	log.Printf("Importing %d trivia sessions...", len(games))
	for _, g := range games {
		var completedAt interface{}
		if g.CompletedAt != nil {
			completedAt = *g.CompletedAt
		}
		query := "INSERT INTO trivia_sessions (id, user_id, total_questions, score, started_at, completed_at) VALUES (?, ?, ?, ?, ?, ?)"
		_, err := s.db.Exec(query, g.ID, g.UserID, g.TotalQuestions, g.Score, g.StartedAt, completedAt)
		if err != nil {
			return fmt.Errorf("failed to import trivia session %d: %w", g.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importDecks(decks []DeckBackup) error {
	log.Printf("Importing %d decks...", len(decks))
	for _, d := range decks {
		query := "INSERT INTO decks (id, public_id, user_id, name, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)"
		_, err := s.db.Exec(query, d.ID, d.PublicID, d.UserID, d.Name, d.CreatedAt, d.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to import deck %d: %w", d.ID, err)
		}

		for _, c := range d.Cards {
			cardQuery := "INSERT INTO flashcards (id, deck_id, user_id, question, answer, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)"
			_, err := s.db.Exec(cardQuery, c.ID, d.ID, c.UserID, c.Question, c.Answer, c.CreatedAt, c.UpdatedAt)
			if err != nil {
				return fmt.Errorf("failed to import card %d for deck %d: %w", c.ID, d.ID, err)
			}
		}
	}
	return nil
}

func (s *BackupService) importProjects(projects []ProjectBackup) error {
	log.Printf("Importing %d projects...", len(projects))
	for _, p := range projects {
		query := "INSERT INTO projects (id, user_id, name, client_name, created_at) VALUES (?, ?, ?, ?, ?)"
		_, err := s.db.Exec(query, p.ID, p.UserID, p.Name, nullIfEmpty(p.ClientName), p.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to import project %d: %w", p.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importTimeEntries(entries []TimeEntryBackup) error {
	log.Printf("Importing %d time entries...", len(entries))
	for _, e := range entries {
		var projectID interface{}
		if e.ProjectID != nil {
			projectID = *e.ProjectID
		}
		query := "INSERT INTO time_entries (id, user_id, project_id, start_time, end_time, description, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)"
		_, err := s.db.Exec(query, e.ID, e.UserID, projectID, e.StartTime, e.EndTime, nullIfEmpty(e.Description), e.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to import time entry %d: %w", e.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importDocuments(documents []DocumentBackup) error {
	log.Printf("Importing %d documents...", len(documents))
	for _, d := range documents {
		query := "INSERT INTO documents (id, user_id, name, storage_key, content_type, size_bytes, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)"
		_, err := s.db.Exec(query, d.ID, d.UserID, d.Name, d.StorageKey, d.ContentType, d.SizeBytes, d.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to import document %d: %w", d.ID, err)
		}
	}
	return nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullIfNilFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
