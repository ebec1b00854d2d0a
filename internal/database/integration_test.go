package database

import (
	"os"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dbPath := t.TempDir() + "/test.db"
	t.Cleanup(func() { os.Remove(dbPath) })

	db, err := Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

func TestMigrationsCreateSchema(t *testing.T) {
	db := openTestDB(t)

	tables := []string{
		"users", "sessions", "password_reset_tokens",
		"watched_flicks", "suggested_flicks",
		"user_trivia_questions", "trivia_sessions",
		"decks", "flashcards",
		"projects", "time_entries",
		"documents", "profanity_words",
	}

	for _, table := range tables {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("Table %s not found: %v", table, err)
		}
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	db := openTestDB(t)

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Second RunMigrations() failed: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&count); err != nil {
		t.Fatalf("Failed to count migrations: %v", err)
	}
	if count != 1 {
		t.Errorf("migrations table has %d rows, want 1", count)
	}
}

func TestExecReturningID(t *testing.T) {
	db := openTestDB(t)

	id, err := db.ExecReturningID(
		"INSERT INTO watched_flicks (watched_on, title) VALUES (?, ?)",
		"2025-01-15", "The Thing",
	)
	if err != nil {
		t.Fatalf("ExecReturningID() error: %v", err)
	}
	if id == 0 {
		t.Error("ExecReturningID() returned 0")
	}

	id2, err := db.ExecReturningID(
		"INSERT INTO watched_flicks (watched_on, title) VALUES (?, ?)",
		"2025-01-22", "Alien",
	)
	if err != nil {
		t.Fatalf("ExecReturningID() error: %v", err)
	}
	if id2 <= id {
		t.Errorf("second insert id = %d, want greater than %d", id2, id)
	}
}

func TestContainsProfanity(t *testing.T) {
	db := openTestDB(t)

	if _, err := db.Exec("INSERT INTO profanity_words (word) VALUES (?)", "scunthorpe"); err != nil {
		t.Fatalf("Failed to seed test word: %v", err)
	}

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"clean text", "What year was this movie released?", false},
		{"flagged word", "the Scunthorpe problem", true},
		{"flagged word mixed case", "SCUNTHORPE", true},
		{"empty text", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := db.ContainsProfanity(tt.text)
			if err != nil {
				t.Fatalf("ContainsProfanity() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ContainsProfanity(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestTransactionRollback(t *testing.T) {
	db := openTestDB(t)

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("Begin() error: %v", err)
	}
	if _, err := tx.Exec("INSERT INTO projects (user_id, name) VALUES (?, ?)", 1, "doomed"); err != nil {
		t.Fatalf("insert in tx failed: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("Rollback() error: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM projects").Scan(&count); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("projects count after rollback = %d, want 0", count)
	}
}
