package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
)

// RunMigrations applies any pending .sql files for the active engine.
// Files live under migrationsPath/<engine subdir>/ and run in lexical
// order; each applied filename is recorded in the migrations table so
// reruns are no-ops.
func (db *DB) RunMigrations(migrationsPath string) error {
	if _, err := db.DB.Exec(db.Dialect.CreateMigrationsTableQuery()); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	pattern := filepath.Join(migrationsPath, db.Dialect.MigrationsSubdir(), "*.sql")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("failed to list migration files: %w", err)
	}
	sort.Strings(files)

	for _, file := range files {
		applied, err := db.applyMigration(file)
		if err != nil {
			return err
		}
		if applied {
			log.Printf("Migration completed: %s", filepath.Base(file))
		}
	}

	return nil
}

// applyMigration runs one migration file unless it has run before
func (db *DB) applyMigration(file string) (bool, error) {
	filename := filepath.Base(file)

	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM migrations WHERE filename = ?", filename).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check migration %s: %w", filename, err)
	}
	if count > 0 {
		return false, nil
	}

	content, err := os.ReadFile(file)
	if err != nil {
		return false, fmt.Errorf("failed to read migration %s: %w", filename, err)
	}

	// The drivers in use all accept multiple statements per Exec
	if _, err := db.DB.Exec(string(content)); err != nil {
		return false, fmt.Errorf("failed to execute migration %s: %w", filename, err)
	}

	if _, err := db.Exec("INSERT INTO migrations (filename) VALUES (?)", filename); err != nil {
		return false, fmt.Errorf("failed to record migration %s: %w", filename, err)
	}

	return true, nil
}
