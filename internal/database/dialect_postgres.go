package database

import (
	"database/sql"

	_ "github.com/lib/pq"
)

// PostgresDialect targets PostgreSQL. Placeholders become $n and
// inserts use RETURNING because lib/pq has no LastInsertId.
type PostgresDialect struct{}

// NewPostgresDialect creates a new PostgreSQL dialect
func NewPostgresDialect() *PostgresDialect {
	return &PostgresDialect{}
}

func (d *PostgresDialect) DriverName() string {
	return "postgres"
}

func (d *PostgresDialect) DSN(config DialectConfig) string {
	return config.URL
}

func (d *PostgresDialect) RewriteQuery(query string) string {
	return rewritePlaceholdersToNumbered(query)
}

func (d *PostgresDialect) SupportsLastInsertId() bool {
	return false
}

func (d *PostgresDialect) ConfigureConnection(db *sql.DB) error {
	// Foreign keys are always enforced, only the pool needs setup
	configurePool(db)
	return nil
}

func (d *PostgresDialect) MigrationsSubdir() string {
	return "postgres"
}

func (d *PostgresDialect) CreateMigrationsTableQuery() string {
	return `CREATE TABLE IF NOT EXISTS migrations (
		id BIGSERIAL PRIMARY KEY,
		filename TEXT UNIQUE NOT NULL,
		executed_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
	)`
}

func (d *PostgresDialect) BoolValue(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}
