package database

import (
	"database/sql"
	"strconv"
	"strings"
	"time"
)

// Dialect abstracts the differences between the supported engines:
// driver registration, DSN shape, placeholder style, insert-id
// retrieval and per-engine connection setup.
type Dialect interface {
	DriverName() string
	DSN(config DialectConfig) string

	// RewriteQuery converts ? placeholders to the engine's style.
	RewriteQuery(query string) string

	// SupportsLastInsertId reports whether the driver returns insert
	// ids through sql.Result.
	SupportsLastInsertId() bool

	ConfigureConnection(db *sql.DB) error

	// MigrationsSubdir names the per-engine directory under the
	// migrations path.
	MigrationsSubdir() string

	CreateMigrationsTableQuery() string

	// BoolValue renders a boolean literal for this engine.
	BoolValue(b bool) string
}

// DialectConfig carries the connection target. Path is used by SQLite,
// URL by PostgreSQL and MySQL.
type DialectConfig struct {
	Path string
	URL  string
}

// rewritePlaceholdersToNumbered turns each ? into $1, $2, ... in order.
// Queries in this codebase never contain a literal question mark, so a
// plain scan is enough.
func rewritePlaceholdersToNumbered(query string) string {
	if !strings.ContainsRune(query, '?') {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// configurePool applies the connection limits shared by every engine.
func configurePool(db *sql.DB) {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(time.Minute)
}
