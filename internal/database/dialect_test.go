package database

import "testing"

func TestRewritePlaceholdersToNumbered(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{
			name:  "no placeholders",
			query: "SELECT id FROM watched_flicks",
			want:  "SELECT id FROM watched_flicks",
		},
		{
			name:  "single placeholder",
			query: "SELECT id FROM watched_flicks WHERE id = ?",
			want:  "SELECT id FROM watched_flicks WHERE id = $1",
		},
		{
			name:  "multiple placeholders numbered in order",
			query: "INSERT INTO decks (public_id, user_id, name) VALUES (?, ?, ?)",
			want:  "INSERT INTO decks (public_id, user_id, name) VALUES ($1, $2, $3)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rewritePlaceholdersToNumbered(tt.query); got != tt.want {
				t.Errorf("rewritePlaceholdersToNumbered() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDialectRewriteQuery(t *testing.T) {
	query := "UPDATE projects SET name = ? WHERE id = ?"

	if got := NewSQLiteDialect().RewriteQuery(query); got != query {
		t.Errorf("sqlite RewriteQuery() = %q, want unchanged", got)
	}
	if got := NewMySQLDialect().RewriteQuery(query); got != query {
		t.Errorf("mysql RewriteQuery() = %q, want unchanged", got)
	}

	want := "UPDATE projects SET name = $1 WHERE id = $2"
	if got := NewPostgresDialect().RewriteQuery(query); got != want {
		t.Errorf("postgres RewriteQuery() = %q, want %q", got, want)
	}
}

func TestDialectMigrationsSubdir(t *testing.T) {
	tests := []struct {
		dialect Dialect
		want    string
	}{
		{NewSQLiteDialect(), "sqlite"},
		{NewPostgresDialect(), "postgres"},
		{NewMySQLDialect(), "mysql"},
	}

	for _, tt := range tests {
		if got := tt.dialect.MigrationsSubdir(); got != tt.want {
			t.Errorf("%T MigrationsSubdir() = %q, want %q", tt.dialect, got, tt.want)
		}
	}
}

func TestDialectLastInsertIdSupport(t *testing.T) {
	if !NewSQLiteDialect().SupportsLastInsertId() {
		t.Error("sqlite should support LastInsertId")
	}
	if !NewMySQLDialect().SupportsLastInsertId() {
		t.Error("mysql should support LastInsertId")
	}
	if NewPostgresDialect().SupportsLastInsertId() {
		t.Error("postgres should not report LastInsertId support")
	}
}
