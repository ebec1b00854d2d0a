package database

import (
	"database/sql"
	"strings"
)

// DBTX is the query surface repositories depend on. Both *DB and *Tx
// satisfy it, so the same repository method works inside and outside a
// transaction.
type DBTX interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
	ExecReturningID(query string, args ...interface{}) (int64, error)
	GetDialect() Dialect
}

// sqlConn is the subset of sql.DB and sql.Tx the insert-id helper needs.
type sqlConn interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// insertReturningID executes an INSERT the way the engine supports:
// LastInsertId where available, otherwise an appended RETURNING clause.
// The query must already be in ? style; rewriting happens here.
func insertReturningID(d Dialect, conn sqlConn, query string, args ...interface{}) (int64, error) {
	q := d.RewriteQuery(query)

	if d.SupportsLastInsertId() {
		res, err := conn.Exec(q, args...)
		if err != nil {
			return 0, err
		}
		return res.LastInsertId()
	}

	q = strings.TrimSuffix(strings.TrimSpace(q), ";") + " RETURNING id"
	var id int64
	if err := conn.QueryRow(q, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// Tx wraps sql.Tx with the same dialect-aware helpers as DB. Commit,
// Rollback and Prepare come from the embedded transaction.
type Tx struct {
	*sql.Tx
	dialect Dialect
}

// Begin starts a new transaction
func (db *DB) Begin() (*Tx, error) {
	tx, err := db.DB.Begin()
	if err != nil {
		return nil, err
	}
	return &Tx{Tx: tx, dialect: db.Dialect}, nil
}

// GetDialect returns the database dialect
func (db *DB) GetDialect() Dialect {
	return db.Dialect
}

// Query executes a query with automatic placeholder rewriting
func (tx *Tx) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return tx.Tx.Query(tx.dialect.RewriteQuery(query), args...)
}

// QueryRow executes a single-row query with automatic placeholder rewriting
func (tx *Tx) QueryRow(query string, args ...interface{}) *sql.Row {
	return tx.Tx.QueryRow(tx.dialect.RewriteQuery(query), args...)
}

// Exec executes a statement with automatic placeholder rewriting
func (tx *Tx) Exec(query string, args ...interface{}) (sql.Result, error) {
	return tx.Tx.Exec(tx.dialect.RewriteQuery(query), args...)
}

// ExecReturningID runs an INSERT and reports the new row id
func (tx *Tx) ExecReturningID(query string, args ...interface{}) (int64, error) {
	return insertReturningID(tx.dialect, tx.Tx, query, args...)
}

// GetDialect returns the transaction's dialect
func (tx *Tx) GetDialect() Dialect {
	return tx.dialect
}
