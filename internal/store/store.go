// Package store persists dataset rows, analysis settings, and user
// selections in DuckDB. The engines themselves never perform I/O;
// they receive values loaded here and return updated ones for the
// caller to save.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// Store manages a DuckDB connection for dataset persistence.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ensureSchema creates tables if they don't exist. Row data is kept
// as JSON per row: datasets carry arbitrary named columns, so a
// fixed relational schema would not fit.
func (s *Store) ensureSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS dataset_rows (
			dataset_id VARCHAR,
			primary_id VARCHAR,
			row_data VARCHAR
		)`,
		`CREATE TABLE IF NOT EXISTS dataset_settings (
			dataset_id VARCHAR PRIMARY KEY,
			settings VARCHAR
		)`,
		`CREATE TABLE IF NOT EXISTS dataset_selections (
			dataset_id VARCHAR,
			primary_id VARCHAR,
			group_name VARCHAR,
			PRIMARY KEY (dataset_id, primary_id, group_name)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
