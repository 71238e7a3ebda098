// Package store is the read layer over the GopherGrades SQLite database.
// All queries are plain SELECTs; the database is treated as immutable input.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/jiangchenwo/gopher-mcp-tools/internal/gradestats"
)

// ErrNotFound reports that a requested entity does not exist. Handlers map
// it to a 404 rather than a server error.
var ErrNotFound = errors.New("not found")

// Store wraps the database handle and provides the query methods handlers
// depend on.
type Store struct {
	db *sql.DB
}

// Open opens an existing grades database. The file must already exist;
// this system never creates or writes production data.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("grades database %q: %w", path, err)
		}
	}
	return open(path)
}

// OpenMemory opens a fresh in-memory database with the schema applied.
// Used by tests.
func OpenMemory() (*Store, error) {
	s, err := open(":memory:")
	if err != nil {
		return nil, err
	}
	if err := EnsureSchema(s.db); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying handle for test fixtures.
func (s *Store) DB() *sql.DB {
	return s.db
}

// parseGrades decodes a JSON grade-distribution column. NULL, empty, or
// malformed values degrade to an empty distribution, never an error.
func parseGrades(s sql.NullString) gradestats.Distribution {
	if !s.Valid || s.String == "" {
		return gradestats.Distribution{}
	}
	var d gradestats.Distribution
	if err := json.Unmarshal([]byte(s.String), &d); err != nil {
		return gradestats.Distribution{}
	}
	return d
}

// parseRatings decodes the srt_vals JSON column (question -> score).
func parseRatings(s sql.NullString) map[string]float64 {
	if !s.Valid || s.String == "" {
		return nil
	}
	var r map[string]float64
	if err := json.Unmarshal([]byte(s.String), &r); err != nil {
		return nil
	}
	return r
}

func nullableFloat(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}

func nullableInt(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
