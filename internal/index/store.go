// Package index implements the SQLite-backed index store: a rebuildable
// cache of the markdown document tree used for querying. Rows are keyed by
// workspace-relative filepath. The store is opened per logical operation and
// closed when done, keeping lock windows short.
package index

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// timeFormat is how timestamps are stored in TEXT columns.
const timeFormat = "2006-01-02T15:04:05Z07:00"

// Store wraps one open index database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if necessary) the index store at path and applies the
// schema. Callers must Close the returned store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening index store %s: %w", path, err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("configuring index store %s: %w", path, err)
	}

	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("applying schema to %s: %w", path, err)
		}
	}

	return &Store{db: db, path: path}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Probe verifies the store is readable and structurally sound. A failing
// probe signals the caller to discard the file and rebuild from the tree.
func (s *Store) Probe() error {
	var result string
	if err := s.db.QueryRow("PRAGMA quick_check").Scan(&result); err != nil {
		return fmt.Errorf("probing index store: %w", err)
	}
	if result != "ok" {
		return fmt.Errorf("index store integrity check failed: %s", result)
	}
	var n int
	if err := s.db.QueryRow("SELECT count(*) FROM documents").Scan(&n); err != nil {
		return fmt.Errorf("probing documents table: %w", err)
	}
	return nil
}
