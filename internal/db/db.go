// Package db persists snapshots of the user registry and the task store in
// a single sqlite file. Each Save replaces the stored snapshot wholesale
// inside one transaction; each Load reads it back wholesale. A missing or
// unreadable file is treated as "no data yet" by the caller, never as a
// startup failure.
package db

import (
	"database/sql"
	_ "embed"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema string

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// New opens (creating if necessary) the database at dir/taskden.db and
// initializes the schema. An empty dir selects the default data directory.
func New(dir string) (*DB, error) {
	if dir == "" {
		var err error
		dir, err = DefaultDataDir()
		if err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", filepath.Join(dir, "taskden.db")+"?_foreign_keys=on")
	if err != nil {
		return nil, err
	}

	// Initialize schema
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{db}, nil
}

// DefaultDataDir returns the directory holding the database and log file,
// using the XDG data directory or falling back to the home directory.
func DefaultDataDir() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "taskden"), nil
}
