// Package sqlite provides repository implementations backed by an embedded
// SQLite database, for single-binary local deployments. The schema mirrors
// the postgres adapter: dates as ISO YYYY-MM-DD text, amounts as decimal
// text, history tables ordered by an autoincrement sequence.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS assets (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	asset_type TEXT NOT NULL,
	initial_value TEXT NOT NULL,
	created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS asset_valuations (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	asset_id TEXT NOT NULL REFERENCES assets(id) ON DELETE CASCADE,
	value TEXT NOT NULL,
	date TEXT NOT NULL,
	kind TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS asset_contributions (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	asset_id TEXT NOT NULL REFERENCES assets(id) ON DELETE CASCADE,
	amount TEXT NOT NULL,
	date TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS transactions (
	id TEXT PRIMARY KEY,
	kind TEXT NOT NULL,
	amount TEXT NOT NULL,
	description TEXT NOT NULL,
	date TEXT NOT NULL,
	is_recurring INTEGER NOT NULL,
	frequency TEXT NOT NULL DEFAULT '',
	end_date TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS transaction_history (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	transaction_id TEXT NOT NULL REFERENCES transactions(id) ON DELETE CASCADE,
	amount TEXT NOT NULL,
	description TEXT NOT NULL,
	date TEXT NOT NULL,
	is_recurring INTEGER NOT NULL,
	frequency TEXT NOT NULL DEFAULT '',
	end_date TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL DEFAULT '',
	change_type TEXT NOT NULL,
	recorded_at TEXT NOT NULL
);
`

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// Open opens (creating if needed) the SQLite database at path and ensures
// the schema exists. Use ":memory:" for an ephemeral database.
func Open(ctx context.Context, path string) (*DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	// Cascading deletes carry the append-only history tables with their
	// parent record.
	if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &DB{DB: db}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}
