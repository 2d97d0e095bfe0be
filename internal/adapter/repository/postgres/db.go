package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// NewDB creates a new database connection
// connectionString should be in the format: "host=localhost port=5432 user=postgres password=postgres dbname=networth sslmode=disable"
func NewDB(connectionString string) (*DB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}

// Migrate creates the schema when it does not exist yet.
// Dates are stored as ISO YYYY-MM-DD text and amounts as decimal text;
// both are parsed back on scan, and unparsable rows are skipped rather
// than failing the whole read.
func (db *DB) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS assets (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			asset_type TEXT NOT NULL,
			initial_value TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS asset_valuations (
			seq BIGSERIAL PRIMARY KEY,
			asset_id UUID NOT NULL REFERENCES assets(id) ON DELETE CASCADE,
			value TEXT NOT NULL,
			date TEXT NOT NULL,
			kind TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS asset_contributions (
			seq BIGSERIAL PRIMARY KEY,
			asset_id UUID NOT NULL REFERENCES assets(id) ON DELETE CASCADE,
			amount TEXT NOT NULL,
			date TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id UUID PRIMARY KEY,
			kind TEXT NOT NULL,
			amount TEXT NOT NULL,
			description TEXT NOT NULL,
			date TEXT NOT NULL,
			is_recurring BOOLEAN NOT NULL,
			frequency TEXT NOT NULL DEFAULT '',
			end_date TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS transaction_history (
			seq BIGSERIAL PRIMARY KEY,
			transaction_id UUID NOT NULL REFERENCES transactions(id) ON DELETE CASCADE,
			amount TEXT NOT NULL,
			description TEXT NOT NULL,
			date TEXT NOT NULL,
			is_recurring BOOLEAN NOT NULL,
			frequency TEXT NOT NULL DEFAULT '',
			end_date TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			change_type TEXT NOT NULL,
			recorded_at TIMESTAMPTZ NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}

	return nil
}
