package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq" // postgres driver
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("record not found")

// DB wraps the sql connection pool
type DB struct {
	*sql.DB
}

// New opens a Postgres connection pool and verifies connectivity
func New(databaseURL string) (*DB, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			_ = closeErr
		}
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db}, nil
}

// schema is applied idempotently at startup. The UNIQUE (habit_id, date)
// constraint is what makes same-day double logging an upsert instead of a
// duplicate row, and ON DELETE CASCADE keeps logs from outliving their habit.
const schema = `
CREATE TABLE IF NOT EXISTS habits (
	id UUID PRIMARY KEY,
	owner_id UUID NOT NULL,
	name TEXT NOT NULL,
	frequency_type TEXT NOT NULL,
	frequency_value INTEGER NOT NULL DEFAULT 1,
	target_count INTEGER NOT NULL DEFAULT 1,
	color TEXT NOT NULL DEFAULT '',
	streak_count INTEGER NOT NULL DEFAULT 0,
	best_streak INTEGER NOT NULL DEFAULT 0,
	total_completions INTEGER NOT NULL DEFAULT 0,
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	archived_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_habits_owner ON habits (owner_id);

CREATE TABLE IF NOT EXISTS habit_logs (
	id UUID PRIMARY KEY,
	habit_id UUID NOT NULL REFERENCES habits(id) ON DELETE CASCADE,
	owner_id UUID NOT NULL,
	date DATE NOT NULL,
	status TEXT NOT NULL,
	completion_count INTEGER NOT NULL DEFAULT 0,
	target_count INTEGER NOT NULL DEFAULT 1,
	quality_rating INTEGER,
	mood_before INTEGER,
	mood_after INTEGER,
	notes TEXT,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL,
	CONSTRAINT habit_logs_habit_day UNIQUE (habit_id, date)
);

CREATE INDEX IF NOT EXISTS idx_habit_logs_owner_date ON habit_logs (owner_id, date);

CREATE TABLE IF NOT EXISTS ratelimit_config (
	config_key TEXT PRIMARY KEY,
	rate TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
`

// Migrate applies the schema. Safe to run on every startup.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
