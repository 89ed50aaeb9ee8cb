package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL CHECK (role IN ('Administrator', 'Project_Manager', 'Colaborator')),
		avatar_url    TEXT,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS projects (
		id             TEXT PRIMARY KEY,
		name           TEXT NOT NULL,
		description    TEXT,
		assigned_to_id TEXT NOT NULL REFERENCES users(id) ON DELETE RESTRICT,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id             TEXT PRIMARY KEY,
		title          TEXT NOT NULL,
		description    TEXT,
		status         TEXT NOT NULL DEFAULT 'Pending' CHECK (status IN ('Pending', 'In_process', 'Review', 'Finished')),
		due_date       TIMESTAMPTZ,
		project_id     TEXT REFERENCES projects(id) ON DELETE SET NULL,
		assigned_to_id TEXT REFERENCES users(id) ON DELETE SET NULL,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS tasks_due_date_idx ON tasks (due_date)`,
	`CREATE TABLE IF NOT EXISTS auth_events (
		id          TEXT PRIMARY KEY,
		kind        TEXT NOT NULL,
		user_id     TEXT,
		email       TEXT,
		role        TEXT,
		path        TEXT,
		ip          TEXT,
		at          TIMESTAMPTZ NOT NULL,
		recorded_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS auth_events_email_at_idx ON auth_events (email, at)`,
}

// EnsureSchema creates the tables and indexes the repositories rely on.
// It is idempotent.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
