// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package database

import (
	"context"
	"fmt"
	"time"
)

// Migration is one versioned schema change. Migrations are append-only:
// never edit or remove one that has shipped.
type Migration struct {
	Version   int
	Name      string
	SQL       []string
	AppliedAt time.Time
}

const schemaMigrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// Timestamps are plain TIMESTAMP holding UTC; TIMESTAMPTZ needs the ICU
// extension, which is not loaded.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "initial_schema",
		SQL: []string{
			`CREATE TABLE IF NOT EXISTS preferences (
				id TEXT PRIMARY KEY,
				user_id TEXT NOT NULL,
				last_movie TEXT NOT NULL,
				preferred_genre TEXT NOT NULL,
				current_mood TEXT NOT NULL,
				created_at TIMESTAMP NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS recommendations (
				id TEXT PRIMARY KEY,
				user_id TEXT NOT NULL,
				preferences_id TEXT NOT NULL,
				movie_id TEXT NOT NULL,
				title TEXT NOT NULL,
				genre TEXT NOT NULL,
				year INTEGER NOT NULL,
				rating DOUBLE NOT NULL,
				description TEXT NOT NULL,
				poster_url TEXT NOT NULL,
				director TEXT NOT NULL,
				cast_json TEXT NOT NULL,
				relevance_score DOUBLE NOT NULL,
				created_at TIMESTAMP NOT NULL
			)`,
			`CREATE SEQUENCE IF NOT EXISTS feedback_seq START 1`,
			`CREATE TABLE IF NOT EXISTS feedback (
				id TEXT PRIMARY KEY,
				seq BIGINT NOT NULL DEFAULT nextval('feedback_seq'),
				user_id TEXT NOT NULL,
				recommendation_id TEXT NOT NULL,
				rating INTEGER,
				liked BOOLEAN,
				feedback_text TEXT,
				would_watch_again BOOLEAN,
				created_at TIMESTAMP NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_preferences_user ON preferences(user_id)`,
			`CREATE INDEX IF NOT EXISTS idx_recommendations_user_movie ON recommendations(user_id, movie_id)`,
			`CREATE INDEX IF NOT EXISTS idx_feedback_user ON feedback(user_id)`,
		},
	},
}

func (db *DB) migrate() error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if _, err := db.conn.ExecContext(ctx, schemaMigrationsTable); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := db.appliedVersions(ctx)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		if err := db.apply(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

func (db *DB) apply(ctx context.Context, m Migration) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration v%d: %w", m.Version, err)
	}
	defer rollback(tx)

	for _, stmt := range m.SQL {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute migration v%d (%s): %w", m.Version, m.Name, err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, name) VALUES (?, ?)`, m.Version, m.Name); err != nil {
		return fmt.Errorf("failed to record migration v%d: %w", m.Version, err)
	}
	return tx.Commit()
}

func (db *DB) appliedVersions(ctx context.Context) (map[int]bool, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}
	defer closeWithLog(rows, "rows")

	applied := make(map[int]bool)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan migration row: %w", err)
		}
		applied[v] = true
	}
	return applied, rows.Err()
}

// SchemaVersion returns the highest applied migration version.
func (db *DB) SchemaVersion(ctx context.Context) (int, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var v int
	err := db.conn.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return v, nil
}
