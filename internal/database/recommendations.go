// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/moodreel/internal/models"
	"github.com/tomtom215/moodreel/internal/store"
)

// SavePreferences inserts prefs and returns the generated id.
func (db *DB) SavePreferences(ctx context.Context, userID string, prefs models.PreferenceSet) (id string, err error) {
	start := time.Now()
	defer func() { observe("save_preferences", start, err) }()

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	id = uuid.NewString()
	_, err = db.conn.ExecContext(ctx, `
		INSERT INTO preferences (id, user_id, last_movie, preferred_genre, current_mood, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id, userID, prefs.LastMovie, prefs.PreferredGenre, prefs.CurrentMood, db.now().UTC())
	if err != nil {
		return "", fmt.Errorf("insert preferences: %w", err)
	}
	return id, nil
}

// GetPreferences loads one preference set owned by userID.
func (db *DB) GetPreferences(ctx context.Context, userID, id string) (*models.StoredPreferences, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var p models.StoredPreferences
	err := db.conn.QueryRowContext(ctx, `
		SELECT id, user_id, last_movie, preferred_genre, current_mood, created_at
		FROM preferences WHERE id = ? AND user_id = ?`, id, userID).
		Scan(&p.ID, &p.UserID, &p.Prefs.LastMovie, &p.Prefs.PreferredGenre, &p.Prefs.CurrentMood, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query preferences: %w", err)
	}
	return &p, nil
}

// SaveBatch inserts rows in one transaction; either all land or none do.
func (db *DB) SaveBatch(ctx context.Context, rows []models.RecommendationRow) (err error) {
	if len(rows) == 0 {
		return nil
	}
	start := time.Now()
	defer func() { observe("save_batch", start, err) }()

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}
	defer rollback(tx)

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO recommendations (id, user_id, preferences_id, movie_id, title, genre, year, rating,
			description, poster_url, director, cast_json, relevance_score, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare batch insert: %w", err)
	}
	defer closeWithLog(stmt, "prepared statement")

	for i := range rows {
		r := &rows[i]
		cast, err := json.Marshal(nonNil(r.Movie.Cast))
		if err != nil {
			return fmt.Errorf("encode cast: %w", err)
		}
		created := r.CreatedAt
		if created.IsZero() {
			created = db.now()
		}
		if _, err := stmt.ExecContext(ctx,
			r.RowID, r.UserID, r.PreferencesID, r.Movie.ID, r.Movie.Title, r.Movie.Genre, r.Movie.Year,
			r.Movie.Rating, r.Movie.Description, r.Movie.PosterURL, r.Movie.Director, string(cast),
			r.RelevanceScore, created.UTC()); err != nil {
			return fmt.Errorf("insert recommendation %s: %w", r.RowID, err)
		}
	}
	return tx.Commit()
}

// FindRecommendation matches id as a row id, then as a movie id within the
// user's rows (most recent first).
func (db *DB) FindRecommendation(ctx context.Context, userID, id string) (row *models.RecommendationRow, err error) {
	start := time.Now()
	defer func() {
		if errors.Is(err, store.ErrNotFound) {
			observe("find_recommendation", start, nil)
			return
		}
		observe("find_recommendation", start, err)
	}()

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	row, err = db.scanRecommendation(db.conn.QueryRowContext(ctx,
		recommendationSelect+` WHERE id = ? AND user_id = ?`, id, userID))
	if !errors.Is(err, store.ErrNotFound) {
		return row, err
	}
	return db.scanRecommendation(db.conn.QueryRowContext(ctx,
		recommendationSelect+` WHERE movie_id = ? AND user_id = ? ORDER BY created_at DESC LIMIT 1`, id, userID))
}

const recommendationSelect = `
	SELECT id, user_id, preferences_id, movie_id, title, genre, year, rating,
		description, poster_url, director, cast_json, relevance_score, created_at
	FROM recommendations`

func (db *DB) scanRecommendation(r *sql.Row) (*models.RecommendationRow, error) {
	var (
		row  models.RecommendationRow
		cast string
	)
	err := r.Scan(&row.RowID, &row.UserID, &row.PreferencesID, &row.Movie.ID, &row.Movie.Title,
		&row.Movie.Genre, &row.Movie.Year, &row.Movie.Rating, &row.Movie.Description,
		&row.Movie.PosterURL, &row.Movie.Director, &cast, &row.RelevanceScore, &row.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query recommendation: %w", err)
	}
	if err := json.Unmarshal([]byte(cast), &row.Movie.Cast); err != nil {
		return nil, fmt.Errorf("decode cast: %w", err)
	}
	return &row, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
