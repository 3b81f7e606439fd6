// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/moodreel/internal/models"
)

// SaveFeedback inserts one feedback record. Absent fields are stored as
// NULL so "not answered" stays distinct from zero or false.
func (db *DB) SaveFeedback(ctx context.Context, rec models.FeedbackRecord) (err error) {
	start := time.Now()
	defer func() { observe("save_feedback", start, err) }()

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	created := rec.CreatedAt
	if created.IsZero() {
		created = db.now()
	}
	f := rec.Fields
	_, err = db.conn.ExecContext(ctx, `
		INSERT INTO feedback (id, user_id, recommendation_id, rating, liked, feedback_text, would_watch_again, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.UserID, rec.RecommendationID, deref(f.Rating), deref(f.Liked), deref(f.FeedbackText),
		deref(f.WouldWatchAgain), created.UTC())
	if err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

// ListFeedback returns userID's feedback joined with the rated movie,
// newest first.
func (db *DB) ListFeedback(ctx context.Context, userID string) (entries []models.FeedbackEntry, err error) {
	start := time.Now()
	defer func() { observe("list_feedback", start, err) }()

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, `
		SELECT f.id, f.user_id, f.recommendation_id, f.rating, f.liked, f.feedback_text,
			f.would_watch_again, f.created_at, r.title, r.genre, r.rating
		FROM feedback f
		JOIN recommendations r ON r.id = f.recommendation_id
		WHERE f.user_id = ?
		ORDER BY f.created_at DESC, f.seq DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query feedback: %w", err)
	}
	defer closeWithLog(rows, "rows")

	entries = []models.FeedbackEntry{}
	for rows.Next() {
		var (
			e       models.FeedbackEntry
			rating  sql.NullInt64
			liked   sql.NullBool
			text    sql.NullString
			rewatch sql.NullBool
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.RecommendationID, &rating, &liked, &text,
			&rewatch, &e.CreatedAt, &e.Title, &e.Genre, &e.Rating); err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}
		if rating.Valid {
			v := int(rating.Int64)
			e.Fields.Rating = &v
		}
		if liked.Valid {
			e.Fields.Liked = &liked.Bool
		}
		if text.Valid {
			e.Fields.FeedbackText = &text.String
		}
		if rewatch.Valid {
			e.Fields.WouldWatchAgain = &rewatch.Bool
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// deref turns an optional field into a driver argument: nil or the value.
func deref[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
