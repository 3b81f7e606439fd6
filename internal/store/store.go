// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

// Package store defines the append-only persistence contract shared by the
// DuckDB and gorm backends.
package store

import (
	"context"
	"errors"

	"github.com/tomtom215/moodreel/internal/models"
)

// ErrNotFound is returned when a lookup matches no row owned by the caller.
var ErrNotFound = errors.New("not found")

// Store persists preference sets, recommendation rows and feedback. Rows
// are only ever inserted.
type Store interface {
	// SavePreferences stores prefs for userID and returns the new
	// preference-set id, which also identifies the batch.
	SavePreferences(ctx context.Context, userID string, prefs models.PreferenceSet) (string, error)

	// SaveBatch inserts all rows in one transaction.
	SaveBatch(ctx context.Context, rows []models.RecommendationRow) error

	// FindRecommendation resolves id to a row owned by userID. id is
	// matched against row ids first, then against the movie id of the
	// user's most recent row. Returns ErrNotFound when nothing matches.
	FindRecommendation(ctx context.Context, userID, id string) (*models.RecommendationRow, error)

	SaveFeedback(ctx context.Context, rec models.FeedbackRecord) error

	// ListFeedback returns userID's feedback newest first.
	ListFeedback(ctx context.Context, userID string) ([]models.FeedbackEntry, error)

	Ping(ctx context.Context) error
	Close() error
}
