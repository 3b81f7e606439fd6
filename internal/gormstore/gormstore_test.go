// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package gormstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"

	"github.com/tomtom215/moodreel/internal/config"
	"github.com/tomtom215/moodreel/internal/models"
	"github.com/tomtom215/moodreel/internal/store"
)

func setupSQLite(t *testing.T) *Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "moodreel.db")
	s, err := OpenDialector(sqlite.Open(path), "sqlite", false)
	if err != nil {
		t.Fatalf("OpenDialector() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func intPtr(v int) *int       { return &v }
func boolPtr(v bool) *bool    { return &v }
func strPtr(v string) *string { return &v }

func recRow(userID, movieID, title string, created time.Time) models.RecommendationRow {
	return models.RecommendationRow{
		RowID:         uuid.NewString(),
		UserID:        userID,
		PreferencesID: uuid.NewString(),
		Movie: models.MovieRecommendation{
			ID:          movieID,
			Title:       title,
			Genre:       "Drama",
			Year:        1994,
			Rating:      9.3,
			Description: "Two imprisoned men bond over a number of years.",
			Director:    "Frank Darabont",
			Cast:        []string{"Tim Robbins", "Morgan Freeman"},
		},
		RelevanceScore: 12.5,
		CreatedAt:      created,
	}
}

// exerciseStore runs the store contract; the sqlite test and the postgres
// integration test share it.
func exerciseStore(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()
	user := "user-" + uuid.NewString()

	prefsID, err := s.SavePreferences(ctx, user, models.PreferenceSet{
		LastMovie: "Heat", PreferredGenre: "Drama", CurrentMood: "Feeling nostalgic",
	})
	if err != nil {
		t.Fatalf("SavePreferences() error = %v", err)
	}
	if prefsID == "" {
		t.Fatal("SavePreferences() returned empty id")
	}

	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	older := recRow(user, "278", "The Shawshank Redemption", t0)
	newer := recRow(user, "278", "The Shawshank Redemption", t0.Add(time.Minute))
	older.Movie.Cast = nil
	if err := s.SaveBatch(ctx, []models.RecommendationRow{older, newer}); err != nil {
		t.Fatalf("SaveBatch() error = %v", err)
	}

	got, err := s.FindRecommendation(ctx, user, older.RowID)
	if err != nil {
		t.Fatalf("FindRecommendation(row id) error = %v", err)
	}
	if got.Movie.Director != "Frank Darabont" || got.Movie.Cast == nil || len(got.Movie.Cast) != 0 {
		t.Errorf("FindRecommendation(row id) movie = %+v", got.Movie)
	}
	got, err = s.FindRecommendation(ctx, user, "278")
	if err != nil {
		t.Fatalf("FindRecommendation(movie id) error = %v", err)
	}
	if got.RowID != newer.RowID {
		t.Errorf("movie id resolved to %s, want most recent row %s", got.RowID, newer.RowID)
	}
	if _, err := s.FindRecommendation(ctx, "someone-else", older.RowID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("foreign lookup error = %v, want ErrNotFound", err)
	}

	records := []models.FeedbackRecord{
		{ID: uuid.NewString(), UserID: user, RecommendationID: newer.RowID,
			Fields: models.FeedbackFields{Rating: intPtr(0)}, CreatedAt: t0},
		{ID: uuid.NewString(), UserID: user, RecommendationID: newer.RowID,
			Fields: models.FeedbackFields{Liked: boolPtr(true), FeedbackText: strPtr("classic")}, CreatedAt: t0},
		{ID: uuid.NewString(), UserID: user, RecommendationID: older.RowID,
			Fields: models.FeedbackFields{WouldWatchAgain: boolPtr(false)}, CreatedAt: t0.Add(time.Hour)},
	}
	for _, r := range records {
		if err := s.SaveFeedback(ctx, r); err != nil {
			t.Fatalf("SaveFeedback() error = %v", err)
		}
	}

	entries, err := s.ListFeedback(ctx, user)
	if err != nil {
		t.Fatalf("ListFeedback() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("ListFeedback() = %d entries, want 3", len(entries))
	}
	wantOrder := []string{records[2].ID, records[1].ID, records[0].ID}
	for i, id := range wantOrder {
		if entries[i].ID != id {
			t.Errorf("entries[%d] = %s, want %s", i, entries[i].ID, id)
		}
	}
	if r := entries[2].Fields.Rating; r == nil || *r != 0 {
		t.Errorf("rating 0 lost: %v", r)
	}
	if entries[2].Fields.Liked != nil {
		t.Error("unset liked should stay nil")
	}
	if entries[1].Title != "The Shawshank Redemption" || entries[1].Rating != 9.3 {
		t.Errorf("joined movie = %q %.1f", entries[1].Title, entries[1].Rating)
	}

	none, err := s.ListFeedback(ctx, "nobody")
	if err != nil || len(none) != 0 || none == nil {
		t.Errorf("ListFeedback(nobody) = %v, %v; want empty slice", none, err)
	}

	if err := s.Ping(ctx); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestStoreSQLite(t *testing.T) {
	t.Parallel()
	exerciseStore(t, setupSQLite(t))
}

func TestSaveBatchRollsBack(t *testing.T) {
	t.Parallel()

	s := setupSQLite(t)
	ctx := context.Background()

	a := recRow("u", "1", "Heat", time.Now())
	b := a
	b.Movie.ID = "2"
	if err := s.SaveBatch(ctx, []models.RecommendationRow{a, b}); err == nil {
		t.Fatal("duplicate row ids should fail")
	}
	if _, err := s.FindRecommendation(ctx, "u", a.RowID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("partial batch persisted: %v", err)
	}
}

func TestOpenRequiresDSN(t *testing.T) {
	t.Parallel()

	if _, err := Open(&config.DatabaseConfig{Backend: "postgres"}); err == nil {
		t.Error("Open() without DSN should fail")
	}
}
