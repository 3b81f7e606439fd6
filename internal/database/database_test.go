// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/moodreel/internal/config"
	"github.com/tomtom215/moodreel/internal/models"
	"github.com/tomtom215/moodreel/internal/store"
)

// testDBSemaphore serializes DuckDB usage across tests; concurrent CGO
// connections from many parallel tests can stall under CI load.
var testDBSemaphore = make(chan struct{}, 1)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() { <-testDBSemaphore })

	db, err := Open(&config.DatabaseConfig{Path: ":memory:", MaxMemory: "512MB", Threads: 1})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func intPtr(v int) *int       { return &v }
func boolPtr(v bool) *bool    { return &v }
func strPtr(v string) *string { return &v }

func row(userID, prefsID, movieID, title string, created time.Time) models.RecommendationRow {
	return models.RecommendationRow{
		RowID:         uuid.NewString(),
		UserID:        userID,
		PreferencesID: prefsID,
		Movie: models.MovieRecommendation{
			ID:       movieID,
			Title:    title,
			Genre:    "Science Fiction",
			Year:     2016,
			Rating:   7.9,
			Director: "Denis Villeneuve",
			Cast:     []string{"Amy Adams", "Jeremy Renner"},
		},
		RelevanceScore: 42.5,
		CreatedAt:      created,
	}
}

func TestOpenAppliesSchemaOnce(t *testing.T) {
	testDBSemaphore <- struct{}{}
	defer func() { <-testDBSemaphore }()

	path := filepath.Join(t.TempDir(), "data", "moodreel.duckdb")
	cfg := &config.DatabaseConfig{Path: path, MaxMemory: "512MB", Threads: 1}

	for range 2 {
		db, err := Open(cfg)
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		v, err := db.SchemaVersion(context.Background())
		if err != nil {
			t.Fatalf("SchemaVersion() error = %v", err)
		}
		if v != len(migrations) {
			t.Errorf("SchemaVersion() = %d, want %d", v, len(migrations))
		}
		if err := db.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
	}
}

func TestPreferencesRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	prefs := models.PreferenceSet{LastMovie: "Arrival", PreferredGenre: "Science Fiction", CurrentMood: "Want to think deeply"}
	id, err := db.SavePreferences(ctx, "user-1", prefs)
	if err != nil {
		t.Fatalf("SavePreferences() error = %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("preferences id %q is not a uuid", id)
	}

	got, err := db.GetPreferences(ctx, "user-1", id)
	if err != nil {
		t.Fatalf("GetPreferences() error = %v", err)
	}
	if got.Prefs != prefs {
		t.Errorf("stored prefs = %+v, want %+v", got.Prefs, prefs)
	}
	if _, err := db.GetPreferences(ctx, "user-2", id); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("foreign GetPreferences() error = %v, want ErrNotFound", err)
	}
}

func TestFindRecommendation(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	older := row("user-1", "p1", "329865", "Arrival", t0)
	newer := row("user-1", "p2", "329865", "Arrival", t0.Add(time.Hour))
	other := row("user-2", "p3", "27205", "Inception", t0)
	if err := db.SaveBatch(ctx, []models.RecommendationRow{older, other}); err != nil {
		t.Fatalf("SaveBatch() error = %v", err)
	}
	if err := db.SaveBatch(ctx, []models.RecommendationRow{newer}); err != nil {
		t.Fatalf("SaveBatch() error = %v", err)
	}

	got, err := db.FindRecommendation(ctx, "user-1", older.RowID)
	if err != nil {
		t.Fatalf("FindRecommendation(row id) error = %v", err)
	}
	if got.RowID != older.RowID || got.Movie.Director != "Denis Villeneuve" || len(got.Movie.Cast) != 2 {
		t.Errorf("FindRecommendation(row id) = %+v", got)
	}

	got, err = db.FindRecommendation(ctx, "user-1", "329865")
	if err != nil {
		t.Fatalf("FindRecommendation(movie id) error = %v", err)
	}
	if got.RowID != newer.RowID {
		t.Errorf("movie id should resolve to the most recent row, got preferences %s", got.PreferencesID)
	}

	tests := []struct {
		name   string
		userID string
		id     string
	}{
		{"foreign row id", "user-1", other.RowID},
		{"foreign movie id", "user-1", "27205"},
		{"unknown", "user-1", "nope"},
	}
	for _, tt := range tests {
		if _, err := db.FindRecommendation(ctx, tt.userID, tt.id); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("%s: error = %v, want ErrNotFound", tt.name, err)
		}
	}
}

func TestSaveBatchIsAtomic(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	now := time.Now()
	first := row("user-1", "p1", "1", "Blade Runner 2049", now)
	dup := first
	dup.Movie.ID = "2"
	if err := db.SaveBatch(ctx, []models.RecommendationRow{first, dup}); err == nil {
		t.Fatal("duplicate row id should fail the batch")
	}
	if _, err := db.FindRecommendation(ctx, "user-1", first.RowID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("failed batch left rows behind: %v", err)
	}
	if err := db.SaveBatch(ctx, nil); err != nil {
		t.Errorf("empty batch error = %v", err)
	}
}

func TestFeedbackHistory(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rec := row("user-1", "p1", "329865", "Arrival", t0)
	if err := db.SaveBatch(ctx, []models.RecommendationRow{rec}); err != nil {
		t.Fatalf("SaveBatch() error = %v", err)
	}

	first := models.FeedbackRecord{
		ID: uuid.NewString(), UserID: "user-1", RecommendationID: rec.RowID,
		Fields:    models.FeedbackFields{Rating: intPtr(0)},
		CreatedAt: t0,
	}
	second := models.FeedbackRecord{
		ID: uuid.NewString(), UserID: "user-1", RecommendationID: rec.RowID,
		Fields: models.FeedbackFields{
			Liked: boolPtr(false), FeedbackText: strPtr("too slow"), WouldWatchAgain: boolPtr(true),
		},
		CreatedAt: t0,
	}
	foreign := models.FeedbackRecord{
		ID: uuid.NewString(), UserID: "user-2", RecommendationID: rec.RowID,
		Fields: models.FeedbackFields{Liked: boolPtr(true)}, CreatedAt: t0,
	}
	for _, f := range []models.FeedbackRecord{first, second, foreign} {
		if err := db.SaveFeedback(ctx, f); err != nil {
			t.Fatalf("SaveFeedback() error = %v", err)
		}
	}

	entries, err := db.ListFeedback(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListFeedback() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("ListFeedback() returned %d entries, want 2", len(entries))
	}
	// Same timestamp: insertion order breaks the tie, newest first.
	if entries[0].ID != second.ID || entries[1].ID != first.ID {
		t.Errorf("order = %s, %s; want second, first", entries[0].ID, entries[1].ID)
	}
	if entries[0].Title != "Arrival" || entries[0].Rating != 7.9 {
		t.Errorf("joined movie = %q %.1f", entries[0].Title, entries[0].Rating)
	}
	if r := entries[1].Fields.Rating; r == nil || *r != 0 {
		t.Errorf("rating 0 should survive as a value, got %v", r)
	}
	if entries[1].Fields.Liked != nil || entries[1].Fields.FeedbackText != nil {
		t.Error("absent fields should read back as nil")
	}
	if e := entries[0].Fields; e.Liked == nil || *e.Liked || e.FeedbackText == nil || *e.FeedbackText != "too slow" {
		t.Errorf("second fields = %+v", e)
	}

	empty, err := db.ListFeedback(ctx, "nobody")
	if err != nil || empty == nil || len(empty) != 0 {
		t.Errorf("ListFeedback(nobody) = %v, %v; want empty non-nil slice", empty, err)
	}
}

func TestPing(t *testing.T) {
	db := setupTestDB(t)
	if err := db.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}
