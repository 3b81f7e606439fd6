// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package gormstore

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/tomtom215/moodreel/internal/logging"
	"github.com/tomtom215/moodreel/internal/models"
	"github.com/tomtom215/moodreel/internal/recommend"
	"github.com/tomtom215/moodreel/internal/source"
	"github.com/tomtom215/moodreel/internal/store"
)

var errOffline = errors.New("offline")

type offlineText struct{}

func (offlineText) CandidateTitles(context.Context, models.PreferenceSet) source.Result[[]string] {
	return source.UnavailableResult[[]string](errOffline)
}

// discoveryOnly serves discover and credits but resolves no titles.
type discoveryOnly struct{}

func (discoveryOnly) SearchMovie(context.Context, string) source.Result[*source.Movie] {
	return source.UnavailableResult[*source.Movie](errOffline)
}

func (discoveryOnly) Credits(context.Context, int) source.Result[source.Credits] {
	return source.OkResult(source.Credits{
		Crew: []source.CrewMember{{Name: "Denis Villeneuve", Job: "Director"}},
	})
}

func (discoveryOnly) Discover(_ context.Context, _ string, limit int) source.Result[[]source.Movie] {
	movies := make([]source.Movie, 0, limit)
	for i := 1; i <= limit; i++ {
		movies = append(movies, source.Movie{
			ID: 100 + i, Title: fmt.Sprintf("Feature %d", i), ReleaseDate: "2016-11-11", VoteAverage: 7.9,
		})
	}
	return source.OkResult(movies)
}

func TestFindRecommendationUnknownIDIsNotFound(t *testing.T) {
	t.Parallel()

	s := setupSQLite(t)
	row, err := s.FindRecommendation(context.Background(), "nobody", "missing-id")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("FindRecommendation() error = %v, want ErrNotFound", err)
	}
	if row != nil {
		t.Errorf("FindRecommendation() row = %+v, want nil", row)
	}
}

func TestServiceFeedbackScopedToOwner(t *testing.T) {
	t.Parallel()

	s := setupSQLite(t)
	svc, err := recommend.NewService(recommend.DefaultConfig(), offlineText{}, discoveryOnly{}, s,
		logging.NewNopLogger(), recommend.WithSeed(7))
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	ctx := context.Background()
	b := svc.Assemble(ctx, "alice", models.PreferenceSet{
		LastMovie: "Arrival", PreferredGenre: "Science Fiction", CurrentMood: "Want to think deeply",
	})
	if len(b.RowIDs) == 0 {
		t.Fatalf("batch not persisted: source=%s", b.Source)
	}
	rating := 4

	tests := []struct {
		name string
		id   string
		user string
		want bool
	}{
		{"other user's row", b.RowIDs[0], "bob", false},
		{"other user's movie id", b.Recommendations[0].ID, "bob", false},
		{"unknown id", "missing-id", "alice", false},
		{"owner row", b.RowIDs[0], "alice", true},
	}
	for _, tt := range tests {
		got := svc.RecordFeedback(ctx, tt.id, tt.user, models.FeedbackFields{Rating: &rating})
		if got != tt.want {
			t.Errorf("%s: RecordFeedback() = %v, want %v", tt.name, got, tt.want)
		}
	}

	bob, err := s.ListFeedback(ctx, "bob")
	if err != nil || len(bob) != 0 {
		t.Errorf("ListFeedback(bob) = %d entries, %v; want none", len(bob), err)
	}
	alice, err := s.ListFeedback(ctx, "alice")
	if err != nil || len(alice) != 1 {
		t.Errorf("ListFeedback(alice) = %d entries, %v; want 1", len(alice), err)
	}
}
