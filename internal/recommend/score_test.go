// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package recommend

import (
	"strings"
	"testing"

	"github.com/tomtom215/moodreel/internal/models"
)

func TestScore(t *testing.T) {
	t.Parallel()

	movie := func(genre string, rating float64) models.MovieRecommendation {
		return models.MovieRecommendation{Genre: genre, Rating: rating}
	}

	tests := []struct {
		name  string
		movie models.MovieRecommendation
		mood  string
		want  float64
	}{
		{"action excited", movie("Action", 8.0), "Excited for adventure", 4 + MoodBonus},
		{"action looking", movie("Action", 8.0), "Looking for action", 4 + MoodBonus},
		{"comedy laugh", movie("Comedy", 7.0), "Want to laugh", 3.5 + MoodBonus},
		{"comedy light", movie("Comedy", 7.0), "Want something light", 3.5 + MoodBonus},
		{"romance", movie("Romance", 6.0), "Feel romantic", 3 + MoodBonus},
		{"drama cry", movie("Drama", 6.0), "Need a good cry", 3 + MoodBonus},
		{"drama deep", movie("Drama", 6.0), "Want to think deeply", 3 + MoodBonus},
		{"horror", movie("Horror", 6.0), "Want to be scared", 3 + MoodBonus},
		{"mystery", movie("Mystery", 6.0), "Feeling mysterious", 3 + MoodBonus},
		{"thriller think", movie("Thriller", 6.0), "Want to think deeply", 3 + MoodBonus},
		{"science fiction", movie("Science Fiction", 6.0), "Want to think deeply", 3 + MoodBonus},
		{"sci-fi alias", movie("Sci-Fi", 6.0), "Feeling mysterious", 3 + MoodBonus},
		{"case insensitive", movie("comedy", 6.0), "WANT TO LAUGH", 3 + MoodBonus},
		{"no trigger", movie("Action", 8.0), "Feeling nostalgic", 4},
		{"wrong genre", movie("Western", 8.0), "Looking for action", 4},
		{"empty mood", movie("Horror", 5.0), "", 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Score(tt.movie, tt.mood); got != tt.want {
				t.Errorf("Score() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRankByMoodIsStable(t *testing.T) {
	t.Parallel()

	movies := []models.MovieRecommendation{
		{ID: "a", Genre: "Western", Rating: 7},
		{ID: "b", Genre: "Action", Rating: 6},
		{ID: "c", Genre: "War", Rating: 7},
		{ID: "d", Genre: "Family", Rating: 7},
	}
	RankByMood(movies, "Looking for action")

	// b: 3+2=5; a, c, d: 3.5 each and keep input order
	want := []string{"b", "a", "c", "d"}
	for i, id := range want {
		if movies[i].ID != id {
			t.Fatalf("order = %v, want %v", ids(movies), want)
		}
	}
}

func TestCanonicalGenre(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]string{
		"Sci-Fi":          "Science Fiction",
		" sci-fi ":        "Science Fiction",
		"Science Fiction": "Science Fiction",
		"Drama":           "Drama",
	} {
		if got := CanonicalGenre(in); got != want {
			t.Errorf("CanonicalGenre(%q) = %q, want %q", in, got, want)
		}
	}
}

func ids(movies []models.MovieRecommendation) []string {
	out := make([]string, len(movies))
	for i, m := range movies {
		out[i] = m.ID
	}
	return out
}

func genresOf(movies []models.MovieRecommendation) string {
	out := make([]string, len(movies))
	for i, m := range movies {
		out[i] = m.Genre
	}
	return strings.Join(out, ",")
}
