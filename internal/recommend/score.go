// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package recommend

import (
	"cmp"
	"slices"
	"strings"

	"github.com/tomtom215/moodreel/internal/models"
)

// MoodBonus is added to a movie's score when the mood triggers its genre.
const MoodBonus = 2.0

// moodRules maps lower-case mood substrings to the genres they favor.
// A movie has one genre, so at most one rule can apply to it.
var moodRules = []struct {
	triggers []string
	genres   []string
}{
	{triggers: []string{"excited", "action"}, genres: []string{"action"}},
	{triggers: []string{"laugh", "light"}, genres: []string{"comedy"}},
	{triggers: []string{"romantic", "romance"}, genres: []string{"romance"}},
	{triggers: []string{"cry", "deep"}, genres: []string{"drama"}},
	{triggers: []string{"scared", "horror"}, genres: []string{"horror"}},
	{triggers: []string{"think", "mysterious"}, genres: []string{"mystery", "thriller", "science fiction"}},
}

// genreAliases folds alternate spellings onto one canonical genre.
var genreAliases = map[string]string{
	"sci-fi": "Science Fiction",
	"scifi":  "Science Fiction",
}

// CanonicalGenre resolves aliases such as "Sci-Fi". Unknown genres are
// returned trimmed but otherwise unchanged.
func CanonicalGenre(genre string) string {
	g := strings.TrimSpace(genre)
	if canon, ok := genreAliases[strings.ToLower(g)]; ok {
		return canon
	}
	return g
}

// Score ranks a movie for a mood: half its rating plus MoodBonus when the
// mood mentions a trigger for the movie's genre. Pure and deterministic.
func Score(movie models.MovieRecommendation, mood string) float64 {
	score := movie.Rating / 2
	m := strings.ToLower(mood)
	genre := strings.ToLower(CanonicalGenre(movie.Genre))

	for _, rule := range moodRules {
		if !slices.Contains(rule.genres, genre) {
			continue
		}
		for _, trigger := range rule.triggers {
			if strings.Contains(m, trigger) {
				return score + MoodBonus
			}
		}
	}
	return score
}

// RankByMood stably sorts movies by Score descending. Equal scores keep
// their input order.
func RankByMood(movies []models.MovieRecommendation, mood string) {
	type scored struct {
		movie models.MovieRecommendation
		score float64
	}
	ranked := make([]scored, len(movies))
	for i, m := range movies {
		ranked[i] = scored{movie: m, score: Score(m, mood)}
	}
	slices.SortStableFunc(ranked, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})
	for i := range ranked {
		movies[i] = ranked[i].movie
	}
}
