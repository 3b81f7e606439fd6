// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package recommend

import (
	"strings"

	"github.com/tomtom215/moodreel/internal/models"
)

const (
	// fallbackSize is the maximum fallback batch.
	fallbackSize = 10
	// minGenreMatches is the smallest genre-pure fallback; below it the
	// list is padded with other genres.
	minGenreMatches = 5
)

// Fallback ranks the bundled catalog for prefs. It never touches the
// network or the store and always returns between 1 and 10 entries.
//
// Entries whose genre matches the preferred genre (case-insensitive, aliases
// folded) are kept. When fewer than five match, remaining catalog entries
// are appended in catalog order until ten. The result is ranked by
// RankByMood and truncated to ten. Entries keep their catalog genre.
func Fallback(prefs models.PreferenceSet) []models.MovieRecommendation {
	want := CanonicalGenre(prefs.PreferredGenre)

	picked := make([]models.MovieRecommendation, 0, fallbackSize)
	rest := make([]models.MovieRecommendation, 0, len(catalog))
	for i := range catalog {
		if strings.EqualFold(CanonicalGenre(catalog[i].Genre), want) {
			picked = append(picked, cloneMovie(catalog[i]))
		} else {
			rest = append(rest, catalog[i])
		}
	}

	if len(picked) < minGenreMatches {
		for i := 0; i < len(rest) && len(picked) < fallbackSize; i++ {
			picked = append(picked, cloneMovie(rest[i]))
		}
	}

	RankByMood(picked, prefs.CurrentMood)
	if len(picked) > fallbackSize {
		picked = picked[:fallbackSize]
	}
	return picked
}
