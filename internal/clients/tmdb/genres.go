// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package tmdb

import "strings"

// genreIDs maps lower-cased genre names to TMDB genre ids.
var genreIDs = map[string]int{
	"action":          28,
	"adventure":       12,
	"animation":       16,
	"comedy":          35,
	"crime":           80,
	"documentary":     99,
	"drama":           18,
	"family":          10751,
	"fantasy":         14,
	"horror":          27,
	"mystery":         9648,
	"romance":         10749,
	"science fiction": 878,
	"sci-fi":          878,
	"thriller":        53,
	"war":             10752,
	"western":         37,
}

// GenreID returns the TMDB id for genre, case-insensitively.
func GenreID(genre string) (int, bool) {
	id, ok := genreIDs[strings.ToLower(strings.TrimSpace(genre))]
	return id, ok
}
