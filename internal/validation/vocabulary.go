// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package validation

import "strings"

// Genres is the intake genre list offered to users.
var Genres = []string{
	"Action", "Adventure", "Animation", "Comedy", "Crime", "Documentary",
	"Drama", "Family", "Fantasy", "Horror", "Mystery", "Romance",
	"Science Fiction", "Sci-Fi", "Thriller", "War", "Western", "Biography",
	"History", "Music", "Musical", "Sport",
}

// Moods is the intake mood list offered to users.
var Moods = []string{
	"Excited for adventure",
	"Want to laugh",
	"Feel romantic",
	"Need a good cry",
	"Want to be scared",
	"Feeling nostalgic",
	"Need inspiration",
	"Want to think deeply",
	"Looking for action",
	"Want something light",
	"Feeling mysterious",
	"Need comfort",
}

var (
	genreSet = lowerSet(Genres)
	moodSet  = lowerSet(Moods)
)

func lowerSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = struct{}{}
	}
	return set
}

// IsGenre reports whether s names an intake genre.
func IsGenre(s string) bool {
	_, ok := genreSet[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// IsMood reports whether s names an intake mood.
func IsMood(s string) bool {
	_, ok := moodSet[strings.ToLower(strings.TrimSpace(s))]
	return ok
}
