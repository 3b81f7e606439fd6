// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package recommend

import "github.com/tomtom215/moodreel/internal/models"

// MergeByID concatenates first and second, keeping the first occurrence of
// each id, and truncates to limit. Order within each input is preserved.
// Entries with an empty id are dropped.
func MergeByID(first, second []models.MovieRecommendation, limit int) []models.MovieRecommendation {
	if limit <= 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(first)+len(second))
	out := make([]models.MovieRecommendation, 0, min(limit, len(first)+len(second)))

	for _, list := range [][]models.MovieRecommendation{first, second} {
		for _, m := range list {
			if len(out) == limit {
				return out
			}
			if m.ID == "" {
				continue
			}
			if _, dup := seen[m.ID]; dup {
				continue
			}
			seen[m.ID] = struct{}{}
			out = append(out, m)
		}
	}
	return out
}
