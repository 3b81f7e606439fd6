// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

/*
Package models defines the data shared between the recommendation service,
the stores and the HTTP API.

  - PreferenceSet / StoredPreferences: one intake submission
  - MovieRecommendation: one entry of a batch as shown to the user
  - RecommendationRow: a persisted entry, the target of feedback
  - Batch: the result of one assembly (live or fallback)
  - FeedbackFields / FeedbackRecord / FeedbackEntry: append-only feedback

JSON tags are the wire format of the HTTP API.
*/
package models
