// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package models

import "time"

// FeedbackFields are the optional signals a user can attach to a shown
// recommendation. A nil pointer means "not provided"; a zero value is a
// provided signal.
type FeedbackFields struct {
	Rating          *int    `json:"rating,omitempty"`
	Liked           *bool   `json:"liked,omitempty"`
	FeedbackText    *string `json:"feedback_text,omitempty"`
	WouldWatchAgain *bool   `json:"would_watch_again,omitempty"`
}

// HasSignal reports whether at least one field was provided.
func (f FeedbackFields) HasSignal() bool {
	return f.Rating != nil || f.Liked != nil || f.FeedbackText != nil || f.WouldWatchAgain != nil
}

// FeedbackRecord is an appended feedback row.
type FeedbackRecord struct {
	ID               string         `json:"id"`
	UserID           string         `json:"user_id"`
	RecommendationID string         `json:"recommendation_id"`
	Fields           FeedbackFields `json:"fields"`
	CreatedAt        time.Time      `json:"created_at"`
}

// FeedbackEntry is a FeedbackRecord joined with the recommendation it refers
// to, as returned by the history listing.
type FeedbackEntry struct {
	FeedbackRecord
	Title  string  `json:"title"`
	Genre  string  `json:"genre"`
	Rating float64 `json:"movie_rating"`
}
