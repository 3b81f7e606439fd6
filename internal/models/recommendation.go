// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package models

import "time"

// PreferenceSet is the three-field user input that drives one assembly.
// It is never modified after submission.
type PreferenceSet struct {
	LastMovie      string `json:"last_movie"`
	PreferredGenre string `json:"preferred_genre"`
	CurrentMood    string `json:"current_mood"`
}

// StoredPreferences is a persisted PreferenceSet. ID doubles as the batch
// identifier every recommendation row of the resulting batch points to.
type StoredPreferences struct {
	ID        string        `json:"id"`
	UserID    string        `json:"user_id"`
	Prefs     PreferenceSet `json:"preferences"`
	CreatedAt time.Time     `json:"created_at"`
}

// MovieRecommendation is one entry of a returned batch. ID is the external
// metadata identifier; Genre is the genre the user asked for, not the
// source's own classification.
type MovieRecommendation struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Genre       string   `json:"genre"`
	Year        int      `json:"year"`
	Rating      float64  `json:"rating"`
	Description string   `json:"description"`
	PosterURL   string   `json:"poster"`
	Director    string   `json:"director"`
	Cast        []string `json:"cast"`
}

// RecommendationRow is a MovieRecommendation as persisted for one user in
// one batch (a "recommendation instance"). RowID is what feedback refers to.
type RecommendationRow struct {
	RowID          string              `json:"row_id"`
	UserID         string              `json:"user_id"`
	PreferencesID  string              `json:"preferences_id"`
	Movie          MovieRecommendation `json:"movie"`
	RelevanceScore float64             `json:"relevance_score"`
	CreatedAt      time.Time           `json:"created_at"`
}

// Batch is the result of one assembly.
type Batch struct {
	PreferencesID   string                `json:"preferences_id,omitempty"`
	Source          BatchSource           `json:"source"`
	Recommendations []MovieRecommendation `json:"recommendations"`
	// RowIDs is parallel to Recommendations; empty when the batch could not
	// be persisted.
	RowIDs []string `json:"row_ids,omitempty"`
}

// BatchSource tells which path produced a batch.
type BatchSource string

const (
	SourceLive     BatchSource = "live"
	SourceFallback BatchSource = "fallback"
)
