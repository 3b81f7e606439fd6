// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package api

import (
	"strings"

	"github.com/tomtom215/moodreel/internal/models"
)

// recommendationRequest is the intake form.
type recommendationRequest struct {
	LastMovie      string `json:"last_movie" validate:"required,max=200"`
	PreferredGenre string `json:"preferred_genre" validate:"required,genre"`
	CurrentMood    string `json:"current_mood" validate:"required,mood"`
}

func (r recommendationRequest) preferences() models.PreferenceSet {
	return models.PreferenceSet{
		LastMovie:      strings.TrimSpace(r.LastMovie),
		PreferredGenre: strings.TrimSpace(r.PreferredGenre),
		CurrentMood:    strings.TrimSpace(r.CurrentMood),
	}
}

// feedbackRequest leaves every field optional; the service decides whether
// the combination carries a signal.
type feedbackRequest struct {
	Rating          *int    `json:"rating" validate:"omitempty,min=0,max=5"`
	Liked           *bool   `json:"liked"`
	FeedbackText    *string `json:"feedback_text" validate:"omitempty,max=2000"`
	WouldWatchAgain *bool   `json:"would_watch_again"`
}

func (r feedbackRequest) fields() models.FeedbackFields {
	return models.FeedbackFields{
		Rating:          r.Rating,
		Liked:           r.Liked,
		FeedbackText:    r.FeedbackText,
		WouldWatchAgain: r.WouldWatchAgain,
	}
}

// catalogQuery filters the offline catalog preview.
type catalogQuery struct {
	Genre string `json:"genre" validate:"omitempty,genre"`
	Mood  string `json:"mood" validate:"omitempty,mood"`
}

// recommendationView is one batch entry plus the id feedback must cite.
type recommendationView struct {
	RecommendationID string `json:"recommendation_id,omitempty"`
	models.MovieRecommendation
}

type recommendationsResponse struct {
	PreferencesID   string               `json:"preferences_id,omitempty"`
	Source          models.BatchSource   `json:"source"`
	Recommendations []recommendationView `json:"recommendations"`
}

func newRecommendationsResponse(b models.Batch) recommendationsResponse {
	views := make([]recommendationView, len(b.Recommendations))
	for i, rec := range b.Recommendations {
		views[i].MovieRecommendation = rec
		if i < len(b.RowIDs) {
			views[i].RecommendationID = b.RowIDs[i]
		}
	}
	return recommendationsResponse{
		PreferencesID:   b.PreferencesID,
		Source:          b.Source,
		Recommendations: views,
	}
}
