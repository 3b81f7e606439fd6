// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

// Package events publishes MoodReel domain events through Watermill.
//
// The default backend is an in-process Go channel; builds tagged "nats"
// can publish to a NATS server instead. Publishing is best-effort: callers
// log failures and carry on.
package events

import (
	"context"
	"time"

	"github.com/tomtom215/moodreel/internal/models"
)

// Topics. The configured prefix is prepended when publishing.
const (
	TopicPreferencesSubmitted     = "preferences.submitted"
	TopicRecommendationsGenerated = "recommendations.generated"
	TopicFeedbackRecorded         = "feedback.recorded"
)

// Publisher sends one payload to a topic.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}

// PreferencesSubmitted follows a successful preference write.
type PreferencesSubmitted struct {
	PreferencesID string               `json:"preferences_id"`
	UserID        string               `json:"user_id"`
	Preferences   models.PreferenceSet `json:"preferences"`
	SubmittedAt   time.Time            `json:"submitted_at"`
}

// RecommendationsGenerated follows every assembly, live or fallback.
type RecommendationsGenerated struct {
	PreferencesID string             `json:"preferences_id,omitempty"`
	UserID        string             `json:"user_id"`
	Source        models.BatchSource `json:"source"`
	MovieIDs      []string           `json:"movie_ids"`
	Persisted     bool               `json:"persisted"`
	GeneratedAt   time.Time          `json:"generated_at"`
}

// FeedbackRecorded follows a stored feedback row.
type FeedbackRecorded struct {
	FeedbackID       string    `json:"feedback_id"`
	UserID           string    `json:"user_id"`
	RecommendationID string    `json:"recommendation_id"`
	MovieID          string    `json:"movie_id"`
	RecordedAt       time.Time `json:"recorded_at"`
}

// Nop discards everything.
type Nop struct{}

func (Nop) Publish(context.Context, string, any) error { return nil }
func (Nop) Close() error                               { return nil }
