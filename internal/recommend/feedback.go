// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package recommend

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/moodreel/internal/events"
	"github.com/tomtom215/moodreel/internal/logging"
	"github.com/tomtom215/moodreel/internal/metrics"
	"github.com/tomtom215/moodreel/internal/models"
	"github.com/tomtom215/moodreel/internal/store"
)

var (
	// ErrNoSignal rejects feedback with every field absent.
	ErrNoSignal = errors.New("feedback carries no signal")
	// ErrFeedbackUnavailable means the store failed; the caller may retry.
	ErrFeedbackUnavailable = errors.New("feedback store unavailable")
)

// SubmitFeedback appends feedback for the recommendation id, which must
// belong to userID. id is normally a row id from Batch.RowIDs; a movie id
// resolves to the user's most recent row for that movie.
//
// Errors: ErrNoSignal, store.ErrNotFound, ErrFeedbackUnavailable.
func (s *Service) SubmitFeedback(ctx context.Context, id, userID string, fields models.FeedbackFields) (models.FeedbackRecord, error) {
	if !fields.HasSignal() {
		metrics.FeedbackTotal.WithLabelValues("no_signal").Inc()
		return models.FeedbackRecord{}, ErrNoSignal
	}
	if id == "" || userID == "" {
		metrics.FeedbackTotal.WithLabelValues("not_found").Inc()
		return models.FeedbackRecord{}, store.ErrNotFound
	}

	row, err := s.store.FindRecommendation(ctx, userID, id)
	if errors.Is(err, store.ErrNotFound) || (err == nil && row == nil) {
		metrics.FeedbackTotal.WithLabelValues("not_found").Inc()
		return models.FeedbackRecord{}, fmt.Errorf("recommendation %s: %w", id, store.ErrNotFound)
	}
	if err != nil {
		metrics.FeedbackTotal.WithLabelValues("error").Inc()
		return models.FeedbackRecord{}, fmt.Errorf("%w: %w", ErrFeedbackUnavailable, err)
	}

	rec := models.FeedbackRecord{
		ID:               s.newID(),
		UserID:           userID,
		RecommendationID: row.RowID,
		Fields:           fields,
		CreatedAt:        s.now().UTC(),
	}
	if err := s.store.SaveFeedback(ctx, rec); err != nil {
		metrics.FeedbackTotal.WithLabelValues("error").Inc()
		return models.FeedbackRecord{}, fmt.Errorf("%w: %w", ErrFeedbackUnavailable, err)
	}
	metrics.FeedbackTotal.WithLabelValues("recorded").Inc()

	s.publish(ctx, events.TopicFeedbackRecorded, events.FeedbackRecorded{
		FeedbackID:       rec.ID,
		UserID:           userID,
		RecommendationID: row.RowID,
		MovieID:          row.Movie.ID,
		RecordedAt:       rec.CreatedAt,
	})
	return rec, nil
}

// RecordFeedback is SubmitFeedback reduced to success or failure.
func (s *Service) RecordFeedback(ctx context.Context, id, userID string, fields models.FeedbackFields) bool {
	_, err := s.SubmitFeedback(ctx, id, userID, fields)
	if err != nil && !errors.Is(err, ErrNoSignal) {
		l := logging.Enrich(ctx, s.logger)
		l.Debug().Err(err).Str("recommendation_id", id).Msg("feedback rejected")
	}
	return err == nil
}

// ListFeedback returns userID's feedback history, newest first.
func (s *Service) ListFeedback(ctx context.Context, userID string) ([]models.FeedbackEntry, error) {
	entries, err := s.store.ListFeedback(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return entries, nil
}

// Ping checks the store.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
