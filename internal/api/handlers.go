// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/moodreel/internal/auth"
	"github.com/tomtom215/moodreel/internal/logging"
	"github.com/tomtom215/moodreel/internal/models"
	"github.com/tomtom215/moodreel/internal/recommend"
	"github.com/tomtom215/moodreel/internal/store"
)

// Recommender is the slice of recommend.Service the handlers use.
type Recommender interface {
	Assemble(ctx context.Context, userID string, prefs models.PreferenceSet) models.Batch
	SubmitFeedback(ctx context.Context, id, userID string, fields models.FeedbackFields) (models.FeedbackRecord, error)
	ListFeedback(ctx context.Context, userID string) ([]models.FeedbackEntry, error)
	Ping(ctx context.Context) error
}

var _ Recommender = (*recommend.Service)(nil)

// Handler serves the recommendation endpoints.
type Handler struct {
	svc       Recommender
	guard     *recommend.Guard
	startTime time.Time
}

// NewHandler wires svc. A nil guard gets a fresh one.
func NewHandler(svc Recommender, guard *recommend.Guard) *Handler {
	if guard == nil {
		guard = recommend.NewGuard()
	}
	return &Handler{svc: svc, guard: guard, startTime: time.Now()}
}

// Recommend handles POST /api/v1/recommendations.
//
// Assembly never fails: upstream trouble degrades to the offline catalog.
// A response superseded by a newer request from the same user is answered
// with 409 STALE_REQUEST; its batch is still persisted.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req recommendationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadBody(rw, r, err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		rw.ErrorWithDetails(http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
		return
	}

	userID := auth.UserIDFromContext(r.Context())
	ticket := h.guard.Begin(userID)
	defer h.guard.End(ticket)

	batch := h.svc.Assemble(r.Context(), userID, req.preferences())

	if !h.guard.Current(ticket) {
		logging.Ctx(r.Context()).Info().Str("preferences_id", batch.PreferencesID).Msg("Superseded recommendation response dropped")
		rw.Error(http.StatusConflict, ErrCodeStaleRequest, "A newer recommendation request is in progress")
		return
	}
	rw.Success(newRecommendationsResponse(batch))
}

// SubmitFeedback handles POST /api/v1/recommendations/{id}/feedback.
func (h *Handler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	id := chi.URLParam(r, "id")

	var req feedbackRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadBody(rw, r, err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		rw.ErrorWithDetails(http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
		return
	}

	rec, err := h.svc.SubmitFeedback(r.Context(), id, auth.UserIDFromContext(r.Context()), req.fields())
	switch {
	case err == nil:
		rw.Created(rec)
	case errors.Is(err, recommend.ErrNoSignal):
		rw.Error(http.StatusBadRequest, ErrCodeFeedbackRejected, "Feedback must include at least one field")
	case errors.Is(err, store.ErrNotFound):
		rw.Error(http.StatusNotFound, ErrCodeNotFound, "Recommendation not found")
	case errors.Is(err, recommend.ErrFeedbackUnavailable):
		logging.Ctx(r.Context()).Error().Err(err).Str("recommendation_id", sanitizeLogValue(id)).Msg("Feedback not recorded")
		rw.Error(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Feedback could not be recorded, please retry")
	default:
		logging.Ctx(r.Context()).Error().Err(err).Msg("Feedback failed")
		rw.Error(http.StatusInternalServerError, ErrCodeInternalError, "Internal error")
	}
}

// ListFeedback handles GET /api/v1/feedback.
func (h *Handler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	entries, err := h.svc.ListFeedback(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Feedback history unavailable")
		rw.Error(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Feedback history is unavailable")
		return
	}
	rw.List(entries, len(entries))
}

// Catalog handles GET /api/v1/catalog. It ranks the offline catalog the
// same way a degraded assembly would, without touching upstream sources.
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	q := catalogQuery{
		Genre: r.URL.Query().Get("genre"),
		Mood:  r.URL.Query().Get("mood"),
	}
	if apiErr := validateRequest(&q); apiErr != nil {
		rw.ErrorWithDetails(http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
		return
	}

	recs := recommend.Fallback(models.PreferenceSet{PreferredGenre: q.Genre, CurrentMood: q.Mood})
	rw.List(recs, len(recs))
}
