// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/moodreel/internal/logging"
)

const readinessTimeout = 2 * time.Second

type healthStatus struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Store         string  `json:"store,omitempty"`
}

// HealthLive handles GET /health/live. It never touches dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(healthStatus{
		Status:        "ok",
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles GET /health/ready: 200 when the store answers a
// ping, 503 otherwise. Upstream APIs are not probed because assembly
// degrades without them.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()
	if err := h.svc.Ping(ctx); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Readiness check failed")
		rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Store unavailable",
			healthStatus{Status: "degraded", Store: "down", UptimeSeconds: time.Since(h.startTime).Seconds()})
		return
	}
	rw.Success(healthStatus{
		Status:        "ready",
		Store:         "up",
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	})
}
