// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

/*
Package api exposes the recommendation service over HTTP.

Routes (all /api/v1 routes require a bearer token):

	POST /api/v1/recommendations                 assemble a batch for the caller
	POST /api/v1/recommendations/{id}/feedback   record feedback on one entry
	GET  /api/v1/feedback                        the caller's feedback history
	GET  /api/v1/catalog?genre=&mood=            offline catalog preview
	GET  /health/live, /health/ready             probes
	GET  /metrics                                Prometheus

Every JSON body uses the APIResponse envelope. Errors carry a stable code
(see the ErrCode constants) and the request id for tracing.
*/
package api
