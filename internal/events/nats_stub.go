// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

//go:build !nats

package events

import "errors"

// NewNATSBus is unavailable without the nats build tag.
func NewNATSBus(_, _ string) (*Bus, error) {
	return nil, errors.New("NATS events not available: build with -tags=nats")
}
