// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

//go:build !nats

package events

import "errors"

// EmbeddedServer is unavailable without the nats build tag.
type EmbeddedServer struct{}

func StartEmbedded(_ string, _ int) (*EmbeddedServer, error) {
	return nil, errors.New("embedded NATS not available: build with -tags=nats")
}

func (s *EmbeddedServer) ClientURL() string { return "" }

func (s *EmbeddedServer) Shutdown() {}
