// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Checkpointer flushes a store's write-ahead log.
type Checkpointer interface {
	Checkpoint(ctx context.Context) error
}

// CheckpointService checkpoints the embedded store on an interval so a
// crash replays at most one interval of WAL. Failures are logged and
// retried on the next tick; they never stop the service.
type CheckpointService struct {
	store    Checkpointer
	interval time.Duration
	logger   zerolog.Logger
}

// NewCheckpointService builds the service. interval <= 0 means 5 minutes.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCheckpointService(store Checkpointer, interval time.Duration, logger zerolog.Logger) *CheckpointService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &CheckpointService{
		store:    store,
		interval: interval,
		logger:   logger.With().Str("service", "checkpoint").Logger(),
	}
}

// Serve implements suture.Service.
func (s *CheckpointService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			start := time.Now()
			if err := s.store.Checkpoint(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("Checkpoint failed")
				continue
			}
			s.logger.Debug().Dur("duration", time.Since(start)).Msg("Checkpoint complete")
		}
	}
}

func (s *CheckpointService) String() string { return "checkpoint" }
