// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package main

import (
	"fmt"

	"github.com/tomtom215/moodreel/internal/config"
	"github.com/tomtom215/moodreel/internal/database"
	"github.com/tomtom215/moodreel/internal/gormstore"
	"github.com/tomtom215/moodreel/internal/logging"
	"github.com/tomtom215/moodreel/internal/store"
	"github.com/tomtom215/moodreel/internal/supervisor/services"
)

// openedStore is the selected backend plus its optional checkpoint hook.
type openedStore struct {
	store        store.Store
	checkpointer services.Checkpointer
}

func openStore(cfg *config.DatabaseConfig) (openedStore, error) {
	switch cfg.Backend {
	case "", "duckdb":
		db, err := database.Open(cfg)
		if err != nil {
			return openedStore{}, fmt.Errorf("open duckdb: %w", err)
		}
		logging.Info().Str("path", cfg.Path).Msg("DuckDB store ready")
		return openedStore{store: db, checkpointer: db}, nil
	case "postgres":
		s, err := gormstore.Open(cfg)
		if err != nil {
			return openedStore{}, fmt.Errorf("open postgres: %w", err)
		}
		logging.Info().Msg("PostgreSQL store ready")
		return openedStore{store: s}, nil
	default:
		return openedStore{}, fmt.Errorf("unknown database backend %q", cfg.Backend)
	}
}
