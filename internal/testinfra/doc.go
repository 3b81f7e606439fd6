// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

// Package testinfra starts throwaway Docker containers for integration
// tests (build tag "integration").
//
//	func TestGormPostgres(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//	    pg, err := testinfra.NewPostgresContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer testinfra.CleanupContainer(t, ctx, pg)
//
//	    st, err := gormstore.Open(&config.DatabaseConfig{PostgresDSN: pg.DSN})
//	    // ...
//	}
//
// Run with:
//
//	go test -tags=integration ./internal/gormstore/... ./internal/cache/...
package testinfra
