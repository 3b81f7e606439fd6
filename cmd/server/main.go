// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

// Package main is the MoodReel server.
//
// Startup order:
//
//  1. Configuration (koanf: defaults, config.yaml, environment)
//  2. Logging
//  3. Store: embedded DuckDB by default, PostgreSQL via gorm when
//     DATABASE_BACKEND=postgres
//  4. Metadata cache, credentials provider, upstream clients
//  5. Domain event bus
//  6. Recommendation service and HTTP router
//  7. Supervisor tree (HTTP server, checkpoints, event log)
//
// SIGINT and SIGTERM cancel the tree; the HTTP server drains in-flight
// requests for SHUTDOWN_TIMEOUT before the store is closed.
//
// # Build Tags
//
//	go build -tags nats ./cmd/server   # NATS event transport (embedded server when NATS_URL is empty)
//
// # Example
//
//	export JWT_SECRET=$(openssl rand -base64 32)
//	export OPENAI_API_KEY=sk-...
//	export TMDB_API_KEY=...
//	./moodreel
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/moodreel/internal/api"
	"github.com/tomtom215/moodreel/internal/auth"
	"github.com/tomtom215/moodreel/internal/cache"
	"github.com/tomtom215/moodreel/internal/clients/openai"
	"github.com/tomtom215/moodreel/internal/clients/tmdb"
	"github.com/tomtom215/moodreel/internal/config"
	"github.com/tomtom215/moodreel/internal/events"
	"github.com/tomtom215/moodreel/internal/logging"
	"github.com/tomtom215/moodreel/internal/recommend"
	"github.com/tomtom215/moodreel/internal/resilience"
	"github.com/tomtom215/moodreel/internal/secrets"
	"github.com/tomtom215/moodreel/internal/supervisor"
	"github.com/tomtom215/moodreel/internal/supervisor/services"
)

// version is set with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("database", cfg.Database.Backend).
		Str("cache", cfg.Cache.Backend).
		Str("events", cfg.Events.Backend).
		Msg("Starting MoodReel")

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("MoodReel stopped with error")
	}
	logging.Info().Msg("MoodReel stopped")
}

//nolint:gocyclo // sequential wiring
func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStore(&cfg.Database)
	if err != nil {
		return err
	}
	defer closeWithLog(st.store, "store")

	metaCache, err := cache.New(&cfg.Cache)
	if err != nil {
		return fmt.Errorf("metadata cache: %w", err)
	}
	defer closeWithLog(metaCache, "metadata cache")

	provider, err := secrets.New(cfg)
	if err != nil {
		return fmt.Errorf("credentials provider: %w", err)
	}

	text := openai.New(&cfg.OpenAI, provider, logging.WithComponent("openai"))
	meta := tmdb.New(&cfg.TMDB, provider, metaCache, logging.WithComponent("tmdb"))

	publisher, closeEvents, err := events.New(&cfg.Events)
	if err != nil {
		return fmt.Errorf("event bus: %w", err)
	}
	defer func() {
		if err := closeEvents(); err != nil {
			logging.Warn().Err(err).Msg("Error closing event bus")
		}
	}()
	bus, isBus := publisher.(*events.Bus)
	if isBus {
		bus.SetCircuitBreaker(resilience.NewBreaker("events", resilience.Settings{}))
	}

	svc, err := recommend.NewService(
		recommend.ConfigFrom(cfg.Recommend),
		text, meta, st.store,
		logging.WithComponent("recommend"),
		recommend.WithPublisher(publisher),
	)
	if err != nil {
		return fmt.Errorf("recommendation service: %w", err)
	}

	authn, err := newAuthMiddleware(&cfg.Security)
	if err != nil {
		return err
	}

	router := api.NewRouter(
		api.NewHandler(svc, recommend.NewGuard()),
		authn,
		api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(&cfg.Security)),
	)
	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       2 * time.Minute,
	}

	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfigFrom(cfg.Supervisor))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	if st.checkpointer != nil {
		tree.AddMaintenanceService(services.NewCheckpointService(st.checkpointer, cfg.Database.CheckpointInterval, logging.WithComponent("database")))
	}
	// Only the in-process bus has a subscriber side; NATS consumers run
	// out of process.
	if isBus && (cfg.Events.Backend == "" || cfg.Events.Backend == "channel") {
		tree.AddEventService(services.NewEventLogService(bus, logging.WithComponent("events")))
	}

	logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
	err = tree.Serve(ctx)

	if report, rerr := tree.UnstoppedServiceReport(); rerr == nil && len(report) > 0 {
		for _, u := range report {
			logging.Warn().Str("service", u.Name).Msg("Service did not stop within timeout")
		}
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor: %w", err)
	}
	return nil
}

func newAuthMiddleware(sec *config.SecurityConfig) (*auth.Middleware, error) {
	if sec.AuthDisabled {
		logging.Warn().Msg("============================================================")
		logging.Warn().Msg("  SECURITY WARNING: authentication is DISABLED")
		logging.Warn().Str("user_id", auth.DevUserID).Msg("  Every request runs as a single development user.")
		logging.Warn().Msg("  Use only for local development.")
		logging.Warn().Msg("============================================================")
		return auth.NewMiddleware(nil, true, api.WriteError), nil
	}
	jwtManager, err := auth.NewJWTManager(sec)
	if err != nil {
		return nil, fmt.Errorf("jwt: %w", err)
	}
	return auth.NewMiddleware(jwtManager, false, api.WriteError), nil
}

func closeWithLog(c io.Closer, what string) {
	if err := c.Close(); err != nil {
		logging.Error().Err(err).Str("component", what).Msg("Close failed")
	}
}
