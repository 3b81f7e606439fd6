// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

// Package gormstore implements store.Store on gorm so several MoodReel
// instances can share one Postgres database. Tests run the same code
// against sqlite.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/tomtom215/moodreel/internal/config"
	"github.com/tomtom215/moodreel/internal/logging"
	"github.com/tomtom215/moodreel/internal/metrics"
	"github.com/tomtom215/moodreel/internal/models"
	"github.com/tomtom215/moodreel/internal/store"
)

var _ store.Store = (*Store)(nil)

// Store is the gorm-backed store.
type Store struct {
	db      *gorm.DB
	backend string
	now     func() time.Time
}

// Open connects to cfg.PostgresDSN and migrates the schema.
func Open(cfg *config.DatabaseConfig) (*Store, error) {
	if cfg.PostgresDSN == "" {
		return nil, errors.New("postgres_dsn is required for the postgres backend")
	}
	s, err := OpenDialector(postgres.Open(cfg.PostgresDSN), "postgres", cfg.LogQueries)
	if err != nil {
		return nil, err
	}
	if cfg.MaxOpenConn > 0 {
		sqlDB, err := s.db.DB()
		if err != nil {
			return nil, fmt.Errorf("get sql db: %w", err)
		}
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConn)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	}
	return s, nil
}

// OpenDialector opens any gorm dialector; backend labels metrics.
func OpenDialector(d gorm.Dialector, backend string, logQueries bool) (*Store, error) {
	level := gormLogger.Warn
	if logQueries {
		level = gormLogger.Info
	}
	db, err := gorm.Open(d, &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger: gormLogger.New(zerologWriter{logging.WithComponent("gorm")}, gormLogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", backend, err)
	}
	if err := db.AutoMigrate(&preferenceRow{}, &recommendationRow{}, &feedbackRow{}); err != nil {
		return nil, fmt.Errorf("migrate %s schema: %w", backend, err)
	}
	return &Store{db: db, backend: backend, now: time.Now}, nil
}

// zerologWriter routes gorm's Printf-style logger into zerolog.
type zerologWriter struct {
	logger zerolog.Logger
}

func (w zerologWriter) Printf(format string, args ...any) {
	w.logger.Info().Msgf(format, args...)
}

func (s *Store) observe(op string, start time.Time, err error) {
	metrics.RecordStoreOperation(s.backend, op, time.Since(start), err)
}

// SavePreferences inserts prefs and returns the generated id.
func (s *Store) SavePreferences(ctx context.Context, userID string, prefs models.PreferenceSet) (id string, err error) {
	start := time.Now()
	defer func() { s.observe("save_preferences", start, err) }()

	row := preferenceRow{
		ID:             uuid.NewString(),
		UserID:         userID,
		LastMovie:      prefs.LastMovie,
		PreferredGenre: prefs.PreferredGenre,
		CurrentMood:    prefs.CurrentMood,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", fmt.Errorf("insert preferences: %w", err)
	}
	return row.ID, nil
}

// SaveBatch inserts rows in one transaction.
func (s *Store) SaveBatch(ctx context.Context, rows []models.RecommendationRow) (err error) {
	if len(rows) == 0 {
		return nil
	}
	start := time.Now()
	defer func() { s.observe("save_batch", start, err) }()

	records := make([]recommendationRow, len(rows))
	for i := range rows {
		records[i] = fromRecommendation(&rows[i], s.now)
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&records).Error
	})
	if err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// FindRecommendation matches id as a row id, then as the movie id of the
// user's most recent row.
func (s *Store) FindRecommendation(ctx context.Context, userID, id string) (_ *models.RecommendationRow, err error) {
	start := time.Now()
	defer func() {
		if errors.Is(err, store.ErrNotFound) {
			s.observe("find_recommendation", start, nil)
			return
		}
		s.observe("find_recommendation", start, err)
	}()

	db := s.db.WithContext(ctx)
	var rec recommendationRow
	err = db.Where("id = ? AND user_id = ?", id, userID).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = db.Where("movie_id = ? AND user_id = ?", id, userID).
			Order("created_at DESC").Take(&rec).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query recommendation: %w", err)
	}
	out := rec.toModel()
	return &out, nil
}

// SaveFeedback inserts one record; nil fields become NULL.
func (s *Store) SaveFeedback(ctx context.Context, rec models.FeedbackRecord) (err error) {
	start := time.Now()
	defer func() { s.observe("save_feedback", start, err) }()

	created := rec.CreatedAt
	if created.IsZero() {
		created = s.now()
	}
	row := feedbackRow{
		ID:               rec.ID,
		UserID:           rec.UserID,
		RecommendationID: rec.RecommendationID,
		Rating:           rec.Fields.Rating,
		Liked:            rec.Fields.Liked,
		FeedbackText:     rec.Fields.FeedbackText,
		WouldWatchAgain:  rec.Fields.WouldWatchAgain,
		CreatedAt:        created.UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

// ListFeedback returns userID's feedback joined with the rated movie,
// newest first.
func (s *Store) ListFeedback(ctx context.Context, userID string) (_ []models.FeedbackEntry, err error) {
	start := time.Now()
	defer func() { s.observe("list_feedback", start, err) }()

	var joined []feedbackJoin
	err = s.db.WithContext(ctx).
		Table("feedback AS f").
		Select(`f.id, f.user_id, f.recommendation_id, f.rating, f.liked, f.feedback_text,
			f.would_watch_again, f.created_at, r.title, r.genre, r.rating AS movie_rating`).
		Joins("JOIN recommendations AS r ON r.id = f.recommendation_id").
		Where("f.user_id = ?", userID).
		Order("f.created_at DESC, f.seq DESC").
		Scan(&joined).Error
	if err != nil {
		return nil, fmt.Errorf("query feedback: %w", err)
	}

	entries := make([]models.FeedbackEntry, len(joined))
	for i, j := range joined {
		entries[i] = j.toModel()
	}
	return entries, nil
}

// Ping checks the underlying connection.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
