// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package gormstore

import (
	"time"

	"github.com/tomtom215/moodreel/internal/models"
)

type preferenceRow struct {
	ID             string `gorm:"primaryKey;size:36"`
	UserID         string `gorm:"index;not null"`
	LastMovie      string `gorm:"not null"`
	PreferredGenre string `gorm:"not null"`
	CurrentMood    string `gorm:"not null"`
	CreatedAt      time.Time
}

func (preferenceRow) TableName() string { return "preferences" }

type recommendationRow struct {
	ID             string `gorm:"primaryKey;size:36"`
	UserID         string `gorm:"index:idx_recommendations_user_movie,priority:1;not null"`
	PreferencesID  string `gorm:"not null"`
	MovieID        string `gorm:"index:idx_recommendations_user_movie,priority:2;not null"`
	Title          string `gorm:"not null"`
	Genre          string `gorm:"not null"`
	Year           int
	Rating         float64
	Description    string
	PosterURL      string
	Director       string
	Cast           []string `gorm:"serializer:json"`
	RelevanceScore float64
	CreatedAt      time.Time
}

func (recommendationRow) TableName() string { return "recommendations" }

func fromRecommendation(r *models.RecommendationRow, now func() time.Time) recommendationRow {
	created := r.CreatedAt
	if created.IsZero() {
		created = now()
	}
	cast := r.Movie.Cast
	if cast == nil {
		cast = []string{}
	}
	return recommendationRow{
		ID:             r.RowID,
		UserID:         r.UserID,
		PreferencesID:  r.PreferencesID,
		MovieID:        r.Movie.ID,
		Title:          r.Movie.Title,
		Genre:          r.Movie.Genre,
		Year:           r.Movie.Year,
		Rating:         r.Movie.Rating,
		Description:    r.Movie.Description,
		PosterURL:      r.Movie.PosterURL,
		Director:       r.Movie.Director,
		Cast:           cast,
		RelevanceScore: r.RelevanceScore,
		CreatedAt:      created.UTC(),
	}
}

func (r *recommendationRow) toModel() models.RecommendationRow {
	return models.RecommendationRow{
		RowID:         r.ID,
		UserID:        r.UserID,
		PreferencesID: r.PreferencesID,
		Movie: models.MovieRecommendation{
			ID:          r.MovieID,
			Title:       r.Title,
			Genre:       r.Genre,
			Year:        r.Year,
			Rating:      r.Rating,
			Description: r.Description,
			PosterURL:   r.PosterURL,
			Director:    r.Director,
			Cast:        r.Cast,
		},
		RelevanceScore: r.RelevanceScore,
		CreatedAt:      r.CreatedAt,
	}
}

// feedbackRow keys on an auto-increment seq so same-instant records keep
// insertion order; ID is the public identifier.
type feedbackRow struct {
	Seq              uint64 `gorm:"primaryKey;autoIncrement"`
	ID               string `gorm:"uniqueIndex;size:36;not null"`
	UserID           string `gorm:"index;not null"`
	RecommendationID string `gorm:"not null"`
	Rating           *int
	Liked            *bool
	FeedbackText     *string
	WouldWatchAgain  *bool
	CreatedAt        time.Time
}

func (feedbackRow) TableName() string { return "feedback" }

type feedbackJoin struct {
	ID               string
	UserID           string
	RecommendationID string
	Rating           *int
	Liked            *bool
	FeedbackText     *string
	WouldWatchAgain  *bool
	CreatedAt        time.Time
	Title            string
	Genre            string
	MovieRating      float64
}

func (j *feedbackJoin) toModel() models.FeedbackEntry {
	return models.FeedbackEntry{
		FeedbackRecord: models.FeedbackRecord{
			ID:               j.ID,
			UserID:           j.UserID,
			RecommendationID: j.RecommendationID,
			Fields: models.FeedbackFields{
				Rating:          j.Rating,
				Liked:           j.Liked,
				FeedbackText:    j.FeedbackText,
				WouldWatchAgain: j.WouldWatchAgain,
			},
			CreatedAt: j.CreatedAt,
		},
		Title:  j.Title,
		Genre:  j.Genre,
		Rating: j.MovieRating,
	}
}
