// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

// Package validation validates API request bodies with go-playground/validator.
//
// A single validator instance is shared process-wide because it caches
// struct metadata. Two custom tags cover the intake vocabulary:
//
//	genre  value is one of Genres (case-insensitive)
//	mood   value is one of Moods (case-insensitive)
//
// Failures convert to the API's VALIDATION_ERROR shape through
// RequestValidationError.ToAPIError:
//
//	type recommendRequest struct {
//	    LastMovie      string `json:"last_movie" validate:"required,max=200"`
//	    PreferredGenre string `json:"preferred_genre" validate:"required,genre"`
//	    CurrentMood    string `json:"current_mood" validate:"required,mood"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
package validation
