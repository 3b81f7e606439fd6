// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

// Package source defines the contracts of the two external data sources the
// assembly pipeline consumes, and the tagged Result every call returns.
//
// Clients never return raw decoded JSON: a response is either Ok with a
// validated value, Malformed (it arrived but had the wrong shape), or
// Unavailable (network, status, timeout, open breaker, missing credentials).
package source

import (
	"context"
	"errors"

	"github.com/tomtom215/moodreel/internal/models"
)

// Outcome classifies a call.
type Outcome int

const (
	Ok Outcome = iota
	Malformed
	Unavailable
)

func (o Outcome) String() string {
	switch o {
	case Ok:
		return "ok"
	case Malformed:
		return "malformed"
	case Unavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

var (
	ErrMalformedResponse = errors.New("malformed response")
	ErrSourceUnavailable = errors.New("source unavailable")
)

// Result is the value of one external call. Err is set for Malformed and
// Unavailable and is only meant for logging.
type Result[T any] struct {
	Value   T
	Outcome Outcome
	Err     error
}

func OkResult[T any](v T) Result[T] {
	return Result[T]{Value: v, Outcome: Ok}
}

func MalformedResult[T any](err error) Result[T] {
	if err == nil {
		err = ErrMalformedResponse
	}
	return Result[T]{Outcome: Malformed, Err: err}
}

func UnavailableResult[T any](err error) Result[T] {
	if err == nil {
		err = ErrSourceUnavailable
	}
	return Result[T]{Outcome: Unavailable, Err: err}
}

// IsOk reports whether the call produced a usable value.
func (r Result[T]) IsOk() bool { return r.Outcome == Ok }

// ValueOr returns Value when Ok and fallback otherwise.
func (r Result[T]) ValueOr(fallback T) T {
	if r.Outcome == Ok {
		return r.Value
	}
	return fallback
}

// Movie is a validated metadata record. PosterURL is absolute or empty.
type Movie struct {
	ID          int
	Title       string
	Overview    string
	ReleaseDate string
	VoteAverage float64
	PosterURL   string
}

// Credits lists cast and crew in the order the source returned them.
type Credits struct {
	Cast []CastMember
	Crew []CrewMember
}

type CastMember struct {
	Name string
}

type CrewMember struct {
	Name string
	Job  string
}

// TextGenerator proposes candidate titles for a preference set.
type TextGenerator interface {
	CandidateTitles(ctx context.Context, prefs models.PreferenceSet) Result[[]string]
}

// MetadataSource resolves titles and discovers movies.
type MetadataSource interface {
	// SearchMovie returns the first search hit. An Ok result with a nil
	// value means the search succeeded and found nothing.
	SearchMovie(ctx context.Context, title string) Result[*Movie]
	Credits(ctx context.Context, movieID int) Result[Credits]
	// Discover returns up to limit top-rated movies of genre.
	Discover(ctx context.Context, genre string, limit int) Result[[]Movie]
}
