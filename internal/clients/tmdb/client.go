// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

/*
Package tmdb resolves titles and discovers movies through The Movie
Database v3 API.

Client Features:
  - title search (first hit only), credits by id, genre discovery
  - validated responses mapped to source.Movie with absolute poster URLs
  - search and credits responses cached through internal/cache
  - outbound token-bucket limiter (TMDB allows roughly 40 requests/s)
  - circuit breaker shared by all three operations

Credentials come from a secrets.Provider on every call: an API key is sent
as the api_key query parameter, a read access token as a bearer header.
*/
package tmdb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/moodreel/internal/cache"
	"github.com/tomtom215/moodreel/internal/clients/httpx"
	"github.com/tomtom215/moodreel/internal/config"
	"github.com/tomtom215/moodreel/internal/metrics"
	"github.com/tomtom215/moodreel/internal/resilience"
	"github.com/tomtom215/moodreel/internal/secrets"
	"github.com/tomtom215/moodreel/internal/source"
)

// ErrUnknownGenre is returned (as Malformed) when discovery gets a genre
// outside the genre table.
var ErrUnknownGenre = errors.New("unknown genre")

// Client implements source.MetadataSource.
type Client struct {
	baseURL      string
	imageBaseURL string
	language     string
	minVotes     int

	http    *http.Client
	secrets secrets.Provider
	cache   cache.Store
	limiter *rate.Limiter
	breaker *resilience.Breaker
	logger  zerolog.Logger
}

// New builds a client. store may be nil to disable caching.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(cfg *config.TMDBConfig, p secrets.Provider, store cache.Store, logger zerolog.Logger) *Client {
	if store == nil {
		store = cache.Nop{}
	}
	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 1
	}
	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		imageBaseURL: strings.TrimRight(cfg.ImageBaseURL, "/"),
		language:     cfg.Language,
		minVotes:     cfg.MinVoteCount,
		http:         httpx.NewClient(cfg.Timeout),
		secrets:      p,
		cache:        store,
		limiter:      rate.NewLimiter(limit, burst),
		breaker:      resilience.NewBreaker("tmdb", resilience.Settings{}),
		logger:       logger.With().Str("component", "tmdb").Logger(),
	}
}

// wire types

type movieJSON struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Overview    string   `json:"overview"`
	ReleaseDate string   `json:"release_date"`
	VoteAverage *float64 `json:"vote_average"`
	PosterPath  *string  `json:"poster_path"`
}

type pageJSON struct {
	Results []movieJSON `json:"results"`
}

type creditsJSON struct {
	Cast []struct {
		Name string `json:"name"`
	} `json:"cast"`
	Crew []struct {
		Name string `json:"name"`
		Job  string `json:"job"`
	} `json:"crew"`
}

// searchHit is the cached form of a search; Found=false caches a miss.
type searchHit struct {
	Found bool         `json:"found"`
	Movie source.Movie `json:"movie"`
}

// SearchMovie returns the first hit for title, or Ok(nil) when there is
// none.
func (c *Client) SearchMovie(ctx context.Context, title string) source.Result[*source.Movie] {
	title = strings.TrimSpace(title)
	if title == "" {
		return source.OkResult[*source.Movie](nil)
	}

	key := "tmdb:search:" + c.language + ":" + strings.ToLower(title)
	var hit searchHit
	if cache.GetJSON(ctx, c.cache, "search", key, &hit) {
		if !hit.Found {
			return source.OkResult[*source.Movie](nil)
		}
		return source.OkResult(&hit.Movie)
	}

	q := url.Values{}
	q.Set("query", title)
	q.Set("language", c.language)

	var page pageJSON
	if res := c.get(ctx, "search", "/3/search/movie", q, &page); !res.IsOk() {
		return source.Result[*source.Movie]{Outcome: res.Outcome, Err: res.Err}
	}

	if len(page.Results) > 0 {
		m, err := c.toMovie(page.Results[0])
		if err != nil {
			return source.MalformedResult[*source.Movie](err)
		}
		hit = searchHit{Found: true, Movie: m}
	}
	c.store(ctx, key, hit)
	if !hit.Found {
		return source.OkResult[*source.Movie](nil)
	}
	return source.OkResult(&hit.Movie)
}

// Credits returns cast and crew for movieID.
func (c *Client) Credits(ctx context.Context, movieID int) source.Result[source.Credits] {
	if movieID <= 0 {
		return source.MalformedResult[source.Credits](fmt.Errorf("invalid movie id %d", movieID))
	}

	key := "tmdb:credits:" + strconv.Itoa(movieID)
	var credits source.Credits
	if cache.GetJSON(ctx, c.cache, "credits", key, &credits) {
		return source.OkResult(credits)
	}

	var raw creditsJSON
	if res := c.get(ctx, "credits", "/3/movie/"+strconv.Itoa(movieID)+"/credits", url.Values{}, &raw); !res.IsOk() {
		return source.Result[source.Credits]{Outcome: res.Outcome, Err: res.Err}
	}

	credits.Cast = make([]source.CastMember, 0, len(raw.Cast))
	for _, m := range raw.Cast {
		if m.Name != "" {
			credits.Cast = append(credits.Cast, source.CastMember{Name: m.Name})
		}
	}
	credits.Crew = make([]source.CrewMember, 0, len(raw.Crew))
	for _, m := range raw.Crew {
		credits.Crew = append(credits.Crew, source.CrewMember{Name: m.Name, Job: m.Job})
	}
	c.store(ctx, key, credits)
	return source.OkResult(credits)
}

// Discover returns up to limit movies of genre sorted by vote average,
// restricted to titles with at least the configured number of votes.
// Entries without an id or title are skipped.
func (c *Client) Discover(ctx context.Context, genre string, limit int) source.Result[[]source.Movie] {
	genreID, ok := GenreID(genre)
	if !ok {
		return source.MalformedResult[[]source.Movie](fmt.Errorf("%w: %q", ErrUnknownGenre, genre))
	}
	if limit <= 0 {
		return source.OkResult([]source.Movie{})
	}

	q := url.Values{}
	q.Set("with_genres", strconv.Itoa(genreID))
	q.Set("sort_by", "vote_average.desc")
	q.Set("vote_count.gte", strconv.Itoa(c.minVotes))
	q.Set("language", c.language)
	q.Set("page", "1")

	var page pageJSON
	if res := c.get(ctx, "discover", "/3/discover/movie", q, &page); !res.IsOk() {
		return source.Result[[]source.Movie]{Outcome: res.Outcome, Err: res.Err}
	}

	movies := make([]source.Movie, 0, min(limit, len(page.Results)))
	for _, raw := range page.Results {
		if len(movies) == limit {
			break
		}
		m, err := c.toMovie(raw)
		if err != nil {
			c.logger.Debug().Err(err).Msg("skipping invalid discover entry")
			continue
		}
		movies = append(movies, m)
	}
	return source.OkResult(movies)
}

// get performs one rate-limited, breaker-guarded GET and classifies the
// outcome.
func (c *Client) get(ctx context.Context, op, path string, q url.Values, out any) source.Result[struct{}] {
	start := time.Now()
	res := c.doGet(ctx, path, q, out)
	metrics.RecordExternalCall("tmdb", op, res.Outcome.String(), time.Since(start))
	if !res.IsOk() {
		c.logger.Warn().Err(res.Err).Str("operation", op).Str("outcome", res.Outcome.String()).Msg("tmdb call failed")
	}
	return res
}

func (c *Client) doGet(ctx context.Context, path string, q url.Values, out any) source.Result[struct{}] {
	creds, err := c.secrets.Credentials(ctx)
	if err != nil {
		return source.UnavailableResult[struct{}](fmt.Errorf("credentials: %w", err))
	}
	headers := map[string]string{}
	switch {
	case creds.TMDBKey != "":
		q.Set("api_key", creds.TMDBKey)
	case creds.TMDBReadToken != "":
		headers["Authorization"] = "Bearer " + creds.TMDBReadToken
	default:
		return source.UnavailableResult[struct{}](errors.New("no tmdb credentials configured"))
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return source.UnavailableResult[struct{}](fmt.Errorf("rate limiter: %w", err))
	}

	err = resilience.Do(c.breaker, func() error {
		return httpx.DoJSON(ctx, c.http, httpx.Request{
			Method:  http.MethodGet,
			URL:     c.baseURL + path + "?" + q.Encode(),
			Headers: headers,
		}, out)
	})
	if errors.Is(err, httpx.ErrDecode) {
		return source.MalformedResult[struct{}](err)
	}
	if err != nil {
		return source.UnavailableResult[struct{}](err)
	}
	return source.OkResult(struct{}{})
}

// toMovie validates a wire record.
func (c *Client) toMovie(m movieJSON) (source.Movie, error) {
	if m.ID <= 0 || strings.TrimSpace(m.Title) == "" {
		return source.Movie{}, fmt.Errorf("%w: movie without id or title", source.ErrMalformedResponse)
	}
	out := source.Movie{
		ID:          m.ID,
		Title:       m.Title,
		Overview:    m.Overview,
		ReleaseDate: m.ReleaseDate,
	}
	if m.VoteAverage != nil {
		out.VoteAverage = *m.VoteAverage
	}
	if m.PosterPath != nil && *m.PosterPath != "" {
		out.PosterURL = c.imageBaseURL + *m.PosterPath
	}
	return out, nil
}

func (c *Client) store(ctx context.Context, key string, v any) {
	if err := cache.SetJSON(ctx, c.cache, key, v, 0); err != nil {
		c.logger.Debug().Err(err).Str("key", key).Msg("cache write failed")
	}
}
