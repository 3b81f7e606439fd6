// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/moodreel/internal/events"
	"github.com/tomtom215/moodreel/internal/logging"
	"github.com/tomtom215/moodreel/internal/metrics"
	"github.com/tomtom215/moodreel/internal/models"
	"github.com/tomtom215/moodreel/internal/source"
	"github.com/tomtom215/moodreel/internal/store"
)

// ErrPipelineExhausted means the live pipeline produced nothing usable.
var ErrPipelineExhausted = errors.New("recommendation pipeline exhausted")

// UnknownDirector is used when credits list no director.
const UnknownDirector = "Unknown"

// maxCast is the number of cast names kept per movie.
const maxCast = 5

// Service assembles recommendation batches and records feedback.
// It is safe for concurrent use.
type Service struct {
	cfg    *Config
	text   source.TextGenerator
	meta   source.MetadataSource
	store  store.Store
	events events.Publisher
	logger zerolog.Logger

	// relevance scores are random; rngMu guards rng
	rng   *rand.Rand
	rngMu sync.Mutex

	now   func() time.Time
	newID func() string
}

// Option customizes a Service.
type Option func(*Service)

// WithPublisher sets the domain event publisher. Default: events.Nop.
func WithPublisher(p events.Publisher) Option {
	return func(s *Service) { s.events = p }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides row and feedback id generation.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) { s.newID = gen }
}

// WithSeed makes relevance scores reproducible.
func WithSeed(seed int64) Option {
	return func(s *Service) {
		s.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // not security sensitive
	}
}

// NewService wires a Service. cfg may be nil for defaults.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(cfg *Config, text source.TextGenerator, meta source.MetadataSource, st store.Store, logger zerolog.Logger, opts ...Option) (*Service, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if text == nil || meta == nil || st == nil {
		return nil, errors.New("text source, metadata source and store are required")
	}

	s := &Service{
		cfg:    cfg,
		text:   text,
		meta:   meta,
		store:  st,
		events: events.Nop{},
		logger: logger.With().Str("component", "recommend").Logger(),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // not security sensitive
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Assemble produces a batch of 1 to BatchSize recommendations for prefs.
// It never fails: when the live pipeline yields nothing the bundled
// catalog is returned (Source == fallback, not persisted).
//
//nolint:gocritic // hugeParam: prefs passed by value for immutability
func (s *Service) Assemble(ctx context.Context, userID string, prefs models.PreferenceSet) models.Batch {
	start := s.now()
	if logging.CorrelationIDFromContext(ctx) == "" {
		ctx = logging.ContextWithNewCorrelationID(ctx)
	}
	logger := logging.Enrich(ctx, s.logger).With().Str("user_id", userID).Logger()

	prefsID := s.savePreferences(ctx, userID, prefs, logger)

	recs, err := s.runPipeline(ctx, prefs)
	if err == nil && len(recs) == 0 {
		err = ErrPipelineExhausted
	}
	if err != nil {
		logger.Info().Err(err).Msg("live pipeline yielded nothing, serving fallback catalog")
		batch := models.Batch{
			PreferencesID:   prefsID,
			Source:          models.SourceFallback,
			Recommendations: Fallback(prefs),
		}
		s.finish(ctx, userID, batch, start)
		return batch
	}

	batch := models.Batch{
		PreferencesID:   prefsID,
		Source:          models.SourceLive,
		Recommendations: recs,
	}
	if prefsID == "" {
		logger.Warn().Int("size", len(recs)).Msg("batch not persisted: preference set has no id")
	} else {
		batch.RowIDs = s.persistBatch(ctx, userID, prefsID, recs, logger)
	}
	s.finish(ctx, userID, batch, start)
	return batch
}

func (s *Service) finish(ctx context.Context, userID string, batch models.Batch, start time.Time) {
	metrics.RecordAssembly(string(batch.Source), len(batch.Recommendations), s.now().Sub(start))

	ids := make([]string, len(batch.Recommendations))
	for i, m := range batch.Recommendations {
		ids[i] = m.ID
	}
	s.publish(ctx, events.TopicRecommendationsGenerated, events.RecommendationsGenerated{
		PreferencesID: batch.PreferencesID,
		UserID:        userID,
		Source:        batch.Source,
		MovieIDs:      ids,
		Persisted:     len(batch.RowIDs) > 0,
		GeneratedAt:   s.now().UTC(),
	})
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func (s *Service) savePreferences(ctx context.Context, userID string, prefs models.PreferenceSet, logger zerolog.Logger) string {
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.PersistTimeout)
	defer cancel()

	id, err := s.store.SavePreferences(pctx, userID, prefs)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to persist preferences; batch will not be linked")
		return ""
	}
	s.publish(ctx, events.TopicPreferencesSubmitted, events.PreferencesSubmitted{
		PreferencesID: id,
		UserID:        userID,
		Preferences:   prefs,
		SubmittedAt:   s.now().UTC(),
	})
	return id
}

// persistBatch writes one row per recommendation and returns the row ids
// in batch order, or nil when the write failed.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func (s *Service) persistBatch(ctx context.Context, userID, prefsID string, recs []models.MovieRecommendation, logger zerolog.Logger) []string {
	now := s.now().UTC()
	rows := make([]models.RecommendationRow, len(recs))
	ids := make([]string, len(recs))
	for i, m := range recs {
		ids[i] = s.newID()
		rows[i] = models.RecommendationRow{
			RowID:          ids[i],
			UserID:         userID,
			PreferencesID:  prefsID,
			Movie:          m,
			RelevanceScore: s.relevanceScore(),
			CreatedAt:      now,
		}
	}

	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.PersistTimeout)
	defer cancel()
	if err := s.store.SaveBatch(pctx, rows); err != nil {
		logger.Error().Err(err).Str("preferences_id", prefsID).Msg("failed to persist recommendation batch")
		return nil
	}
	return ids
}

// relevanceScore is a placeholder column kept for compatibility with
// existing analytics: uniform in [0, 100).
func (s *Service) relevanceScore() float64 {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.Float64() * 100
}

func (s *Service) publish(ctx context.Context, topic string, payload any) {
	if err := s.events.Publish(ctx, topic, payload); err != nil {
		l := logging.Enrich(ctx, s.logger)
		l.Warn().Err(err).Str("topic", topic).Msg("failed to publish event")
	}
}

// runPipeline is the live path. Panics anywhere inside it, including in
// worker goroutines, become errors.
func (s *Service) runPipeline(ctx context.Context, prefs models.PreferenceSet) (recs []models.MovieRecommendation, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrPipelineExhausted, r)
		}
	}()

	type discovery struct {
		movies []source.Movie
		err    error
	}
	discovered := make(chan discovery, 1)
	go func() {
		var d discovery
		d.err = safely(func() { d.movies = s.discover(ctx, prefs) })
		discovered <- d
	}()

	resolved, resolveErr := s.resolveCandidates(ctx, prefs)
	d := <-discovered
	if resolveErr != nil {
		return nil, resolveErr
	}
	if d.err != nil {
		return nil, d.err
	}

	fromDiscovery := make([]models.MovieRecommendation, len(d.movies))
	for i := range d.movies {
		fromDiscovery[i] = toRecommendation(d.movies[i], prefs.PreferredGenre)
	}
	merged := MergeByID(resolved, fromDiscovery, s.cfg.BatchSize)

	// resolved entries lead the merge; the discovered tail still needs credits
	fromResolved := min(len(MergeByID(resolved, nil, s.cfg.BatchSize)), len(merged))
	if err := s.fillCredits(ctx, merged, fromResolved); err != nil {
		return nil, err
	}
	return merged, nil
}

// resolveCandidates asks the text source for titles and resolves the first
// ResolveLimit of them concurrently. Output follows candidate order;
// titles without a search hit are dropped.
func (s *Service) resolveCandidates(ctx context.Context, prefs models.PreferenceSet) ([]models.MovieRecommendation, error) {
	titles := s.candidateTitles(ctx, prefs)
	if len(titles) > s.cfg.ResolveLimit {
		titles = titles[:s.cfg.ResolveLimit]
	}
	if len(titles) == 0 {
		return nil, nil
	}

	results := make([]*models.MovieRecommendation, len(titles))
	var g errgroup.Group
	g.SetLimit(s.cfg.Concurrency)
	for i, title := range titles {
		g.Go(func() error {
			return safely(func() { results[i] = s.resolveTitle(ctx, title, prefs.PreferredGenre) })
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]models.MovieRecommendation, 0, len(results))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	metrics.CandidatesResolved.Observe(float64(len(out)))
	return out, nil
}

func (s *Service) candidateTitles(ctx context.Context, prefs models.PreferenceSet) []string {
	cctx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	defer cancel()

	res := s.text.CandidateTitles(cctx, prefs)
	if !res.IsOk() {
		l := logging.Enrich(ctx, s.logger)
		l.Debug().
			Str("outcome", res.Outcome.String()).Err(res.Err).
			Msg("text source returned no candidates")
		return nil
	}

	titles := make([]string, 0, min(len(res.Value), s.cfg.MaxCandidates))
	for _, t := range res.Value {
		if len(titles) == s.cfg.MaxCandidates {
			break
		}
		if t = strings.TrimSpace(t); t != "" {
			titles = append(titles, t)
		}
	}
	return titles
}

// resolveTitle returns nil when the search fails or finds nothing. Credit
// failures keep the movie with an unknown director and no cast.
func (s *Service) resolveTitle(ctx context.Context, title, genre string) *models.MovieRecommendation {
	sctx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	res := s.meta.SearchMovie(sctx, title)
	cancel()
	if !res.IsOk() || res.Value == nil {
		return nil
	}

	rec := toRecommendation(*res.Value, genre)
	rec.Director, rec.Cast = s.credits(ctx, res.Value.ID)
	return &rec
}

func (s *Service) credits(ctx context.Context, movieID int) (string, []string) {
	cctx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	defer cancel()
	return directorAndCast(s.meta.Credits(cctx, movieID).ValueOr(source.Credits{}))
}

// fillCredits fetches credits for merged[from:], concurrently, in place.
func (s *Service) fillCredits(ctx context.Context, merged []models.MovieRecommendation, from int) error {
	var g errgroup.Group
	g.SetLimit(s.cfg.Concurrency)
	for i := from; i < len(merged); i++ {
		id, err := strconv.Atoi(merged[i].ID)
		if err != nil {
			merged[i].Director = UnknownDirector
			continue
		}
		g.Go(func() error {
			return safely(func() { merged[i].Director, merged[i].Cast = s.credits(ctx, id) })
		})
	}
	return g.Wait()
}

// discover runs concurrently with candidate resolution, so it cannot know
// how many slots resolution leaves; it asks for a full batch and the merge
// truncates.
func (s *Service) discover(ctx context.Context, prefs models.PreferenceSet) []source.Movie {
	dctx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	defer cancel()

	res := s.meta.Discover(dctx, CanonicalGenre(prefs.PreferredGenre), s.cfg.BatchSize)
	if !res.IsOk() {
		l := logging.Enrich(ctx, s.logger)
		l.Debug().
			Str("outcome", res.Outcome.String()).Err(res.Err).
			Msg("discovery returned nothing")
		return nil
	}
	return res.Value
}

func directorAndCast(c source.Credits) (string, []string) {
	director := UnknownDirector
	for _, crew := range c.Crew {
		if crew.Job == "Director" && crew.Name != "" {
			director = crew.Name
			break
		}
	}
	cast := make([]string, 0, min(len(c.Cast), maxCast))
	for _, member := range c.Cast {
		if len(cast) == maxCast {
			break
		}
		cast = append(cast, member.Name)
	}
	return director, cast
}

// toRecommendation maps a metadata record. Genre is the requested genre;
// director and cast are filled separately.
func toRecommendation(m source.Movie, genre string) models.MovieRecommendation {
	return models.MovieRecommendation{
		ID:          strconv.Itoa(m.ID),
		Title:       m.Title,
		Genre:       genre,
		Year:        releaseYear(m.ReleaseDate),
		Rating:      math.Round(m.VoteAverage*10) / 10,
		Description: m.Overview,
		PosterURL:   m.PosterURL,
		Director:    UnknownDirector,
		Cast:        []string{},
	}
}

// releaseYear reads the leading four digits of a YYYY-MM-DD date; 0 when
// absent or malformed.
func releaseYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	y, err := strconv.Atoi(date[:4])
	if err != nil || y < 0 {
		return 0
	}
	return y
}

// safely runs fn, converting a panic into an error.
func safely(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrPipelineExhausted, r)
		}
	}()
	fn()
	return nil
}
