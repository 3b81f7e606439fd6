// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/tomtom215/moodreel/internal/models"
	"github.com/tomtom215/moodreel/internal/source"
	"github.com/tomtom215/moodreel/internal/store"
)

var errDown = errors.New("connection refused")

type fakeText struct {
	result source.Result[[]string]
	calls  atomic.Int32
}

func (f *fakeText) CandidateTitles(context.Context, models.PreferenceSet) source.Result[[]string] {
	f.calls.Add(1)
	return f.result
}

type fakeMeta struct {
	search   func(title string) source.Result[*source.Movie]
	credits  func(id int) source.Result[source.Credits]
	discover func(genre string, limit int) source.Result[[]source.Movie]

	searches  atomic.Int32
	discovers atomic.Int32
}

func (f *fakeMeta) SearchMovie(_ context.Context, title string) source.Result[*source.Movie] {
	f.searches.Add(1)
	if f.search == nil {
		return source.UnavailableResult[*source.Movie](errDown)
	}
	return f.search(title)
}

func (f *fakeMeta) Credits(_ context.Context, id int) source.Result[source.Credits] {
	if f.credits == nil {
		return source.UnavailableResult[source.Credits](errDown)
	}
	return f.credits(id)
}

func (f *fakeMeta) Discover(_ context.Context, genre string, limit int) source.Result[[]source.Movie] {
	f.discovers.Add(1)
	if f.discover == nil {
		return source.UnavailableResult[[]source.Movie](errDown)
	}
	return f.discover(genre, limit)
}

// downMeta fails every call.
func downMeta() *fakeMeta { return &fakeMeta{} }

// discoverN returns n movies with ids base..base+n-1.
func discoverN(base, n int) func(string, int) source.Result[[]source.Movie] {
	return func(_ string, limit int) source.Result[[]source.Movie] {
		movies := make([]source.Movie, 0, n)
		for i := 0; i < n && i < limit; i++ {
			movies = append(movies, source.Movie{
				ID:          base + i,
				Title:       fmt.Sprintf("Discovered %d", base+i),
				ReleaseDate: "2001-05-04",
				VoteAverage: 8.26,
			})
		}
		return source.OkResult(movies)
	}
}

func directorCredits(int) source.Result[source.Credits] {
	return source.OkResult(source.Credits{
		Cast: []source.CastMember{{Name: "A"}, {Name: "B"}, {Name: "C"}, {Name: "D"}, {Name: "E"}, {Name: "F"}},
		Crew: []source.CrewMember{{Name: "Writer", Job: "Screenplay"}, {Name: "Jane Doe", Job: "Director"}},
	})
}

// memStore is an in-memory store.Store.
type memStore struct {
	mu       sync.Mutex
	prefs    map[string]models.StoredPreferences
	rows     []models.RecommendationRow
	feedback []models.FeedbackRecord
	seq      int

	failPrefs    bool
	failBatch    bool
	failFeedback bool
	failFind     bool
	batchCalls   int
}

func newMemStore() *memStore {
	return &memStore{prefs: make(map[string]models.StoredPreferences)}
}

func (m *memStore) SavePreferences(_ context.Context, userID string, p models.PreferenceSet) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failPrefs {
		return "", errDown
	}
	m.seq++
	id := fmt.Sprintf("prefs-%d", m.seq)
	m.prefs[id] = models.StoredPreferences{ID: id, UserID: userID, Prefs: p}
	return id, nil
}

func (m *memStore) SaveBatch(_ context.Context, rows []models.RecommendationRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batchCalls++
	if m.failBatch {
		return errDown
	}
	m.rows = append(m.rows, rows...)
	return nil
}

func (m *memStore) FindRecommendation(_ context.Context, userID, id string) (*models.RecommendationRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failFind {
		return nil, errDown
	}
	for i := range m.rows {
		if m.rows[i].RowID == id && m.rows[i].UserID == userID {
			r := m.rows[i]
			return &r, nil
		}
	}
	for i := len(m.rows) - 1; i >= 0; i-- {
		if m.rows[i].Movie.ID == id && m.rows[i].UserID == userID {
			r := m.rows[i]
			return &r, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memStore) SaveFeedback(_ context.Context, rec models.FeedbackRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failFeedback {
		return errDown
	}
	m.feedback = append(m.feedback, rec)
	return nil
}

func (m *memStore) ListFeedback(_ context.Context, userID string) ([]models.FeedbackEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.FeedbackEntry
	for i := len(m.feedback) - 1; i >= 0; i-- {
		if m.feedback[i].UserID == userID {
			out = append(out, models.FeedbackEntry{FeedbackRecord: m.feedback[i]})
		}
	}
	return out, nil
}

func (m *memStore) Ping(context.Context) error { return nil }
func (m *memStore) Close() error               { return nil }

func (m *memStore) feedbackCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.feedback)
}

type recordingPublisher struct {
	mu     sync.Mutex
	topics []string
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	return nil
}

func (p *recordingPublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.topics...)
}
