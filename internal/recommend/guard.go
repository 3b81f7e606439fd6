// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package recommend

import (
	"sync"

	"github.com/tomtom215/moodreel/internal/metrics"
)

// Guard tracks the newest in-flight assembly per user so a superseded
// result is never delivered as current. It does not cancel anything.
type Guard struct {
	mu     sync.Mutex
	seq    uint64
	latest map[string]uint64
}

// Ticket identifies one request.
type Ticket struct {
	userID string
	seq    uint64
}

// NewGuard returns an empty Guard.
func NewGuard() *Guard {
	return &Guard{latest: make(map[string]uint64)}
}

// Begin registers a new request for userID, superseding earlier ones.
func (g *Guard) Begin(userID string) Ticket {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	g.latest[userID] = g.seq
	return Ticket{userID: userID, seq: g.seq}
}

// Current reports whether t is still the user's newest request.
func (g *Guard) Current(t Ticket) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	ok := g.latest[t.userID] == t.seq
	if !ok {
		metrics.StaleResponses.Inc()
	}
	return ok
}

// End releases t. The user's entry is dropped only if t is still newest,
// so the map holds users with requests in flight.
func (g *Guard) End(t Ticket) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.latest[t.userID] == t.seq {
		delete(g.latest, t.userID)
	}
}
