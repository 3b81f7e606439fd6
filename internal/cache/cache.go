// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

// Package cache stores metadata responses (search hits, credits) so repeat
// lookups for popular titles skip the metadata API.
//
// Three tiers share one interface: an in-process LRU (default), a local
// badger directory that survives restarts, and redis for multi-instance
// deployments. Values are opaque bytes; callers own the encoding.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/moodreel/internal/config"
	"github.com/tomtom215/moodreel/internal/metrics"
)

// Store is a byte-valued cache with per-entry TTL.
type Store interface {
	// Get returns the value and true on a hit. Misses are not errors.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value for ttl. ttl <= 0 uses the store default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Close() error
}

// New builds the Store selected by cfg.Backend. "none" yields a Store that
// never hits.
func New(cfg *config.CacheConfig) (Store, error) {
	switch cfg.Backend {
	case "", "memory":
		return NewLRUCache(cfg.Capacity, cfg.TTL), nil
	case "badger":
		return OpenBadger(cfg.BadgerDir, cfg.TTL)
	case "redis":
		return NewRedis(cfg.RedisAddr, cfg.RedisDB, cfg.KeyPrefix, cfg.TTL)
	case "none":
		return Nop{}, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool, error)       { return nil, false, nil }
func (Nop) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (Nop) Close() error                                             { return nil }

// GetJSON decodes a cached JSON value into out. kind labels the hit/miss
// metrics. Undecodable entries count as misses.
func GetJSON(ctx context.Context, s Store, kind, key string, out any) bool {
	raw, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		metrics.RecordCacheLookup(kind, false)
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		metrics.RecordCacheLookup(kind, false)
		return false
	}
	metrics.RecordCacheLookup(kind, true)
	return true
}

// SetJSON encodes v and stores it. Errors are returned for logging; a
// failed cache write never fails the caller's operation.
func SetJSON(ctx context.Context, s Store, key string, v any, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode cache value: %w", err)
	}
	return s.Set(ctx, key, raw, ttl)
}
