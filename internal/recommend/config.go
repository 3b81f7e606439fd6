// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package recommend

import (
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/moodreel/internal/config"
)

// Config bounds one assembly.
type Config struct {
	// BatchSize is the maximum number of recommendations returned.
	// Default: 10.
	BatchSize int

	// MaxCandidates caps the titles accepted from the text source.
	// Default: 15.
	MaxCandidates int

	// ResolveLimit is how many candidates are resolved against metadata
	// search, in source order.
	// Default: 8.
	ResolveLimit int

	// Concurrency bounds in-flight candidate resolutions.
	// Default: 8.
	Concurrency int

	// CallTimeout applies to every individual external call. A call that
	// times out is treated as returning nothing.
	// Default: 5s.
	CallTimeout time.Duration

	// PersistTimeout bounds batch persistence, which is detached from the
	// request context so a disconnecting client does not lose the batch.
	// Default: 5s.
	PersistTimeout time.Duration
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      10,
		MaxCandidates:  15,
		ResolveLimit:   8,
		Concurrency:    8,
		CallTimeout:    5 * time.Second,
		PersistTimeout: 5 * time.Second,
	}
}

// ConfigFrom converts the application config section, filling zero values
// with defaults.
func ConfigFrom(rc config.RecommendConfig) *Config {
	cfg := DefaultConfig()
	if rc.BatchSize > 0 {
		cfg.BatchSize = rc.BatchSize
	}
	if rc.MaxCandidates > 0 {
		cfg.MaxCandidates = rc.MaxCandidates
	}
	if rc.ResolveLimit > 0 {
		cfg.ResolveLimit = rc.ResolveLimit
	}
	if rc.Concurrency > 0 {
		cfg.Concurrency = rc.Concurrency
	}
	if rc.CallTimeout > 0 {
		cfg.CallTimeout = rc.CallTimeout
	}
	if rc.PersistTimeout > 0 {
		cfg.PersistTimeout = rc.PersistTimeout
	}
	return cfg
}

// Validate checks the bounds are usable.
func (c *Config) Validate() error {
	var errs []error
	if c.BatchSize < 1 {
		errs = append(errs, fmt.Errorf("batch size must be positive, got %d", c.BatchSize))
	}
	if c.ResolveLimit < 0 || c.ResolveLimit > c.BatchSize {
		errs = append(errs, fmt.Errorf("resolve limit must be in [0, %d], got %d", c.BatchSize, c.ResolveLimit))
	}
	if c.MaxCandidates < c.ResolveLimit {
		errs = append(errs, fmt.Errorf("max candidates (%d) below resolve limit (%d)", c.MaxCandidates, c.ResolveLimit))
	}
	if c.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("concurrency must be positive, got %d", c.Concurrency))
	}
	if c.CallTimeout <= 0 {
		errs = append(errs, errors.New("call timeout must be positive"))
	}
	if c.PersistTimeout <= 0 {
		errs = append(errs, errors.New("persist timeout must be positive"))
	}
	return errors.Join(errs...)
}
