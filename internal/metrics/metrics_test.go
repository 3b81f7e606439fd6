// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

//nolint:paralleltest // collectors are process-global
func TestRecordAssembly(t *testing.T) {
	before := testutil.ToFloat64(AssembliesTotal.WithLabelValues("fallback"))
	RecordAssembly("fallback", 10, 20*time.Millisecond)
	after := testutil.ToFloat64(AssembliesTotal.WithLabelValues("fallback"))
	if after-before != 1 {
		t.Errorf("fallback assemblies delta = %v, want 1", after-before)
	}
}

//nolint:paralleltest // collectors are process-global
func TestRecordExternalCall(t *testing.T) {
	tests := []struct {
		source, op, outcome string
	}{
		{"tmdb", "search", "ok"},
		{"tmdb", "credits", "unavailable"},
		{"openai", "chat", "malformed"},
	}
	for _, tt := range tests {
		c := ExternalCallsTotal.WithLabelValues(tt.source, tt.op, tt.outcome)
		before := testutil.ToFloat64(c)
		RecordExternalCall(tt.source, tt.op, tt.outcome, time.Millisecond)
		if got := testutil.ToFloat64(c) - before; got != 1 {
			t.Errorf("%s/%s/%s delta = %v, want 1", tt.source, tt.op, tt.outcome, got)
		}
	}
}

//nolint:paralleltest // collectors are process-global
func TestRecordStoreOperationCountsFailuresOnly(t *testing.T) {
	c := StoreFailures.WithLabelValues("save_batch")
	before := testutil.ToFloat64(c)

	RecordStoreOperation("duckdb", "save_batch", time.Millisecond, nil)
	if got := testutil.ToFloat64(c) - before; got != 0 {
		t.Errorf("success should not count as failure, delta = %v", got)
	}

	RecordStoreOperation("duckdb", "save_batch", time.Millisecond, errors.New("disk full"))
	if got := testutil.ToFloat64(c) - before; got != 1 {
		t.Errorf("failure delta = %v, want 1", got)
	}
}

//nolint:paralleltest // collectors are process-global
func TestRecordCacheLookup(t *testing.T) {
	hits := testutil.ToFloat64(CacheHits.WithLabelValues("credits"))
	misses := testutil.ToFloat64(CacheMisses.WithLabelValues("credits"))

	RecordCacheLookup("credits", true)
	RecordCacheLookup("credits", false)
	RecordCacheLookup("credits", false)

	if got := testutil.ToFloat64(CacheHits.WithLabelValues("credits")) - hits; got != 1 {
		t.Errorf("hits delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(CacheMisses.WithLabelValues("credits")) - misses; got != 2 {
		t.Errorf("misses delta = %v, want 2", got)
	}
}

//nolint:paralleltest // collectors are process-global
func TestRecordAPIRequest(t *testing.T) {
	c := APIRequestsTotal.WithLabelValues("POST", "/api/v1/recommendations", "200")
	before := testutil.ToFloat64(c)
	RecordAPIRequest("POST", "/api/v1/recommendations", 200, 5*time.Millisecond)
	if got := testutil.ToFloat64(c) - before; got != 1 {
		t.Errorf("api requests delta = %v, want 1", got)
	}
}
