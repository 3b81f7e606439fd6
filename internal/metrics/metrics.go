// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Assembly

	AssembliesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodreel_assemblies_total",
			Help: "Recommendation batches produced, by source",
		},
		[]string{"source"}, // live, fallback
	)

	AssemblyDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "moodreel_assembly_duration_seconds",
			Help:    "End-to-end duration of one assembly",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 4, 8, 16},
		},
	)

	BatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "moodreel_batch_size",
			Help:    "Number of recommendations in a returned batch",
			Buckets: []float64{1, 2, 4, 6, 8, 10},
		},
	)

	CandidatesResolved = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "moodreel_candidates_resolved",
			Help:    "Generated titles that resolved to a metadata record",
			Buckets: []float64{0, 1, 2, 4, 6, 8},
		},
	)

	// External sources

	ExternalCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "moodreel_external_call_duration_seconds",
			Help:    "Latency of calls to external sources",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source", "operation"},
	)

	ExternalCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodreel_external_calls_total",
			Help: "Calls to external sources by outcome",
		},
		[]string{"source", "operation", "outcome"}, // ok, malformed, unavailable
	)

	// Circuit breakers

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Requests through a circuit breaker",
		},
		[]string{"name", "result"}, // success, failure, rejected
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Persistence

	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "moodreel_store_operation_duration_seconds",
			Help:    "Duration of persistence operations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "operation"},
	)

	StoreFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodreel_store_failures_total",
			Help: "Failed persistence operations",
		},
		[]string{"operation"},
	)

	FeedbackTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodreel_feedback_total",
			Help: "Feedback submissions by result",
		},
		[]string{"result"}, // recorded, no_signal, not_found, store_error
	)

	// Cache

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodreel_cache_hits_total",
			Help: "Metadata cache hits",
		},
		[]string{"kind"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodreel_cache_misses_total",
			Help: "Metadata cache misses",
		},
		[]string{"kind"},
	)

	// Events

	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodreel_events_published_total",
			Help: "Domain events published by topic and result",
		},
		[]string{"topic", "result"},
	)

	// API

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "HTTP API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "HTTP API request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "HTTP API requests currently in flight",
		},
	)

	StaleResponses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "moodreel_stale_responses_total",
			Help: "Assemblies finished after a newer request from the same user",
		},
	)
)

// RecordAssembly records one finished assembly.
func RecordAssembly(source string, size int, d time.Duration) {
	AssembliesTotal.WithLabelValues(source).Inc()
	AssemblyDuration.Observe(d.Seconds())
	BatchSize.Observe(float64(size))
}

// RecordExternalCall records latency and outcome of one external call.
func RecordExternalCall(source, operation, outcome string, d time.Duration) {
	ExternalCallDuration.WithLabelValues(source, operation).Observe(d.Seconds())
	ExternalCallsTotal.WithLabelValues(source, operation, outcome).Inc()
}

// RecordStoreOperation records a persistence call; err may be nil.
func RecordStoreOperation(backend, operation string, d time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(backend, operation).Observe(d.Seconds())
	if err != nil {
		StoreFailures.WithLabelValues(operation).Inc()
	}
}

// RecordCacheLookup counts a hit or miss for kind.
func RecordCacheLookup(kind string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(kind).Inc()
		return
	}
	CacheMisses.WithLabelValues(kind).Inc()
}

func RecordEventPublished(topic string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	EventsPublished.WithLabelValues(topic, result).Inc()
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint string, status int, d time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(d.Seconds())
}

// TrackActiveRequest moves the in-flight gauge up on start, down on finish.
func TrackActiveRequest(start bool) {
	if start {
		APIActiveRequests.Inc()
		return
	}
	APIActiveRequests.Dec()
}
