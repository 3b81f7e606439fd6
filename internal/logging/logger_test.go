// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{" error ", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"nonsense", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func decodeLine(t *testing.T, line string) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, line)
	}
	return m
}

//nolint:paralleltest // mutates the global logger
func TestCtxAddsIdentifiers(t *testing.T) {
	var buf bytes.Buffer
	prev := Logger()
	SetLogger(NewTestLogger(&buf))
	t.Cleanup(func() { SetLogger(prev) })

	ctx := ContextWithRequestID(context.Background(), "req-1")
	ctx = ContextWithCorrelationID(ctx, "corr-1")
	ctx = ContextWithUserID(ctx, "user-1")
	Ctx(ctx).Info().Msg("hello")

	m := decodeLine(t, strings.TrimSpace(buf.String()))
	for key, want := range map[string]string{
		"request_id":     "req-1",
		"correlation_id": "corr-1",
		"user_id":        "user-1",
		"message":        "hello",
	} {
		if got, _ := m[key].(string); got != want {
			t.Errorf("%s = %q, want %q", key, got, want)
		}
	}
}

func TestEnrichKeepsComponent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := NewTestLogger(&buf).With().Str("component", "assembly").Logger()
	ctx := ContextWithCorrelationID(context.Background(), "abc")

	l := Enrich(ctx, base)
	l.Info().Msg("x")

	m := decodeLine(t, strings.TrimSpace(buf.String()))
	if m["component"] != "assembly" || m["correlation_id"] != "abc" {
		t.Errorf("unexpected fields: %v", m)
	}
}

func TestGeneratedIDs(t *testing.T) {
	t.Parallel()

	if got := len(GenerateCorrelationID()); got != 8 {
		t.Errorf("correlation id length = %d, want 8", got)
	}
	a, b := GenerateRequestID(), GenerateRequestID()
	if a == b {
		t.Error("request ids should be unique")
	}
}

func TestSlogHandlerGroupsAndLevels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	zl := NewTestLogger(&buf).Level(zerolog.InfoLevel)
	logger := slog.New(NewSlogHandler(zl))

	logger.Debug("hidden")
	logger.WithGroup("supervisor").With("service", "http").Warn("restart", slog.Int("attempt", 2))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), buf.String())
	}
	m := decodeLine(t, lines[0])
	if m["level"] != "warn" {
		t.Errorf("level = %v, want warn", m["level"])
	}
	if m["supervisor.service"] != "http" {
		t.Errorf("supervisor.service = %v", m["supervisor.service"])
	}
	if v, _ := m["supervisor.attempt"].(float64); v != 2 {
		t.Errorf("supervisor.attempt = %v", m["supervisor.attempt"])
	}
}
