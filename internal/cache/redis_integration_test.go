// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/tomtom215/moodreel/internal/testinfra"
)

func TestRedisContainer(t *testing.T) {
	testinfra.SkipIfNoDocker(t)

	ctx := context.Background()
	rc, err := testinfra.NewRedisContainer(ctx)
	if err != nil {
		t.Fatalf("NewRedisContainer() error = %v", err)
	}
	defer testinfra.CleanupContainer(t, ctx, rc)

	c, err := NewRedis(rc.Addr, 0, "moodreel:", time.Minute)
	if err != nil {
		t.Fatalf("NewRedis() error = %v", err)
	}
	defer c.Close()

	if err := SetJSON(ctx, c, "credits:603", map[string]int{"cast": 3}, 0); err != nil {
		t.Fatalf("SetJSON() error = %v", err)
	}
	var got map[string]int
	if !GetJSON(ctx, c, "credits", "credits:603", &got) || got["cast"] != 3 {
		t.Errorf("GetJSON() = %v", got)
	}
}
