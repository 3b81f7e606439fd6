// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package models

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestFeedbackFieldsHasSignal(t *testing.T) {
	t.Parallel()

	zero := 0
	no := false
	empty := ""

	tests := []struct {
		name   string
		fields FeedbackFields
		want   bool
	}{
		{"all absent", FeedbackFields{}, false},
		{"zero rating", FeedbackFields{Rating: &zero}, true},
		{"liked false", FeedbackFields{Liked: &no}, true},
		{"empty text", FeedbackFields{FeedbackText: &empty}, true},
		{"would not watch again", FeedbackFields{WouldWatchAgain: &no}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.fields.HasSignal(); got != tt.want {
				t.Errorf("HasSignal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFeedbackFieldsDecodeDistinguishesNullFromZero(t *testing.T) {
	t.Parallel()

	var f FeedbackFields
	if err := json.Unmarshal([]byte(`{"rating":0,"liked":null}`), &f); err != nil {
		t.Fatal(err)
	}
	if f.Rating == nil || *f.Rating != 0 {
		t.Errorf("rating = %v, want provided 0", f.Rating)
	}
	if f.Liked != nil {
		t.Error("explicit null should decode as absent")
	}
	if !f.HasSignal() {
		t.Error("a provided zero rating is a signal")
	}
}

func TestMovieRecommendationWireNames(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(MovieRecommendation{ID: "27205", Title: "Inception", PosterURL: "", Cast: []string{}})
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"poster":""`, `"director":""`, `"cast":[]`, `"year":0`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("encoded %s missing %s", data, key)
		}
	}
}
