// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package openai

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/moodreel/internal/config"
	"github.com/tomtom215/moodreel/internal/logging"
	"github.com/tomtom215/moodreel/internal/models"
	"github.com/tomtom215/moodreel/internal/secrets"
	"github.com/tomtom215/moodreel/internal/source"
)

var prefs = models.PreferenceSet{
	LastMovie:      "Dune",
	PreferredGenre: "Science Fiction",
	CurrentMood:    "Want to think deeply",
}

func TestParseTitles(t *testing.T) {
	t.Parallel()

	many := make([]string, 20)
	for i := range many {
		many[i] = `"m"`
	}

	tests := []struct {
		name    string
		content string
		want    []string
		wantErr bool
	}{
		{name: "plain array", content: `["Arrival", "Contact"]`, want: []string{"Arrival", "Contact"}},
		{name: "fenced", content: "```json\n[\"Arrival\"]\n```", want: []string{"Arrival"}},
		{name: "fenced one line", content: "```[\"Arrival\"]```", want: []string{"Arrival"}},
		{name: "mixed entries", content: `["Arrival", 42, null, "  ", " Solaris "]`, want: []string{"Arrival", "Solaris"}},
		{name: "capped", content: "[" + strings.Join(many, ",") + "]", want: slices.Repeat([]string{"m"}, MaxTitles)},
		{name: "prose", content: "Here are some movies: Arrival, Contact", wantErr: true},
		{name: "object", content: `{"titles":["Arrival"]}`, wantErr: true},
		{name: "empty", content: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseTitles(tt.content)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseTitles() = %v, want error", got)
				}
				return
			}
			if err != nil || !slices.Equal(got, tt.want) {
				t.Errorf("ParseTitles() = %v, %v; want %v", got, err, tt.want)
			}
		})
	}
}

func TestUserPrompt(t *testing.T) {
	t.Parallel()

	p := UserPrompt(prefs)
	for _, want := range []string{
		"Last movie enjoyed: Dune",
		"Preferred genre: Science Fiction",
		"Current mood: Want to think deeply",
		"Focus on Science Fiction movies that match the Want to think deeply mood.",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q:\n%s", want, p)
		}
	}
}

func newTestClient(baseURL, key string) *Client {
	cfg := &config.OpenAIConfig{
		BaseURL:     baseURL,
		Model:       "gpt-3.5-turbo",
		MaxTokens:   500,
		Temperature: 0.7,
		Timeout:     time.Second,
	}
	return New(cfg, secrets.NewStatic(secrets.Credentials{OpenAIKey: key}), logging.NewNopLogger())
}

func TestCandidateTitles(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		body, _ := io.ReadAll(r.Body)
		var req chatRequest
		if err := json.Unmarshal(body, &req); err != nil || req.Model != "gpt-3.5-turbo" || len(req.Messages) != 2 || req.MaxTokens != 500 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		content := `["Arrival","Interstellar"]`
		if strings.Contains(req.Messages[1].Content, "Horror") {
			content = "I recommend Hereditary."
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []any{map[string]any{"message": map[string]string{"role": "assistant", "content": content}}},
		})
	}))
	t.Cleanup(srv.Close)

	ctx := context.Background()

	res := newTestClient(srv.URL, "sk-test").CandidateTitles(ctx, prefs)
	if !res.IsOk() || !slices.Equal(res.Value, []string{"Arrival", "Interstellar"}) {
		t.Errorf("ok call = %+v", res)
	}

	horror := prefs
	horror.PreferredGenre = "Horror"
	if res := newTestClient(srv.URL, "sk-test").CandidateTitles(ctx, horror); res.Outcome != source.Malformed {
		t.Errorf("prose reply outcome = %s, want malformed", res.Outcome)
	}

	if res := newTestClient(srv.URL, "sk-wrong").CandidateTitles(ctx, prefs); res.Outcome != source.Unavailable {
		t.Errorf("401 outcome = %s, want unavailable", res.Outcome)
	}

	if res := newTestClient(srv.URL, "").CandidateTitles(ctx, prefs); res.Outcome != source.Unavailable {
		t.Errorf("missing key outcome = %s, want unavailable", res.Outcome)
	}
}

func TestCandidateTitlesTimeout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if res := newTestClient(srv.URL, "sk-test").CandidateTitles(ctx, prefs); res.Outcome != source.Unavailable {
		t.Errorf("timeout outcome = %s, want unavailable", res.Outcome)
	}
}

func TestCandidateTitlesRemoteSecretsWithoutSession(t *testing.T) {
	t.Parallel()

	c := New(&config.OpenAIConfig{BaseURL: "http://127.0.0.1:1"}, secrets.NewRemote("http://127.0.0.1:1", time.Second), logging.NewNopLogger())
	if res := c.CandidateTitles(context.Background(), prefs); res.Outcome != source.Unavailable {
		t.Errorf("outcome = %s, want unavailable", res.Outcome)
	}
}
