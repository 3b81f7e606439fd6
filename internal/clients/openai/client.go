// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

/*
Package openai asks a chat-completion model for candidate movie titles.

One call per assembly: a fixed system instruction plus a user message built
from the three preference fields. The reply must be a JSON array of strings;
anything else is reported as source.Malformed. Transport failures, non-2xx
statuses, missing credentials and an open breaker are source.Unavailable.
The client never retries; the pipeline treats every failure as "no titles".
*/
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/moodreel/internal/clients/httpx"
	"github.com/tomtom215/moodreel/internal/config"
	"github.com/tomtom215/moodreel/internal/metrics"
	"github.com/tomtom215/moodreel/internal/models"
	"github.com/tomtom215/moodreel/internal/resilience"
	"github.com/tomtom215/moodreel/internal/secrets"
	"github.com/tomtom215/moodreel/internal/source"
)

// MaxTitles caps the parsed reply.
const MaxTitles = 15

const systemPrompt = "You are a movie recommendation expert. Based on user preferences, suggest 15 movie titles that match their taste. Return only a JSON array of movie titles, nothing else."

// Client implements source.TextGenerator.
type Client struct {
	baseURL     string
	model       string
	maxTokens   int
	temperature float64

	http    *http.Client
	secrets secrets.Provider
	breaker *resilience.Breaker
	logger  zerolog.Logger
}

// New builds a client. Credentials come from p on every call.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(cfg *config.OpenAIConfig, p secrets.Provider, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		http:        httpx.NewClient(cfg.Timeout),
		secrets:     p,
		breaker:     resilience.NewBreaker("openai", resilience.Settings{}),
		logger:      logger.With().Str("component", "openai").Logger(),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// UserPrompt renders the user message for prefs.
//
//nolint:gocritic // hugeParam: prefs passed by value for immutability
func UserPrompt(prefs models.PreferenceSet) string {
	return fmt.Sprintf(`Based on these preferences:
- Last movie enjoyed: %s
- Preferred genre: %s
- Current mood: %s

Suggest 15 movie titles that would appeal to this user. Focus on %s movies that match the %s mood.`,
		prefs.LastMovie, prefs.PreferredGenre, prefs.CurrentMood, prefs.PreferredGenre, prefs.CurrentMood)
}

// CandidateTitles returns up to MaxTitles non-blank titles.
//
//nolint:gocritic // hugeParam: prefs passed by value for immutability
func (c *Client) CandidateTitles(ctx context.Context, prefs models.PreferenceSet) source.Result[[]string] {
	start := time.Now()
	res := c.candidateTitles(ctx, prefs)
	metrics.RecordExternalCall("openai", "chat_completion", res.Outcome.String(), time.Since(start))
	if !res.IsOk() {
		c.logger.Warn().Err(res.Err).Str("outcome", res.Outcome.String()).Msg("candidate titles unavailable")
	}
	return res
}

//nolint:gocritic // hugeParam: prefs passed by value for immutability
func (c *Client) candidateTitles(ctx context.Context, prefs models.PreferenceSet) source.Result[[]string] {
	creds, err := c.secrets.Credentials(ctx)
	if err != nil {
		return source.UnavailableResult[[]string](fmt.Errorf("credentials: %w", err))
	}
	if creds.OpenAIKey == "" {
		return source.UnavailableResult[[]string](errors.New("no openai api key configured"))
	}
	base := c.baseURL
	if creds.OpenAIBaseURL != "" {
		base = strings.TrimRight(creds.OpenAIBaseURL, "/")
	}

	resp, err := resilience.Run(c.breaker, func() (chatResponse, error) {
		var out chatResponse
		err := httpx.DoJSON(ctx, c.http, httpx.Request{
			Method:  http.MethodPost,
			URL:     base + "/v1/chat/completions",
			Headers: map[string]string{"Authorization": "Bearer " + creds.OpenAIKey},
			Body: chatRequest{
				Model: c.model,
				Messages: []chatMessage{
					{Role: "system", Content: systemPrompt},
					{Role: "user", Content: UserPrompt(prefs)},
				},
				MaxTokens:   c.maxTokens,
				Temperature: c.temperature,
			},
		}, &out)
		return out, err
	})
	if errors.Is(err, httpx.ErrDecode) {
		return source.MalformedResult[[]string](err)
	}
	if err != nil {
		return source.UnavailableResult[[]string](err)
	}
	if len(resp.Choices) == 0 {
		return source.MalformedResult[[]string](errors.New("no choices in completion"))
	}

	titles, err := ParseTitles(resp.Choices[0].Message.Content)
	if err != nil {
		return source.MalformedResult[[]string](err)
	}
	return source.OkResult(titles)
}

// ParseTitles decodes a JSON array of titles from model output. A
// surrounding markdown code fence is tolerated. Non-string and blank
// entries are dropped and the result is capped at MaxTitles.
func ParseTitles(content string) ([]string, error) {
	text := stripCodeFence(strings.TrimSpace(content))

	var raw []any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("%w: completion is not a JSON array: %w", source.ErrMalformedResponse, err)
	}

	titles := make([]string, 0, min(len(raw), MaxTitles))
	for _, v := range raw {
		s, ok := v.(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s == "" {
			continue
		}
		titles = append(titles, s)
		if len(titles) == MaxTitles {
			break
		}
	}
	return titles, nil
}

func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:] // drop the language tag line
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
