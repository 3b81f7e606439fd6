// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

// Package secrets supplies the API credentials of the external sources.
//
// Credentials are resolved per call. Static serves keys from configuration;
// Remote fetches them from a secrets endpoint using the caller's session
// token, so a request without a session cannot reach the paid APIs.
package secrets

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/moodreel/internal/cache"
	"github.com/tomtom215/moodreel/internal/clients/httpx"
	"github.com/tomtom215/moodreel/internal/config"
	"github.com/tomtom215/moodreel/internal/resilience"
)

// ErrNoSession means the context carries no session token.
var ErrNoSession = errors.New("no session token")

// ErrMissingCredential means the provider answered without a required key.
var ErrMissingCredential = errors.New("missing credential")

// Credentials for the external sources. Empty fields are "not provided".
type Credentials struct {
	OpenAIKey     string `json:"OPENAI_API_KEY"`
	OpenAIBaseURL string `json:"OPENAI_BASE_URL,omitempty"`
	TMDBKey       string `json:"TMDB_API_KEY"`
	TMDBReadToken string `json:"TMDB_READ_ACCESS_TOKEN,omitempty"`
}

// Provider resolves credentials for the caller in ctx.
type Provider interface {
	Credentials(ctx context.Context) (Credentials, error)
}

type sessionKey struct{}

// ContextWithSessionToken attaches the caller's bearer token.
func ContextWithSessionToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, sessionKey{}, token)
}

// SessionTokenFromContext returns the token or "".
func SessionTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(sessionKey{}).(string)
	return token
}

// New builds the provider selected by cfg.Secrets.Mode.
func New(cfg *config.Config) (Provider, error) {
	switch cfg.Secrets.Mode {
	case "", "static":
		return NewStatic(Credentials{
			OpenAIKey:     cfg.OpenAI.APIKey,
			OpenAIBaseURL: cfg.OpenAI.BaseURL,
			TMDBKey:       cfg.TMDB.APIKey,
		}), nil
	case "remote":
		return NewRemote(cfg.Secrets.RemoteURL, cfg.Secrets.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown secrets mode %q", cfg.Secrets.Mode)
	}
}

// Static serves fixed credentials.
type Static struct {
	creds Credentials
}

func NewStatic(c Credentials) *Static { return &Static{creds: c} }

func (s *Static) Credentials(context.Context) (Credentials, error) {
	return s.creds, nil
}

// Remote fetches credentials from a secrets endpoint. Responses are kept
// in-process for a minute per token; they never go to a shared cache.
type Remote struct {
	url     string
	client  *http.Client
	breaker *resilience.Breaker
	cache   *cache.LRUCache
	ttl     time.Duration
}

func NewRemote(url string, timeout time.Duration) *Remote {
	return &Remote{
		url:     url,
		client:  httpx.NewClient(timeout),
		breaker: resilience.NewBreaker("secrets", resilience.Settings{}),
		cache:   cache.NewLRUCache(1024, time.Minute),
		ttl:     time.Minute,
	}
}

// Credentials POSTs to the endpoint with the session token as bearer.
func (r *Remote) Credentials(ctx context.Context) (Credentials, error) {
	token := SessionTokenFromContext(ctx)
	if token == "" {
		return Credentials{}, ErrNoSession
	}

	key := tokenKey(token)
	var creds Credentials
	if cache.GetJSON(ctx, r.cache, "secrets", key, &creds) {
		return creds, nil
	}

	creds, err := resilience.Run(r.breaker, func() (Credentials, error) {
		var c Credentials
		err := httpx.DoJSON(ctx, r.client, httpx.Request{
			Method:  http.MethodPost,
			URL:     r.url,
			Headers: map[string]string{"Authorization": "Bearer " + token},
			Body:    struct{}{},
		}, &c)
		return c, err
	})
	if err != nil {
		return Credentials{}, fmt.Errorf("fetch secrets: %w", err)
	}
	if strings.TrimSpace(creds.OpenAIKey) == "" && strings.TrimSpace(creds.TMDBKey) == "" {
		return Credentials{}, fmt.Errorf("fetch secrets: %w", ErrMissingCredential)
	}

	_ = cache.SetJSON(ctx, r.cache, key, creds, r.ttl)
	return creds, nil
}

func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
