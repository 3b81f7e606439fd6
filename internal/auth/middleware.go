// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/tomtom215/moodreel/internal/logging"
	"github.com/tomtom215/moodreel/internal/secrets"
)

type contextKey string

const claimsContextKey contextKey = "claims"

// DevUserID is the identity used when authentication is disabled.
const DevUserID = "dev-user"

var (
	errMissingToken = errors.New("missing bearer token")
	errBadHeader    = errors.New("invalid authorization header")
)

// ErrorWriter renders an authentication failure. The API package supplies
// one that writes its JSON envelope.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, status int, code, message string)

// Middleware authenticates requests.
type Middleware struct {
	jwt      *JWTManager
	disabled bool
	onError  ErrorWriter
}

// NewMiddleware builds the middleware. jwtManager may be nil only when
// disabled is true.
func NewMiddleware(jwtManager *JWTManager, disabled bool, onError ErrorWriter) *Middleware {
	if onError == nil {
		onError = func(w http.ResponseWriter, _ *http.Request, status int, _, message string) {
			http.Error(w, message, status)
		}
	}
	return &Middleware{jwt: jwtManager, disabled: disabled, onError: onError}
}

// Authenticate rejects requests without a valid bearer token.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.disabled {
			claims := &Claims{}
			claims.Subject = DevUserID
			next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), claims, "")))
			return
		}

		token, err := bearerToken(r)
		if err != nil {
			m.onError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized: "+err.Error())
			return
		}

		claims, err := m.jwt.ValidateToken(token)
		if err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("Token validation failed")
			m.onError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized: invalid token")
			return
		}

		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), claims, token)))
	})
}

func withIdentity(ctx context.Context, claims *Claims, rawToken string) context.Context {
	ctx = context.WithValue(ctx, claimsContextKey, claims)
	ctx = logging.ContextWithUserID(ctx, claims.Subject)
	if rawToken != "" {
		ctx = secrets.ContextWithSessionToken(ctx, rawToken)
	}
	return ctx
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", errMissingToken
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", errBadHeader
	}
	return strings.TrimSpace(token), nil
}

// ClaimsFromContext returns the authenticated claims, or nil.
func ClaimsFromContext(ctx context.Context) *Claims {
	c, _ := ctx.Value(claimsContextKey).(*Claims)
	return c
}

// UserIDFromContext returns the authenticated user id, or "".
func UserIDFromContext(ctx context.Context) string {
	if c := ClaimsFromContext(ctx); c != nil {
		return c.Subject
	}
	return ""
}
