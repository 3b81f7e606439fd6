// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tomtom215/moodreel/internal/config"
)

const testSecret = "this_is_a_very_long_secret_key_with_32_plus_characters"

func newManager(t *testing.T, issuer string) *JWTManager {
	t.Helper()
	m, err := NewJWTManager(&config.SecurityConfig{JWTSecret: testSecret, JWTIssuer: issuer})
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	return m
}

func TestNewJWTManagerRequiresSecret(t *testing.T) {
	t.Parallel()

	if _, err := NewJWTManager(&config.SecurityConfig{}); err == nil {
		t.Error("NewJWTManager() with empty secret should fail")
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()

	m := newManager(t, "moodreel-idp")
	token, err := m.GenerateToken("user-42", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID() != "user-42" {
		t.Errorf("UserID() = %q, want user-42", claims.UserID())
	}
}

func TestValidateTokenRejects(t *testing.T) {
	t.Parallel()

	m := newManager(t, "moodreel-idp")
	sign := func(method jwt.SigningMethod, key any, c jwt.Claims) string {
		s, err := jwt.NewWithClaims(method, c).SignedString(key)
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return s
	}
	valid := func() jwt.RegisteredClaims {
		return jwt.RegisteredClaims{
			Subject:   "user-1",
			Issuer:    "moodreel-idp",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}
	}

	expired := valid()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	noExp := valid()
	noExp.ExpiresAt = nil
	noSub := valid()
	noSub.Subject = ""
	wrongIss := valid()
	wrongIss.Issuer = "someone-else"

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not.a.jwt"},
		{"wrong secret", sign(jwt.SigningMethodHS256, []byte("another_secret_that_is_long_enough_xx"), valid())},
		{"wrong algorithm", sign(jwt.SigningMethodHS512, []byte(testSecret), valid())},
		{"none algorithm", sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, valid())},
		{"expired", sign(jwt.SigningMethodHS256, []byte(testSecret), expired)},
		{"no expiry", sign(jwt.SigningMethodHS256, []byte(testSecret), noExp)},
		{"wrong issuer", sign(jwt.SigningMethodHS256, []byte(testSecret), wrongIss)},
		{"no subject", sign(jwt.SigningMethodHS256, []byte(testSecret), noSub)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := m.ValidateToken(tt.token); err == nil {
				t.Error("ValidateToken() = nil error, want rejection")
			}
		})
	}

	if _, err := m.ValidateToken(sign(jwt.SigningMethodHS256, []byte(testSecret), noSub)); !errors.Is(err, ErrMissingSubject) {
		t.Errorf("missing subject error = %v, want ErrMissingSubject", err)
	}
}

func TestIssuerOptional(t *testing.T) {
	t.Parallel()

	issuing := newManager(t, "any-idp")
	lenient := newManager(t, "")
	token, _ := issuing.GenerateToken("user-7", time.Minute)
	if _, err := lenient.ValidateToken(token); err != nil {
		t.Errorf("empty issuer config should accept any issuer: %v", err)
	}
}
