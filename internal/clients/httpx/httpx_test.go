// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestDoJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			if r.Header.Get("X-Key") != "k" || r.Header.Get("Content-Type") != "application/json" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			_, _ = w.Write([]byte(`{"name":"moodreel"}`))
		case "/bad-json":
			_, _ = w.Write([]byte(`{"name":`))
		case "/huge-error":
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(strings.Repeat("x", maxErrorBodySize+100)))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	client := NewClient(time.Second)
	ctx := context.Background()

	var out struct {
		Name string `json:"name"`
	}
	err := DoJSON(ctx, client, Request{
		Method:  http.MethodPost,
		URL:     srv.URL + "/ok",
		Headers: map[string]string{"X-Key": "k"},
		Body:    map[string]string{"q": "dune"},
	}, &out)
	if err != nil || out.Name != "moodreel" {
		t.Fatalf("DoJSON(ok) = %v, %+v", err, out)
	}

	err = DoJSON(ctx, client, Request{Method: http.MethodGet, URL: srv.URL + "/bad-json"}, &out)
	if !errors.Is(err, ErrDecode) {
		t.Errorf("DoJSON(bad-json) = %v, want ErrDecode", err)
	}

	err = DoJSON(ctx, client, Request{Method: http.MethodGet, URL: srv.URL + "/huge-error"}, &out)
	if StatusCode(err) != http.StatusBadGateway {
		t.Fatalf("DoJSON(huge-error) = %v", err)
	}
	var he *HTTPError
	if errors.As(err, &he) && !strings.HasSuffix(he.Body, "(truncated)") {
		t.Error("large error body should be truncated")
	}

	if StatusCode(errors.New("plain")) != 0 {
		t.Error("StatusCode of non-HTTP error should be 0")
	}
}
