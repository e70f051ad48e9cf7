// Cinematch - Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	_ "github.com/tomtom215/cinematch/docs"
	"github.com/tomtom215/cinematch/internal/config"
)

func TestEveryResponseHasRequestID(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, newTestService(t))

	for _, target := range []string{"/", "/recommend_by_movie?title=Heat", "/recommend_by_movie?k=x", "/nope", "/health/live", "/metrics"} {
		rec := get(t, srv, target)
		if rec.Header().Get("X-Request-ID") == "" {
			t.Errorf("%s: missing X-Request-ID", target)
		}
	}
}

func TestSecurityHeaders(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, nil)

	rec := get(t, srv, "/")
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q", got)
	}
	if got := rec.Header().Get("Strict-Transport-Security"); got != "" {
		t.Errorf("HSTS sent over plain HTTP: %q", got)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Header().Get("Strict-Transport-Security") == "" {
		t.Error("missing HSTS behind TLS proxy")
	}
}

func TestCORS(t *testing.T) {
	t.Parallel()

	h := NewHandler(testLimits)
	mw := ChiMiddlewareConfigFrom(&config.SecurityConfig{
		CORSOrigins:       []string{"https://app.example.com"},
		RateLimitDisabled: true,
	})
	srv := NewRouter(h, RouterConfig{Middleware: mw}).Setup()

	tests := []struct {
		origin string
		want   string
	}{
		{"https://app.example.com", "https://app.example.com"},
		{"https://evil.example.com", ""},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodOptions, "/recommend_by_genre?genre=Drama", nil)
		req.Header.Set("Origin", tt.origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.want {
			t.Errorf("origin %s: Access-Control-Allow-Origin = %q, want %q", tt.origin, got, tt.want)
		}
	}
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	h := NewHandler(testLimits)
	mw := DefaultChiMiddlewareConfig()
	mw.RateLimitRequests = 2
	mw.RateLimitWindow = time.Hour
	srv := NewRouter(h, RouterConfig{Middleware: mw}).Setup()

	send := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = "203.0.113.7:4242"
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		return rec
	}

	for i := 0; i < 2; i++ {
		if rec := send("/"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, rec.Code)
		}
	}

	rec := send("/")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if got := decodeError(t, rec); got != "Too many requests" {
		t.Errorf("error = %q", got)
	}

	// Probes are not limited.
	if rec := send("/health/live"); rec.Code != http.StatusOK {
		t.Errorf("health status = %d, want 200", rec.Code)
	}
}

func TestRateLimitIgnoresForwardedForByDefault(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		trustProxy  bool
		wantLimited bool
	}{
		{"untrusted headers share one bucket", false, true},
		{"trusted headers key by forwarded ip", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mw := DefaultChiMiddlewareConfig()
			mw.RateLimitRequests = 2
			mw.RateLimitWindow = time.Hour
			mw.TrustProxyHeaders = tt.trustProxy
			srv := NewRouter(NewHandler(testLimits), RouterConfig{Middleware: mw}).Setup()

			limited := false
			for i := 0; i < 5; i++ {
				req := httptest.NewRequest(http.MethodGet, "/", nil)
				req.RemoteAddr = "203.0.113.9:4242"
				req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i+1))
				rec := httptest.NewRecorder()
				srv.ServeHTTP(rec, req)
				if rec.Code == http.StatusTooManyRequests {
					limited = true
				}
			}
			if limited != tt.wantLimited {
				t.Errorf("limited = %v, want %v", limited, tt.wantLimited)
			}
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	h := NewHandler(testLimits)
	mw := DefaultChiMiddlewareConfig()
	mw.RateLimitDisabled = true

	on := NewRouter(h, RouterConfig{Middleware: mw, MetricsEnabled: true, MetricsPath: "/internal/metrics"}).Setup()
	get(t, on, "/")
	rec := get(t, on, "/internal/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "api_requests_total") {
		t.Error("exposition missing api_requests_total")
	}

	off := NewRouter(h, RouterConfig{Middleware: mw}).Setup()
	if rec := get(t, off, "/metrics"); rec.Code != http.StatusNotFound {
		t.Errorf("disabled metrics status = %d, want 404", rec.Code)
	}
}

func TestSwaggerDocs(t *testing.T) {
	t.Parallel()

	mw := DefaultChiMiddlewareConfig()
	mw.RateLimitRequests = 1
	mw.RateLimitWindow = time.Hour
	srv := NewRouter(NewHandler(testLimits), RouterConfig{Middleware: mw}).Setup()

	// Two requests against a limit of one: docs are not rate limited.
	for i := 0; i < 2; i++ {
		rec := get(t, srv, "/swagger/doc.json")
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, rec.Code)
		}
		var doc struct {
			Info  struct{ Title string } `json:"info"`
			Paths map[string]any         `json:"paths"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
			t.Fatalf("decode doc.json: %v", err)
		}
		if doc.Info.Title != "Cinematch API" {
			t.Errorf("title = %q", doc.Info.Title)
		}
		for _, path := range []string{"/", "/recommend_by_movie", "/recommend_by_genre", "/health/live", "/health/ready"} {
			if _, ok := doc.Paths[path]; !ok {
				t.Errorf("doc.json missing path %s", path)
			}
		}
	}

	rec := get(t, srv, "/swagger/index.html")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "swagger-ui") {
		t.Errorf("index.html status = %d", rec.Code)
	}
}
