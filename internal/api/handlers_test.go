// Cinematch - Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinematch/internal/artifact"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/neighbors"
	"github.com/tomtom215/cinematch/internal/recommend"
)

var testLimits = Limits{DefaultK: 10, DefaultTopN: 10}

func testCatalog() *artifact.StaticSource {
	return &artifact.StaticSource{
		Movies: []models.Movie{
			{Title: "Inception", Overview: "A thief who steals corporate secrets.", PosterPath: "/inception.jpg",
				Tagline: "Your mind is the scene of the crime.", Genres: "Action, Science Fiction",
				Popularity: 30, Revenue: 800, VoteAverage: 8.3, VoteCount: 30000, Budget: 160},
			{Title: "Interstellar", Genres: "Adventure, Drama, Science Fiction",
				Popularity: 35, Revenue: 700, VoteAverage: 8.4, VoteCount: 28000, Budget: 165},
			{Title: "The Dark Knight", Genres: "Drama, Action, Crime",
				Popularity: 40, Revenue: 1000, VoteAverage: 8.5, VoteCount: 31000, Budget: 185},
			{Title: "Toy Story", Genres: "Animation, Comedy, Family",
				Popularity: 20, Revenue: 370, VoteAverage: 8.0, VoteCount: 17000, Budget: 30},
			{Title: "Heat", Genres: "Action, Crime, Drama",
				Popularity: 10, Revenue: 187, VoteAverage: 7.9, VoteCount: 6000, Budget: 60},
		},
		Features: [][]float64{
			{1, 0},
			{0.95, 0.05},
			{0.8, 0.2},
			{0, 1},
			{0.6, 0.1},
		},
	}
}

func newTestService(t *testing.T) *recommend.Service {
	t.Helper()

	bundle, err := testCatalog().Load(context.Background())
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	idx, err := neighbors.NewBruteForce(bundle.Features, neighbors.Euclidean)
	if err != nil {
		t.Fatalf("build index: %v", err)
	}
	svc, err := recommend.NewService(bundle, idx, recommend.DefaultConfig(), logging.NewTestLogger(nil))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func newTestServer(t *testing.T, rec Recommender) http.Handler {
	t.Helper()

	h := NewHandler(testLimits)
	if rec != nil {
		h.SetRecommender(rec)
	}
	mw := DefaultChiMiddlewareConfig()
	mw.RateLimitDisabled = true
	return NewRouter(h, RouterConfig{Middleware: mw, MetricsEnabled: true}).Setup()
}

func get(t *testing.T, srv http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decodeSummaries(t *testing.T, rec *httptest.ResponseRecorder) []models.MovieSummary {
	t.Helper()
	var out []models.MovieSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return out
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	if len(body) != 1 {
		t.Errorf("error body has keys %v, want only \"error\"", body)
	}
	msg, _ := body["error"].(string)
	return msg
}

func TestIndex(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, nil)

	rec := get(t, srv, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != Banner {
		t.Errorf("body = %q, want %q", rec.Body.String(), Banner)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestRecommendByMovieHandler(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, newTestService(t))

	rec := get(t, srv, "/recommend_by_movie?title=Inception&k=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	got := decodeSummaries(t, rec)
	if len(got) != 2 || got[0].Title != "Interstellar" || got[1].Title != "The Dark Knight" {
		t.Errorf("got %+v", got)
	}

	var raw []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatal(err)
	}
	for _, item := range raw {
		if len(item) != 4 {
			t.Errorf("item has keys %v, want title, overview, poster_path, tagline", item)
		}
	}
}

func TestRecommendByMovieDefaultK(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, newTestService(t))

	rec := get(t, srv, "/recommend_by_movie?title=Heat")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := decodeSummaries(t, rec); len(got) != 4 {
		t.Errorf("len = %d, want every other movie (4)", len(got))
	}
}

func TestLargeLimitsAreNotRejected(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, newTestService(t))

	tests := []struct {
		target string
		want   int
	}{
		{"/recommend_by_movie?title=Heat&k=150", 4},
		{"/recommend_by_genre?genre=Drama&top_n=150", 3},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			t.Parallel()
			rec := get(t, srv, tt.target)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
			}
			if got := decodeSummaries(t, rec); len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestRecommendByMovieURLEncodedTitle(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, newTestService(t))

	rec := get(t, srv, "/recommend_by_movie?title=The+Dark%20Knight&k=1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got := decodeSummaries(t, rec); len(got) != 1 || got[0].Title == "The Dark Knight" {
		t.Errorf("got %+v", got)
	}
}

func TestRecommendByGenreHandler(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, newTestService(t))

	rec := get(t, srv, "/recommend_by_genre?genre=action&top_n=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	got := decodeSummaries(t, rec)
	if len(got) != 2 || got[0].Title != "The Dark Knight" || got[1].Title != "Inception" {
		t.Errorf("got %+v", got)
	}
	if got[1].PosterPath != "/inception.jpg" {
		t.Errorf("poster_path = %q", got[1].PosterPath)
	}
}

func TestHandlerErrors(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, newTestService(t))

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantError  string
	}{
		{"unknown movie", "/recommend_by_movie?title=Nonexistent+Movie&k=5", http.StatusNotFound, "Movie not found"},
		{"unknown genre", "/recommend_by_genre?genre=Western", http.StatusNotFound, "Genre not found or no movies in this genre"},
		{"missing title", "/recommend_by_movie?k=5", http.StatusBadRequest, "title is required"},
		{"missing genre", "/recommend_by_genre", http.StatusBadRequest, "genre is required"},
		{"non-integer k", "/recommend_by_movie?title=Heat&k=abc", http.StatusBadRequest, "k must be an integer"},
		{"float k", "/recommend_by_movie?title=Heat&k=2.5", http.StatusBadRequest, "k must be an integer"},
		{"zero k", "/recommend_by_movie?title=Heat&k=0", http.StatusBadRequest, "k must be at least 1"},
		{"negative top_n", "/recommend_by_genre?genre=Drama&top_n=-1", http.StatusBadRequest, "top_n must be at least 1"},
		{"non-integer top_n", "/recommend_by_genre?genre=Drama&top_n=ten", http.StatusBadRequest, "top_n must be an integer"},
		{"unknown path", "/recommend", http.StatusNotFound, "Not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := get(t, srv, tt.target)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if got := decodeError(t, rec); got != tt.wantError {
				t.Errorf("error = %q, want %q", got, tt.wantError)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, newTestService(t))

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/recommend_by_movie?title=Heat", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
	if got := decodeError(t, rec); got != "Method not allowed" {
		t.Errorf("error = %q", got)
	}
}

type failingRecommender struct{ err error }

func (f failingRecommender) RecommendByMovie(context.Context, string, int) ([]models.MovieSummary, error) {
	return nil, f.err
}

func (f failingRecommender) RecommendByGenre(context.Context, string, int) ([]models.MovieSummary, error) {
	return nil, f.err
}

func (f failingRecommender) Catalog() recommend.CatalogInfo { return recommend.CatalogInfo{} }

func TestInternalErrorIsHidden(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, failingRecommender{err: errors.New("index corrupted at row 17")})

	for _, target := range []string{"/recommend_by_movie?title=Heat", "/recommend_by_genre?genre=Drama"} {
		rec := get(t, srv, target)
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("%s: status = %d, want 500", target, rec.Code)
		}
		if got := decodeError(t, rec); got != msgInternalError {
			t.Errorf("%s: error = %q, want %q", target, got, msgInternalError)
		}
	}
}

func TestNotReady(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, nil)

	rec := get(t, srv, "/recommend_by_movie?title=Heat")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("recommend status = %d, want 503", rec.Code)
	}

	rec = get(t, srv, "/health/ready")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("ready status = %d, want 503", rec.Code)
	}
	var status models.ReadyStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatal(err)
	}
	if status.Ready {
		t.Error("ready = true before a recommender is attached")
	}

	if rec := get(t, srv, "/health/live"); rec.Code != http.StatusOK {
		t.Errorf("live status = %d, want 200", rec.Code)
	}
}

func TestHealthReady(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, newTestService(t))

	rec := get(t, srv, "/health/ready")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var status models.ReadyStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatal(err)
	}
	if !status.Ready || status.Movies != 5 || status.Dimensions != 2 || status.Metric != "euclidean" {
		t.Errorf("status = %+v", status)
	}
}

func TestHealthReadyReportsCache(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, newTestService(t))

	get(t, srv, "/recommend_by_movie?title=Heat&k=2")
	get(t, srv, "/recommend_by_movie?title=Heat&k=2")

	rec := get(t, srv, "/health/ready")
	var status models.ReadyStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatal(err)
	}
	if status.Cache == nil {
		t.Fatalf("cache missing from %s", rec.Body.String())
	}
	want := models.CacheStatus{Entries: 1, Hits: 1, Misses: 1, HitRate: 50}
	if *status.Cache != want {
		t.Errorf("cache = %+v, want %+v", *status.Cache, want)
	}
}

func TestHealthLive(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, nil)

	rec := get(t, srv, "/health/live")
	var status models.LiveStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatal(err)
	}
	if !status.Alive || status.Uptime < 0 {
		t.Errorf("status = %+v", status)
	}
}
