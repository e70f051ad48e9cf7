// Cinematch - Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/artifact"
	"github.com/tomtom215/cinematch/internal/cache"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/neighbors"
)

// Endpoint labels used for metrics and cache keys.
const (
	EndpointMovie = "movie"
	EndpointGenre = "genre"
)

// Service answers recommendation queries over a loaded catalog.
type Service struct {
	cfg    Config
	logger zerolog.Logger

	movies   []models.Movie
	features [][]float64
	index    neighbors.Index

	// titles maps a title to its first row id.
	titles map[string]int
	// genres holds each movie's lower-cased genres.
	genres []string

	results *cache.Cache[[]models.MovieSummary]
}

// CatalogInfo describes the loaded catalog.
type CatalogInfo struct {
	Movies     int
	Dimensions int
	Metric     string
}

// NewService builds a service over bundle and idx. The index must have been
// built over bundle.Features.
//
//nolint:gocritic // zerolog.Logger is passed by value by convention
func NewService(bundle *artifact.Bundle, idx neighbors.Index, cfg Config, logger zerolog.Logger) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid recommend config: %w", err)
	}
	if err := bundle.Validate(); err != nil {
		return nil, err
	}
	if idx.Len() != bundle.Len() || idx.Dim() != bundle.Dim() {
		return nil, fmt.Errorf("%w: index covers %d rows of dimension %d, catalog has %d of dimension %d",
			artifact.ErrMisaligned, idx.Len(), idx.Dim(), bundle.Len(), bundle.Dim())
	}

	s := &Service{
		cfg:      cfg,
		logger:   logger,
		movies:   bundle.Movies,
		features: bundle.Features,
		index:    idx,
		titles:   make(map[string]int, bundle.Len()),
		genres:   make([]string, bundle.Len()),
	}
	for i := range s.movies {
		m := &s.movies[i]
		if _, seen := s.titles[m.Title]; !seen {
			s.titles[m.Title] = i
		}
		s.genres[i] = strings.ToLower(m.Genres)
	}
	if cfg.CacheEnabled {
		s.results = cache.New[[]models.MovieSummary]("recommendations", cfg.CacheMaxEntries, cfg.CacheTTL)
	}

	logger.Info().
		Int("movies", len(s.movies)).
		Int("unique_titles", len(s.titles)).
		Str("metric", string(idx.Metric())).
		Bool("cache", cfg.CacheEnabled).
		Msg("Recommendation service ready")
	return s, nil
}

// Catalog returns the size and shape of the loaded catalog.
func (s *Service) Catalog() CatalogInfo {
	return CatalogInfo{
		Movies:     len(s.movies),
		Dimensions: s.index.Dim(),
		Metric:     string(s.index.Metric()),
	}
}

// CacheStats reports result cache counters. ok is false when caching is
// disabled.
func (s *Service) CacheStats() (stats cache.Stats, ok bool) {
	if s.results == nil {
		return cache.Stats{}, false
	}
	return s.results.Stats(), true
}

// RecommendByMovie returns up to k movies closest to the first movie titled
// title, nearest first, never including that movie. k larger than the rest
// of the catalog returns every other movie.
func (s *Service) RecommendByMovie(ctx context.Context, title string, k int) ([]models.MovieSummary, error) {
	start := time.Now()
	out, err := s.cached(EndpointMovie, struct {
		Title string
		K     int
	}{title, k}, func() ([]models.MovieSummary, error) {
		return s.byMovie(ctx, title, k)
	})
	s.record(ctx, EndpointMovie, len(out), start, err)
	return out, err
}

func (s *Service) byMovie(ctx context.Context, title string, k int) ([]models.MovieSummary, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidArgument)
	}
	if k < 1 {
		return nil, fmt.Errorf("%w: k must be at least 1", ErrInvalidLimit)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	self, ok := s.titles[title]
	if !ok {
		return nil, ErrMovieNotFound
	}

	k = clampLimit(k, s.cfg.MaxK)
	if k > len(s.movies)-1 {
		k = len(s.movies) - 1
	}
	if k == 0 {
		return []models.MovieSummary{}, nil
	}

	queryStart := time.Now()
	hits, err := s.index.Query(s.features[self], k+1)
	metrics.RecordIndexQuery(string(s.index.Metric()), time.Since(queryStart))
	if err != nil {
		return nil, fmt.Errorf("neighbor query failed: %w", err)
	}

	out := make([]models.MovieSummary, 0, k)
	for _, h := range hits {
		if h.ID == self {
			continue
		}
		if len(out) == k {
			break
		}
		out = append(out, s.movies[h.ID].Summary())
	}
	return out, nil
}

// RecommendByGenre returns up to topN movies whose genres contain genre,
// ranked by composite score.
func (s *Service) RecommendByGenre(ctx context.Context, genre string, topN int) ([]models.MovieSummary, error) {
	start := time.Now()
	out, err := s.cached(EndpointGenre, struct {
		Genre string
		TopN  int
	}{strings.ToLower(genre), topN}, func() ([]models.MovieSummary, error) {
		return s.byGenre(ctx, genre, topN)
	})
	s.record(ctx, EndpointGenre, len(out), start, err)
	return out, err
}

func (s *Service) byGenre(ctx context.Context, genre string, topN int) ([]models.MovieSummary, error) {
	if genre == "" {
		return nil, fmt.Errorf("%w: genre is required", ErrInvalidArgument)
	}
	if topN < 1 {
		return nil, fmt.Errorf("%w: top_n must be at least 1", ErrInvalidLimit)
	}
	topN = clampLimit(topN, s.cfg.MaxTopN)

	needle := strings.ToLower(genre)
	var matched []*models.Movie
	for i := range s.movies {
		if s.genres[i] != "" && strings.Contains(s.genres[i], needle) {
			matched = append(matched, &s.movies[i])
		}
	}
	if len(matched) == 0 {
		return nil, ErrGenreNotFound
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	order := RankByScore(CompositeScores(matched, s.cfg.Weights, s.cfg.Epsilon))
	if len(order) > topN {
		order = order[:topN]
	}

	out := make([]models.MovieSummary, len(order))
	for i, pos := range order {
		out[i] = matched[pos].Summary()
	}
	return out, nil
}

// cached serves compute through the result cache when it is enabled. Only
// successful results are stored; callers receive their own copy.
func (s *Service) cached(endpoint string, params any, compute func() ([]models.MovieSummary, error)) ([]models.MovieSummary, error) {
	if s.results == nil {
		return compute()
	}

	key := cache.GenerateKey(endpoint, params)
	if hit, ok := s.results.Get(key); ok {
		return append([]models.MovieSummary(nil), hit...), nil
	}

	out, err := compute()
	if err != nil {
		return nil, err
	}
	s.results.Set(key, append([]models.MovieSummary(nil), out...))
	return out, nil
}

func (s *Service) record(ctx context.Context, endpoint string, n int, start time.Time, err error) {
	elapsed := time.Since(start)
	outcome := outcomeOf(err)
	metrics.RecordRecommendation(endpoint, outcome, n, elapsed)

	if outcome == metrics.OutcomeError {
		logging.Ctx(ctx).Error().Err(err).Str("endpoint", endpoint).Msg("Recommendation failed")
		return
	}
	logging.Ctx(ctx).Debug().
		Str("endpoint", endpoint).
		Str("outcome", outcome).
		Int("results", n).
		Dur("elapsed", elapsed).
		Msg("Recommendation served")
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, ErrMovieNotFound), errors.Is(err, ErrGenreNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, ErrInvalidLimit), errors.Is(err, ErrInvalidArgument):
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeError
	}
}

// clampLimit caps n at limit. A zero limit leaves n unchanged.
func clampLimit(n, limit int) int {
	if limit > 0 && n > limit {
		return limit
	}
	return n
}
