// Cinematch - Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/tomtom215/cinematch/internal/cache"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/recommend"
)

// Banner is the body of GET /.
const Banner = "🎬 Movie Recommendation System API is running!"

const msgNotReady = "Service is starting, catalog not loaded yet"

// Recommender is the query surface the handlers need.
type Recommender interface {
	RecommendByMovie(ctx context.Context, title string, k int) ([]models.MovieSummary, error)
	RecommendByGenre(ctx context.Context, genre string, topN int) ([]models.MovieSummary, error)
	Catalog() recommend.CatalogInfo
}

// cacheReporter is implemented by recommenders that cache results.
type cacheReporter interface {
	CacheStats() (cache.Stats, bool)
}

type recommenderHolder struct {
	Recommender
}

// Handler implements every route.
type Handler struct {
	limits    Limits
	startTime time.Time
	rec       atomic.Pointer[recommenderHolder]
}

// NewHandler creates a handler with no recommender attached.
func NewHandler(limits Limits) *Handler {
	return &Handler{
		limits:    limits,
		startTime: time.Now(),
	}
}

// SetRecommender attaches the loaded recommender. Requests that arrive
// earlier get 503.
func (h *Handler) SetRecommender(r Recommender) {
	h.rec.Store(&recommenderHolder{r})
}

func (h *Handler) recommender() Recommender {
	if holder := h.rec.Load(); holder != nil {
		return holder.Recommender
	}
	return nil
}

// Index answers the root liveness banner.
//
// @Summary API banner
// @Description Plain-text confirmation that the API is running.
// @Tags Core
// @Produce plain
// @Success 200 {string} string "Banner text"
// @Router / [get]
func (h *Handler) Index(w http.ResponseWriter, _ *http.Request) {
	respondText(w, http.StatusOK, Banner)
}

// RecommendByMovie handles GET /recommend_by_movie.
//
// @Summary Similar movies
// @Description Returns the k movies nearest to the first movie with the given title, nearest first. The movie itself is never included.
// @Tags Recommendations
// @Produce json
// @Param title query string true "Exact movie title"
// @Param k query int false "Number of results" minimum(1) default(10)
// @Success 200 {array} models.MovieSummary "Nearest movies"
// @Failure 400 {object} models.ErrorResponse "Missing title or invalid k"
// @Failure 404 {object} models.ErrorResponse "Movie not found"
// @Failure 429 {object} models.ErrorResponse "Rate limit exceeded"
// @Failure 503 {object} models.ErrorResponse "Catalog not loaded"
// @Router /recommend_by_movie [get]
func (h *Handler) RecommendByMovie(w http.ResponseWriter, r *http.Request) {
	req, err := parseMovieRequest(r, h.limits)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec := h.recommender()
	if rec == nil {
		respondError(w, http.StatusServiceUnavailable, msgNotReady)
		return
	}

	out, err := rec.RecommendByMovie(r.Context(), req.Title, req.K)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, out)
}

// RecommendByGenre handles GET /recommend_by_genre.
//
// @Summary Top movies in a genre
// @Description Returns up to top_n movies whose genres contain the given text (case-insensitive), ranked by an equally weighted score over popularity, revenue, vote average, vote count and budget.
// @Tags Recommendations
// @Produce json
// @Param genre query string true "Genre text to match"
// @Param top_n query int false "Number of results" minimum(1) default(10)
// @Success 200 {array} models.MovieSummary "Ranked movies"
// @Failure 400 {object} models.ErrorResponse "Missing genre or invalid top_n"
// @Failure 404 {object} models.ErrorResponse "Genre not found or no movies in this genre"
// @Failure 429 {object} models.ErrorResponse "Rate limit exceeded"
// @Failure 503 {object} models.ErrorResponse "Catalog not loaded"
// @Router /recommend_by_genre [get]
func (h *Handler) RecommendByGenre(w http.ResponseWriter, r *http.Request) {
	req, err := parseGenreRequest(r, h.limits)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec := h.recommender()
	if rec == nil {
		respondError(w, http.StatusServiceUnavailable, msgNotReady)
		return
	}

	out, err := rec.RecommendByGenre(r.Context(), req.Genre, req.TopN)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, out)
}

// respondServiceError maps recommend errors onto status codes. Unexpected
// errors are logged and hidden behind a generic message.
func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, recommend.ErrMovieNotFound):
		respondError(w, http.StatusNotFound, recommend.ErrMovieNotFound.Error())
	case errors.Is(err, recommend.ErrGenreNotFound):
		respondError(w, http.StatusNotFound, recommend.ErrGenreNotFound.Error())
	case errors.Is(err, recommend.ErrInvalidLimit), errors.Is(err, recommend.ErrInvalidArgument):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// 503 is never seen by a client that hung up; it only shows in metrics.
		respondError(w, http.StatusServiceUnavailable, "Request canceled")
	default:
		logging.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("Recommendation request failed")
		respondError(w, http.StatusInternalServerError, msgInternalError)
	}
}

// HealthLive handles the liveness probe.
//
// @Summary Liveness probe
// @Description Returns 200 while the process is up, whether or not the catalog is loaded.
// @Tags Core
// @Produce json
// @Success 200 {object} models.LiveStatus "Service is alive"
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, models.LiveStatus{
		Alive:  true,
		Uptime: time.Since(h.startTime).Seconds(),
	})
}

// HealthReady returns 200 once a recommender is attached, 503 before.
//
// @Summary Readiness probe
// @Description Returns 200 with catalog size and cache counters once the catalog is loaded, 503 before.
// @Tags Core
// @Produce json
// @Success 200 {object} models.ReadyStatus "Catalog loaded"
// @Failure 503 {object} models.ReadyStatus "Catalog not loaded yet"
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, _ *http.Request) {
	status := models.ReadyStatus{Uptime: time.Since(h.startTime).Seconds()}

	rec := h.recommender()
	if rec == nil {
		respondJSON(w, http.StatusServiceUnavailable, status)
		return
	}

	info := rec.Catalog()
	status.Ready = true
	status.Movies = info.Movies
	status.Dimensions = info.Dimensions
	status.Metric = info.Metric
	if cr, ok := rec.(cacheReporter); ok {
		if stats, enabled := cr.CacheStats(); enabled {
			status.Cache = &models.CacheStatus{
				Entries:   stats.Entries,
				Hits:      stats.Hits,
				Misses:    stats.Misses,
				Evictions: stats.Evictions,
				HitRate:   stats.HitRate(),
			}
		}
	}
	respondJSON(w, http.StatusOK, status)
}

// NotFound answers unknown paths.
func (h *Handler) NotFound(w http.ResponseWriter, _ *http.Request) {
	respondError(w, http.StatusNotFound, "Not found")
}

// MethodNotAllowed answers known paths requested with the wrong method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
}
