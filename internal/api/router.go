// Cinematch - Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/cinematch/internal/middleware"
)

// RouterConfig selects optional routes and middleware.
type RouterConfig struct {
	Middleware     *ChiMiddlewareConfig
	MetricsEnabled bool
	MetricsPath    string
}

// Router wires the handler into a chi mux.
type Router struct {
	handler       *Handler
	cfg           RouterConfig
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router for handler.
func NewRouter(handler *Handler, cfg RouterConfig) *Router {
	if cfg.MetricsPath == "" {
		cfg.MetricsPath = "/metrics"
	}
	return &Router{
		handler:       handler,
		cfg:           cfg,
		chiMiddleware: NewChiMiddleware(cfg.Middleware),
	}
}

// chiMiddleware adapts http.HandlerFunc middleware to chi's r.Use form.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// Setup builds the HTTP handler with every route.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(router.chiMiddleware.RealIP())
	r.Use(chiMiddleware(middleware.AccessLog))
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())

	r.NotFound(router.handler.NotFound)
	r.MethodNotAllowed(router.handler.MethodNotAllowed)

	// Probes, scraping and API docs are exempt from the rate limit. The
	// swagger document is registered by importing the docs package.
	r.Group(func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Get("/health/live", router.handler.HealthLive)
		r.Get("/health/ready", router.handler.HealthReady)
		if router.cfg.MetricsEnabled {
			r.Handle(router.cfg.MetricsPath, promhttp.Handler())
		}
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
			httpSwagger.DeepLinking(true),
			httpSwagger.DocExpansion("list"),
			httpSwagger.DomID("swagger-ui"),
		))
	})

	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Use(chimiddleware.Compress(5, "application/json"))

		r.Get("/", router.handler.Index)
		r.Get("/recommend_by_movie", router.handler.RecommendByMovie)
		r.Get("/recommend_by_genre", router.handler.RecommendByGenre)
	})

	return r
}
