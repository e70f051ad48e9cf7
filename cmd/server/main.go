// Cinematch - Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package main is the entry point for the Cinematch recommendation server.
//
// Startup order:
//
//  1. Configuration: defaults, optional config.yaml, environment (Koanf v2)
//  2. Logging: zerolog global logger
//  3. Supervisor tree: the HTTP server and the catalog loader start together
//  4. Catalog: dataset and feature matrix load through DuckDB or JSON, the
//     neighbor index is built and the handler starts serving recommendations
//
// A catalog that fails to load stops the process with a non-zero exit code.
// Until it is loaded /health/ready answers 503.
//
// # Example Usage
//
//	export DATASET_PATH=/data/movies.csv
//	export FEATURES_PATH=/data/features.parquet
//	export HTTP_PORT=5000
//	./cinematch
//
//	curl 'http://localhost:5000/recommend_by_movie?title=Inception&k=5'
//	curl 'http://localhost:5000/recommend_by_genre?genre=Action&top_n=10'
//
// # Signal Handling
//
// SIGINT and SIGTERM stop accepting connections and wait up to
// SHUTDOWN_TIMEOUT for in-flight requests.
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	_ "github.com/tomtom215/cinematch/docs" // registers the swagger document
	"github.com/tomtom215/cinematch/internal/api"
	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/supervisor"
	"github.com/tomtom215/cinematch/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("dataset", cfg.Artifacts.DatasetPath).
		Str("features", cfg.Artifacts.FeaturesPath).
		Str("format", cfg.Artifacts.Format).
		Str("metric", cfg.Index.Metric).
		Bool("cache", cfg.Cache.Enabled).
		Msg("Configuration loaded")

	if cfg.IsProduction() && cfg.HasWildcardCORS() {
		logging.Warn().Msg("CORS allows any origin in production (CORS_ORIGINS=*)")
	}

	handler := api.NewHandler(api.Limits{
		DefaultK:    cfg.Recommend.DefaultK,
		DefaultTopN: cfg.Recommend.DefaultTopN,
	})
	router := api.NewRouter(handler, api.RouterConfig{
		Middleware:     api.ChiMiddlewareConfigFrom(&cfg.Security),
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsPath:    cfg.Metrics.Path,
	})

	server := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           router.Setup(),
		ReadHeaderTimeout: cfg.Server.Timeout,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loadFailed := make(chan error, 1)
	tree.AddCatalogService(services.NewCatalogService(
		catalogLoader(cfg, handler),
		func(err error) {
			loadFailed <- err
			cancel()
		},
		logging.Logger(),
	))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logging.Logger()))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigCh:
			logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	select {
	case err := <-loadFailed:
		logging.Fatal().Err(err).Msg("Failed to load catalog")
	default:
	}

	logging.Info().Msg("Server stopped")
}
