// Cinematch - Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package main

import (
	"context"
	"fmt"

	"github.com/tomtom215/cinematch/internal/api"
	"github.com/tomtom215/cinematch/internal/artifact"
	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/neighbors"
	"github.com/tomtom215/cinematch/internal/recommend"
)

// buildRecommender loads the configured artifacts and builds the index and
// query service over them.
func buildRecommender(ctx context.Context, cfg *config.Config) (*recommend.Service, error) {
	src, err := artifact.NewSource(&cfg.Artifacts)
	if err != nil {
		return nil, err
	}

	bundle, err := artifact.Load(ctx, src, cfg.Artifacts.LoadTimeout)
	if err != nil {
		return nil, err
	}

	metric, err := neighbors.ParseMetric(cfg.Index.Metric)
	if err != nil {
		return nil, err
	}
	idx, err := neighbors.NewBruteForce(bundle.Features, metric)
	if err != nil {
		return nil, fmt.Errorf("build neighbor index: %w", err)
	}

	return recommend.NewService(
		bundle,
		idx,
		recommend.ConfigFrom(&cfg.Recommend, &cfg.Cache),
		logging.WithComponent("recommend"),
	)
}

// catalogLoader returns the load function run by the catalog service. The
// handler starts answering recommendation requests once it succeeds.
func catalogLoader(cfg *config.Config, handler *api.Handler) func(context.Context) error {
	return func(ctx context.Context) error {
		svc, err := buildRecommender(ctx, cfg)
		if err != nil {
			return err
		}
		handler.SetRecommender(svc)
		return nil
	}
}
