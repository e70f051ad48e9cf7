// Cinematch - Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

// CatalogLoadFunc loads the catalog and makes it available to requests.
type CatalogLoadFunc func(ctx context.Context) error

// CatalogService runs the catalog load once under supervision. The catalog
// is read-only after loading, so the service exits for good afterwards.
type CatalogService struct {
	load      CatalogLoadFunc
	onFailure func(error)
	logger    zerolog.Logger
	name      string
}

// NewCatalogService creates the service. onFailure receives the load error;
// the server cannot serve recommendations without a catalog, so callers
// typically stop the process from it.
//
//nolint:gocritic // zerolog.Logger is passed by value by convention
func NewCatalogService(load CatalogLoadFunc, onFailure func(error), logger zerolog.Logger) *CatalogService {
	return &CatalogService{
		load:      load,
		onFailure: onFailure,
		logger:    logger.With().Str("service", "catalog").Logger(),
		name:      "catalog-loader",
	}
}

// Serve implements suture.Service. It always returns suture.ErrDoNotRestart
// unless the tree is shutting down.
func (s *CatalogService) Serve(ctx context.Context) error {
	start := time.Now()
	s.logger.Info().Msg("Loading catalog")

	if err := s.load(ctx); err != nil {
		if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			return ctx.Err()
		}
		s.logger.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("Catalog load failed")
		if s.onFailure != nil {
			s.onFailure(err)
		}
		return suture.ErrDoNotRestart
	}

	s.logger.Info().Dur("elapsed", time.Since(start)).Msg("Catalog ready")
	return suture.ErrDoNotRestart
}

func (s *CatalogService) String() string {
	return s.name
}
