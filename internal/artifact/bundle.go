// Cinematch - Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package artifact loads the movie catalog and its feature matrix.
//
// Every Source returns a validated Bundle: one movie per feature row, row i
// of Features belonging to Movies[i], and every feature row of the same
// dimension. The bundle is read-only once returned.
package artifact

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/tomtom215/cinematch/internal/models"
)

var (
	// ErrEmptyDataset is returned when the dataset has no rows.
	ErrEmptyDataset = errors.New("dataset is empty")

	// ErrMisaligned is returned when movies and feature rows do not line up.
	ErrMisaligned = errors.New("dataset and feature matrix are misaligned")

	// ErrUnsupportedFormat is returned for an unknown artifact format.
	ErrUnsupportedFormat = errors.New("unsupported artifact format")
)

// Bundle is the in-memory catalog.
type Bundle struct {
	Movies   []models.Movie
	Features [][]float64
}

// Source produces a Bundle.
type Source interface {
	Load(ctx context.Context) (*Bundle, error)
	Name() string
}

// Len returns the number of movies.
func (b *Bundle) Len() int {
	return len(b.Movies)
}

// Dim returns the feature dimension, or 0 for an empty bundle.
func (b *Bundle) Dim() int {
	if len(b.Features) == 0 {
		return 0
	}
	return len(b.Features[0])
}

// Validate checks the alignment invariants.
func (b *Bundle) Validate() error {
	if len(b.Movies) == 0 {
		return ErrEmptyDataset
	}
	if len(b.Features) != len(b.Movies) {
		return fmt.Errorf("%w: %d movies but %d feature rows", ErrMisaligned, len(b.Movies), len(b.Features))
	}

	dim := len(b.Features[0])
	if dim == 0 {
		return fmt.Errorf("%w: feature rows are empty", ErrMisaligned)
	}

	for i := range b.Movies {
		if b.Movies[i].ID != i {
			return fmt.Errorf("%w: movie at row %d has id %d", ErrMisaligned, i, b.Movies[i].ID)
		}
		row := b.Features[i]
		if len(row) != dim {
			return fmt.Errorf("%w: feature row %d has %d values, want %d", ErrMisaligned, i, len(row), dim)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: feature row %d column %d is not finite", ErrMisaligned, i, j)
			}
		}
	}
	return nil
}

// StaticSource serves a bundle that is already in memory. Tests use it as a
// fixture; IDs are assigned from row order before validation.
type StaticSource struct {
	Movies   []models.Movie
	Features [][]float64
}

func (s *StaticSource) Name() string { return "static" }

func (s *StaticSource) Load(ctx context.Context) (*Bundle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b := &Bundle{
		Movies:   make([]models.Movie, len(s.Movies)),
		Features: make([][]float64, len(s.Features)),
	}
	copy(b.Movies, s.Movies)
	for i := range b.Movies {
		b.Movies[i].ID = i
	}
	for i, row := range s.Features {
		b.Features[i] = append([]float64(nil), row...)
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}
