// Cinematch - Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package artifact

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinematch/internal/models"
)

// JSONSource reads a dataset file holding an array of movie objects and a
// features file holding an array of numeric arrays.
//
//	[{"title": "Heat", "genres": "Action, Crime", "budget": 60000000, ...}, ...]
//	[[0.12, -1.3, ...], ...]
//
// Null or absent text fields become "", null or absent numbers become NaN.
type JSONSource struct {
	DatasetPath  string
	FeaturesPath string
}

func (s *JSONSource) Name() string { return "json" }

// jsonMovie distinguishes null from zero.
type jsonMovie struct {
	Title       *string  `json:"title"`
	Overview    *string  `json:"overview"`
	PosterPath  *string  `json:"poster_path"`
	Tagline     *string  `json:"tagline"`
	Genres      *string  `json:"genres"`
	Popularity  *float64 `json:"popularity"`
	Revenue     *float64 `json:"revenue"`
	VoteAverage *float64 `json:"vote_average"`
	VoteCount   *float64 `json:"vote_count"`
	Budget      *float64 `json:"budget"`
}

func (s *JSONSource) Load(ctx context.Context) (*Bundle, error) {
	var raw []jsonMovie
	if err := decodeFile(s.DatasetPath, &raw); err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var features [][]float64
	if err := decodeFile(s.FeaturesPath, &features); err != nil {
		return nil, fmt.Errorf("failed to read features: %w", err)
	}

	b := &Bundle{Movies: make([]models.Movie, len(raw)), Features: features}
	for i := range raw {
		r := &raw[i]
		b.Movies[i] = models.Movie{
			ID:          i,
			Title:       str(r.Title),
			Overview:    str(r.Overview),
			PosterPath:  str(r.PosterPath),
			Tagline:     str(r.Tagline),
			Genres:      str(r.Genres),
			Popularity:  num(r.Popularity),
			Revenue:     num(r.Revenue),
			VoteAverage: num(r.VoteAverage),
			VoteCount:   num(r.VoteCount),
			Budget:      num(r.Budget),
		}
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func decodeFile(path string, v any) error {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := json.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func num(p *float64) float64 {
	if p == nil {
		return models.MissingNumber()
	}
	return *p
}
