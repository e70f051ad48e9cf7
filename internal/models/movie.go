// Cinematch - Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package models

import "math"

// Movie is one row of the catalog. ID is the zero-based row position and
// matches the row of the movie's feature vector.
//
// Text fields missing from the source are "". Numeric fields missing from the
// source are NaN; genre ranking skips them when computing column bounds.
type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	Tagline     string  `json:"tagline"`
	Genres      string  `json:"genres"`
	Popularity  float64 `json:"popularity"`
	Revenue     float64 `json:"revenue"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   float64 `json:"vote_count"`
	Budget      float64 `json:"budget"`
}

// MovieSummary is the public projection returned by both recommendation
// endpoints.
type MovieSummary struct {
	Title      string `json:"title"`
	Overview   string `json:"overview"`
	PosterPath string `json:"poster_path"`
	Tagline    string `json:"tagline"`
}

// Summary projects the movie to its public fields.
func (m *Movie) Summary() MovieSummary {
	return MovieSummary{
		Title:      m.Title,
		Overview:   m.Overview,
		PosterPath: m.PosterPath,
		Tagline:    m.Tagline,
	}
}

// MissingNumber marks an absent numeric attribute.
func MissingNumber() float64 {
	return math.NaN()
}
