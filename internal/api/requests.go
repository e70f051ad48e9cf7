// Cinematch - Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/tomtom215/cinematch/internal/validation"
)

// movieRequest holds the parsed /recommend_by_movie parameters.
type movieRequest struct {
	Title string `query:"title" validate:"required"`
	K     int    `query:"k" validate:"min=1"`
}

// genreRequest holds the parsed /recommend_by_genre parameters.
type genreRequest struct {
	Genre string `query:"genre" validate:"required"`
	TopN  int    `query:"top_n" validate:"min=1"`
}

// Limits holds the defaults for absent integer query parameters. Upper
// bounds are applied by the recommender, which clamps instead of rejecting.
type Limits struct {
	DefaultK    int
	DefaultTopN int
}

func parseMovieRequest(r *http.Request, lim Limits) (movieRequest, error) {
	q := r.URL.Query()
	k, err := intParam(q.Get("k"), "k", lim.DefaultK)
	if err != nil {
		return movieRequest{}, err
	}
	req := movieRequest{Title: q.Get("title"), K: k}
	if err := validateRequest(&req); err != nil {
		return movieRequest{}, err
	}
	return req, nil
}

func parseGenreRequest(r *http.Request, lim Limits) (genreRequest, error) {
	q := r.URL.Query()
	topN, err := intParam(q.Get("top_n"), "top_n", lim.DefaultTopN)
	if err != nil {
		return genreRequest{}, err
	}
	req := genreRequest{Genre: q.Get("genre"), TopN: topN}
	if err := validateRequest(&req); err != nil {
		return genreRequest{}, err
	}
	return req, nil
}

// intParam parses an optional integer parameter. An absent parameter yields
// def; anything that is not a base-10 integer is an error.
func intParam(raw, name string, def int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return n, nil
}

func validateRequest(req any) error {
	if err := validation.ValidateStruct(req); err != nil {
		return err
	}
	return nil
}
