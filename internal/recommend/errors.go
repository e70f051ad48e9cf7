// Cinematch - Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import "errors"

var (
	// ErrMovieNotFound is returned when no movie has the requested title.
	ErrMovieNotFound = errors.New("Movie not found") //nolint:stylecheck // message is part of the public API

	// ErrGenreNotFound is returned when no movie matches the requested genre.
	ErrGenreNotFound = errors.New("Genre not found or no movies in this genre") //nolint:stylecheck // message is part of the public API

	// ErrInvalidLimit is returned when k or top_n is out of range.
	ErrInvalidLimit = errors.New("limit out of range")

	// ErrInvalidArgument is returned for an empty title or genre.
	ErrInvalidArgument = errors.New("invalid argument")
)
