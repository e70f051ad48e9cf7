// Cinematch - Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package recommend answers the two catalog queries served by the API.
//
// # Similar movies
//
// RecommendByMovie looks up the first movie whose title matches exactly,
// asks the neighbor index for k+1 nearest feature vectors and drops the
// query movie itself. The query row is removed by id wherever it appears in
// the result, so duplicate feature vectors cannot push another movie out in
// its place.
//
// # Genre ranking
//
// RecommendByGenre keeps the movies whose genres contain the requested text
// (case-insensitive), min-max normalizes popularity, revenue, vote_average,
// vote_count and budget over that subset only, and ranks by the weighted sum
// of the normalized columns. Bounds are recomputed for every request; the
// ranking functions in scoring.go are pure.
//
// # Concurrency
//
// A Service is immutable after NewService returns. The optional result
// cache is the only shared mutable state and carries its own lock.
package recommend
