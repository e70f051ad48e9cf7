// Cinematch - Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package models

// ErrorResponse is the body of every non-2xx JSON response.
//
//	{"error": "Movie not found"}
type ErrorResponse struct {
	Error string `json:"error"`
}

// LiveStatus is returned by the liveness probe.
type LiveStatus struct {
	Alive  bool    `json:"alive"`
	Uptime float64 `json:"uptime"`
}

// ReadyStatus is returned by the readiness probe.
type ReadyStatus struct {
	Ready      bool    `json:"ready"`
	Movies     int     `json:"movies"`
	Dimensions int     `json:"dimensions"`
	Metric     string  `json:"metric"`
	Uptime     float64 `json:"uptime"`

	// Cache is nil when result caching is disabled.
	Cache *CacheStatus `json:"cache,omitempty"`
}

// CacheStatus reports result cache effectiveness.
type CacheStatus struct {
	Entries   int     `json:"entries"`
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	Evictions int64   `json:"evictions"`
	HitRate   float64 `json:"hit_rate"`
}
