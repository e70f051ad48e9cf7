// Cinematch - Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package middleware provides the HTTP middleware shared by every route.

  - RequestID: accepts or generates X-Request-ID and seeds the logging context
  - AccessLog: one structured log line per request
  - PrometheusMetrics: request counters, latency histograms and in-flight gauge

All three use the http.HandlerFunc form; the api package adapts them to
chi's func(http.Handler) http.Handler. Order matters: RequestID must run
first so the other two can read the request id from the context.
*/
package middleware
