// Cinematch - Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package api serves the recommendation endpoints over HTTP using the chi router.

Routes:

	GET /                     plain-text liveness banner
	GET /recommend_by_movie   ?title=<exact title>&k=<int>
	GET /recommend_by_genre   ?genre=<substring>&top_n=<int>
	GET /health/live          liveness probe
	GET /health/ready         readiness probe, 503 until the catalog is loaded
	GET /metrics              Prometheus exposition (configurable path)

Successful recommendation responses are a bare JSON array of
{title, overview, poster_path, tagline} objects. Every error is a JSON object
with a single "error" key.

The Handler starts without a catalog. cmd/server attaches the recommender
with SetRecommender once artifacts are loaded, so probes answer while
loading is still in progress.
*/
package api
