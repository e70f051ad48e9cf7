// Cinematch - Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// General API information for the OpenAPI document served at
// /swagger/index.html. The document itself lives in the docs package.
//
// @title Cinematch API
// @version 1.0
// @description Content-based movie recommendations.
// @description
// @description ## Endpoints
// @description
// @description - **/recommend_by_movie**: nearest neighbors of a movie in feature space
// @description - **/recommend_by_genre**: top movies of a genre by composite score
// @description
// @description ## Rate Limiting
// @description
// @description Default rate limit: 100 requests per minute per IP address on the
// @description recommendation endpoints. Health probes and /metrics are exempt.
// @description
// @description ## Error Responses
// @description
// @description All error responses are a single JSON object:
// @description ```json
// @description {"error": "Movie not found"}
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/cinematch/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @BasePath /
// @schemes http https
//
// @tag.name Core
// @tag.description Banner and health probes
//
// @tag.name Recommendations
// @tag.description Movie and genre recommendations
package main
