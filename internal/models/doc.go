// Cinematch - Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package models defines the data structures shared across Cinematch.

Catalog Models:
  - Movie: one catalog row with display fields, genres and ranking columns
  - MovieSummary: the public projection returned by recommendation endpoints

Response Models:
  - ErrorResponse: the {"error": "..."} body used for every failure
  - LiveStatus, ReadyStatus, CacheStatus: health probe bodies

Numeric columns missing from an artifact are stored as NaN. Use
MissingNumber to test for them rather than comparing directly.
*/
package models
