// Cinematch - Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package models

import (
	"math"
	"testing"

	"github.com/goccy/go-json"
)

func TestMovieSummary(t *testing.T) {
	t.Parallel()

	m := Movie{
		ID:         7,
		Title:      "Inception",
		Overview:   "Dreams within dreams.",
		PosterPath: "/inception.jpg",
		Tagline:    "Your mind is the scene of the crime.",
		Genres:     "Action, Science Fiction",
		Budget:     160e6,
	}

	data, err := json.Marshal(m.Summary())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	want := `{"title":"Inception","overview":"Dreams within dreams.","poster_path":"/inception.jpg","tagline":"Your mind is the scene of the crime."}`
	if string(data) != want {
		t.Errorf("summary JSON = %s, want %s", data, want)
	}
}

func TestMissingNumber(t *testing.T) {
	t.Parallel()

	if !math.IsNaN(MissingNumber()) {
		t.Error("MissingNumber should be NaN")
	}
}
