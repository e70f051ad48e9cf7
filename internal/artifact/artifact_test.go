// Cinematch - Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package artifact

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/models"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestBundleValidate(t *testing.T) {
	t.Parallel()

	movie := func(id int) models.Movie { return models.Movie{ID: id, Title: "m"} }

	tests := []struct {
		name    string
		bundle  Bundle
		wantErr error
	}{
		{
			name:   "aligned",
			bundle: Bundle{Movies: []models.Movie{movie(0), movie(1)}, Features: [][]float64{{1, 2}, {3, 4}}},
		},
		{
			name:    "empty",
			bundle:  Bundle{},
			wantErr: ErrEmptyDataset,
		},
		{
			name:    "row count mismatch",
			bundle:  Bundle{Movies: []models.Movie{movie(0), movie(1)}, Features: [][]float64{{1, 2}}},
			wantErr: ErrMisaligned,
		},
		{
			name:    "ragged rows",
			bundle:  Bundle{Movies: []models.Movie{movie(0), movie(1)}, Features: [][]float64{{1, 2}, {3}}},
			wantErr: ErrMisaligned,
		},
		{
			name:    "zero dimension",
			bundle:  Bundle{Movies: []models.Movie{movie(0)}, Features: [][]float64{{}}},
			wantErr: ErrMisaligned,
		},
		{
			name:    "wrong id",
			bundle:  Bundle{Movies: []models.Movie{movie(0), movie(5)}, Features: [][]float64{{1}, {2}}},
			wantErr: ErrMisaligned,
		},
		{
			name:    "nan feature",
			bundle:  Bundle{Movies: []models.Movie{movie(0)}, Features: [][]float64{{math.NaN()}}},
			wantErr: ErrMisaligned,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.bundle.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestStaticSourceAssignsIDsAndCopies(t *testing.T) {
	t.Parallel()

	src := &StaticSource{
		Movies:   []models.Movie{{ID: 9, Title: "A"}, {ID: 3, Title: "B"}},
		Features: [][]float64{{1, 0}, {0, 1}},
	}

	b, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if b.Movies[0].ID != 0 || b.Movies[1].ID != 1 {
		t.Errorf("ids = %d,%d, want 0,1", b.Movies[0].ID, b.Movies[1].ID)
	}

	src.Features[0][0] = 99
	if b.Features[0][0] != 1 {
		t.Error("bundle shares feature storage with its source")
	}
	if b.Dim() != 2 || b.Len() != 2 {
		t.Errorf("Len/Dim = %d/%d, want 2/2", b.Len(), b.Dim())
	}
}

func TestStaticSourceCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &StaticSource{Movies: []models.Movie{{Title: "A"}}, Features: [][]float64{{1}}}
	if _, err := src.Load(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestJSONSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	dataset := writeFile(t, dir, "movies.json", `[
		{"title": "Heat", "overview": "Cops and robbers.", "poster_path": "/heat.jpg", "tagline": null,
		 "genres": "Action, Crime", "popularity": 17.9, "revenue": 187436818, "vote_average": 7.7,
		 "vote_count": 1886, "budget": 60000000},
		{"title": "Toy Story", "genres": null, "popularity": null}
	]`)
	features := writeFile(t, dir, "features.json", `[[0.1, 0.2, 0.3], [1.0, -1.0, 0.5]]`)

	b, err := (&JSONSource{DatasetPath: dataset, FeaturesPath: features}).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if b.Len() != 2 || b.Dim() != 3 {
		t.Fatalf("Len/Dim = %d/%d, want 2/3", b.Len(), b.Dim())
	}
	heat := b.Movies[0]
	if heat.Title != "Heat" || heat.PosterPath != "/heat.jpg" || heat.Tagline != "" {
		t.Errorf("unexpected first movie: %+v", heat)
	}
	if heat.Budget != 60000000 || heat.VoteCount != 1886 {
		t.Errorf("numeric fields not decoded: %+v", heat)
	}

	toy := b.Movies[1]
	if toy.ID != 1 || toy.Genres != "" {
		t.Errorf("second movie: id=%d genres=%q", toy.ID, toy.Genres)
	}
	if !math.IsNaN(toy.Popularity) || !math.IsNaN(toy.Budget) {
		t.Errorf("null or absent numbers should be NaN, got popularity=%v budget=%v", toy.Popularity, toy.Budget)
	}
}

func TestJSONSourceMisaligned(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	dataset := writeFile(t, dir, "movies.json", `[{"title": "A"}, {"title": "B"}]`)
	features := writeFile(t, dir, "features.json", `[[1, 2]]`)

	_, err := (&JSONSource{DatasetPath: dataset, FeaturesPath: features}).Load(context.Background())
	if !errors.Is(err, ErrMisaligned) {
		t.Errorf("Load() error = %v, want ErrMisaligned", err)
	}
}

func TestJSONSourceMissingFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := &JSONSource{DatasetPath: filepath.Join(dir, "nope.json"), FeaturesPath: filepath.Join(dir, "nope2.json")}
	if _, err := src.Load(context.Background()); err == nil {
		t.Error("expected error for missing dataset file")
	}
}

func TestResolveFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format, path, want string
		wantErr            bool
	}{
		{"auto", "/data/movies.csv", FormatCSV, false},
		{"auto", "/data/movies.PARQUET", FormatParquet, false},
		{"auto", "/data/movies.pq", FormatParquet, false},
		{"", "movies.json", FormatJSON, false},
		{"csv", "movies.txt", FormatCSV, false},
		{"auto", "movies.pkl", "", true},
		{"pickle", "movies.pkl", "", true},
	}

	for _, tt := range tests {
		got, err := resolveFormat(tt.format, tt.path)
		if tt.wantErr {
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("resolveFormat(%q, %q) error = %v, want ErrUnsupportedFormat", tt.format, tt.path, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("resolveFormat(%q, %q) = %q, %v; want %q", tt.format, tt.path, got, err, tt.want)
		}
	}
}

func TestNewSource(t *testing.T) {
	t.Parallel()

	src, err := NewSource(&config.ArtifactsConfig{Format: "auto", DatasetPath: "m.json", FeaturesPath: "f.json"})
	if err != nil {
		t.Fatalf("NewSource() error = %v", err)
	}
	if _, ok := src.(*JSONSource); !ok {
		t.Errorf("json pair should use JSONSource, got %T", src)
	}

	src, err = NewSource(&config.ArtifactsConfig{Format: "auto", DatasetPath: "m.csv", FeaturesPath: "f.parquet"})
	if err != nil {
		t.Fatalf("NewSource() error = %v", err)
	}
	db, ok := src.(*DuckDBSource)
	if !ok {
		t.Fatalf("mixed formats should use DuckDBSource, got %T", src)
	}
	if db.DatasetFormat != FormatCSV || db.FeaturesFormat != FormatParquet {
		t.Errorf("formats = %s/%s, want csv/parquet", db.DatasetFormat, db.FeaturesFormat)
	}

	if _, err := NewSource(&config.ArtifactsConfig{Format: "auto", DatasetPath: "m.pkl", FeaturesPath: "f.json"}); err == nil {
		t.Error("expected error for unknown extension")
	}
}

func TestLoadWrapsSourceError(t *testing.T) {
	t.Parallel()

	_, err := Load(context.Background(), &StaticSource{}, time.Second)
	if !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("Load() error = %v, want ErrEmptyDataset", err)
	}
}
