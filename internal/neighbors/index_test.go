// Cinematch - Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package neighbors

import (
	"errors"
	"math"
	"math/rand"
	"sort"
	"testing"
)

func ids(ns []Neighbor) []int {
	out := make([]int, len(ns))
	for i, n := range ns {
		out[i] = n.ID
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

var line = [][]float64{{0}, {1}, {3}, {6}, {10}}

func TestParseMetric(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"euclidean", "Manhattan", " COSINE "} {
		if _, err := ParseMetric(s); err != nil {
			t.Errorf("ParseMetric(%q) error = %v", s, err)
		}
	}
	if _, err := ParseMetric("hamming"); !errors.Is(err, ErrUnknownMetric) {
		t.Errorf("ParseMetric(hamming) error = %v, want ErrUnknownMetric", err)
	}
}

func TestNewBruteForceErrors(t *testing.T) {
	t.Parallel()

	if _, err := NewBruteForce(nil, Euclidean); !errors.Is(err, ErrEmptyIndex) {
		t.Errorf("empty rows error = %v, want ErrEmptyIndex", err)
	}
	if _, err := NewBruteForce([][]float64{{1, 2}, {3}}, Euclidean); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("ragged rows error = %v, want ErrDimensionMismatch", err)
	}
	if _, err := NewBruteForce(line, Metric("chebyshev")); !errors.Is(err, ErrUnknownMetric) {
		t.Errorf("bad metric error = %v, want ErrUnknownMetric", err)
	}
}

func TestQueryEuclidean(t *testing.T) {
	t.Parallel()

	idx, err := NewBruteForce(line, Euclidean)
	if err != nil {
		t.Fatal(err)
	}

	got, err := idx.Query([]float64{3}, 3)
	if err != nil {
		t.Fatal(err)
	}

	// rows 0 and 3 are both at distance 3; the lower id wins.
	if want := []int{2, 1, 0}; !equalInts(ids(got), want) {
		t.Errorf("ids = %v, want %v", ids(got), want)
	}
	if got[0].Distance != 0 {
		t.Errorf("self distance = %v, want 0", got[0].Distance)
	}
	if got[1].Distance != 2 || got[2].Distance != 3 {
		t.Errorf("distances = %v, %v; want 2, 3", got[1].Distance, got[2].Distance)
	}
}

func TestQueryTiesBreakByID(t *testing.T) {
	t.Parallel()

	rows := [][]float64{{5, 5}, {1, 0}, {0, 1}, {-1, 0}, {0, -1}}
	idx, err := NewBruteForce(rows, Euclidean)
	if err != nil {
		t.Fatal(err)
	}

	got, err := idx.Query([]float64{0, 0}, 3)
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{1, 2, 3}; !equalInts(ids(got), want) {
		t.Errorf("ids = %v, want %v", ids(got), want)
	}
}

func TestQueryClampsK(t *testing.T) {
	t.Parallel()

	idx, _ := NewBruteForce(line, Manhattan)
	got, err := idx.Query([]float64{0}, 50)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(line) {
		t.Errorf("len = %d, want %d", len(got), len(line))
	}
}

func TestQueryErrors(t *testing.T) {
	t.Parallel()

	idx, _ := NewBruteForce(line, Euclidean)
	if _, err := idx.Query([]float64{0}, 0); !errors.Is(err, ErrInvalidK) {
		t.Errorf("k=0 error = %v, want ErrInvalidK", err)
	}
	if _, err := idx.Query([]float64{0, 1}, 1); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("dimension error = %v, want ErrDimensionMismatch", err)
	}
}

func TestQueryCosine(t *testing.T) {
	t.Parallel()

	rows := [][]float64{{1, 0}, {10, 1}, {0, 1}, {-1, 0}, {0, 0}}
	idx, err := NewBruteForce(rows, Cosine)
	if err != nil {
		t.Fatal(err)
	}

	got, err := idx.Query([]float64{2, 0}, 5)
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{0, 1, 2, 4, 3}; !equalInts(ids(got), want) {
		t.Errorf("ids = %v, want %v", ids(got), want)
	}
	if math.Abs(got[0].Distance) > 1e-12 {
		t.Errorf("parallel vector distance = %v, want 0", got[0].Distance)
	}
	if math.Abs(got[4].Distance-2) > 1e-12 {
		t.Errorf("opposite vector distance = %v, want 2", got[4].Distance)
	}
}

func TestQueryMatchesFullSort(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	rows := make([][]float64, 300)
	for i := range rows {
		rows[i] = []float64{rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()}
	}

	for _, metric := range []Metric{Euclidean, Manhattan, Cosine} {
		idx, err := NewBruteForce(rows, metric)
		if err != nil {
			t.Fatal(err)
		}
		q := rows[17]
		got, err := idx.Query(q, 11)
		if err != nil {
			t.Fatal(err)
		}

		all, _ := idx.Query(q, len(rows))
		sorted := append([]Neighbor(nil), all...)
		sort.SliceStable(sorted, func(i, j int) bool { return closer(sorted[i], sorted[j]) })

		if !equalInts(ids(got), ids(sorted[:11])) {
			t.Errorf("%s: bounded query %v differs from full sort %v", metric, ids(got), ids(sorted[:11]))
		}
		for i := 1; i < len(got); i++ {
			if got[i].Distance < got[i-1].Distance {
				t.Errorf("%s: distances not non-decreasing at %d", metric, i)
			}
		}
	}
}

func BenchmarkBruteForceQuery(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	rows := make([][]float64, 5000)
	for i := range rows {
		rows[i] = make([]float64, 32)
		for j := range rows[i] {
			rows[i][j] = rng.Float64()
		}
	}
	idx, _ := NewBruteForce(rows, Euclidean)
	q := rows[0]

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = idx.Query(q, 11)
	}
}
