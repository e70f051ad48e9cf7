// Cinematch - Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package neighbors implements exact k-nearest-neighbor search over the
// catalog feature matrix.
//
// Results are ordered by ascending distance. Equal distances are ordered by
// ascending row id, so a query is deterministic for a given matrix.
package neighbors

import (
	"container/heap"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

var (
	// ErrDimensionMismatch is returned when a query vector has the wrong length.
	ErrDimensionMismatch = errors.New("query dimension does not match index")

	// ErrInvalidK is returned for k < 1.
	ErrInvalidK = errors.New("k must be at least 1")

	// ErrUnknownMetric is returned by ParseMetric.
	ErrUnknownMetric = errors.New("unknown distance metric")

	// ErrEmptyIndex is returned when building an index without rows.
	ErrEmptyIndex = errors.New("index has no rows")
)

// Metric names a distance function.
type Metric string

const (
	Euclidean Metric = "euclidean"
	Manhattan Metric = "manhattan"
	Cosine    Metric = "cosine"
)

// ParseMetric accepts a metric name in any case.
func ParseMetric(s string) (Metric, error) {
	switch m := Metric(strings.ToLower(strings.TrimSpace(s))); m {
	case Euclidean, Manhattan, Cosine:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMetric, s)
	}
}

// Neighbor is one search hit.
type Neighbor struct {
	ID       int
	Distance float64
}

// Index answers nearest-neighbor queries.
type Index interface {
	// Query returns up to k rows closest to vec, nearest first. When k
	// exceeds the number of rows every row is returned.
	Query(vec []float64, k int) ([]Neighbor, error)
	Len() int
	Dim() int
	Metric() Metric
}

// BruteForce scans every row per query. It holds a reference to the rows;
// callers must not mutate them afterwards.
type BruteForce struct {
	rows   [][]float64
	dim    int
	metric Metric
	norms  []float64 // cosine only
}

// NewBruteForce builds an exact index. All rows must share one dimension.
func NewBruteForce(rows [][]float64, metric Metric) (*BruteForce, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyIndex
	}
	if _, err := ParseMetric(string(metric)); err != nil {
		return nil, err
	}

	dim := len(rows[0])
	for i, r := range rows {
		if len(r) != dim {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrDimensionMismatch, i, len(r), dim)
		}
	}

	idx := &BruteForce{rows: rows, dim: dim, metric: metric}
	if metric == Cosine {
		idx.norms = make([]float64, len(rows))
		for i, r := range rows {
			idx.norms[i] = norm(r)
		}
	}
	return idx, nil
}

func (b *BruteForce) Len() int       { return len(b.rows) }
func (b *BruteForce) Dim() int       { return b.dim }
func (b *BruteForce) Metric() Metric { return b.metric }

func (b *BruteForce) Query(vec []float64, k int) ([]Neighbor, error) {
	if k < 1 {
		return nil, ErrInvalidK
	}
	if len(vec) != b.dim {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(vec), b.dim)
	}
	if k > len(b.rows) {
		k = len(b.rows)
	}

	var qnorm float64
	if b.metric == Cosine {
		qnorm = norm(vec)
	}

	h := make(worstFirst, 0, k+1)
	for id, row := range b.rows {
		var d float64
		switch b.metric {
		case Manhattan:
			d = manhattan(vec, row)
		case Cosine:
			d = cosineDistance(vec, row, qnorm, b.norms[id])
		default:
			d = euclidean(vec, row)
		}

		n := Neighbor{ID: id, Distance: d}
		if len(h) < k {
			heap.Push(&h, n)
			continue
		}
		if closer(n, h[0]) {
			h[0] = n
			heap.Fix(&h, 0)
		}
	}

	out := []Neighbor(h)
	sort.Slice(out, func(i, j int) bool { return closer(out[i], out[j]) })
	return out, nil
}

// closer orders by distance, then by row id.
func closer(a, b Neighbor) bool {
	if a.Distance != b.Distance {
		return a.Distance < b.Distance
	}
	return a.ID < b.ID
}

// worstFirst is a max-heap: the root is the farthest of the kept neighbors.
type worstFirst []Neighbor

func (h worstFirst) Len() int           { return len(h) }
func (h worstFirst) Less(i, j int) bool { return closer(h[j], h[i]) }
func (h worstFirst) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *worstFirst) Push(x any)        { *h = append(*h, x.(Neighbor)) }
func (h *worstFirst) Pop() any {
	old := *h
	n := old[len(old)-1]
	*h = old[:len(old)-1]
	return n
}

func euclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

func manhattan(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += math.Abs(a[i] - b[i])
	}
	return sum
}

func norm(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// cosineDistance is 1 - cosine similarity. A zero vector is at distance 1
// from everything.
func cosineDistance(a, b []float64, na, nb float64) float64 {
	if na == 0 || nb == 0 {
		return 1
	}
	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}
	sim := dot / (na * nb)
	if sim > 1 {
		sim = 1
	} else if sim < -1 {
		sim = -1
	}
	return 1 - sim
}
