// Cinematch - Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"math"
	"sort"

	"github.com/tomtom215/cinematch/internal/models"
)

type weightedColumn struct {
	name   string
	weight float64
	value  func(*models.Movie) float64
}

func (w Weights) columns() []weightedColumn {
	return []weightedColumn{
		{"popularity", w.Popularity, func(m *models.Movie) float64 { return m.Popularity }},
		{"revenue", w.Revenue, func(m *models.Movie) float64 { return m.Revenue }},
		{"vote_average", w.VoteAverage, func(m *models.Movie) float64 { return m.VoteAverage }},
		{"vote_count", w.VoteCount, func(m *models.Movie) float64 { return m.VoteCount }},
		{"budget", w.Budget, func(m *models.Movie) float64 { return m.Budget }},
	}
}

// NormalizeColumn min-max scales values into [0, 1):
//
//	(v - min) / (max - min + eps)
//
// NaN values are ignored when finding min and max and stay NaN in the
// output. The input is not modified.
func NormalizeColumn(values []float64, eps float64) []float64 {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	out := make([]float64, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			out[i] = math.NaN()
			continue
		}
		out[i] = (v - lo) / (hi - lo + eps)
	}
	return out
}

// CompositeScores returns the weighted sum of normalized columns for each
// movie, normalized over movies only. Columns with zero weight are skipped.
// A movie missing any weighted column scores NaN.
func CompositeScores(movies []*models.Movie, w Weights, eps float64) []float64 {
	scores := make([]float64, len(movies))
	col := make([]float64, len(movies))

	for _, c := range w.columns() {
		if c.weight == 0 {
			continue
		}
		for i, m := range movies {
			col[i] = c.value(m)
		}
		for i, n := range NormalizeColumn(col, eps) {
			scores[i] += c.weight * n
		}
	}
	return scores
}

// RankByScore returns the positions of scores ordered by descending score.
// Equal scores keep their input order and NaN scores come last.
func RankByScore(scores []float64) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		sa, sb := scores[order[a]], scores[order[b]]
		if math.IsNaN(sb) {
			return !math.IsNaN(sa)
		}
		return sa > sb
	})
	return order
}
