// Cinematch - Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"fmt"
	"math"
	"time"

	"github.com/tomtom215/cinematch/internal/config"
)

// Config controls request bounds, genre ranking and result caching.
type Config struct {
	// MaxK and MaxTopN cap the result size. Larger requests are clamped,
	// not rejected. Zero means no cap.
	MaxK    int
	MaxTopN int

	// Epsilon is added to every column range so constant columns normalize
	// to 0 instead of dividing by zero.
	Epsilon float64

	Weights Weights

	CacheEnabled    bool
	CacheTTL        time.Duration
	CacheMaxEntries int
}

// Weights are the composite score coefficients. A zero weight removes the
// column from the score entirely.
type Weights struct {
	Popularity  float64
	Revenue     float64
	VoteAverage float64
	VoteCount   float64
	Budget      float64
}

// DefaultConfig weights the five columns equally.
func DefaultConfig() Config {
	return Config{
		Epsilon: 1e-9,
		Weights: Weights{
			Popularity:  0.2,
			Revenue:     0.2,
			VoteAverage: 0.2,
			VoteCount:   0.2,
			Budget:      0.2,
		},
		CacheEnabled:    true,
		CacheTTL:        5 * time.Minute,
		CacheMaxEntries: 10000,
	}
}

// ConfigFrom maps the application configuration.
func ConfigFrom(rc *config.RecommendConfig, cc *config.CacheConfig) Config {
	return Config{
		MaxK:    rc.MaxK,
		MaxTopN: rc.MaxTopN,
		Epsilon: rc.Epsilon,
		Weights: Weights{
			Popularity:  rc.Weights.Popularity,
			Revenue:     rc.Weights.Revenue,
			VoteAverage: rc.Weights.VoteAverage,
			VoteCount:   rc.Weights.VoteCount,
			Budget:      rc.Weights.Budget,
		},
		CacheEnabled:    cc.Enabled,
		CacheTTL:        cc.TTL,
		CacheMaxEntries: cc.MaxEntries,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.MaxK < 0 {
		return fmt.Errorf("max_k must not be negative, got %d", c.MaxK)
	}
	if c.MaxTopN < 0 {
		return fmt.Errorf("max_top_n must not be negative, got %d", c.MaxTopN)
	}
	if !(c.Epsilon > 0) || math.IsInf(c.Epsilon, 0) {
		return fmt.Errorf("epsilon must be positive and finite, got %g", c.Epsilon)
	}
	for _, w := range c.Weights.columns() {
		if w.weight < 0 || math.IsNaN(w.weight) || math.IsInf(w.weight, 0) {
			return fmt.Errorf("weight %s must be finite and non-negative, got %g", w.name, w.weight)
		}
	}
	return nil
}
