// Cinematch - Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true, "fatal": true, "panic": true, "disabled": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

var validArtifactFormats = map[string]bool{
	"auto":    true,
	"json":    true,
	"csv":     true,
	"parquet": true,
}

var validMetrics = map[string]bool{
	"euclidean": true,
	"manhattan": true,
	"cosine":    true,
}

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	checks := []func() error{
		c.validateServer,
		c.validateLogging,
		c.validateRateLimits,
		c.validateArtifacts,
		c.validateIndex,
		c.validateRecommend,
		c.validateCache,
		c.validateMetrics,
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error, fatal, panic, disabled")
	}
	if !validLogFormats[strings.ToLower(c.Logging.Format)] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

func (c *Config) validateArtifacts() error {
	if c.Artifacts.DatasetPath == "" {
		return fmt.Errorf("DATASET_PATH is required")
	}
	if c.Artifacts.FeaturesPath == "" {
		return fmt.Errorf("FEATURES_PATH is required")
	}
	if !validArtifactFormats[strings.ToLower(c.Artifacts.Format)] {
		return fmt.Errorf("ARTIFACT_FORMAT must be one of: auto, json, csv, parquet")
	}
	if c.Artifacts.LoadTimeout <= 0 {
		return fmt.Errorf("ARTIFACT_LOAD_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateIndex() error {
	if !validMetrics[strings.ToLower(c.Index.Metric)] {
		return fmt.Errorf("INDEX_METRIC must be one of: euclidean, manhattan, cosine")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.MaxK < 0 {
		return fmt.Errorf("RECOMMEND_MAX_K must not be negative (0 means no cap)")
	}
	if r.DefaultK < 1 || (r.MaxK > 0 && r.DefaultK > r.MaxK) {
		return fmt.Errorf("RECOMMEND_DEFAULT_K must be at least 1 and no more than RECOMMEND_MAX_K (%d)", r.MaxK)
	}
	if r.MaxTopN < 0 {
		return fmt.Errorf("RECOMMEND_MAX_TOP_N must not be negative (0 means no cap)")
	}
	if r.DefaultTopN < 1 || (r.MaxTopN > 0 && r.DefaultTopN > r.MaxTopN) {
		return fmt.Errorf("RECOMMEND_DEFAULT_TOP_N must be at least 1 and no more than RECOMMEND_MAX_TOP_N (%d)", r.MaxTopN)
	}
	if !(r.Epsilon > 0) || math.IsInf(r.Epsilon, 0) {
		return fmt.Errorf("RECOMMEND_EPSILON must be a positive finite number")
	}

	w := r.Weights
	sum := 0.0
	for _, v := range []float64{w.Popularity, w.Revenue, w.VoteAverage, w.VoteCount, w.Budget} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("recommend weights must be finite and non-negative")
		}
		sum += v
	}
	if sum == 0 {
		return fmt.Errorf("at least one recommend weight must be positive")
	}
	return nil
}

func (c *Config) validateCache() error {
	if !c.Cache.Enabled {
		return nil
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive when the cache is enabled")
	}
	if c.Cache.MaxEntries < 1 {
		return fmt.Errorf("CACHE_MAX_ENTRIES must be at least 1 when the cache is enabled")
	}
	return nil
}

func (c *Config) validateMetrics() error {
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("METRICS_PATH must start with /")
	}
	return nil
}

// HasWildcardCORS reports whether any origin is allowed.
func (c *Config) HasWildcardCORS() bool {
	for _, o := range c.Security.CORSOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}
