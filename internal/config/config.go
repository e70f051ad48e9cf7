// Cinematch - Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package config loads Cinematch configuration from built-in defaults, an
// optional YAML file and environment variables, in that order of precedence.
package config

import "time"

// Config is the root configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Security  SecurityConfig  `koanf:"security"`
	Artifacts ArtifactsConfig `koanf:"artifacts"`
	Index     IndexConfig     `koanf:"index"`
	Recommend RecommendConfig `koanf:"recommend"`
	Cache     CacheConfig     `koanf:"cache"`
	Metrics   MetricsConfig   `koanf:"metrics"`
}

type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// SecurityConfig covers the HTTP edge: CORS and per-IP rate limiting.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	// TrustProxyHeaders takes the client IP from X-Forwarded-For/X-Real-IP.
	// Enable only behind a proxy that overwrites those headers.
	TrustProxyHeaders bool `koanf:"trust_proxy_headers"`
}

// ArtifactsConfig locates the movie dataset and its feature matrix.
//
// Format is one of auto, json, csv or parquet. With auto the format is taken
// from the dataset file extension.
type ArtifactsConfig struct {
	DatasetPath  string        `koanf:"dataset_path"`
	FeaturesPath string        `koanf:"features_path"`
	Format       string        `koanf:"format"`
	LoadTimeout  time.Duration `koanf:"load_timeout"`
}

// IndexConfig selects the distance metric of the neighbor index.
type IndexConfig struct {
	Metric string `koanf:"metric"`
}

// RecommendConfig bounds request parameters and sets genre ranking weights.
// MaxK and MaxTopN clamp larger requests; zero leaves them uncapped.
type RecommendConfig struct {
	DefaultK    int           `koanf:"default_k"`
	MaxK        int           `koanf:"max_k"`
	DefaultTopN int           `koanf:"default_top_n"`
	MaxTopN     int           `koanf:"max_top_n"`
	Epsilon     float64       `koanf:"epsilon"`
	Weights     WeightsConfig `koanf:"weights"`
}

// WeightsConfig holds the composite score weight of each numeric column.
type WeightsConfig struct {
	Popularity  float64 `koanf:"popularity"`
	Revenue     float64 `koanf:"revenue"`
	VoteAverage float64 `koanf:"vote_average"`
	VoteCount   float64 `koanf:"vote_count"`
	Budget      float64 `koanf:"budget"`
}

// CacheConfig controls the in-memory result cache.
type CacheConfig struct {
	Enabled    bool          `koanf:"enabled"`
	TTL        time.Duration `koanf:"ttl"`
	MaxEntries int           `koanf:"max_entries"`
}

type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

// IsProduction reports whether the server runs with ENVIRONMENT=production.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
