// Cinematch - Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package artifact

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
)

// NewSource picks a Source for the configured artifacts. JSON pairs are
// decoded directly; everything else goes through DuckDB.
func NewSource(cfg *config.ArtifactsConfig) (Source, error) {
	datasetFormat, err := resolveFormat(cfg.Format, cfg.DatasetPath)
	if err != nil {
		return nil, err
	}
	featuresFormat, err := resolveFormat(cfg.Format, cfg.FeaturesPath)
	if err != nil {
		return nil, err
	}

	if datasetFormat == FormatJSON && featuresFormat == FormatJSON {
		return &JSONSource{DatasetPath: cfg.DatasetPath, FeaturesPath: cfg.FeaturesPath}, nil
	}
	return &DuckDBSource{
		DatasetPath:    cfg.DatasetPath,
		DatasetFormat:  datasetFormat,
		FeaturesPath:   cfg.FeaturesPath,
		FeaturesFormat: featuresFormat,
	}, nil
}

// resolveFormat returns the explicit format, or the one implied by the file
// extension when format is auto.
func resolveFormat(format, path string) (string, error) {
	format = strings.ToLower(format)
	switch format {
	case FormatCSV, FormatParquet, FormatJSON:
		return format, nil
	case "", "auto":
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv":
		return FormatCSV, nil
	case ".parquet", ".pq":
		return FormatParquet, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: cannot infer format of %s", ErrUnsupportedFormat, path)
	}
}

// Load runs src with a timeout and records the result.
func Load(ctx context.Context, src Source, timeout time.Duration) (*Bundle, error) {
	log := logging.WithComponent("artifact")

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	b, err := src.Load(ctx)
	elapsed := time.Since(start)

	if err != nil {
		metrics.RecordArtifactLoad(src.Name(), 0, 0, elapsed, err)
		return nil, fmt.Errorf("failed to load artifacts from %s source: %w", src.Name(), err)
	}

	metrics.RecordArtifactLoad(src.Name(), b.Len(), b.Dim(), elapsed, nil)
	log.Info().
		Str("source", src.Name()).
		Int("movies", b.Len()).
		Int("dimensions", b.Dim()).
		Dur("elapsed", elapsed).
		Msg("Catalog loaded")
	return b, nil
}
