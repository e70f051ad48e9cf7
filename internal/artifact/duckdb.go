// Cinematch - Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package artifact

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2" // registers the "duckdb" driver

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/models"
)

// Formats understood by DuckDBSource.
const (
	FormatCSV     = "csv"
	FormatParquet = "parquet"
	FormatJSON    = "json"
)

// datasetColumns lists the catalog columns in scan order. Only title is
// mandatory; any other column absent from the file reads as NULL.
var datasetColumns = []string{
	"title", "overview", "poster_path", "tagline", "genres",
	"popularity", "revenue", "vote_average", "vote_count", "budget",
}

var numericColumns = map[string]bool{
	"popularity":   true,
	"revenue":      true,
	"vote_average": true,
	"vote_count":   true,
	"budget":       true,
}

// featureIndexColumns are row-index columns some exporters write next to the
// feature values. They are not features.
var featureIndexColumns = map[string]bool{
	"id":                true,
	"index":             true,
	"__index_level_0__": true,
}

// DuckDBSource reads CSV, Parquet or JSON artifacts through an in-memory
// DuckDB database. Row order is the file order.
type DuckDBSource struct {
	DatasetPath    string
	DatasetFormat  string
	FeaturesPath   string
	FeaturesFormat string
}

func (s *DuckDBSource) Name() string { return "duckdb" }

func (s *DuckDBSource) Load(ctx context.Context) (*Bundle, error) {
	db, err := sql.Open("duckdb", ":memory:?autoinstall_known_extensions=false&autoload_known_extensions=false")
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb: %w", err)
	}
	// Views live in one connection's catalog.
	db.SetMaxOpenConns(1)
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logging.Warn().Err(cerr).Msg("Failed to close artifact database")
		}
	}()

	if err := createView(ctx, db, "dataset", s.DatasetPath, s.DatasetFormat, true); err != nil {
		return nil, err
	}
	if err := createView(ctx, db, "features", s.FeaturesPath, s.FeaturesFormat, false); err != nil {
		return nil, err
	}

	movies, err := loadMovies(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", s.DatasetPath, err)
	}
	features, err := loadFeatures(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("failed to read features %s: %w", s.FeaturesPath, err)
	}

	b := &Bundle{Movies: movies, Features: features}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// scanExpr returns the table function reading path in the given format.
// Feature CSVs may lack a header row, so header detection is left to DuckDB
// unless header is set.
func scanExpr(path, format string, header bool) (string, error) {
	quoted := "'" + strings.ReplaceAll(path, "'", "''") + "'"
	switch format {
	case FormatCSV:
		if header {
			return "read_csv_auto(" + quoted + ", header = true)", nil
		}
		return "read_csv_auto(" + quoted + ")", nil
	case FormatParquet:
		return "read_parquet(" + quoted + ")", nil
	case FormatJSON:
		return "read_json_auto(" + quoted + ")", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func createView(ctx context.Context, db *sql.DB, name, path, format string, header bool) error {
	expr, err := scanExpr(path, format, header)
	if err != nil {
		return err
	}
	stmt := fmt.Sprintf("CREATE VIEW %s AS SELECT * FROM %s", name, expr)
	if _, err := db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	return nil
}

// viewColumns returns the column names of a view in declaration order.
func viewColumns(ctx context.Context, db *sql.DB, view string) ([]string, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_name = ? ORDER BY ordinal_position`, view)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var cols []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	return cols, rows.Err()
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// datasetQuery builds the projection of the catalog columns present in cols.
func datasetQuery(cols []string) (string, error) {
	present := make(map[string]string, len(cols))
	for _, c := range cols {
		present[strings.ToLower(c)] = c
	}
	if _, ok := present["title"]; !ok {
		return "", fmt.Errorf("dataset has no title column")
	}

	exprs := make([]string, 0, len(datasetColumns))
	for _, name := range datasetColumns {
		actual, ok := present[name]
		switch {
		case !ok && numericColumns[name]:
			exprs = append(exprs, "CAST(NULL AS DOUBLE)")
		case !ok:
			exprs = append(exprs, "CAST(NULL AS VARCHAR)")
		case numericColumns[name]:
			exprs = append(exprs, "TRY_CAST("+quoteIdent(actual)+" AS DOUBLE)")
		default:
			exprs = append(exprs, "CAST("+quoteIdent(actual)+" AS VARCHAR)")
		}
	}
	return "SELECT " + strings.Join(exprs, ", ") + " FROM dataset", nil
}

func loadMovies(ctx context.Context, db *sql.DB) ([]models.Movie, error) {
	cols, err := viewColumns(ctx, db, "dataset")
	if err != nil {
		return nil, err
	}
	query, err := datasetQuery(cols)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var movies []models.Movie
	for rows.Next() {
		var (
			title, overview, poster, tagline, genres     sql.NullString
			popularity, revenue, voteAvg, voteCnt, budget sql.NullFloat64
		)
		if err := rows.Scan(&title, &overview, &poster, &tagline, &genres,
			&popularity, &revenue, &voteAvg, &voteCnt, &budget); err != nil {
			return nil, err
		}
		movies = append(movies, models.Movie{
			ID:          len(movies),
			Title:       title.String,
			Overview:    overview.String,
			PosterPath:  poster.String,
			Tagline:     tagline.String,
			Genres:      genres.String,
			Popularity:  nullNum(popularity),
			Revenue:     nullNum(revenue),
			VoteAverage: nullNum(voteAvg),
			VoteCount:   nullNum(voteCnt),
			Budget:      nullNum(budget),
		})
	}
	return movies, rows.Err()
}

func loadFeatures(ctx context.Context, db *sql.DB) ([][]float64, error) {
	cols, err := viewColumns(ctx, db, "features")
	if err != nil {
		return nil, err
	}

	exprs := make([]string, 0, len(cols))
	for _, c := range cols {
		if featureIndexColumns[strings.ToLower(c)] {
			continue
		}
		exprs = append(exprs, "CAST("+quoteIdent(c)+" AS DOUBLE)")
	}
	if len(exprs) == 0 {
		return nil, fmt.Errorf("features file has no value columns")
	}

	rows, err := db.QueryContext(ctx, "SELECT "+strings.Join(exprs, ", ")+" FROM features")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	dim := len(exprs)
	vals := make([]sql.NullFloat64, dim)
	dest := make([]any, dim)
	for i := range vals {
		dest[i] = &vals[i]
	}

	var features [][]float64
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		row := make([]float64, dim)
		for i, v := range vals {
			if !v.Valid {
				return nil, fmt.Errorf("%w: feature row %d column %d is null", ErrMisaligned, len(features), i)
			}
			row[i] = v.Float64
		}
		features = append(features, row)
	}
	return features, rows.Err()
}

func nullNum(v sql.NullFloat64) float64 {
	if !v.Valid {
		return models.MissingNumber()
	}
	return v.Float64
}
