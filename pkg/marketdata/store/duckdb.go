// Package store persists canonical bar sequences in a DuckDB database so
// fetched history survives across runs. It can also load raw CSV or Parquet
// files into the normalizer's table shape without any schema knowledge.
package store

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"go.uber.org/zap"

	"github.com/quantlens/quantlens/internal/logger"
	"github.com/quantlens/quantlens/internal/normalizer"
	"github.com/quantlens/quantlens/internal/types"
	"github.com/quantlens/quantlens/pkg/errors"
)

// Store reads and writes bar history in DuckDB.
type Store struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewStore opens (or creates) a DuckDB database at path and ensures the bars
// table exists. An empty path opens an in-memory database.
func NewStore(path string, log *logger.Logger) (*Store, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreUnavailable, "failed to open duckdb", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS bars (
			symbol VARCHAR NOT NULL,
			time TIMESTAMP NOT NULL,
			open DOUBLE NOT NULL,
			high DOUBLE NOT NULL,
			low DOUBLE NOT NULL,
			close DOUBLE NOT NULL,
			adj_close DOUBLE,
			volume DOUBLE NOT NULL,
			PRIMARY KEY (symbol, time)
		);
	`)
	if err != nil {
		db.Close()

		return nil, errors.Wrap(errors.ErrCodeStoreUnavailable, "failed to create bars table", err)
	}

	return &Store{
		db:     db,
		logger: log,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// WriteBars upserts bars for a symbol. Re-fetching a range overwrites the
// rows for the timestamps it covers.
func (s *Store) WriteBars(symbol string, bars types.BarSequence) error {
	if bars.IsEmpty() {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to begin transaction", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO bars (symbol, time, open, high, low, close, adj_close, volume)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to prepare insert", err)
	}
	defer stmt.Close()

	for _, bar := range bars {
		var adjClose sql.NullFloat64
		if bar.AdjClose.IsSome() {
			adjClose = sql.NullFloat64{Float64: bar.AdjClose.Unwrap(), Valid: true}
		}

		_, err = stmt.Exec(symbol, bar.Time, bar.Open, bar.High, bar.Low, bar.Close, adjClose, bar.Volume)
		if err != nil {
			return errors.Wrapf(errors.ErrCodeWriteFailed, err, "failed to write bar for %s at %s", symbol, bar.Time)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to commit bars", err)
	}

	s.logger.Debug("wrote bars", zap.String("symbol", symbol), zap.Int("count", len(bars)))

	return nil
}

// ReadBars returns the stored bars for a symbol in time order, optionally
// bounded by start and end (inclusive). A symbol with no rows returns an
// empty sequence.
func (s *Store) ReadBars(symbol string, start, end optional.Option[time.Time]) (types.BarSequence, error) {
	query := s.sq.
		Select("time", "open", "high", "low", "close", "adj_close", "volume").
		From("bars").
		Where(squirrel.Eq{"symbol": symbol}).
		OrderBy("time ASC")

	if start.IsSome() {
		query = query.Where(squirrel.GtOrEq{"time": start.Unwrap()})
	}

	if end.IsSome() {
		query = query.Where(squirrel.LtOrEq{"time": end.Unwrap()})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	rows, err := s.db.Query(sqlStr, args...)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to read bars for %s", symbol)
	}
	defer rows.Close()

	var bars types.BarSequence

	for rows.Next() {
		var (
			bar      types.Bar
			adjClose sql.NullFloat64
		)

		err := rows.Scan(&bar.Time, &bar.Open, &bar.High, &bar.Low, &bar.Close, &adjClose, &bar.Volume)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan bar", err)
		}

		bar.Time = bar.Time.UTC()
		if adjClose.Valid {
			bar.AdjClose = optional.Some(adjClose.Float64)
		}

		bars = append(bars, bar)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed while iterating bars", err)
	}

	return bars, nil
}

// Symbols lists the distinct symbols with stored history.
func (s *Store) Symbols() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT symbol FROM bars ORDER BY symbol`)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to list symbols", err)
	}
	defer rows.Close()

	var symbols []string

	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan symbol", err)
		}

		symbols = append(symbols, symbol)
	}

	return symbols, rows.Err()
}

// LoadTable reads a CSV or Parquet file into a raw table, preserving whatever
// columns the file has. The result is meant to be fed to the normalizer.
func (s *Store) LoadTable(path string) (normalizer.RawTable, error) {
	reader := "read_csv_auto"
	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		reader = "read_parquet"
	}

	// Squirrel cannot express table functions, so the reader call is raw SQL.
	// The path is quoted, not interpolated into an identifier position.
	query := fmt.Sprintf(`SELECT * FROM %s(?)`, reader)

	rows, err := s.db.Query(query, path)
	if err != nil {
		return normalizer.RawTable{}, errors.Wrapf(errors.ErrCodeDataNotFound, err, "failed to read %s", path)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return normalizer.RawTable{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to read columns", err)
	}

	table := normalizer.RawTable{Columns: columns}

	for rows.Next() {
		values := make([]any, len(columns))
		scanTargets := make([]any, len(columns))

		for i := range values {
			scanTargets[i] = &values[i]
		}

		if err := rows.Scan(scanTargets...); err != nil {
			return normalizer.RawTable{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan row", err)
		}

		table.Rows = append(table.Rows, values)
	}

	if err := rows.Err(); err != nil {
		return normalizer.RawTable{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed while reading table", err)
	}

	return table, nil
}
