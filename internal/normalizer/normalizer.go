// Package normalizer converts raw, possibly malformed tabular price data into
// a canonical bar sequence. It never returns an error for malformed data:
// unusable rows are dropped and an unusable table yields an empty sequence,
// so callers can always render "no data" instead of failing.
package normalizer

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/moznion/go-optional"
	"github.com/quantlens/quantlens/internal/types"
)

// canonical field positions after column reconciliation.
type columnMap struct {
	open     int
	high     int
	low      int
	close    int
	adjClose int
	volume   int
	date     int
}

const noColumn = -1

// Normalize converts a raw table into a canonical bar sequence: reconciled
// columns, numeric prices, ascending unique timestamps. An empty result means
// "no data available", not a fault.
func Normalize(table RawTable) types.BarSequence {
	if table.NumRows() == 0 {
		return types.BarSequence{}
	}

	cols := reconcileColumns(table.Columns)
	if cols.open == noColumn || cols.high == noColumn || cols.low == noColumn || cols.close == noColumn {
		return types.BarSequence{}
	}

	bars := make(types.BarSequence, 0, table.NumRows())
	useSynthetic := !hasTimeAxis(table, cols)

	for i, row := range table.Rows {
		if len(row) < len(table.Columns) {
			continue
		}

		ts, ok := rowTimestamp(table, cols, i, useSynthetic)
		if !ok {
			continue
		}

		open, okOpen := coerceFloat(row[cols.open])
		high, okHigh := coerceFloat(row[cols.high])
		low, okLow := coerceFloat(row[cols.low])
		closePrice, okClose := coerceFloat(row[cols.close])

		// A bar without all four prices would corrupt downstream indicator
		// math, so the whole row goes.
		if !okOpen || !okHigh || !okLow || !okClose {
			continue
		}

		bar := types.Bar{
			Time:     ts,
			Open:     open,
			High:     high,
			Low:      low,
			Close:    closePrice,
			AdjClose: optional.None[float64](),
			Volume:   0,
		}

		if cols.adjClose != noColumn {
			if adj, ok := coerceFloat(row[cols.adjClose]); ok {
				bar.AdjClose = optional.Some(adj)
			}
		}

		// Absent volume should not invalidate a price bar.
		if cols.volume != noColumn {
			if vol, ok := coerceFloat(row[cols.volume]); ok {
				bar.Volume = vol
			}
		}

		bars = append(bars, bar)
	}

	return dedupeSorted(bars)
}

// reconcileColumns maps heterogeneous column labels onto canonical OHLCV
// fields using case-insensitive substring matching. "Adj Close" style columns
// are kept separate from plain Close/Open/Low so adjusted prices never leak
// into the canonical fields. The first matching column per field wins.
func reconcileColumns(columns []string) columnMap {
	cols := columnMap{
		open:     noColumn,
		high:     noColumn,
		low:      noColumn,
		close:    noColumn,
		adjClose: noColumn,
		volume:   noColumn,
		date:     noColumn,
	}

	for i, label := range columns {
		name := strings.ToLower(strings.TrimSpace(label))
		hasAdj := strings.Contains(name, "adj")

		switch {
		case strings.Contains(name, "open") && !hasAdj:
			if cols.open == noColumn {
				cols.open = i
			}
		case strings.Contains(name, "high"):
			if cols.high == noColumn {
				cols.high = i
			}
		case strings.Contains(name, "low") && !hasAdj:
			if cols.low == noColumn {
				cols.low = i
			}
		case hasAdj && strings.Contains(name, "close"):
			if cols.adjClose == noColumn {
				cols.adjClose = i
			}
		case strings.Contains(name, "close"):
			if cols.close == noColumn {
				cols.close = i
			}
		case strings.Contains(name, "volume"):
			if cols.volume == noColumn {
				cols.volume = i
			}
		case strings.Contains(name, "date") || strings.Contains(name, "time"):
			if cols.date == noColumn {
				cols.date = i
			}
		}
	}

	return cols
}

// hasTimeAxis reports whether at least one row carries a parseable timestamp,
// either in the index or in a date column. Tables without one get a synthetic
// daily axis so positional feeds still chart.
func hasTimeAxis(table RawTable, cols columnMap) bool {
	for i := range table.Rows {
		if len(table.Index) > i {
			if _, ok := coerceTime(table.Index[i]); ok {
				return true
			}
		}

		if cols.date != noColumn && len(table.Rows[i]) > cols.date {
			if _, ok := coerceTime(table.Rows[i][cols.date]); ok {
				return true
			}
		}
	}

	return false
}

// syntheticEpoch anchors the synthetic daily axis for positional tables.
var syntheticEpoch = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

// rowTimestamp resolves the timestamp for row i. With a real time axis, rows
// whose labels cannot be parsed are dropped; with a synthetic axis every row
// gets a date derived from its position.
func rowTimestamp(table RawTable, cols columnMap, i int, useSynthetic bool) (time.Time, bool) {
	if useSynthetic {
		return syntheticEpoch.AddDate(0, 0, i), true
	}

	if len(table.Index) > i {
		if ts, ok := coerceTime(table.Index[i]); ok {
			return ts, true
		}
	}

	if cols.date != noColumn && len(table.Rows[i]) > cols.date {
		if ts, ok := coerceTime(table.Rows[i][cols.date]); ok {
			return ts, true
		}
	}

	return time.Time{}, false
}

// coerceFloat parses a dynamically typed cell into a finite float64.
func coerceFloat(v any) (float64, bool) {
	switch value := v.(type) {
	case float64:
		return value, isFinite(value)
	case float32:
		return float64(value), isFinite(float64(value))
	case int:
		return float64(value), true
	case int32:
		return float64(value), true
	case int64:
		return float64(value), true
	case json.Number:
		parsed, err := value.Float64()
		return parsed, err == nil && isFinite(parsed)
	case string:
		trimmed := strings.TrimSpace(strings.ReplaceAll(value, ",", ""))
		if trimmed == "" {
			return 0, false
		}

		parsed, err := strconv.ParseFloat(trimmed, 64)

		return parsed, err == nil && isFinite(parsed)
	default:
		return 0, false
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// coerceTime parses a row label into a timezone-aware timestamp. Integer
// labels are not treated as unix seconds: feeds that index rows 0..n-1 must
// fall through to the synthetic axis instead of producing 1970-era bars.
func coerceTime(v any) (time.Time, bool) {
	switch value := v.(type) {
	case time.Time:
		if value.IsZero() {
			return time.Time{}, false
		}

		return value.UTC(), true
	case string:
		trimmed := strings.TrimSpace(value)
		for _, layout := range timeLayouts {
			if ts, err := time.Parse(layout, trimmed); err == nil {
				return ts.UTC(), true
			}
		}

		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

// dedupeSorted sorts bars ascending by timestamp and collapses duplicate
// timestamps to the last occurrence in input order (latest write wins).
func dedupeSorted(bars types.BarSequence) types.BarSequence {
	if len(bars) == 0 {
		return types.BarSequence{}
	}

	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].Time.Before(bars[j].Time)
	})

	out := bars[:0]

	for _, bar := range bars {
		if len(out) > 0 && out[len(out)-1].Time.Equal(bar.Time) {
			out[len(out)-1] = bar
			continue
		}

		out = append(out, bar)
	}

	return out
}
