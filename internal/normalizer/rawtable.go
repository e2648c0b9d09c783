package normalizer

import (
	"time"

	"github.com/quantlens/quantlens/internal/types"
)

// RawTable is an already-retrieved tabular response from a price feed, before
// any cleanup. Column labels are arbitrary (providers disagree on casing,
// spacing, and multi-level headers flattened to strings like "Close RELIANCE.NS").
// Index holds the row labels when the feed has a time-like axis; it may be nil
// for purely positional tables. Cell values are dynamically typed.
type RawTable struct {
	Columns []string
	Index   []any
	Rows    [][]any
}

// NumRows returns the number of data rows in the table.
func (t RawTable) NumRows() int {
	return len(t.Rows)
}

// Serialize renders a canonical bar sequence back into a RawTable with
// canonical column labels. Round-tripping through Normalize yields the same
// sequence, which the tests rely on.
func Serialize(bars types.BarSequence) RawTable {
	table := RawTable{
		Columns: []string{"Open", "High", "Low", "Close", "Adj Close", "Volume"},
		Index:   make([]any, len(bars)),
		Rows:    make([][]any, len(bars)),
	}

	for i, bar := range bars {
		var adjClose any
		if bar.AdjClose.IsSome() {
			adjClose = bar.AdjClose.Unwrap()
		}

		table.Index[i] = bar.Time
		table.Rows[i] = []any{bar.Open, bar.High, bar.Low, bar.Close, adjClose, bar.Volume}
	}

	return table
}

// timeLayouts are the formats accepted for string row labels, most specific first.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"02-Jan-2006",
}
