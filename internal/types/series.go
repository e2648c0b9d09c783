package types

import (
	"math"
	"time"
)

// Series is a derived numeric series aligned 1:1 with the bar sequence it was
// computed from: same length, same timestamps. Values that fall inside a
// warm-up period or an undefined region are NaN, never zero.
type Series struct {
	Times  []time.Time `json:"times"`
	Values []float64   `json:"values"`
}

// NewSeries builds a Series over the given timestamp domain with every value
// initialized to NaN.
func NewSeries(times []time.Time) Series {
	values := make([]float64, len(times))
	for i := range values {
		values[i] = math.NaN()
	}

	return Series{Times: times, Values: values}
}

func (s Series) Len() int {
	return len(s.Values)
}

// Defined reports whether the value at index i is defined (not NaN).
func (s Series) Defined(i int) bool {
	return i >= 0 && i < len(s.Values) && !math.IsNaN(s.Values[i])
}

// DefinedCount returns the number of defined points in the series.
func (s Series) DefinedCount() int {
	count := 0

	for _, v := range s.Values {
		if !math.IsNaN(v) {
			count++
		}
	}

	return count
}
