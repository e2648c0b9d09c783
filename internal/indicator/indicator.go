// Package indicator computes derived technical series (moving averages, RSI,
// MACD) over a canonical bar sequence. Every computation is a pure function of
// the full close series: no state survives between calls, so the engine is
// safe for any number of concurrent callers.
package indicator

import "github.com/quantlens/quantlens/internal/types"

// Indicator is one computable indicator family.
type Indicator interface {
	// Name returns the requestable name of the indicator.
	Name() types.IndicatorType
	// Config tunes the indicator parameters. Invalid parameters are a
	// programming error and are rejected here, at the call boundary.
	Config(params ...any) error
	// Compute derives the indicator's output series from a close-price
	// series. The result maps output names to value slices, each aligned
	// 1:1 positionally with the input. Undefined points are NaN. Malformed
	// data never errors; it degrades to NaN or empty output.
	Compute(closes []float64) map[types.IndicatorType][]float64
}
