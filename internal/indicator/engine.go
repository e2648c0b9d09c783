package indicator

import (
	"github.com/quantlens/quantlens/internal/types"
)

// Engine computes requested indicator families over a bar sequence. A zero
// Engine is not usable; construct one with NewEngine, which registers the
// standard dashboard set (SMA 20/50/200, EMA 20/50, RSI 14, MACD 12/26/9).
type Engine struct {
	registry Registry
}

// NewEngine creates an engine with the standard indicator set registered.
func NewEngine() *Engine {
	registry := NewRegistry()

	// Registration of the fixed set cannot collide.
	_ = registry.Register(NewSMA(types.IndicatorTypeSMA20, 20))
	_ = registry.Register(NewSMA(types.IndicatorTypeSMA50, 50))
	_ = registry.Register(NewSMA(types.IndicatorTypeSMA200, 200))
	_ = registry.Register(NewEMA(types.IndicatorTypeEMA20, 20))
	_ = registry.Register(NewEMA(types.IndicatorTypeEMA50, 50))
	_ = registry.Register(NewRSI())
	_ = registry.Register(NewMACD())

	return &Engine{registry: registry}
}

// Registry exposes the engine's indicator registry so callers can add or
// replace indicator families.
func (e *Engine) Registry() Registry {
	return e.registry
}

// Compute evaluates the requested indicators over the bar sequence and returns
// one aligned series per output name. Requested names with no registered
// indicator are ignored, keeping the engine forward-compatible with callers
// asking for indicators not defined yet. Empty input yields empty series, and
// indicators that need history they do not have yield all-NaN series; neither
// is an error.
func (e *Engine) Compute(bars types.BarSequence, requested []types.IndicatorType) map[types.IndicatorType]types.Series {
	closes := bars.Closes()
	times := bars.Times()
	results := make(map[types.IndicatorType]types.Series)

	for _, name := range requested {
		ind, err := e.registry.Get(name)
		if err != nil {
			continue // unknown indicator, skip
		}

		for outName, values := range ind.Compute(closes) {
			results[outName] = types.Series{Times: times, Values: values}
		}
	}

	return results
}
