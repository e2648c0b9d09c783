package indicator

import (
	"github.com/quantlens/quantlens/internal/types"
	"github.com/quantlens/quantlens/pkg/errors"
)

// RSI represents the Relative Strength Index indicator.
type RSI struct {
	span int
}

// NewRSI creates a new RSI indicator with default configuration.
func NewRSI() Indicator {
	return &RSI{
		span: 14, // Default span
	}
}

// Name returns the name of the indicator.
func (r *RSI) Name() types.IndicatorType {
	return types.IndicatorTypeRSI14
}

// Config configures the RSI indicator. Expected parameters: span (int).
func (r *RSI) Config(params ...any) error {
	if len(params) != 1 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 1 parameter: span (int)")
	}

	span, ok := params[0].(int)
	if !ok {
		return errors.New(errors.ErrCodeInvalidType, "invalid type for span parameter, expected int")
	}

	if span <= 0 {
		return errors.Newf(errors.ErrCodeInvalidSpan, "span must be a positive integer, got %d", span)
	}

	r.span = span

	return nil
}

// Compute derives RSI from per-bar close deltas: gains and losses are smoothed
// independently with an EWMA of the configured span, RS is their ratio, and
// RSI = 100 - 100/(1+RS). A zero average loss leaves RSI undefined at that
// point instead of clamping to 100; a divide-by-zero artifact must not read as
// "maximally overbought".
func (r *RSI) Compute(closes []float64) map[types.IndicatorType][]float64 {
	out := nanSlice(len(closes))
	if len(closes) < 2 {
		return map[types.IndicatorType][]float64{types.IndicatorTypeRSI14: out}
	}

	gains := make([]float64, len(closes)-1)
	losses := make([]float64, len(closes)-1)

	for i := 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gains[i-1] = delta
		} else {
			losses[i-1] = -delta
		}
	}

	avgGain := ewma(gains, r.span)
	avgLoss := ewma(losses, r.span)

	// The first delta exists at bar index 1, so RSI[0] stays undefined.
	for i := 0; i < len(avgGain); i++ {
		if avgLoss[i] == 0 {
			continue
		}

		rs := avgGain[i] / avgLoss[i]
		out[i+1] = 100 - 100/(1+rs)
	}

	return map[types.IndicatorType][]float64{types.IndicatorTypeRSI14: out}
}
