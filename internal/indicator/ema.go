package indicator

import (
	"github.com/quantlens/quantlens/internal/types"
	"github.com/quantlens/quantlens/pkg/errors"
)

// EMA indicator implements Exponential Moving Average calculation.
type EMA struct {
	name types.IndicatorType
	span int
}

// NewEMA creates an EMA indicator registered under the given name.
func NewEMA(name types.IndicatorType, span int) Indicator {
	return &EMA{
		name: name,
		span: span,
	}
}

// Name returns the name of the indicator.
func (e *EMA) Name() types.IndicatorType {
	return e.name
}

// Config configures the EMA indicator. Expected parameters: span (int).
func (e *EMA) Config(params ...any) error {
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

	e.span = span

	return nil
}

// Compute returns the no-adjustment exponential moving average of the closes,
// seeded with the first close. The seeding choice changes every downstream
// value, so it must stay aligned with pandas ewm(span, adjust=False).
func (e *EMA) Compute(closes []float64) map[types.IndicatorType][]float64 {
	return map[types.IndicatorType][]float64{
		e.name: ewma(closes, e.span),
	}
}
