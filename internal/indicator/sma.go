package indicator

import (
	"github.com/quantlens/quantlens/internal/types"
	"github.com/quantlens/quantlens/pkg/errors"
)

// SMA indicator implements Simple Moving Average calculation.
type SMA struct {
	name   types.IndicatorType
	window int
}

// NewSMA creates an SMA indicator registered under the given name.
func NewSMA(name types.IndicatorType, window int) Indicator {
	return &SMA{
		name:   name,
		window: window,
	}
}

// Name returns the name of the indicator.
func (s *SMA) Name() types.IndicatorType {
	return s.name
}

// Config configures the SMA indicator. Expected parameters: window (int).
func (s *SMA) Config(params ...any) error {
	if len(params) != 1 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 1 parameter: window (int)")
	}

	window, ok := params[0].(int)
	if !ok {
		// Try to convert from float first
		windowFloat, ok := params[0].(float64)
		if !ok {
			return errors.New(errors.ErrCodeInvalidType, "invalid type for window parameter, expected int or float")
		}

		window = int(windowFloat)
	}

	if window <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "window must be a positive integer, got %d", window)
	}

	s.window = window

	return nil
}

// Compute returns the grow-then-slide simple moving average of the closes:
// defined from the first bar, averaging however many points exist until the
// window fills.
func (s *SMA) Compute(closes []float64) map[types.IndicatorType][]float64 {
	return map[types.IndicatorType][]float64{
		s.name: rollingMean(closes, s.window),
	}
}
