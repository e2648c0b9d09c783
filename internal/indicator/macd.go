package indicator

import (
	"github.com/quantlens/quantlens/internal/types"
	"github.com/quantlens/quantlens/pkg/errors"
)

// MACD represents the Moving Average Convergence Divergence indicator.
type MACD struct {
	fastSpan   int
	slowSpan   int
	signalSpan int
}

// NewMACD creates a new MACD indicator with default configuration.
func NewMACD() Indicator {
	return &MACD{
		fastSpan:   12, // Default fast span
		slowSpan:   26, // Default slow span
		signalSpan: 9,  // Default signal span
	}
}

// Name returns the name of the indicator.
func (m *MACD) Name() types.IndicatorType {
	return types.IndicatorTypeMACD
}

// Config configures the MACD indicator. Expected parameters: fastSpan (int), slowSpan (int), signalSpan (int).
func (m *MACD) Config(params ...any) error {
	if len(params) != 3 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 3 parameters: fastSpan (int), slowSpan (int), signalSpan (int)")
	}

	fastSpan, ok := params[0].(int)
	if !ok {
		return errors.New(errors.ErrCodeInvalidType, "invalid type for fastSpan parameter, expected int")
	}

	if fastSpan <= 0 {
		return errors.Newf(errors.ErrCodeInvalidSpan, "fastSpan must be a positive integer, got %d", fastSpan)
	}

	slowSpan, ok := params[1].(int)
	if !ok {
		return errors.New(errors.ErrCodeInvalidType, "invalid type for slowSpan parameter, expected int")
	}

	if slowSpan <= 0 {
		return errors.Newf(errors.ErrCodeInvalidSpan, "slowSpan must be a positive integer, got %d", slowSpan)
	}

	signalSpan, ok := params[2].(int)
	if !ok {
		return errors.New(errors.ErrCodeInvalidType, "invalid type for signalSpan parameter, expected int")
	}

	if signalSpan <= 0 {
		return errors.Newf(errors.ErrCodeInvalidSpan, "signalSpan must be a positive integer, got %d", signalSpan)
	}

	m.fastSpan = fastSpan
	m.slowSpan = slowSpan
	m.signalSpan = signalSpan

	return nil
}

// Compute derives the MACD line (fast EWMA minus slow EWMA of the closes),
// the signal line (EWMA of the MACD line itself), and the histogram
// (MACD minus signal). With fewer than two closes every output is undefined,
// since a single point carries no trend.
func (m *MACD) Compute(closes []float64) map[types.IndicatorType][]float64 {
	if len(closes) < 2 {
		return map[types.IndicatorType][]float64{
			types.IndicatorTypeMACD:       nanSlice(len(closes)),
			types.IndicatorTypeMACDSignal: nanSlice(len(closes)),
			types.IndicatorTypeMACDHist:   nanSlice(len(closes)),
		}
	}

	fast := ewma(closes, m.fastSpan)
	slow := ewma(closes, m.slowSpan)

	macd := make([]float64, len(closes))
	for i := range macd {
		macd[i] = fast[i] - slow[i]
	}

	signal := ewma(macd, m.signalSpan)

	hist := make([]float64, len(closes))
	for i := range hist {
		hist[i] = macd[i] - signal[i]
	}

	return map[types.IndicatorType][]float64{
		types.IndicatorTypeMACD:       macd,
		types.IndicatorTypeMACDSignal: signal,
		types.IndicatorTypeMACDHist:   hist,
	}
}
