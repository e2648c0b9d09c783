package types

import "strings"

type IndicatorType string

const (
	IndicatorTypeSMA20      IndicatorType = "sma_20"
	IndicatorTypeSMA50      IndicatorType = "sma_50"
	IndicatorTypeSMA200     IndicatorType = "sma_200"
	IndicatorTypeEMA20      IndicatorType = "ema_20"
	IndicatorTypeEMA50      IndicatorType = "ema_50"
	IndicatorTypeRSI14      IndicatorType = "rsi_14"
	IndicatorTypeMACD       IndicatorType = "macd"
	IndicatorTypeMACDSignal IndicatorType = "macd_signal"
	IndicatorTypeMACDHist   IndicatorType = "macd_hist"
)

// AllIndicatorTypes lists every indicator a caller can request.
// MACDSignal and MACDHist are outputs of the macd family, not requestable on their own.
func AllIndicatorTypes() []IndicatorType {
	return []IndicatorType{
		IndicatorTypeSMA20,
		IndicatorTypeSMA50,
		IndicatorTypeSMA200,
		IndicatorTypeEMA20,
		IndicatorTypeEMA50,
		IndicatorTypeRSI14,
		IndicatorTypeMACD,
	}
}

// ParseIndicatorType maps loose user input ("SMA20", "sma-20", "sma_20") to an
// IndicatorType. Returns false for names it does not recognize.
func ParseIndicatorType(name string) (IndicatorType, bool) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.ReplaceAll(normalized, "-", "_")

	switch normalized {
	case "sma20", "sma_20":
		return IndicatorTypeSMA20, true
	case "sma50", "sma_50":
		return IndicatorTypeSMA50, true
	case "sma200", "sma_200":
		return IndicatorTypeSMA200, true
	case "ema20", "ema_20":
		return IndicatorTypeEMA20, true
	case "ema50", "ema_50":
		return IndicatorTypeEMA50, true
	case "rsi", "rsi14", "rsi_14":
		return IndicatorTypeRSI14, true
	case "macd":
		return IndicatorTypeMACD, true
	default:
		return "", false
	}
}
