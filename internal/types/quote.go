package types

import "github.com/shopspring/decimal"

// Quote is a point-in-time company snapshot from a quote provider. Prices use
// fixed-point decimals since they are displayed, not fed into indicator math.
type Quote struct {
	Symbol        string          `json:"symbol"`
	ShortName     string          `json:"short_name,omitempty"`
	Currency      string          `json:"currency,omitempty"`
	Exchange      string          `json:"exchange,omitempty"`
	MarketCap     int64           `json:"market_cap,omitempty"`
	PreviousClose decimal.Decimal `json:"previous_close"`
	CurrentPrice  decimal.Decimal `json:"current_price"`
	TrailingPE    float64         `json:"trailing_pe,omitempty"`
	ForwardPE     float64         `json:"forward_pe,omitempty"`
	PriceToBook   float64         `json:"price_to_book,omitempty"`
	DividendYield float64         `json:"dividend_yield,omitempty"`
}
