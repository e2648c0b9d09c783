// Package provider implements price-history and quote providers for the
// market data client. Providers return raw tables in whatever column shape
// their upstream feed uses; the normalizer owns cleanup, so a provider never
// renames or filters columns beyond flattening the response.
package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/quantlens/quantlens/internal/normalizer"
	"github.com/quantlens/quantlens/internal/types"
)

// Interval is the bar duration of a history request.
type Interval string

const (
	IntervalDay   Interval = "1d"
	IntervalWeek  Interval = "1wk"
	IntervalMonth Interval = "1mo"
)

// Valid reports whether the interval is one the providers understand.
func (i Interval) Valid() bool {
	switch i {
	case IntervalDay, IntervalWeek, IntervalMonth:
		return true
	default:
		return false
	}
}

// ProviderType defines the type of market data provider.
type ProviderType string

const (
	ProviderYahoo   ProviderType = "yahoo"
	ProviderPolygon ProviderType = "polygon"
)

// Provider fetches raw market data for a single symbol.
type Provider interface {
	// Name identifies the provider in logs and errors.
	Name() string
	// History fetches raw price history. An empty table means the provider
	// has no data for the request, which is not an error.
	History(ctx context.Context, symbol string, start, end time.Time, interval Interval) (normalizer.RawTable, error)
	// Quote fetches a point-in-time company snapshot.
	Quote(ctx context.Context, symbol string) (types.Quote, error)
}

// NewProvider creates a provider of the given type.
func NewProvider(providerType ProviderType, config any) (Provider, error) {
	switch providerType {
	case ProviderYahoo:
		return NewYahooClient(), nil
	case ProviderPolygon:
		apiKey, ok := config.(string)
		if !ok {
			return nil, fmt.Errorf("polygon provider requires API key string config")
		}

		return NewPolygonClient(apiKey)
	default:
		return nil, fmt.Errorf("unsupported market data provider: %s", providerType)
	}
}
