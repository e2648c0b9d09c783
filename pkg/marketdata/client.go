// Package marketdata is the high level entry point for fetching, normalizing
// and analyzing price history. A Client wires a provider chain, a TTL cache,
// the normalizer and the indicator engine behind a small API: History returns
// canonical bars, Indicators returns derived series aligned to those bars, and
// Quote returns a company snapshot.
package marketdata

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/quantlens/quantlens/internal/indicator"
	"github.com/quantlens/quantlens/internal/logger"
	"github.com/quantlens/quantlens/internal/normalizer"
	"github.com/quantlens/quantlens/internal/types"
	"github.com/quantlens/quantlens/pkg/errors"
	"github.com/quantlens/quantlens/pkg/marketdata/provider"
)

// ClientConfig configures the provider chain and cache behavior.
type ClientConfig struct {
	// Providers lists provider names in fallback order.
	Providers []provider.ProviderType `yaml:"providers" validate:"required,min=1,dive,oneof=yahoo polygon"`
	// PolygonAPIKey is required when the polygon provider is listed.
	PolygonAPIKey string `yaml:"polygon_api_key"`
	// HistoryCacheTTL bounds how long fetched history is reused. Zero disables expiry.
	HistoryCacheTTL types.Duration `yaml:"history_cache_ttl"`
	// QuoteCacheTTL bounds how long quotes are reused. Zero disables expiry.
	QuoteCacheTTL types.Duration `yaml:"quote_cache_ttl"`
}

// Validate validates the ClientConfig struct.
func (c *ClientConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid market data client config", err)
	}

	for _, p := range c.Providers {
		if p == provider.ProviderPolygon && c.PolygonAPIKey == "" {
			return errors.New(errors.ErrCodeInvalidConfiguration, "polygon provider requires polygon_api_key")
		}
	}

	return nil
}

// DefaultClientConfig returns a Yahoo-only configuration with moderate cache
// lifetimes, suitable for interactive use.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Providers:       []provider.ProviderType{provider.ProviderYahoo},
		PolygonAPIKey:   "",
		HistoryCacheTTL: types.Duration(15 * time.Minute),
		QuoteCacheTTL:   types.Duration(time.Minute),
	}
}

// Client fetches and analyzes market data through a cached provider chain.
type Client struct {
	provider provider.Provider
	engine   *indicator.Engine
	logger   *logger.Logger
}

// NewClient creates a Client from config. Providers are constructed in the
// configured order and wrapped in a shared cache.
func NewClient(config ClientConfig, log *logger.Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	cache := NewTTLCache()
	providers := make([]provider.Provider, 0, len(config.Providers))

	for _, providerType := range config.Providers {
		var providerConfig any
		if providerType == provider.ProviderPolygon {
			providerConfig = config.PolygonAPIKey
		}

		p, err := provider.NewProvider(providerType, providerConfig)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidProvider, "failed to create provider", err)
		}

		providers = append(providers, NewCachedProvider(p, cache, config.HistoryCacheTTL.Duration(), config.QuoteCacheTTL.Duration()))
	}

	return &Client{
		provider: provider.NewChain(log, providers...),
		engine:   indicator.NewEngine(),
		logger:   log,
	}, nil
}

// NewClientWithProvider creates a Client over an already built provider. Used
// by tests and by callers that bring their own provider stack.
func NewClientWithProvider(p provider.Provider, log *logger.Logger) *Client {
	return &Client{
		provider: p,
		engine:   indicator.NewEngine(),
		logger:   log,
	}
}

// History fetches raw history for symbol and normalizes it into a canonical
// bar sequence. An empty sequence means no usable data was available.
func (c *Client) History(ctx context.Context, symbol string, start, end time.Time, interval provider.Interval) (types.BarSequence, error) {
	table, err := c.provider.History(ctx, symbol, start, end, interval)
	if err != nil {
		return nil, err
	}

	return normalizer.Normalize(table), nil
}

// Indicators fetches history and computes the requested indicator series over
// it. The returned bars are the canonical sequence the series align to.
func (c *Client) Indicators(ctx context.Context, symbol string, start, end time.Time, interval provider.Interval, names []types.IndicatorType) (types.BarSequence, map[types.IndicatorType]types.Series, error) {
	bars, err := c.History(ctx, symbol, start, end, interval)
	if err != nil {
		return nil, nil, err
	}

	return bars, c.engine.Compute(bars, names), nil
}

// Quote fetches a company snapshot for symbol.
func (c *Client) Quote(ctx context.Context, symbol string) (types.Quote, error) {
	return c.provider.Quote(ctx, symbol)
}

// Engine exposes the indicator engine, letting callers compute indicators
// over bars they loaded themselves.
func (c *Client) Engine() *indicator.Engine {
	return c.engine
}
