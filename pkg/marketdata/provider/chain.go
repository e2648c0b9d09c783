package provider

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/quantlens/quantlens/internal/logger"
	"github.com/quantlens/quantlens/internal/normalizer"
	"github.com/quantlens/quantlens/internal/types"
	"github.com/quantlens/quantlens/pkg/errors"
)

// Chain tries providers in order until one returns usable data. A provider
// that errors or returns an empty table is skipped. Only when every provider
// has been tried does the chain report failure.
type Chain struct {
	providers []Provider
	logger    *logger.Logger
}

// NewChain creates a fallback chain over the given providers. Order matters:
// the first provider is the preferred source.
func NewChain(log *logger.Logger, providers ...Provider) *Chain {
	return &Chain{
		providers: providers,
		logger:    log,
	}
}

// Name implements Provider.
func (c *Chain) Name() string {
	return "chain"
}

// History implements Provider. The first non-empty result wins.
func (c *Chain) History(ctx context.Context, symbol string, start, end time.Time, interval Interval) (normalizer.RawTable, error) {
	if len(c.providers) == 0 {
		return normalizer.RawTable{}, errors.New(errors.ErrCodeInvalidProvider, "no providers configured")
	}

	for _, p := range c.providers {
		table, err := p.History(ctx, symbol, start, end, interval)
		if err != nil {
			if ctx.Err() != nil {
				return normalizer.RawTable{}, err
			}

			c.logger.Warn("provider history failed, trying next",
				zap.String("provider", p.Name()),
				zap.String("symbol", symbol),
				zap.Error(err))

			continue
		}

		if table.NumRows() == 0 {
			c.logger.Debug("provider returned no rows, trying next",
				zap.String("provider", p.Name()),
				zap.String("symbol", symbol))

			continue
		}

		return table, nil
	}

	return normalizer.RawTable{}, errors.Newf(errors.ErrCodeProvidersExhausted, "no provider returned data for %s", symbol)
}

// Quote implements Provider. Providers that cannot serve quotes are skipped.
func (c *Chain) Quote(ctx context.Context, symbol string) (types.Quote, error) {
	if len(c.providers) == 0 {
		return types.Quote{}, errors.New(errors.ErrCodeInvalidProvider, "no providers configured")
	}

	for _, p := range c.providers {
		q, err := p.Quote(ctx, symbol)
		if err != nil {
			if ctx.Err() != nil {
				return types.Quote{}, err
			}

			c.logger.Debug("provider quote failed, trying next",
				zap.String("provider", p.Name()),
				zap.String("symbol", symbol),
				zap.Error(err))

			continue
		}

		return q, nil
	}

	return types.Quote{}, errors.Newf(errors.ErrCodeProvidersExhausted, "no provider returned a quote for %s", symbol)
}
