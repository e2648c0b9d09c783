package marketdata

import (
	"context"
	"fmt"
	"time"

	"github.com/quantlens/quantlens/internal/normalizer"
	"github.com/quantlens/quantlens/internal/types"
	"github.com/quantlens/quantlens/pkg/marketdata/provider"
)

// CachedProvider wraps a Provider and caches successful responses in a
// TTLCache. History and quotes carry separate TTLs since quotes go stale much
// faster than daily bars. Errors are never cached, so a failed fetch retries
// on the next call.
type CachedProvider struct {
	underlying provider.Provider
	cache      *TTLCache
	historyTTL time.Duration
	quoteTTL   time.Duration
}

// NewCachedProvider creates a caching wrapper around the given provider.
func NewCachedProvider(underlying provider.Provider, cache *TTLCache, historyTTL, quoteTTL time.Duration) *CachedProvider {
	return &CachedProvider{
		underlying: underlying,
		cache:      cache,
		historyTTL: historyTTL,
		quoteTTL:   quoteTTL,
	}
}

// Name implements provider.Provider.
func (c *CachedProvider) Name() string {
	return c.underlying.Name()
}

// History implements provider.Provider with caching.
func (c *CachedProvider) History(ctx context.Context, symbol string, start, end time.Time, interval provider.Interval) (normalizer.RawTable, error) {
	key := c.historyKey(symbol, start, end, interval)

	if v, ok := c.cache.Get(key); ok {
		if table, ok := v.(normalizer.RawTable); ok {
			return table, nil
		}
	}

	table, err := c.underlying.History(ctx, symbol, start, end, interval)
	if err != nil {
		return normalizer.RawTable{}, err
	}

	c.cache.Set(key, table, c.historyTTL)

	return table, nil
}

// Quote implements provider.Provider with caching.
func (c *CachedProvider) Quote(ctx context.Context, symbol string) (types.Quote, error) {
	key := "quote:" + symbol

	if v, ok := c.cache.Get(key); ok {
		if q, ok := v.(types.Quote); ok {
			return q, nil
		}
	}

	q, err := c.underlying.Quote(ctx, symbol)
	if err != nil {
		return types.Quote{}, err
	}

	c.cache.Set(key, q, c.quoteTTL)

	return q, nil
}

func (c *CachedProvider) historyKey(symbol string, start, end time.Time, interval provider.Interval) string {
	return fmt.Sprintf("history:%s:%d:%d:%s", symbol, start.Unix(), end.Unix(), interval)
}
