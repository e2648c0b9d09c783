package provider

import (
	"context"
	"fmt"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"

	"github.com/quantlens/quantlens/internal/normalizer"
	"github.com/quantlens/quantlens/internal/types"
	"github.com/quantlens/quantlens/pkg/errors"
)

// PolygonClient fetches aggregate bars from Polygon.io. It serves as a
// fallback when Yahoo has no data for a symbol. Polygon has no company
// snapshot endpoint wired here, so Quote always reports unavailable and the
// provider chain moves on.
type PolygonClient struct {
	client *polygon.Client
}

// NewPolygonClient creates a new Polygon provider.
func NewPolygonClient(apiKey string) (Provider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("apiKey is required")
	}

	return &PolygonClient{
		client: polygon.New(apiKey),
	}, nil
}

// Name implements Provider.
func (c *PolygonClient) Name() string {
	return string(ProviderPolygon)
}

// polygonColumns is the lowercase shape of Polygon aggregate responses.
var polygonColumns = []string{"open", "high", "low", "close", "volume"}

// History implements Provider.
func (c *PolygonClient) History(ctx context.Context, symbol string, start, end time.Time, interval Interval) (normalizer.RawTable, error) {
	//nolint:exhaustruct // third-party struct with many optional fields
	params := models.ListAggsParams{
		Ticker:     symbol,
		Multiplier: 1,
		Timespan:   polygonTimespan(interval),
		From:       models.Millis(start),
		To:         models.Millis(end),
	}.WithLimit(50000)

	table := normalizer.RawTable{Columns: polygonColumns}

	iter := c.client.ListAggs(ctx, params)
	for iter.Next() {
		agg := iter.Item()

		table.Index = append(table.Index, time.Time(agg.Timestamp).UTC())
		table.Rows = append(table.Rows, []any{
			agg.Open,
			agg.High,
			agg.Low,
			agg.Close,
			agg.Volume,
		})
	}

	if err := iter.Err(); err != nil {
		return normalizer.RawTable{}, errors.Wrapf(errors.ErrCodeFetchFailed, err, "polygon history failed for %s", symbol)
	}

	return table, nil
}

// Quote implements Provider.
func (c *PolygonClient) Quote(ctx context.Context, symbol string) (types.Quote, error) {
	return types.Quote{}, errors.Newf(errors.ErrCodeQuoteUnavailable, "polygon provider has no quote support for %s", symbol)
}

func polygonTimespan(interval Interval) models.Timespan {
	switch interval {
	case IntervalWeek:
		return models.Week
	case IntervalMonth:
		return models.Month
	default:
		return models.Day
	}
}
