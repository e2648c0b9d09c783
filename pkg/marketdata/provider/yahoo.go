package provider

import (
	"context"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/equity"
	"github.com/shopspring/decimal"

	"github.com/quantlens/quantlens/internal/normalizer"
	"github.com/quantlens/quantlens/internal/types"
	"github.com/quantlens/quantlens/pkg/errors"
)

// YahooClient fetches history and quotes from Yahoo Finance. It needs no API
// key, which makes it the default primary provider for NSE symbols.
type YahooClient struct{}

// NewYahooClient creates a new Yahoo Finance provider.
func NewYahooClient() *YahooClient {
	return &YahooClient{}
}

// Name implements Provider.
func (c *YahooClient) Name() string {
	return string(ProviderYahoo)
}

// yahooColumns mirrors the column labels of a yfinance-style download,
// including the Adj Close column the normalizer must keep separate from Close.
var yahooColumns = []string{"Open", "High", "Low", "Close", "Adj Close", "Volume"}

// History implements Provider. The table keeps Yahoo's native column shape.
func (c *YahooClient) History(ctx context.Context, symbol string, start, end time.Time, interval Interval) (normalizer.RawTable, error) {
	if err := ctx.Err(); err != nil {
		return normalizer.RawTable{}, err
	}

	params := &chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: yahooInterval(interval),
	}

	table := normalizer.RawTable{Columns: yahooColumns}

	iter := chart.Get(params)
	for iter.Next() {
		bar := iter.Bar()

		table.Index = append(table.Index, time.Unix(int64(bar.Timestamp), 0).UTC())
		table.Rows = append(table.Rows, []any{
			bar.Open.InexactFloat64(),
			bar.High.InexactFloat64(),
			bar.Low.InexactFloat64(),
			bar.Close.InexactFloat64(),
			bar.AdjClose.InexactFloat64(),
			float64(bar.Volume),
		})
	}

	if err := iter.Err(); err != nil {
		return normalizer.RawTable{}, errors.Wrapf(errors.ErrCodeFetchFailed, err, "yahoo history failed for %s", symbol)
	}

	return table, nil
}

// Quote implements Provider.
func (c *YahooClient) Quote(ctx context.Context, symbol string) (types.Quote, error) {
	if err := ctx.Err(); err != nil {
		return types.Quote{}, err
	}

	q, err := equity.Get(symbol)
	if err != nil {
		return types.Quote{}, errors.Wrapf(errors.ErrCodeQuoteUnavailable, err, "yahoo quote failed for %s", symbol)
	}

	return types.Quote{
		Symbol:        symbol,
		ShortName:     q.ShortName,
		Currency:      q.CurrencyID,
		Exchange:      q.FullExchangeName,
		MarketCap:     q.MarketCap,
		PreviousClose: decimal.NewFromFloat(q.RegularMarketPreviousClose),
		CurrentPrice:  decimal.NewFromFloat(q.RegularMarketPrice),
		TrailingPE:    q.TrailingPE,
		ForwardPE:     q.ForwardPE,
		PriceToBook:   q.PriceToBook,
		DividendYield: q.TrailingAnnualDividendYield,
	}, nil
}

func yahooInterval(interval Interval) datetime.Interval {
	switch interval {
	case IntervalWeek:
		return datetime.FiveDay
	case IntervalMonth:
		return datetime.OneMonth
	default:
		return datetime.OneDay
	}
}
