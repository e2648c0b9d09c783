package universe

import (
	"context"
	"encoding/csv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/quantlens/quantlens/pkg/errors"
)

// DefaultNSEIndexURL is the NSE archive CSV listing the NIFTY 500
// constituents.
const DefaultNSEIndexURL = "https://archives.nseindia.com/content/indices/ind_nifty500list.csv"

// NSESource fetches the index constituent CSV from the NSE archives and
// extracts the symbol column, appending the .NS suffix Yahoo expects.
type NSESource struct {
	client *resty.Client
	url    string
}

// NewNSESource creates a source over the default NIFTY 500 index CSV.
func NewNSESource() *NSESource {
	return NewNSESourceWithURL(DefaultNSEIndexURL)
}

// NewNSESourceWithURL creates a source over a custom index CSV URL.
func NewNSESourceWithURL(url string) *NSESource {
	client := resty.New()
	client.SetTimeout(8 * time.Second)
	client.SetHeader("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64)")

	return &NSESource{
		client: client,
		url:    url,
	}
}

// Name implements Source.
func (s *NSESource) Name() string {
	return "nse"
}

// Symbols implements Source.
func (s *NSESource) Symbols(ctx context.Context) ([]string, error) {
	resp, err := s.client.R().SetContext(ctx).Get(s.url)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUniverseFetchFailed, "failed to fetch index csv", err)
	}

	if resp.IsError() {
		return nil, errors.Newf(errors.ErrCodeUniverseFetchFailed, "index csv returned status %d", resp.StatusCode())
	}

	symbols, err := parseSymbolColumn(resp.String())
	if err != nil {
		return nil, err
	}

	return symbols, nil
}

// parseSymbolColumn finds the symbol column by case-insensitive header match
// and returns its values with the .NS suffix appended.
func parseSymbolColumn(body string) ([]string, error) {
	reader := csv.NewReader(strings.NewReader(body))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParseFailed, "failed to parse index csv", err)
	}

	if len(records) < 2 {
		return nil, errors.New(errors.ErrCodeUniverseEmpty, "index csv has no data rows")
	}

	symbolCol := -1

	for i, header := range records[0] {
		if strings.EqualFold(strings.TrimSpace(header), "symbol") {
			symbolCol = i

			break
		}
	}

	if symbolCol == -1 {
		return nil, errors.New(errors.ErrCodeParseFailed, "index csv has no symbol column")
	}

	var symbols []string

	for _, record := range records[1:] {
		if symbolCol >= len(record) {
			continue
		}

		symbol := strings.TrimSpace(record[symbolCol])
		if symbol == "" {
			continue
		}

		if !strings.HasSuffix(symbol, ".NS") {
			symbol += ".NS"
		}

		symbols = append(symbols, symbol)
	}

	if len(symbols) == 0 {
		return nil, errors.New(errors.ErrCodeUniverseEmpty, "index csv has no symbols")
	}

	return symbols, nil
}
