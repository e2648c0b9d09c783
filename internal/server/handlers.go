package server

import (
	"encoding/json"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/quantlens/quantlens/internal/types"
	"github.com/quantlens/quantlens/pkg/errors"
	"github.com/quantlens/quantlens/pkg/marketdata/provider"
)

// defaultLookback is the history window served when no start is given.
const defaultLookback = 6 // months

type barPayload struct {
	Time     time.Time `json:"time"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	AdjClose *float64  `json:"adj_close"`
	Volume   float64   `json:"volume"`
}

type historyResponse struct {
	Symbol string       `json:"symbol"`
	Bars   []barPayload `json:"bars"`
}

type indicatorsResponse struct {
	Symbol string                `json:"symbol"`
	Times  []time.Time           `json:"times"`
	Series map[string][]*float64 `json:"series"`
}

type tickersResponse struct {
	Tickers []string `json:"tickers"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleTickers(w http.ResponseWriter, r *http.Request) {
	tickers, err := s.universe.Resolve(r.Context())
	if err != nil {
		s.writeError(w, http.StatusBadGateway, err)

		return
	}

	s.writeJSON(w, http.StatusOK, tickersResponse{Tickers: tickers})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	start, end, interval, err := parseRangeQuery(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)

		return
	}

	bars, err := s.marketData.History(r.Context(), symbol, start, end, interval)
	if err != nil {
		s.writeError(w, http.StatusBadGateway, err)

		return
	}

	payload := historyResponse{
		Symbol: symbol,
		Bars:   make([]barPayload, 0, len(bars)),
	}

	for _, bar := range bars {
		p := barPayload{
			Time:   bar.Time,
			Open:   bar.Open,
			High:   bar.High,
			Low:    bar.Low,
			Close:  bar.Close,
			Volume: bar.Volume,
		}
		if bar.AdjClose.IsSome() {
			v := bar.AdjClose.Unwrap()
			p.AdjClose = &v
		}

		payload.Bars = append(payload.Bars, p)
	}

	s.writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleIndicators(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	start, end, interval, err := parseRangeQuery(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)

		return
	}

	names, err := parseIndicatorNames(r.URL.Query().Get("names"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)

		return
	}

	bars, series, err := s.marketData.Indicators(r.Context(), symbol, start, end, interval, names)
	if err != nil {
		s.writeError(w, http.StatusBadGateway, err)

		return
	}

	payload := indicatorsResponse{
		Symbol: symbol,
		Times:  bars.Times(),
		Series: make(map[string][]*float64, len(series)),
	}
	for name, s := range series {
		payload.Series[string(name)] = nullableFloats(s.Values)
	}

	s.writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	quote, err := s.marketData.Quote(r.Context(), symbol)
	if err != nil {
		status := http.StatusBadGateway
		if errors.HasCode(err, errors.ErrCodeQuoteUnavailable) {
			status = http.StatusNotFound
		}

		s.writeError(w, status, err)

		return
	}

	s.writeJSON(w, http.StatusOK, quote)
}

// parseRangeQuery reads start, end and interval query parameters. Dates
// accept RFC 3339 or plain dates. Omitted bounds default to the last six
// months of daily bars.
func parseRangeQuery(r *http.Request) (time.Time, time.Time, provider.Interval, error) {
	query := r.URL.Query()

	end := time.Now().UTC()

	if raw := query.Get("end"); raw != "" {
		parsed, err := parseTimeParam(raw)
		if err != nil {
			return time.Time{}, time.Time{}, "", err
		}

		end = parsed
	}

	start := end.AddDate(0, -defaultLookback, 0)

	if raw := query.Get("start"); raw != "" {
		parsed, err := parseTimeParam(raw)
		if err != nil {
			return time.Time{}, time.Time{}, "", err
		}

		start = parsed
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, "", errors.New(errors.ErrCodeInvalidTimeRange, "end is before start")
	}

	interval := provider.IntervalDay
	if raw := query.Get("interval"); raw != "" {
		interval = provider.Interval(raw)
		if !interval.Valid() {
			return time.Time{}, time.Time{}, "", errors.Newf(errors.ErrCodeInvalidParameter, "unknown interval %q", raw)
		}
	}

	return start, end, interval, nil
}

func parseTimeParam(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, errors.Newf(errors.ErrCodeInvalidParameter, "unparsable time %q", raw)
}

// parseIndicatorNames maps a comma separated names parameter to indicator
// types. An empty parameter selects every indicator.
func parseIndicatorNames(raw string) ([]types.IndicatorType, error) {
	if strings.TrimSpace(raw) == "" {
		return types.AllIndicatorTypes(), nil
	}

	var names []types.IndicatorType

	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		name, ok := types.ParseIndicatorType(part)
		if !ok {
			return nil, errors.Newf(errors.ErrCodeInvalidParameter, "unknown indicator %q", part)
		}

		names = append(names, name)
	}

	if len(names) == 0 {
		return types.AllIndicatorTypes(), nil
	}

	return names, nil
}

// nullableFloats converts NaN to null so the payload stays valid JSON.
func nullableFloats(values []float64) []*float64 {
	out := make([]*float64, len(values))

	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}

		v := v
		out[i] = &v
	}

	return out
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}
