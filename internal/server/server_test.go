package server

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/quantlens/quantlens/internal/config"
	"github.com/quantlens/quantlens/internal/logger"
	"github.com/quantlens/quantlens/internal/types"
	"github.com/quantlens/quantlens/pkg/errors"
	"github.com/quantlens/quantlens/pkg/marketdata/provider"
)

type stubMarketData struct {
	bars       types.BarSequence
	series     map[types.IndicatorType]types.Series
	quote      types.Quote
	historyErr error
	quoteErr   error

	lastNames    []types.IndicatorType
	lastInterval provider.Interval
}

func (m *stubMarketData) History(ctx context.Context, symbol string, start, end time.Time, interval provider.Interval) (types.BarSequence, error) {
	m.lastInterval = interval

	if m.historyErr != nil {
		return nil, m.historyErr
	}

	return m.bars, nil
}

func (m *stubMarketData) Indicators(ctx context.Context, symbol string, start, end time.Time, interval provider.Interval, names []types.IndicatorType) (types.BarSequence, map[types.IndicatorType]types.Series, error) {
	m.lastNames = names

	if m.historyErr != nil {
		return nil, nil, m.historyErr
	}

	return m.bars, m.series, nil
}

func (m *stubMarketData) Quote(ctx context.Context, symbol string) (types.Quote, error) {
	if m.quoteErr != nil {
		return types.Quote{}, m.quoteErr
	}

	return m.quote, nil
}

type stubUniverse struct {
	symbols []string
	err     error
}

func (u *stubUniverse) Resolve(ctx context.Context) ([]string, error) {
	return u.symbols, u.err
}

type ServerTestSuite struct {
	suite.Suite
	marketData *stubMarketData
	universe   *stubUniverse
	server     *Server
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) SetupTest() {
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	s.marketData = &stubMarketData{
		bars: types.BarSequence{
			{Time: day, Open: 99, High: 101, Low: 98, Close: 100, AdjClose: optional.Some(99.5), Volume: 1000},
			{Time: day.AddDate(0, 0, 1), Open: 100, High: 103, Low: 99, Close: 102, Volume: 1200},
		},
		series: map[types.IndicatorType]types.Series{
			types.IndicatorTypeRSI14: {
				Times:  []time.Time{day, day.AddDate(0, 0, 1)},
				Values: []float64{math.NaN(), 55.5},
			},
		},
		quote: types.Quote{Symbol: "RELIANCE.NS", ShortName: "Reliance Industries"},
	}
	s.universe = &stubUniverse{symbols: []string{"RELIANCE.NS", "TCS.NS"}}

	log := &logger.Logger{Logger: zap.NewNop()}
	s.server = NewServer(config.DefaultConfig().Server, s.marketData, s.universe, log)
}

func (s *ServerTestSuite) request(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	recorder := httptest.NewRecorder()
	s.server.Router().ServeHTTP(recorder, req)

	return recorder
}

func (s *ServerTestSuite) TestTickers() {
	recorder := s.request("/api/v1/tickers")
	s.Require().Equal(http.StatusOK, recorder.Code)

	var payload tickersResponse
	s.Require().NoError(json.Unmarshal(recorder.Body.Bytes(), &payload))
	s.Assert().Equal([]string{"RELIANCE.NS", "TCS.NS"}, payload.Tickers)
}

func (s *ServerTestSuite) TestTickersUpstreamFailure() {
	s.universe.err = fmt.Errorf("nse archive unreachable")

	recorder := s.request("/api/v1/tickers")
	s.Assert().Equal(http.StatusBadGateway, recorder.Code)
}

func (s *ServerTestSuite) TestHistory() {
	recorder := s.request("/api/v1/history/RELIANCE.NS")
	s.Require().Equal(http.StatusOK, recorder.Code)
	s.Assert().NotEmpty(recorder.Header().Get("X-Request-Id"))

	var payload historyResponse
	s.Require().NoError(json.Unmarshal(recorder.Body.Bytes(), &payload))
	s.Assert().Equal("RELIANCE.NS", payload.Symbol)
	s.Require().Len(payload.Bars, 2)
	s.Assert().Equal(100.0, payload.Bars[0].Close)
	s.Require().NotNil(payload.Bars[0].AdjClose)
	s.Assert().Equal(99.5, *payload.Bars[0].AdjClose)
	s.Assert().Nil(payload.Bars[1].AdjClose)
	s.Assert().Equal(provider.IntervalDay, s.marketData.lastInterval)
}

func (s *ServerTestSuite) TestHistoryEmptyIsOK() {
	s.marketData.bars = nil

	recorder := s.request("/api/v1/history/OBSCURE.NS")
	s.Require().Equal(http.StatusOK, recorder.Code)

	var payload historyResponse
	s.Require().NoError(json.Unmarshal(recorder.Body.Bytes(), &payload))
	s.Assert().Empty(payload.Bars)
}

func (s *ServerTestSuite) TestHistoryBadInterval() {
	recorder := s.request("/api/v1/history/RELIANCE.NS?interval=4h")
	s.Assert().Equal(http.StatusBadRequest, recorder.Code)
}

func (s *ServerTestSuite) TestHistoryBadTimeRange() {
	recorder := s.request("/api/v1/history/RELIANCE.NS?start=2024-06-01&end=2024-01-01")
	s.Assert().Equal(http.StatusBadRequest, recorder.Code)
}

func (s *ServerTestSuite) TestHistoryUnparsableDate() {
	recorder := s.request("/api/v1/history/RELIANCE.NS?start=tomorrow")
	s.Assert().Equal(http.StatusBadRequest, recorder.Code)
}

func (s *ServerTestSuite) TestHistoryUpstreamFailure() {
	s.marketData.historyErr = errors.New(errors.ErrCodeProvidersExhausted, "no provider returned data")

	recorder := s.request("/api/v1/history/RELIANCE.NS")
	s.Assert().Equal(http.StatusBadGateway, recorder.Code)
}

func (s *ServerTestSuite) TestIndicatorsEncodesNaNAsNull() {
	recorder := s.request("/api/v1/indicators/RELIANCE.NS?names=rsi_14")
	s.Require().Equal(http.StatusOK, recorder.Code)

	var payload indicatorsResponse
	s.Require().NoError(json.Unmarshal(recorder.Body.Bytes(), &payload))

	values, ok := payload.Series["rsi_14"]
	s.Require().True(ok)
	s.Require().Len(values, 2)
	s.Assert().Nil(values[0])
	s.Require().NotNil(values[1])
	s.Assert().Equal(55.5, *values[1])
}

func (s *ServerTestSuite) TestIndicatorsDefaultsToAll() {
	recorder := s.request("/api/v1/indicators/RELIANCE.NS")
	s.Require().Equal(http.StatusOK, recorder.Code)
	s.Assert().Equal(types.AllIndicatorTypes(), s.marketData.lastNames)
}

func (s *ServerTestSuite) TestIndicatorsLooseNames() {
	recorder := s.request("/api/v1/indicators/RELIANCE.NS?names=SMA20,rsi")
	s.Require().Equal(http.StatusOK, recorder.Code)
	s.Assert().Equal([]types.IndicatorType{types.IndicatorTypeSMA20, types.IndicatorTypeRSI14}, s.marketData.lastNames)
}

func (s *ServerTestSuite) TestIndicatorsUnknownName() {
	recorder := s.request("/api/v1/indicators/RELIANCE.NS?names=vwap")
	s.Assert().Equal(http.StatusBadRequest, recorder.Code)
}

func (s *ServerTestSuite) TestQuote() {
	recorder := s.request("/api/v1/quote/RELIANCE.NS")
	s.Require().Equal(http.StatusOK, recorder.Code)

	var payload types.Quote
	s.Require().NoError(json.Unmarshal(recorder.Body.Bytes(), &payload))
	s.Assert().Equal("Reliance Industries", payload.ShortName)
}

func (s *ServerTestSuite) TestQuoteUnavailable() {
	s.marketData.quoteErr = errors.New(errors.ErrCodeQuoteUnavailable, "no quote support")

	recorder := s.request("/api/v1/quote/RELIANCE.NS")
	s.Assert().Equal(http.StatusNotFound, recorder.Code)
}

func (s *ServerTestSuite) TestUnknownRouteIs404() {
	recorder := s.request("/api/v1/forecast/RELIANCE.NS")
	s.Assert().Equal(http.StatusNotFound, recorder.Code)
}
