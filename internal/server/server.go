// Package server exposes the normalized history, indicator and quote
// operations over a small JSON HTTP API.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/quantlens/quantlens/internal/config"
	"github.com/quantlens/quantlens/internal/logger"
	"github.com/quantlens/quantlens/internal/types"
	"github.com/quantlens/quantlens/pkg/marketdata/provider"
)

// MarketData is the slice of the market data client the server needs.
type MarketData interface {
	History(ctx context.Context, symbol string, start, end time.Time, interval provider.Interval) (types.BarSequence, error)
	Indicators(ctx context.Context, symbol string, start, end time.Time, interval provider.Interval, names []types.IndicatorType) (types.BarSequence, map[types.IndicatorType]types.Series, error)
	Quote(ctx context.Context, symbol string) (types.Quote, error)
}

// Universe resolves the symbol list served by the tickers endpoint.
type Universe interface {
	Resolve(ctx context.Context) ([]string, error)
}

// Server serves the dashboard API.
type Server struct {
	marketData MarketData
	universe   Universe
	logger     *logger.Logger
	httpServer *http.Server
}

// NewServer creates a Server over the given dependencies.
func NewServer(serverConfig config.ServerConfig, marketData MarketData, universe Universe, log *logger.Logger) *Server {
	s := &Server{
		marketData: marketData,
		universe:   universe,
		logger:     log,
	}

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", serverConfig.Host, serverConfig.Port),
		Handler:           s.Router(),
		ReadTimeout:       serverConfig.ReadTimeout.Duration(),
		WriteTimeout:      serverConfig.WriteTimeout.Duration(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Router builds the route table. Exposed so tests can drive handlers without
// binding a socket.
func (s *Server) Router() http.Handler {
	router := mux.NewRouter()
	router.Use(s.requestLogging)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/tickers", s.handleTickers).Methods("GET")
	api.HandleFunc("/history/{symbol}", s.handleHistory).Methods("GET")
	api.HandleFunc("/indicators/{symbol}", s.handleIndicators).Methods("GET")
	api.HandleFunc("/quote/{symbol}", s.handleQuote).Methods("GET")

	return router
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("starting api server", zap.String("addr", s.httpServer.Addr))

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
