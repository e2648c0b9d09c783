package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/quantlens/quantlens/internal/config"
	"github.com/quantlens/quantlens/internal/logger"
	"github.com/quantlens/quantlens/internal/server"
	"github.com/quantlens/quantlens/internal/universe"
	"github.com/quantlens/quantlens/internal/version"
	"github.com/quantlens/quantlens/pkg/marketdata"
)

// serverAction wires the market data client, universe resolver and HTTP
// server, then serves until interrupted.
func serverAction(ctx context.Context, cmd *cli.Command) error {
	cfg := config.DefaultConfig()

	if path := cmd.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}

		cfg = loaded
	}

	log, err := logger.NewLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	client, err := marketdata.NewClient(cfg.MarketData, log)
	if err != nil {
		return err
	}

	var resolver *universe.Resolver

	switch {
	case len(cfg.Universe.Symbols) > 0:
		resolver = universe.NewResolver(log, universe.NewStaticSourceWithSymbols(cfg.Universe.Symbols))
	case cfg.Universe.IndexURL != "":
		resolver = universe.NewResolver(log,
			universe.NewNSESourceWithURL(cfg.Universe.IndexURL),
			universe.NewStaticSource())
	default:
		resolver = universe.DefaultResolver(log)
	}

	srv := server.NewServer(cfg.Server, client, resolver, log)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)

	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", zap.String("reason", "signal"))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

func main() {
	cmd := &cli.Command{
		Name:    "server",
		Usage:   "Serve normalized history, indicators and quotes over HTTP",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the YAML config file",
			},
		},
		Action: serverAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
