package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/quantlens/quantlens/internal/config"
	"github.com/quantlens/quantlens/internal/logger"
	"github.com/quantlens/quantlens/internal/universe"
	"github.com/quantlens/quantlens/internal/version"
	"github.com/quantlens/quantlens/pkg/marketdata"
	"github.com/quantlens/quantlens/pkg/marketdata/provider"
	"github.com/quantlens/quantlens/pkg/marketdata/store"
)

// fetchAction downloads history for the requested tickers (or the whole
// universe) and persists the normalized bars in DuckDB.
func fetchAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	interval := provider.Interval(cmd.String("interval"))
	if !interval.Valid() {
		return fmt.Errorf("unknown interval %q", cmd.String("interval"))
	}

	log, err := logger.NewLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	client, err := marketdata.NewClient(cfg.MarketData, log)
	if err != nil {
		return fmt.Errorf("failed to create market data client: %w", err)
	}

	tickers := cmd.StringSlice("ticker")
	if len(tickers) == 0 {
		tickers, err = resolveUniverse(ctx, cfg, log)
		if err != nil {
			return err
		}
	}

	storePath := cmd.String("out")
	if storePath == "" {
		storePath = cfg.StorePath
	}

	barStore, err := store.NewStore(storePath, log)
	if err != nil {
		return err
	}
	defer barStore.Close()

	start := cmd.Timestamp("start")
	end := cmd.Timestamp("end")

	bar := progressbar.NewOptions(len(tickers),
		progressbar.OptionSetDescription("Fetching history"),
		progressbar.OptionShowCount())

	fetched := 0

	for _, ticker := range tickers {
		bars, err := client.History(ctx, ticker, start, end, interval)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}

			log.Warn("skipping ticker", zap.String("symbol", ticker), zap.Error(err))
			bar.Add(1)

			continue
		}

		if err := barStore.WriteBars(ticker, bars); err != nil {
			return err
		}

		fetched++

		bar.Add(1)
	}

	bar.Finish()
	log.Info("fetch complete",
		zap.Int("tickers", fetched),
		zap.String("store", storePath))

	return nil
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}

	return config.Load(path)
}

func resolveUniverse(ctx context.Context, cfg config.Config, log *logger.Logger) ([]string, error) {
	if len(cfg.Universe.Symbols) > 0 {
		return cfg.Universe.Symbols, nil
	}

	resolver := universe.DefaultResolver(log)
	if cfg.Universe.IndexURL != "" {
		resolver = universe.NewResolver(log,
			universe.NewNSESourceWithURL(cfg.Universe.IndexURL),
			universe.NewStaticSource())
	}

	return resolver.Resolve(ctx)
}

func main() {
	cmd := &cli.Command{
		Name:    "fetch",
		Usage:   "Download and normalize price history into a local DuckDB store",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the YAML config file",
			},
			&cli.StringSliceFlag{
				Name:    "ticker",
				Aliases: []string{"t"},
				Usage:   "Ticker symbol to fetch. Repeatable. Defaults to the full universe.",
			},
			&cli.TimestampFlag{
				Name:    "start",
				Aliases: []string{"s"},
				Usage:   "Start date in `YYYY-MM-DD` format",
				Value:   time.Now().AddDate(0, -6, 0),
				Config: cli.TimestampConfig{
					Layouts: []string{"2006-01-02"},
				},
			},
			&cli.TimestampFlag{
				Name:    "end",
				Aliases: []string{"e"},
				Usage:   "End date in `YYYY-MM-DD` format. Defaults to today.",
				Value:   time.Now(),
				Config: cli.TimestampConfig{
					Layouts: []string{"2006-01-02"},
				},
			},
			&cli.StringFlag{
				Name:    "interval",
				Aliases: []string{"i"},
				Usage:   "Bar interval (1d, 1wk, 1mo)",
				Value:   string(provider.IntervalDay),
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "DuckDB file to write bars into. Overrides store_path from config.",
				Value:   "data/bars.duckdb",
			},
		},
		Action: fetchAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
