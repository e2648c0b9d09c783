package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/quantlens/quantlens/internal/config"
	"github.com/quantlens/quantlens/internal/indicator"
	"github.com/quantlens/quantlens/internal/logger"
	"github.com/quantlens/quantlens/internal/normalizer"
	"github.com/quantlens/quantlens/internal/types"
	"github.com/quantlens/quantlens/internal/version"
	"github.com/quantlens/quantlens/pkg/marketdata"
	"github.com/quantlens/quantlens/pkg/marketdata/provider"
	"github.com/quantlens/quantlens/pkg/marketdata/store"
)

// indicatorsAction loads bars from a file or a provider, computes the
// requested indicators and prints the tail of each series.
func indicatorsAction(ctx context.Context, cmd *cli.Command) error {
	names, err := parseNames(cmd.String("names"))
	if err != nil {
		return err
	}

	log, err := logger.NewDevelopmentLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	var bars types.BarSequence

	switch {
	case cmd.String("file") != "":
		bars, err = loadFromFile(cmd.String("file"), log)
	case cmd.String("ticker") != "":
		bars, err = loadFromProvider(ctx, cmd, log)
	default:
		return fmt.Errorf("either --file or --ticker is required")
	}

	if err != nil {
		return err
	}

	if bars.IsEmpty() {
		fmt.Println("no usable bars")

		return nil
	}

	engine := indicator.NewEngine()
	series := engine.Compute(bars, names)

	printTail(bars, names, series, int(cmd.Int("tail")))

	return nil
}

func loadFromFile(path string, log *logger.Logger) (types.BarSequence, error) {
	barStore, err := store.NewStore("", log)
	if err != nil {
		return nil, err
	}
	defer barStore.Close()

	table, err := barStore.LoadTable(path)
	if err != nil {
		return nil, err
	}

	return normalizer.Normalize(table), nil
}

func loadFromProvider(ctx context.Context, cmd *cli.Command, log *logger.Logger) (types.BarSequence, error) {
	cfg := config.DefaultConfig()

	if path := cmd.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}

		cfg = loaded
	}

	client, err := marketdata.NewClient(cfg.MarketData, log)
	if err != nil {
		return nil, err
	}

	end := time.Now().UTC()
	start := end.AddDate(0, -6, 0)

	return client.History(ctx, cmd.String("ticker"), start, end, provider.IntervalDay)
}

func parseNames(raw string) ([]types.IndicatorType, error) {
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
			return nil, fmt.Errorf("unknown indicator %q", part)
		}

		names = append(names, name)
	}

	return names, nil
}

// printTail renders the last n rows as an aligned table, one column per
// computed series.
func printTail(bars types.BarSequence, names []types.IndicatorType, series map[types.IndicatorType]types.Series, n int) {
	columns := make([]types.IndicatorType, 0, len(series))

	for _, name := range names {
		if _, ok := series[name]; ok {
			columns = append(columns, name)
		}

		// MACD expands into three aligned series.
		if name == types.IndicatorTypeMACD {
			for _, extra := range []types.IndicatorType{types.IndicatorTypeMACDSignal, types.IndicatorTypeMACDHist} {
				if _, ok := series[extra]; ok {
					columns = append(columns, extra)
				}
			}
		}
	}

	first := len(bars) - n
	if first < 0 {
		first = 0
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	header := "date\tclose"
	for _, name := range columns {
		header += "\t" + string(name)
	}

	fmt.Fprintln(w, header)

	for i := first; i < len(bars); i++ {
		row := fmt.Sprintf("%s\t%.2f", bars[i].Time.Format("2006-01-02"), bars[i].Close)
		for _, name := range columns {
			row += "\t" + formatValue(series[name].Values[i])
		}

		fmt.Fprintln(w, row)
	}

	w.Flush()
}

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}

	return fmt.Sprintf("%.2f", v)
}

func main() {
	cmd := &cli.Command{
		Name:    "indicators",
		Usage:   "Compute technical indicators over a price history file or a live ticker",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "CSV or Parquet file with raw price history",
			},
			&cli.StringFlag{
				Name:    "ticker",
				Aliases: []string{"t"},
				Usage:   "Ticker symbol to fetch instead of reading a file",
			},
			&cli.StringFlag{
				Name:    "names",
				Aliases: []string{"n"},
				Usage:   "Comma separated indicator names (sma_20, ema_50, rsi_14, macd, ...). Defaults to all.",
			},
			&cli.IntFlag{
				Name:  "tail",
				Usage: "Number of trailing rows to print",
				Value: 10,
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the YAML config file (used with --ticker)",
			},
		},
		Action: indicatorsAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
