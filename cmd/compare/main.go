// Command compare runs investment comparisons from the terminal and prints
// them as a table. It uses the same configuration as the server but never
// touches the database.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/kjannette/ifsol-backend/internal/config"
	"github.com/kjannette/ifsol-backend/internal/external"
	"github.com/kjannette/ifsol-backend/internal/fallback"
	"github.com/kjannette/ifsol-backend/internal/investment"
	"github.com/kjannette/ifsol-backend/internal/models"
	"github.com/kjannette/ifsol-backend/internal/pricing"
	"github.com/kjannette/ifsol-backend/internal/report"
)

func main() {
	offline := flag.Bool("offline", false, "skip CoinGecko and price from the static table only")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall deadline for all comparisons")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: compare [flags] \"product name\" ...\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	table := fallback.Default()
	if cfg.StaticPricesFile != "" {
		if table, err = fallback.LoadYAML(cfg.StaticPricesFile); err != nil {
			fmt.Fprintf(os.Stderr, "[PRICE] %v\n", err)
			os.Exit(1)
		}
	}

	var (
		ranges pricing.RangeSource = offlineSource{}
		spot   pricing.SpotSource  = offlineSource{}
	)
	if !*offline {
		cg := external.NewCoinGeckoClient(external.CoinGeckoOptions{
			BaseURL:       cfg.CoinGeckoBaseURL,
			APIKey:        cfg.CoinGeckoAPIKey,
			RatePerMinute: cfg.CoinGeckoRatePerMin,
		})
		ranges, spot = cg, cg
	}

	llm := external.NewLLMClient(external.LLMOptions{
		APIKey:  cfg.OpenRouterAPIKey,
		BaseURL: cfg.LLMBaseURL,
		Model:   cfg.LLMModel,
		Referer: cfg.LLMReferer,
		Title:   cfg.LLMTitle,
	})

	opts := pricing.Options{FallbackCurrentPrice: cfg.FallbackCurrentPrice}
	orchestrator := investment.NewOrchestrator(
		external.NewProductInfoResolver(llm),
		pricing.NewResolver(ranges, table, opts),
		pricing.NewCurrentFetcher(spot, opts),
		pricing.NewSynthesizer(ranges, table, opts),
	)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var (
		results  []*models.ComparisonResult
		failures []report.Failure
	)
	for _, name := range flag.Args() {
		r, err := orchestrator.Calculate(ctx, name)
		if err != nil {
			failures = append(failures, report.Failure{ProductName: name, Err: err})
			continue
		}
		results = append(results, r)
	}

	report.WriteComparisons(os.Stdout, results, failures)
	if len(results) == 0 {
		os.Exit(1)
	}
}

// offlineSource refuses every request so the pricing chain falls back to
// the static table.
type offlineSource struct{}

func (offlineSource) Name() string { return "offline" }

func (offlineSource) Range(context.Context, time.Time, time.Time) (models.PriceSeries, error) {
	return nil, errOffline
}

func (offlineSource) SpotPrice(context.Context) (float64, error) {
	return 0, errOffline
}

var errOffline = errors.New("offline mode")
