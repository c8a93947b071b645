package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kjannette/ifsol-backend/internal/api"
	"github.com/kjannette/ifsol-backend/internal/cache"
	"github.com/kjannette/ifsol-backend/internal/config"
	"github.com/kjannette/ifsol-backend/internal/db"
	"github.com/kjannette/ifsol-backend/internal/ethereum"
	"github.com/kjannette/ifsol-backend/internal/external"
	"github.com/kjannette/ifsol-backend/internal/fallback"
	"github.com/kjannette/ifsol-backend/internal/imagegen"
	"github.com/kjannette/ifsol-backend/internal/investment"
	"github.com/kjannette/ifsol-backend/internal/models"
	"github.com/kjannette/ifsol-backend/internal/notifications"
	"github.com/kjannette/ifsol-backend/internal/pricing"
	"github.com/kjannette/ifsol-backend/internal/quota"
	"github.com/kjannette/ifsol-backend/internal/repository"
	"github.com/kjannette/ifsol-backend/internal/roast"
	"github.com/kjannette/ifsol-backend/internal/scheduler"
)

const banner = `
╔══════════════════════════════════════╗
║   IFSOL - what if you bought SOL?    ║
║                                      ║
╚══════════════════════════════════════╝
`

func main() {
	fmt.Print(banner)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	cfg.Print()

	// Graceful shutdown context
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Static price table
	table := fallback.Default()
	if cfg.StaticPricesFile != "" {
		table, err = fallback.LoadYAML(cfg.StaticPricesFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[PRICE] %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Printf("[PRICE] Static table loaded (%d entries)\n", table.Len())

	// Range cache
	cgOpts := external.CoinGeckoOptions{
		BaseURL:       cfg.CoinGeckoBaseURL,
		APIKey:        cfg.CoinGeckoAPIKey,
		RatePerMinute: cfg.CoinGeckoRatePerMin,
	}
	var pingRedis func(context.Context) error
	if cfg.RedisAddr != "" {
		rc, err := cache.NewRangeCache(ctx, cache.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.RangeCacheTTL(),
		})
		if err != nil {
			fmt.Printf("[CACHE] Redis unavailable, continuing without range cache: %v\n", err)
		} else {
			defer rc.Close()
			cgOpts.Cache = rc
			pingRedis = rc.Ping
			fmt.Printf("[CACHE] Redis range cache at %s\n", cfg.RedisAddr)
		}
	}
	coingecko := external.NewCoinGeckoClient(cgOpts)

	// LLM
	llm := external.NewLLMClient(external.LLMOptions{
		APIKey:  cfg.OpenRouterAPIKey,
		BaseURL: cfg.LLMBaseURL,
		Model:   cfg.LLMModel,
		Referer: cfg.LLMReferer,
		Title:   cfg.LLMTitle,
	})

	// Alerts
	notify := notifications.NewSender(cfg.WebhookURL, cfg.BotName)
	alerts := notifications.NewDegradationAlerts(notify, cfg.AlertInterval())

	priceOpts := pricing.Options{
		Reporter:             alerts,
		FallbackCurrentPrice: cfg.FallbackCurrentPrice,
	}
	spotSources := []pricing.SpotSource{coingecko}

	// On-chain secondary price
	if cfg.EthereumAPIEndpoint != "" {
		eth, err := ethereum.NewClient(cfg.EthereumAPIEndpoint)
		if err != nil {
			fmt.Printf("[ORACLE] RPC unavailable, continuing without oracle: %v\n", err)
		} else {
			defer eth.Close()
			if id, err := eth.ChainID(ctx); err != nil {
				fmt.Printf("[ORACLE] Chain ID lookup failed: %v\n", err)
			} else {
				fmt.Printf("[ORACLE] Connected to chain %s\n", id)
			}
			oracle, err := ethereum.NewOracle(eth, cfg.ChainlinkSOLUSDFeed)
			if err != nil {
				fmt.Fprintf(os.Stderr, "[ORACLE] %v\n", err)
				os.Exit(1)
			}
			priceOpts.Secondary = oracle
			spotSources = append(spotSources, oracle)
			fmt.Println("[ORACLE] Chainlink SOL/USD oracle enabled as secondary price source")
		}
	}

	// Database
	var (
		recorder    investment.Recorder
		counter     quota.DailyCounter
		snapshots   api.SnapshotStore
		comparisons api.ComparisonLog
		pingDB      func(context.Context) error
		snapSched   *scheduler.SnapshotScheduler
	)
	if cfg.DBEnabled {
		fmt.Printf("\n[DB] Connecting to %s:%d/%s ...\n", cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err := db.Migrate(cfg.DSN()); err != nil {
			fmt.Fprintf(os.Stderr, "[DB] Migration failed: %v\n", err)
			os.Exit(1)
		}
		pool, err := db.Connect(cfg.DSN())
		if err != nil {
			fmt.Fprintf(os.Stderr, "[DB] Connection failed: %v\n", err)
			os.Exit(1)
		}
		defer func() {
			pool.Close()
			fmt.Println("[DB] Connection pool closed")
		}()

		if err := db.TestConnection(pool); err != nil {
			fmt.Fprintf(os.Stderr, "[DB] Test query failed: %v\n", err)
			os.Exit(1)
		}

		priceRepo := repository.NewPriceRepo(pool)
		comparisonRepo := repository.NewComparisonRepo(pool)

		priceOpts.Observer = priceRepo
		recorder = comparisonRepo
		counter = comparisonRepo
		snapshots = priceRepo
		comparisons = comparisonRepo
		pingDB = func(ctx context.Context) error { return db.Ping(ctx, pool) }

		snapSched = scheduler.NewSnapshotScheduler(priceRepo, scheduler.SnapshotSchedulerConfig{
			Interval: cfg.SnapshotInterval(),
			OnSnapshot: func(s *models.PriceSnapshot) {
				fmt.Printf("[SNAPSHOT] Recorded $%.2f from %s\n", s.Price, s.Source)
			},
		}, spotSources...)
	} else {
		mem := quota.NewMemoryCounter()
		recorder = mem
		counter = mem
		fmt.Println("[DB] Disabled - comparisons counted in memory only")
	}

	// Pricing chain
	resolver := pricing.NewResolver(coingecko, table, priceOpts)
	history := pricing.NewSynthesizer(coingecko, table, priceOpts)
	current := pricing.NewCurrentFetcher(coingecko, priceOpts)

	orchestrator := investment.NewOrchestrator(
		external.NewProductInfoResolver(llm),
		resolver,
		current,
		history,
	).WithRecorder(recorder)

	var guard api.QuotaChecker
	if g := quota.NewGuardian(cfg.MaxDailyComparisons, counter); g.Enabled() {
		guard = g
	}

	// Roasts and images
	recent := roast.NewRecent(cfg.RecentRoasts)
	renderer, err := imagegen.NewRenderer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "[IMAGE] Font setup failed: %v\n", err)
		os.Exit(1)
	}
	images, err := imagegen.NewStore(cfg.SharedImagesDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[IMAGE] %v\n", err)
		os.Exit(1)
	}

	// 1. API server
	srv := api.NewServer(api.Deps{
		Comparer:     orchestrator,
		Quota:        guard,
		Roasts:       roast.NewGenerator(llm, recent),
		RecentRoasts: recent,
		Renderer:     renderer,
		Images:       images,
		Current:      current,
		History:      history,
		Snapshots:    snapshots,
		Comparisons:  comparisons,
		PingDB:       pingDB,
		PingRedis:    pingRedis,
	}, cfg.Port, cfg.APIKey, cfg.CORSAllowOrigin)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(os.Stderr, "[API] Server error: %v\n", err)
			os.Exit(1)
		}
	}()

	// 2. Snapshot scheduler
	if snapSched != nil {
		snapSched.Start()
	} else {
		fmt.Println("[SNAPSHOT] Skipped - database disabled")
	}

	fmt.Println("\nAll services started successfully")

	// Wait for shutdown signal
	<-ctx.Done()
	fmt.Println("\nShutting down gracefully...")

	if snapSched != nil {
		snapSched.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "[API] Shutdown error: %v\n", err)
	}
	fmt.Println("[API] Server closed")
	fmt.Println("Shutdown complete")
}
