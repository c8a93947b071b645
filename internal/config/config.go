package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port            int
	APIKey          string
	CORSAllowOrigin string

	// CoinGecko
	CoinGeckoAPIKey     string
	CoinGeckoBaseURL    string
	CoinGeckoRatePerMin int

	// LLM (OpenRouter or any OpenAI-compatible endpoint)
	OpenRouterAPIKey string
	LLMBaseURL       string
	LLMModel         string
	LLMReferer       string
	LLMTitle         string

	// Fallback pricing
	FallbackCurrentPrice float64
	StaticPricesFile     string

	// Roasts and images
	SharedImagesDir string
	RecentRoasts    int

	// Database
	DBEnabled  bool
	DBHost     string
	DBPort     int
	DBName     string
	DBUser     string
	DBPassword string

	// Redis range cache
	RedisAddr            string
	RedisPassword        string
	RedisDB              int
	RangeCacheTTLMinutes int

	// On-chain secondary price
	EthereumAPIEndpoint string
	ChainlinkSOLUSDFeed string

	// Alerts
	WebhookURL           string
	BotName              string
	AlertIntervalMinutes int

	// Timing and limits
	SnapshotIntervalMinutes int
	MaxDailyComparisons     int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		// Server
		Port:            envInt("PORT", 3001),
		APIKey:          envStr("API_KEY", ""),
		CORSAllowOrigin: envStr("CORS_ALLOW_ORIGIN", "*"),

		// CoinGecko
		CoinGeckoAPIKey:     envStr("COINGECKO_API_KEY", ""),
		CoinGeckoBaseURL:    envStr("COINGECKO_BASE_URL", "https://api.coingecko.com/api/v3"),
		CoinGeckoRatePerMin: envInt("COINGECKO_RATE_PER_MIN", 25),

		// LLM
		OpenRouterAPIKey: envStr("OPENROUTER_API_KEY", ""),
		LLMBaseURL:       envStr("LLM_BASE_URL", "https://openrouter.ai/api/v1"),
		LLMModel:         envStr("LLM_MODEL", "google/gemini-2.0-flash-001"),
		LLMReferer:       envStr("LLM_REFERER", "http://localhost:3000"),
		LLMTitle:         envStr("LLM_TITLE", "Solana Investment Calculator"),

		// Fallback pricing
		FallbackCurrentPrice: envFloat("FALLBACK_CURRENT_PRICE", 200),
		StaticPricesFile:     envStr("STATIC_PRICES_FILE", ""),

		// Roasts and images
		SharedImagesDir: envStr("SHARED_IMAGES_DIR", "public/shared-images"),
		RecentRoasts:    envInt("RECENT_ROASTS", 20),

		// Database
		DBEnabled:  envBool("DB_ENABLED", false),
		DBHost:     envStr("DB_HOST", "localhost"),
		DBPort:     envInt("DB_PORT", 5432),
		DBName:     envStr("DB_NAME", "ifsol"),
		DBUser:     envStr("DB_USER", ""),
		DBPassword: envStr("DB_PASSWORD", ""),

		// Redis
		RedisAddr:            envStr("REDIS_ADDR", ""),
		RedisPassword:        envStr("REDIS_PASSWORD", ""),
		RedisDB:              envInt("REDIS_DB", 0),
		RangeCacheTTLMinutes: envInt("RANGE_CACHE_TTL_MINUTES", 60),

		// On-chain
		EthereumAPIEndpoint: envStr("ETHEREUM_API_ENDPOINT", ""),
		ChainlinkSOLUSDFeed: envStr("CHAINLINK_SOL_USD_FEED", "0x4ffC43a60e009B551865A93d232E33Fce9f01507"),

		// Alerts
		WebhookURL:           envStr("WEBHOOK_URL", ""),
		BotName:              envStr("BOT_NAME", "IFSOL"),
		AlertIntervalMinutes: envInt("ALERT_INTERVAL_MINUTES", 15),

		// Timing and limits
		SnapshotIntervalMinutes: envInt("SNAPSHOT_INTERVAL_MINUTES", 60),
		MaxDailyComparisons:     envInt("MAX_DAILY_COMPARISONS", 0),
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []string

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Sprintf("PORT %d is out of range", c.Port))
	}
	if c.FallbackCurrentPrice <= 0 {
		errs = append(errs, "FALLBACK_CURRENT_PRICE must be positive")
	}
	if c.DBEnabled && c.DBUser == "" {
		errs = append(errs, "DB_USER is required when DB_ENABLED=true")
	}
	if c.MaxDailyComparisons < 0 {
		errs = append(errs, "MAX_DAILY_COMPARISONS cannot be negative")
	}
	if c.OpenRouterAPIKey == "" {
		fmt.Println("[WARN] OPENROUTER_API_KEY not set, comparisons will fail and roasts use fallback text")
	}
	if c.CoinGeckoAPIKey == "" {
		fmt.Println("[WARN] COINGECKO_API_KEY not set, using the keyless public tier")
	}
	if c.APIKey == "" {
		fmt.Println("[WARN] API_KEY not set, /v1 operator API has no authentication")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

func (c *Config) Print() {
	fmt.Println("=== IFSOL Backend Configuration ===")
	fmt.Printf("Port: %d\n", c.Port)
	fmt.Printf("CORS Origin: %s\n", c.CORSAllowOrigin)
	fmt.Println("--------------------------------------")
	fmt.Println("Pricing:")
	fmt.Printf("  CoinGecko: %s (%s, %d req/min)\n", c.CoinGeckoBaseURL,
		boolLabel(c.CoinGeckoAPIKey != "", "demo key", "no key"), c.CoinGeckoRatePerMin)
	fmt.Printf("  Chainlink: %s\n", boolLabel(c.EthereumAPIEndpoint != "", truncAddr(c.ChainlinkSOLUSDFeed)+"...", "disabled"))
	fmt.Printf("  Fallback current price: $%.2f\n", c.FallbackCurrentPrice)
	fmt.Printf("  Static table: %s\n", boolLabel(c.StaticPricesFile != "", c.StaticPricesFile, "built-in"))
	fmt.Printf("  Range cache: %s\n", boolLabel(c.RedisAddr != "", fmt.Sprintf("%s (ttl %s)", c.RedisAddr, c.RangeCacheTTL()), "disabled"))
	fmt.Println("--------------------------------------")
	fmt.Printf("LLM: %s via %s (%s)\n", c.LLMModel, c.LLMBaseURL, boolLabel(c.OpenRouterAPIKey != "", "configured", "not set"))
	fmt.Printf("Shared images: %s\n", c.SharedImagesDir)
	fmt.Printf("Database: %s\n", boolLabel(c.DBEnabled, fmt.Sprintf("%s:%d/%s", c.DBHost, c.DBPort, c.DBName), "disabled"))
	fmt.Printf("Alerts: %s\n", boolLabel(c.WebhookURL != "", "webhook", "console only"))
	fmt.Printf("Daily comparison cap: %s\n", boolLabel(c.MaxDailyComparisons > 0, strconv.Itoa(c.MaxDailyComparisons), "off"))
	fmt.Println("======================================")
}

func (c *Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

func (c *Config) RangeCacheTTL() time.Duration {
	return time.Duration(c.RangeCacheTTLMinutes) * time.Minute
}

func (c *Config) AlertInterval() time.Duration {
	return time.Duration(c.AlertIntervalMinutes) * time.Minute
}

func (c *Config) SnapshotInterval() time.Duration {
	return time.Duration(c.SnapshotIntervalMinutes) * time.Minute
}

// --- helpers ---

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		v = strings.ToLower(v)
		return v == "true" || v == "1" || v == "yes"
	}
	return fallback
}

func truncAddr(addr string) string {
	if len(addr) > 10 {
		return addr[:10]
	}
	return addr
}

func boolLabel(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
