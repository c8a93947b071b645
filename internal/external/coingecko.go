package external

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/kjannette/ifsol-backend/internal/httputil"
	"github.com/kjannette/ifsol-backend/internal/models"
	"golang.org/x/time/rate"
)

const (
	defaultCoinGeckoURL = "https://api.coingecko.com/api/v3"
	defaultCoinID       = "solana"

	// The public demo tier allows ~30 calls/min.
	defaultRatePerMinute = 25
)

// ErrMalformedPayload is returned when an upstream response decodes but
// lacks the fields we need.
var ErrMalformedPayload = errors.New("malformed upstream payload")

// RangeCache stores market_chart/range responses.
type RangeCache interface {
	GetRange(ctx context.Context, key string) (models.PriceSeries, bool)
	SetRange(ctx context.Context, key string, series models.PriceSeries)
}

type CoinGeckoOptions struct {
	BaseURL       string
	APIKey        string
	CoinID        string
	RatePerMinute int
	Cache         RangeCache
}

type CoinGeckoClient struct {
	baseURL    string
	apiKey     string
	coinID     string
	httpClient *http.Client
	retry      httputil.RetryConfig
	limiter    *rate.Limiter
	cache      RangeCache
}

func NewCoinGeckoClient(opts CoinGeckoOptions) *CoinGeckoClient {
	base := opts.BaseURL
	if base == "" {
		base = defaultCoinGeckoURL
	}
	coin := opts.CoinID
	if coin == "" {
		coin = defaultCoinID
	}
	perMin := opts.RatePerMinute
	if perMin <= 0 {
		perMin = defaultRatePerMinute
	}

	return &CoinGeckoClient{
		baseURL:    base,
		apiKey:     opts.APIKey,
		coinID:     coin,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		retry:      httputil.SingleAttempt,
		limiter:    rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMin)), 5),
		cache:      opts.Cache,
	}
}

func (c *CoinGeckoClient) Name() string { return "coingecko" }

// SpotPrice returns the current USD price. Never cached.
func (c *CoinGeckoClient) SpotPrice(ctx context.Context) (float64, error) {
	q := url.Values{}
	q.Set("ids", c.coinID)
	q.Set("vs_currencies", "usd")

	var data map[string]map[string]float64
	if err := c.getJSON(ctx, "/simple/price?"+q.Encode(), &data); err != nil {
		return 0, fmt.Errorf("coingecko simple price: %w", err)
	}

	usd, ok := data[c.coinID]["usd"]
	if !ok {
		return 0, fmt.Errorf("coingecko simple price: %w: no usd quote for %s", ErrMalformedPayload, c.coinID)
	}
	if usd <= 0 {
		return 0, fmt.Errorf("coingecko simple price: %w: invalid price %f", ErrMalformedPayload, usd)
	}
	return usd, nil
}

// Range returns the price samples in [from, to]. An empty list is not an
// error; a payload without a price list is ErrMalformedPayload.
func (c *CoinGeckoClient) Range(ctx context.Context, from, to time.Time) (models.PriceSeries, error) {
	key := c.rangeKey(from, to)
	if c.cache != nil {
		if series, ok := c.cache.GetRange(ctx, key); ok {
			return series, nil
		}
	}

	q := url.Values{}
	q.Set("vs_currency", "usd")
	q.Set("from", strconv.FormatInt(from.Unix(), 10))
	q.Set("to", strconv.FormatInt(to.Unix(), 10))

	var data struct {
		Prices *models.PriceSeries `json:"prices"`
	}
	path := fmt.Sprintf("/coins/%s/market_chart/range?%s", c.coinID, q.Encode())
	if err := c.getJSON(ctx, path, &data); err != nil {
		return nil, fmt.Errorf("coingecko range: %w", err)
	}
	if data.Prices == nil {
		return nil, fmt.Errorf("coingecko range: %w: missing prices", ErrMalformedPayload)
	}

	series := *data.Prices
	if c.cache != nil && len(series) > 0 {
		c.cache.SetRange(ctx, key, series)
	}
	return series, nil
}

// rangeKey buckets the upper bound by hour so "from X until now" queries
// share a cache entry within the hour.
func (c *CoinGeckoClient) rangeKey(from, to time.Time) string {
	return fmt.Sprintf("range:%s:%d:%d", c.coinID, from.Unix(), to.Truncate(time.Hour).Unix())
}

func (c *CoinGeckoClient) getJSON(ctx context.Context, path string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	resp, err := httputil.Do(ctx, c.httpClient, c.retry, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		if c.apiKey != "" {
			req.Header.Set("x-cg-demo-api-key", c.apiKey)
		}
		return req, nil
	})
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return httputil.NewStatusError(resp)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrMalformedPayload, err)
	}
	return nil
}
