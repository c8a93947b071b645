// Package cache stores CoinGecko range responses in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kjannette/ifsol-backend/internal/models"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ifsol:"

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// RangeCache keeps price series under a TTL. Cache failures are logged and
// treated as misses.
type RangeCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRangeCache connects and pings Redis.
func NewRangeCache(ctx context.Context, opts RedisOptions) (*RangeCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", opts.Addr, err)
	}

	ttl := opts.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	fmt.Printf("[CACHE] Connected to Redis at %s (ttl %s)\n", opts.Addr, ttl)
	return &RangeCache{client: client, ttl: ttl}, nil
}

func (c *RangeCache) GetRange(ctx context.Context, key string) (models.PriceSeries, bool) {
	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		fmt.Printf("[CACHE] Get %s failed: %v\n", key, err)
		return nil, false
	}

	var series models.PriceSeries
	if err := json.Unmarshal(data, &series); err != nil {
		fmt.Printf("[CACHE] Discarding corrupt entry %s: %v\n", key, err)
		return nil, false
	}
	return series, true
}

func (c *RangeCache) SetRange(ctx context.Context, key string, series models.PriceSeries) {
	data, err := json.Marshal(series)
	if err != nil {
		fmt.Printf("[CACHE] Encode %s failed: %v\n", key, err)
		return
	}
	if err := c.client.Set(ctx, keyPrefix+key, data, c.ttl).Err(); err != nil {
		fmt.Printf("[CACHE] Set %s failed: %v\n", key, err)
	}
}

func (c *RangeCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RangeCache) Close() error {
	return c.client.Close()
}
