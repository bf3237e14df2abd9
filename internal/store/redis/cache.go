// Package redis provides an optional Redis-backed cache for fetched bar
// series, keyed by ticker and lookback window. It exists to keep repeated
// scans inside provider rate limits; the scanner is fully functional
// without it.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	goredis "github.com/go-redis/redis/v8"

	"github.com/cattychan/stock-scanner/internal/model"
)

// Config configures the bar cache.
type Config struct {
	Addr     string // Redis address, e.g. "localhost:6379"
	Password string
	DB       int
	TTL      time.Duration // series expiry, e.g. 15m
}

// Cache stores JSON-encoded bar series with a TTL.
type Cache struct {
	client *goredis.Client
	ttl    time.Duration
}

// New creates a bar cache and pings the server.
func New(cfg Config) (*Cache, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	log.Printf("[barcache] connected to %s (ttl=%s)", cfg.Addr, cfg.TTL)
	return &Cache{client: client, ttl: cfg.TTL}, nil
}

// Close releases the underlying client.
func (c *Cache) Close() error { return c.client.Close() }

func barKey(ticker, window string) string {
	return "bars:" + ticker + ":" + window
}

// GetSeries returns the cached series for ticker+window, or (nil, false)
// on a miss. Errors count as misses: the caller falls through to a live
// fetch.
func (c *Cache) GetSeries(ctx context.Context, ticker, window string) (*model.BarSeries, bool) {
	raw, err := c.client.Get(ctx, barKey(ticker, window)).Bytes()
	if err != nil {
		if err != goredis.Nil {
			log.Printf("[barcache] get %s/%s: %v", ticker, window, err)
		}
		return nil, false
	}

	var series model.BarSeries
	if err := json.Unmarshal(raw, &series); err != nil {
		log.Printf("[barcache] corrupt entry %s/%s: %v", ticker, window, err)
		c.client.Del(ctx, barKey(ticker, window))
		return nil, false
	}
	return &series, true
}

// SetSeries stores a series with the configured TTL. Failures are logged
// and swallowed; caching is best-effort.
func (c *Cache) SetSeries(ctx context.Context, ticker, window string, series *model.BarSeries) {
	raw, err := json.Marshal(series)
	if err != nil {
		log.Printf("[barcache] marshal %s/%s: %v", ticker, window, err)
		return
	}
	if err := c.client.Set(ctx, barKey(ticker, window), raw, c.ttl).Err(); err != nil {
		log.Printf("[barcache] set %s/%s: %v", ticker, window, err)
	}
}
