// Package cache keeps short-lived copies of rendered analytics reports in
// Redis so dashboards polling the same period do not rescan the table.
package cache

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix         = "report:analytics:"
	connectionTimeout = 5 * time.Second
)

// ReportCache is safe to use as a nil pointer; every call is then a miss.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// Connect parses a redis:// URL and verifies the server answers.
func Connect(url string, ttl time.Duration) (*ReportCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return New(client, ttl), nil
}

func New(client *redis.Client, ttl time.Duration) *ReportCache {
	return &ReportCache{client: client, ttl: ttl}
}

// Key builds the cache key for a period and content-type selection. The
// selection is sorted so equal sets share an entry.
func Key(period string, contentTypes []string) string {
	types := append([]string(nil), contentTypes...)
	sort.Strings(types)
	return keyPrefix + period + ":" + strings.Join(types, ",")
}

// Get returns the cached payload and whether it was present.
func (c *ReportCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get %s: %w", key, err)
	}
	return val, true, nil
}

func (c *ReportCache) Set(ctx context.Context, key string, payload []byte) error {
	if c == nil {
		return nil
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

func (c *ReportCache) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

func (c *ReportCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
