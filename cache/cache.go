// Package cache wraps a listings fetcher with a per-zip Redis cache. A hit
// skips the upstream call entirely; misses and Redis outages fall through
// to the wrapped fetcher, so the cache never makes a search fail.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"home-tracker/models"
	"home-tracker/utils"
)

const keyPrefix = "hometracker:listings:"

// Fetcher returns the raw-listing envelope for a validated zip code.
type Fetcher interface {
	FetchListings(zipCode string) (*models.ListingsResponse, error)
}

// Cache is a read-through Fetcher backed by Redis.
type Cache struct {
	inner  Fetcher
	client *redis.Client
	ttl    time.Duration
	logger *utils.Logger
}

// New creates a Cache in front of the given fetcher.
func New(addr string, ttl time.Duration, inner Fetcher, logger *utils.Logger) *Cache {
	return &Cache{
		inner:  inner,
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
		logger: logger,
	}
}

// FetchListings answers from Redis when a fresh entry exists for the zip
// code, otherwise delegates to the wrapped fetcher and stores the result.
// Only successful envelopes are cached; failures always reach the caller.
func (c *Cache) FetchListings(zipCode string) (*models.ListingsResponse, error) {
	ctx := context.Background()
	key := keyPrefix + zipCode

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var envelope models.ListingsResponse
		if jerr := json.Unmarshal(raw, &envelope); jerr == nil {
			c.logger.Debug("[cache] Hit for %s (%d listings)", zipCode, len(envelope.Listings))
			return &envelope, nil
		}
		// Unreadable entry: drop it and refetch.
		c.client.Del(ctx, key)
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("[cache] Redis unavailable, fetching upstream: %v", err)
	}

	envelope, err := c.inner.FetchListings(zipCode)
	if err != nil {
		return nil, err
	}

	if raw, jerr := json.Marshal(envelope); jerr == nil {
		if serr := c.client.Set(ctx, key, raw, c.ttl).Err(); serr != nil {
			c.logger.Warn("[cache] Store failed for %s: %v", zipCode, serr)
		}
	}
	return envelope, nil
}

// Close releases the Redis connection.
func (c *Cache) Close() error {
	return c.client.Close()
}
