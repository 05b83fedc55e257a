package provider

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jonesrussell/shopsearch/internal/domain"
	"github.com/jonesrussell/shopsearch/internal/logger"
)

// Cache stores provider results keyed by the normalized query triple.
// A hit returns the previous result list unchanged.
type Cache interface {
	Get(ctx context.Context, key string) ([]domain.Product, bool)
	Set(ctx context.Context, key string, products []domain.Product, ttl time.Duration)
}

// cacheKey derives a stable key from (query, sites, filters). Site order
// and filter order do not affect the key.
func cacheKey(query string, sites []string, filters domain.Filters) string {
	sorted := append([]string(nil), sites...)
	sort.Strings(sorted)

	payload := query + "|" + strings.Join(sorted, ",") + "|" + filters.CanonicalString()
	sum := sha256.Sum256([]byte(payload))
	return "provider:search:" + hex.EncodeToString(sum[:])
}

// RedisCache is the production cache implementation.
type RedisCache struct {
	client *redis.Client
	logger logger.Interface
}

// NewRedisCache creates a Redis-backed provider cache.
func NewRedisCache(client *redis.Client, log logger.Interface) *RedisCache {
	return &RedisCache{client: client, logger: log}
}

// Get returns the cached product list for a key, if present. Cache errors
// degrade to a miss.
func (c *RedisCache) Get(ctx context.Context, key string) ([]domain.Product, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("provider cache read failed", "error", err)
		}
		return nil, false
	}

	var products []domain.Product
	if unmarshalErr := json.Unmarshal(data, &products); unmarshalErr != nil {
		c.logger.Warn("provider cache entry malformed", "error", unmarshalErr)
		return nil, false
	}

	return products, true
}

// Set stores a product list under a key with the given TTL. Failures are
// logged and otherwise ignored; caching is an optimization.
func (c *RedisCache) Set(ctx context.Context, key string, products []domain.Product, ttl time.Duration) {
	data, err := json.Marshal(products)
	if err != nil {
		c.logger.Warn("failed to marshal provider cache entry", "error", err)
		return
	}

	if setErr := c.client.Set(ctx, key, data, ttl).Err(); setErr != nil {
		c.logger.Warn("provider cache write failed", "error", setErr)
	}
}

// NoOpCache never hits. Used when no Redis is configured.
type NoOpCache struct{}

// Get always misses.
func (NoOpCache) Get(ctx context.Context, key string) ([]domain.Product, bool) {
	return nil, false
}

// Set discards the entry.
func (NoOpCache) Set(ctx context.Context, key string, products []domain.Product, ttl time.Duration) {
}
