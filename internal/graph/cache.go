package graph

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/agbru/mathsolve/internal/logging"
)

// ErrCacheMiss is returned by Cache.Get when no image is stored.
var ErrCacheMiss = errors.New("graph cache miss")

const keyPrefix = "mathsolve:graph:"

// Cache stores rendered images by expression.
type Cache interface {
	Get(ctx context.Context, expression string) ([]byte, error)
	Set(ctx context.Context, expression string, png []byte) error
}

// RedisCache is a Cache backed by redis with a fixed TTL per entry.
type RedisCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisCache wraps client. A non-positive ttl stores entries without
// expiry.
func NewRedisCache(client redis.UniversalClient, ttl time.Duration) *RedisCache {
	if ttl < 0 {
		ttl = 0
	}
	return &RedisCache{client: client, ttl: ttl}
}

// DialRedis connects to addr and verifies the connection with PING.
func DialRedis(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return client, nil
}

func cacheKey(expression string) string {
	return keyPrefix + strings.TrimSpace(expression)
}

// Get returns the cached image for expression.
func (c *RedisCache) Get(ctx context.Context, expression string) ([]byte, error) {
	data, err := c.client.Get(ctx, cacheKey(expression)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	return data, nil
}

// Set stores png under expression.
func (c *RedisCache) Set(ctx context.Context, expression string, png []byte) error {
	if err := c.client.Set(ctx, cacheKey(expression), png, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// CachedRenderer consults a Cache before delegating to another Renderer.
// Cache faults are logged and otherwise ignored.
type CachedRenderer struct {
	next   Renderer
	cache  Cache
	logger logging.Logger
}

// NewCachedRenderer wraps next with cache.
func NewCachedRenderer(next Renderer, cache Cache, logger logging.Logger) *CachedRenderer {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &CachedRenderer{next: next, cache: cache, logger: logger}
}

// Render returns the cached image or renders and stores a new one.
func (c *CachedRenderer) Render(ctx context.Context, expression string) ([]byte, error) {
	expression = strings.TrimSpace(expression)
	png, err := c.cache.Get(ctx, expression)
	if err == nil {
		c.logger.Debug("graph cache hit", logging.String("expression", expression))
		return png, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		c.logger.Error("graph cache read failed", err, logging.String("expression", expression))
	}

	png, err = c.next.Render(ctx, expression)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(ctx, expression, png); err != nil {
		c.logger.Error("graph cache write failed", err, logging.String("expression", expression))
	}
	return png, nil
}
