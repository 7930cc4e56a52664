package loader

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vnykmshr/shellkit/pkg/common/validation"
)

// Defaults for RedisConfig.
const (
	DefaultRedisPrefix  = "shellkit:resource"
	DefaultRedisTTL     = 24 * time.Hour
	DefaultRedisTimeout = 500 * time.Millisecond
)

// RedisConfig holds configuration for a RedisCache.
type RedisConfig struct {
	// Client is the Redis client. Required.
	Client redis.UniversalClient

	// Prefix namespaces the keys (default: "shellkit:resource").
	Prefix string

	// TTL is how long an entry lives (default: 24h).
	TTL time.Duration

	// Timeout bounds each Redis round trip (default: 500ms).
	Timeout time.Duration
}

// RedisCache stores resources in Redis hashes so several processes can share
// one fetched copy. Keys are derived from a hash of the URL, which keeps API
// keys in query strings out of the key space.
type RedisCache struct {
	client  redis.UniversalClient
	prefix  string
	ttl     time.Duration
	timeout time.Duration
}

// NewRedisCache creates a RedisCache from config.
func NewRedisCache(config RedisConfig) (*RedisCache, error) {
	if config.Client == nil {
		return nil, validation.ValidateNotNil(module, "redis_client", nil)
	}
	if err := validation.ValidateNonNegativeDuration(module, "redis_ttl", config.TTL); err != nil {
		return nil, err
	}
	if config.Prefix == "" {
		config.Prefix = DefaultRedisPrefix
	}
	if config.TTL == 0 {
		config.TTL = DefaultRedisTTL
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultRedisTimeout
	}

	return &RedisCache{
		client:  config.Client,
		prefix:  config.Prefix,
		ttl:     config.TTL,
		timeout: config.Timeout,
	}, nil
}

// Key returns the Redis key used for url.
func (c *RedisCache) Key(url string) string {
	sum := sha256.Sum256([]byte(url))
	return c.prefix + ":" + hex.EncodeToString(sum[:16])
}

// Get implements Cache. An entry whose checksum does not match its body is
// reported as a miss.
func (c *RedisCache) Get(ctx context.Context, url string) (*Resource, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	vals, err := c.client.HGetAll(ctx, c.Key(url)).Result()
	if err != nil {
		return nil, &RedisError{"get", err}
	}
	if len(vals) == 0 {
		return nil, ErrCacheMiss
	}

	loadedAt, err := time.Parse(time.RFC3339Nano, vals["loaded_at"])
	if err != nil {
		return nil, fmt.Errorf("%w: bad loaded_at: %v", ErrCacheMiss, err)
	}
	res := &Resource{
		URL:         vals["url"],
		Body:        []byte(vals["body"]),
		ContentType: vals["content_type"],
		Checksum:    vals["checksum"],
		LoadedAt:    loadedAt,
		Source:      SourceCache,
	}
	if err := res.Verify(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheMiss, err)
	}
	return res, nil
}

// Set implements Cache.
func (c *RedisCache) Set(ctx context.Context, url string, res *Resource) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	key := c.Key(url)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, map[string]interface{}{
			"url":          res.URL,
			"body":         res.Body,
			"content_type": res.ContentType,
			"checksum":     res.Checksum,
			"loaded_at":    res.LoadedAt.UTC().Format(time.RFC3339Nano),
		})
		pipe.Expire(ctx, key, c.ttl)
		return nil
	})
	if err != nil {
		return &RedisError{"set", err}
	}
	return nil
}

// Delete implements Cache.
func (c *RedisCache) Delete(ctx context.Context, url string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.client.Del(ctx, c.Key(url)).Err(); err != nil {
		return &RedisError{"delete", err}
	}
	return nil
}

// RedisError represents a Redis operation error.
type RedisError struct {
	Operation string
	Err       error
}

func (e *RedisError) Error() string {
	return "redis error in " + e.Operation + ": " + e.Err.Error()
}

func (e *RedisError) Unwrap() error {
	return e.Err
}
