package extract

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores extracted articles by URL.
type Cache interface {
	// Get returns the cached article and true, or false on a miss.
	Get(ctx context.Context, url string) (*Article, bool, error)
	Set(ctx context.Context, url string, article *Article, ttl time.Duration) error
}

// DefaultCachePrefix namespaces extraction keys in Redis.
const DefaultCachePrefix = "scry:extract:"

// RedisCache is a Cache that stores articles as JSON in Redis.
type RedisCache struct {
	client redis.Cmdable
	prefix string
}

var _ Cache = (*RedisCache)(nil)

// NewRedisCache wraps an existing client. An empty prefix uses
// DefaultCachePrefix.
func NewRedisCache(client redis.Cmdable, prefix string) *RedisCache {
	if prefix == "" {
		prefix = DefaultCachePrefix
	}
	return &RedisCache{client: client, prefix: prefix}
}

// NewRedisClient parses a redis:// or rediss:// URL and verifies the server
// answers a ping within five seconds.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = 5 * time.Second
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// Get implements Cache.Get.
func (c *RedisCache) Get(ctx context.Context, url string) (*Article, bool, error) {
	raw, err := c.client.Get(ctx, c.key(url)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var a Article
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, false, fmt.Errorf("decode cached article: %w", err)
	}
	return &a, true, nil
}

// Set implements Cache.Set.
func (c *RedisCache) Set(ctx context.Context, url string, article *Article, ttl time.Duration) error {
	raw, err := json.Marshal(article)
	if err != nil {
		return fmt.Errorf("encode article: %w", err)
	}
	return c.client.Set(ctx, c.key(url), raw, ttl).Err()
}

func (c *RedisCache) key(url string) string {
	sum := sha256.Sum256([]byte(url))
	return c.prefix + hex.EncodeToString(sum[:])
}
