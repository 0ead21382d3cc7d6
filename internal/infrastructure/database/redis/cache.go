package redis

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/turtacn/molgen/internal/application/molgen"
	"github.com/turtacn/molgen/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molgen/pkg/errors"
)

const resultNamespace = "result:"

// ResultCache stores generation results as JSON keyed by request hash.
type ResultCache struct {
	client *Client
	logger logging.Logger
	prefix string
	ttl    time.Duration
	jitter float64
	group  singleflight.Group
}

type CacheOption func(*ResultCache)

func WithPrefix(prefix string) CacheOption {
	return func(c *ResultCache) { c.prefix = prefix }
}

func WithTTL(ttl time.Duration) CacheOption {
	return func(c *ResultCache) { c.ttl = ttl }
}

// WithJitter spreads expiry by +/- fraction of the TTL. Zero disables it.
func WithJitter(fraction float64) CacheOption {
	return func(c *ResultCache) { c.jitter = fraction }
}

// NewResultCache builds a cache on top of client. Prefix and TTL default to
// the client's configuration.
func NewResultCache(client *Client, log logging.Logger, opts ...CacheOption) *ResultCache {
	if log == nil {
		log = logging.NewNopLogger()
	}
	cfg := client.Config()
	c := &ResultCache{
		client: client,
		logger: log.Named("result_cache"),
		prefix: cfg.KeyPrefix,
		ttl:    cfg.DefaultTTL,
		jitter: 0.1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ molgen.ResultCache = (*ResultCache)(nil)

func (c *ResultCache) fullKey(key string) string {
	return c.prefix + resultNamespace + key
}

func (c *ResultCache) expiry() time.Duration {
	if c.ttl <= 0 || c.jitter <= 0 {
		return c.ttl
	}
	delta := float64(c.ttl) * c.jitter * (rand.Float64()*2 - 1)
	return c.ttl + time.Duration(delta)
}

// Get returns the cached result for key. A miss is (nil, false, nil).
// Concurrent lookups of the same key share one round trip; each caller
// decodes its own copy.
func (c *ResultCache) Get(ctx context.Context, key string) (*molgen.GenerateResult, bool, error) {
	fullKey := c.fullKey(key)
	v, err, _ := c.group.Do(fullKey, func() (interface{}, error) {
		data, err := c.client.Get(ctx, fullKey).Bytes()
		if stderrors.Is(err, redis.Nil) {
			return []byte(nil), nil
		}
		return data, err
	})
	if err != nil {
		return nil, false, errors.Wrap(err, errors.ErrCodeCacheError, "failed to get from cache")
	}
	data := v.([]byte)
	if len(data) == 0 {
		return nil, false, nil
	}

	var res molgen.GenerateResult
	if err := json.Unmarshal(data, &res); err != nil {
		c.logger.Warn("Dropping undecodable cache entry", logging.String("key", fullKey), logging.Err(err))
		_ = c.client.Del(ctx, fullKey).Err()
		return nil, false, nil
	}
	return &res, true, nil
}

// Set stores result under key with the configured TTL.
func (c *ResultCache) Set(ctx context.Context, key string, result *molgen.GenerateResult) error {
	if result == nil {
		return errors.InvalidParam("cache: nil result")
	}
	data, err := json.Marshal(result)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "serialization failed")
	}
	if err := c.client.Set(ctx, c.fullKey(key), data, c.expiry()).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "failed to write cache")
	}
	return nil
}

// Invalidate removes the entry for key.
func (c *ResultCache) Invalidate(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.fullKey(key)).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "failed to delete from cache")
	}
	return nil
}

//Personal.AI order the ending
