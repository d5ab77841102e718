package cache

import (
	"context"
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/platform/obs"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "cvrp:run:"

// RedisResultCache keeps JSON-encoded runs keyed by their request fingerprint.
type RedisResultCache struct {
	rdb redis.UniversalClient
}

func NewRedisResultCache(rdb redis.UniversalClient) *RedisResultCache {
	return &RedisResultCache{rdb: rdb}
}

// DialRedis connects to addr, accepting either host:port or a redis:// URL.
func DialRedis(ctx context.Context, addr string) (*redis.Client, error) {
	var opt *redis.Options
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("dial redis: parse url: %w", err)
		}
		opt = parsed
	} else {
		opt = &redis.Options{Addr: addr}
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("dial redis %s: ping: %w", opt.Addr, err)
	}
	return rdb, nil
}

// Get returns (nil, nil) on a cache miss.
func (c *RedisResultCache) Get(ctx context.Context, key string) (_ *domain.Run, err error) {
	defer obs.Time(ctx, "cache.Get")(&err)

	if c.rdb == nil {
		return nil, errors.New("redis result cache: client is nil")
	}
	if key == "" {
		return nil, errors.New("get cached run: key must not be empty")
	}

	data, err := c.rdb.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cached run %q: %w", key, err)
	}

	var run domain.Run
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("get cached run %q: decode: %w", key, err)
	}
	return &run, nil
}

// Put stores run under key. A zero ttl keeps the entry until evicted.
func (c *RedisResultCache) Put(ctx context.Context, key string, run *domain.Run, ttl time.Duration) error {
	if c.rdb == nil {
		return errors.New("redis result cache: client is nil")
	}
	if key == "" {
		return errors.New("put cached run: key must not be empty")
	}
	if run == nil {
		return errors.New("put cached run: run is nil")
	}

	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("put cached run %q: encode: %w", key, err)
	}

	if err := c.rdb.Set(ctx, keyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("put cached run %q: %w", key, err)
	}
	return nil
}
