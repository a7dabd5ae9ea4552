package cache

import (
	"context"
	"sync"
	"time"

	redis "github.com/go-redis/redis/v8"
)

// Cache stores raw API response bodies keyed by request URL so that re-runs
// within a TTL do not hit the platform again.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, val []byte, ttl time.Duration)
}

type memory struct {
	mu sync.Mutex
	m  map[string]entry
}

type entry struct {
	b   []byte
	exp time.Time
}

// NewMemory returns an in-process cache with per-entry TTLs.
func NewMemory() Cache { return &memory{m: make(map[string]entry)} }

func (c *memory) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.m[key]
	if !ok || (!e.exp.IsZero() && time.Now().After(e.exp)) {
		return nil, false
	}
	return e.b, true
}

func (c *memory) Set(key string, val []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := entry{b: append([]byte(nil), val...)}
	if ttl > 0 {
		e.exp = time.Now().Add(ttl)
	}
	c.m[key] = e
}

type redisCache struct {
	r       *redis.Client
	timeout time.Duration
}

// NewRedis wraps an existing Redis client. Failures degrade to cache misses;
// the report run never depends on Redis being up.
func NewRedis(client *redis.Client) Cache {
	return &redisCache{r: client, timeout: 500 * time.Millisecond}
}

// NewAuto returns a Redis-backed cache when addr is non-empty, otherwise an
// in-memory cache.
func NewAuto(addr string) Cache {
	if addr != "" {
		return NewRedis(redis.NewClient(&redis.Options{Addr: addr}))
	}
	return NewMemory()
}

func (r *redisCache) Get(key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	v, err := r.r.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return v, true
}

func (r *redisCache) Set(key string, val []byte, ttl time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	_ = r.r.Set(ctx, key, val, ttl).Err()
}
