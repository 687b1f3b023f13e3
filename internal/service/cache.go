package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"github.com/zeebo/xxh3"
)

// ResponseCache stores finished response documents. Only complete
// 200 documents go in; error documents always render fresh.
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, body []byte)
}

// CacheKey derives a stable key from the endpoint path and the request
// query. Encode sorts parameters, so equivalent requests share a key.
func CacheKey(endpoint string, query url.Values) string {
	return fmt.Sprintf("oai:%016x", xxh3.HashString(endpoint+"?"+query.Encode()))
}

type MemoryCache struct {
	store *cache.Cache
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		store: cache.New(ttl, 2*ttl),
	}
}

func (m *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if cached, found := m.store.Get(key); found {
		return cached.([]byte), true
	}
	return nil, false
}

func (m *MemoryCache) Set(ctx context.Context, key string, body []byte) {
	m.store.Set(key, body, cache.DefaultExpiration)
}

type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(redisClient *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		rdb: redisClient,
		ttl: ttl,
	}
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	body, err := r.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return body, true
}

func (r *RedisCache) Set(ctx context.Context, key string, body []byte) {
	err := r.rdb.Set(ctx, key, body, r.ttl).Err()
	if err != nil {
		slog.WarnContext(
			ctx, "Failed to store cached response",
			slog.String("error", err.Error()),
			slog.String("module", "cache"),
		)
	}
}

type MemcachedCache struct {
	mc  *memcache.Client
	ttl time.Duration
}

func NewMemcachedCache(mc *memcache.Client, ttl time.Duration) *MemcachedCache {
	return &MemcachedCache{
		mc:  mc,
		ttl: ttl,
	}
}

func (m *MemcachedCache) Get(ctx context.Context, key string) ([]byte, bool) {
	item, err := m.mc.Get(key)
	if err != nil {
		return nil, false
	}
	return item.Value, true
}

func (m *MemcachedCache) Set(ctx context.Context, key string, body []byte) {
	err := m.mc.Set(&memcache.Item{
		Key:        key,
		Value:      body,
		Expiration: int32(m.ttl.Seconds()),
	})
	if err != nil {
		slog.WarnContext(
			ctx, "Failed to store cached response",
			slog.String("error", err.Error()),
			slog.String("module", "cache"),
		)
	}
}
