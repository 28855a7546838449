package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// TTL tiers for cached records. Scan results are short-lived; the product
// tier is reserved for a bulk product cache.
const (
	ScanTTL    = time.Hour
	ProductTTL = 24 * time.Hour
)

// Store is a key-value cache with per-entry TTL. Reads report misses, never
// errors; write failures are swallowed by implementations. A cache outage
// must never become a request failure.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// New returns a Redis-backed store when redisURL is set and parseable,
// otherwise the bounded in-process fallback. The fallback is a deployment
// concern (local dev without Redis), not a behavior change.
func New(redisURL string) Store {
	if redisURL != "" {
		opt, err := redis.ParseURL(redisURL)
		if err == nil {
			return &RedisStore{Rdb: redis.NewClient(opt)}
		}
		log.Warn().Err(err).Msg("Invalid REDIS_URL, falling back to in-process cache")
	}
	return NewMemoryStore()
}

// RedisStore is the distributed cache tier.
type RedisStore struct {
	Rdb *redis.Client
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	b, err := s.Rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Debug().Err(err).Str("key", key).Msg("Cache read failed")
		}
		return nil, false
	}
	return b, true
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := s.Rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("Cache write failed")
	}
}

const (
	memoryDefaultTTL = 5 * time.Minute
	memoryMaxEntries = 10000
)

// MemoryStore is a bounded in-process cache used when Redis is unavailable.
type MemoryStore struct {
	c *gocache.Cache
}

// NewMemoryStore creates the in-process fallback (5 min default TTL, ~10k entries).
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{c: gocache.New(memoryDefaultTTL, 10*time.Minute)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool) {
	v, ok := s.c.Get(key)
	if !ok {
		return nil, false
	}
	b, ok := v.([]byte)
	return b, ok
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	// go-cache has no capacity option; skip writes at the bound instead of
	// growing without limit. Cached entries are best-effort anyway.
	if _, exists := s.c.Get(key); !exists && s.c.ItemCount() >= memoryMaxEntries {
		return
	}
	if ttl <= 0 {
		ttl = memoryDefaultTTL
	}
	s.c.Set(key, value, ttl)
}
