package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/moonveil/arcana-backend/internal/pkg/logger"
)

const keyNamespace = "insight:"

// SessionCache is a best-effort per-user cache for computed insights.
// Nothing in it is authoritative: misses and write failures only cost a
// recomputation.
type SessionCache interface {
	// Get loads the cached payload into out. Entries older than maxAge
	// are evicted and reported as a miss, as are unreadable entries.
	Get(ctx context.Context, key string, maxAge time.Duration, out any) (bool, error)
	Set(ctx context.Context, key string, v any)
	Clear(ctx context.Context, key string) error
	// ClearAll drops every cached entry belonging to the user.
	ClearAll(ctx context.Context, userID uuid.UUID) error
	Close() error
}

// kvStore is the slice of redis the cache needs. Tests swap in an
// in-memory implementation.
type kvStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, val string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Keys(ctx context.Context, pattern string) ([]string, error)
	Close() error
}

type cacheEntry struct {
	StoredAt time.Time       `json:"stored_at"`
	Payload  json.RawMessage `json:"payload"`
}

type sessionCache struct {
	log *logger.Logger
	kv  kvStore
	ttl time.Duration
	now func() time.Time
}

// NewSessionCache connects to REDIS_ADDR and pings before returning.
func NewSessionCache(log *logger.Logger) (SessionCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &sessionCache{
		log: log.With("service", "SessionCache"),
		kv:  &goredisKV{rdb: rdb},
		ttl: 24 * time.Hour,
		now: func() time.Time { return time.Now().UTC() },
	}, nil
}

// CacheKey builds the redis key for a user's cached insight, optionally
// narrowed to a subtype.
func CacheKey(userID uuid.UUID, subtype string) string {
	if subtype == "" {
		return keyNamespace + userID.String()
	}
	return keyNamespace + userID.String() + ":" + subtype
}

func (c *sessionCache) Get(ctx context.Context, key string, maxAge time.Duration, out any) (bool, error) {
	raw, ok, err := c.kv.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("cache read: %w", err)
	}
	if !ok {
		return false, nil
	}

	var entry cacheEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		c.log.Debug("Evicting unreadable cache entry", "key", key, "error", err)
		_ = c.kv.Del(ctx, key)
		return false, nil
	}
	if c.now().Sub(entry.StoredAt) > maxAge {
		_ = c.kv.Del(ctx, key)
		return false, nil
	}
	if err := json.Unmarshal(entry.Payload, out); err != nil {
		c.log.Debug("Evicting undecodable cache payload", "key", key, "error", err)
		_ = c.kv.Del(ctx, key)
		return false, nil
	}
	return true, nil
}

func (c *sessionCache) Set(ctx context.Context, key string, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		c.log.Debug("Cache payload not serializable, skipping", "key", key, "error", err)
		return
	}
	raw, err := json.Marshal(cacheEntry{StoredAt: c.now(), Payload: payload})
	if err != nil {
		c.log.Debug("Cache entry not serializable, skipping", "key", key, "error", err)
		return
	}
	if err := c.kv.Set(ctx, key, string(raw), c.ttl); err != nil {
		c.log.Debug("Cache write failed, skipping", "key", key, "error", err)
	}
}

func (c *sessionCache) Clear(ctx context.Context, key string) error {
	return c.kv.Del(ctx, key)
}

func (c *sessionCache) ClearAll(ctx context.Context, userID uuid.UUID) error {
	keys, err := c.kv.Keys(ctx, CacheKey(userID, "")+"*")
	if err != nil {
		return fmt.Errorf("cache scan: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return c.kv.Del(ctx, keys...)
}

func (c *sessionCache) Close() error { return c.kv.Close() }

type goredisKV struct {
	rdb *goredis.Client
}

func (g *goredisKV) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := g.rdb.Get(ctx, key).Result()
	if err == goredis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (g *goredisKV) Set(ctx context.Context, key, val string, ttl time.Duration) error {
	return g.rdb.Set(ctx, key, val, ttl).Err()
}

func (g *goredisKV) Del(ctx context.Context, keys ...string) error {
	return g.rdb.Del(ctx, keys...).Err()
}

func (g *goredisKV) Keys(ctx context.Context, pattern string) ([]string, error) {
	var out []string
	iter := g.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		out = append(out, iter.Val())
	}
	return out, iter.Err()
}

func (g *goredisKV) Close() error { return g.rdb.Close() }
