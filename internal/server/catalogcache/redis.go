// Package catalogcache keeps the public course list in Redis.
package catalogcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/coursehub/internal/server/models"
	"github.com/redis/go-redis/v9"
)

const (
	// GenKey holds the catalog generation, bumped on every mutation.
	GenKey = "coursehub:catalog:gen"
	prefix = "coursehub:catalog:"
)

// ListKey is where the list for generation gen is stored.
func ListKey(gen int64) string {
	return fmt.Sprintf("%s%d", prefix, gen)
}

// client is the part of *redis.Client the cache uses.
type client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

type RedisCache struct {
	client client
	ttl    time.Duration
}

// NewRedisCache connects to the server named by a redis:// URL.
func NewRedisCache(url string, ttl time.Duration) (*RedisCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return newRedisCache(redis.NewClient(opt), ttl), nil
}

func newRedisCache(c client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: c, ttl: ttl}
}

// Ping checks that the server is reachable.
func (r *RedisCache) Ping(ctx context.Context) error {
	if p, ok := r.client.(interface {
		Ping(context.Context) *redis.StatusCmd
	}); ok {
		return p.Ping(ctx).Err()
	}
	return nil
}

func (r *RedisCache) Close() error {
	if c, ok := r.client.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// Get returns the cached list for the current generation. A miss is
// (nil, gen, false, nil).
func (r *RedisCache) Get(ctx context.Context) ([]*models.Course, int64, bool, error) {
	gen, err := r.client.Get(ctx, GenKey).Int64()
	if errors.Is(err, redis.Nil) {
		gen, err = 0, nil
	}
	if err != nil {
		return nil, 0, false, err
	}

	raw, err := r.client.Get(ctx, ListKey(gen)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, gen, false, nil
	}
	if err != nil {
		return nil, gen, false, err
	}

	var list []*models.Course
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, gen, false, fmt.Errorf("corrupt catalog entry: %w", err)
	}

	return list, gen, true, nil
}

// Set stores courses under gen. Once gen has been superseded the entry is
// never read and expires with the TTL.
func (r *RedisCache) Set(ctx context.Context, gen int64, courses []*models.Course) error {
	if courses == nil {
		courses = []*models.Course{}
	}
	raw, err := json.Marshal(courses)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, ListKey(gen), raw, r.ttl).Err()
}

// Invalidate starts a new generation and drops the previous list.
func (r *RedisCache) Invalidate(ctx context.Context) error {
	gen, err := r.client.Incr(ctx, GenKey).Result()
	if err != nil {
		return err
	}
	return r.client.Del(ctx, ListKey(gen-1)).Err()
}
