// Package pagecache keeps rendered views in memory until they are revalidated.
package pagecache

import (
	"context"
	"log/slog"
	"strings"
	"time"

	goCache "github.com/patrickmn/go-cache"
)

const (
	DefaultExpiration      = 5 * time.Minute
	DefaultCleanupInterval = 10 * time.Minute
)

// Cache stores view data keyed by path and an optional variant such as a search query.
type Cache struct {
	cache   *goCache.Cache
	enabled bool
}

type Config struct {
	Enabled         bool
	TTL             time.Duration
	CleanupInterval time.Duration
}

func New(cfg Config) *Cache {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultExpiration
	}

	cleanup := cfg.CleanupInterval
	if cleanup <= 0 {
		cleanup = DefaultCleanupInterval
	}

	return &Cache{
		cache:   goCache.New(ttl, cleanup),
		enabled: cfg.Enabled,
	}
}

// Key builds the cache key for a path and variant. Variants live under the path so that
// revalidating the path drops all of them.
func Key(path, variant string) string {
	return path + "?" + variant
}

func (c *Cache) Get(_ context.Context, path, variant string) (any, bool) {
	if !c.enabled {
		return nil, false
	}

	return c.cache.Get(Key(path, variant))
}

func (c *Cache) Set(_ context.Context, path, variant string, value any) {
	if !c.enabled {
		return
	}

	c.cache.SetDefault(Key(path, variant), value)
}

// Revalidate drops every cached variant of path so the next read recomputes it.
func (c *Cache) Revalidate(ctx context.Context, path string) {
	prefix := path + "?"
	dropped := 0

	for k := range c.cache.Items() {
		if strings.HasPrefix(k, prefix) {
			c.cache.Delete(k)
			dropped++
		}
	}

	slog.DebugContext(ctx, "revalidated path", "path", path, "entries", dropped)
}

// Len reports the number of unexpired entries.
func (c *Cache) Len() int {
	return c.cache.ItemCount()
}
