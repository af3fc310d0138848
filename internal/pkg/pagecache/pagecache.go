// Package pagecache caches whole rendered pages for a fixed window. Entries are keyed by
// URL only, so every viewer gets the same copy until it expires or Clear is called.
package pagecache

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cache"
)

const (
	DefaultExpiration = 20 * time.Second
	keyPrefix         = "page:"
)

type PageCache struct {
	storage    fiber.Storage
	expiration time.Duration
}

// New returns a page cache writing to storage. A non-positive expiration falls back to
// DefaultExpiration.
func New(storage fiber.Storage, expiration time.Duration) *PageCache {
	if expiration <= 0 {
		expiration = DefaultExpiration
	}
	return &PageCache{storage: storage, expiration: expiration}
}

// Handler caches GET responses of the routes it is mounted on
func (p *PageCache) Handler() fiber.Handler {
	return cache.New(cache.Config{
		Expiration:   p.expiration,
		Storage:      p.storage,
		CacheHeader:  "X-Cache",
		CacheControl: false,
		KeyGenerator: func(c *fiber.Ctx) string {
			return keyPrefix + c.OriginalURL()
		},
	})
}

func (p *PageCache) Expiration() time.Duration {
	return p.expiration
}

// Clear drops every cached page
func (p *PageCache) Clear() error {
	if err := p.storage.Reset(); err != nil {
		return fmt.Errorf("clear page cache: %w", err)
	}
	return nil
}
