// Package cache keeps AI post summaries in memcached so repeated views do
// not hit the summarizer again.
package cache

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/bradfitz/gomemcache/memcache"

	"github.com/CrestNiraj12/termblog/app"
	"github.com/CrestNiraj12/termblog/domain"
)

const keyPrefix = "termblog:summary:"

// store is the subset of *memcache.Client the cache needs.
type store interface {
	Get(key string) (*memcache.Item, error)
	Set(item *memcache.Item) error
}

// SummaryCache decorates an app.SummaryService. Cache failures are logged
// and never surface to the caller.
type SummaryCache struct {
	next   app.SummaryService
	store  store
	ttl    time.Duration
	logger *log.Logger
}

// NewSummaryCache wraps next with a memcached client for servers.
func NewSummaryCache(next app.SummaryService, servers []string, ttl time.Duration, logger *log.Logger) *SummaryCache {
	mc := memcache.New(servers...)
	mc.Timeout = 200 * time.Millisecond
	return newSummaryCache(next, mc, ttl, logger)
}

func newSummaryCache(next app.SummaryService, s store, ttl time.Duration, logger *log.Logger) *SummaryCache {
	if logger == nil {
		logger = log.Default()
	}
	return &SummaryCache{next: next, store: s, ttl: ttl, logger: logger}
}

// Summary returns the cached summary or fetches and stores it.
func (c *SummaryCache) Summary(ctx context.Context, postID domain.ID) (string, error) {
	key := keyPrefix + postID.String()

	item, err := c.store.Get(key)
	switch {
	case err == nil && len(item.Value) > 0:
		return string(item.Value), nil
	case err != nil && !errors.Is(err, memcache.ErrCacheMiss):
		c.logger.Printf("summary cache get %s: %v", key, err)
	}

	summary, err := c.next.Summary(ctx, postID)
	if err != nil {
		return "", err
	}

	if err := c.store.Set(&memcache.Item{
		Key:        key,
		Value:      []byte(summary),
		Expiration: int32(c.ttl / time.Second),
	}); err != nil {
		c.logger.Printf("summary cache set %s: %v", key, err)
	}
	return summary, nil
}
