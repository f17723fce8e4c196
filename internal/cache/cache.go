// Package cache keeps remote payloads for a bounded time. The TTL policy lives
// here; where bytes are kept is decided by the Store.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/thep200/github-showcase/pkg/log"
)

// ErrNotFound is returned by a Store for an absent key.
var ErrNotFound = errors.New("cache entry not found")

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// entry is the stored envelope: write time in unix milliseconds and the payload.
type entry struct {
	T int64           `json:"t"`
	V json.RawMessage `json:"v"`
}

type Cache struct {
	store  Store
	ttl    time.Duration
	now    func() time.Time
	logger log.Logger
}

func New(store Store, ttl time.Duration, logger log.Logger) *Cache {
	return &Cache{
		store:  store,
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}
}

// WithClock replaces the time source.
func (c *Cache) WithClock(now func() time.Time) *Cache {
	c.now = now
	return c
}

// Get decodes the value stored under key into out. It reports false for a
// missing, expired, or unreadable entry; errors never reach the caller.
func (c *Cache) Get(ctx context.Context, key string, out any) bool {
	raw, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			c.logger.Debug(ctx, "cache read %s: %v", key, err)
		}
		return false
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil || len(e.V) == 0 {
		return false
	}
	if c.now().Sub(time.UnixMilli(e.T)) >= c.ttl {
		return false
	}
	if err := json.Unmarshal(e.V, out); err != nil {
		return false
	}
	return true
}

// Put stores value under key stamped with the current time. Failures are
// logged and dropped.
func (c *Cache) Put(ctx context.Context, key string, value any) {
	v, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn(ctx, "cache encode %s: %v", key, err)
		return
	}
	raw, err := json.Marshal(entry{T: c.now().UnixMilli(), V: v})
	if err != nil {
		c.logger.Warn(ctx, "cache encode %s: %v", key, err)
		return
	}
	if err := c.store.Set(ctx, key, raw); err != nil {
		c.logger.Warn(ctx, "cache write %s: %v", key, err)
	}
}
