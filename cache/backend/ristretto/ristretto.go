// Package ristretto adapts dgraph-io/ristretto to the cache.Backend
// interface for memory-bounded in-process caching.
package ristretto

import (
	"context"
	"errors"
	"time"

	rc "github.com/dgraph-io/ristretto"

	"github.com/slkit/slkit/cache"
)

type Backend struct {
	c *rc.Cache
}

var _ cache.Backend = (*Backend)(nil)

type Config struct {
	NumCounters int64
	MaxCost     int64
	BufferItems int64
	Metrics     bool
}

func New(cfg Config) (*Backend, error) {
	if cfg.NumCounters <= 0 || cfg.MaxCost <= 0 || cfg.BufferItems <= 0 {
		return nil, errors.New("ristretto backend: invalid config")
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &Backend{c: c}, nil
}

func (b *Backend) Get(_ context.Context, key string) (cache.Entry, bool, error) {
	v, ok := b.c.Get(key)
	if !ok {
		return cache.Entry{}, false, nil
	}
	e, ok := v.(cache.Entry)
	if !ok {
		// self-heal: drop unexpected entry shape
		b.c.Del(key)
		return cache.Entry{}, false, nil
	}
	return e, true, nil
}

func (b *Backend) Set(_ context.Context, key string, e cache.Entry) error {
	ttl := time.Until(e.ExpiresAt)
	if ttl <= 0 {
		b.c.Del(key)
		return nil
	}
	// writes are best-effort under memory pressure; a rejected Set is just a
	// future miss
	b.c.SetWithTTL(key, e, int64(len(e.Payload))+1, ttl)
	return nil
}

func (b *Backend) Delete(_ context.Context, key string) error {
	b.c.Del(key)
	return nil
}

func (b *Backend) Clear(_ context.Context) error {
	b.c.Clear()
	return nil
}

func (b *Backend) Close(_ context.Context) error {
	b.c.Wait()
	b.c.Close()
	return nil
}

// Metrics exposes ristretto's counters for the host application
// (not part of cache.Backend).
func (b *Backend) Metrics() *rc.Metrics { return b.c.Metrics }
