// Package bigcache adapts allegro/bigcache to the cache.Backend interface.
// BigCache holds entries off-heap, which suits long-lived processes caching
// large collections without GC pressure.
package bigcache

import (
	"context"
	"errors"
	"time"

	bc "github.com/allegro/bigcache/v3"

	"github.com/slkit/slkit/cache"
	"github.com/slkit/slkit/internal/wire"
)

type Backend struct {
	c *bc.BigCache
}

var _ cache.Backend = (*Backend)(nil)

type Config struct {
	// LifeWindow is bigcache's own eviction horizon. Entries also carry
	// their exact expiry in the stored envelope, so set this to the longest
	// TTL you use (e.g. cache.TTLStatic).
	LifeWindow         time.Duration
	CleanWindow        time.Duration
	MaxEntriesInWindow int
	MaxEntrySize       int
	HardMaxCacheSizeMB int // ~ memory limit; 0 = unlimited
}

func New(cfg Config) (*Backend, error) {
	conf := bc.DefaultConfig(cfg.LifeWindow)
	if cfg.CleanWindow > 0 {
		conf.CleanWindow = cfg.CleanWindow
	}
	if cfg.MaxEntriesInWindow > 0 {
		conf.MaxEntriesInWindow = cfg.MaxEntriesInWindow
	}
	if cfg.MaxEntrySize > 0 {
		conf.MaxEntrySize = cfg.MaxEntrySize
	}
	if cfg.HardMaxCacheSizeMB > 0 {
		conf.HardMaxCacheSize = cfg.HardMaxCacheSizeMB
	}
	c, err := bc.New(context.Background(), conf)
	if err != nil {
		return nil, err
	}
	return &Backend{c: c}, nil
}

func (b *Backend) Get(_ context.Context, key string) (cache.Entry, bool, error) {
	raw, err := b.c.Get(key)
	if errors.Is(err, bc.ErrEntryNotFound) {
		return cache.Entry{}, false, nil
	}
	if err != nil {
		return cache.Entry{}, false, err
	}
	exp, payload, err := wire.DecodeEntry(raw)
	if err != nil {
		_ = b.c.Delete(key) // self-heal corrupt
		return cache.Entry{}, false, nil
	}
	return cache.Entry{Payload: payload, ExpiresAt: exp}, true, nil
}

func (b *Backend) Set(_ context.Context, key string, e cache.Entry) error {
	if time.Until(e.ExpiresAt) <= 0 {
		return b.Delete(context.Background(), key)
	}
	return b.c.Set(key, wire.EncodeEntry(e.ExpiresAt, e.Payload))
}

func (b *Backend) Delete(_ context.Context, key string) error {
	err := b.c.Delete(key)
	if errors.Is(err, bc.ErrEntryNotFound) {
		return nil
	}
	return err
}

func (b *Backend) Clear(_ context.Context) error {
	return b.c.Reset()
}

func (b *Backend) Close(_ context.Context) error {
	return b.c.Close()
}
