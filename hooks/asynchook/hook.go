// Package asynchook decouples hook sinks from the cache hot path: events are
// queued and delivered by worker goroutines, and dropped when the queue is
// full rather than blocking a cache read.
//
// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{SelfHealEvery: 10})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	c, _ := cache.New[[]helper.StopInfo](cache.Options[[]helper.StopInfo]{
//	    Backend: backend,
//	    Hooks:   hooks, // or `raw` if you don't want async
//	})
package asynchook

import (
	"sync"
	"time"

	"github.com/slkit/slkit/cache"
)

type Hooks struct {
	inner cache.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ cache.Hooks = (*Hooks)(nil)

func New(inner cache.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) Hit(k string)                { h.try(func() { h.inner.Hit(k) }) }
func (h *Hooks) Miss(k string)               { h.try(func() { h.inner.Miss(k) }) }
func (h *Hooks) Expired(k string)            { h.try(func() { h.inner.Expired(k) }) }
func (h *Hooks) SelfHeal(k, reason string)   { h.try(func() { h.inner.SelfHeal(k, reason) }) }
func (h *Hooks) FetchDone(k string, d time.Duration, err error) {
	h.try(func() { h.inner.FetchDone(k, d, err) })
}
