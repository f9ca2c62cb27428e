// Package sloghooks logs cache events through log/slog with per-event
// sampling, so a cold start scanning thousands of keys cannot flood logs.
package sloghooks

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/slkit/slkit/cache"
	"github.com/slkit/slkit/internal/util"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	HitEvery      uint64
	MissEvery     uint64
	SelfHealEvery uint64

	// RedactKeys logs a short hash instead of the key itself, for logs
	// shipped somewhere the raw keys should not go.
	RedactKeys bool
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	hitCtr      atomic.Uint64
	missCtr     atomic.Uint64
	selfHealCtr atomic.Uint64
}

var _ cache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) key(k string) string {
	if h.opts.RedactKeys {
		return util.HashKey(k)[:12]
	}
	return k
}

func (h *Hooks) Hit(key string) {
	if h.l == nil || !sample(h.opts.HitEvery, &h.hitCtr) {
		return
	}
	h.l.Debug("slkit.cache.hit", "key", h.key(key))
}

func (h *Hooks) Miss(key string) {
	if h.l == nil || !sample(h.opts.MissEvery, &h.missCtr) {
		return
	}
	h.l.Debug("slkit.cache.miss", "key", h.key(key))
}

func (h *Hooks) Expired(key string) {
	if h.l == nil {
		return
	}
	h.l.Debug("slkit.cache.expired", "key", h.key(key))
}

func (h *Hooks) SelfHeal(key, reason string) {
	if h.l == nil || !sample(h.opts.SelfHealEvery, &h.selfHealCtr) {
		return
	}
	h.l.Warn("slkit.cache.self_heal", "key", h.key(key), "reason", reason)
}

func (h *Hooks) FetchDone(key string, took time.Duration, err error) {
	if h.l == nil {
		return
	}
	if err != nil {
		h.l.Warn("slkit.cache.fetch_failed", "key", h.key(key), "took", took, "err", err)
		return
	}
	h.l.Info("slkit.cache.fetch_done", "key", h.key(key), "took", took)
}
