// Package promhooks exports cache events as Prometheus metrics.
package promhooks

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/slkit/slkit/cache"
)

type Hooks struct {
	hits      *prometheus.CounterVec
	misses    *prometheus.CounterVec
	expired   *prometheus.CounterVec
	selfHeals *prometheus.CounterVec
	fetches   *prometheus.CounterVec
	fetchDur  *prometheus.HistogramVec
}

var _ cache.Hooks = (*Hooks)(nil)

// New builds the metric set and registers it on reg.
// Pass prometheus.DefaultRegisterer for the global registry.
func New(reg prometheus.Registerer) *Hooks {
	h := &Hooks{
		hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "slkit", Subsystem: "cache", Name: "hits_total",
			Help: "Cache reads served from the backend.",
		}, []string{"key"}),
		misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "slkit", Subsystem: "cache", Name: "misses_total",
			Help: "Cache reads that found nothing usable.",
		}, []string{"key"}),
		expired: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "slkit", Subsystem: "cache", Name: "expired_total",
			Help: "Entries evicted on read because their TTL had passed.",
		}, []string{"key"}),
		selfHeals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "slkit", Subsystem: "cache", Name: "self_heals_total",
			Help: "Entries deleted on read because they could not be decoded.",
		}, []string{"key", "reason"}),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "slkit", Subsystem: "cache", Name: "fetches_total",
			Help: "Upstream fetches run by GetOrFetch.",
		}, []string{"key", "result"}),
		fetchDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "slkit", Subsystem: "cache", Name: "fetch_duration_seconds",
			Help:    "Upstream fetch latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"key"}),
	}
	reg.MustRegister(h.hits, h.misses, h.expired, h.selfHeals, h.fetches, h.fetchDur)
	return h
}

func (h *Hooks) Hit(key string)     { h.hits.WithLabelValues(key).Inc() }
func (h *Hooks) Miss(key string)    { h.misses.WithLabelValues(key).Inc() }
func (h *Hooks) Expired(key string) { h.expired.WithLabelValues(key).Inc() }

func (h *Hooks) SelfHeal(key, reason string) {
	h.selfHeals.WithLabelValues(key, reason).Inc()
}

func (h *Hooks) FetchDone(key string, took time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	h.fetches.WithLabelValues(key, result).Inc()
	h.fetchDur.WithLabelValues(key).Observe(took.Seconds())
}
