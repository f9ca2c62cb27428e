package cache

import "time"

// Hooks are lightweight callbacks for high-signal cache events.
// Implementations MUST be cheap and non-blocking; the cache calls them on
// hot paths. See hooks/asynchook for a buffered dispatcher and
// hooks/promhooks / hooks/sloghooks for ready-made sinks.
type Hooks interface {
	// A read was served from the backend.
	Hit(key string)

	// A read found nothing usable (absent, expired or self-healed).
	Miss(key string)

	// An entry was past its expiry and evicted on read.
	Expired(key string)

	// An entry was deleted by the cache on read.
	// reason ∈ {"backend_error", "decode"}
	SelfHeal(key string, reason string)

	// A GetOrFetch miss episode ran the fetch function.
	FetchDone(key string, took time.Duration, err error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) Hit(string)                            {}
func (NopHooks) Miss(string)                           {}
func (NopHooks) Expired(string)                        {}
func (NopHooks) SelfHeal(string, string)               {}
func (NopHooks) FetchDone(string, time.Duration, error) {}
