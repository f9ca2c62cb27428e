package slkit

import (
	"context"
	"fmt"
	"net/http"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/slkit/slkit/cache"
	redisbackend "github.com/slkit/slkit/cache/backend/redis"
	"github.com/slkit/slkit/config"
	"github.com/slkit/slkit/helper"
	"github.com/slkit/slkit/search"
	"github.com/slkit/slkit/transit"
)

// App bundles the transit clients and helpers behind one constructor, wired
// from a config.Config.
type App struct {
	Client     *transit.Client
	Transport  *transit.TransportClient
	Deviations *transit.DeviationsClient
	Journey    *transit.JourneyClient
	// StopLookup is nil when no API key is configured.
	StopLookup *transit.StopLookupClient

	Stops *helper.StopHelper
	Lines *helper.LineHelper

	stopCache *cache.Cache[[]helper.StopInfo]
	lineCache *cache.Cache[[]helper.LineInfo]
}

// Option customizes App construction.
type Option func(*options)

type options struct {
	httpClient *http.Client
	logger     cache.Logger
	hooks      cache.Hooks
}

// WithHTTPClient replaces the http.Client used by every transit client.
func WithHTTPClient(h *http.Client) Option {
	return func(o *options) { o.httpClient = h }
}

// WithLogger attaches a logger to the caches.
func WithLogger(l cache.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithHooks attaches observability hooks to the caches.
func WithHooks(h cache.Hooks) Option {
	return func(o *options) { o.hooks = h }
}

// New wires clients, caches and helpers from cfg.
func New(cfg *config.Config, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var copts []transit.ClientOption
	if o.httpClient != nil {
		copts = append(copts, transit.WithHTTPClient(o.httpClient))
	} else if timeout := cfg.Timeout(); timeout > 0 {
		copts = append(copts, transit.WithHTTPClient(&http.Client{Timeout: timeout}))
	}
	if cfg.API.UserAgent != "" {
		copts = append(copts, transit.WithUserAgent(cfg.API.UserAgent))
	}
	client := transit.NewClient(copts...)

	app := &App{
		Client:     client,
		Transport:  transit.NewTransportClient(client),
		Deviations: transit.NewDeviationsClient(client),
		Journey:    transit.NewJourneyClient(client),
	}
	if cfg.API.Key != "" {
		app.StopLookup = transit.NewStopLookupClient(client, cfg.API.Key)
	}

	ttl := cfg.TTL()
	if ttl == 0 {
		ttl = cache.TTLStatic
	}

	stopCache, err := newCache[[]helper.StopInfo](cfg, &o, ttl)
	if err != nil {
		return nil, err
	}
	lineCache, err := newCache[[]helper.LineInfo](cfg, &o, ttl)
	if err != nil {
		return nil, err
	}
	app.stopCache = stopCache
	app.lineCache = lineCache

	mode := search.Mode(cfg.Search.Mode)

	app.Stops, err = helper.NewStopHelper(helper.StopHelperOptions{
		Transport:       app.Transport,
		Journey:         app.Journey,
		Cache:           stopCache,
		SearchMode:      mode,
		SearchLimit:     cfg.Search.Limit,
		SearchThreshold: cfg.Search.Threshold,
	})
	if err != nil {
		return nil, err
	}
	app.Lines, err = helper.NewLineHelper(helper.LineHelperOptions{
		Transport:       app.Transport,
		Cache:           lineCache,
		SearchMode:      mode,
		SearchLimit:     cfg.Search.Limit,
		SearchThreshold: cfg.Search.Threshold,
	})
	if err != nil {
		return nil, err
	}
	return app, nil
}

func newCache[V any](cfg *config.Config, o *options, ttl time.Duration) (*cache.Cache[V], error) {
	backend, err := newBackend(cfg)
	if err != nil {
		return nil, err
	}
	return cache.New(cache.Options[V]{
		Backend:    backend,
		Logger:     o.logger,
		Hooks:      o.hooks,
		DefaultTTL: ttl,
	})
}

func newBackend(cfg *config.Config) (cache.Backend, error) {
	switch cfg.Cache.Backend {
	case "", "memory":
		return cache.NewMemoryBackend(), nil
	case "file":
		return cache.NewFileBackend(cfg.Cache.Dir)
	case "redis":
		return redisbackend.New(redisbackend.Config{
			Client:      goredis.NewClient(&goredis.Options{Addr: cfg.Cache.RedisAddr}),
			CloseClient: true,
		})
	default:
		return nil, fmt.Errorf("slkit: unknown cache backend %q", cfg.Cache.Backend)
	}
}

// Preload warms both helper caches. Call at startup for fast first search.
func (a *App) Preload(ctx context.Context) error {
	if err := a.Stops.Preload(ctx); err != nil {
		return err
	}
	return a.Lines.Preload(ctx)
}

// Close releases cache resources.
func (a *App) Close(ctx context.Context) error {
	var first error
	for _, c := range []interface{ Close(context.Context) error }{a.stopCache, a.lineCache} {
		if err := c.Close(ctx); err != nil && first == nil {
			first = err
		}
	}
	return first
}
