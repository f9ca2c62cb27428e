package helper

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/slkit/slkit/cache"
	"github.com/slkit/slkit/search"
	"github.com/slkit/slkit/stopid"
	"github.com/slkit/slkit/transit"
)

// StopsCacheKey is the cache key the full stop list is stored under.
const StopsCacheKey = "stops:all"

// StopInfo is a flattened stop record carrying both ID formats: ID is the
// Transport API site id (departures), GlobalID is the Journey Planner id
// (trip planning).
type StopInfo struct {
	ID       int     `json:"id"`
	GlobalID string  `json:"global_id"`
	Name     string  `json:"name"`
	Lat      float64 `json:"lat,omitempty"`
	Lon      float64 `json:"lon,omitempty"`
}

func (s StopInfo) String() string {
	return fmt.Sprintf("%s (%d)", s.Name, s.ID)
}

// StopHelperOptions configures a StopHelper. Transport is required; the
// rest may stay zero.
type StopHelperOptions struct {
	// Transport lists the sites of the network.
	Transport SiteSource
	// Journey enables SearchLive. Optional.
	Journey StopFinder
	// Cache stores the fetched stop list. Without it every GetAll hits
	// the API.
	Cache *cache.Cache[[]StopInfo]
	// SearchMode is the default local search mode.
	SearchMode search.Mode
	// SearchLimit is the result limit used when a call passes limit <= 0.
	// Zero means search.DefaultLimit.
	SearchLimit int
	// SearchThreshold is the minimum fuzzy similarity.
	// Zero means search.DefaultThreshold.
	SearchThreshold float64
}

// StopHelper serves cached, searchable stop data.
type StopHelper struct {
	transport SiteSource
	journey   StopFinder
	cache     *cache.Cache[[]StopInfo]
	mode      search.Mode
	limit     int
	threshold float64
	preloaded atomic.Bool
}

// NewStopHelper builds a StopHelper from opts.
func NewStopHelper(opts StopHelperOptions) (*StopHelper, error) {
	if opts.Transport == nil {
		return nil, fmt.Errorf("helper: Transport is required")
	}
	return &StopHelper{
		transport: opts.Transport,
		journey:   opts.Journey,
		cache:     opts.Cache,
		mode:      coalesce(opts.SearchMode, search.Substring),
		limit:     opts.SearchLimit,
		threshold: opts.SearchThreshold,
	}, nil
}

// IsPreloaded reports whether Preload has completed since the last cache
// invalidation.
func (h *StopHelper) IsPreloaded() bool {
	return h.preloaded.Load()
}

// Preload eagerly loads and caches all stops. Call at startup for faster
// first search. Returns ErrNoCache when the helper has no cache to warm.
func (h *StopHelper) Preload(ctx context.Context) error {
	if h.cache == nil {
		return ErrNoCache
	}
	if _, err := h.GetAll(ctx); err != nil {
		return err
	}
	h.preloaded.Store(true)
	return nil
}

// GetAll returns all stops in the SL network, cached for TTLStatic.
func (h *StopHelper) GetAll(ctx context.Context) ([]StopInfo, error) {
	if h.cache == nil {
		return h.fetchAll(ctx)
	}
	return h.cache.GetOrFetch(ctx, StopsCacheKey, h.fetchAll, cache.TTLStatic)
}

func (h *StopHelper) fetchAll(ctx context.Context) ([]StopInfo, error) {
	sites, err := h.transport.Sites(ctx, false)
	if err != nil {
		return nil, err
	}
	stops := make([]StopInfo, 0, len(sites))
	for _, site := range sites {
		stops = append(stops, StopInfo{
			ID:       site.ID,
			GlobalID: stopid.SiteToGlobal(site.ID),
			Name:     site.Name,
			Lat:      site.Lat,
			Lon:      site.Lon,
		})
	}
	return stops, nil
}

// Search matches stops by name against the cached stop list. An empty query
// returns no results. limit <= 0 means DefaultLimit; mode "" means the
// helper default.
func (h *StopHelper) Search(ctx context.Context, query string, limit int, mode search.Mode) ([]StopInfo, error) {
	if query == "" {
		return []StopInfo{}, nil
	}
	all, err := h.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = h.limit
	}
	return search.Search(all, query, func(s StopInfo) string { return s.Name }, search.Options{
		Mode:      coalesce(mode, h.mode),
		Limit:     limit,
		Threshold: h.threshold,
	}), nil
}

// GetByID returns the stop with the given Transport API site id, or nil.
func (h *StopHelper) GetByID(ctx context.Context, siteID int) (*StopInfo, error) {
	all, err := h.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == siteID {
			return &all[i], nil
		}
	}
	return nil, nil
}

// GetByGlobalID returns the stop with the given Journey Planner id, or nil.
// A malformed id is treated as not found.
func (h *StopHelper) GetByGlobalID(ctx context.Context, globalID string) (*StopInfo, error) {
	siteID, err := stopid.GlobalToSite(globalID)
	if err != nil {
		return nil, nil
	}
	return h.GetByID(ctx, siteID)
}

// SearchLive queries the Journey Planner stop finder directly instead of
// the cached list. Useful for realtime autocomplete. Locations whose id is
// not a global stop id are skipped.
func (h *StopHelper) SearchLive(ctx context.Context, query string, limit int) ([]StopInfo, error) {
	if query == "" {
		return []StopInfo{}, nil
	}
	if h.journey == nil {
		return nil, fmt.Errorf("helper: SearchLive requires a Journey client")
	}
	if limit <= 0 {
		limit = coalesce(h.limit, DefaultLimit)
	}

	locations, err := h.journey.FindStops(ctx, transit.LegFromAny(query), transit.FilterStops)
	if err != nil {
		return nil, err
	}

	stops := make([]StopInfo, 0, limit)
	for _, loc := range locations {
		if len(stops) == limit {
			break
		}
		siteID, err := stopid.GlobalToSite(loc.ID)
		if err != nil {
			continue
		}
		name := loc.DisassembledName
		if name == "" {
			name = loc.Name
		}
		info := StopInfo{ID: siteID, GlobalID: loc.ID, Name: name}
		if len(loc.Coord) > 0 {
			info.Lat = loc.Coord[0]
		}
		if len(loc.Coord) > 1 {
			info.Lon = loc.Coord[1]
		}
		stops = append(stops, info)
	}
	return stops, nil
}

// InvalidateCache drops the cached stop list and clears the preloaded flag.
// Without a cache it is a no-op.
func (h *StopHelper) InvalidateCache(ctx context.Context) error {
	h.preloaded.Store(false)
	if h.cache == nil {
		return nil
	}
	return h.cache.Invalidate(ctx, StopsCacheKey)
}
