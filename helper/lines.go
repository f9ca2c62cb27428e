package helper

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/slkit/slkit/cache"
	"github.com/slkit/slkit/search"
	"github.com/slkit/slkit/transit"
)

// LinesCacheKey is the cache key the full line list is stored under.
const LinesCacheKey = "lines:all"

// LineInfo is a flattened line record for UI dropdowns.
type LineInfo struct {
	ID          int    `json:"id"`
	Designation string `json:"designation"` // line number, e.g. "17", "176"
	Name        string `json:"name,omitempty"`
	// TransportMode is lowercase: "metro", "bus", "tram", ...
	TransportMode string `json:"transport_mode"`
	GroupOfLines  string `json:"group_of_lines,omitempty"`
}

func (l LineInfo) String() string {
	if l.Name != "" {
		return fmt.Sprintf("%s - %s (%s)", l.Designation, l.Name, l.TransportMode)
	}
	return fmt.Sprintf("%s (%s)", l.Designation, l.TransportMode)
}

// LineHelperOptions configures a LineHelper. Transport is required.
type LineHelperOptions struct {
	Transport LineSource
	// Cache stores the fetched line list. Without it every GetAll hits
	// the API.
	Cache *cache.Cache[[]LineInfo]
	// SearchMode is the default local search mode.
	SearchMode search.Mode
	// SearchLimit is the result limit used when a call passes limit <= 0.
	// Zero means search.DefaultLimit.
	SearchLimit int
	// SearchThreshold is the minimum fuzzy similarity.
	// Zero means search.DefaultThreshold.
	SearchThreshold float64
	// TransportAuthorityID scopes the line list; zero means 1 (SL).
	TransportAuthorityID int
}

// LineHelper serves cached, searchable line data.
type LineHelper struct {
	transport   LineSource
	cache       *cache.Cache[[]LineInfo]
	mode        search.Mode
	limit       int
	threshold   float64
	authorityID int
	preloaded   atomic.Bool
}

// NewLineHelper builds a LineHelper from opts.
func NewLineHelper(opts LineHelperOptions) (*LineHelper, error) {
	if opts.Transport == nil {
		return nil, fmt.Errorf("helper: Transport is required")
	}
	return &LineHelper{
		transport:   opts.Transport,
		cache:       opts.Cache,
		mode:        coalesce(opts.SearchMode, search.Substring),
		limit:       opts.SearchLimit,
		threshold:   opts.SearchThreshold,
		authorityID: coalesce(opts.TransportAuthorityID, 1),
	}, nil
}

// IsPreloaded reports whether Preload has completed since the last cache
// invalidation.
func (h *LineHelper) IsPreloaded() bool {
	return h.preloaded.Load()
}

// Preload eagerly loads and caches all lines. Returns ErrNoCache when the
// helper has no cache to warm.
func (h *LineHelper) Preload(ctx context.Context) error {
	if h.cache == nil {
		return ErrNoCache
	}
	if _, err := h.GetAll(ctx); err != nil {
		return err
	}
	h.preloaded.Store(true)
	return nil
}

// GetAll returns all lines as a flat list sorted by transport mode and then
// by designation (numeric designations sort naturally). Cached for
// TTLStatic.
func (h *LineHelper) GetAll(ctx context.Context) ([]LineInfo, error) {
	if h.cache == nil {
		return h.fetchAll(ctx)
	}
	return h.cache.GetOrFetch(ctx, LinesCacheKey, h.fetchAll, cache.TTLStatic)
}

func (h *LineHelper) fetchAll(ctx context.Context) ([]LineInfo, error) {
	resp, err := h.transport.Lines(ctx, h.authorityID)
	if err != nil {
		return nil, err
	}

	var out []LineInfo
	appendMode := func(mode string, lines []transit.Line) {
		for _, ln := range lines {
			designation := ln.Designation
			if designation == "" {
				designation = fmt.Sprintf("%d", ln.ID)
			}
			out = append(out, LineInfo{
				ID:            ln.ID,
				Designation:   designation,
				Name:          ln.Name,
				TransportMode: mode,
				GroupOfLines:  ln.GroupOfLines,
			})
		}
	}
	appendMode("bus", resp.Bus)
	appendMode("ferry", resp.Ferry)
	appendMode("metro", resp.Metro)
	appendMode("ship", resp.Ship)
	appendMode("taxi", resp.Taxi)
	appendMode("train", resp.Train)
	appendMode("tram", resp.Tram)

	sort.SliceStable(out, func(a, b int) bool {
		if out[a].TransportMode != out[b].TransportMode {
			return out[a].TransportMode < out[b].TransportMode
		}
		return sortDesignation(out[a].Designation) < sortDesignation(out[b].Designation)
	})
	return out, nil
}

// sortDesignation zero-pads numeric designations so "4" sorts before "176".
func sortDesignation(d string) string {
	if d != "" && len(d) < 5 && strings.TrimLeft(d, "0123456789") == "" {
		return strings.Repeat("0", 5-len(d)) + d
	}
	return d
}

// GetByMode returns the lines of one transport mode. The mode is matched
// case-insensitively, so both "metro" and transit.ModeMetro work.
func (h *LineHelper) GetByMode(ctx context.Context, mode string) ([]LineInfo, error) {
	all, err := h.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	want := strings.ToLower(mode)
	var out []LineInfo
	for _, ln := range all {
		if ln.TransportMode == want {
			out = append(out, ln)
		}
	}
	return out, nil
}

// Search matches lines by designation and name, e.g. "17" or "blå". An
// empty query returns no results.
func (h *LineHelper) Search(ctx context.Context, query string, limit int, mode search.Mode) ([]LineInfo, error) {
	if query == "" {
		return []LineInfo{}, nil
	}
	all, err := h.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = h.limit
	}
	key := func(ln LineInfo) string { return ln.Designation + " " + ln.Name }
	return search.Search(all, query, key, search.Options{
		Mode:      coalesce(mode, h.mode),
		Limit:     limit,
		Threshold: h.threshold,
	}), nil
}

// GetByID returns the line with the given id, or nil.
func (h *LineHelper) GetByID(ctx context.Context, lineID int) (*LineInfo, error) {
	all, err := h.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == lineID {
			return &all[i], nil
		}
	}
	return nil, nil
}

// GetByDesignation returns the line with the given designation, or nil.
// transportMode disambiguates designations shared across modes; empty means
// any mode.
func (h *LineHelper) GetByDesignation(ctx context.Context, designation, transportMode string) (*LineInfo, error) {
	var (
		lines []LineInfo
		err   error
	)
	if transportMode != "" {
		lines, err = h.GetByMode(ctx, transportMode)
	} else {
		lines, err = h.GetAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	for i := range lines {
		if lines[i].Designation == designation {
			return &lines[i], nil
		}
	}
	return nil, nil
}

// InvalidateCache drops the cached line list and clears the preloaded flag.
// Without a cache it is a no-op.
func (h *LineHelper) InvalidateCache(ctx context.Context) error {
	h.preloaded.Store(false)
	if h.cache == nil {
		return nil
	}
	return h.cache.Invalidate(ctx, LinesCacheKey)
}
