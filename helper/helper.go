// Package helper wraps the transit clients with cached, searchable views of
// the SL network, aimed at UI dropdowns and autocomplete. StopHelper serves
// stops/sites, LineHelper serves lines; both cache the full dataset under a
// single key and search it locally.
package helper

import (
	"context"
	"errors"

	"github.com/slkit/slkit/transit"
)

// DefaultLimit caps search results when the caller passes limit <= 0.
const DefaultLimit = 10

// ErrNoCache is returned by Preload when the helper was built without a
// cache; there is nothing to warm.
var ErrNoCache = errors.New("helper: no cache configured")

// SiteSource lists all sites. *transit.TransportClient implements it.
type SiteSource interface {
	Sites(ctx context.Context, expand bool) ([]transit.Site, error)
}

// LineSource lists all lines. *transit.TransportClient implements it.
type LineSource interface {
	Lines(ctx context.Context, transportAuthorityID int) (*transit.LinesResponse, error)
}

// StopFinder searches stops live. *transit.JourneyClient implements it.
type StopFinder interface {
	FindStops(ctx context.Context, query transit.SearchLeg, filter transit.StopFilter) ([]transit.StopFinderLocation, error)
}

func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
