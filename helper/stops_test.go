package helper

import (
	"context"
	"errors"
	"testing"

	"github.com/slkit/slkit/cache"
	"github.com/slkit/slkit/search"
	"github.com/slkit/slkit/transit"
)

type fakeSiteSource struct {
	sites []transit.Site
	calls int
	err   error
}

func (f *fakeSiteSource) Sites(ctx context.Context, expand bool) ([]transit.Site, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.sites, nil
}

type fakeStopFinder struct {
	locations []transit.StopFinderLocation
	gotQuery  transit.SearchLeg
}

func (f *fakeStopFinder) FindStops(ctx context.Context, query transit.SearchLeg, filter transit.StopFilter) ([]transit.StopFinderLocation, error) {
	f.gotQuery = query
	return f.locations, nil
}

func testSites() []transit.Site {
	return []transit.Site{
		{ID: 9117, Name: "Odenplan", Lat: 59.34, Lon: 18.05},
		{ID: 9001, Name: "T-Centralen", Lat: 59.33, Lon: 18.06},
		{ID: 9192, Name: "Slussen", Lat: 59.32, Lon: 18.07},
	}
}

func newStopHelper(t *testing.T, src *fakeSiteSource, c *cache.Cache[[]StopInfo]) *StopHelper {
	t.Helper()
	h, err := NewStopHelper(StopHelperOptions{Transport: src, Cache: c})
	if err != nil {
		t.Fatalf("NewStopHelper: %v", err)
	}
	return h
}

func TestStopInfoString(t *testing.T) {
	s := StopInfo{ID: 9117, GlobalID: "9091001000009117", Name: "Odenplan"}
	if got := s.String(); got != "Odenplan (9117)" {
		t.Fatalf("String = %q", got)
	}
}

func TestStopGetAllWithoutCacheFetchesEveryTime(t *testing.T) {
	src := &fakeSiteSource{sites: testSites()}
	h := newStopHelper(t, src, nil)
	ctx := context.Background()

	for i := 1; i <= 2; i++ {
		stops, err := h.GetAll(ctx)
		if err != nil {
			t.Fatalf("GetAll: %v", err)
		}
		if len(stops) != 3 {
			t.Fatalf("stops = %d", len(stops))
		}
		if src.calls != i {
			t.Fatalf("calls = %d, want %d", src.calls, i)
		}
	}
}

func TestStopGetAllWithCacheFetchesOnce(t *testing.T) {
	src := &fakeSiteSource{sites: testSites()}
	h := newStopHelper(t, src, cache.NewMemory[[]StopInfo]())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		stops, err := h.GetAll(ctx)
		if err != nil {
			t.Fatalf("GetAll: %v", err)
		}
		if len(stops) != 3 {
			t.Fatalf("stops = %d", len(stops))
		}
	}
	if src.calls != 1 {
		t.Fatalf("calls = %d, want 1", src.calls)
	}
}

func TestStopGetAllDerivesGlobalID(t *testing.T) {
	src := &fakeSiteSource{sites: testSites()}
	h := newStopHelper(t, src, nil)

	stops, err := h.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if stops[0].GlobalID != "9091001000009117" {
		t.Fatalf("global id = %q", stops[0].GlobalID)
	}
}

func TestStopPreloadRequiresCache(t *testing.T) {
	h := newStopHelper(t, &fakeSiteSource{sites: testSites()}, nil)
	if err := h.Preload(context.Background()); !errors.Is(err, ErrNoCache) {
		t.Fatalf("Preload = %v, want ErrNoCache", err)
	}
	if h.IsPreloaded() {
		t.Fatal("IsPreloaded after failed preload")
	}
}

func TestStopPreloadWithCache(t *testing.T) {
	src := &fakeSiteSource{sites: testSites()}
	h := newStopHelper(t, src, cache.NewMemory[[]StopInfo]())
	ctx := context.Background()

	if h.IsPreloaded() {
		t.Fatal("preloaded before Preload")
	}
	if err := h.Preload(ctx); err != nil {
		t.Fatalf("Preload: %v", err)
	}
	if !h.IsPreloaded() {
		t.Fatal("not preloaded after Preload")
	}
	if _, err := h.GetAll(ctx); err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if src.calls != 1 {
		t.Fatalf("calls = %d, want 1", src.calls)
	}
}

func TestStopSearch(t *testing.T) {
	h := newStopHelper(t, &fakeSiteSource{sites: testSites()}, nil)
	ctx := context.Background()

	results, err := h.Search(ctx, "oden", 10, "")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Name != "Odenplan" {
		t.Fatalf("results = %+v", results)
	}

	empty, err := h.Search(ctx, "", 10, "")
	if err != nil {
		t.Fatalf("Search empty: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("empty query results = %+v", empty)
	}
}

func TestStopSearchFuzzyFindsTypo(t *testing.T) {
	h := newStopHelper(t, &fakeSiteSource{sites: testSites()}, nil)

	results, err := h.Search(context.Background(), "tcentralen", 10, search.Fuzzy)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) == 0 || results[0].Name != "T-Centralen" {
		t.Fatalf("results = %+v", results)
	}
}

func TestStopSearchDefaultLimitFromOptions(t *testing.T) {
	sites := make([]transit.Site, 8)
	for i := range sites {
		sites[i] = transit.Site{ID: 9000 + i, Name: "Odenplan"}
	}
	h, err := NewStopHelper(StopHelperOptions{
		Transport:   &fakeSiteSource{sites: sites},
		SearchLimit: 3,
	})
	if err != nil {
		t.Fatalf("NewStopHelper: %v", err)
	}

	got, err := h.Search(context.Background(), "oden", 0, "")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d results, want the configured limit of 3", len(got))
	}

	// an explicit limit still wins
	got, err = h.Search(context.Background(), "oden", 5, "")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("got %d results, want 5", len(got))
	}
}

func TestStopGetByID(t *testing.T) {
	h := newStopHelper(t, &fakeSiteSource{sites: testSites()}, nil)
	ctx := context.Background()

	stop, err := h.GetByID(ctx, 9117)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stop == nil || stop.Name != "Odenplan" {
		t.Fatalf("stop = %+v", stop)
	}

	missing, err := h.GetByID(ctx, 1)
	if err != nil {
		t.Fatalf("GetByID missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("missing = %+v", missing)
	}
}

func TestStopGetByGlobalID(t *testing.T) {
	h := newStopHelper(t, &fakeSiteSource{sites: testSites()}, nil)
	ctx := context.Background()

	stop, err := h.GetByGlobalID(ctx, "9091001000009117")
	if err != nil {
		t.Fatalf("GetByGlobalID: %v", err)
	}
	if stop == nil || stop.ID != 9117 {
		t.Fatalf("stop = %+v", stop)
	}

	bad, err := h.GetByGlobalID(ctx, "not-a-global-id")
	if err != nil {
		t.Fatalf("GetByGlobalID malformed: %v", err)
	}
	if bad != nil {
		t.Fatalf("malformed id = %+v", bad)
	}
}

func TestStopSearchLive(t *testing.T) {
	finder := &fakeStopFinder{locations: []transit.StopFinderLocation{
		{ID: "9091001000009117", Name: "Odenplan (Stockholm)", DisassembledName: "Odenplan", Coord: []float64{59.34, 18.05}},
		{ID: "streets:1234", Name: "Odengatan"}, // skipped, not a stop id
		{ID: "9091001000009001", Name: "T-Centralen"},
	}}
	h, err := NewStopHelper(StopHelperOptions{Transport: &fakeSiteSource{}, Journey: finder})
	if err != nil {
		t.Fatalf("NewStopHelper: %v", err)
	}

	stops, err := h.SearchLive(context.Background(), "oden", 10)
	if err != nil {
		t.Fatalf("SearchLive: %v", err)
	}
	if len(stops) != 2 {
		t.Fatalf("stops = %+v", stops)
	}
	if stops[0].ID != 9117 || stops[0].Name != "Odenplan" {
		t.Fatalf("stops[0] = %+v", stops[0])
	}
	if stops[0].Lat != 59.34 || stops[0].Lon != 18.05 {
		t.Fatalf("coords = %v/%v", stops[0].Lat, stops[0].Lon)
	}
	if finder.gotQuery.Value != "oden" {
		t.Fatalf("query = %+v", finder.gotQuery)
	}
}

func TestStopSearchLiveWithoutJourney(t *testing.T) {
	h := newStopHelper(t, &fakeSiteSource{}, nil)
	if _, err := h.SearchLive(context.Background(), "oden", 10); err == nil {
		t.Fatal("expected error without journey client")
	}
}

func TestStopInvalidateCache(t *testing.T) {
	src := &fakeSiteSource{sites: testSites()}
	h := newStopHelper(t, src, cache.NewMemory[[]StopInfo]())
	ctx := context.Background()

	if err := h.Preload(ctx); err != nil {
		t.Fatalf("Preload: %v", err)
	}
	if err := h.InvalidateCache(ctx); err != nil {
		t.Fatalf("InvalidateCache: %v", err)
	}
	if h.IsPreloaded() {
		t.Fatal("still preloaded after invalidate")
	}
	if _, err := h.GetAll(ctx); err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if src.calls != 2 {
		t.Fatalf("calls = %d, want 2", src.calls)
	}

	// without a cache invalidation is a no-op
	h2 := newStopHelper(t, src, nil)
	if err := h2.InvalidateCache(ctx); err != nil {
		t.Fatalf("InvalidateCache without cache: %v", err)
	}
}

func TestStopGetAllPropagatesFetchError(t *testing.T) {
	src := &fakeSiteSource{err: errors.New("boom")}
	h := newStopHelper(t, src, cache.NewMemory[[]StopInfo]())

	if _, err := h.GetAll(context.Background()); err == nil {
		t.Fatal("expected fetch error")
	}
	// nothing cached after a failed fetch
	src.err = nil
	src.sites = testSites()
	stops, err := h.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll retry: %v", err)
	}
	if len(stops) != 3 {
		t.Fatalf("stops = %d", len(stops))
	}
}
