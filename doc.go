// Package slkit is a client library for the SL (Storstockholms Lokaltrafik)
// public transit APIs published on Trafiklab, with a local search-and-cache
// helper layer on top.
//
// Components:
//   - transit: typed HTTP clients for the Transport, Deviations, Stop Lookup
//     and Journey Planner v2 APIs.
//   - cache: a TTL cache generic over the value type, built from a pluggable
//     Backend (memory, file, redis, ristretto, bigcache) and a Codec.
//     GetOrFetch coalesces concurrent fetches per key.
//   - search: ranked substring and fuzzy matching over arbitrary items.
//   - helper: StopHelper and LineHelper combining a client, the cache and
//     ranked search into a dropdown-friendly API.
//   - stopid: conversions between the site id, global id and stopId formats
//     the different SL APIs use for the same stop.
//   - itinerary: simplified, printable interpretation of planned journeys.
//
// Typical usage:
//
//	cfg, _ := config.Load("slkit.yml")
//	app, _ := slkit.New(cfg)
//	defer app.Close(ctx)
//
//	stops, _ := app.Stops.Search(ctx, "odenplan", 10, search.Substring)
//	deps, _ := app.Transport.SiteDepartures(ctx, stops[0].ID, nil)
package slkit
