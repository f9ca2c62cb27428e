package transit

import (
	"context"
	"net/http"
	"testing"
)

func TestTransportLines(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/lines" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("transport_authority_id"); got != "1" {
			t.Errorf("transport_authority_id = %q", got)
		}
		w.Write([]byte(`{
			"metro": [{"id": 17, "designation": "17", "transport_mode": "METRO"}],
			"bus": [{"id": 4, "designation": "4", "transport_mode": "BUS"}]
		}`))
	}))

	lines, err := NewTransportClient(c).Lines(context.Background(), 1)
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	if len(lines.Metro) != 1 || lines.Metro[0].Designation != "17" {
		t.Fatalf("metro lines = %+v", lines.Metro)
	}
	if len(lines.Bus) != 1 || lines.Bus[0].ID != 4 {
		t.Fatalf("bus lines = %+v", lines.Bus)
	}
}

func TestTransportSites(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("expand") != "" {
			t.Errorf("unexpected expand param")
		}
		w.Write([]byte(`[
			{"id": 9117, "gid": 9091001000009117, "name": "Odenplan", "lat": 59.343, "lon": 18.049,
			 "valid": {"from": "2023-01-01T00:00:00"}}
		]`))
	}))

	sites, err := NewTransportClient(c).Sites(context.Background(), false)
	if err != nil {
		t.Fatalf("Sites: %v", err)
	}
	if len(sites) != 1 || sites[0].Name != "Odenplan" {
		t.Fatalf("sites = %+v", sites)
	}
	if sites[0].Valid.From.IsZero() {
		t.Fatal("valid.from not parsed")
	}
}

func TestSiteDeparturesFilter(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sites/9117/departures" {
			t.Errorf("path = %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("transport") != "METRO" || q.Get("line") != "17" || q.Get("forecast") != "60" {
			t.Errorf("query = %v", q)
		}
		w.Write([]byte(`{
			"departures": [{
				"direction": "Åkeshov", "direction_code": 2, "state": "EXPECTED",
				"display": "5 min", "scheduled": "2024-03-01T12:30:00",
				"expected": "2024-03-01T12:31:00",
				"journey": {"id": 1, "state": "EXPECTED"},
				"stop_area": {"id": 1, "name": "Odenplan"},
				"stop_point": {"id": 2, "designation": "3"},
				"line": {"id": 17, "designation": "17", "transport_mode": "METRO"},
				"deviations": []
			}],
			"stop_deviations": []
		}`))
	}))

	deps, err := NewTransportClient(c).SiteDepartures(context.Background(), 9117, &DeparturesFilter{
		Transport: ModeMetro,
		Line:      "17",
		Forecast:  60,
	})
	if err != nil {
		t.Fatalf("SiteDepartures: %v", err)
	}
	if len(deps.Departures) != 1 {
		t.Fatalf("departures = %+v", deps.Departures)
	}
	d := deps.Departures[0]
	if d.State != DepartureExpected || d.Line.TransportMode != ModeMetro {
		t.Fatalf("departure = %+v", d)
	}
	if d.Expected == nil || !d.Expected.After(d.Scheduled.Time) {
		t.Fatal("expected time not parsed after scheduled")
	}
}

func TestDeviationsMessagesParams(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("future") != "true" {
			t.Errorf("future = %q", q.Get("future"))
		}
		if got := q["site"]; len(got) != 2 || got[0] != "9117" || got[1] != "9001" {
			t.Errorf("site = %v", got)
		}
		if got := q["transport_mode"]; len(got) != 1 || got[0] != "BUS" {
			t.Errorf("transport_mode = %v", got)
		}
		w.Write([]byte(`[{
			"version": 1, "created": "2024-03-01T08:00:00",
			"publish": {"from": "2024-03-01T08:00:00"},
			"priority": {"importance_level": 5, "influence_level": 2, "urgency_level": 1},
			"message_variants": [{"header": "Stopp", "details": "...", "scope_alias": "17", "language": "sv"}]
		}]`))
	}))

	future := true
	devs, err := NewDeviationsClient(c).Messages(context.Background(), &DeviationsFilter{
		Future:         &future,
		Sites:          []int{9117, 9001},
		TransportModes: []TransportMode{ModeBus},
	})
	if err != nil {
		t.Fatalf("Messages: %v", err)
	}
	if len(devs) != 1 || devs[0].Priority.ImportanceLevel != 5 {
		t.Fatalf("deviations = %+v", devs)
	}
	if devs[0].MessageVariants[0].Header != "Stopp" {
		t.Fatalf("variant = %+v", devs[0].MessageVariants[0])
	}
}
