package transit

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// TransportMode enumerates the transport modes used across the SL APIs.
type TransportMode string

const (
	ModeBus   TransportMode = "BUS"
	ModeMetro TransportMode = "METRO"
	ModeTram  TransportMode = "TRAM"
	ModeTrain TransportMode = "TRAIN"
	ModeShip  TransportMode = "SHIP"
	ModeFerry TransportMode = "FERRY"
	ModeTaxi  TransportMode = "TAXI"
)

// TransportAuthorityRef identifies a transport authority on nested objects.
type TransportAuthorityRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// TransportAuthority is the full record from the transport-authorities
// endpoint.
type TransportAuthority struct {
	ID         int               `json:"id"`
	GID        int64             `json:"gid"`
	Name       string            `json:"name"`
	FormalName string            `json:"formal_name"`
	Code       string            `json:"code"`
	Street     string            `json:"street"`
	PostalCode int               `json:"postal_code"`
	City       string            `json:"city"`
	Country    string            `json:"country"`
	Valid      map[string]string `json:"valid"`
}

// Contractor operates a line on behalf of a transport authority.
type Contractor struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Line is a single line from the lines endpoint.
type Line struct {
	ID                 int                   `json:"id"`
	GID                int64                 `json:"gid"`
	Name               string                `json:"name"`
	Designation        string                `json:"designation"`
	TransportMode      string                `json:"transport_mode"`
	GroupOfLines       string                `json:"group_of_lines"`
	TransportAuthority TransportAuthorityRef `json:"transport_authority"`
	Contractor         Contractor            `json:"contractor"`
	Valid              map[string]string     `json:"valid"`
}

// LinesResponse groups lines by transport mode, mirroring the API response.
type LinesResponse struct {
	Metro []Line `json:"metro"`
	Tram  []Line `json:"tram"`
	Train []Line `json:"train"`
	Bus   []Line `json:"bus"`
	Ship  []Line `json:"ship"`
	Ferry []Line `json:"ferry"`
	Taxi  []Line `json:"taxi"`
}

// ValidityPeriod is the period for which an object is valid.
type ValidityPeriod struct {
	From LocalTime  `json:"from"`
	To   *LocalTime `json:"to,omitempty"`
}

// Site is a station or stop from the sites endpoint.
type Site struct {
	ID           int            `json:"id"`
	GID          int64          `json:"gid"`
	Name         string         `json:"name"`
	Alias        []string       `json:"alias,omitempty"`
	Abbreviation string         `json:"abbreviation,omitempty"`
	Note         string         `json:"note,omitempty"`
	Lat          float64        `json:"lat"`
	Lon          float64        `json:"lon"`
	Valid        ValidityPeriod `json:"valid"`
}

// StopArea groups stop points that belong together.
type StopArea struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	SName string `json:"sname,omitempty"`
	Type  string `json:"type,omitempty"`
}

// StopPoint is a platform or stop position from the stop-points endpoint.
type StopPoint struct {
	ID                 int                   `json:"id"`
	GID                int64                 `json:"gid"`
	PatternPointGID    int64                 `json:"pattern_point_gid"`
	Name               string                `json:"name"`
	SName              string                `json:"sname,omitempty"`
	Designation        string                `json:"designation,omitempty"`
	LocalNum           int                   `json:"local_num"`
	Type               string                `json:"type"`
	HasEntrance        bool                  `json:"has_entrance"`
	Lat                float64               `json:"lat"`
	Lon                float64               `json:"lon"`
	DoorOrientation    float64               `json:"door_orientation"`
	TransportAuthority TransportAuthorityRef `json:"transport_authority"`
	StopArea           StopArea              `json:"stop_area"`
	Valid              map[string]string     `json:"valid"`
}

// DepartureState is the realtime state of a single departure.
type DepartureState string

const (
	DepartureExpected  DepartureState = "EXPECTED"
	DepartureAtStop    DepartureState = "ATSTOP"
	DepartureBoarding  DepartureState = "BOARDING"
	DepartureCancelled DepartureState = "CANCELLED"
	DepartureDeparted  DepartureState = "DEPARTED"
	DeparturePassed    DepartureState = "PASSED"
	DepartureMissed    DepartureState = "MISSED"
	DepartureReplaced  DepartureState = "REPLACED"
)

// DepartureJourney is the vehicle journey a departure belongs to.
type DepartureJourney struct {
	ID              int64  `json:"id"`
	State           string `json:"state"`
	PredictionState string `json:"prediction_state,omitempty"`
	PassengerLevel  string `json:"passenger_level,omitempty"`
}

// StopAreaRef references a stop area on a departure.
type StopAreaRef struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	SName string `json:"sname,omitempty"`
	Type  string `json:"type,omitempty"`
}

// StopPointRef references a stop point on a departure.
type StopPointRef struct {
	ID          int    `json:"id"`
	Name        string `json:"name,omitempty"`
	Designation string `json:"designation,omitempty"`
}

// LineRef references a line on a departure.
type LineRef struct {
	ID            int           `json:"id"`
	Designation   string        `json:"designation,omitempty"`
	TransportMode TransportMode `json:"transport_mode,omitempty"`
	GroupOfLines  string        `json:"group_of_lines,omitempty"`
}

// DepartureDeviation is a deviation attached to a single departure.
type DepartureDeviation struct {
	ImportanceLevel int    `json:"importance_level"`
	Consequence     string `json:"consequence"`
	Message         string `json:"message"`
}

// Departure is one upcoming departure from a site.
type Departure struct {
	Direction     string               `json:"direction"`
	DirectionCode int                  `json:"direction_code"`
	Via           string               `json:"via,omitempty"`
	Destination   string               `json:"destination,omitempty"`
	State         DepartureState       `json:"state"`
	Display       string               `json:"display"`
	Scheduled     LocalTime            `json:"scheduled"`
	Expected      *LocalTime           `json:"expected,omitempty"`
	Journey       DepartureJourney     `json:"journey"`
	StopArea      StopAreaRef          `json:"stop_area"`
	StopPoint     StopPointRef         `json:"stop_point"`
	Line          LineRef              `json:"line"`
	Deviations    []DepartureDeviation `json:"deviations"`
}

// StopDeviationScope lists the entities a stop deviation applies to.
type StopDeviationScope struct {
	Description string         `json:"description,omitempty"`
	Lines       []LineRef      `json:"lines,omitempty"`
	StopAreas   []StopAreaRef  `json:"stop_areas,omitempty"`
	StopPoints  []StopPointRef `json:"stop_points,omitempty"`
}

// StopDeviation is an active deviation reported alongside departures.
type StopDeviation struct {
	ID              int64              `json:"id"`
	ImportanceLevel int                `json:"importance_level"`
	Message         string             `json:"message"`
	Scope           StopDeviationScope `json:"scope"`
}

// SiteDepartures is the response of the site departures endpoint.
type SiteDepartures struct {
	Departures     []Departure     `json:"departures"`
	StopDeviations []StopDeviation `json:"stop_deviations"`
}

// DeparturesFilter narrows the departures returned for a site. The zero
// value applies no filtering.
type DeparturesFilter struct {
	Transport TransportMode // filter by transport mode
	Direction int           // filter by line direction code
	Line      string        // filter by line id, e.g. "17"
	Forecast  int           // time window in minutes
}

// TransportClient talks to the SL Transport API.
//
// https://www.trafiklab.se/api/our-apis/sl/transport/
type TransportClient struct {
	c *Client
}

// NewTransportClient wraps c with Transport API operations.
func NewTransportClient(c *Client) *TransportClient {
	return &TransportClient{c: c}
}

// Lines lists all lines for a transport authority, grouped by mode.
// Authority 1 is SL.
func (t *TransportClient) Lines(ctx context.Context, transportAuthorityID int) (*LinesResponse, error) {
	params := url.Values{}
	params.Set("transport_authority_id", strconv.Itoa(transportAuthorityID))

	var out LinesResponse
	if err := t.c.getJSON(ctx, t.c.TransportBaseURL+"/lines", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Sites lists all sites within Region Stockholm. When expand is true the
// response inlines referenced objects, which makes it notably larger.
func (t *TransportClient) Sites(ctx context.Context, expand bool) ([]Site, error) {
	params := url.Values{}
	if expand {
		params.Set("expand", "true")
	}

	var out []Site
	if err := t.c.getJSON(ctx, t.c.TransportBaseURL+"/sites", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SiteDepartures returns upcoming departures and active deviations for a
// site. The API caps the result at 3 departures per line and direction.
func (t *TransportClient) SiteDepartures(ctx context.Context, siteID int, filter *DeparturesFilter) (*SiteDepartures, error) {
	params := url.Values{}
	if filter != nil {
		if filter.Transport != "" {
			params.Set("transport", string(filter.Transport))
		}
		if filter.Direction != 0 {
			params.Set("direction", strconv.Itoa(filter.Direction))
		}
		if filter.Line != "" {
			params.Set("line", filter.Line)
		}
		if filter.Forecast != 0 {
			params.Set("forecast", strconv.Itoa(filter.Forecast))
		}
	}

	u := fmt.Sprintf("%s/sites/%d/departures", t.c.TransportBaseURL, siteID)
	var out SiteDepartures
	if err := t.c.getJSON(ctx, u, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StopPoints lists all stop points (platforms) within Region Stockholm.
func (t *TransportClient) StopPoints(ctx context.Context) ([]StopPoint, error) {
	var out []StopPoint
	if err := t.c.getJSON(ctx, t.c.TransportBaseURL+"/stop-points", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TransportAuthorities lists all transport authorities within Region
// Stockholm.
func (t *TransportClient) TransportAuthorities(ctx context.Context) ([]TransportAuthority, error) {
	var out []TransportAuthority
	if err := t.c.getJSON(ctx, t.c.TransportBaseURL+"/transport-authorities", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
