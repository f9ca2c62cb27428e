package transit

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"time"
)

// Bool returns a pointer to v. Convenience for optional TripParams fields.
func Bool(v bool) *bool { return &v }

// Int returns a pointer to v. Convenience for optional TripParams fields.
func Int(v int) *int { return &v }

// SearchType tells the Journey Planner how to interpret a SearchLeg value.
type SearchType string

const (
	SearchCoord SearchType = "coord" // search by coordinates
	SearchAny   SearchType = "any"   // search by street and stop names
)

// SearchLeg is one end of a trip search: a free-text location, a stop id,
// or a coordinate pair.
type SearchLeg struct {
	Type  SearchType
	Value string
}

// LegFromAny builds a SearchLeg from a stop id or free-text name.
func LegFromAny(value string) SearchLeg {
	return SearchLeg{Type: SearchAny, Value: value}
}

// LegFromCoordinates builds a SearchLeg from WGS84 decimal degrees.
func LegFromCoordinates(lat, lon string) SearchLeg {
	return SearchLeg{Type: SearchCoord, Value: fmt.Sprintf("%s:%s:WGS84[dd.ddddd]", lon, lat)}
}

// LegFromStop builds a SearchLeg from a stop finder result.
func LegFromStop(stop StopFinderLocation) SearchLeg {
	return LegFromAny(stop.ID)
}

// StopFilter limits stop finder results to specific location types.
type StopFilter int

const (
	FilterStops   StopFilter = 2
	FilterStreet  StopFilter = 4
	FilterAddress StopFilter = 8
	FilterPOI     StopFilter = 32
)

// Language selects the response language of the Journey Planner.
type Language string

const (
	LanguageSwedish Language = "sv"
	LanguageEnglish Language = "en"
)

// RouteType is the optimization preference for trip searches.
type RouteType string

const (
	RouteLeastInterchange RouteType = "leastinterchange"
	RouteLeastTime        RouteType = "leasttime"
	RouteLeastWalking     RouteType = "leastwalking"
)

// Product classes used by the Journey Planner to classify transportation.
const (
	ProductTrain         = 0  // pendeltåg
	ProductMetro         = 2  // tunnelbana
	ProductTram          = 4  // lokaltåg, spårväg
	ProductBus           = 5  // buss
	ProductShip          = 9  // båttrafik
	ProductOnDemand      = 10 // anropsstyrd trafik
	ProductNationalTrain = 14 // fjärrtåg
	ProductAccessibleBus = 19 // närtrafik
	ProductFootPath      = 99
	ProductFootPathLocal = 100
)

// Stop finder result types.
const (
	LocationStop     = "stop"
	LocationPlatform = "platform"
	LocationStreet   = "street"
	LocationAddress  = "singlehouse"
	LocationPOI      = "poi"
)

// SystemValidity is the period route planning data is available for.
// Dates are in "YYYY-MM-DD" format.
type SystemValidity struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// StopFinderLocation is one stop finder result or a journey leg endpoint.
type StopFinderLocation struct {
	ID               string              `json:"id"`
	Name             string              `json:"name"`
	DisassembledName string              `json:"disassembledName,omitempty"`
	Type             string              `json:"type,omitempty"`
	Coord            []float64           `json:"coord,omitempty"`
	MatchQuality     int                 `json:"matchQuality,omitempty"`
	IsBest           bool                `json:"isBest,omitempty"`
	ProductClasses   []int               `json:"productClasses,omitempty"`
	Parent           *StopFinderLocation `json:"parent,omitempty"`

	// Set on journey leg endpoints only.
	DepartureTimePlanned   string `json:"departureTimePlanned,omitempty"`
	DepartureTimeEstimated string `json:"departureTimeEstimated,omitempty"`
	ArrivalTimePlanned     string `json:"arrivalTimePlanned,omitempty"`
	ArrivalTimeEstimated   string `json:"arrivalTimeEstimated,omitempty"`
}

// TransportationProduct classifies the vehicle of a leg.
type TransportationProduct struct {
	ID     int    `json:"id,omitempty"`
	Class  int    `json:"class"`
	Name   string `json:"name"`
	IconID int    `json:"iconId,omitempty"`
}

// TransportationOperator runs the vehicle of a leg.
type TransportationOperator struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TransportationDestination is the headsign destination of a leg.
type TransportationDestination struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Transportation describes the line and vehicle serving a journey leg.
type Transportation struct {
	ID               string                     `json:"id,omitempty"`
	Name             string                     `json:"name,omitempty"`
	DisassembledName string                     `json:"disassembledName,omitempty"`
	Number           string                     `json:"number,omitempty"`
	Product          TransportationProduct      `json:"product"`
	Operator         *TransportationOperator    `json:"operator,omitempty"`
	Destination      *TransportationDestination `json:"destination,omitempty"`
}

// JourneyLeg is one segment of a journey: a ride on a line or a footpath.
type JourneyLeg struct {
	Duration       int                  `json:"duration"` // seconds
	Distance       int                  `json:"distance,omitempty"`
	Origin         StopFinderLocation   `json:"origin"`
	Destination    StopFinderLocation   `json:"destination"`
	Transportation Transportation       `json:"transportation"`
	StopSequence   []StopFinderLocation `json:"stopSequence,omitempty"`
	Coords         [][]float64          `json:"coords,omitempty"`
	IsRealtime     bool                 `json:"isRealtimeControlled,omitempty"`
}

// Journey is one trip alternative returned by the trips endpoint.
type Journey struct {
	TripDuration   int          `json:"tripDuration"`   // seconds, timetable
	TripRtDuration int          `json:"tripRtDuration"` // seconds, realtime
	Rating         int          `json:"rating"`
	IsAdditional   bool         `json:"isAdditional"`
	Interchanges   int          `json:"interchanges"`
	Legs           []JourneyLeg `json:"legs"`
}

// TripParams holds every knob of a trip search. Origin and Destination are
// required; everything else is optional and omitted from the request when
// left at the zero value (pointer fields distinguish false from unset).
type TripParams struct {
	Origin      SearchLeg
	Destination SearchLeg

	// NumTrips is how many alternatives to calculate, 1-3. Zero means 1.
	NumTrips int

	Via       *SearchLeg
	NotVia    *SearchLeg
	DwellTime time.Duration // extra waiting time at the via stop, < 24h

	Language           Language
	MaxChanges         *int // 0-9
	RouteType          RouteType
	IncludeCoordinates *bool

	// When is the departure (or arrival, with ArriveBy) time. The zero
	// value means "now" and sends no date parameters.
	When     time.Time
	ArriveBy bool

	// Transport mode filters: nil means API default, otherwise
	// include/exclude the mode.
	Train         *bool // pendeltåg
	Metro         *bool // tunnelbana
	Tram          *bool // lokaltåg, spårväg
	Bus           *bool
	Ship          *bool
	OnDemand      *bool // anropsstyrd trafik
	NationalTrain *bool // fjärrtåg
	AccessibleBus *bool // närtrafik

	ChangeSpeed          *int // walking speed percentage, 25-400
	SuppressAlternatives *bool
	CalcOneDirection     *bool
	UseNearbyStops       *bool

	MaxWalkTime       *int // minutes
	MaxPedestrianTime *int // minutes
	MinWalkDistance   *int // meters
	MaxWalkDistance   *int // meters

	ComputeBikeTrip *bool
	MaxBikeTime     *int // minutes
	MinBikeDistance *int // meters
	MaxBikeDistance *int // meters, max 1000
	ComputeWalkTrip *bool
}

func setBool(params url.Values, key string, v *bool) {
	if v != nil {
		params.Set(key, strconv.FormatBool(*v))
	}
}

func setInt(params url.Values, key string, v *int) {
	if v != nil {
		params.Set(key, strconv.Itoa(*v))
	}
}

// Values validates the parameters and renders them as a query string.
func (p *TripParams) Values() (url.Values, error) {
	if p.Origin.Value == "" || p.Destination.Value == "" {
		return nil, fmt.Errorf("transit: trip search requires origin and destination")
	}
	numTrips := p.NumTrips
	if numTrips == 0 {
		numTrips = 1
	}
	if numTrips < 1 || numTrips > 3 {
		return nil, fmt.Errorf("transit: NumTrips must be between 1 and 3, got %d", p.NumTrips)
	}
	if p.ChangeSpeed != nil && (*p.ChangeSpeed < 25 || *p.ChangeSpeed > 400) {
		return nil, fmt.Errorf("transit: ChangeSpeed must be between 25 and 400, got %d", *p.ChangeSpeed)
	}
	if p.MaxBikeDistance != nil && *p.MaxBikeDistance > 1000 {
		return nil, fmt.Errorf("transit: MaxBikeDistance cannot exceed 1000 meters")
	}
	if p.DwellTime >= 24*time.Hour {
		return nil, fmt.Errorf("transit: DwellTime cannot exceed 24 hours")
	}

	params := url.Values{}
	params.Set("type_origin", string(p.Origin.Type))
	params.Set("name_origin", p.Origin.Value)
	params.Set("type_destination", string(p.Destination.Type))
	params.Set("name_destination", p.Destination.Value)
	params.Set("calc_number_of_trips", strconv.Itoa(numTrips))

	if p.Via != nil {
		params.Set("type_via", string(p.Via.Type))
		params.Set("name_via", p.Via.Value)
	}
	if p.NotVia != nil {
		params.Set("type_not_via", string(p.NotVia.Type))
		params.Set("name_not_via", p.NotVia.Value)
	}
	if p.DwellTime > 0 {
		total := int(p.DwellTime / time.Second)
		params.Set("dwell_time", fmt.Sprintf("%02d:%02d", total/3600, (total%3600)/60))
	}
	if p.Language != "" {
		params.Set("language", string(p.Language))
	}
	setInt(params, "max_changes", p.MaxChanges)
	if p.RouteType != "" {
		params.Set("route_type", string(p.RouteType))
	}
	setBool(params, "gen_c", p.IncludeCoordinates)

	if !p.When.IsZero() {
		params.Set("itd_date", p.When.Format("20060102"))
		params.Set("itd_time", p.When.Format("1504"))
	}
	if p.ArriveBy {
		params.Set("itd_trip_date_time_dep_arr", "arr")
	}

	setBool(params, "incl_mot_0", p.Train)
	setBool(params, "incl_mot_2", p.Metro)
	setBool(params, "incl_mot_4", p.Tram)
	setBool(params, "incl_mot_5", p.Bus)
	setBool(params, "incl_mot_9", p.Ship)
	setBool(params, "incl_mot_10", p.OnDemand)
	setBool(params, "incl_mot_14", p.NationalTrain)
	setBool(params, "incl_mot_19", p.AccessibleBus)

	setInt(params, "change_speed", p.ChangeSpeed)
	setBool(params, "no_alt", p.SuppressAlternatives)
	setBool(params, "calc_one_direction", p.CalcOneDirection)
	setBool(params, "use_prox_foot_search", p.UseNearbyStops)

	setInt(params, "tr_it_mot_value100", p.MaxWalkTime)
	setInt(params, "max_time_pedestrian", p.MaxPedestrianTime)
	setInt(params, "min_length_pedestrian", p.MinWalkDistance)
	setInt(params, "max_length_pedestrian", p.MaxWalkDistance)

	setBool(params, "compute_monomodal_trip_bicycle", p.ComputeBikeTrip)
	setInt(params, "max_time_bicycle", p.MaxBikeTime)
	setInt(params, "min_length_bicycle", p.MinBikeDistance)
	setInt(params, "max_length_bicycle", p.MaxBikeDistance)
	setBool(params, "compute_monomodal_trip_pedestrian", p.ComputeWalkTrip)

	return params, nil
}

// JourneyLine is one line from the line-list endpoint.
type JourneyLine struct {
	ID               string                `json:"id"`
	Name             string                `json:"name,omitempty"`
	DisassembledName string                `json:"disassembledName,omitempty"`
	Number           string                `json:"number,omitempty"`
	Product          TransportationProduct `json:"product"`
}

// LineListOptions filters the line-list endpoint.
type LineListOptions struct {
	// BranchCode filters by transport type: 1 bus, 2 metro, 3 tram or
	// local train, 4 commuter train, 5 road ferry, 6 vessel, 7 taxi,
	// 8 accessible bus. Zero means all.
	BranchCode      int
	MergeDirections *bool
}

// JourneyClient talks to the SL Journey Planner v2 API.
//
// https://www.trafiklab.se/api/our-apis/sl/journey-planner-2/
type JourneyClient struct {
	c *Client
}

// NewJourneyClient wraps c with Journey Planner operations.
func NewJourneyClient(c *Client) *JourneyClient {
	return &JourneyClient{c: c}
}

// SystemInfo returns the period route planning data is available for, or
// nil when the API does not report one.
func (j *JourneyClient) SystemInfo(ctx context.Context) (*SystemValidity, error) {
	var out struct {
		Validity *SystemValidity `json:"validity"`
	}
	if err := j.c.getJSON(ctx, j.c.JourneyBaseURL+"/system-info", nil, &out); err != nil {
		return nil, err
	}
	return out.Validity, nil
}

// FindStops searches stops, addresses and points of interest. Results are
// sorted by match quality, best first. The API may ignore the filter when
// querying by coordinates.
func (j *JourneyClient) FindStops(ctx context.Context, query SearchLeg, filter StopFilter) ([]StopFinderLocation, error) {
	if filter == 0 {
		filter = FilterStops
	}

	params := url.Values{}
	params.Set("any_obj_filter_sf", strconv.Itoa(int(filter)))
	params.Set("name_sf", query.Value)
	if query.Type == SearchCoord {
		params.Set("type_sf", "coord")
	} else {
		params.Set("type_sf", "any")
	}

	var out struct {
		Locations []StopFinderLocation `json:"locations"`
	}
	if err := j.c.getJSON(ctx, j.c.JourneyBaseURL+"/stop-finder", params, &out); err != nil {
		return nil, err
	}
	if out.Locations == nil {
		return nil, fmt.Errorf("%w: missing 'locations' key", ErrResponseFormat)
	}

	locations := out.Locations
	sort.SliceStable(locations, func(a, b int) bool {
		return locations[a].MatchQuality > locations[b].MatchQuality
	})
	return locations, nil
}

// Trips searches trip alternatives between two locations.
func (j *JourneyClient) Trips(ctx context.Context, p *TripParams) ([]Journey, error) {
	params, err := p.Values()
	if err != nil {
		return nil, err
	}

	var out struct {
		Journeys       []Journey `json:"journeys"`
		SystemMessages []struct {
			Type string `json:"type"`
			Code int    `json:"code"`
			Text string `json:"text"`
		} `json:"systemMessages"`
	}
	if err := j.c.getJSON(ctx, j.c.JourneyBaseURL+"/trips", params, &out); err != nil {
		return nil, err
	}
	if out.Journeys == nil {
		if len(out.SystemMessages) > 0 {
			var msgs []string
			for _, m := range out.SystemMessages {
				// -8010 is an informational "origin equals via" style
				// notice the API tags as error.
				if m.Type == "error" && m.Code != -8010 {
					msgs = append(msgs, m.Text)
				}
			}
			return nil, &OperationFailedError{Messages: msgs}
		}
		return nil, fmt.Errorf("%w: expected 'journeys' or 'systemMessages' keys", ErrResponseFormat)
	}
	return out.Journeys, nil
}

// Lines returns the line list. The Transport API offers the same data in a
// simpler shape; this endpoint exists for parity with the planner.
func (j *JourneyClient) Lines(ctx context.Context, opts *LineListOptions) ([]JourneyLine, error) {
	params := url.Values{}
	params.Set("line_list_subnetwork", "tfs")
	if opts != nil {
		if opts.BranchCode != 0 {
			params.Set("line_list_branch_code", strconv.Itoa(opts.BranchCode))
		}
		setBool(params, "merge_dir", opts.MergeDirections)
	}

	var out struct {
		Transportations []JourneyLine `json:"transportations"`
	}
	if err := j.c.getJSON(ctx, j.c.JourneyBaseURL+"/line-list", params, &out); err != nil {
		return nil, err
	}
	return out.Transportations, nil
}
