package transit

import (
	"context"
	"net/url"
	"strconv"
)

// DeviationPublish is the window during which a deviation is published.
type DeviationPublish struct {
	From LocalTime  `json:"from"`
	Upto *LocalTime `json:"upto,omitempty"`
}

// DeviationPriority ranks how disruptive a deviation is.
type DeviationPriority struct {
	ImportanceLevel int `json:"importance_level"`
	InfluenceLevel  int `json:"influence_level"`
	UrgencyLevel    int `json:"urgency_level"`
}

// MessageVariant is one language rendering of a deviation message.
type MessageVariant struct {
	Header     string `json:"header"`
	Details    string `json:"details"`
	ScopeAlias string `json:"scope_alias"`
	Language   string `json:"language"`
	Weblink    string `json:"weblink,omitempty"`
}

// ScopeStopPoint is a stop point inside a deviation scope.
type ScopeStopPoint struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ScopeArea is a stop area affected by a deviation.
type ScopeArea struct {
	ID                 int              `json:"id"`
	TransportAuthority int              `json:"transport_authority"`
	Name               string           `json:"name"`
	Type               string           `json:"type"`
	StopPoints         []ScopeStopPoint `json:"stop_points,omitempty"`
}

// ScopeLine is a line affected by a deviation.
type ScopeLine struct {
	ID                 int           `json:"id"`
	TransportAuthority int           `json:"transport_authority"`
	TransportMode      TransportMode `json:"transport_mode"`
	Designation        string        `json:"designation,omitempty"`
	Name               string        `json:"name,omitempty"`
	GroupOfLines       string        `json:"group_of_lines,omitempty"`
}

// DeviationScope lists the entities a deviation applies to.
type DeviationScope struct {
	StopAreas []ScopeArea `json:"stop_areas,omitempty"`
	Lines     []ScopeLine `json:"lines,omitempty"`
}

// Deviation is one service deviation message on the SL network.
type Deviation struct {
	Version         int               `json:"version"`
	DeviationCaseID int64             `json:"deviation_case_id,omitempty"`
	Created         LocalTime         `json:"created"`
	Modified        *LocalTime        `json:"modified,omitempty"`
	Publish         DeviationPublish  `json:"publish"`
	Priority        DeviationPriority `json:"priority"`
	MessageVariants []MessageVariant  `json:"message_variants"`
	Scope           *DeviationScope   `json:"scope,omitempty"`
}

// DeviationsFilter narrows the deviation messages returned. The zero value
// returns all current messages.
type DeviationsFilter struct {
	Future             *bool           // include planned future deviations
	Sites              []int           // filter by site ids
	Lines              []string        // filter by line designations
	TransportAuthority int             // filter by transport authority id
	TransportModes     []TransportMode // filter by transport modes
}

// DeviationsClient talks to the SL Deviations API.
//
// https://www.trafiklab.se/api/trafiklab-apis/sl/deviations/
type DeviationsClient struct {
	c *Client
}

// NewDeviationsClient wraps c with Deviations API operations.
func NewDeviationsClient(c *Client) *DeviationsClient {
	return &DeviationsClient{c: c}
}

// Messages returns deviation messages matching the filter.
func (d *DeviationsClient) Messages(ctx context.Context, filter *DeviationsFilter) ([]Deviation, error) {
	params := url.Values{}
	if filter != nil {
		if filter.Future != nil {
			params.Set("future", strconv.FormatBool(*filter.Future))
		}
		for _, site := range filter.Sites {
			params.Add("site", strconv.Itoa(site))
		}
		for _, line := range filter.Lines {
			params.Add("line", line)
		}
		if filter.TransportAuthority != 0 {
			params.Set("transport_authority", strconv.Itoa(filter.TransportAuthority))
		}
		for _, mode := range filter.TransportModes {
			params.Add("transport_mode", string(mode))
		}
	}

	var out []Deviation
	if err := d.c.getJSON(ctx, d.c.DeviationsBaseURL+"/messages", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}
