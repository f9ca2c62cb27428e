package transit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// LookupSiteID is the 9-digit stop identifier used by the Stop Lookup API.
// The first digit is always 3 and the fourth is always 1; the remaining
// digits encode the Transport API site id.
type LookupSiteID string

// Validate checks the identifier shape.
func (id LookupSiteID) Validate() error {
	s := string(id)
	if len(s) != 9 {
		return fmt.Errorf("transit: lookup site id %q: must be 9 characters", s)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return fmt.Errorf("transit: lookup site id %q: must only contain digits", s)
		}
	}
	if s[0] != '3' || s[3] != '1' {
		return fmt.Errorf("transit: lookup site id %q: must start with 3 and have 1 as 4th character", s)
	}
	return nil
}

// TransportSiteID converts the lookup id to the numeric site id used by the
// Transport API.
func (id LookupSiteID) TransportSiteID() (int, error) {
	if err := id.Validate(); err != nil {
		return 0, err
	}
	s := string(id)
	n, err := strconv.Atoi(string(s[2]) + string(s[1]) + s[4:])
	if err != nil {
		return 0, fmt.Errorf("transit: lookup site id %q: %w", s, err)
	}
	return n, nil
}

// LookupStop is one result from the Stop Lookup typeahead.
type LookupStop struct {
	Name     string       `json:"Name"`
	SiteID   LookupSiteID `json:"SiteId"`
	Type     string       `json:"Type"`
	X        string       `json:"X"`
	Y        string       `json:"Y"`
	Products []string     `json:"Products"`
}

// StopLookupClient talks to the SL Stop Lookup (typeahead) API. It requires
// an API key from Trafiklab.
//
// https://www.trafiklab.se/api/trafiklab-apis/sl/stop-lookup/
type StopLookupClient struct {
	c      *Client
	apiKey string
}

// NewStopLookupClient wraps c with Stop Lookup operations using apiKey.
func NewStopLookupClient(c *Client, apiKey string) *StopLookupClient {
	return &StopLookupClient{c: c, apiKey: apiKey}
}

// Stops searches stations matching the query. maxResults must be in [1, 49];
// the query is capped at 20 characters by the API.
func (s *StopLookupClient) Stops(ctx context.Context, query string, maxResults int) ([]LookupStop, error) {
	if len(query) > 20 {
		return nil, fmt.Errorf("transit: stop lookup query too long, max 20 characters")
	}
	if maxResults < 1 || maxResults >= 50 {
		return nil, fmt.Errorf("transit: maxResults must be between 1 and 49, got %d", maxResults)
	}

	params := url.Values{}
	params.Set("key", s.apiKey)
	params.Set("searchstring", query)
	params.Set("maxresults", strconv.Itoa(maxResults))
	params.Set("type", "S") // stations only

	var envelope struct {
		ResponseData json.RawMessage `json:"ResponseData"`
	}
	if err := s.c.getJSON(ctx, s.c.StopLookupBaseURL+"/typeahead.json", params, &envelope); err != nil {
		return nil, err
	}
	if envelope.ResponseData == nil {
		return nil, fmt.Errorf("%w: missing 'ResponseData' key", ErrResponseFormat)
	}

	var stops []LookupStop
	if err := json.Unmarshal(envelope.ResponseData, &stops); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseFormat, err)
	}
	return stops, nil
}
