// Package transit provides HTTP clients for the Trafiklab SL APIs:
// Transport (lines, sites, departures), Deviations, Stop Lookup and
// Journey Planner v2.
//
// All clients share a Client carrying the http.Client and the base URLs,
// so tests can point them at a local server. Every call takes a
// context.Context and returns decoded response structs.
package transit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Version is reported in the User-Agent header of every request.
const Version = "0.3.0"

const (
	defaultTransportBaseURL  = "https://transport.integration.sl.se/v1"
	defaultDeviationsBaseURL = "https://deviations.integration.sl.se/v1"
	defaultJourneyBaseURL    = "https://journeyplanner.integration.sl.se/v2"
	defaultStopLookupBaseURL = "https://journeyplanner.integration.sl.se/v1"

	defaultTimeout = 30 * time.Second
)

// Client is the shared transport under every API client. The zero value is
// not usable; construct with NewClient.
type Client struct {
	httpc     *http.Client
	userAgent string

	// Base URLs are exported so tests and proxies can redirect traffic.
	TransportBaseURL  string
	DeviationsBaseURL string
	JourneyBaseURL    string
	StopLookupBaseURL string
}

// ClientOption mutates a Client during construction.
type ClientOption func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.httpc = h }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient returns a Client with production base URLs and a 30s timeout.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpc:             &http.Client{Timeout: defaultTimeout},
		userAgent:         "slkit/" + Version,
		TransportBaseURL:  defaultTransportBaseURL,
		DeviationsBaseURL: defaultDeviationsBaseURL,
		JourneyBaseURL:    defaultJourneyBaseURL,
		StopLookupBaseURL: defaultStopLookupBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpc == nil {
		c.httpc = &http.Client{Timeout: defaultTimeout}
	}
	return c
}

// getJSON performs a GET against rawURL with the given query parameters and
// decodes the JSON body into out.
func (c *Client) getJSON(ctx context.Context, rawURL string, params url.Values, out any) error {
	u := rawURL
	if len(params) > 0 {
		u = rawURL + "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("transit: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("transit: %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{URL: rawURL, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("transit: decode %s: %w", rawURL, err)
	}
	return nil
}
