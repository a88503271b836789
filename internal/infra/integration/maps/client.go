package maps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://maps.googleapis.com"

var ErrNoAPIKey = errors.New("maps api key not configured")

// Client wraps the Google geocoding and Street View APIs used to
// enrich valuation report emails. Every caller treats failures here as
// soft: the report goes out without imagery.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Geocode(ctx context.Context, address string) (*Location, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	endpoint := fmt.Sprintf("%s/maps/api/geocode/json?address=%s&key=%s",
		c.baseURL, url.QueryEscape(address), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode status %d", resp.StatusCode)
	}

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("geocode decode: %w", err)
	}

	if decoded.Status != "OK" || len(decoded.Results) == 0 {
		return nil, fmt.Errorf("geocode returned no result (status %s)", decoded.Status)
	}

	result := decoded.Results[0]
	return &Location{
		Lat:              result.Geometry.Location.Lat,
		Lng:              result.Geometry.Location.Lng,
		FormattedAddress: result.FormattedAddress,
	}, nil
}

// StreetViewURL builds the static Street View image URL embedded in
// the report email.
func (c *Client) StreetViewURL(lat, lng float64) string {
	if c.apiKey == "" {
		return ""
	}
	return fmt.Sprintf("%s/maps/api/streetview?size=600x400&location=%f,%f&key=%s&return_error_code=true",
		c.baseURL, lat, lng, url.QueryEscape(c.apiKey))
}
