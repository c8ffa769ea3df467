package flightstatus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the AviationStack flights endpoint base.
const DefaultBaseURL = "http://api.aviationstack.com/v1"

// DefaultTimeout bounds a single status lookup.
const DefaultTimeout = 10 * time.Second

// AviationStackClient implements Lookup against the AviationStack API.
type AviationStackClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewAviationStackClient creates a client. baseURL may be empty to use
// DefaultBaseURL; a non-positive timeout falls back to DefaultTimeout.
func NewAviationStackClient(apiKey, baseURL string, timeout time.Duration) *AviationStackClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &AviationStackClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

type apiEndpoint struct {
	Airport   *string `json:"airport"`
	Gate      *string `json:"gate"`
	Scheduled *string `json:"scheduled"`
	Actual    *string `json:"actual"`
	Estimated *string `json:"estimated"`
}

type apiFlight struct {
	FlightStatus *string `json:"flight_status"`
	Airline      struct {
		Name *string `json:"name"`
	} `json:"airline"`
	Departure apiEndpoint `json:"departure"`
	Arrival   apiEndpoint `json:"arrival"`
}

type apiResponse struct {
	Data []apiFlight `json:"data"`
}

// Lookup fetches the most recent record for the given flight number.
// An empty result set maps to ErrNotFound; HTTP and transport problems
// are returned as wrapped errors.
func (c *AviationStackClient) Lookup(ctx context.Context, flightNumber string) (*Record, error) {
	q := url.Values{}
	q.Set("access_key", c.apiKey)
	q.Set("flight_iata", strings.ToUpper(flightNumber))

	reqURL := fmt.Sprintf("%s/flights?%s", c.baseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building status request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("flight status request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("flight status API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding status response: %w", err)
	}

	if len(parsed.Data) == 0 {
		return nil, ErrNotFound
	}

	// The first entry is the most recent flight with that number.
	f := parsed.Data[0]
	return &Record{
		FlightNumber:       strings.ToUpper(flightNumber),
		Airline:            f.Airline.Name,
		Status:             f.FlightStatus,
		DepartureAirport:   f.Departure.Airport,
		DepartureScheduled: parseTime(f.Departure.Scheduled),
		DepartureActual:    parseTime(f.Departure.Actual),
		DepartureGate:      f.Departure.Gate,
		ArrivalAirport:     f.Arrival.Airport,
		ArrivalScheduled:   parseTime(f.Arrival.Scheduled),
		ArrivalEstimated:   parseTime(f.Arrival.Estimated),
		ArrivalGate:        f.Arrival.Gate,
	}, nil
}

// parseTime converts the feed's ISO 8601 timestamps, tolerating the
// variants AviationStack emits. Unparseable values become nil rather
// than failing the lookup.
func parseTime(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
	} {
		if t, err := time.Parse(layout, *s); err == nil {
			return &t
		}
	}
	return nil
}
