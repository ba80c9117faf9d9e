// Package search provides the SearchAPI-backed flight, hotel and news
// providers. Results are returned as decoded provider JSON; reduction to
// compact views happens in the tool layer.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Provider errors surfaced to the tool dispatcher. They never abort a run;
// the dispatcher converts them into error-bearing tool messages.
var (
	ErrMissingAPIKey  = errors.New("search: API key is missing")
	ErrProviderStatus = errors.New("search: provider returned non-success status")
	ErrUnknownCity    = errors.New("search: no location code for city")
)

const defaultBaseURL = "https://www.searchapi.io/api/v1/search"

// Config holds provider settings and the default query parameters sent with
// every request.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration

	// Country, Language and Currency feed the gl/hl/currency parameters.
	Country  string
	Language string
	Currency string

	// Flight search defaults.
	TravelClass string // economy | premium_economy | business | first_class
	Stops       string // any | nonstop | one_stop_or_fewer | two_stops_or_fewer
	SortBy      string // price | duration | top_flights
	Adults      int
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.Country == "" {
		c.Country = "IN"
	}
	if c.Language == "" {
		c.Language = "en"
	}
	if c.Currency == "" {
		c.Currency = "INR"
	}
	if c.TravelClass == "" {
		c.TravelClass = "economy"
	}
	if c.Stops == "" {
		c.Stops = "any"
	}
	if c.SortBy == "" {
		c.SortBy = "price"
	}
	if c.Adults <= 0 {
		c.Adults = 1
	}
	return c
}

// Client is the shared search-provider client. The underlying HTTP client
// is created lazily, pooled across calls, and released by Close.
type Client struct {
	cfg    Config
	log    zerolog.Logger
	once   sync.Once
	client *http.Client
}

// NewClient creates a search client.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	return &Client{cfg: cfg.withDefaults(), log: log}
}

func (c *Client) httpClient() *http.Client {
	c.once.Do(func() {
		c.client = &http.Client{Timeout: c.cfg.Timeout}
	})
	return c.client
}

// Close releases pooled connections.
func (c *Client) Close() {
	if c.client != nil {
		c.client.CloseIdleConnections()
	}
}

// FlightQuery describes one flight search in city names; the client
// normalizes cities to IATA codes before calling the provider.
type FlightQuery struct {
	Departure    string
	Arrival      string
	OutboundDate string
	IsRoundTrip  bool
	ReturnDate   string
}

// HotelQuery describes one hotel search. Location is free text and may
// carry descriptors ("beachside hotels in Bali").
type HotelQuery struct {
	Location     string
	CheckInDate  string
	CheckOutDate string
}

// Flights fetches flight options for the query. Unknown city names return
// ErrUnknownCity without touching the network.
func (c *Client) Flights(ctx context.Context, q FlightQuery) (map[string]interface{}, error) {
	depCode, ok := LookupCode(q.Departure)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCity, q.Departure)
	}
	arrCode, ok := LookupCode(q.Arrival)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCity, q.Arrival)
	}

	c.log.Info().
		Str("departure", q.Departure).Str("departure_id", depCode).
		Str("arrival", q.Arrival).Str("arrival_id", arrCode).
		Str("outbound_date", q.OutboundDate).Bool("round_trip", q.IsRoundTrip).
		Msg("flight search")

	params := url.Values{
		"engine":         {"google_flights"},
		"departure_id":   {depCode},
		"arrival_id":     {arrCode},
		"outbound_date":  {q.OutboundDate},
		"travel_class":   {c.cfg.TravelClass},
		"flight_type":    {"one_way"},
		"stops":          {c.cfg.Stops},
		"sort_by":        {c.cfg.SortBy},
		"adults":         {strconv.Itoa(c.cfg.Adults)},
		"gl":             {c.cfg.Country},
		"hl":             {c.cfg.Language},
		"currency":       {c.cfg.Currency},
	}
	if q.IsRoundTrip {
		params.Set("flight_type", "round_trip")
		if q.ReturnDate != "" {
			params.Set("return_date", q.ReturnDate)
		} else {
			c.log.Warn().Msg("round trip selected but return_date not provided")
		}
	}

	return c.get(ctx, params)
}

// Hotels fetches hotel properties for the query.
func (c *Client) Hotels(ctx context.Context, q HotelQuery) (map[string]interface{}, error) {
	c.log.Info().
		Str("location", q.Location).
		Str("check_in", q.CheckInDate).Str("check_out", q.CheckOutDate).
		Msg("hotel search")

	params := url.Values{
		"engine":         {"google_hotels"},
		"q":              {q.Location},
		"check_in_date":  {q.CheckInDate},
		"check_out_date": {q.CheckOutDate},
		"gl":             {c.cfg.Country},
		"hl":             {c.cfg.Language},
		"currency":       {c.cfg.Currency},
	}
	return c.get(ctx, params)
}

// News fetches news articles for the query.
func (c *Client) News(ctx context.Context, query string) (map[string]interface{}, error) {
	c.log.Info().Str("query", query).Msg("news search")

	params := url.Values{
		"engine": {"google_news"},
		"q":      {query},
		"gl":     {c.cfg.Country},
		"hl":     {c.cfg.Language},
	}
	return c.get(ctx, params)
}

// get performs one provider request and decodes the JSON body.
func (c *Client) get(ctx context.Context, params url.Values) (map[string]interface{}, error) {
	if c.cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("search: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrProviderStatus, resp.StatusCode)
	}

	var data map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("search: decoding response failed: %w", err)
	}
	return data, nil
}
