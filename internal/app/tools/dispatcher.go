// Package tools implements the fixed tool set and the dispatcher that
// executes tool call requests emitted by the reasoning step.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/tripflow/tripflow/internal/adapters/search"
	"github.com/tripflow/tripflow/internal/core/message"
	"github.com/tripflow/tripflow/internal/core/reduce"
	"github.com/tripflow/tripflow/internal/infrastructure/metrics"
)

// Tool names. The set is fixed; there is no plugin mechanism.
const (
	ToolGetCurrentDate = "get_current_date"
	ToolSearchFlights  = "search_flights"
	ToolSearchHotels   = "search_hotels"
	ToolSearchNews     = "search_news"
)

// Searcher is the external search-provider collaborator.
type Searcher interface {
	Flights(ctx context.Context, q search.FlightQuery) (map[string]interface{}, error)
	Hotels(ctx context.Context, q search.HotelQuery) (map[string]interface{}, error)
	News(ctx context.Context, query string) (map[string]interface{}, error)
}

// Descriptor describes one tool to the reasoning provider.
type Descriptor struct {
	Name        string
	Description string
	Parameters  map[string]interface{} // JSON schema for the arguments
}

// Dispatcher resolves, validates and executes tool call requests in order.
// Per-call failures become error-bearing tool messages and never escalate:
// a failed search aborts neither its sibling calls nor the run.
type Dispatcher struct {
	searcher Searcher
	validate *validator.Validate
	log      zerolog.Logger
	now      func() time.Time
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithClock overrides the dispatcher's clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) { d.now = now }
}

// NewDispatcher creates a dispatcher over the given search collaborator.
func NewDispatcher(searcher Searcher, log zerolog.Logger, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		searcher: searcher,
		validate: validator.New(),
		log:      log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch executes every tool call from one reasoning turn, preserving
// request order, and returns one tool message per call.
func (d *Dispatcher) Dispatch(ctx context.Context, calls []message.ToolCallRequest, store *DataStore) []message.Message {
	results := make([]message.Message, 0, len(calls))
	for _, call := range calls {
		metrics.ToolCall(call.Name)
		content := d.execute(ctx, call, store)
		d.log.Info().
			Str("tool", call.Name).
			Str("call_id", call.ID).
			Int("result_len", len(content)).
			Msg("tool executed")
		results = append(results, message.Tool(call.ID, content))
	}
	return results
}

func (d *Dispatcher) execute(ctx context.Context, call message.ToolCallRequest, store *DataStore) string {
	switch call.Name {
	case ToolGetCurrentDate:
		return CurrentDateInfo(d.now())
	case ToolSearchFlights:
		return d.searchFlights(ctx, call.Args, store)
	case ToolSearchHotels:
		return d.searchHotels(ctx, call.Args, store)
	case ToolSearchNews:
		return d.searchNews(ctx, call.Args, store)
	default:
		return fmt.Sprintf("Unknown tool: %s", call.Name)
	}
}

type flightArgs struct {
	Departure    string `json:"departure" validate:"required"`
	Arrival      string `json:"arrival" validate:"required"`
	OutboundDate string `json:"outbound_date" validate:"required,datetime=2006-01-02"`
	IsRoundTrip  bool   `json:"is_round_trip"`
	ReturnDate   string `json:"return_date" validate:"omitempty,datetime=2006-01-02"`
}

type hotelArgs struct {
	CheckInDate  string `json:"check_in_date" validate:"required,datetime=2006-01-02"`
	CheckOutDate string `json:"check_out_date" validate:"required,datetime=2006-01-02"`
	Location     string `json:"location" validate:"required"`
}

type newsArgs struct {
	Query string `json:"query" validate:"required"`
}

// bindArgs decodes the structured arguments into a typed struct and runs
// field validation.
func (d *Dispatcher) bindArgs(args map[string]interface{}, out interface{}) error {
	raw, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encoding arguments: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("binding arguments: %w", err)
	}
	return d.validate.Struct(out)
}

func (d *Dispatcher) searchFlights(ctx context.Context, args map[string]interface{}, store *DataStore) string {
	var a flightArgs
	if err := d.bindArgs(args, &a); err != nil {
		return fmt.Sprintf("Error searching flights: %v", err)
	}

	data, err := d.searcher.Flights(ctx, search.FlightQuery{
		Departure:    a.Departure,
		Arrival:      a.Arrival,
		OutboundDate: a.OutboundDate,
		IsRoundTrip:  a.IsRoundTrip,
		ReturnDate:   a.ReturnDate,
	})
	if err != nil {
		// An unmappable city is a user-facing miss, not a failure.
		if errors.Is(err, search.ErrUnknownCity) {
			return "No flights found for the given route and dates."
		}
		metrics.ToolFailure(ToolSearchFlights)
		return fmt.Sprintf("Error searching flights: %v", err)
	}

	compact, full := reduce.Flights(data)
	key := fmt.Sprintf("%s_%s_%s", a.Departure, a.Arrival, a.OutboundDate)
	store.Put(reduce.DataFlights, key, full)
	return compact
}

func (d *Dispatcher) searchHotels(ctx context.Context, args map[string]interface{}, store *DataStore) string {
	var a hotelArgs
	if err := d.bindArgs(args, &a); err != nil {
		return fmt.Sprintf("Error searching hotels: %v", err)
	}

	data, err := d.searcher.Hotels(ctx, search.HotelQuery{
		Location:     a.Location,
		CheckInDate:  a.CheckInDate,
		CheckOutDate: a.CheckOutDate,
	})
	if err != nil {
		metrics.ToolFailure(ToolSearchHotels)
		return fmt.Sprintf("Error searching hotels: %v", err)
	}

	compact, full := reduce.Hotels(data)
	key := fmt.Sprintf("%s_%s_%s", a.Location, a.CheckInDate, a.CheckOutDate)
	store.Put(reduce.DataHotels, key, full)
	return compact
}

func (d *Dispatcher) searchNews(ctx context.Context, args map[string]interface{}, store *DataStore) string {
	var a newsArgs
	if err := d.bindArgs(args, &a); err != nil {
		return fmt.Sprintf("Error searching news: %v", err)
	}

	data, err := d.searcher.News(ctx, a.Query)
	if err != nil {
		metrics.ToolFailure(ToolSearchNews)
		return fmt.Sprintf("Error searching news: %v", err)
	}

	compact, full := reduce.News(data)
	store.Put(reduce.DataNews, a.Query, full)
	return compact
}
