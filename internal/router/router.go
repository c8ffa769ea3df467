// Package router orchestrates one conversational turn: extract parameters,
// classify intent, merge with session memory, validate, dispatch to the
// matching backend, and store the resolved query back into memory. Failures
// are turn-scoped and never corrupt memory for the next turn.
package router

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/skyrouteai/skyroute/internal/extract"
	"github.com/skyrouteai/skyroute/internal/flightstatus"
	"github.com/skyrouteai/skyroute/internal/intent"
	"github.com/skyrouteai/skyroute/internal/memory"
	"github.com/skyrouteai/skyroute/internal/warehouse"
)

// DefaultAdapterTimeout bounds each backend call within a turn.
const DefaultAdapterTimeout = 10 * time.Second

// Config assembles a Router. Status and Warehouse may be nil when the
// corresponding backend is not configured; turns needing them then fail
// with a turn-scoped error instead of panicking.
type Config struct {
	Classifier *intent.Classifier
	Status     flightstatus.Lookup
	Warehouse  warehouse.Warehouse
	Memory     *memory.Memory

	// MinFlights overrides the warehouse group-size floor; zero keeps the
	// warehouse default.
	MinFlights int
	// AdapterTimeout bounds each backend call; zero means DefaultAdapterTimeout.
	AdapterTimeout time.Duration
}

// Router routes utterances for a single conversational session. It is not
// safe for concurrent use; each session owns its own Router and Memory.
type Router struct {
	classifier *intent.Classifier
	status     flightstatus.Lookup
	warehouse  warehouse.Warehouse
	memory     *memory.Memory

	minFlights     int
	adapterTimeout time.Duration
}

// New creates a Router from cfg. A nil Memory gets a fresh session; a nil
// Classifier gets rules-only classification.
func New(cfg Config) *Router {
	if cfg.Memory == nil {
		cfg.Memory = memory.New()
	}
	if cfg.Classifier == nil {
		cfg.Classifier = intent.NewClassifier(nil, 0)
	}
	if cfg.AdapterTimeout <= 0 {
		cfg.AdapterTimeout = DefaultAdapterTimeout
	}
	return &Router{
		classifier:     cfg.Classifier,
		status:         cfg.Status,
		warehouse:      cfg.Warehouse,
		memory:         cfg.Memory,
		minFlights:     cfg.MinFlights,
		adapterTimeout: cfg.AdapterTimeout,
	}
}

// Memory returns the session memory backing this router.
func (r *Router) Memory() *memory.Memory {
	return r.memory
}

// Handle routes one utterance through the full pipeline and returns a
// structured response. It never returns an error: every failure becomes a
// turn-scoped Response.Err so the session survives.
func (r *Router) Handle(ctx context.Context, utterance string) *Response {
	params := extract.Extract(utterance)

	in, classifyErr := r.classifier.Classify(ctx, utterance, params)

	var prev *memory.State
	if st, ok := r.memory.Current(); ok {
		prev = &st
	}
	resolved, merged := memory.Merge(prev, in, params)

	switch resolved {
	case intent.FlightStatus:
		return r.handleStatus(ctx, merged)
	case intent.FareAnalytics:
		return r.handleAnalytics(ctx, merged)
	default:
		return r.handleUnknown(merged, classifyErr)
	}
}

func (r *Router) handleStatus(ctx context.Context, p extract.Params) *Response {
	if p.FlightNumber == nil {
		return fail(intent.FlightStatus, p, ErrValidationFailed,
			"I need a flight number to check status. Try something like \"What's the status of AA123?\"")
	}
	if r.status == nil {
		return fail(intent.FlightStatus, p, ErrAdapterTransport,
			"Flight status lookups are not configured.")
	}

	ctx, cancel := context.WithTimeout(ctx, r.adapterTimeout)
	defer cancel()

	rec, err := r.status.Lookup(ctx, *p.FlightNumber)
	if err != nil {
		// A failed status turn keeps memory untouched: there is nothing
		// for a follow-up to inherit from a flight number that did not
		// resolve.
		if errors.Is(err, flightstatus.ErrNotFound) {
			return fail(intent.FlightStatus, p, ErrAdapterNotFound,
				fmt.Sprintf("I couldn't find flight %s. Double-check the flight number?", *p.FlightNumber))
		}
		return fail(intent.FlightStatus, p, ErrAdapterTransport,
			fmt.Sprintf("The flight status service is unavailable right now (%v). Try again in a moment.", err))
	}

	r.memory.Update(intent.FlightStatus, p)
	return &Response{Intent: intent.FlightStatus, Params: p, Status: rec}
}

func (r *Router) handleAnalytics(ctx context.Context, p extract.Params) *Response {
	if !p.HasRoute() {
		if len(p.Candidates) > 1 {
			return fail(intent.FareAnalytics, p, ErrExtractionAmbiguous,
				fmt.Sprintf("I found airports %s but couldn't tell which is origin and which is destination. Try \"from %s to %s\".",
					strings.Join(p.Candidates, ", "), p.Candidates[0], p.Candidates[1]))
		}
		return fail(intent.FareAnalytics, p, ErrValidationFailed,
			"I need both an origin and a destination airport, e.g. \"most on-time airlines from SFO to JFK\".")
	}
	if r.warehouse == nil {
		return fail(intent.FareAnalytics, p, ErrAdapterTransport,
			"Flight analytics are not configured.")
	}

	// A route question with no named analysis defaults to the airline
	// on-time ranking.
	if p.Analysis == nil {
		def := extract.AnalysisOnTimeRanking
		p.Analysis = &def
	}

	ctx, cancel := context.WithTimeout(ctx, r.adapterTimeout)
	defer cancel()

	resp := &Response{Intent: intent.FareAnalytics, Params: p}
	var err error
	switch *p.Analysis {
	case extract.AnalysisDayOfWeekDelay:
		resp.Days, err = r.warehouse.DelaysByDayOfWeek(ctx, *p.Origin, *p.Destination, p.Year)
	default:
		resp.Airlines, err = r.warehouse.RankAirlinesByOnTime(ctx, *p.Origin, *p.Destination, p.Year, r.minFlights)
	}

	// The route itself is known-good even when the query fails, so it is
	// remembered either way and the next turn can retry or refine it.
	r.memory.Update(intent.FareAnalytics, p)

	if err != nil {
		if errors.Is(err, warehouse.ErrNoData) {
			return fail(intent.FareAnalytics, p, ErrAdapterEmpty,
				fmt.Sprintf("I don't have enough flight history for %s-%s to answer that.", *p.Origin, *p.Destination))
		}
		return fail(intent.FareAnalytics, p, ErrAdapterTransport,
			fmt.Sprintf("The analytics warehouse is unavailable right now (%v). Try again in a moment.", err))
	}
	return resp
}

func (r *Router) handleUnknown(p extract.Params, classifyErr error) *Response {
	if classifyErr != nil {
		return fail(intent.Unknown, p, ErrClassifierUnavailable,
			"I couldn't work out what you're asking, and the fallback classifier is unavailable. "+
				"Ask about a flight number (\"status of AA123\") or a route (\"on-time airlines from SFO to JFK\").")
	}
	return fail(intent.Unknown, p, ErrValidationFailed,
		"I can check flight status (\"What's the status of AA123?\") or compare airlines and delays on a route "+
			"(\"most on-time airlines from SFO to JFK\", \"which day has fewer delays from EWR to ORD\").")
}
