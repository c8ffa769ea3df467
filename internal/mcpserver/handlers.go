package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/skyrouteai/skyroute/internal/extract"
	"github.com/skyrouteai/skyroute/internal/flightstatus"
	"github.com/skyrouteai/skyroute/internal/intent"
	"github.com/skyrouteai/skyroute/internal/present"
	"github.com/skyrouteai/skyroute/internal/router"
	"github.com/skyrouteai/skyroute/internal/warehouse"
)

// handleAsk routes a natural-language question through the shared
// conversation. Turn failures come back as tool errors so the agent can
// rephrase; the conversation itself always survives.
func (s *Server) handleAsk(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: question"), nil
	}

	s.mu.Lock()
	resp := s.router.Handle(ctx, question)
	s.mu.Unlock()

	if resp.Err != nil {
		return mcp.NewToolResultError(resp.Err.Message), nil
	}
	return mcp.NewToolResultText(present.Text(resp)), nil
}

// handleFlightStatus performs a direct status lookup, no memory involved.
func (s *Server) handleFlightStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	flightNumber, err := request.RequireString("flight_number")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: flight_number"), nil
	}
	if s.status == nil {
		return mcp.NewToolResultError("flight status lookups are not configured"), nil
	}

	rec, err := s.status.Lookup(ctx, flightNumber)
	if err != nil {
		if errors.Is(err, flightstatus.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("no record found for flight %s", strings.ToUpper(flightNumber))), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("status lookup failed: %v", err)), nil
	}

	return mcp.NewToolResultText(present.Text(&router.Response{
		Intent: intent.FlightStatus,
		Status: rec,
	})), nil
}

func (s *Server) handleRankAirlines(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	origin, destination, year, result := s.routeArgs(request)
	if result != nil {
		return result, nil
	}

	minFlights := request.GetInt("min_flights", 0)
	airlines, err := s.warehouse.RankAirlinesByOnTime(ctx, origin, destination, year, minFlights)
	if err != nil {
		if errors.Is(err, warehouse.ErrNoData) {
			return mcp.NewToolResultError(fmt.Sprintf("no flight history for %s-%s", origin, destination)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("analytics query failed: %v", err)), nil
	}

	return mcp.NewToolResultText(present.Text(&router.Response{
		Intent:   intent.FareAnalytics,
		Params:   routeParams(origin, destination, year),
		Airlines: airlines,
	})), nil
}

func (s *Server) handleDelaysByDay(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	origin, destination, year, result := s.routeArgs(request)
	if result != nil {
		return result, nil
	}

	days, err := s.warehouse.DelaysByDayOfWeek(ctx, origin, destination, year)
	if err != nil {
		if errors.Is(err, warehouse.ErrNoData) {
			return mcp.NewToolResultError(fmt.Sprintf("no flight history for %s-%s", origin, destination)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("analytics query failed: %v", err)), nil
	}

	return mcp.NewToolResultText(present.Text(&router.Response{
		Intent: intent.FareAnalytics,
		Params: routeParams(origin, destination, year),
		Days:   days,
	})), nil
}

// routeArgs pulls the shared origin/destination/year arguments out of an
// analytics tool call. A non-nil result is the error to return as-is.
func (s *Server) routeArgs(request mcp.CallToolRequest) (origin, destination string, year *int, result *mcp.CallToolResult) {
	origin, err := request.RequireString("origin")
	if err != nil {
		return "", "", nil, mcp.NewToolResultError("missing required parameter: origin")
	}
	destination, err = request.RequireString("destination")
	if err != nil {
		return "", "", nil, mcp.NewToolResultError("missing required parameter: destination")
	}
	if s.warehouse == nil {
		return "", "", nil, mcp.NewToolResultError("flight analytics are not configured")
	}

	origin = strings.ToUpper(strings.TrimSpace(origin))
	destination = strings.ToUpper(strings.TrimSpace(destination))
	if len(origin) != 3 || len(destination) != 3 {
		return "", "", nil, mcp.NewToolResultError("airport codes must be 3-letter IATA codes")
	}

	if y := request.GetInt("year", 0); y != 0 {
		year = &y
	}
	return origin, destination, year, nil
}

func routeParams(origin, destination string, year *int) extract.Params {
	return extract.Params{Origin: &origin, Destination: &destination, Year: year}
}
