// Package warehouse answers the two historical analytics query shapes the
// router can dispatch: ranking airlines by on-time performance on a route,
// and comparing delays by day of week. The concrete store keeps flight
// history in a local SQLite database.
package warehouse

import (
	"context"
	"errors"
)

// DefaultMinFlights is the smallest group size included in results.
// Groups below it are statistical noise and are excluded.
const DefaultMinFlights = 10

// ErrNoData reports that a query matched no qualifying flights.
var ErrNoData = errors.New("no flight data for route")

// AirlineOnTime is one carrier's aggregate performance on a route.
// On-time means arriving within 15 minutes of schedule.
type AirlineOnTime struct {
	CarrierCode       string  `json:"carrier_code"`
	CarrierName       string  `json:"carrier_name"`
	AvgDepartureDelay float64 `json:"avg_departure_delay"`
	AvgArrivalDelay   float64 `json:"avg_arrival_delay"`
	AvgOverallDelay   float64 `json:"avg_overall_delay"`
	OnTimePct         float64 `json:"on_time_pct"`
	FlightCount       int     `json:"flight_count"`
}

// DayDelay is the aggregate delay picture for one day of the week on a
// route, ordered best day first.
type DayDelay struct {
	DayOfWeek         string  `json:"day_of_week"`
	AvgDepartureDelay float64 `json:"avg_departure_delay"`
	AvgArrivalDelay   float64 `json:"avg_arrival_delay"`
	AvgOverallDelay   float64 `json:"avg_overall_delay"`
	OnTimePct         float64 `json:"on_time_pct"`
	FlightCount       int     `json:"flight_count"`
}

// Warehouse is the analytics backend consumed by the router. Both queries
// take parameterized inputs only; year is optional.
type Warehouse interface {
	RankAirlinesByOnTime(ctx context.Context, origin, destination string, year *int, minFlights int) ([]AirlineOnTime, error)
	DelaysByDayOfWeek(ctx context.Context, origin, destination string, year *int) ([]DayDelay, error)
}
