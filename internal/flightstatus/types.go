// Package flightstatus looks up real-time status for a single flight.
// The concrete client talks to the AviationStack REST API; the router only
// depends on the Lookup interface.
package flightstatus

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound reports that the data source has no record for the flight.
// It is a normal outcome, not a transport failure.
var ErrNotFound = errors.New("flight not found")

// Record is one flight's current status. Every field except the flight
// number is independently nullable: the upstream feed routinely omits
// gates, actual times, and even the airline name.
type Record struct {
	FlightNumber       string     `json:"flight_number"`
	Airline            *string    `json:"airline,omitempty"`
	Status             *string    `json:"status,omitempty"`
	DepartureAirport   *string    `json:"departure_airport,omitempty"`
	DepartureScheduled *time.Time `json:"departure_scheduled,omitempty"`
	DepartureActual    *time.Time `json:"departure_actual,omitempty"`
	DepartureGate      *string    `json:"departure_gate,omitempty"`
	ArrivalAirport     *string    `json:"arrival_airport,omitempty"`
	ArrivalScheduled   *time.Time `json:"arrival_scheduled,omitempty"`
	ArrivalEstimated   *time.Time `json:"arrival_estimated,omitempty"`
	ArrivalGate        *string    `json:"arrival_gate,omitempty"`
}

// Lookup fetches the current status of one flight by IATA flight number.
type Lookup interface {
	Lookup(ctx context.Context, flightNumber string) (*Record, error)
}
