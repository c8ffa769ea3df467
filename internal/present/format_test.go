package present

import (
	"strings"
	"testing"
	"time"

	"github.com/skyrouteai/skyroute/internal/extract"
	"github.com/skyrouteai/skyroute/internal/flightstatus"
	"github.com/skyrouteai/skyroute/internal/intent"
	"github.com/skyrouteai/skyroute/internal/router"
	"github.com/skyrouteai/skyroute/internal/warehouse"
)

func strPtr(s string) *string { return &s }

func statusResponse() *router.Response {
	dep := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)
	return &router.Response{
		Intent: intent.FlightStatus,
		Params: extract.Params{FlightNumber: strPtr("AA123")},
		Status: &flightstatus.Record{
			FlightNumber:       "AA123",
			Airline:            strPtr("American Airlines"),
			Status:             strPtr("active"),
			DepartureAirport:   strPtr("John F. Kennedy International"),
			DepartureGate:      strPtr("B22"),
			DepartureScheduled: &dep,
		},
	}
}

func rankingResponse() *router.Response {
	origin, dest := "JFK", "ATL"
	return &router.Response{
		Intent: intent.FareAnalytics,
		Params: extract.Params{Origin: &origin, Destination: &dest},
		Airlines: []warehouse.AirlineOnTime{
			{CarrierCode: "DL", CarrierName: "Delta Air Lines", OnTimePct: 91.2, AvgArrivalDelay: 4.3, FlightCount: 120},
			{CarrierCode: "AA", CarrierName: "American Airlines", OnTimePct: 84.0, AvgArrivalDelay: 11.8, FlightCount: 96},
		},
	}
}

func TestTextStatus(t *testing.T) {
	got := Text(statusResponse())
	for _, want := range []string{"AA123", "American Airlines", "active", "gate B22"} {
		if !strings.Contains(got, want) {
			t.Errorf("text missing %q:\n%s", want, got)
		}
	}
}

func TestTextStatusSparseRecord(t *testing.T) {
	resp := &router.Response{
		Intent: intent.FlightStatus,
		Status: &flightstatus.Record{FlightNumber: "ZZ999"},
	}
	got := Text(resp)
	if !strings.Contains(got, "ZZ999") {
		t.Errorf("text missing flight number:\n%s", got)
	}
	if strings.Contains(got, "<nil>") {
		t.Errorf("nil field leaked into output:\n%s", got)
	}
}

func TestTextRanking(t *testing.T) {
	got := Text(rankingResponse())
	if !strings.Contains(got, "JFK → ATL") {
		t.Errorf("text missing route:\n%s", got)
	}
	// Ranking order must survive formatting.
	if strings.Index(got, "Delta") > strings.Index(got, "American") {
		t.Errorf("ranking order lost:\n%s", got)
	}
}

func TestTextError(t *testing.T) {
	resp := &router.Response{
		Intent: intent.Unknown,
		Err:    &router.Error{Code: router.ErrValidationFailed, Message: "need a flight number"},
	}
	if got := Text(resp); got != "need a flight number" {
		t.Errorf("error text = %q", got)
	}
}

func TestMarkdownRankingTable(t *testing.T) {
	got := Markdown(rankingResponse())
	if !strings.Contains(got, "| 1 | Delta Air Lines | 91.2 | 4.3 | 120 |") {
		t.Errorf("markdown table row missing:\n%s", got)
	}
	if !strings.Contains(got, "| # | Airline | On-time % |") {
		t.Errorf("markdown header missing:\n%s", got)
	}
}

func TestMarkdownDays(t *testing.T) {
	origin, dest := "EWR", "ORD"
	resp := &router.Response{
		Intent: intent.FareAnalytics,
		Params: extract.Params{Origin: &origin, Destination: &dest},
		Days: []warehouse.DayDelay{
			{DayOfWeek: "Tuesday", AvgOverallDelay: 3.1, OnTimePct: 92.5, FlightCount: 40},
		},
	}
	got := Markdown(resp)
	if !strings.Contains(got, "| Tuesday | 3.1 | 92.5 | 40 |") {
		t.Errorf("day table row missing:\n%s", got)
	}
}

func TestHTMLRendersTable(t *testing.T) {
	got, err := HTML(rankingResponse())
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if !strings.Contains(got, "<table>") {
		t.Errorf("expected a rendered table:\n%s", got)
	}
	if !strings.Contains(got, "Delta Air Lines") {
		t.Errorf("carrier missing from HTML:\n%s", got)
	}
}
