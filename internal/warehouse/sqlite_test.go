package warehouse

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// seedRoute inserts n flights for one carrier on a route with fixed
// delays so averages are predictable.
func seedRoute(t *testing.T, s *Store, carrier, name, origin, dest string, year, n int, depDelay, arrDelay float64) {
	t.Helper()
	ctx := context.Background()
	date := time.Date(year, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		d, a := depDelay, arrDelay
		if err := s.InsertFlight(ctx, date.AddDate(0, 0, i), carrier, name,
			fmt.Sprintf("%s%d", carrier, 100+i), origin, dest, &d, &a); err != nil {
			t.Fatalf("InsertFlight: %v", err)
		}
	}
}

func TestRankAirlinesByOnTime(t *testing.T) {
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer s.Close()

	// DL always on time, AA always 30 minutes late.
	seedRoute(t, s, "DL", "Delta Air Lines", "JFK", "ATL", 2023, 12, 2, 5)
	seedRoute(t, s, "AA", "American Airlines", "JFK", "ATL", 2023, 12, 20, 30)

	out, err := s.RankAirlinesByOnTime(context.Background(), "JFK", "ATL", nil, 10)
	if err != nil {
		t.Fatalf("RankAirlinesByOnTime: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d carriers, want 2", len(out))
	}
	if out[0].CarrierCode != "DL" {
		t.Errorf("best carrier %q, want DL", out[0].CarrierCode)
	}
	if out[0].OnTimePct != 100 {
		t.Errorf("DL on-time pct = %v, want 100", out[0].OnTimePct)
	}
	if out[1].OnTimePct != 0 {
		t.Errorf("AA on-time pct = %v, want 0", out[1].OnTimePct)
	}
	if out[0].FlightCount != 12 {
		t.Errorf("DL flight count = %d, want 12", out[0].FlightCount)
	}
	if out[1].AvgArrivalDelay != 30 {
		t.Errorf("AA avg arrival delay = %v, want 30", out[1].AvgArrivalDelay)
	}
}

func TestRankAirlinesMinFlightsFilter(t *testing.T) {
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer s.Close()

	seedRoute(t, s, "DL", "Delta Air Lines", "JFK", "ATL", 2023, 12, 2, 5)
	seedRoute(t, s, "B6", "JetBlue", "JFK", "ATL", 2023, 3, 1, 1) // below threshold

	out, err := s.RankAirlinesByOnTime(context.Background(), "JFK", "ATL", nil, 10)
	if err != nil {
		t.Fatalf("RankAirlinesByOnTime: %v", err)
	}
	for _, a := range out {
		if a.CarrierCode == "B6" {
			t.Error("carrier below minFlights threshold was not excluded")
		}
		if a.FlightCount < 10 {
			t.Errorf("carrier %s has %d flights, below threshold", a.CarrierCode, a.FlightCount)
		}
	}
}

func TestRankAirlinesYearFilter(t *testing.T) {
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer s.Close()

	seedRoute(t, s, "DL", "Delta Air Lines", "JFK", "ATL", 2022, 12, 2, 5)
	seedRoute(t, s, "AA", "American Airlines", "JFK", "ATL", 2023, 12, 20, 30)

	year := 2023
	out, err := s.RankAirlinesByOnTime(context.Background(), "JFK", "ATL", &year, 10)
	if err != nil {
		t.Fatalf("RankAirlinesByOnTime: %v", err)
	}
	if len(out) != 1 || out[0].CarrierCode != "AA" {
		t.Fatalf("year filter: got %+v, want only AA", out)
	}
}

func TestRankAirlinesNoData(t *testing.T) {
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer s.Close()

	_, err = s.RankAirlinesByOnTime(context.Background(), "JFK", "ATL", nil, 10)
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("err = %v, want ErrNoData", err)
	}
}

func TestDelaysByDayOfWeek(t *testing.T) {
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	// Mondays run 40 minutes late, Tuesdays 2 minutes, for four weeks
	// each with enough volume to clear the threshold.
	monday := time.Date(2023, 3, 6, 0, 0, 0, 0, time.UTC) // a Monday
	for week := 0; week < 4; week++ {
		for i := 0; i < 3; i++ {
			late, small := 40.0, 2.0
			if err := s.InsertFlight(ctx, monday.AddDate(0, 0, week*7), "DL", "Delta",
				fmt.Sprintf("DL%d", 200+week*10+i), "EWR", "ORD", &late, &late); err != nil {
				t.Fatalf("InsertFlight: %v", err)
			}
			if err := s.InsertFlight(ctx, monday.AddDate(0, 0, week*7+1), "DL", "Delta",
				fmt.Sprintf("DL%d", 300+week*10+i), "EWR", "ORD", &small, &small); err != nil {
				t.Fatalf("InsertFlight: %v", err)
			}
		}
	}

	s.MinFlights = 10
	out, err := s.DelaysByDayOfWeek(ctx, "EWR", "ORD", nil)
	if err != nil {
		t.Fatalf("DelaysByDayOfWeek: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d days, want 2 (12 flights each)", len(out))
	}
	if out[0].DayOfWeek != "Tuesday" {
		t.Errorf("best day %q, want Tuesday", out[0].DayOfWeek)
	}
	if out[0].AvgOverallDelay >= out[1].AvgOverallDelay {
		t.Error("days not ordered by ascending overall delay")
	}
}

func TestImportCSV(t *testing.T) {
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer s.Close()

	var b strings.Builder
	b.WriteString("flight_date,carrier_code,carrier_name,flight_number,origin,destination,dep_delay_minutes,arr_delay_minutes\n")
	for i := 0; i < 12; i++ {
		fmt.Fprintf(&b, "2023-03-%02d,DL,Delta Air Lines,DL%d,JFK,ATL,2,5\n", i+1, 100+i)
	}
	// Malformed date and missing delays: skipped and kept respectively.
	b.WriteString("not-a-date,DL,Delta Air Lines,DL999,JFK,ATL,2,5\n")
	b.WriteString("2023-03-20,DL,Delta Air Lines,DL998,JFK,ATL,,\n")

	path := filepath.Join(t.TempDir(), "flights.csv")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	n, err := s.ImportCSV(context.Background(), path)
	if err != nil {
		t.Fatalf("ImportCSV: %v", err)
	}
	if n != 13 {
		t.Errorf("imported %d rows, want 13 (one skipped)", n)
	}

	// NULL-delay rows must not poison the aggregates.
	out, err := s.RankAirlinesByOnTime(context.Background(), "JFK", "ATL", nil, 10)
	if err != nil {
		t.Fatalf("RankAirlinesByOnTime: %v", err)
	}
	if out[0].FlightCount != 12 {
		t.Errorf("flight count = %d, want 12 qualifying flights", out[0].FlightCount)
	}
}

func TestImportCSVBadHeader(t *testing.T) {
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer s.Close()

	path := filepath.Join(t.TempDir(), "bad.csv")
	if err := os.WriteFile(path, []byte("a,b,c\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if _, err := s.ImportCSV(context.Background(), path); err == nil {
		t.Fatal("expected header error")
	}
}
