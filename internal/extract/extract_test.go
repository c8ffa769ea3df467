package extract

import (
	"reflect"
	"testing"
)

func TestExtractFlightNumber(t *testing.T) {
	tests := []struct {
		utterance string
		want      string
	}{
		{"What's the status of AA123?", "AA123"},
		{"is aca1185 on time", "ACA1185"},
		{"WN2077 gate info please", "WN2077"},
		{"status of AA123 or DL456", "AA123"}, // first match wins
	}
	for _, tt := range tests {
		p := Extract(tt.utterance)
		if p.FlightNumber == nil {
			t.Errorf("Extract(%q): no flight number", tt.utterance)
			continue
		}
		if *p.FlightNumber != tt.want {
			t.Errorf("Extract(%q): flight number %q, want %q", tt.utterance, *p.FlightNumber, tt.want)
		}
	}
}

func TestExtractNoFlightNumber(t *testing.T) {
	for _, u := range []string{
		"best airlines from JFK to ATL",
		"A1 is not a flight number",
		"ABCD1234 has too many letters",
	} {
		if p := Extract(u); p.FlightNumber != nil {
			t.Errorf("Extract(%q): unexpected flight number %q", u, *p.FlightNumber)
		}
	}
}

func TestExtractRouteDirectional(t *testing.T) {
	tests := []struct {
		utterance   string
		origin, dst string
	}{
		{"on-time airlines from JFK to ATL", "JFK", "ATL"},
		{"which day has fewer delays from EWR to ORD", "EWR", "ORD"},
		{"LAX to DEN fare history", "LAX", "DEN"},
		{"JFK → SFO on-time ranking", "JFK", "SFO"},
	}
	for _, tt := range tests {
		p := Extract(tt.utterance)
		if !p.HasRoute() {
			t.Errorf("Extract(%q): route not assigned, candidates %v", tt.utterance, p.Candidates)
			continue
		}
		if *p.Origin != tt.origin || *p.Destination != tt.dst {
			t.Errorf("Extract(%q): route %s-%s, want %s-%s",
				tt.utterance, *p.Origin, *p.Destination, tt.origin, tt.dst)
		}
	}
}

func TestExtractAmbiguousAirports(t *testing.T) {
	// Two codes without a directional keyword between them stay unassigned.
	p := Extract("compare JFK and ATL delays")
	if p.HasRoute() {
		t.Fatalf("expected unassigned candidates, got route %s-%s", *p.Origin, *p.Destination)
	}
	if !reflect.DeepEqual(p.Candidates, []string{"JFK", "ATL"}) {
		t.Errorf("candidates = %v, want [JFK ATL]", p.Candidates)
	}
}

func TestExtractIdenticalCodesUnassigned(t *testing.T) {
	p := Extract("from JFK to JFK")
	if p.HasRoute() {
		t.Fatal("identical origin and destination must not be assigned")
	}
}

func TestExtractStoplist(t *testing.T) {
	p := Extract("THE flight from LAX to DEN")
	if !p.HasRoute() {
		t.Fatalf("route not assigned, candidates %v", p.Candidates)
	}
	if *p.Origin != "LAX" || *p.Destination != "DEN" {
		t.Errorf("route %s-%s, want LAX-DEN", *p.Origin, *p.Destination)
	}
}

func TestExtractParenthesizedCodePreferred(t *testing.T) {
	p := Extract("from O.R Tambo Int. Airport (JNB) to LHR")
	if !p.HasRoute() {
		t.Fatalf("route not assigned, candidates %v", p.Candidates)
	}
	if *p.Origin != "JNB" || *p.Destination != "LHR" {
		t.Errorf("route %s-%s, want JNB-LHR", *p.Origin, *p.Destination)
	}
}

func TestExtractSingleCodeWithDirection(t *testing.T) {
	p := Extract("what about from SFO?")
	if p.Origin == nil || *p.Origin != "SFO" {
		t.Errorf("origin = %v, want SFO", p.Origin)
	}
	if p.Destination != nil {
		t.Errorf("unexpected destination %q", *p.Destination)
	}

	p = Extract("how about to DEN")
	if p.Destination == nil || *p.Destination != "DEN" {
		t.Errorf("destination = %v, want DEN", p.Destination)
	}
}

func TestExtractYear(t *testing.T) {
	p := Extract("best airlines from JFK to ATL in 2023")
	if p.Year == nil || *p.Year != 2023 {
		t.Errorf("year = %v, want 2023", p.Year)
	}

	// Digits inside a flight number are not a year.
	p = Extract("status of AA2023")
	if p.Year != nil {
		t.Errorf("unexpected year %d from flight number", *p.Year)
	}

	// Out-of-range four-digit tokens are ignored.
	p = Extract("flight 1999 delays")
	if p.Year != nil {
		t.Errorf("unexpected year %d outside calendar range", *p.Year)
	}
}

func TestExtractAnalysisType(t *testing.T) {
	tests := []struct {
		utterance string
		want      AnalysisType
	}{
		{"most on-time airlines from SFO to JFK", AnalysisOnTimeRanking},
		{"best airline between these two", AnalysisOnTimeRanking},
		{"which day has the fewest delays", AnalysisDayOfWeekDelay},
		{"delays by day of week from JFK to ATL", AnalysisDayOfWeekDelay},
	}
	for _, tt := range tests {
		p := Extract(tt.utterance)
		if p.Analysis == nil {
			t.Errorf("Extract(%q): no analysis type", tt.utterance)
			continue
		}
		if *p.Analysis != tt.want {
			t.Errorf("Extract(%q): analysis %q, want %q", tt.utterance, *p.Analysis, tt.want)
		}
	}

	if p := Extract("status of AA123"); p.Analysis != nil {
		t.Errorf("unexpected analysis type %q", *p.Analysis)
	}
}

func TestExtractOnTimeWithFlightNumber(t *testing.T) {
	// "on time" next to a flight number asks about that flight, not for
	// a ranking.
	p := Extract("Is UA456 on time?")
	if p.FlightNumber == nil || *p.FlightNumber != "UA456" {
		t.Fatalf("flight number = %v, want UA456", p.FlightNumber)
	}
	if p.Analysis != nil {
		t.Errorf("unexpected analysis type %q", *p.Analysis)
	}

	// With a full route present, the same wording is a ranking request.
	p = Extract("most on-time airlines from SFO to JFK")
	if p.Analysis == nil || *p.Analysis != AnalysisOnTimeRanking {
		t.Errorf("analysis = %v, want on-time ranking", p.Analysis)
	}
}

func TestExtractFollowUp(t *testing.T) {
	if p := Extract("what about JFK to ORD"); !p.FollowUp {
		t.Error("follow-up phrase not detected")
	}
	if p := Extract("status of AA123"); p.FollowUp {
		t.Error("false follow-up detection")
	}
}

func TestExtractEmpty(t *testing.T) {
	if p := Extract("hello there"); !p.Empty() {
		t.Errorf("expected empty params, got %+v", p)
	}
}
