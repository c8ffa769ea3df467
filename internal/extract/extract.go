// Package extract pulls structured flight-query parameters out of raw
// natural-language utterances. Extraction is best-effort and never fails:
// a field the utterance does not mention is simply left unset.
package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// AnalysisType identifies one of the fixed analytics query shapes.
type AnalysisType string

const (
	AnalysisOnTimeRanking  AnalysisType = "on_time_ranking"
	AnalysisDayOfWeekDelay AnalysisType = "day_of_week_delay"
)

// Params holds the parameters extracted from a single utterance.
// Fields are pointer-optional: nil means the utterance said nothing about
// that field, which is distinct from an explicit empty value.
type Params struct {
	Origin       *string       `json:"origin,omitempty"`
	Destination  *string       `json:"destination,omitempty"`
	FlightNumber *string       `json:"flight_number,omitempty"`
	Year         *int          `json:"year,omitempty"`
	Analysis     *AnalysisType `json:"analysis,omitempty"`

	// Candidates holds airport codes that survived filtering but could not
	// be assigned to origin/destination. The router treats a turn with
	// unassigned candidates as needing disambiguation.
	Candidates []string `json:"candidates,omitempty"`

	// FollowUp is set when the utterance opens with a follow-up phrase
	// ("what about ...") and should lean on conversational memory.
	FollowUp bool `json:"follow_up,omitempty"`
}

// HasRoute reports whether both origin and destination are assigned.
func (p Params) HasRoute() bool {
	return p.Origin != nil && p.Destination != nil
}

// Empty reports whether nothing at all was extracted.
func (p Params) Empty() bool {
	return p.Origin == nil && p.Destination == nil && p.FlightNumber == nil &&
		p.Year == nil && p.Analysis == nil && len(p.Candidates) == 0
}

var (
	flightNumberRe = regexp.MustCompile(`\b[A-Z]{2,3}\d{2,4}\b`)
	airportCodeRe  = regexp.MustCompile(`\b[A-Z]{3}\b`)
	parenCodeRe    = regexp.MustCompile(`\(([A-Z]{3})\)`)
	yearRe         = regexp.MustCompile(`\b(20\d{2})\b`)
)

// Ordered keyword sets for analysis-type detection. The first set with a
// match wins; longer phrases sit before their prefixes so that
// "most on-time" is not shadowed by "on-time".
var analysisKeywords = []struct {
	kind     AnalysisType
	keywords []string
}{
	{AnalysisOnTimeRanking, []string{
		"most on-time", "most on time", "on-time", "on time",
		"best airline", "best airlines", "ranking", "rank airlines",
	}},
	{AnalysisDayOfWeekDelay, []string{
		"day of week", "which day", "what day", "fewer delays on",
		"fewest delays", "least delays", "best day", "weekday",
		"monday", "tuesday", "wednesday", "thursday", "friday",
		"saturday", "sunday",
	}},
}

// onTimeAsStatus marks keywords that read as a status question rather than
// a ranking request when the utterance names a flight and no route
// ("is UA456 on time?").
var onTimeAsStatus = map[string]bool{
	"most on-time": true, "most on time": true, "on-time": true, "on time": true,
}

// followUpPhrases mark a turn as a continuation of the previous one.
var followUpPhrases = []string{"what about", "how about", "and for", "what if"}

// Extract parses an utterance into Params. It applies each matching rule in
// a fixed order: flight number, airport codes, year, analysis type,
// follow-up phrases.
func Extract(utterance string) Params {
	var p Params

	upper := strings.ToUpper(utterance)
	lower := strings.ToLower(utterance)

	if m := flightNumberRe.FindString(upper); m != "" {
		p.FlightNumber = &m
	}

	codes := airportCandidates(upper)
	assignAirports(&p, upper, codes)

	if m := yearRe.FindString(upper); m != "" {
		if y, err := strconv.Atoi(m); err == nil && y >= 2000 && y <= 2099 {
			p.Year = &y
		}
	}

	for _, set := range analysisKeywords {
		for _, kw := range set.keywords {
			if !strings.Contains(lower, kw) {
				continue
			}
			if onTimeAsStatus[kw] && p.FlightNumber != nil && !p.HasRoute() {
				continue
			}
			kind := set.kind
			p.Analysis = &kind
			break
		}
		if p.Analysis != nil {
			break
		}
	}

	for _, phrase := range followUpPhrases {
		if strings.Contains(lower, phrase) {
			p.FollowUp = true
			break
		}
	}

	return p
}

// candidate is an airport code with its position in the utterance.
type candidate struct {
	code string
	pos  int
}

// airportCandidates returns the surviving airport-code candidates in
// reading order. Parenthesized codes after full airport names are
// preferred over bare three-letter tokens covering the same span, and the
// stoplist removes common English words that look like codes.
func airportCandidates(upper string) []candidate {
	var out []candidate
	seen := make(map[string]bool)

	parens := parenCodeRe.FindAllStringSubmatchIndex(upper, -1)
	for _, m := range parens {
		code := upper[m[2]:m[3]]
		if !seen[code] {
			out = append(out, candidate{code: code, pos: m[0]})
			seen[code] = true
		}
	}

	inParens := func(start, end int) bool {
		for _, m := range parens {
			if start >= m[0] && end <= m[1] {
				return true
			}
		}
		return false
	}

	for _, m := range airportCodeRe.FindAllStringIndex(upper, -1) {
		code := upper[m[0]:m[1]]
		if inParens(m[0], m[1]) || stoplist[code] || seen[code] {
			continue
		}
		out = append(out, candidate{code: code, pos: m[0]})
		seen[code] = true
	}

	// Keep reading order regardless of which rule found the code.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].pos < out[j-1].pos; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

var directionalBetweenRe = regexp.MustCompile(`\bTO\b|\bFROM\b|→`)

// assignAirports decides origin/destination from the surviving candidates.
// Exactly two distinct codes separated by a directional keyword are
// assigned in reading order. A single code is assigned only when a
// directional keyword immediately precedes it. Anything else is kept as
// unassigned candidates for the router to disambiguate.
func assignAirports(p *Params, upper string, codes []candidate) {
	switch len(codes) {
	case 0:
		return
	case 1:
		c := codes[0]
		switch precedingDirection(upper, c.pos) {
		case "FROM":
			p.Origin = &c.code
		case "TO":
			p.Destination = &c.code
		default:
			p.Candidates = []string{c.code}
		}
	case 2:
		a, b := codes[0], codes[1]
		lo, hi := a.pos+len(a.code), b.pos
		if lo > hi {
			lo = hi
		}
		between := upper[lo:hi]
		if a.code != b.code && directionalBetweenRe.MatchString(between) {
			p.Origin = &a.code
			p.Destination = &b.code
			return
		}
		// Also accept "from A ... B" with the keyword ahead of the pair.
		if a.code != b.code && precedingDirection(upper, a.pos) == "FROM" {
			p.Origin = &a.code
			p.Destination = &b.code
			return
		}
		p.Candidates = []string{a.code, b.code}
	default:
		p.Candidates = make([]string, 0, len(codes))
		for _, c := range codes {
			p.Candidates = append(p.Candidates, c.code)
		}
	}
}

// precedingDirection returns "FROM" or "TO" when one of those words is the
// last token before pos, or "" otherwise.
func precedingDirection(upper string, pos int) string {
	fields := strings.Fields(strings.TrimRight(upper[:pos], " ("))
	if len(fields) == 0 {
		return ""
	}
	switch fields[len(fields)-1] {
	case "FROM":
		return "FROM"
	case "TO", "→":
		return "TO"
	}
	return ""
}
