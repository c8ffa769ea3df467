// Package memory holds the conversational context that carries across
// turns: the last resolved intent and its parameters. Memory is in-process
// only, owned by exactly one router, and replaced wholesale after every
// successfully routed turn.
package memory

import (
	"time"

	"github.com/skyrouteai/skyroute/internal/extract"
	"github.com/skyrouteai/skyroute/internal/intent"
)

// State is the single piece of persisted context for a session.
type State struct {
	Intent    intent.Intent  `json:"intent"`
	Params    extract.Params `json:"params"`
	Turn      int            `json:"turn"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Memory stores the most recently resolved turn. The zero value is an
// empty session. Not safe for concurrent use: a session processes one
// turn at a time by design.
type Memory struct {
	state *State
	turns int
}

// New creates an empty session memory.
func New() *Memory {
	return &Memory{}
}

// Current returns the stored state and whether any turn has resolved yet.
func (m *Memory) Current() (State, bool) {
	if m.state == nil {
		return State{}, false
	}
	return *m.state, true
}

// Update replaces the stored state with the given resolved intent and
// parameters. Last write wins; nothing is merged here — merging happens
// once per turn, before dispatch.
func (m *Memory) Update(in intent.Intent, p extract.Params) {
	m.turns++
	m.state = &State{
		Intent:    in,
		Params:    p,
		Turn:      m.turns,
		UpdatedAt: time.Now().UTC(),
	}
}

// Reset clears the session.
func (m *Memory) Reset() {
	m.state = nil
	m.turns = 0
}

// Merge resolves the current turn's extraction against the remembered
// state and returns the intent and parameters to dispatch.
//
// Intent is never inherited silently: a turn that classified Unknown keeps
// Unknown unless it reads as a continuation of the previous turn — an
// explicit follow-up phrase, or extracted fields that all belong to the
// previous intent's parameter set. Field values are inherited only within
// the same intent family, so switching from analytics to a status lookup
// never drags airport codes along.
func Merge(prev *State, cur intent.Intent, p extract.Params) (intent.Intent, extract.Params) {
	resolved := cur
	if resolved == intent.Unknown && prev != nil && isContinuation(*prev, p) {
		resolved = prev.Intent
	}

	if prev == nil || intent.FamilyOf(resolved) == intent.FamilyNone ||
		intent.FamilyOf(resolved) != intent.FamilyOf(prev.Intent) {
		return resolved, p
	}

	merged := p
	if merged.Origin == nil {
		merged.Origin = prev.Params.Origin
	}
	if merged.Destination == nil {
		merged.Destination = prev.Params.Destination
	}
	if merged.Year == nil {
		merged.Year = prev.Params.Year
	}
	if merged.Analysis == nil {
		merged.Analysis = prev.Params.Analysis
	}
	if merged.FlightNumber == nil {
		merged.FlightNumber = prev.Params.FlightNumber
	}
	return resolved, merged
}

// isContinuation reports whether an Unknown-classified turn should reuse
// the previous turn's intent.
func isContinuation(prev State, p extract.Params) bool {
	if p.FollowUp {
		return true
	}
	if p.Empty() {
		return false
	}
	switch intent.FamilyOf(prev.Intent) {
	case intent.FamilyAnalytics:
		// Airports, year, and analysis type all belong to analytics; a
		// flight number does not.
		return p.FlightNumber == nil
	case intent.FamilyStatus:
		// Only a flight number continues a status conversation, and a
		// bare flight number already classifies as status on its own.
		return p.FlightNumber != nil && p.Origin == nil && p.Destination == nil &&
			p.Year == nil && p.Analysis == nil && len(p.Candidates) == 0
	default:
		return false
	}
}
