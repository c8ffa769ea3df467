// Package intent decides which backend a travel question should be routed
// to. A deterministic rule pass over the extracted parameters is always
// authoritative; an optional LLM fallback disambiguates only the utterances
// the rules cannot place.
package intent

// Intent is the category of backend the router must dispatch to.
type Intent string

const (
	FlightStatus  Intent = "flight_status"
	FareAnalytics Intent = "fare_analytics"
	Unknown       Intent = "unknown"
)

// Family groups intents whose parameters may carry across turns. Status
// lookups and fare analytics never share parameters, so a family switch
// blocks inheritance from conversational memory.
type Family string

const (
	FamilyStatus    Family = "status"
	FamilyAnalytics Family = "analytics"
	FamilyNone      Family = "none"
)

// FamilyOf returns the parameter family an intent belongs to.
func FamilyOf(in Intent) Family {
	switch in {
	case FlightStatus:
		return FamilyStatus
	case FareAnalytics:
		return FamilyAnalytics
	default:
		return FamilyNone
	}
}

// Prediction is a fallback classifier's answer for one utterance.
type Prediction struct {
	Label      Intent  `json:"label"`
	Confidence float64 `json:"confidence"`
}
