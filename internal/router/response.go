package router

import (
	"github.com/skyrouteai/skyroute/internal/extract"
	"github.com/skyrouteai/skyroute/internal/flightstatus"
	"github.com/skyrouteai/skyroute/internal/intent"
	"github.com/skyrouteai/skyroute/internal/warehouse"
)

// ErrorCode categorizes a failed turn. Every failure is turn-scoped; the
// session always survives to the next utterance.
type ErrorCode string

const (
	// ErrExtractionAmbiguous means multiple airport candidates survived
	// filtering but could not be assigned to origin/destination.
	ErrExtractionAmbiguous ErrorCode = "extraction_ambiguous"
	// ErrValidationFailed means a required parameter was still missing
	// after merging with conversation memory.
	ErrValidationFailed ErrorCode = "validation_failed"
	// ErrAdapterNotFound means the backend found no match for the query
	// (unknown flight number).
	ErrAdapterNotFound ErrorCode = "adapter_not_found"
	// ErrAdapterTransport means the backend call itself failed or timed out.
	ErrAdapterTransport ErrorCode = "adapter_transport"
	// ErrAdapterEmpty means the backend answered but had no qualifying data.
	ErrAdapterEmpty ErrorCode = "adapter_empty"
	// ErrClassifierUnavailable means intent stayed unknown and the fallback
	// classifier was absent or failed.
	ErrClassifierUnavailable ErrorCode = "classifier_unavailable"
)

// Error is the structured, user-presentable failure for one turn.
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

// Response is the structured result of one routed turn. Exactly one of the
// payload fields is populated on success, matching the resolved intent;
// Err is set instead when the turn failed. Presentation is left entirely
// to the caller.
type Response struct {
	Intent intent.Intent  `json:"intent"`
	Params extract.Params `json:"params"`

	Status   *flightstatus.Record      `json:"status,omitempty"`
	Airlines []warehouse.AirlineOnTime `json:"airlines,omitempty"`
	Days     []warehouse.DayDelay      `json:"days,omitempty"`

	Err *Error `json:"error,omitempty"`
}

// OK reports whether the turn produced a payload.
func (r *Response) OK() bool {
	return r.Err == nil
}

func fail(in intent.Intent, p extract.Params, code ErrorCode, message string) *Response {
	return &Response{
		Intent: in,
		Params: p,
		Err:    &Error{Code: code, Message: message},
	}
}
