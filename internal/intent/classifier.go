package intent

import (
	"context"
	"errors"
	"time"

	"github.com/skyrouteai/skyroute/internal/extract"
)

// ErrFallbackUnavailable reports that the fallback classifier was needed
// but absent or failed. It is never fatal: the caller keeps Unknown.
var ErrFallbackUnavailable = errors.New("fallback classifier unavailable")

// Fallback disambiguates utterances the rule pass cannot place. A call may
// block on the network; implementations must honor the context deadline.
type Fallback interface {
	ClassifyIntent(ctx context.Context, utterance string) (Prediction, error)
}

// DefaultFallbackTimeout bounds a single fallback classification call.
const DefaultFallbackTimeout = 5 * time.Second

// Classifier combines the deterministic rule pass with an optional
// fallback collaborator.
type Classifier struct {
	fallback Fallback
	timeout  time.Duration
}

// NewClassifier creates a Classifier. fallback may be nil, in which case
// inconclusive utterances stay Unknown. A non-positive timeout falls back
// to DefaultFallbackTimeout.
func NewClassifier(fallback Fallback, timeout time.Duration) *Classifier {
	if timeout <= 0 {
		timeout = DefaultFallbackTimeout
	}
	return &Classifier{fallback: fallback, timeout: timeout}
}

// Classify returns the intent for one utterance. The returned error is
// non-nil only when the fallback was consulted and failed; the intent is
// still valid (Unknown) in that case.
func (c *Classifier) Classify(ctx context.Context, utterance string, p extract.Params) (Intent, error) {
	if primary := classifyRules(p); primary != Unknown {
		return primary, nil
	}

	if c.fallback == nil {
		return Unknown, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	pred, err := c.fallback.ClassifyIntent(ctx, utterance)
	if err != nil {
		return Unknown, errors.Join(ErrFallbackUnavailable, err)
	}
	switch pred.Label {
	case FlightStatus, FareAnalytics:
		return pred.Label, nil
	case Unknown:
		return Unknown, nil
	default:
		return Unknown, errors.Join(ErrFallbackUnavailable, errors.New("unrecognized label"))
	}
}

// classifyRules is the authoritative rule pass. A flight number with no
// analytics signal means a status lookup; any analytics signal (analysis
// type, a full route, unassigned airport candidates, or a year) means
// fare analytics.
func classifyRules(p extract.Params) Intent {
	if p.FlightNumber != nil && p.Analysis == nil {
		return FlightStatus
	}
	if p.Analysis != nil || p.HasRoute() || p.Year != nil || len(p.Candidates) > 0 {
		return FareAnalytics
	}
	return Unknown
}
