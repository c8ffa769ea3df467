package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/skyrouteai/skyroute/internal/llm"
)

// classifierSystemPrompt instructs the model to return a single JSON object
// with one of the three recognized labels.
const classifierSystemPrompt = `You are a flight query classifier. Classify the user's travel question into exactly one label:

- "flight_status": asks about a specific flight number (e.g. "What's the status of AA123?", "Is UA456 on time?").
- "fare_analytics": asks about airlines, routes, delays, on-time performance, or day-of-week analysis between airports (e.g. "Most on-time airlines from SFO to JFK?", "Which day has fewer delays from EWR to ORD?").
- "unknown": neither of the above.

Follow-up phrases like "what about" usually keep the same label as the previous question.

Reply with JSON only: {"label": "<label>", "confidence": <0.0-1.0>}`

// LLMClassifier is an optional Fallback backed by an LLM provider.
type LLMClassifier struct {
	provider llm.Provider
	model    string
}

// NewLLMClassifier creates an LLM-backed fallback classifier. model may be
// empty to use the provider's default.
func NewLLMClassifier(provider llm.Provider, model string) *LLMClassifier {
	return &LLMClassifier{provider: provider, model: model}
}

// ClassifyIntent asks the model for a label. Any transport error, timeout,
// or malformed/unrecognized answer is returned as an error; the caller
// treats that as inconclusive, never as a turn failure.
func (c *LLMClassifier) ClassifyIntent(ctx context.Context, utterance string) (Prediction, error) {
	resp, err := c.provider.Complete(ctx, llm.CompletionRequest{
		Model: c.model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: classifierSystemPrompt},
			{Role: llm.RoleUser, Content: utterance},
		},
		MaxTokens:   64,
		Temperature: 0,
		JSONMode:    true,
	})
	if err != nil {
		return Prediction{}, fmt.Errorf("llm classification: %w", err)
	}

	var pred Prediction
	if err := json.Unmarshal([]byte(strings.TrimSpace(resp.Content)), &pred); err != nil {
		return Prediction{}, fmt.Errorf("parsing classifier reply %q: %w", resp.Content, err)
	}

	switch pred.Label {
	case FlightStatus, FareAnalytics, Unknown:
		return pred, nil
	default:
		return Prediction{}, fmt.Errorf("unrecognized label %q", pred.Label)
	}
}
