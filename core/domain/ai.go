// ABOUTME: AI outcome domain model describes the classified result of an enrichment attempt
// ABOUTME: Defines the status taxonomy, the normalized result and the intent enum

package domain

// AIStatus classifies an enrichment attempt
type AIStatus string

const (
	AIStatusDisabled AIStatus = "disabled"
	AIStatusSuccess  AIStatus = "success"
	AIStatusTimeout  AIStatus = "timeout"
	AIStatusQuota    AIStatus = "quota"
	AIStatusError    AIStatus = "error"
)

// Intents is the fixed intent enum. The first entry is the default.
var Intents = []string{"insight", "opportunity", "networking", "hiring"}

// DefaultIntent is used when the service returns an unknown intent
func DefaultIntent() string {
	return Intents[0]
}

// AIResult is the normalized enrichment payload
type AIResult struct {
	Summary    string   `json:"summary"`
	Tags       []string `json:"tags"`
	Intent     string   `json:"intent"`
	NextAction string   `json:"next_action"`
	TokensIn   int      `json:"tokens_in,omitempty"`
	TokensOut  int      `json:"tokens_out,omitempty"`
}

// AIOutcome is the short-lived result of an enrichment attempt.
// Only a successful outcome is folded into the saved record.
type AIOutcome struct {
	Status  AIStatus       `json:"status"`
	Result  *AIResult      `json:"result,omitempty"`
	Quota   *QuotaSnapshot `json:"quota,omitempty"`
	Message string         `json:"message,omitempty"`
}

// Succeeded reports whether the outcome carries a usable result
func (o AIOutcome) Succeeded() bool {
	return o.Status == AIStatusSuccess && o.Result != nil
}

// DisabledOutcome is returned when enrichment was not requested
func DisabledOutcome() AIOutcome {
	return AIOutcome{Status: AIStatusDisabled}
}
