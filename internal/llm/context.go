package llm

import "context"

type purposeKey struct{}

// Purposes recorded with LLM request events.
const (
	PurposeSentence = "sentence"
	PurposeUnknown  = "unknown"
)

// WithPurpose labels requests made with ctx for event logging.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return PurposeUnknown
}
