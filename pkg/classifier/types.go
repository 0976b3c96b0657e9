// Package classifier maps a free-text user utterance to a structured
// (intent, bucket updates, confidence, ambiguity) result. It combines a
// deterministic entity-extraction pass with a single LLM call, and never
// returns an error to its caller: a failed or unparsable LLM response
// degrades to an entity-only fallback per spec.md §7.
package classifier

import (
	"context"

	"github.com/pglaunch/profileengine/pkg/bucket"
	"github.com/pglaunch/profileengine/pkg/entity"
)

// Intent is the classifier's best guess at what the user is doing with
// this message.
type Intent string

const (
	IntentProvideInfo    Intent = "provide_info"
	IntentAcknowledgment Intent = "acknowledgment"
	IntentCorrection     Intent = "correction"
	IntentCompletion     Intent = "completion"
	IntentReview         Intent = "review"
	IntentQuestion       Intent = "question"
	IntentHintLinkedIn   Intent = "hint_linkedin"
)

// RawUpdate is one bucket's extracted value before bucketmgr normalizes,
// dedups, and validates it. Value is a string for single-value buckets or
// a []string for multi-value ones, matching the shape the LLM is
// instructed to emit.
type RawUpdate struct {
	Value      any
	Confidence float64
}

// Result is the structured outcome of classifying one user message.
type Result struct {
	BucketUpdates       map[bucket.ID]RawUpdate
	UserIntent          Intent
	IntentConfidence    float64
	Ambiguous           bool
	NeedsClarification  string
	Reasoning           string
	DetectedEntities    entity.Entities
}

// LLMProvider is the narrow interface the classifier consumes for its
// single external call, matching spec.md §6 item 1: "create_message(prompt,
// model_name, workflow_tag) -> string". Implementations may fail or time
// out; the classifier converts any error into a fallback result rather
// than propagating it.
type LLMProvider interface {
	CreateMessage(ctx context.Context, prompt, modelName, workflowTag string) (string, error)
}
