package classifier

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/pglaunch/profileengine/pkg/bucket"
	"github.com/pglaunch/profileengine/pkg/convstate"
	"github.com/pglaunch/profileengine/pkg/entity"
)

// DefaultModel and DefaultWorkflowTag are passed to the LLMProvider when the
// caller doesn't override them, matching the teacher's convention of a
// workflow tag per call site for cost/latency attribution.
const (
	DefaultModel       = "gpt-4o-mini"
	DefaultWorkflowTag = "profile_engine.classify_message"
)

// ContextWindow is how many recent messages are folded into the prompt.
const ContextWindow = 5

// CallTimeout bounds the single LLM call the classifier makes per message.
const CallTimeout = 20 * time.Second

// Classifier turns a user message into a structured Result, using an LLM
// call backed by a deterministic entity-extraction fallback.
type Classifier struct {
	provider LLMProvider
	log      zerolog.Logger
	model    string
	tag      string
}

// New builds a Classifier around provider. A nil provider is valid: every
// call then falls back directly to entity extraction, which is useful for
// tests and for degraded-mode operation when no API key is configured.
func New(provider LLMProvider, log zerolog.Logger) *Classifier {
	return &Classifier{
		provider: provider,
		log:      log.With().Str("component", "classifier").Logger(),
		model:    DefaultModel,
		tag:      DefaultWorkflowTag,
	}
}

// Classify maps message to a Result. It never returns an error: an LLM
// failure, timeout, or unparsable response degrades to a fallback Result
// built from entity extraction alone, with UserIntent=provide_info if any
// entity was found and acknowledgment otherwise.
func (c *Classifier) Classify(ctx context.Context, message string, store *convstate.Store) Result {
	entities := entity.Extract(message)

	if c.provider == nil {
		// No LLM is configured, so nothing failed: the entity-only result is
		// not flagged ambiguous and its updates are applied normally.
		res := fallbackResult(entities)
		res.Ambiguous = false
		return res
	}

	prompt := buildPrompt(message, store, ContextWindow)

	callCtx, cancel := context.WithTimeout(ctx, CallTimeout)
	defer cancel()

	raw, err := c.provider.CreateMessage(callCtx, prompt, c.model, c.tag)
	if err != nil {
		c.log.Warn().Err(err).Msg("classification LLM call failed, falling back to entity extraction")
		store.State.ErrorCount++
		return fallbackResult(entities)
	}

	result, ok := parseResponse(raw)
	if !ok {
		c.log.Warn().Str("raw", raw).Msg("could not parse classification response, falling back to entity extraction")
		return fallbackResult(entities)
	}

	result.DetectedEntities = entities
	mergeEntities(&result, entities)
	return result
}

// fallbackResult builds a degraded-mode Result directly from regex-extracted
// entities, used whenever the LLM path is unavailable or fails.
func fallbackResult(entities entity.Entities) Result {
	updates := make(map[bucket.ID]RawUpdate)
	if entities.Email != "" {
		updates[bucket.Email] = RawUpdate{Value: entities.Email, Confidence: 0.7}
	}
	if entities.Phone != "" {
		updates[bucket.Phone] = RawUpdate{Value: entities.Phone, Confidence: 0.7}
	}
	if entities.LinkedIn != "" {
		updates[bucket.LinkedInURL] = RawUpdate{Value: entities.LinkedIn, Confidence: 0.7}
	}
	if entities.Website != "" {
		updates[bucket.Website] = RawUpdate{Value: entities.Website, Confidence: 0.7}
	}
	if entities.HasYears {
		updates[bucket.YearsExperience] = RawUpdate{Value: itoaFallback(entities.Years), Confidence: 0.7}
	}

	intent := IntentAcknowledgment
	if entities.Any() {
		intent = IntentProvideInfo
	}

	return Result{
		BucketUpdates:      updates,
		UserIntent:         intent,
		IntentConfidence:   0.5,
		Ambiguous:          true,
		NeedsClarification: "",
		Reasoning:          "fallback: entity extraction only, LLM path unavailable",
		DetectedEntities:   entities,
	}
}

// mergeEntities folds any entity the LLM missed into result, never
// overriding a bucket the LLM already populated. This guards against the
// model silently dropping an email or LinkedIn URL that the regex pass
// plainly found in the raw text.
func mergeEntities(result *Result, entities entity.Entities) {
	add := func(id bucket.ID, value string, confidence float64) {
		if value == "" {
			return
		}
		if _, exists := result.BucketUpdates[id]; exists {
			return
		}
		if result.BucketUpdates == nil {
			result.BucketUpdates = make(map[bucket.ID]RawUpdate)
		}
		result.BucketUpdates[id] = RawUpdate{Value: value, Confidence: confidence}
	}

	add(bucket.Email, entities.Email, 0.9)
	add(bucket.Phone, entities.Phone, 0.85)
	add(bucket.LinkedInURL, entities.LinkedIn, 0.9)
	add(bucket.Website, entities.Website, 0.85)
	if entities.HasYears {
		add(bucket.YearsExperience, itoaFallback(entities.Years), 0.85)
	}
}

func itoaFallback(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
