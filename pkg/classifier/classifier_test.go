package classifier

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/pglaunch/profileengine/pkg/bucket"
	"github.com/pglaunch/profileengine/pkg/convstate"
)

type stubProvider struct {
	response string
	err      error
}

func (s stubProvider) CreateMessage(ctx context.Context, prompt, modelName, workflowTag string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func newTestStore() *convstate.Store {
	return convstate.New(bucket.Default(), "sess-1", "person-1", "campaign-1", time.Unix(0, 0))
}

func TestClassifyNilProviderFallsBackToEntities(t *testing.T) {
	c := New(nil, zerolog.Nop())
	res := c.Classify(context.Background(), "reach me at jane@acme.io", newTestStore())
	if res.UserIntent != IntentProvideInfo {
		t.Errorf("UserIntent = %q, want provide_info", res.UserIntent)
	}
	upd, ok := res.BucketUpdates[bucket.Email]
	if !ok || upd.Value != "jane@acme.io" {
		t.Errorf("BucketUpdates[email] = %+v, ok=%v", upd, ok)
	}
}

func TestClassifyProviderErrorFallsBack(t *testing.T) {
	c := New(stubProvider{err: context.DeadlineExceeded}, zerolog.Nop())
	store := newTestStore()
	res := c.Classify(context.Background(), "hello there", store)
	if res.UserIntent != IntentAcknowledgment {
		t.Errorf("UserIntent = %q, want acknowledgment", res.UserIntent)
	}
	if !res.Ambiguous {
		t.Errorf("Ambiguous = false, want true on LLM transport failure fallback")
	}
	if store.State.ErrorCount != 1 {
		t.Errorf("ErrorCount = %d, want 1 after LLM transport failure", store.State.ErrorCount)
	}
}

func TestClassifyParseFailureFallsBackAmbiguous(t *testing.T) {
	c := New(stubProvider{response: "not json at all"}, zerolog.Nop())
	res := c.Classify(context.Background(), "hello there", newTestStore())
	if !res.Ambiguous {
		t.Errorf("Ambiguous = false, want true on unparsable LLM response fallback")
	}
}

func TestClassifyParsesWellFormedJSON(t *testing.T) {
	body := `{
		"bucket_updates": {
			"full_name": {"value": "Jane Doe", "confidence": 0.95},
			"expertise_keywords": {"value": ["AI", "ML", "Data"], "confidence": 0.9}
		},
		"user_intent": "provide_info",
		"intent_confidence": 0.9,
		"ambiguous": false,
		"needs_clarification": null,
		"reasoning": "clear statement"
	}`
	c := New(stubProvider{response: body}, zerolog.Nop())
	res := c.Classify(context.Background(), "I'm Jane Doe, I know AI, ML, and Data", newTestStore())

	if res.UserIntent != IntentProvideInfo {
		t.Errorf("UserIntent = %q", res.UserIntent)
	}
	if upd, ok := res.BucketUpdates[bucket.FullName]; !ok || upd.Value != "Jane Doe" {
		t.Errorf("BucketUpdates[full_name] = %+v, ok=%v", upd, ok)
	}
	kw, ok := res.BucketUpdates[bucket.ExpertiseKeywords]
	if !ok {
		t.Fatal("missing expertise_keywords")
	}
	list, ok := kw.Value.([]string)
	if !ok || len(list) != 3 {
		t.Errorf("expertise_keywords value = %+v", kw.Value)
	}
}

func TestClassifyStripsMarkdownCodeFence(t *testing.T) {
	body := "```json\n{\"bucket_updates\": {}, \"user_intent\": \"review\", \"intent_confidence\": 0.6, \"ambiguous\": false, \"needs_clarification\": null, \"reasoning\": \"\"}\n```"
	c := New(stubProvider{response: body}, zerolog.Nop())
	res := c.Classify(context.Background(), "can I see what you have so far?", newTestStore())
	if res.UserIntent != IntentReview {
		t.Errorf("UserIntent = %q, want review", res.UserIntent)
	}
}

func TestClassifyUnparsableResponseFallsBack(t *testing.T) {
	c := New(stubProvider{response: "not json at all"}, zerolog.Nop())
	res := c.Classify(context.Background(), "call me at 555-123-4567", newTestStore())
	if upd, ok := res.BucketUpdates[bucket.Phone]; !ok || upd.Value != "555-123-4567" {
		t.Errorf("BucketUpdates[phone] = %+v, ok=%v", upd, ok)
	}
}

func TestClassifyMergesMissedEntityIntoLLMResult(t *testing.T) {
	body := `{"bucket_updates": {"full_name": {"value": "Jane Doe", "confidence": 0.9}}, "user_intent": "provide_info", "intent_confidence": 0.9, "ambiguous": false, "needs_clarification": null, "reasoning": ""}`
	c := New(stubProvider{response: body}, zerolog.Nop())
	res := c.Classify(context.Background(), "I'm Jane Doe, email jane@acme.io", newTestStore())
	if upd, ok := res.BucketUpdates[bucket.Email]; !ok || upd.Value != "jane@acme.io" {
		t.Errorf("expected entity-merged email, got %+v ok=%v", upd, ok)
	}
}

func TestParseResponseRejectsMalformedJSON(t *testing.T) {
	if _, ok := parseResponse("no braces here"); ok {
		t.Error("expected parse failure for text with no JSON object")
	}
}
