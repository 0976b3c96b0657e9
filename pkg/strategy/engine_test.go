package strategy

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/pglaunch/profileengine/pkg/bucket"
	"github.com/pglaunch/profileengine/pkg/convstate"
)

func newTestStore() *convstate.Store {
	return convstate.New(bucket.Default(), "sess-1", "person-1", "campaign-1", time.Unix(0, 0))
}

func TestAnalyzeWarmWelcomeOnFirstMessage(t *testing.T) {
	e := New(zerolog.Nop())
	store := newTestStore()
	store.AddMessage(convstate.RoleUser, "hi", time.Now())

	ctx := e.Analyze(store, Input{})
	if ctx.Strategy != WarmWelcome {
		t.Errorf("Strategy = %q, want warm_welcome", ctx.Strategy)
	}
}

func TestAnalyzeConversationRescueOnHighFrustration(t *testing.T) {
	e := New(zerolog.Nop())
	store := newTestStore()
	for i := 0; i < 4; i++ {
		store.AddMessage(convstate.RoleUser, "hello", time.Now())
	}
	store.State.FrustrationIndicators = 4

	ctx := e.Analyze(store, Input{})
	if ctx.Strategy != ConversationRescue {
		t.Errorf("Strategy = %q, want conversation_rescue", ctx.Strategy)
	}
}

func TestAnalyzeCompletionBlockedWhenRequiredMissing(t *testing.T) {
	e := New(zerolog.Nop())
	store := newTestStore()
	for i := 0; i < 4; i++ {
		store.AddMessage(convstate.RoleUser, "hello", time.Now())
	}
	ctx := e.Analyze(store, Input{CompletionRequested: true})
	if ctx.Strategy != CompletionBlocked {
		t.Errorf("Strategy = %q, want completion_blocked", ctx.Strategy)
	}
}

func TestAnalyzeCompletionReadyWhenAllRequiredFilled(t *testing.T) {
	e := New(zerolog.Nop())
	store := newTestStore()
	for i := 0; i < 4; i++ {
		store.AddMessage(convstate.RoleUser, "hello", time.Now())
	}
	fillAllRequired(store)

	ctx := e.Analyze(store, Input{CompletionRequested: true})
	if ctx.Strategy != CompletionReady {
		t.Errorf("Strategy = %q, want completion_ready", ctx.Strategy)
	}
}

func TestAnalyzeClarifyAmbiguous(t *testing.T) {
	e := New(zerolog.Nop())
	store := newTestStore()
	for i := 0; i < 4; i++ {
		store.AddMessage(convstate.RoleUser, "hello", time.Now())
	}
	ctx := e.Analyze(store, Input{RequiresVerification: true})
	if ctx.Strategy != ClarifyAmbiguous {
		t.Errorf("Strategy = %q, want clarify_ambiguous", ctx.Strategy)
	}
}

func TestAnalyzeGatherRequiredPrioritizesFullNameFirst(t *testing.T) {
	e := New(zerolog.Nop())
	store := newTestStore()
	for i := 0; i < 4; i++ {
		store.AddMessage(convstate.RoleUser, "hello", time.Now())
	}
	ctx := e.Analyze(store, Input{})
	if ctx.Strategy != GatherRequired {
		t.Fatalf("Strategy = %q, want gather_required", ctx.Strategy)
	}
	if len(ctx.PriorityBuckets) == 0 || ctx.PriorityBuckets[0] != bucket.FullName {
		t.Errorf("PriorityBuckets[0] = %v, want full_name first", ctx.PriorityBuckets)
	}
}

func TestAnalyzeAcknowledgeProgressSuggestsLinkedInAfterEmail(t *testing.T) {
	e := New(zerolog.Nop())
	store := newTestStore()
	for i := 0; i < 4; i++ {
		store.AddMessage(convstate.RoleUser, "hello", time.Now())
	}
	store.State.ConversationMomentum = "flowing"
	store.UpdateBucket(bucket.FullName, convstate.TextValue("Jane Doe"), 0.9, 0, false, time.Now())
	store.UpdateBucket(bucket.Email, convstate.TextValue("jane@acme.io"), 0.9, 0, false, time.Now())

	ctx := e.Analyze(store, Input{})
	if ctx.Strategy != AcknowledgeProgress {
		t.Fatalf("Strategy = %q, want acknowledge_progress", ctx.Strategy)
	}
	if len(ctx.PriorityBuckets) != 1 || ctx.PriorityBuckets[0] != bucket.LinkedInURL {
		t.Errorf("PriorityBuckets = %v, want [linkedin_url]", ctx.PriorityBuckets)
	}
}

func TestDetectStyleVerboseForLongMessages(t *testing.T) {
	store := newTestStore()
	store.AddMessage(convstate.RoleUser, "I have spent the last fifteen years building products across multiple industries and I genuinely love walking through the details of every project I have shipped", time.Now())
	if got := detectStyle(store); got != StyleVerbose {
		t.Errorf("detectStyle = %q, want verbose", got)
	}
}

func TestDetectStyleUncertainForHedgingLanguage(t *testing.T) {
	store := newTestStore()
	store.AddMessage(convstate.RoleUser, "not sure what you need", time.Now())
	store.AddMessage(convstate.RoleUser, "maybe my title?", time.Now())
	if got := detectStyle(store); got != StyleUncertain {
		t.Errorf("detectStyle = %q, want uncertain", got)
	}
}

func fillAllRequired(store *convstate.Store) {
	now := time.Now()
	store.UpdateBucket(bucket.FullName, convstate.TextValue("Jane Doe"), 0.9, 0, false, now)
	store.UpdateBucket(bucket.Email, convstate.TextValue("jane@acme.io"), 0.9, 0, false, now)
	store.UpdateBucket(bucket.CurrentRole, convstate.TextValue("CEO"), 0.9, 0, false, now)
	store.UpdateBucket(bucket.ProfessionalBio, convstate.TextValue("I help startups scale."), 0.9, 0, false, now)
	store.UpdateBucket(bucket.ExpertiseKeywords, convstate.ListValue([]string{"AI", "ML", "Data"}), 0.9, 0, false, now)
	store.UpdateBucket(bucket.SuccessStories, convstate.TextValue("Grew revenue 300%."), 0.9, 0, false, now)
	store.UpdateBucket(bucket.UniquePerspective, convstate.TextValue("I blend data and psychology."), 0.9, 0, false, now)
	store.UpdateBucket(bucket.PodcastTopics, convstate.ListValue([]string{"Leadership", "AI"}), 0.9, 0, false, now)
	store.UpdateBucket(bucket.TargetAudience, convstate.TextValue("Founders"), 0.9, 0, false, now)
	store.UpdateBucket(bucket.KeyMessage, convstate.TextValue("Small steps compound."), 0.9, 0, false, now)
}
