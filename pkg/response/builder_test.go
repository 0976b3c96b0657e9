package response

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/pglaunch/profileengine/pkg/bucket"
	"github.com/pglaunch/profileengine/pkg/bucketmgr"
	"github.com/pglaunch/profileengine/pkg/classifier"
	"github.com/pglaunch/profileengine/pkg/convstate"
	"github.com/pglaunch/profileengine/pkg/question"
	"github.com/pglaunch/profileengine/pkg/strategy"
)

func newTestStore() *convstate.Store {
	return convstate.New(bucket.Default(), "sess-1", "person-1", "campaign-1", time.Unix(0, 0))
}

func newTestBuilder(seed int64) *Builder {
	qgen := question.New(bucket.Default(), rand.New(rand.NewSource(seed)))
	return New(qgen, rand.New(rand.NewSource(seed)), zerolog.Nop())
}

func TestHandleReviewConfirmsOnCompletionIntent(t *testing.T) {
	b := newTestBuilder(1)
	store := newTestStore()
	store.State.AwaitingConfirmation = convstate.ConfirmationProfileReview

	reply, handled := b.HandleReview(store, classifier.Result{UserIntent: classifier.IntentCompletion})
	if !handled {
		t.Fatal("expected handled = true")
	}
	if !store.State.CompletionConfirmed {
		t.Error("expected CompletionConfirmed = true")
	}
	if store.State.AwaitingConfirmation != convstate.ConfirmationNone {
		t.Error("expected AwaitingConfirmation cleared")
	}
	if !strings.Contains(reply, "profile is now complete") {
		t.Errorf("reply = %q", reply)
	}
}

func TestHandleReviewReopensOnCorrection(t *testing.T) {
	b := newTestBuilder(1)
	store := newTestStore()
	store.State.AwaitingConfirmation = convstate.ConfirmationProfileReview
	store.State.IsReviewing = true

	reply, handled := b.HandleReview(store, classifier.Result{UserIntent: classifier.IntentCorrection})
	if handled {
		t.Fatalf("expected handled = false so normal flow continues, got reply %q", reply)
	}
	if store.State.IsReviewing {
		t.Error("expected IsReviewing cleared")
	}
	if store.State.AwaitingConfirmation != convstate.ConfirmationNone {
		t.Error("expected AwaitingConfirmation cleared")
	}
}

func TestHandleReviewRemindsOnUnrelatedReply(t *testing.T) {
	b := newTestBuilder(1)
	store := newTestStore()
	store.State.AwaitingConfirmation = convstate.ConfirmationProfileReview

	reply, handled := b.HandleReview(store, classifier.Result{UserIntent: classifier.IntentQuestion})
	if !handled {
		t.Fatal("expected handled = true")
	}
	if !strings.Contains(reply, "review your profile above") {
		t.Errorf("reply = %q", reply)
	}
}

func TestHandleReviewNoopWhenNotAwaitingConfirmation(t *testing.T) {
	b := newTestBuilder(1)
	store := newTestStore()
	_, handled := b.HandleReview(store, classifier.Result{UserIntent: classifier.IntentCompletion})
	if handled {
		t.Error("expected handled = false outside review state")
	}
}

func TestHandleCompletionRequestListsMissingRequired(t *testing.T) {
	b := newTestBuilder(1)
	store := newTestStore()
	store.UpdateBucket(bucket.FullName, convstate.TextValue("Jane Doe"), 0.9, 0, false, time.Now())

	reply, handled := b.HandleCompletionRequest(store, classifier.Result{UserIntent: classifier.IntentCompletion})
	if !handled {
		t.Fatal("expected handled = true")
	}
	if !strings.Contains(reply, "Still need:") {
		t.Errorf("reply = %q", reply)
	}
}

func TestHandleCompletionRequestOpensReviewWhenAllRequiredFilled(t *testing.T) {
	b := newTestBuilder(1)
	store := newTestStore()
	fillAllRequired(store)

	reply, handled := b.HandleCompletionRequest(store, classifier.Result{UserIntent: classifier.IntentCompletion})
	if !handled {
		t.Fatal("expected handled = true")
	}
	if store.State.AwaitingConfirmation != convstate.ConfirmationProfileReview {
		t.Error("expected AwaitingConfirmation = profile_review")
	}
	if !strings.Contains(reply, "complete profile") {
		t.Errorf("reply = %q", reply)
	}
}

func TestHandleCompletionRequestFallsThroughWhenNothingCollected(t *testing.T) {
	b := newTestBuilder(1)
	store := newTestStore()
	_, handled := b.HandleCompletionRequest(store, classifier.Result{UserIntent: classifier.IntentCompletion})
	if handled {
		t.Error("expected handled = false with nothing collected yet")
	}
}

func TestHandleNegativeIndicatorSkipMarksFirstOptionalPriorityBucket(t *testing.T) {
	b := newTestBuilder(1)
	store := newTestStore()
	ctx := strategy.Context{PriorityBuckets: []bucket.ID{bucket.LinkedInURL}}

	b.HandleNegativeIndicatorSkip(store, classifier.Result{UserIntent: classifier.IntentProvideInfo}, "I don't have LinkedIn", ctx)

	if !store.State.SkippedOptionalBuckets[bucket.LinkedInURL] {
		t.Error("expected linkedin_url marked skipped")
	}
}

func TestHandleNegativeIndicatorSkipIgnoresWhenBucketsWereExtracted(t *testing.T) {
	b := newTestBuilder(1)
	store := newTestStore()
	ctx := strategy.Context{PriorityBuckets: []bucket.ID{bucket.LinkedInURL}}

	result := classifier.Result{
		UserIntent:    classifier.IntentProvideInfo,
		BucketUpdates: map[bucket.ID]classifier.RawUpdate{bucket.Email: {Value: "jane@acme.io", Confidence: 0.9}},
	}
	b.HandleNegativeIndicatorSkip(store, result, "I don't have LinkedIn", ctx)

	if store.State.SkippedOptionalBuckets[bucket.LinkedInURL] {
		t.Error("expected no skip recorded when bucket updates were extracted")
	}
}

func TestHandleReviewIntentShowsNothingCollectedMessage(t *testing.T) {
	b := newTestBuilder(1)
	store := newTestStore()
	reply, handled := b.HandleReviewIntent(store, classifier.Result{UserIntent: classifier.IntentReview})
	if !handled {
		t.Fatal("expected handled = true")
	}
	if !strings.Contains(reply, "haven't collected any information") {
		t.Errorf("reply = %q", reply)
	}
}

func TestBuildWarmWelcome(t *testing.T) {
	b := newTestBuilder(1)
	store := newTestStore()
	ctx := strategy.Context{Strategy: strategy.WarmWelcome, Style: strategy.StyleCasual}
	reply := b.Build(store, ctx, Turn{})
	if !strings.Contains(reply, "name") {
		t.Errorf("reply = %q", reply)
	}
}

func TestBuildProgressResponseAcknowledgesSingleUpdate(t *testing.T) {
	b := newTestBuilder(1)
	store := newTestStore()
	store.UpdateBucket(bucket.FullName, convstate.TextValue("Jane Doe"), 0.9, 0, false, time.Now())

	ctx := strategy.Context{
		Strategy:        strategy.AcknowledgeProgress,
		PriorityBuckets: []bucket.ID{bucket.Email},
		Style:           strategy.StyleCasual,
	}
	turn := Turn{
		HadUpdate: true,
		Update:    bucketmgr.UpdateResult{UpdatedBuckets: []bucket.ID{bucket.FullName}},
	}
	reply := b.Build(store, ctx, turn)
	if reply == "" {
		t.Fatal("expected non-empty reply")
	}
}

func TestBuildProgressResponseUsesLinkedInAcknowledgment(t *testing.T) {
	b := newTestBuilder(1)
	store := newTestStore()
	store.UpdateBucket(bucket.LinkedInURL, convstate.URLValue("https://linkedin.com/in/jane"), 0.9, 0, false, time.Now())
	store.State.PrefilledFromLinkedIn = []bucket.ID{bucket.CurrentRole}

	ctx := strategy.Context{Strategy: strategy.AcknowledgeProgress, PriorityBuckets: []bucket.ID{bucket.Email}, Style: strategy.StyleCasual}
	turn := Turn{
		HadUpdate: true,
		Update:    bucketmgr.UpdateResult{UpdatedBuckets: []bucket.ID{bucket.LinkedInURL}},
	}
	reply := b.Build(store, ctx, turn)
	if !strings.Contains(reply, "analyzed your LinkedIn profile") {
		t.Errorf("reply = %q", reply)
	}
}

func TestBuildClarifyAmbiguousUsesNeedsClarification(t *testing.T) {
	b := newTestBuilder(1)
	store := newTestStore()
	ctx := strategy.Context{Strategy: strategy.ClarifyAmbiguous, Style: strategy.StyleCasual}
	turn := Turn{Classification: classifier.Result{NeedsClarification: "did you mean your personal email or work email?"}}
	reply := b.Build(store, ctx, turn)
	if !strings.Contains(reply, "did you mean your personal email or work email?") {
		t.Errorf("reply = %q", reply)
	}
}

func TestBuildCompletionBlockedListsMissingBuckets(t *testing.T) {
	b := newTestBuilder(1)
	store := newTestStore()
	ctx := strategy.Context{Strategy: strategy.CompletionBlocked, Style: strategy.StyleCasual}
	reply := b.Build(store, ctx, Turn{})
	if !strings.Contains(reply, "Full Name") {
		t.Errorf("reply = %q, expected it to name a missing required bucket", reply)
	}
}

func TestGenerateNextQuestionHonorsLinkedInHintInMessage(t *testing.T) {
	b := newTestBuilder(1)
	store := newTestStore()
	got := b.generateNextQuestion(store, strategy.Context{}, "actually let me give you my LinkedIn")
	if !strings.Contains(got, "LinkedIn profile URL") {
		t.Errorf("got = %q", got)
	}
}

func TestEnsureQualityAddsTerminalPunctuation(t *testing.T) {
	got := ensureQuality("What's your email")
	if got != "What's your email." {
		t.Errorf("got = %q", got)
	}
}

func TestEnsureQualityCollapsesWhitespace(t *testing.T) {
	got := ensureQuality("What's   your    email?")
	if got != "What's your email?" {
		t.Errorf("got = %q", got)
	}
}

func TestEnsureQualityDropsRepeatedWords(t *testing.T) {
	got := ensureQuality("Great great, thanks!")
	if got != "Great, thanks!" {
		t.Errorf("got = %q", got)
	}
}

func TestEnsureQualityExemptsProfileSummaryFromLengthCap(t *testing.T) {
	long := "Here's your complete profile:\n\n" + strings.Repeat("x", 400) + "\n\nLook good?"
	got := ensureQuality(long)
	if len(got) < 400 {
		t.Errorf("expected summary to survive the length cap, got %d chars", len(got))
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
