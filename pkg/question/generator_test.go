package question

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/pglaunch/profileengine/pkg/bucket"
	"github.com/pglaunch/profileengine/pkg/convstate"
	"github.com/pglaunch/profileengine/pkg/strategy"
)

func newTestStore() *convstate.Store {
	return convstate.New(bucket.Default(), "sess-1", "person-1", "campaign-1", time.Unix(0, 0))
}

func TestGenerateSingleBucketQuestionUsesStyleTemplate(t *testing.T) {
	g := New(bucket.Default(), rand.New(rand.NewSource(1)))
	store := newTestStore()
	ctx := strategy.Context{PriorityBuckets: []bucket.ID{bucket.Email}, Style: strategy.StyleCasual}

	q := g.Generate(ctx, store)
	if q.Text != "What's the best email to reach you at?" {
		t.Errorf("Text = %q", q.Text)
	}
	if q.Kind != KindSingle {
		t.Errorf("Kind = %q, want single", q.Kind)
	}
}

func TestGenerateSingleBucketFallsBackToDefaultForUnknownStyle(t *testing.T) {
	g := New(bucket.Default(), rand.New(rand.NewSource(1)))
	store := newTestStore()
	ctx := strategy.Context{PriorityBuckets: []bucket.ID{bucket.Email}, Style: strategy.Style("nonexistent")}

	q := g.Generate(ctx, store)
	if q.Text != "What's your email address?" {
		t.Errorf("Text = %q, want the default template", q.Text)
	}
}

func TestGenerateSingleBucketIncludesExamples(t *testing.T) {
	g := New(bucket.Default(), rand.New(rand.NewSource(1)))
	store := newTestStore()
	ctx := strategy.Context{PriorityBuckets: []bucket.ID{bucket.FullName}, Style: strategy.StyleCasual, OfferExamples: true}

	q := g.Generate(ctx, store)
	if !strings.Contains(q.Text, "for example") {
		t.Errorf("Text = %q, want it to include examples", q.Text)
	}
}

func TestGenerateMultiBucketUsesFixedTemplate(t *testing.T) {
	g := New(bucket.Default(), rand.New(rand.NewSource(1)))
	store := newTestStore()
	ctx := strategy.Context{
		PriorityBuckets: []bucket.ID{bucket.CurrentRole, bucket.Company},
		Style:           strategy.StyleCasual,
		GroupQuestions:  true,
	}

	q := g.Generate(ctx, store)
	if q.Text != "What do you do and where do you work?" {
		t.Errorf("Text = %q", q.Text)
	}
	if q.Kind != KindMulti {
		t.Errorf("Kind = %q, want multi", q.Kind)
	}
}

func TestGenerateMultiBucketFallsBackToCustomTemplate(t *testing.T) {
	g := New(bucket.Default(), rand.New(rand.NewSource(1)))
	store := newTestStore()
	ctx := strategy.Context{
		PriorityBuckets: []bucket.ID{bucket.Website, bucket.SchedulingPreference},
		Style:           strategy.StyleCasual,
		GroupQuestions:  true,
	}
	q := g.Generate(ctx, store)
	if !strings.Contains(q.Text, "website") || !strings.Contains(q.Text, "scheduling preferences") {
		t.Errorf("Text = %q, expected both bucket names", q.Text)
	}
}

func TestGenerateFollowUpForAchievementsAfterYearsExperience(t *testing.T) {
	g := New(bucket.Default(), rand.New(rand.NewSource(1)))
	store := newTestStore()
	store.UpdateBucket(bucket.YearsExperience, convstate.NumberValue(15), 0.9, 0, false, time.Now())

	ctx := strategy.Context{PriorityBuckets: []bucket.ID{bucket.Achievements}, Style: strategy.StyleCasual}
	q := g.Generate(ctx, store)
	if q.Kind != KindFollowUp {
		t.Fatalf("Kind = %q, want follow_up", q.Kind)
	}
	if !strings.Contains(q.Text, "15") {
		t.Errorf("Text = %q, expected it to mention 15 years", q.Text)
	}
}

func TestGenerateNoFollowUpBelowYearsThreshold(t *testing.T) {
	g := New(bucket.Default(), rand.New(rand.NewSource(1)))
	store := newTestStore()
	store.UpdateBucket(bucket.YearsExperience, convstate.NumberValue(2), 0.9, 0, false, time.Now())

	ctx := strategy.Context{PriorityBuckets: []bucket.ID{bucket.Achievements}, Style: strategy.StyleCasual}
	q := g.Generate(ctx, store)
	if q.Kind != KindSingle {
		t.Errorf("Kind = %q, want single (years below threshold)", q.Kind)
	}
}

func TestGenerateCompletionQuestionWhenNoPriorityBuckets(t *testing.T) {
	g := New(bucket.Default(), rand.New(rand.NewSource(1)))
	store := newTestStore()
	ctx := strategy.Context{Style: strategy.StyleFormal}
	q := g.Generate(ctx, store)
	if q.Kind != KindCompletion {
		t.Errorf("Kind = %q, want completion", q.Kind)
	}
	if q.Text != "Is there anything else you would like to add to your profile?" {
		t.Errorf("Text = %q", q.Text)
	}
}

func TestAddTransitionOrdersAcknowledgeProgressContinueThenQuestion(t *testing.T) {
	g := New(bucket.Default(), rand.New(rand.NewSource(42)))
	q := Generated{Text: "What's your email address?"}
	out := g.AddTransition(q, true, true)
	if !strings.HasSuffix(out, q.Text) {
		t.Errorf("output = %q, expected it to end with the question text", out)
	}
	if strings.Count(out, " ") < 3 {
		t.Errorf("output = %q, expected acknowledge+progress+continue+question", out)
	}
}

func TestAddTransitionNoPartsWhenNeitherFlagSet(t *testing.T) {
	g := New(bucket.Default(), rand.New(rand.NewSource(1)))
	q := Generated{Text: "What's your email address?"}
	out := g.AddTransition(q, false, false)
	if out != q.Text {
		t.Errorf("output = %q, want bare question text", out)
	}
}

func TestPersonalizeWithNameRequiresRapport(t *testing.T) {
	g := New(bucket.Default(), rand.New(rand.NewSource(1)))
	store := newTestStore()
	store.UpdateBucket(bucket.FullName, convstate.TextValue("Jane Doe"), 0.9, 0, false, time.Now())
	out := g.PersonalizeWithName("What's next?", store)
	if out != "What's next?" {
		t.Errorf("expected no personalization before rapport threshold, got %q", out)
	}
}
