package orchestrator

import (
	"testing"
	"time"

	"github.com/pglaunch/profileengine/pkg/bucket"
	"github.com/pglaunch/profileengine/pkg/convstate"
)

func newMomentumTestStore() *convstate.Store {
	return convstate.New(bucket.Default(), "sess-momentum", "person-1", "campaign-1", time.Unix(0, 0))
}

// TestNextMomentumCompletionRequestedBeatsStalled pins graph_state.py's
// priority order: completion_requested is checked first, so a user asking
// to finish after piling up errors/frustration still reports "completing"
// rather than "stalled".
func TestNextMomentumCompletionRequestedBeatsStalled(t *testing.T) {
	store := newMomentumTestStore()
	store.State.ErrorCount = 10
	store.State.FrustrationIndicators = 10

	got := nextMomentum(store, true)
	if got != "completing" {
		t.Errorf("nextMomentum = %q, want completing", got)
	}
}

// TestNextMomentumStalledWhenErrorsHighNoCompletion confirms the stalled
// branch still fires once completion isn't requested and the thresholds
// are exceeded.
func TestNextMomentumStalledWhenErrorsHighNoCompletion(t *testing.T) {
	store := newMomentumTestStore()
	store.State.ErrorCount = 10
	store.State.FrustrationIndicators = 10

	got := nextMomentum(store, false)
	if got != "stalled" {
		t.Errorf("nextMomentum = %q, want stalled", got)
	}
}

// TestNextMomentumFlowingRequiresLowErrorsAndFrustration pins the
// recent_success AND low_errors AND low_frustration conjunction: a high
// extraction rate alone must not report "flowing" once errors or
// frustration are elevated.
func TestNextMomentumFlowingRequiresLowErrorsAndFrustration(t *testing.T) {
	store := newMomentumTestStore()
	for i := 0; i < 6; i++ {
		store.AddMessage(convstate.RoleUser, "hi", time.Unix(int64(i), 0))
	}
	ids := []bucket.ID{bucket.FullName, bucket.CurrentRole, bucket.Company, bucket.ProfessionalBio, bucket.UniquePerspective, bucket.TargetAudience}
	for i, id := range ids {
		ok := store.UpdateBucket(id, convstate.TextValue("Jane Doe"), 0.9, i, false, time.Unix(int64(i), 0))
		if !ok {
			t.Fatalf("expected bucket update %d to succeed", i)
		}
	}

	store.State.ErrorCount = 0
	store.State.FrustrationIndicators = 0
	if got := nextMomentum(store, false); got != "flowing" {
		t.Errorf("nextMomentum with low errors/frustration = %q, want flowing", got)
	}

	store.State.ErrorCount = 5
	store.State.FrustrationIndicators = 0
	if got := nextMomentum(store, false); got == "flowing" {
		t.Errorf("nextMomentum with high error_count must not be flowing, got %q", got)
	}

	store.State.ErrorCount = 0
	store.State.FrustrationIndicators = 4
	if got := nextMomentum(store, false); got == "flowing" {
		t.Errorf("nextMomentum with high frustration must not be flowing, got %q", got)
	}
}
