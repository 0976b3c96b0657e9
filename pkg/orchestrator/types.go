// Package orchestrator drives one user message through the directed graph
// described in spec.md §4.9: classify -> (verify | check_completion |
// update_buckets | respond | error) -> respond -> error | END. It is the
// single entrypoint that threads one convstate.Store through a turn,
// wiring together classifier, bucketmgr, strategy, and response without any
// of those packages depending on each other directly.
package orchestrator

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/pglaunch/profileengine/pkg/bucket"
	"github.com/pglaunch/profileengine/pkg/bucketmgr"
	"github.com/pglaunch/profileengine/pkg/classifier"
	"github.com/pglaunch/profileengine/pkg/response"
	"github.com/pglaunch/profileengine/pkg/strategy"
)

// Deps bundles the per-session-independent collaborators a Graph drives.
// All of them are safe to share across sessions (spec.md §5): the graph
// itself holds no session-specific state, only these stateless workers.
type Deps struct {
	Classifier *classifier.Classifier
	BucketMgr  *bucketmgr.Manager
	Strategy   *strategy.Engine
	Response   *response.Builder
	LinkedIn   LinkedInAnalyzer
	Log        zerolog.Logger
}

// Graph drives the per-message node flow from spec.md §4.9 over a single
// convstate.Store. It holds no mutable state of its own; Process is safe to
// call concurrently for different stores as long as a single store is never
// driven by two overlapping calls (spec.md §5 - the session registry
// enforces that serialization).
type Graph struct {
	deps Deps
}

// New builds a Graph around deps.
func New(deps Deps) *Graph {
	return &Graph{deps: deps}
}

// LinkedInProfile is what a LinkedInAnalyzer extracts from a public
// profile, matching the shape spec.md §6 item 2 specifies for the
// collaborator interface.
type LinkedInProfile struct {
	ProfessionalBio   string
	ExpertiseKeywords []string
	YearsExperience   int
	SuccessStories    []string
	PodcastTopics     []string
	UniquePerspective string
	TargetAudience    string
	KeyAchievements   []string
}

// LinkedInAnalyzer is the narrow external collaborator the orchestrator
// calls once per session, the moment a linkedin_url bucket is first
// stored (spec.md §6 item 2, §4.9 side effect). A nil LinkedInAnalyzer is
// valid: the side effect is then simply skipped, same as an analysis
// failure.
type LinkedInAnalyzer interface {
	Analyze(ctx context.Context, url string) (*LinkedInProfile, error)
}

// linkedInPrefillTargets lists the buckets a successful analysis may
// prefill, matching spec.md §4.9's named set exactly. Prefilled ids are
// reported in applyLinkedInSideEffect's fill order (text buckets, then
// years, then list buckets), not in the order of this list.
var linkedInPrefillTargets = []bucket.ID{
	bucket.ProfessionalBio,
	bucket.ExpertiseKeywords,
	bucket.YearsExperience,
	bucket.SuccessStories,
	bucket.PodcastTopics,
	bucket.UniquePerspective,
	bucket.TargetAudience,
	bucket.Achievements,
}

// linkedInPrefillConfidence is the fixed confidence spec.md §4.9 assigns to
// every value prefilled from a LinkedIn analysis.
const linkedInPrefillConfidence = 0.8
