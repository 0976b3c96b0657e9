package orchestrator

import (
	"context"
	"time"

	"github.com/pglaunch/profileengine/pkg/bucket"
	"github.com/pglaunch/profileengine/pkg/convstate"
)

// applyLinkedInSideEffect runs the spec.md §4.9 side effect: once a
// linkedin_url value has just been stored for the first time this session,
// call the analyzer and prefill any of linkedInPrefillTargets that are
// still empty with confidence 0.8, recording which ids got prefilled for
// the acknowledgment copy. An analyzer failure is an EnrichmentFailure
// (spec.md §7): logged and swallowed here, conversation proceeds without
// prefill.
func (g *Graph) applyLinkedInSideEffect(ctx context.Context, store *convstate.Store, url string, sourceMessageIndex int, now time.Time) {
	if g.deps.LinkedIn == nil {
		return
	}

	profile, err := g.deps.LinkedIn.Analyze(ctx, url)
	if err != nil {
		g.deps.Log.Warn().Err(err).Str("url", url).Msg("linkedin analysis failed, continuing without prefill")
		return
	}
	if profile == nil {
		return
	}

	var prefilled []bucket.ID
	tryFill := func(id bucket.ID, value convstate.Value, ok bool) {
		if !ok {
			return
		}
		if _, has := store.GetValue(id); has {
			return
		}
		if store.UpdateBucket(id, value, linkedInPrefillConfidence, sourceMessageIndex, false, now) {
			prefilled = append(prefilled, id)
		}
	}

	tryFill(bucket.ProfessionalBio, convstate.TextValue(profile.ProfessionalBio), profile.ProfessionalBio != "")
	tryFill(bucket.UniquePerspective, convstate.TextValue(profile.UniquePerspective), profile.UniquePerspective != "")
	tryFill(bucket.TargetAudience, convstate.TextValue(profile.TargetAudience), profile.TargetAudience != "")
	tryFill(bucket.YearsExperience, convstate.NumberValue(profile.YearsExperience), profile.YearsExperience > 0)

	fillList := func(id bucket.ID, items []string) {
		if len(items) == 0 {
			return
		}
		if _, has := store.GetValue(id); has {
			return
		}
		applied := false
		for _, item := range items {
			if store.UpdateBucket(id, convstate.TextValue(item), linkedInPrefillConfidence, sourceMessageIndex, false, now) {
				applied = true
			}
		}
		if applied {
			prefilled = append(prefilled, id)
		}
	}
	fillList(bucket.ExpertiseKeywords, profile.ExpertiseKeywords)
	fillList(bucket.SuccessStories, profile.SuccessStories)
	fillList(bucket.PodcastTopics, profile.PodcastTopics)
	fillList(bucket.Achievements, profile.KeyAchievements)

	if len(prefilled) > 0 {
		store.State.PrefilledFromLinkedIn = prefilled
		g.deps.Log.Info().Strs("buckets", idStrings(prefilled)).Msg("linkedin analysis prefilled buckets")
	}
}

func idStrings(ids []bucket.ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
