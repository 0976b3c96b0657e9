package strategy

import (
	"github.com/rs/zerolog"

	"github.com/pglaunch/profileengine/pkg/bucket"
	"github.com/pglaunch/profileengine/pkg/convstate"
)

// bucketGroups clusters buckets that read naturally as one combined
// question, mirroring ResponseStrategyEngine.bucket_groups.
var bucketGroups = map[string][]bucket.ID{
	"contact":    {bucket.Email, bucket.Phone, bucket.LinkedInURL},
	"background": {bucket.CurrentRole, bucket.Company, bucket.YearsExperience},
	"expertise":  {bucket.ExpertiseKeywords, bucket.PodcastTopics, bucket.UniquePerspective},
	"credibility": {bucket.SuccessStories, bucket.Achievements, bucket.SpeakingExperience},
}

// styleQuestionLimits caps how many buckets get combined into one question
// for a given detected style, mirroring style_question_limits.
var styleQuestionLimits = map[Style]int{
	StyleVerbose:   3,
	StyleConcise:   1,
	StyleTechnical: 2,
	StyleCasual:    2,
	StyleFormal:    2,
	StyleUncertain: 1,
}

// requiredPriorityOrder mirrors _prioritize_required_buckets.priority_order.
var requiredPriorityOrder = []bucket.ID{
	bucket.FullName, bucket.Email, bucket.CurrentRole, bucket.ProfessionalBio,
	bucket.ExpertiseKeywords, bucket.PodcastTopics, bucket.SuccessStories,
}

// optionalPriorityOrder mirrors _suggest_optional_buckets.priority_order,
// trimmed to buckets this catalog actually declares.
var optionalPriorityOrder = []bucket.ID{
	bucket.LinkedInURL, bucket.Phone, bucket.YearsExperience,
	bucket.SpeakingExperience, bucket.Achievements, bucket.IdealPodcast,
	bucket.Website, bucket.SchedulingPreference, bucket.PromotionItems,
	bucket.SocialMedia,
}

// rescuePriorityOrder mirrors _get_absolute_minimum_buckets.critical.
var rescuePriorityOrder = []bucket.ID{bucket.FullName, bucket.Email, bucket.ProfessionalBio}

// FrustrationThreshold and WelcomeMessageThreshold mirror the literal
// thresholds in analyze_conversation_state.
const (
	FrustrationThreshold    = 3
	WelcomeMessageThreshold = 2
)

// Input carries the per-turn signals the strategy decision depends on but
// that aren't persisted conversation state: whether this message asked to
// complete, and whether the classifier flagged it as ambiguous.
type Input struct {
	CompletionRequested bool
	RequiresVerification bool
}

// Engine selects a Context for one turn.
type Engine struct {
	log zerolog.Logger
}

// New builds a strategy Engine.
func New(log zerolog.Logger) *Engine {
	return &Engine{log: log.With().Str("component", "strategy").Logger()}
}

// Analyze inspects store and in picks the response strategy for this turn.
func (e *Engine) Analyze(store *convstate.Store, in Input) Context {
	style := detectStyle(store)

	filled := store.Filled()
	emptyRequired := store.EmptyRequired()
	totalMessages := len(store.State.Messages)
	momentum := store.State.ConversationMomentum
	frustration := store.State.FrustrationIndicators

	if totalMessages <= WelcomeMessageThreshold {
		return Context{
			Strategy:        WarmWelcome,
			PriorityBuckets: []bucket.ID{bucket.FullName},
			OfferExamples:   true,
			Style:           style,
			Reasoning:       "first interaction - warm welcome",
		}
	}

	if frustration > FrustrationThreshold || momentum == "stalled" {
		rescueCandidates := filterPresent(rescuePriorityOrder, emptyRequired)
		return Context{
			Strategy:            ConversationRescue,
			PriorityBuckets:     rescueCandidates[:minInt(1, len(rescueCandidates))],
			ShowProgress:        true,
			OfferExamples:       true,
			AcknowledgePrevious: true,
			Style:               StyleCasual,
			Reasoning:           "high frustration detected - switching to rescue mode",
		}
	}

	if in.CompletionRequested {
		if len(emptyRequired) > 0 {
			limit := minInt(2, len(emptyRequired))
			return Context{
				Strategy:            CompletionBlocked,
				PriorityBuckets:     emptyRequired[:limit],
				ShowProgress:        true,
				AcknowledgePrevious: true,
				Style:               style,
				Reasoning:           "completion requested but missing required fields",
			}
		}
		return Context{
			Strategy:     CompletionReady,
			ShowProgress: true,
			Style:        style,
			Reasoning:    "ready for completion",
		}
	}

	if in.RequiresVerification {
		return Context{
			Strategy:      ClarifyAmbiguous,
			OfferExamples: true,
			Style:         style,
			Reasoning:     "ambiguous input needs clarification",
		}
	}

	if len(filled) > 0 && momentum == "flowing" {
		next := e.nextLogicalBuckets(filled, emptyRequired, style)
		if len(next) == 0 {
			if len(emptyRequired) > 0 {
				next = e.prioritizeRequired(emptyRequired)[:1]
			} else if optional := e.suggestOptional(filled, store); len(optional) > 0 {
				next = optional[:1]
			}
		}
		return Context{
			Strategy:            AcknowledgeProgress,
			PriorityBuckets:     next,
			GroupQuestions:      e.shouldGroupQuestions(style, next),
			ShowProgress:        len(filled)%5 == 0,
			OfferExamples:       style == StyleUncertain,
			AcknowledgePrevious: true,
			Style:               style,
			Reasoning:           "good momentum - acknowledge and continue",
		}
	}

	if len(emptyRequired) > 0 {
		next := e.prioritizeRequired(emptyRequired)
		return Context{
			Strategy:            GatherRequired,
			PriorityBuckets:     next,
			GroupQuestions:      e.shouldGroupQuestions(style, next),
			OfferExamples:       len(filled) < 3,
			AcknowledgePrevious: len(filled) > 0,
			Style:               style,
			Reasoning:           "gathering required information",
		}
	}

	if optional := e.suggestOptional(filled, store); len(optional) > 0 {
		return Context{
			Strategy:            GatherOptional,
			PriorityBuckets:     optional,
			GroupQuestions:      true,
			ShowProgress:        true,
			AcknowledgePrevious: true,
			Style:               style,
			Reasoning:           "required fields complete - gathering optional",
		}
	}

	return Context{
		Strategy:            CompletionReady,
		ShowProgress:        true,
		AcknowledgePrevious: true,
		Style:               style,
		Reasoning:           "all information gathered",
	}
}

// nextLogicalBuckets encodes the fixed-order "what naturally comes next"
// heuristic from _get_next_logical_buckets: a short chain of
// filled-bucket -> next-bucket rules tuned for this domain's flow (name,
// then contact, then LinkedIn for enrichment, then role, key message, and
// finally background/expertise).
func (e *Engine) nextLogicalBuckets(filled, emptyRequired []bucket.ID, style Style) []bucket.ID {
	has := func(ids []bucket.ID, id bucket.ID) bool {
		for _, x := range ids {
			if x == id {
				return true
			}
		}
		return false
	}

	if has(filled, bucket.FullName) && !has(filled, bucket.Email) && !has(filled, bucket.Phone) {
		if has(emptyRequired, bucket.Email) {
			return []bucket.ID{bucket.Email}
		}
	}
	if has(filled, bucket.Email) && !has(filled, bucket.LinkedInURL) {
		return []bucket.ID{bucket.LinkedInURL}
	}
	if has(filled, bucket.LinkedInURL) && !has(filled, bucket.CurrentRole) && has(emptyRequired, bucket.CurrentRole) {
		return []bucket.ID{bucket.CurrentRole}
	}
	if has(filled, bucket.CurrentRole) && !has(filled, bucket.KeyMessage) && has(emptyRequired, bucket.KeyMessage) {
		return []bucket.ID{bucket.KeyMessage}
	}
	if has(filled, bucket.CurrentRole) {
		var related []bucket.ID
		for _, id := range []bucket.ID{bucket.Company, bucket.YearsExperience} {
			if has(emptyRequired, id) {
				related = append(related, id)
			}
		}
		if len(related) > 0 {
			limit := styleQuestionLimits[style]
			if limit == 0 {
				limit = 2
			}
			return related[:minInt(limit, len(related))]
		}
	}
	if has(filled, bucket.ExpertiseKeywords) || has(filled, bucket.PodcastTopics) {
		var expertise []bucket.ID
		for _, id := range []bucket.ID{bucket.UniquePerspective, bucket.TargetAudience} {
			if has(emptyRequired, id) {
				expertise = append(expertise, id)
			}
		}
		if len(expertise) > 0 {
			return expertise[:1]
		}
	}
	if len(emptyRequired) > 0 {
		return emptyRequired[:1]
	}
	return nil
}

func (e *Engine) prioritizeRequired(emptyRequired []bucket.ID) []bucket.ID {
	return filterPresent(requiredPriorityOrder, emptyRequired)
}

func (e *Engine) suggestOptional(filled []bucket.ID, store *convstate.Store) []bucket.ID {
	emptyOptional := store.EmptyOptional()
	return filterPresent(optionalPriorityOrder, emptyOptional)
}

func (e *Engine) shouldGroupQuestions(style Style, ids []bucket.ID) bool {
	if len(ids) == 0 {
		return false
	}
	for _, group := range bucketGroups {
		if allIn(ids, group) {
			limit := styleQuestionLimits[style]
			if limit == 0 {
				limit = 2
			}
			return len(ids) <= limit
		}
	}
	return false
}

// filterPresent returns priority, in order, restricted to members of
// present, followed by any remaining members of present not in priority —
// mirroring the "prioritized, then append leftovers" pattern used
// throughout the original's suggestion helpers.
func filterPresent(priority, present []bucket.ID) []bucket.ID {
	presentSet := make(map[bucket.ID]bool, len(present))
	for _, id := range present {
		presentSet[id] = true
	}
	var out []bucket.ID
	seen := make(map[bucket.ID]bool)
	for _, id := range priority {
		if presentSet[id] && !seen[id] {
			out = append(out, id)
			seen[id] = true
		}
	}
	for _, id := range present {
		if !seen[id] {
			out = append(out, id)
			seen[id] = true
		}
	}
	return out
}

func allIn(ids, group []bucket.ID) bool {
	groupSet := make(map[bucket.ID]bool, len(group))
	for _, id := range group {
		groupSet[id] = true
	}
	for _, id := range ids {
		if !groupSet[id] {
			return false
		}
	}
	return true
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
