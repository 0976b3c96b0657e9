package response

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pglaunch/profileengine/pkg/bucket"
	"github.com/pglaunch/profileengine/pkg/classifier"
	"github.com/pglaunch/profileengine/pkg/convstate"
	"github.com/pglaunch/profileengine/pkg/question"
	"github.com/pglaunch/profileengine/pkg/strategy"
)

// negativeIndicators is response's own copy of the "I don't have that"
// phrase list, kept separate from bucketmgr's identical list the same way
// response_builder.py and bucket_manager.py each carry their own.
var negativeIndicators = []string{
	"don't have", "dont have", "do not have", "no ", "none", "not applicable", "n/a",
}

func hasNegativeIndicator(message string) bool {
	lower := strings.ToLower(message)
	for _, ind := range negativeIndicators {
		if strings.Contains(lower, ind) {
			return true
		}
	}
	return false
}

// Builder composes final reply text from a strategy.Context, a
// classifier.Result, and the outcome of applying that turn's bucket
// updates. The orchestrator is expected to call HandleReview,
// HandleCompletionRequest, and HandleReviewIntent in that order before
// falling back to Build, mirroring the branch order in build_response;
// each returns handled=false when its precondition doesn't apply so the
// caller can try the next one.
type Builder struct {
	questions *question.Generator
	render    *renderer
	log       zerolog.Logger
}

// New builds a response Builder. r seeds the template renderer only;
// questions keeps the source it was built with. A nil r falls back to the
// top-level math/rand source.
func New(questions *question.Generator, r *rand.Rand, log zerolog.Logger) *Builder {
	return &Builder{
		questions: questions,
		render:    &renderer{rand: r},
		log:       log.With().Str("component", "response").Logger(),
	}
}

// HandleReview handles the case where the previous turn left the
// conversation awaiting a profile-review confirmation: confirming
// finalizes, a correction or any bucket update reopens the flow for the
// normal strategy dispatch to handle, and anything else gets a reminder of
// the two options.
func (b *Builder) HandleReview(store *convstate.Store, result classifier.Result) (string, bool) {
	if store.State.AwaitingConfirmation != convstate.ConfirmationProfileReview {
		return "", false
	}

	switch {
	case result.UserIntent == classifier.IntentCompletion || result.UserIntent == classifier.IntentAcknowledgment:
		store.State.CompletionConfirmed = true
		store.State.AwaitingConfirmation = convstate.ConfirmationNone
		return "Perfect! Your profile is now complete. Click the 'Complete' button to finalize your media kit. This will include your professional bio, suggested podcast topics, and all the information needed for podcast hosts. Thank you for taking the time to share your expertise!", true

	case result.UserIntent == classifier.IntentCorrection || len(result.BucketUpdates) > 0:
		store.State.IsReviewing = false
		store.State.AwaitingConfirmation = convstate.ConfirmationNone
		return "", false

	default:
		return "Please review your profile above. If everything looks correct, confirm to finalize. If you'd like to make changes, just tell me what you'd like to update.", true
	}
}

// HandleCompletionRequest handles a completion intent arriving before the
// full review has been shown: it delegates to CheckCompletion for the
// actual missing-required/summary logic. It returns handled=false (and
// leaves store untouched) when nothing has been collected yet, letting the
// normal strategy dispatch run instead.
func (b *Builder) HandleCompletionRequest(store *convstate.Store, result classifier.Result) (string, bool) {
	if result.UserIntent != classifier.IntentCompletion || store.State.AwaitingConfirmation != convstate.ConfirmationNone {
		return "", false
	}
	if len(store.Filled()) == 0 {
		return "", false
	}
	return b.CheckCompletion(store), true
}

// CheckCompletion implements the graph's check_completion node (spec.md
// §4.9): it names up to three missing required buckets when the profile
// isn't done yet, or opens the review/confirmation handshake when it is.
// Unlike HandleCompletionRequest, it runs unconditionally - it does not gate
// on user intent or on anything already being filled - since the graph only
// reaches this node when the caller has already decided completion should
// be (re-)checked.
func (b *Builder) CheckCompletion(store *convstate.Store) string {
	summary := buildCompleteSummary(store)
	emptyRequired := store.EmptyRequired()
	if len(emptyRequired) > 0 {
		missing := missingBucketText(store, emptyRequired)
		if summary == "" {
			return fmt.Sprintf("Still need: %s\n\nWhat would you like to provide next?", missing)
		}
		return fmt.Sprintf("Here's what I have so far:\n\n%s\n\nStill need: %s\n\nWhat would you like to provide next?", summary, missing)
	}

	store.State.AwaitingConfirmation = convstate.ConfirmationProfileReview
	store.State.IsReviewing = true
	return fmt.Sprintf("Here's your complete profile:\n\n%s\n\nEverything looks great! Would you like to make any changes or would you like to finalize your media kit?", summary)
}

// HandleNegativeIndicatorSkip marks the first optional priority bucket as
// explicitly skipped when the user just said they don't have something and
// the classifier extracted nothing — e.g. "I don't have a LinkedIn" after
// being asked for one.
func (b *Builder) HandleNegativeIndicatorSkip(store *convstate.Store, result classifier.Result, userMessage string, ctx strategy.Context) {
	if result.UserIntent != classifier.IntentProvideInfo || len(result.BucketUpdates) > 0 {
		return
	}
	if !hasNegativeIndicator(userMessage) {
		return
	}
	cat := store.Catalog()
	for _, id := range ctx.PriorityBuckets {
		def, ok := cat.Get(id)
		if !ok || def.Required {
			continue
		}
		store.MarkOptionalSkipped(id)
		b.log.Info().Str("bucket", string(id)).Msg("user repeated they don't have this optional field")
		return
	}
}

// HandleReviewIntent handles an explicit "show me what you have" request,
// independent of the completion handshake.
func (b *Builder) HandleReviewIntent(store *convstate.Store, result classifier.Result) (string, bool) {
	if result.UserIntent != classifier.IntentReview {
		return "", false
	}

	filled := store.Filled()
	if len(filled) == 0 {
		return "I haven't collected any information yet. Let's start with your name!", true
	}

	summary := buildCompleteSummary(store)
	emptyRequired := store.EmptyRequired()
	if len(emptyRequired) > 0 {
		missing := missingBucketText(store, emptyRequired)
		return fmt.Sprintf("Here's what I have so far:\n\n%s\n\nStill need: %s\n\nWhat would you like to provide next?", summary, missing), true
	}
	return fmt.Sprintf("Here's your complete profile:\n\n%s\n\nEverything looks great! Would you like to make any changes?", summary), true
}

// Build runs the main strategy dispatch once none of the handlers above
// short-circuited the turn.
func (b *Builder) Build(store *convstate.Store, ctx strategy.Context, turn Turn) string {
	switch ctx.Strategy {
	case strategy.WarmWelcome:
		return b.render.render("warm_welcome", ctx.Style, nil)
	case strategy.AcknowledgeProgress:
		return b.buildProgressResponse(store, ctx, turn)
	case strategy.GatherRequired:
		return b.buildGatherResponse(store, ctx, turn.UserMessage)
	case strategy.GatherOptional:
		return b.buildGatherResponse(store, ctx, turn.UserMessage)
	case strategy.ClarifyAmbiguous:
		clarification := turn.Classification.NeedsClarification
		if clarification == "" {
			clarification = "could you provide more details?"
		}
		return b.render.render("need_clarification", ctx.Style, map[string]string{"clarification": clarification})
	case strategy.CompletionReady:
		return b.render.render("completion_ready", ctx.Style, map[string]string{"summary": buildCompleteSummary(store)})
	case strategy.CompletionBlocked:
		emptyRequired := store.EmptyRequired()
		missing := formattedMissingBucketText(store, emptyRequired, ctx.Style)
		return b.render.render("completion_blocked", ctx.Style, map[string]string{"missing": missing})
	case strategy.ErrorRecovery:
		return b.render.render("error_recovery", ctx.Style, nil)
	case strategy.ConversationRescue:
		return b.render.render("conversation_rescue", ctx.Style, nil)
	default:
		return b.buildGatherResponse(store, ctx, turn.UserMessage)
	}
}

func (b *Builder) buildProgressResponse(store *convstate.Store, ctx strategy.Context, turn Turn) string {
	if !turn.HadUpdate {
		if len(ctx.PriorityBuckets) > 0 {
			return b.generateNextQuestion(store, ctx, turn.UserMessage)
		}
		return "Is there anything else you'd like to add?"
	}

	var parts []string
	upd := turn.Update
	cat := store.Catalog()

	switch {
	case containsID(upd.UpdatedBuckets, bucket.LinkedInURL) && len(store.State.PrefilledFromLinkedIn) > 0:
		parts = append(parts, "Excellent! I've analyzed your LinkedIn profile and extracted key information about your background and expertise.")
	case len(upd.CorrectionsApplied) > 0:
		parts = append(parts, b.render.render("acknowledge_correction", ctx.Style, nil))
	case len(upd.UpdatedBuckets) > 1:
		names := namesFor(cat, upd.UpdatedBuckets)
		style := ctx.Style
		if style == "" {
			style = strategy.StyleCasual
		}
		formatted := formatBucketList(names, style)
		parts = append(parts, b.render.render("acknowledge_multiple", ctx.Style, map[string]string{"items": formatted}))
	default:
		parts = append(parts, b.render.render("acknowledge_single", ctx.Style, nil))
	}

	if ctx.ShowProgress {
		total := len(cat.List())
		filled := len(store.Filled())
		percent := 0
		if total > 0 {
			percent = filled * 100 / total
		}
		if percent > 100 {
			percent = 100
		}
		parts = append(parts, b.render.render("progress_update", ctx.Style, map[string]string{"percent": strconv.Itoa(percent)}))
	}

	switch {
	case len(ctx.PriorityBuckets) > 0:
		parts = append(parts, b.generateNextQuestion(store, ctx, turn.UserMessage))

	default:
		if emptyRequired := store.EmptyRequired(); len(emptyRequired) > 0 {
			next := ctx
			next.PriorityBuckets = emptyRequired[:1]
			parts = append(parts, b.generateNextQuestion(store, next, turn.UserMessage))
		} else if emptyOptional := store.EmptyOptional(); len(emptyOptional) > 0 {
			next := ctx
			next.PriorityBuckets = emptyOptional[:1]
			parts = append(parts, b.generateNextQuestion(store, next, turn.UserMessage))
		} else if filled := store.Filled(); len(filled) > 0 {
			summary := buildCompleteSummary(store)
			store.State.AwaitingConfirmation = convstate.ConfirmationProfileReview
			store.State.IsReviewing = true
			return fmt.Sprintf("Great! I've collected all the information I need. Here's your complete profile:\n\n%s\n\nPlease review everything carefully. If you'd like to make any changes or additions, just let me know! Otherwise, confirm to finalize your media kit.", summary)
		} else {
			parts = append(parts, "Is there anything else you'd like to add?")
		}
	}

	return strings.Join(parts, " ")
}

func (b *Builder) buildGatherResponse(store *convstate.Store, ctx strategy.Context, userMessage string) string {
	next := question.Generated{Text: b.generateNextQuestion(store, ctx, userMessage)}
	acknowledgePrevious := ctx.AcknowledgePrevious && len(store.Filled()) > 0
	text := b.questions.AddTransition(next, acknowledgePrevious, ctx.ShowProgress)
	return b.questions.PersonalizeWithName(text, store)
}

// generateNextQuestion mirrors _generate_next_question: a LinkedIn hint in
// the user's own message takes priority over whatever the strategy named,
// then a proactive LinkedIn nudge once email is on file, and only then the
// question generator proper.
func (b *Builder) generateNextQuestion(store *convstate.Store, ctx strategy.Context, userMessage string) string {
	if strings.Contains(strings.ToLower(userMessage), "linkedin") {
		if _, ok := store.GetValue(bucket.LinkedInURL); !ok {
			return "Yes! Please share your LinkedIn profile URL - it helps podcast hosts learn more about your professional background."
		}
	}

	if len(ctx.PriorityBuckets) == 0 {
		_, hasEmail := store.GetValue(bucket.Email)
		_, hasLinkedIn := store.GetValue(bucket.LinkedInURL)
		_, hasPhone := store.GetValue(bucket.Phone)
		if hasEmail && !hasLinkedIn && !hasPhone {
			return "Would you like to share your LinkedIn profile URL? It's optional but helps podcast hosts learn more about your professional background."
		}
		return "Is there anything else you'd like to share?"
	}

	generated := b.questions.Generate(ctx, store)
	return generated.Text
}

// missingBucketText renders a plain comma-joined list for the "Still need:"
// copy used by HandleCompletionRequest and HandleReviewIntent.
func missingBucketText(store *convstate.Store, emptyRequired []bucket.ID) string {
	cat := store.Catalog()
	limit := maxReviewBuckets
	if len(emptyRequired) < limit {
		limit = len(emptyRequired)
	}
	names := namesFor(cat, emptyRequired[:limit])
	text := strings.Join(names, ", ")
	if len(emptyRequired) > maxReviewBuckets {
		text += fmt.Sprintf(" (and %d more)", len(emptyRequired)-maxReviewBuckets)
	}
	return text
}

// formattedMissingBucketText renders the more conversational "X and Y"
// join used by the completion_blocked template.
func formattedMissingBucketText(store *convstate.Store, emptyRequired []bucket.ID, style strategy.Style) string {
	cat := store.Catalog()
	limit := maxReviewBuckets
	if len(emptyRequired) < limit {
		limit = len(emptyRequired)
	}
	names := namesFor(cat, emptyRequired[:limit])
	text := formatBucketList(names, style)
	if len(emptyRequired) > maxReviewBuckets {
		text += fmt.Sprintf(" (%d more)", len(emptyRequired)-maxReviewBuckets)
	}
	return text
}

func namesFor(cat *bucket.Catalog, ids []bucket.ID) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if def, ok := cat.Get(id); ok {
			names = append(names, def.Name)
		}
	}
	return names
}

func containsID(ids []bucket.ID, target bucket.ID) bool {
	for _, id := range ids {
		if id == target {
			return true
		}
	}
	return false
}
