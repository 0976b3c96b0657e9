package orchestrator

import (
	"context"
	"time"

	"github.com/pglaunch/profileengine/pkg/bucket"
	"github.com/pglaunch/profileengine/pkg/bucketmgr"
	"github.com/pglaunch/profileengine/pkg/classifier"
	"github.com/pglaunch/profileengine/pkg/convstate"
	"github.com/pglaunch/profileengine/pkg/response"
	"github.com/pglaunch/profileengine/pkg/strategy"
)

// fallbackMessage is returned when a turn panics somewhere past
// classification - spec.md §7's InternalNodeError policy: the user always
// gets a reply, the panic never crosses Process's boundary.
const fallbackMessage = "Sorry, something went wrong on my end. Could you try saying that again?"

// exhaustedMessage is the final reply once error_count has climbed past
// MaxErrorsBeforeFinalMessage (spec.md §4.9): the session stops trying to
// recover conversationally and just confirms state is saved.
const exhaustedMessage = "I'm having some technical difficulties right now, but don't worry - everything you've told me is saved. Let's try again in a bit."

// Process drives one user message through the graph described in
// spec.md §4.9 and returns the reply text. It is the only exported entry
// point into a turn; every node below is a private method threading the
// same store and is only ever reached through here. The top-level recover
// here is the last-resort safety net; classifyNode, safeUpdateBuckets, and
// safeRespond each recover their own node's panics first so the logged
// sentinel error (errors.go) identifies which node actually failed.
func (g *Graph) Process(ctx context.Context, store *convstate.Store, message string, now time.Time) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			g.deps.Log.Error().Interface("panic", r).Str("session", store.State.SessionID).Msg("recovered panic in orchestrator turn")
			store.State.ErrorCount++
			reply = g.errorMessage(store)
		}
	}()

	userIdx := store.AddMessage(convstate.RoleUser, message, now)

	result, err := g.classifyNode(ctx, store, message)
	if err != nil {
		store.State.ErrorCount++
		reply = g.errorMessage(store)
	} else {
		reply = g.route(ctx, store, message, result, userIdx, now)
	}

	reply = response.EnsureQuality(reply)
	store.AddMessage(convstate.RoleAssistant, reply, now)
	return reply
}

// classifyNode implements the graph's classify node, recovering a panic
// from the classifier into ErrClassifyNode instead of letting it escape.
func (g *Graph) classifyNode(ctx context.Context, store *convstate.Store, message string) (result classifier.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			g.deps.Log.Error().Interface("panic", r).Str("session", store.State.SessionID).Msg("classify node failed")
			err = ErrClassifyNode
		}
	}()
	result = g.deps.Classifier.Classify(ctx, message, store)
	return result, nil
}

// route implements the node graph: verify for ambiguous input, then the
// update_buckets and respond nodes in turn, each recovering its own
// panics before the other can run.
func (g *Graph) route(ctx context.Context, store *convstate.Store, message string, result classifier.Result, userIdx int, now time.Time) string {
	if result.Ambiguous || result.NeedsClarification != "" {
		return g.verify(store, result)
	}

	update, err := g.safeUpdateBuckets(ctx, store, result, message, userIdx, now)
	if err != nil {
		store.State.ErrorCount++
		return g.errorMessage(store)
	}

	completionRequested := result.UserIntent == classifier.IntentCompletion
	defer func() {
		updateConversationSignals(store, message, completionRequested, len(update.CorrectionsApplied))
	}()

	reply, err := g.safeRespond(store, result, update, message, completionRequested)
	if err != nil {
		store.State.ErrorCount++
		return g.errorMessage(store)
	}
	return reply
}

// verify implements the graph's verify node: the classifier flagged the
// message as ambiguous or explicitly asked for clarification, so the turn
// ends here without touching bucket state.
func (g *Graph) verify(store *convstate.Store, result classifier.Result) string {
	store.State.ClarificationsNeeded++
	updateConversationSignals(store, "", false, 0)

	if result.NeedsClarification != "" {
		return result.NeedsClarification
	}
	return "I want to make sure I get this right - could you clarify that a bit?"
}

// safeUpdateBuckets wraps updateBuckets, recovering a panic from the
// bucket manager or the LinkedIn side effect into ErrUpdateNode.
func (g *Graph) safeUpdateBuckets(ctx context.Context, store *convstate.Store, result classifier.Result, message string, userIdx int, now time.Time) (update bucketmgr.UpdateResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			g.deps.Log.Error().Interface("panic", r).Str("session", store.State.SessionID).Msg("update_buckets node failed")
			err = ErrUpdateNode
		}
	}()
	update = g.updateBuckets(ctx, store, result, message, userIdx, now)
	return update, nil
}

// updateBuckets implements the graph's update_buckets node: apply the
// classification to store, then run the linkedin_url side effect exactly
// once per session if a fresh url just landed.
func (g *Graph) updateBuckets(ctx context.Context, store *convstate.Store, result classifier.Result, message string, userIdx int, now time.Time) bucketmgr.UpdateResult {
	update := g.deps.BucketMgr.ProcessClassification(result, store, message, userIdx, now)

	if !store.State.LinkedInAnalyzed && containsID(update.UpdatedBuckets, bucket.LinkedInURL) {
		if values, ok := store.GetValue(bucket.LinkedInURL); ok && len(values) > 0 {
			store.State.LinkedInAnalyzed = true
			g.applyLinkedInSideEffect(ctx, store, values[0].String(), userIdx, now)
		}
	}

	return update
}

// safeRespond wraps the respond node - the review/completion/review-intent
// handlers, strategy selection, and final Build dispatch - recovering a
// panic from any of them into ErrRespondNode.
func (g *Graph) safeRespond(store *convstate.Store, result classifier.Result, update bucketmgr.UpdateResult, message string, completionRequested bool) (reply string, err error) {
	defer func() {
		if r := recover(); r != nil {
			g.deps.Log.Error().Interface("panic", r).Str("session", store.State.SessionID).Msg("respond node failed")
			err = ErrRespondNode
		}
	}()

	if r, handled := g.deps.Response.HandleReview(store, result); handled {
		return r, nil
	}
	if r, handled := g.deps.Response.HandleCompletionRequest(store, result); handled {
		return r, nil
	}
	if r, handled := g.deps.Response.HandleReviewIntent(store, result); handled {
		return r, nil
	}

	strategyCtx := g.deps.Strategy.Analyze(store, strategy.Input{
		CompletionRequested:  completionRequested,
		RequiresVerification: result.Ambiguous,
	})

	g.deps.Response.HandleNegativeIndicatorSkip(store, result, message, strategyCtx)

	return g.deps.Response.Build(store, strategyCtx, response.Turn{
		UserMessage:    message,
		Classification: result,
		Update:         update,
		HadUpdate:      update.Success(),
	}), nil
}

// errorMessage implements the §4.9 error node: once error_count has
// climbed past MaxErrorsBeforeFinalMessage, the session stops trying to
// recover conversationally and settles into a flat "state is saved"
// message with momentum pinned to stalled.
func (g *Graph) errorMessage(store *convstate.Store) string {
	if store.State.ErrorCount > MaxErrorsBeforeFinalMessage {
		store.State.ConversationMomentum = "stalled"
		return exhaustedMessage
	}
	return fallbackMessage
}

func containsID(ids []bucket.ID, target bucket.ID) bool {
	for _, id := range ids {
		if id == target {
			return true
		}
	}
	return false
}
