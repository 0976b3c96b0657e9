package orchestrator

import (
	"strings"

	"github.com/pglaunch/profileengine/pkg/convstate"
)

// momentumWindow bounds how many recent messages count toward the
// extraction-rate signal that drives the starting -> flowing transition.
const momentumWindow = 10

// frustrationStalledThreshold and errorStalledThreshold mirror the
// thresholds in the original's check_conversation_momentum: past either
// one, momentum drops straight to stalled regardless of recent extraction.
const (
	frustrationStalledThreshold = 5
	errorStalledThreshold       = 3
)

// impatiencePhrases flag a user expressing frustration with the pace or
// repetitiveness of the conversation.
var impatiencePhrases = []string{
	"already told you", "i already said", "i just said", "this is taking forever",
	"come on", "for the third time", "how many times", "ugh", "frustrat", "annoying",
}

// updateConversationSignals recomputes momentum and bumps frustration for
// one turn, mirroring GraphStateManager.check_conversation_momentum and the
// frustration triggers named in spec.md §4.6: repetition, impatience, and
// correction volume. It must run after the bucket manager has applied any
// updates for the turn, so correctionsThisTurn reflects this message.
func updateConversationSignals(store *convstate.Store, userMessage string, completionRequested bool, correctionsThisTurn int) {
	if isImpatiencePhrase(userMessage) {
		store.State.FrustrationIndicators++
	}
	if isRepeatedMessage(store, userMessage) {
		store.State.FrustrationIndicators++
	}
	if correctionsThisTurn > 0 {
		store.State.FrustrationIndicators += correctionsThisTurn
	}

	store.State.ConversationMomentum = nextMomentum(store, completionRequested)
}

func nextMomentum(store *convstate.Store, completionRequested bool) string {
	recentSuccess := recentExtractionRate(store) > 0.5
	lowErrors := store.State.ErrorCount < 2
	lowFrustration := store.State.FrustrationIndicators < 3

	if completionRequested {
		return "completing"
	}
	if recentSuccess && lowErrors && lowFrustration {
		return "flowing"
	}
	if store.State.ErrorCount > errorStalledThreshold || store.State.FrustrationIndicators > frustrationStalledThreshold {
		return "stalled"
	}
	return "starting"
}

// recentExtractionRate is the fraction of the last momentumWindow messages
// that produced at least one stored bucket entry, derived entirely from
// BucketEntry.SourceMessageIndex so no extra state needs tracking turn by
// turn.
func recentExtractionRate(store *convstate.Store) float64 {
	total := len(store.State.Messages)
	if total == 0 {
		return 0
	}
	window := momentumWindow
	if total < window {
		window = total
	}
	start := total - window

	extracted := make(map[int]bool, window)
	for _, entries := range store.State.Buckets {
		for _, e := range entries {
			if e.SourceMessageIndex >= start {
				extracted[e.SourceMessageIndex] = true
			}
		}
	}
	return float64(len(extracted)) / float64(window)
}

func isImpatiencePhrase(message string) bool {
	lower := strings.ToLower(message)
	for _, phrase := range impatiencePhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// isRepeatedMessage reports whether message closely matches one of the
// user's last few turns, signaling they feel unheard.
func isRepeatedMessage(store *convstate.Store, message string) bool {
	candidate := strings.ToLower(strings.TrimSpace(message))
	if candidate == "" {
		return false
	}
	count := 0
	for i := len(store.State.Messages) - 1; i >= 0 && count < 3; i-- {
		m := store.State.Messages[i]
		if m.Role != convstate.RoleUser {
			continue
		}
		count++
		if strings.ToLower(strings.TrimSpace(m.Content)) == candidate {
			return true
		}
	}
	return false
}

// ShouldOfferHelp mirrors the original's derived should_offer_help signal
// (SPEC_FULL.md §12 item 9): a caller-facing "this session is struggling"
// flag independent of which strategy fired this turn.
func ShouldOfferHelp(store *convstate.Store) bool {
	return store.State.ConversationMomentum == "stalled" ||
		store.State.FrustrationIndicators > 3 ||
		store.State.ErrorCount > 2 ||
		store.State.ClarificationsNeeded > 3
}
