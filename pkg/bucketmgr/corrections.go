package bucketmgr

import (
	"strings"

	"github.com/pglaunch/profileengine/pkg/bucket"
	"github.com/pglaunch/profileengine/pkg/convstate"
)

// softCorrectionPhrases mirrors BucketManager._is_implicit_correction's
// phrase list: a user saying any of these is correcting something even
// without an explicit "correction" intent from the classifier.
var softCorrectionPhrases = []string{
	"it's actually",
	"i meant",
	"should be",
	"make that",
	"change it to",
}

// isImplicitCorrection detects a correction the classifier didn't flag as
// one: the bucket already holds a value, and either the assistant's most
// recent message named this specific bucket (so the user's reply is a new
// answer to a question about something already on file), or the user's
// message contains a soft correction phrase.
//
// The "last assistant message" check is scoped to that single most recent
// assistant turn, not the whole recent window — this preserves the
// original's narrow heuristic exactly rather than loosening it to any of
// the last few turns.
func isImplicitCorrection(id bucket.ID, store *convstate.Store, userMessage string) bool {
	if _, ok := store.GetValue(id); !ok {
		return false
	}

	recent := store.RecentMessages(3)
	var lastAssistant string
	for i := len(recent) - 1; i >= 0; i-- {
		if recent[i].Role == convstate.RoleAssistant {
			lastAssistant = strings.ToLower(recent[i].Content)
			break
		}
	}
	if lastAssistant != "" {
		if def, ok := store.Catalog().Get(id); ok {
			if strings.Contains(lastAssistant, strings.ToLower(def.Name)) {
				return true
			}
		}
	}

	lowerMsg := strings.ToLower(userMessage)
	for _, phrase := range softCorrectionPhrases {
		if strings.Contains(lowerMsg, phrase) {
			return true
		}
	}

	return false
}
