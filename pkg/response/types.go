// Package response turns a strategy.Context, the classification result,
// and the outcome of applying any bucket updates into the text actually
// shown to the user: acknowledgment, progress updates, the categorized
// profile summary, the review/confirmation handshake, and the final
// quality pass (whitespace, punctuation, repeated-word cleanup, length
// cap) every reply goes through before it leaves the engine.
package response

import (
	"github.com/pglaunch/profileengine/pkg/bucketmgr"
	"github.com/pglaunch/profileengine/pkg/classifier"
)

// Turn bundles everything one reply depends on beyond the store itself.
// Callers (the orchestrator) fill this in after classification and bucket
// application have already run for this message.
type Turn struct {
	UserMessage    string
	Classification classifier.Result
	Update         bucketmgr.UpdateResult
	HadUpdate      bool
}

// maxReviewBuckets caps how many missing-required-bucket names get listed
// inline before collapsing into "(and N more)", mirroring the [:3] slices
// throughout response_builder.py.
const maxReviewBuckets = 3
