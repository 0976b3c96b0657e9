// Package strategy decides, for a given turn, which high-level response
// shape to use (warm welcome, gather required info, acknowledge progress,
// rescue a stalling conversation, and so on) and which buckets to
// prioritize asking about next. It never produces question text itself —
// that's pkg/question's job once a strategy names the buckets.
package strategy

import "github.com/pglaunch/profileengine/pkg/bucket"

// Style is the user's detected communication style, derived from the
// length, vocabulary, and phrasing of their messages so far.
type Style string

const (
	StyleVerbose   Style = "verbose"
	StyleConcise   Style = "concise"
	StyleTechnical Style = "technical"
	StyleCasual    Style = "casual"
	StyleFormal    Style = "formal"
	StyleUncertain Style = "uncertain"
)

// Name is the chosen overall response shape for this turn.
type Name string

const (
	WarmWelcome        Name = "warm_welcome"
	GatherRequired     Name = "gather_required"
	GatherOptional     Name = "gather_optional"
	ClarifyAmbiguous   Name = "clarify_ambiguous"
	AcknowledgeProgress Name = "acknowledge_progress"
	CompletionReady    Name = "completion_ready"
	CompletionBlocked  Name = "completion_blocked"
	ErrorRecovery      Name = "error_recovery"
	ConversationRescue Name = "conversation_rescue"
)

// Context is the strategy engine's recommendation for one turn.
type Context struct {
	Strategy           Name
	PriorityBuckets    []bucket.ID
	GroupQuestions     bool
	ShowProgress       bool
	OfferExamples      bool
	AcknowledgePrevious bool
	Style              Style
	Reasoning          string
}
