// Package question turns a strategy.Context naming one or more target
// buckets into the actual text shown to the user: picking a style-matched
// template, combining buckets that read naturally as one question,
// offering a contextual follow-up instead of a generic prompt when one
// applies, and layering on transition phrasing and occasional first-name
// personalization.
package question

import "github.com/pglaunch/profileengine/pkg/bucket"

// Kind classifies how a Generated question's text was produced.
type Kind string

const (
	KindSingle        Kind = "single"
	KindMulti         Kind = "multi"
	KindFollowUp      Kind = "follow_up"
	KindCompletion    Kind = "completion"
)

// Generated is a question ready for transition-wrapping and delivery.
type Generated struct {
	Text            string
	TargetBuckets   []bucket.ID
	Kind            Kind
	IncludesExamples bool
	Personalized    bool
}
