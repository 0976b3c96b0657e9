// Package convstate implements the in-memory, serializable conversation
// state threaded through one podcast-guest profile session: the bucket
// entries collected so far, the message log, corrections, and the flags
// that drive the review/confirmation handshake.
package convstate

import (
	"time"

	"github.com/pglaunch/profileengine/pkg/bucket"
)

// ValueKind tags which variant of Value is populated, implementing the
// sum-type design note from spec.md §9 (Go has no native union type, so
// the variant is carried as an explicit tag plus per-variant fields).
type ValueKind string

const (
	KindText    ValueKind = "text"
	KindNumber  ValueKind = "number"
	KindURL     ValueKind = "url"
	KindList    ValueKind = "list"
	KindStory   ValueKind = "story"
	KindSocial  ValueKind = "social"
)

// Value is a single stored value, tagged by Kind. Exactly one of the
// per-kind fields is meaningful for a given Kind.
type Value struct {
	Kind        ValueKind           `json:"kind"`
	Text        string              `json:"text,omitempty"`
	Number      int                 `json:"number,omitempty"`
	List        []string            `json:"list,omitempty"`
	Story       *bucket.Story       `json:"story,omitempty"`
	Achievement *bucket.Achievement `json:"achievement,omitempty"`
	Social      *bucket.SocialProfile `json:"social,omitempty"`
}

// NoneMarker is the sentinel stored when a user explicitly declines an
// optional multi-value bucket ("I don't have any") rather than simply
// never having answered it.
const NoneMarker = "none"

// Raw returns the value in the loosely-typed form the bucket validators
// expect (string, []string, bucket.Story, bucket.Achievement, or nil).
func (v Value) Raw() any {
	switch v.Kind {
	case KindText, KindURL:
		return v.Text
	case KindNumber:
		return v.Number
	case KindList:
		return v.List
	case KindStory:
		if v.Story != nil {
			return *v.Story
		}
		return v.Text
	case KindSocial:
		if v.Social != nil {
			return *v.Social
		}
		return v.Text
	default:
		return nil
	}
}

// String renders the value for display in questions, summaries, and dedup
// comparisons.
func (v Value) String() string {
	switch v.Kind {
	case KindText, KindURL:
		return v.Text
	case KindNumber:
		return itoa(v.Number)
	case KindList:
		return joinComma(v.List)
	case KindStory:
		if v.Story != nil {
			if v.Story.Result != "" {
				return v.Story.Subject + " — " + v.Story.Result
			}
			return v.Story.Subject
		}
		return v.Text
	case KindSocial:
		if v.Social != nil {
			return v.Social.String()
		}
		return v.Text
	default:
		return ""
	}
}

// TextValue builds a KindText value.
func TextValue(s string) Value { return Value{Kind: KindText, Text: s} }

// URLValue builds a KindURL value.
func URLValue(s string) Value { return Value{Kind: KindURL, Text: s} }

// NumberValue builds a KindNumber value.
func NumberValue(n int) Value { return Value{Kind: KindNumber, Number: n} }

// ListValue builds a KindList value.
func ListValue(items []string) Value { return Value{Kind: KindList, List: items} }

// SocialValue builds a KindSocial value from a parsed profile.
func SocialValue(p bucket.SocialProfile) Value { return Value{Kind: KindSocial, Social: &p} }

// BucketEntry is one timestamped value stored in a bucket.
type BucketEntry struct {
	ID                 string    `json:"id"`
	Value              Value     `json:"value"`
	Confidence         float64   `json:"confidence"`
	Timestamp          time.Time `json:"timestamp"`
	SourceMessageIndex int       `json:"source_message_index"`
	IsCorrected        bool      `json:"is_corrected"`
	PreviousValue      *Value    `json:"previous_value,omitempty"`
}

// Role identifies the speaker of a logged message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn in the append-only conversation log.
type Message struct {
	Role      Role           `json:"role"`
	Content   string         `json:"content"`
	Timestamp time.Time      `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Correction records one bucket value being replaced by the user.
type Correction struct {
	BucketID      bucket.ID `json:"bucket_id"`
	OldValue      string    `json:"old_value"`
	NewValue      string    `json:"new_value"`
	MessageIndex  int       `json:"message_index"`
	Reason        string    `json:"reason,omitempty"`
}

// ConfirmationFlag is the awaiting_confirmation field's small enum.
type ConfirmationFlag string

const (
	ConfirmationNone          ConfirmationFlag = ""
	ConfirmationProfileReview ConfirmationFlag = "profile_review"
)

// CommunicationStyle is the detected shape of the user's messages.
type CommunicationStyle struct {
	Formality   string `json:"formality"`   // formal, casual
	DetailLevel string `json:"detail_level"` // verbose, concise, technical, default
	Pace        string `json:"pace"`        // uncertain, confident
}

// ConversationState is the complete, serializable state for one session.
type ConversationState struct {
	SessionID  string `json:"session_id"`
	PersonID   string `json:"person_id"`
	CampaignID string `json:"campaign_id"`

	Buckets map[bucket.ID][]BucketEntry `json:"buckets"`

	Messages         []Message    `json:"messages"`
	UserCorrections  []Correction `json:"user_corrections"`
	CompletionSignals []string    `json:"completion_signals"`

	SkippedOptionalBuckets map[bucket.ID]bool `json:"skipped_optional_buckets"`

	IsReviewing          bool             `json:"is_reviewing"`
	AwaitingConfirmation ConfirmationFlag `json:"awaiting_confirmation"`
	CompletionConfirmed  bool             `json:"completion_confirmed"`

	CommunicationStyle CommunicationStyle `json:"communication_style"`

	// PrefilledFromLinkedIn records the bucket ids prefilled as a side
	// effect of a successful LinkedIn analysis, for acknowledgment copy.
	PrefilledFromLinkedIn []bucket.ID `json:"prefilled_from_linkedin,omitempty"`

	// LinkedInAnalyzed marks that the LinkedIn analyzer has already been
	// invoked once this session, so a later correction to linkedin_url
	// never re-triggers the side effect (spec.md §4.9: "called once per
	// session upon first linkedin_url store").
	LinkedInAnalyzed bool `json:"linkedin_analyzed,omitempty"`

	ErrorCount            int    `json:"error_count"`
	FrustrationIndicators int    `json:"frustration_indicators"`
	ConversationMomentum  string `json:"conversation_momentum"`
	ClarificationsNeeded  int    `json:"clarifications_needed"`

	CreatedAt   time.Time `json:"created_at"`
	LastUpdated time.Time `json:"last_updated"`
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

func joinComma(items []string) string {
	out := ""
	for i, it := range items {
		if i > 0 {
			out += ", "
		}
		out += it
	}
	return out
}
