package convstate

import (
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/pglaunch/profileengine/pkg/bucket"
)

// Store wraps a ConversationState with the operations the rest of the
// engine uses to read and mutate it. It holds no concurrency primitives of
// its own — per spec.md §5 a single session's turns are never
// interleaved, so callers (the session registry) own the locking.
type Store struct {
	State   *ConversationState
	catalog *bucket.Catalog
}

// New creates a Store around a fresh ConversationState, with every
// catalog bucket present as an empty slice per the §3 invariant.
func New(catalog *bucket.Catalog, sessionID, personID, campaignID string, now time.Time) *Store {
	state := &ConversationState{
		SessionID:              sessionID,
		PersonID:               personID,
		CampaignID:             campaignID,
		Buckets:                make(map[bucket.ID][]BucketEntry),
		SkippedOptionalBuckets: make(map[bucket.ID]bool),
		ConversationMomentum:   "starting",
		CreatedAt:              now,
		LastUpdated:            now,
	}
	for _, id := range catalog.List() {
		state.Buckets[id.ID] = nil
	}
	return &Store{State: state, catalog: catalog}
}

// FromState wraps an already-deserialized ConversationState, filling in
// any bucket keys the catalog has grown since the state was serialized.
func FromState(catalog *bucket.Catalog, state *ConversationState) *Store {
	if state.Buckets == nil {
		state.Buckets = make(map[bucket.ID][]BucketEntry)
	}
	if state.SkippedOptionalBuckets == nil {
		state.SkippedOptionalBuckets = make(map[bucket.ID]bool)
	}
	for _, d := range catalog.List() {
		if _, ok := state.Buckets[d.ID]; !ok {
			state.Buckets[d.ID] = nil
		}
	}
	return &Store{State: state, catalog: catalog}
}

// AddMessage appends a message to the log and returns its index.
func (s *Store) AddMessage(role Role, content string, now time.Time) int {
	s.State.Messages = append(s.State.Messages, Message{
		Role:      role,
		Content:   content,
		Timestamp: now,
	})
	s.State.LastUpdated = now
	return len(s.State.Messages) - 1
}

// RecentMessages returns the last n messages (fewer if the log is shorter).
func (s *Store) RecentMessages(n int) []Message {
	msgs := s.State.Messages
	if len(msgs) <= n {
		return msgs
	}
	return msgs[len(msgs)-n:]
}

// UpdateBucket validates value against the bucket's validator and, on
// success, stores it: replacing the single entry for a single-value bucket,
// or appending (evicting the oldest past MaxEntries) for a multi-value one.
// Normalization is the caller's job. For a multi-value bucket, a value the
// list validator rejects is still accepted as one entry when it is a
// non-empty text item or a social profile with a platform. It returns false
// without mutating state if the value is rejected.
func (s *Store) UpdateBucket(id bucket.ID, value Value, confidence float64, sourceMessageIndex int, isCorrection bool, now time.Time) bool {
	def, ok := s.catalog.Get(id)
	if !ok {
		return false
	}
	raw := value.Raw()
	valid := def.Validate(raw)
	if !valid && def.AllowMultiple {
		switch item := raw.(type) {
		case string:
			valid = strings.TrimSpace(item) != ""
		case bucket.SocialProfile:
			valid = item.Platform != ""
		}
	}
	if !valid {
		return false
	}

	entry := BucketEntry{
		ID:                 xid.New().String(),
		Value:              value,
		Confidence:         confidence,
		Timestamp:          now,
		SourceMessageIndex: sourceMessageIndex,
		IsCorrected:        isCorrection,
	}

	existing := s.State.Buckets[id]
	if def.AllowMultiple {
		entry.PreviousValue = nil
		existing = append(existing, entry)
		if def.MaxEntries > 0 && len(existing) > def.MaxEntries {
			existing = existing[len(existing)-def.MaxEntries:]
		}
		s.State.Buckets[id] = existing
	} else {
		if len(existing) > 0 {
			prev := existing[0].Value
			entry.PreviousValue = &prev
			entry.IsCorrected = isCorrection || entry.IsCorrected
		}
		s.State.Buckets[id] = []BucketEntry{entry}
	}

	if isCorrection && len(existing) > 0 {
		// handled by callers recording Correction records with full context
	}
	delete(s.State.SkippedOptionalBuckets, id)
	s.State.LastUpdated = now
	return true
}

// GetValue returns the current value(s) for a bucket: the single entry's
// Value for a single-value bucket, or all entries' Values for a
// multi-value one. The second return is false if the bucket is empty.
func (s *Store) GetValue(id bucket.ID) ([]Value, bool) {
	entries := s.State.Buckets[id]
	if len(entries) == 0 {
		return nil, false
	}
	out := make([]Value, len(entries))
	for i, e := range entries {
		out[i] = e.Value
	}
	return out, true
}

// Entries returns the raw BucketEntry slice for a bucket.
func (s *Store) Entries(id bucket.ID) []BucketEntry {
	return s.State.Buckets[id]
}

// EmptyRequired returns the required bucket ids with no entries, in
// catalog order.
func (s *Store) EmptyRequired() []bucket.ID {
	var out []bucket.ID
	for _, id := range s.catalog.RequiredIDs() {
		if len(s.State.Buckets[id]) == 0 {
			out = append(out, id)
		}
	}
	return out
}

// EmptyOptional returns the optional bucket ids with no entries and not
// marked skipped, in catalog order.
func (s *Store) EmptyOptional() []bucket.ID {
	var out []bucket.ID
	for _, id := range s.catalog.OptionalIDs() {
		if len(s.State.Buckets[id]) == 0 && !s.State.SkippedOptionalBuckets[id] {
			out = append(out, id)
		}
	}
	return out
}

// Filled returns every bucket id with at least one entry, in catalog order.
func (s *Store) Filled() []bucket.ID {
	var out []bucket.ID
	for _, d := range s.catalog.List() {
		if len(s.State.Buckets[d.ID]) > 0 {
			out = append(out, d.ID)
		}
	}
	return out
}

// MarkOptionalSkipped records that the user explicitly declined an
// optional bucket. It is a no-op (and never overrides a stored value) for
// required buckets or buckets that already hold a value.
func (s *Store) MarkOptionalSkipped(id bucket.ID) {
	def, ok := s.catalog.Get(id)
	if !ok || def.Required {
		return
	}
	if len(s.State.Buckets[id]) > 0 {
		return
	}
	s.State.SkippedOptionalBuckets[id] = true
}

// SetAwaitingConfirmation sets the review/confirmation flag, keeping
// IsReviewing consistent with the §3 invariant
// (awaiting_confirmation == profile_review implies is_reviewing).
func (s *Store) SetAwaitingConfirmation(flag ConfirmationFlag) {
	s.State.AwaitingConfirmation = flag
	if flag == ConfirmationProfileReview {
		s.State.IsReviewing = true
	}
}

// RecordCorrection appends a correction record.
func (s *Store) RecordCorrection(c Correction) {
	s.State.UserCorrections = append(s.State.UserCorrections, c)
}

// Catalog returns the catalog this store validates against.
func (s *Store) Catalog() *bucket.Catalog { return s.catalog }
