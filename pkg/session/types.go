// Package session implements the registry described in spec.md §4.10: it
// holds the live, in-memory graph state for each active session_id,
// restoring from a caller-supplied serialized blob when nothing is live,
// serializes state back out after every turn, and evicts idle sessions on
// a schedule. It is the only package in this module that owns a clock
// (the eviction cron) and cross-session locking.
package session

import "github.com/pglaunch/profileengine/pkg/bucket"

// KeyFields are always present in a Summary, even empty, matching the
// original implementation's db_summary_builder.py behavior (SPEC_FULL.md
// §12 item 10): callers get a stable JSON shape to read regardless of how
// much of the profile is filled in.
type KeyFields struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Company string `json:"company"`
}

// Summary is the result of GetSummary (spec.md §6 get_summary).
type Summary struct {
	CompletionPercentage float64               `json:"completion_percentage"`
	FilledCount          int                   `json:"filled_count"`
	Total                int                   `json:"total"`
	EmptyRequired        []bucket.ID           `json:"empty_required"`
	KeyFields            KeyFields             `json:"key_fields"`
	QualityScores        map[bucket.ID]float64 `json:"quality_scores"`
}

// Result is what ProcessMessage returns: the reply to show the user, the
// new opaque state blob the caller is responsible for persisting, and a
// summary computed from the same post-turn state (spec.md §6
// process_message's three-tuple).
type Result struct {
	ReplyText        string
	NewStateBlob     []byte
	ExtractedSummary Summary
}
