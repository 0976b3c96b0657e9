package orchestrator

import "errors"

// Node-level sentinel errors, grouped the way pkg/agents/errors.go groups
// the teacher's domain errors. None of these ever cross the Process
// boundary - every node that can fail recovers locally per spec.md §7 and
// folds the failure into error_count instead.
var (
	ErrClassifyNode = errors.New("orchestrator: classify node failed")
	ErrUpdateNode   = errors.New("orchestrator: update_buckets node failed")
	ErrRespondNode  = errors.New("orchestrator: respond node failed")
)

// MaxErrorsBeforeFinalMessage mirrors the "error_count > 3" threshold in
// spec.md §4.9: past this many accumulated node failures in a session, the
// error node stops apologizing generically and tells the user their state
// was saved.
const MaxErrorsBeforeFinalMessage = 3
