package session

import "errors"

var (
	// ErrSessionNotFound is returned by ClearSession for an id the registry
	// holds no live entry for.
	ErrSessionNotFound = errors.New("session: not found")

	// ErrConcurrentTurn is returned when a second call for a session_id
	// arrives while that session's graph is still running the previous
	// message (spec.md §5: "reject or queue a second concurrent call").
	ErrConcurrentTurn = errors.New("session: a turn is already in progress for this session")
)
