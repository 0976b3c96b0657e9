package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	cronlib "github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/pglaunch/profileengine/pkg/bucket"
	"github.com/pglaunch/profileengine/pkg/bucketmgr"
	"github.com/pglaunch/profileengine/pkg/convstate"
	"github.com/pglaunch/profileengine/pkg/orchestrator"
)

// DefaultIdleEvictionWindow is how long a session may sit untouched before
// a scheduled scan reclaims it (spec.md §4.10: "idle > N hours (default
// 24)").
const DefaultIdleEvictionWindow = 24 * time.Hour

// defaultEvictionSchedule runs the scan hourly; the scan itself only acts
// on sessions past idleWindow, so an hourly cadence is plenty granular
// without needing a cron expression finer than the teacher's own
// heartbeat intervals.
const defaultEvictionSchedule = "@hourly"

// entry is one session's live state plus the bookkeeping the registry
// needs: its own mutex enforcing single-threaded-per-session execution
// (spec.md §5), and the wall-clock of last activity for eviction.
type entry struct {
	mu         sync.Mutex
	store      *convstate.Store
	lastActive time.Time
}

// Registry holds every live session's graph state, restoring from a
// caller-supplied blob when nothing is live and evicting idle entries on
// a schedule. It is the only stateful, long-lived object the rest of this
// module's packages are driven through.
type Registry struct {
	graph   *orchestrator.Graph
	catalog *bucket.Catalog
	log     zerolog.Logger

	idleWindow time.Duration
	cron       *cronlib.Cron

	mu       sync.Mutex
	sessions map[string]*entry
}

// New builds a Registry around graph. idleWindow <= 0 falls back to
// DefaultIdleEvictionWindow.
func New(graph *orchestrator.Graph, catalog *bucket.Catalog, idleWindow time.Duration, log zerolog.Logger) *Registry {
	if idleWindow <= 0 {
		idleWindow = DefaultIdleEvictionWindow
	}
	return &Registry{
		graph:      graph,
		catalog:    catalog,
		log:        log.With().Str("component", "session").Logger(),
		idleWindow: idleWindow,
		sessions:   make(map[string]*entry),
	}
}

// StartEvictionScan schedules the idle-session sweep via robfig/cron/v3.
// Call Stop when the registry should shut down cleanly.
func (r *Registry) StartEvictionScan() {
	r.cron = cronlib.New()
	_, err := r.cron.AddFunc(defaultEvictionSchedule, r.evictIdle)
	if err != nil {
		r.log.Error().Err(err).Msg("failed to schedule session eviction scan")
		return
	}
	r.cron.Start()
}

// Stop halts the eviction scan, if one was started.
func (r *Registry) Stop() {
	if r.cron != nil {
		ctx := r.cron.Stop()
		<-ctx.Done()
	}
}

// lookupOrCreate resolves the live or restorable entry for sessionID,
// implementing spec.md §4.10 step 1: live session first, then a restored
// blob, then a brand new one. The registry lock is held only long enough
// to find-or-insert the entry; the entry's own lock then serializes the
// actual turn, so two different sessions never block each other.
func (r *Registry) lookupOrCreate(sessionID, personID, campaignID string, priorStateBlob []byte, now time.Time) (*entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.sessions[sessionID]; ok {
		return e, nil
	}

	if len(priorStateBlob) > 0 {
		state, err := convstate.Deserialize(priorStateBlob)
		if err != nil {
			return nil, fmt.Errorf("session: restore %s: %w", sessionID, err)
		}
		e := &entry{store: convstate.FromState(r.catalog, state), lastActive: now}
		r.sessions[sessionID] = e
		return e, nil
	}

	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	e := &entry{store: convstate.New(r.catalog, sessionID, personID, campaignID, now), lastActive: now}
	r.sessions[sessionID] = e
	return e, nil
}

// ProcessMessage implements spec.md §6's process_message: resolve the
// session, run one turn of the orchestrator graph under that session's own
// lock, then serialize the resulting state and compute its summary.
//
// ErrConcurrentTurn is returned instead of blocking when a turn is already
// in flight for this session_id, matching §5's "reject or queue a second
// concurrent call" — this registry chooses reject, leaving queuing (if a
// caller wants it) to whatever transport sits in front of this core.
func (r *Registry) ProcessMessage(ctx context.Context, sessionID, personID, campaignID, message string, priorStateBlob []byte) (Result, error) {
	now := time.Now()
	e, err := r.lookupOrCreate(sessionID, personID, campaignID, priorStateBlob, now)
	if err != nil {
		return Result{}, err
	}

	if !e.mu.TryLock() {
		return Result{}, ErrConcurrentTurn
	}
	defer e.mu.Unlock()

	reply := r.graph.Process(ctx, e.store, message, now)
	e.lastActive = now

	blob, err := convstate.Serialize(e.store.State)
	if err != nil {
		return Result{}, fmt.Errorf("session: serialize %s: %w", e.store.State.SessionID, err)
	}

	return Result{
		ReplyText:        reply,
		NewStateBlob:     blob,
		ExtractedSummary: summarize(e.store),
	}, nil
}

// GetSummary implements spec.md §6's get_summary for a caller that only
// has a serialized blob, no live session - e.g. a dashboard reading state
// out of its own persistence layer between turns.
func (r *Registry) GetSummary(stateBlob []byte) (Summary, error) {
	state, err := convstate.Deserialize(stateBlob)
	if err != nil {
		return Summary{}, fmt.Errorf("session: get summary: %w", err)
	}
	return summarize(convstate.FromState(r.catalog, state)), nil
}

// ClearSession drops a session's live state immediately, independent of
// the eviction schedule (spec.md §4.10).
func (r *Registry) ClearSession(sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[sessionID]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, sessionID)
	return nil
}

// evictIdle removes every session whose lastActive is older than
// idleWindow. Each entry's own lock is taken (non-blocking) before
// removal so a session mid-turn is never evicted out from under it.
func (r *Registry) evictIdle() {
	cutoff := time.Now().Add(-r.idleWindow)

	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for id, e := range r.sessions {
		if e.lastActive.After(cutoff) {
			continue
		}
		if !e.mu.TryLock() {
			continue
		}
		delete(r.sessions, id)
		e.mu.Unlock()
		evicted++
	}
	if evicted > 0 {
		r.log.Info().Int("count", evicted).Msg("evicted idle sessions")
	}
}

func summarize(store *convstate.Store) Summary {
	cat := store.Catalog()
	total := len(cat.List())
	filled := store.Filled()
	emptyRequired := store.EmptyRequired()

	percentage := 0.0
	if total > 0 {
		percentage = float64(len(filled)) / float64(total) * 100
	}

	return Summary{
		CompletionPercentage: percentage,
		FilledCount:          len(filled),
		Total:                total,
		EmptyRequired:        emptyRequired,
		KeyFields:            keyFields(store),
		QualityScores:        bucketmgr.QualityScores(store),
	}
}

func keyFields(store *convstate.Store) KeyFields {
	get := func(id bucket.ID) string {
		values, ok := store.GetValue(id)
		if !ok || len(values) == 0 {
			return ""
		}
		return values[0].String()
	}
	return KeyFields{
		Name:    get(bucket.FullName),
		Email:   get(bucket.Email),
		Role:    get(bucket.CurrentRole),
		Company: get(bucket.Company),
	}
}
