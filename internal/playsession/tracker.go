package playsession

import (
	"context"

	"github.com/tristanguckenberger/srcdoc-server/internal/logger"
)

// Tracker models a play session as a Start -> Stop sequence and
// computes elapsed time when a session is finalized. Pairing is
// enforced against stored activity rows, not client timing.
type Tracker struct {
	store          Store
	synthesizeStop bool
}

func NewTracker(store Store, synthesizeStop bool) *Tracker {
	return &Tracker{
		store:          store,
		synthesizeStop: synthesizeStop,
	}
}

// CreateSession opens a new session for gameID owned by userID (which
// may be a generated anonymous identity).
func (t *Tracker) CreateSession(ctx context.Context, gameID, userID string) (*Session, error) {
	ok, err := t.store.GameExists(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrGameNotFound
	}
	return t.store.CreateSession(ctx, gameID, userID)
}

// RecordActivity records a Start or Stop marker for the session,
// rejecting transitions the current state does not allow. The first
// successful Start's timestamp is never rewritten.
func (t *Tracker) RecordActivity(ctx context.Context, sessionID string, action Action) (*Activity, error) {
	sess, err := t.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrSessionNotFound
	}

	activities, err := t.store.ActivitiesBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if _, err := StateOf(activities).Transition(action); err != nil {
		return nil, err
	}

	return t.store.CreateActivity(ctx, sessionID, action)
}

// Finalize writes the session's total time and score. An explicit
// total time is written verbatim; otherwise the elapsed time between
// the stored Start and Stop markers is computed. A missing Stop is
// synthesized at now when configured to, and is otherwise a conflict.
func (t *Tracker) Finalize(ctx context.Context, sessionID string, explicitTotalTime *string, explicitScore *int64) (*Session, error) {
	sess, err := t.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrSessionNotFound
	}

	activities, err := t.store.ActivitiesBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	start, hasStart := findActivity(activities, ActionStart)
	if !hasStart {
		return nil, ErrStartRequired
	}

	totalTime := explicitTotalTime
	if totalTime == nil {
		stop, hasStop := findActivity(activities, ActionStop)
		if !hasStop {
			if !t.synthesizeStop {
				return nil, ErrStopRequired
			}
			synthesized, err := t.store.CreateActivity(ctx, sessionID, ActionStop)
			if err != nil {
				return nil, err
			}
			logger.Info("synthesized stop activity on finalize", map[string]any{
				"game_session_id": sessionID,
			})
			stop = *synthesized
		}

		formatted := FormatElapsed(start.CreatedAt, stop.CreatedAt)
		totalTime = &formatted
	}

	score := explicitScore
	if score == nil {
		score = sess.TotalScore
	}

	return t.store.UpdateSessionTotals(ctx, sessionID, totalTime, score)
}

func findActivity(activities []Activity, action Action) (Activity, bool) {
	for _, a := range activities {
		if a.Action == action {
			return a, true
		}
	}
	return Activity{}, false
}
