package playsession

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/tristanguckenberger/srcdoc-server/internal/db"
)

// uniqueViolation is the Postgres error code for a unique constraint
// violation.
const uniqueViolation = "23505"

// mapActivityConflict translates a unique-violation on
// game_user_activity_action_unique into the matching conflict
// sentinel. Two racing inserts of the same action both pass the state
// check, so the loser surfaces here instead.
func mapActivityConflict(err error, action Action) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != uniqueViolation {
		return err
	}
	switch action {
	case ActionStart:
		return ErrDuplicateStart
	case ActionStop:
		return ErrDuplicateStop
	default:
		return err
	}
}

// PGStore persists sessions and activities in Postgres.
type PGStore struct {
	db *db.DB
}

func NewPGStore(db *db.DB) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) GameExists(ctx context.Context, gameID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM games WHERE id = $1)
	`, gameID).Scan(&exists)
	return exists, err
}

func (s *PGStore) CreateSession(ctx context.Context, gameID, userID string) (*Session, error) {
	var sess Session
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO game_session (game_id, user_id)
		VALUES ($1, $2)
		RETURNING game_session_id, game_id, user_id, session_total_time, session_total_score, created_at, updated_at
	`, gameID, userID).Scan(
		&sess.ID,
		&sess.GameID,
		&sess.UserID,
		&sess.TotalTime,
		&sess.TotalScore,
		&sess.CreatedAt,
		&sess.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *PGStore) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	var sess Session
	err := s.db.QueryRowContext(ctx, `
		SELECT game_session_id, game_id, user_id, session_total_time, session_total_score, created_at, updated_at
		FROM game_session
		WHERE game_session_id = $1
	`, sessionID).Scan(
		&sess.ID,
		&sess.GameID,
		&sess.UserID,
		&sess.TotalTime,
		&sess.TotalScore,
		&sess.CreatedAt,
		&sess.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // not found
	}
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *PGStore) ListSessionsByUser(ctx context.Context, userID string) ([]Session, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT game_session_id, game_id, user_id, session_total_time, session_total_score, created_at, updated_at
		FROM game_session
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var sess Session
		if err := rows.Scan(
			&sess.ID,
			&sess.GameID,
			&sess.UserID,
			&sess.TotalTime,
			&sess.TotalScore,
			&sess.CreatedAt,
			&sess.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

func (s *PGStore) UpdateSessionTotals(ctx context.Context, sessionID string, totalTime *string, totalScore *int64) (*Session, error) {
	var sess Session
	err := s.db.QueryRowContext(ctx, `
		UPDATE game_session
		SET session_total_time = $1, session_total_score = $2, updated_at = NOW()
		WHERE game_session_id = $3
		RETURNING game_session_id, game_id, user_id, session_total_time, session_total_score, created_at, updated_at
	`, totalTime, totalScore, sessionID).Scan(
		&sess.ID,
		&sess.GameID,
		&sess.UserID,
		&sess.TotalTime,
		&sess.TotalScore,
		&sess.CreatedAt,
		&sess.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *PGStore) CreateActivity(ctx context.Context, sessionID string, action Action) (*Activity, error) {
	var a Activity
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO game_user_activity (game_session_id, action)
		VALUES ($1, $2)
		RETURNING game_user_activity_id, game_session_id, action, created_at
	`, sessionID, string(action)).Scan(
		&a.ID,
		&a.SessionID,
		&a.Action,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, mapActivityConflict(err, action)
	}
	return &a, nil
}

func (s *PGStore) ActivitiesBySession(ctx context.Context, sessionID string) ([]Activity, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT game_user_activity_id, game_session_id, action, created_at
		FROM game_user_activity
		WHERE game_session_id = $1
		ORDER BY created_at ASC
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Activity
	for rows.Next() {
		var a Activity
		if err := rows.Scan(&a.ID, &a.SessionID, &a.Action, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
