package playsession

import (
	"context"
	"time"
)

// Session is one instance of a user playing one game, identified
// independently of the Start/Stop activities that describe its timing.
type Session struct {
	ID         string    `json:"game_session_id"`
	GameID     string    `json:"game_id"`
	UserID     string    `json:"user_id"`
	TotalTime  *string   `json:"session_total_time"`
	TotalScore *int64    `json:"session_total_score"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Activity is a timestamped Start or Stop marker belonging to exactly
// one session. Rows are never mutated after creation.
type Activity struct {
	ID        string    `json:"game_user_activity_id"`
	SessionID string    `json:"game_session_id"`
	Action    Action    `json:"action"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists sessions and their activity markers.
type Store interface {
	GameExists(ctx context.Context, gameID string) (bool, error)

	CreateSession(ctx context.Context, gameID, userID string) (*Session, error)
	GetSession(ctx context.Context, sessionID string) (*Session, error)
	ListSessionsByUser(ctx context.Context, userID string) ([]Session, error)
	UpdateSessionTotals(ctx context.Context, sessionID string, totalTime *string, totalScore *int64) (*Session, error)

	CreateActivity(ctx context.Context, sessionID string, action Action) (*Activity, error)
	ActivitiesBySession(ctx context.Context, sessionID string) ([]Activity, error)
}
