package social

import (
	"context"
	"time"
)

type Follow struct {
	ID          string    `json:"id"`
	FollowerID  string    `json:"follower_id"`
	FollowingID string    `json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type Favorite struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	GameID    string    `json:"game_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Comment struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	GameID      string    `json:"game_id"`
	CommentText string    `json:"comment_text"`
	CreatedAt   time.Time `json:"created_at"`
}

type UserSummary struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	ProfilePhoto string `json:"profile_photo"`
}

type GameSummary struct {
	ID        string `json:"id"`
	OwnerID   string `json:"user_id"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
}

// Store covers the minimal social-graph persistence the notification
// pipeline needs. Absent rows come back as nil, nil.
type Store interface {
	GetUser(ctx context.Context, userID string) (*UserSummary, error)
	GetGame(ctx context.Context, gameID string) (*GameSummary, error)

	CreateFollow(ctx context.Context, followerID, followingID string) (*Follow, error)
	ListFollowers(ctx context.Context, userID string) ([]UserSummary, error)
	ListFollowing(ctx context.Context, userID string) ([]UserSummary, error)

	CreateFavorite(ctx context.Context, userID, gameID string) (*Favorite, error)
	FindFavorite(ctx context.Context, gameID, userID string) (*Favorite, error)
	DeleteFavorite(ctx context.Context, favoriteID string) error

	CreateComment(ctx context.Context, userID, gameID, text string) (*Comment, error)
}
