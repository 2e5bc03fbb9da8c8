package feed

import (
	"context"
	"time"
)

// Event is one entry in a user's merged social timeline. It is a
// projection produced at query time, never stored.
type Event struct {
	UserID       string    `json:"user_id"`
	Username     string    `json:"username"`
	ProfilePhoto string    `json:"profile_photo"`
	PrimaryText  string    `json:"primary_text"`
	ItemType     string    `json:"activity_item_type"`
	TargetID     string    `json:"target_id"`
	TargetImage  string    `json:"target_image"`
	Timestamp    time.Time `json:"timestamp"`
}

// Item types carried by feed events.
const (
	ItemTypeGame     = "games"
	ItemTypeComment  = "comments"
	ItemTypeSession  = "game_session"
	ItemTypeFavorite = "favorites"
)

// SessionPlay is a raw play-session row for a followed user. The
// aggregator reduces these to one first-play event per (user, game)
// pair.
type SessionPlay struct {
	UserID        string
	Username      string
	ProfilePhoto  string
	GameID        string
	GameTitle     string
	GameThumbnail string
	CreatedAt     time.Time
}

// Source supplies the four independent event streams for everyone the
// given follower follows, bounded to activity at or after since.
type Source interface {
	PublishedGames(ctx context.Context, followerID string, since time.Time) ([]Event, error)
	Comments(ctx context.Context, followerID string, since time.Time) ([]Event, error)
	SessionPlays(ctx context.Context, followerID string, since time.Time) ([]SessionPlay, error)
	Favorites(ctx context.Context, followerID string, since time.Time) ([]Event, error)
}
