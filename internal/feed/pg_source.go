package feed

import (
	"context"
	"database/sql"
	"time"

	"github.com/tristanguckenberger/srcdoc-server/internal/db"
)

// PGSource reads the four activity streams from Postgres.
type PGSource struct {
	db *db.DB
}

func NewPGSource(db *db.DB) *PGSource {
	return &PGSource{db: db}
}

func (s *PGSource) PublishedGames(ctx context.Context, followerID string, since time.Time) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT f.following_id, u.username, u.profile_photo,
		       (u.username || ' published a game'),
		       g.id, g.thumbnail, g.updated_at
		FROM follows f
		JOIN users u ON u.id = f.following_id
		JOIN games g ON f.following_id = g.user_id
		WHERE f.follower_id = $1 AND g.updated_at >= $2
	`, followerID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows, ItemTypeGame)
}

func (s *PGSource) Comments(ctx context.Context, followerID string, since time.Time) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT f.following_id, u.username, u.profile_photo,
		       (u.username || ' left a comment'),
		       c.id, NULL, c.created_at
		FROM follows f
		JOIN users u ON u.id = f.following_id
		JOIN comments c ON f.following_id = c.user_id
		WHERE f.follower_id = $1 AND c.created_at >= $2
	`, followerID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows, ItemTypeComment)
}

func (s *PGSource) SessionPlays(ctx context.Context, followerID string, since time.Time) ([]SessionPlay, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT f.following_id, u.username, u.profile_photo,
		       gs.game_id, g.title, g.thumbnail, gs.created_at
		FROM follows f
		JOIN users u ON u.id = f.following_id
		JOIN game_session gs ON f.following_id::text = gs.user_id
		JOIN games g ON gs.game_id = g.id
		WHERE f.follower_id = $1 AND gs.created_at >= $2
	`, followerID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SessionPlay
	for rows.Next() {
		var p SessionPlay
		var photo, thumbnail sql.NullString
		if err := rows.Scan(
			&p.UserID,
			&p.Username,
			&photo,
			&p.GameID,
			&p.GameTitle,
			&thumbnail,
			&p.CreatedAt,
		); err != nil {
			return nil, err
		}
		p.ProfilePhoto = photo.String
		p.GameThumbnail = thumbnail.String
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PGSource) Favorites(ctx context.Context, followerID string, since time.Time) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT f.following_id, u.username, u.profile_photo,
		       (u.username || ' liked "' || g.title || '"'),
		       fav.game_id, g.thumbnail, fav.created_at
		FROM follows f
		JOIN users u ON u.id = f.following_id
		JOIN favorites fav ON f.following_id = fav.user_id
		JOIN games g ON g.id = fav.game_id
		WHERE f.follower_id = $1 AND fav.created_at >= $2
	`, followerID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows, ItemTypeFavorite)
}

func scanEvents(rows *sql.Rows, itemType string) ([]Event, error) {
	var out []Event
	for rows.Next() {
		var e Event
		var photo, image sql.NullString
		if err := rows.Scan(
			&e.UserID,
			&e.Username,
			&photo,
			&e.PrimaryText,
			&e.TargetID,
			&image,
			&e.Timestamp,
		); err != nil {
			return nil, err
		}
		e.ProfilePhoto = photo.String
		e.TargetImage = image.String
		e.ItemType = itemType
		out = append(out, e)
	}
	return out, rows.Err()
}
