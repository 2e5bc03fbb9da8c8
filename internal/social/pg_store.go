package social

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tristanguckenberger/srcdoc-server/internal/db"
)

// PGStore is the canonical social-graph store.
type PGStore struct {
	db *db.DB
}

func NewPGStore(db *db.DB) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) GetUser(ctx context.Context, userID string) (*UserSummary, error) {
	var u UserSummary
	var photo sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, profile_photo FROM users WHERE id = $1
	`, userID).Scan(&u.ID, &u.Username, &photo)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u.ProfilePhoto = photo.String
	return &u, nil
}

func (s *PGStore) GetGame(ctx context.Context, gameID string) (*GameSummary, error) {
	var g GameSummary
	var thumbnail sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, title, thumbnail FROM games WHERE id = $1
	`, gameID).Scan(&g.ID, &g.OwnerID, &g.Title, &thumbnail)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	g.Thumbnail = thumbnail.String
	return &g, nil
}

func (s *PGStore) CreateFollow(ctx context.Context, followerID, followingID string) (*Follow, error) {
	var f Follow
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO follows (follower_id, following_id)
		VALUES ($1, $2)
		RETURNING id, follower_id, following_id, created_at
	`, followerID, followingID).Scan(&f.ID, &f.FollowerID, &f.FollowingID, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *PGStore) ListFollowers(ctx context.Context, userID string) ([]UserSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT u.id, u.username, u.profile_photo
		FROM users u
		JOIN follows f ON u.id = f.follower_id
		WHERE f.following_id = $1
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

func (s *PGStore) ListFollowing(ctx context.Context, userID string) ([]UserSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT u.id, u.username, u.profile_photo
		FROM users u
		JOIN follows f ON u.id = f.following_id
		WHERE f.follower_id = $1
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

func (s *PGStore) CreateFavorite(ctx context.Context, userID, gameID string) (*Favorite, error) {
	var f Favorite
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO favorites (user_id, game_id)
		VALUES ($1, $2)
		RETURNING id, user_id, game_id, created_at
	`, userID, gameID).Scan(&f.ID, &f.UserID, &f.GameID, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *PGStore) FindFavorite(ctx context.Context, gameID, userID string) (*Favorite, error) {
	var f Favorite
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, game_id, created_at
		FROM favorites
		WHERE game_id = $1 AND user_id = $2
	`, gameID, userID).Scan(&f.ID, &f.UserID, &f.GameID, &f.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *PGStore) DeleteFavorite(ctx context.Context, favoriteID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM favorites WHERE id = $1`, favoriteID)
	return err
}

func (s *PGStore) CreateComment(ctx context.Context, userID, gameID, text string) (*Comment, error) {
	var c Comment
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO comments (user_id, game_id, comment_text)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, game_id, comment_text, created_at
	`, userID, gameID, text).Scan(&c.ID, &c.UserID, &c.GameID, &c.CommentText, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func scanUsers(rows *sql.Rows) ([]UserSummary, error) {
	var out []UserSummary
	for rows.Next() {
		var u UserSummary
		var photo sql.NullString
		if err := rows.Scan(&u.ID, &u.Username, &photo); err != nil {
			return nil, err
		}
		u.ProfilePhoto = photo.String
		out = append(out, u)
	}
	return out, rows.Err()
}
