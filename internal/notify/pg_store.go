package notify

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/tristanguckenberger/srcdoc-server/internal/db"
)

// PGStore persists notifications in Postgres.
type PGStore struct {
	db *db.DB
}

func NewPGStore(db *db.DB) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Create(ctx context.Context, in Input) (*Notification, error) {
	var n Notification
	var entityID, entityType sql.NullString

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO notifications (recipient_id, sender_id, type, entity_id, entity_type, message)
		VALUES ($1, $2, $3, NULLIF($4, '')::uuid, NULLIF($5, ''), $6)
		RETURNING id, recipient_id, sender_id, type, entity_id, entity_type, message, read, created_at
	`,
		in.Recipient,
		in.Sender,
		in.Type,
		in.EntityID,
		in.EntityType,
		in.Message,
	).Scan(
		&n.ID,
		&n.Recipient,
		&n.Sender,
		&n.Type,
		&entityID,
		&entityType,
		&n.Message,
		&n.Read,
		&n.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("notify: insert failed: %w", err)
	}

	n.EntityID = entityID.String
	n.EntityType = entityType.String
	return &n, nil
}

func (s *PGStore) ListByRecipient(ctx context.Context, recipient string, limit, offset int) ([]Notification, int, error) {
	var total int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM notifications WHERE recipient_id = $1
	`, recipient).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT n.id, n.recipient_id, n.sender_id, n.type, n.entity_id, n.entity_type,
		       n.message, n.read, n.created_at,
		       sender.username, sender.profile_photo
		FROM notifications n
		JOIN users AS sender ON n.sender_id = sender.id
		WHERE n.recipient_id = $1
		ORDER BY n.created_at DESC
		LIMIT $2 OFFSET $3
	`, recipient, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Notification
	for rows.Next() {
		var n Notification
		var entityID, entityType, photo sql.NullString
		if err := rows.Scan(
			&n.ID,
			&n.Recipient,
			&n.Sender,
			&n.Type,
			&entityID,
			&entityType,
			&n.Message,
			&n.Read,
			&n.CreatedAt,
			&n.SenderUsername,
			&photo,
		); err != nil {
			return nil, 0, err
		}
		n.EntityID = entityID.String
		n.EntityType = entityType.String
		n.SenderProfilePhoto = photo.String
		out = append(out, n)
	}

	return out, total, rows.Err()
}

func (s *PGStore) MarkRead(ctx context.Context, recipient string, ids []string) ([]Notification, error) {
	rows, err := s.db.QueryContext(ctx, `
		UPDATE notifications
		SET read = true
		WHERE id = ANY($1::uuid[]) AND recipient_id = $2
		RETURNING id, recipient_id, sender_id, type, entity_id, entity_type, message, read, created_at
	`, pq.Array(ids), recipient)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Notification
	for rows.Next() {
		var n Notification
		var entityID, entityType sql.NullString
		if err := rows.Scan(
			&n.ID,
			&n.Recipient,
			&n.Sender,
			&n.Type,
			&entityID,
			&entityType,
			&n.Message,
			&n.Read,
			&n.CreatedAt,
		); err != nil {
			return nil, err
		}
		n.EntityID = entityID.String
		n.EntityType = entityType.String
		out = append(out, n)
	}

	return out, rows.Err()
}
