package notify

import (
	"context"
	"time"
)

// Notification is the durable record of a social event directed at one
// recipient. It exists whether or not it was ever delivered live.
type Notification struct {
	ID         string    `json:"id"`
	Recipient  string    `json:"recipient_id"`
	Sender     string    `json:"sender_id"`
	Type       string    `json:"type"`
	EntityID   string    `json:"entity_id"`
	EntityType string    `json:"entity_type"`
	Message    string    `json:"message"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`

	// Populated on list reads only.
	SenderUsername     string `json:"sender_username,omitempty"`
	SenderProfilePhoto string `json:"sender_profile_photo,omitempty"`
}

// Input describes a notification to be created.
type Input struct {
	Recipient  string
	Sender     string
	Type       string
	EntityID   string
	EntityType string
	Message    string
}

// Store defines how notifications are persisted and read back.
type Store interface {
	Create(ctx context.Context, in Input) (*Notification, error)
	ListByRecipient(ctx context.Context, recipient string, limit, offset int) ([]Notification, int, error)
	MarkRead(ctx context.Context, recipient string, ids []string) ([]Notification, error)
}
