package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"
)

// Token is an opaque bearer credential resolving to a user identity.
// It carries identity pointers only, no auth-protocol state.
type Token struct {
	TokenID   string    // the bearer value handed to the client
	UserID    string    // references users.id
	ExpiresAt time.Time // absolute expiry time
}

// Store defines how bearer tokens are stored and resolved.
// Implementations (e.g., Redis) must remain stateless and opaque.
type Store interface {
	Create(ctx context.Context, t Token) error
	Get(ctx context.Context, tokenID string) (*Token, error)
	Delete(ctx context.Context, tokenID string) error
}

// GenerateID generates a cryptographically secure token ID.
// 32 bytes = 256 bits of entropy.
func GenerateID() (string, error) {

	const size = 32 // 256 bits

	b := make([]byte, size)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("auth: failed to generate token id: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(b), nil

}
