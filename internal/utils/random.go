package utils

import (
	"crypto/rand"
	"encoding/base64"
)

// RandomString returns a URL-safe random identifier fragment. Used for
// the anonymous player identities attached to unauthenticated sessions.
func RandomString(bytes int) string {
	b := make([]byte, bytes)
	rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
