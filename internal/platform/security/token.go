package security

import (
	"crypto/rand"
	"encoding/base64"
	"time"
)

const tokenBytes = 32 // 256 bits

// NewToken returns an opaque single-use token and its absolute expiry.
// Reissuing for the same subject overwrites the previous token, so
// collisions are not an error condition worth handling.
func NewToken(ttl time.Duration) (string, time.Time, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", time.Time{}, err
	}
	return base64.RawURLEncoding.EncodeToString(buf), time.Now().UTC().Add(ttl), nil
}
