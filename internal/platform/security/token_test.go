package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewToken(t *testing.T) {
	token, expiresAt, err := NewToken(15 * time.Minute)
	require.NoError(t, err)

	// 32 random bytes, base64 raw-url encoded.
	assert.Len(t, token, 43)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 2*time.Second)
}

func TestNewToken_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, _, err := NewToken(time.Minute)
		require.NoError(t, err)
		assert.False(t, seen[token], "token issued twice")
		seen[token] = true
	}
}
