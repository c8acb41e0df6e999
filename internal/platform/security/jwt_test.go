package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionManager_IssueAndParse(t *testing.T) {
	sm := NewSessionManager("test-secret", time.Hour)

	token, exp, err := sm.Issue("account-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 2*time.Second)

	id, err := sm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "account-1", id)
}

func TestSessionManager_WrongSecret(t *testing.T) {
	token, _, err := NewSessionManager("secret-a", time.Hour).Issue("account-1")
	require.NoError(t, err)

	_, err = NewSessionManager("secret-b", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrSessionInvalid)
}

func TestSessionManager_Expired(t *testing.T) {
	token, _, err := NewSessionManager("test-secret", -time.Minute).Issue("account-1")
	require.NoError(t, err)

	_, err = NewSessionManager("test-secret", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrSessionInvalid)
}

func TestSessionManager_Garbage(t *testing.T) {
	_, err := NewSessionManager("test-secret", time.Hour).Parse("not-a-token")
	assert.ErrorIs(t, err, ErrSessionInvalid)
}
