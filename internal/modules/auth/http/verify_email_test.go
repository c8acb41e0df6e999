package http

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NitinS47/duk/internal/modules/auth/domain"
)

func TestVerifyEmail_PromotesPending(t *testing.T) {
	env := newTestEnv(t)
	token := env.signUp(t, "a@x.com", "Jane Doe", "secret1")

	resp := env.do(t, "GET", "/api/auth/verify-email/"+token, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, sessionCookieValue(resp), "verification must log the user in")

	body := decode(t, resp)
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "a@x.com", user["email"])
	assert.Equal(t, true, user["isVerified"])
	assert.Equal(t, false, user["isOnboarded"])
	assert.NotContains(t, user, "password")

	a, err := env.accounts.GetByEmail("a@x.com")
	require.NoError(t, err)
	assert.True(t, a.IsVerified)
	assert.NotEmpty(t, a.AvatarURL)

	// Token is single-use: the pending record is gone.
	_, err = env.pending.GetByEmail("a@x.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	require.Len(t, env.chat.upserts, 1)
	assert.Equal(t, a.ID, env.chat.upserts[0])
}

func TestVerifyEmail_SecondUseRejected(t *testing.T) {
	env := newTestEnv(t)
	token := env.signUp(t, "a@x.com", "Jane Doe", "secret1")

	resp := env.do(t, "GET", "/api/auth/verify-email/"+token, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, "GET", "/api/auth/verify-email/"+token, nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid verification token", decode(t, resp)["message"])
}

func TestVerifyEmail_UnknownToken(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, "GET", "/api/auth/verify-email/no-such-token", nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid verification token", decode(t, resp)["message"])
}

func TestVerifyEmail_ExpiredToken(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.pending.Create(domain.PendingRegistration{
		Email: "a@x.com", FullName: "Jane Doe", PasswordHash: "h",
		Token: "tok-expired", ExpiresAt: time.Now().UTC().Add(-time.Minute),
	}))

	resp := env.do(t, "GET", "/api/auth/verify-email/tok-expired", nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Verification token has expired", decode(t, resp)["message"])

	// An expired record is never promotable.
	exists, _ := env.accounts.ExistsByEmail("a@x.com")
	assert.False(t, exists)
}

func TestVerifyEmail_AlreadyVerified(t *testing.T) {
	env := newTestEnv(t)
	token := env.signUp(t, "a@x.com", "Jane Doe", "secret1")

	_, err := env.accounts.Create(domain.CreateAccountParams{
		Email: "a@x.com", FullName: "Jane", PasswordHash: "h", IsVerified: true,
	})
	require.NoError(t, err)

	resp := env.do(t, "GET", "/api/auth/verify-email/"+token, nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Email already verified", decode(t, resp)["message"])

	// Stale pending record is purged as a side effect.
	_, err = env.pending.GetByEmail("a@x.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVerifyEmail_ProvisioningFailureRollsBackAndIsRetryable(t *testing.T) {
	env := newTestEnv(t)
	token := env.signUp(t, "a@x.com", "Jane Doe", "secret1")

	env.chat.err = errors.New("stream unavailable")
	resp := env.do(t, "GET", "/api/auth/verify-email/"+token, nil, "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Failed to create user profile. Please try again.", decode(t, resp)["message"])
	assert.Empty(t, sessionCookieValue(resp))

	// The account rolls back; the pending record survives for a retry.
	exists, _ := env.accounts.ExistsByEmail("a@x.com")
	assert.False(t, exists)
	_, err := env.pending.GetByEmail("a@x.com")
	require.NoError(t, err)

	env.chat.err = nil
	resp = env.do(t, "GET", "/api/auth/verify-email/"+token, nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestVerifyEmail_AccountScopedToken(t *testing.T) {
	env := newTestEnv(t)
	a, err := env.accounts.Create(domain.CreateAccountParams{
		Email: "a@x.com", FullName: "Jane", PasswordHash: "h", IsVerified: false,
	})
	require.NoError(t, err)
	require.NoError(t, env.accounts.SetVerificationToken(a.ID, "acct-token", time.Now().UTC().Add(time.Hour)))

	resp := env.do(t, "GET", "/api/auth/verify-email/acct-token", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, sessionCookieValue(resp))

	got, err := env.accounts.GetByID(a.ID)
	require.NoError(t, err)
	assert.True(t, got.IsVerified)
	assert.Nil(t, got.VerificationToken, "token is consumed on use")
}

func TestVerifyOTP(t *testing.T) {
	env := newTestEnv(t)
	token := env.signUp(t, "a@x.com", "Jane Doe", "secret1")

	resp := env.do(t, "POST", "/api/auth/verify-otp", map[string]string{
		"email": "a@x.com", "otp": "wrong-code",
	}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid verification code", decode(t, resp)["message"])

	resp = env.do(t, "POST", "/api/auth/verify-otp", map[string]string{
		"email": "a@x.com", "otp": token,
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, sessionCookieValue(resp))

	a, err := env.accounts.GetByEmail("a@x.com")
	require.NoError(t, err)
	assert.True(t, a.IsVerified)
}
