package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuard(t *testing.T) {
	env := newTestEnv(t)
	a := env.createAccount(t, "a@x.com", "secret1", true)
	valid, _, err := env.sessions.Issue(a.ID)
	require.NoError(t, err)
	orphan, _, err := env.sessions.Issue("no-such-id")
	require.NoError(t, err)

	tests := []struct {
		name    string
		cookie  string
		status  int
		message string
	}{
		{"no token", "", http.StatusUnauthorized, "Not authorized, no token"},
		{"garbage token", "garbage", http.StatusUnauthorized, "Not authorized, token failed"},
		{"orphan token", orphan, http.StatusUnauthorized, "Not authorized, user not found"},
		{"valid token", valid, http.StatusOK, ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			resp := env.do(t, "GET", "/api/auth/me", nil, test.cookie)
			assert.Equal(t, test.status, resp.StatusCode)
			if test.message != "" {
				assert.Equal(t, test.message, decode(t, resp)["message"])
			}
		})
	}
}

func TestGuard_BearerFallback(t *testing.T) {
	env := newTestEnv(t)
	a := env.createAccount(t, "a@x.com", "secret1", true)
	token, _, err := env.sessions.Issue(a.ID)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMe(t *testing.T) {
	env := newTestEnv(t)
	a := env.createAccount(t, "a@x.com", "secret1", true)
	token, _, err := env.sessions.Issue(a.ID)
	require.NoError(t, err)

	resp := env.do(t, "GET", "/api/auth/me", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	user := decode(t, resp)["user"].(map[string]any)
	assert.Equal(t, "a@x.com", user["email"])
	assert.NotContains(t, user, "password")
}

func TestOnboarding(t *testing.T) {
	env := newTestEnv(t)
	a := env.createAccount(t, "a@x.com", "secret1", true)
	token, _, err := env.sessions.Issue(a.ID)
	require.NoError(t, err)

	// Missing fields are reported by name.
	resp := env.do(t, "POST", "/api/auth/onboarding", fiber.Map{"fullName": "Jane Doe", "bio": "hi"}, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode(t, resp)
	assert.ElementsMatch(t, []any{"interests", "location"}, body["missingFields"])

	resp = env.do(t, "POST", "/api/auth/onboarding", fiber.Map{
		"fullName": "Jane D.", "bio": "hello", "interests": "climbing", "location": "Oslo",
	}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	user := decode(t, resp)["user"].(map[string]any)
	assert.Equal(t, true, user["isOnboarded"])
	assert.Equal(t, "Jane D.", user["fullName"])

	got, err := env.accounts.GetByID(a.ID)
	require.NoError(t, err)
	assert.True(t, got.IsOnboarded)
	assert.Equal(t, "Oslo", got.Location)
	// The chat profile follows the new name.
	assert.Contains(t, env.chat.upserts, a.ID)
}

func TestOnboarding_IgnoresProtectedFields(t *testing.T) {
	env := newTestEnv(t)
	a := env.createAccount(t, "a@x.com", "secret1", false)
	token, _, err := env.sessions.Issue(a.ID)
	require.NoError(t, err)

	resp := env.do(t, "POST", "/api/auth/onboarding", fiber.Map{
		"fullName": "Jane D.", "bio": "hello", "interests": "climbing", "location": "Oslo",
		"isVerified": true, "passwordHash": "evil",
	}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got, err := env.accounts.GetByID(a.ID)
	require.NoError(t, err)
	assert.False(t, got.IsVerified, "onboarding must not flip protected fields")
}
