package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NitinS47/duk/internal/modules/auth/domain"
	authhttp "github.com/NitinS47/duk/internal/modules/auth/http"
	"github.com/NitinS47/duk/internal/modules/auth/infra"
	"github.com/NitinS47/duk/internal/platform/security"
)

type fakeProvisioner struct {
	err error
}

func (f *fakeProvisioner) UpsertProfile(_ context.Context, _, _, _ string) error { return f.err }

func (f *fakeProvisioner) Token(id string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "chat-token-" + id, nil
}

func setup(t *testing.T, prov *fakeProvisioner) (*fiber.App, string, string) {
	t.Helper()
	accounts := infra.NewMemAccountRepo()
	a, err := accounts.Create(domain.CreateAccountParams{
		Email: "kai@x.com", FullName: "Kai", PasswordHash: "h", IsVerified: true,
	})
	require.NoError(t, err)

	sessions := security.NewSessionManager("test-secret", time.Hour)
	session, _, err := sessions.Issue(a.ID)
	require.NoError(t, err)

	app := fiber.New()
	m := New(Deps{
		Chat:  prov,
		Guard: authhttp.RequireAuth(sessions, accounts),
		Log:   zerolog.Nop(),
	})
	m.Register(app.Group("/api"))
	return app, a.ID, session
}

func TestChatToken(t *testing.T) {
	app, accountID, session := setup(t, &fakeProvisioner{})

	req := httptest.NewRequest("GET", "/api/chat/token", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: session})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "chat-token-"+accountID, body["token"])
}

func TestChatToken_Unauthenticated(t *testing.T) {
	app, _, _ := setup(t, &fakeProvisioner{})

	req := httptest.NewRequest("GET", "/api/chat/token", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestChatToken_ProviderDown(t *testing.T) {
	app, _, session := setup(t, &fakeProvisioner{err: errors.New("stream unreachable")})

	req := httptest.NewRequest("GET", "/api/chat/token", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: session})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Failed to create chat token", body["message"])
}
