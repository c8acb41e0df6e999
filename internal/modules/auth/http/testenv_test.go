package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/NitinS47/duk/internal/modules/auth/domain"
	"github.com/NitinS47/duk/internal/modules/auth/infra"
	"github.com/NitinS47/duk/internal/platform/notify"
	"github.com/NitinS47/duk/internal/platform/security"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []notify.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, msg notify.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

type fakeProvisioner struct {
	mu      sync.Mutex
	upserts []string
	err     error
}

func (f *fakeProvisioner) UpsertProfile(_ context.Context, id, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.upserts = append(f.upserts, id)
	return nil
}

func (f *fakeProvisioner) Token(id string) (string, error) { return "chat-" + id, nil }

type testEnv struct {
	app      *fiber.App
	accounts domain.AccountRepo
	pending  domain.PendingRepo
	sender   *fakeSender
	chat     *fakeProvisioner
	sessions *security.SessionManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		accounts: infra.NewMemAccountRepo(),
		pending:  infra.NewMemPendingRepo(),
		sender:   &fakeSender{},
		chat:     &fakeProvisioner{},
		sessions: security.NewSessionManager("test-secret", time.Hour),
	}
	m := New(Deps{
		Accounts:    env.accounts,
		Pending:     env.pending,
		Sender:      env.sender,
		Chat:        env.chat,
		Sessions:    env.sessions,
		FrontendURL: "http://localhost:5173",
		Log:         zerolog.Nop(),
	})
	env.app = fiber.New()
	m.Register(env.app.Group("/api"))
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body any, cookie string) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: cookie})
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func sessionCookieValue(resp *http.Response) string {
	for _, ck := range resp.Cookies() {
		if ck.Name == sessionCookie && ck.Value != "" {
			return ck.Value
		}
	}
	return ""
}

// signUp runs a signup and returns the pending token issued for the email.
func (e *testEnv) signUp(t *testing.T, email, fullName, password string) string {
	t.Helper()
	resp := e.do(t, "POST", "/api/auth/signup", fiber.Map{
		"fullName": fullName, "email": email, "password": password,
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	p, err := e.pending.GetByEmail(email)
	require.NoError(t, err)
	return p.Token
}
