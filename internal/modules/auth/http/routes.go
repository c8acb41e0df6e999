package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/NitinS47/duk/internal/modules/auth/domain"
	"github.com/NitinS47/duk/internal/platform/chat"
	"github.com/NitinS47/duk/internal/platform/notify"
	"github.com/NitinS47/duk/internal/platform/security"
)

// Token lifetimes for the verification and reset flows.
const (
	signupTokenTTL = 15 * time.Minute
	resendTokenTTL = 24 * time.Hour
	resetTokenTTL  = time.Hour
)

// Deps are the collaborators of the auth module. Mail and chat are interfaces
// so tests can substitute doubles.
type Deps struct {
	Accounts    domain.AccountRepo
	Pending     domain.PendingRepo
	Sender      notify.Sender
	Chat        chat.Provisioner
	Sessions    *security.SessionManager
	FrontendURL string
	Production  bool
	Log         zerolog.Logger
}

// Module wires the auth HTTP surface.
type Module struct {
	accounts    domain.AccountRepo
	pending     domain.PendingRepo
	sender      notify.Sender
	chat        chat.Provisioner
	sessions    *security.SessionManager
	frontendURL string
	production  bool
	log         zerolog.Logger
}

func New(d Deps) *Module {
	return &Module{
		accounts:    d.Accounts,
		pending:     d.Pending,
		sender:      d.Sender,
		chat:        d.Chat,
		sessions:    d.Sessions,
		frontendURL: d.FrontendURL,
		production:  d.Production,
		log:         d.Log,
	}
}

// Guard returns the session middleware for other modules to mount.
func (m *Module) Guard() fiber.Handler {
	return RequireAuth(m.sessions, m.accounts)
}

func (m *Module) Register(r fiber.Router) {
	auth := r.Group("/auth")

	auth.Post("/signup", m.signUp)
	auth.Get("/verify-email/:token", m.verifyEmail)
	auth.Post("/verify-otp", m.verifyOTP)
	auth.Post("/login", m.login)
	auth.Post("/logout", m.logout)
	auth.Post("/forgot-password", m.forgotPassword)
	auth.Post("/reset-password/:token", m.resetPassword)
	auth.Post("/resend-verification", m.resendVerification)

	guard := m.Guard()
	auth.Post("/onboarding", guard, m.onboard)
	auth.Get("/me", guard, m.me)
}
