package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/NitinS47/duk/internal/platform/notify"
	"github.com/NitinS47/duk/internal/platform/security"
)

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (m *Module) login(c *fiber.Ctx) error {
	var req loginReq
	if err := c.BodyParser(&req); err != nil {
		return m.fail(c, fiber.StatusBadRequest, "INVALID_FIELDS", "Please fill all fields", nil)
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return m.fail(c, fiber.StatusBadRequest, "INVALID_FIELDS", "Please fill all fields", nil)
	}

	// One message for unknown email and wrong password alike.
	a, err := m.accounts.GetByEmail(req.Email)
	if err != nil || a == nil {
		return m.fail(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password", nil)
	}
	ok, err := security.CheckPassword(a.PasswordHash, req.Password)
	if err != nil || !ok {
		return m.fail(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password", nil)
	}

	if !a.IsVerified {
		// Reissue a verification token scoped to the account; dispatch is best
		// effort and never blocks the 401.
		token, expiresAt, err := security.NewToken(signupTokenTTL)
		if err == nil {
			if err := m.accounts.SetVerificationToken(a.ID, token, expiresAt); err != nil {
				m.log.Warn().Err(err).Str("account_id", a.ID).Msg("failed to store verification token")
			} else if err := m.sender.Send(c.UserContext(), notify.VerificationEmail(m.frontendURL, a.Email, token)); err != nil {
				m.log.Warn().Err(err).Str("email", a.Email).Msg("failed to send verification email")
			}
		}
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error_code": "EMAIL_NOT_VERIFIED",
			"message":    "Please verify your email before logging in",
			"isVerified": false,
		})
	}

	return m.finishSession(c, a, "Login successful")
}
