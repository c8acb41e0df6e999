package http

import (
	"net/mail"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/NitinS47/duk/internal/platform/notify"
	"github.com/NitinS47/duk/internal/platform/security"
)

type resendReq struct {
	Email string `json:"email"`
}

// resendVerification reissues an account-scoped verification token. It only
// applies to existing unverified accounts; a signup still waiting in the
// pending store is not addressable here.
func (m *Module) resendVerification(c *fiber.Ctx) error {
	var req resendReq
	if err := c.BodyParser(&req); err != nil {
		return m.fail(c, fiber.StatusBadRequest, "INVALID_FIELDS", "Please fill all fields", nil)
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return m.fail(c, fiber.StatusBadRequest, "INVALID_EMAIL", "Invalid email format", nil)
	}

	a, err := m.accounts.GetByEmail(req.Email)
	if err != nil || a == nil {
		return m.fail(c, fiber.StatusNotFound, "NOT_FOUND", "User not found", nil)
	}
	if a.IsVerified {
		return m.fail(c, fiber.StatusBadRequest, "ALREADY_VERIFIED", "Email is already verified", nil)
	}

	token, expiresAt, err := security.NewToken(resendTokenTTL)
	if err != nil {
		return m.fail(c, fiber.StatusInternalServerError, "SERVER_ERROR", "Internal server error", err)
	}
	if err := m.accounts.SetVerificationToken(a.ID, token, expiresAt); err != nil {
		return m.fail(c, fiber.StatusInternalServerError, "SERVER_ERROR", "Internal server error", err)
	}
	if err := m.sender.Send(c.UserContext(), notify.VerificationEmail(m.frontendURL, a.Email, token)); err != nil {
		return m.fail(c, fiber.StatusInternalServerError, "EMAIL_SEND_FAILED", "Failed to send verification email", err)
	}

	return c.JSON(fiber.Map{"message": "Verification email sent successfully"})
}
