package http

import (
	"net/mail"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/NitinS47/duk/internal/platform/notify"
	"github.com/NitinS47/duk/internal/platform/security"
)

type forgotPasswordReq struct {
	Email string `json:"email"`
}

func (m *Module) forgotPassword(c *fiber.Ctx) error {
	var req forgotPasswordReq
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

	// Overwrites any prior reset token; the token is harmless until used, so a
	// failed send needs no rollback.
	token, expiresAt, err := security.NewToken(resetTokenTTL)
	if err != nil {
		return m.fail(c, fiber.StatusInternalServerError, "SERVER_ERROR", "Internal server error", err)
	}
	if err := m.accounts.SetResetToken(a.ID, token, expiresAt); err != nil {
		return m.fail(c, fiber.StatusInternalServerError, "SERVER_ERROR", "Internal server error", err)
	}

	if err := m.sender.Send(c.UserContext(), notify.ResetEmail(m.frontendURL, a.Email, token)); err != nil {
		return m.fail(c, fiber.StatusInternalServerError, "SERVER_ERROR", "Internal server error", err)
	}

	return c.JSON(fiber.Map{"message": "Password reset email sent"})
}
